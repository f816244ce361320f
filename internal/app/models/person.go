package models

import (
	"fmt"

	"github.com/campusone/registrar/internal/pkg/apperrors"
	"github.com/campusone/registrar/internal/pkg/validation"
)

// Person holds the identity fields shared by everyone on record.
// It has no lifecycle of its own; the student variants embed it.
type Person struct {
	name  string
	email string
	age   int
}

// newPerson builds a Person, applying the same rules as the setters.
func newPerson(name, email string, age int) (Person, error) {
	var p Person
	if err := p.SetName(name); err != nil {
		return Person{}, err
	}
	if err := p.SetEmail(email); err != nil {
		return Person{}, err
	}
	if err := p.SetAge(age); err != nil {
		return Person{}, err
	}
	return p, nil
}

// Name returns the person's full name.
func (p *Person) Name() string {
	return p.name
}

// Email returns the person's email address.
func (p *Person) Email() string {
	return p.email
}

// Age returns the person's age in years.
func (p *Person) Age() int {
	return p.age
}

// SetName updates the name. The prior value is kept on validation failure.
func (p *Person) SetName(name string) error {
	if !validation.NonEmpty(name) {
		return apperrors.NewValidationError("name cannot be empty")
	}
	p.name = name
	return nil
}

// SetEmail updates the email address. The prior value is kept on validation failure.
func (p *Person) SetEmail(email string) error {
	if !validation.Email(email) {
		return apperrors.NewDomainError(apperrors.ErrInvalidEmail,
			fmt.Sprintf("invalid email format: %q", email))
	}
	p.email = email
	return nil
}

// SetAge updates the age. The prior value is kept on validation failure.
func (p *Person) SetAge(age int) error {
	if !validation.Age(age) {
		return apperrors.NewDomainError(apperrors.ErrInvalidAge,
			fmt.Sprintf("age must be between %d and %d, got %d", validation.AgeMin, validation.AgeMax, age))
	}
	p.age = age
	return nil
}
