package models

import (
	"fmt"

	"github.com/campusone/registrar/internal/pkg/apperrors"
	"github.com/campusone/registrar/internal/pkg/validation"
)

// Undergraduate tuition components. These are contract values; the amounts
// feed directly into billing.
const (
	undergradBaseTuition   = 5000.00
	undergradActivityFee   = 250.00
	undergradTechnologyFee = 150.00
	seniorYearDiscount     = 200.00
)

// Undergraduate is a student working toward a bachelor's degree.
type Undergraduate struct {
	StudentBase

	yearLevel int
	major     string
}

// NewUndergraduate validates the fields and builds an undergraduate student.
func NewUndergraduate(id, name, email string, age int, department string, yearLevel int, major string) (*Undergraduate, error) {
	base, err := newStudentBase(id, name, email, age, department)
	if err != nil {
		return nil, err
	}
	if !validation.YearLevel(yearLevel) {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("year level must be %d-%d, got %d", validation.YearLevelMin, validation.YearLevelMax, yearLevel))
	}
	return &Undergraduate{
		StudentBase: base,
		yearLevel:   yearLevel,
		major:       major,
	}, nil
}

// Type returns the undergraduate discriminator.
func (u *Undergraduate) Type() StudentType { return TypeUndergraduate }

// CalculateTuition returns the flat undergraduate rate: base plus fixed fees,
// with a discount in the senior year. Credit load does not affect it.
func (u *Undergraduate) CalculateTuition() float64 {
	total := undergradBaseTuition + undergradActivityFee + undergradTechnologyFee
	if u.yearLevel == validation.YearLevelMax {
		total -= seniorYearDiscount
	}
	return total
}

// YearLevel returns the current year of study (1-4).
func (u *Undergraduate) YearLevel() int { return u.yearLevel }

// Major returns the declared major.
func (u *Undergraduate) Major() string { return u.major }

// SetYearLevel updates the year of study, rejecting values outside 1-4.
func (u *Undergraduate) SetYearLevel(yearLevel int) error {
	if !validation.YearLevel(yearLevel) {
		return apperrors.NewValidationError(
			fmt.Sprintf("year level must be %d-%d, got %d", validation.YearLevelMin, validation.YearLevelMax, yearLevel))
	}
	u.yearLevel = yearLevel
	return nil
}

// SetMajor replaces the declared major.
func (u *Undergraduate) SetMajor(major string) {
	u.major = major
}

// YearLevelName returns the display name for the year of study.
func (u *Undergraduate) YearLevelName() string {
	switch u.yearLevel {
	case 1:
		return "Freshman"
	case 2:
		return "Sophomore"
	case 3:
		return "Junior"
	case 4:
		return "Senior"
	default:
		return "Unknown"
	}
}
