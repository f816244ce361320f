package models

import (
	"fmt"
	"strings"

	"github.com/campusone/registrar/internal/pkg/apperrors"
	"github.com/campusone/registrar/internal/pkg/validation"
)

// Course is a fixed-capacity offering. It owns its side of the enrollment
// relationship: the roster of enrolled students in enrollment order.
// Course identity is the ID; IDs are normalized to upper case on creation so
// lookups never depend on caller casing.
type Course struct {
	id         string
	name       string
	department string
	instructor string
	credits    int

	maxCapacity int
	enrolled    []Student
}

// NewCourse validates the fields and builds a course with an empty roster.
func NewCourse(id, name, department string, credits, maxCapacity int, instructor string) (*Course, error) {
	if !validation.NonEmpty(id) {
		return nil, apperrors.NewValidationError("course ID cannot be empty")
	}
	if !validation.NonEmpty(name) {
		return nil, apperrors.NewValidationError("course name cannot be empty")
	}
	if credits <= 0 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("credits must be positive, got %d", credits))
	}
	if maxCapacity <= 0 {
		return nil, apperrors.NewDomainError(apperrors.ErrInvalidCapacity,
			fmt.Sprintf("max capacity must be positive, got %d", maxCapacity))
	}

	return &Course{
		id:          strings.ToUpper(strings.TrimSpace(id)),
		name:        name,
		department:  department,
		instructor:  instructor,
		credits:     credits,
		maxCapacity: maxCapacity,
	}, nil
}

// ID returns the normalized course identifier.
func (c *Course) ID() string { return c.id }

// Name returns the course title.
func (c *Course) Name() string { return c.name }

// Department returns the owning department.
func (c *Course) Department() string { return c.department }

// Credits returns the credit value of the course.
func (c *Course) Credits() int { return c.credits }

// MaxCapacity returns the enrollment cap.
func (c *Course) MaxCapacity() int { return c.maxCapacity }

// Instructor returns the instructor's display name.
func (c *Course) Instructor() string { return c.instructor }

// SetInstructor replaces the instructor's display name.
func (c *Course) SetInstructor(name string) {
	c.instructor = name
}

// SetMaxCapacity raises or lowers the cap. Lowering below the current
// enrollment count is rejected and leaves the cap unchanged.
func (c *Course) SetMaxCapacity(maxCapacity int) error {
	if maxCapacity <= 0 {
		return apperrors.NewDomainError(apperrors.ErrInvalidCapacity,
			fmt.Sprintf("max capacity must be positive, got %d", maxCapacity))
	}
	if maxCapacity < len(c.enrolled) {
		return apperrors.NewDomainError(apperrors.ErrInvalidCapacity,
			fmt.Sprintf("cannot reduce capacity of %s to %d below current enrollment of %d",
				c.id, maxCapacity, len(c.enrolled)))
	}
	c.maxCapacity = maxCapacity
	return nil
}

// AddStudent appends a student to the roster. It returns false without
// mutating when the student is already enrolled. Capacity is not checked
// here; that is the registry's concern.
func (c *Course) AddStudent(s Student) bool {
	if c.IsStudentEnrolled(s) {
		return false
	}
	c.enrolled = append(c.enrolled, s)
	return true
}

// RemoveStudent drops a student from the roster, reporting whether the
// student was present.
func (c *Course) RemoveStudent(s Student) bool {
	for i, enrolled := range c.enrolled {
		if strings.EqualFold(enrolled.StudentID(), s.StudentID()) {
			c.enrolled = append(c.enrolled[:i], c.enrolled[i+1:]...)
			return true
		}
	}
	return false
}

// IsStudentEnrolled tests roster membership by student identity.
func (c *Course) IsStudentEnrolled(s Student) bool {
	for _, enrolled := range c.enrolled {
		if strings.EqualFold(enrolled.StudentID(), s.StudentID()) {
			return true
		}
	}
	return false
}

// HasSpace reports whether another student fits under the cap.
func (c *Course) HasSpace() bool {
	return len(c.enrolled) < c.maxCapacity
}

// CurrentEnrollment returns the number of enrolled students.
func (c *Course) CurrentEnrollment() int {
	return len(c.enrolled)
}

// EnrolledStudents returns a copy of the roster in enrollment order.
func (c *Course) EnrolledStudents() []Student {
	out := make([]Student, len(c.enrolled))
	copy(out, c.enrolled)
	return out
}

// String renders a one-line summary for reports.
func (c *Course) String() string {
	return fmt.Sprintf("[%s] %s | Dept: %s | Credits: %d | Enrolled: %d/%d | Instructor: %s",
		c.id, c.name, c.department, c.credits, len(c.enrolled), c.maxCapacity, c.instructor)
}
