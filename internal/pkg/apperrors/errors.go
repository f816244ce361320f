package apperrors

import "errors"

// Validation errors
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrInvalidAge       = errors.New("invalid age")
	ErrInvalidGrade     = errors.New("grade out of range")
	ErrInvalidCapacity  = errors.New("invalid capacity")
)

// Lookup errors
var (
	ErrStudentNotFound = errors.New("student not found")
	ErrCourseNotFound  = errors.New("course not found")
)

// Conflict errors
var (
	ErrCourseAlreadyExists = errors.New("course with this ID already exists")
	ErrAlreadyEnrolled     = errors.New("student already enrolled in course")
	ErrCourseFull          = errors.New("course is at maximum capacity")
	ErrNotEnrolled         = errors.New("student not enrolled in course")
)

// DomainError represents application-specific errors with additional context
type DomainError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a DomainError with underlying error
func NewDomainError(err error, message string) *DomainError {
	return &DomainError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *DomainError) WithDetails(details map[string]interface{}) *DomainError {
	e.Details = details
	return e
}

// NewValidationError creates a new domain error for a rejected field value
func NewValidationError(message string) error {
	return &DomainError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewNotFoundError wraps a not-found sentinel with a contextual message
func NewNotFoundError(err error, message string) error {
	return &DomainError{
		Err:     err,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}
