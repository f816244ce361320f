package validation

import (
	"regexp"
	"strings"
)

// Validation rule boundaries shared by the model layer
var (
	// Student identifier pattern - STU prefix followed by a sequence number
	StudentIDPattern = `^STU\d+$`

	// Age bounds for any person on record
	AgeMin = 0
	AgeMax = 120

	// Year level bounds for undergraduates
	YearLevelMin = 1
	YearLevelMax = 4

	// Grade bounds on the 4.0 scale; 0.0 means "not yet graded"
	GradeMin = 0.0
	GradeMax = 4.0
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	StudentID *regexp.Regexp
}{
	StudentID: regexp.MustCompile(StudentIDPattern),
}

// NonEmpty reports whether a string has content after trimming whitespace.
func NonEmpty(value string) bool {
	return strings.TrimSpace(value) != ""
}

// Email reports whether a value passes the minimal address check the
// record format supports: non-empty and containing an '@'.
func Email(value string) bool {
	return NonEmpty(value) && strings.Contains(value, "@")
}

// Age reports whether an age falls inside the accepted range.
func Age(value int) bool {
	return value >= AgeMin && value <= AgeMax
}

// YearLevel reports whether an undergraduate year level is valid.
func YearLevel(value int) bool {
	return value >= YearLevelMin && value <= YearLevelMax
}

// Grade reports whether a grade falls on the 4.0 scale, inclusive.
func Grade(value float64) bool {
	return value >= GradeMin && value <= GradeMax
}

// StudentID reports whether a value matches the registry's identifier format.
func StudentID(value string) bool {
	return CompiledPatterns.StudentID.MatchString(value)
}
