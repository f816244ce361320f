package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/campusone/registrar/internal/app/models"
)

// Wire type discriminators for student records.
const (
	tagUndergrad = "UNDERGRAD"
	tagGrad      = "GRAD"
)

// Fixed positional field counts per record kind.
const (
	undergradFields  = 8
	gradFields       = 9
	courseFields     = 6
	enrollmentFields = 3
)

type enrollmentRecord struct {
	studentID string
	courseID  string
	grade     float64
}

// studentLine renders one student as a delimited record. Fields are
// positional; embedded delimiters in free-text fields are not escaped
// (documented limitation of the format).
func studentLine(student models.Student) string {
	common := []string{
		student.StudentID(),
		student.Name(),
		student.Email(),
		strconv.Itoa(student.Age()),
		student.Department(),
	}

	switch s := student.(type) {
	case *models.Undergraduate:
		fields := append([]string{tagUndergrad}, common...)
		fields = append(fields, strconv.Itoa(s.YearLevel()), s.Major())
		return strings.Join(fields, delimiter)
	case *models.Graduate:
		fields := append([]string{tagGrad}, common...)
		fields = append(fields, s.ResearchTopic(), s.Advisor(), strconv.FormatBool(s.IsThesisTrack()))
		return strings.Join(fields, delimiter)
	default:
		// Unreachable with the two known variants; keep the record
		// format honest rather than guessing.
		return strings.Join(append([]string{string(student.Type())}, common...), delimiter)
	}
}

// parseStudentLine rebuilds a student from a delimited record.
func parseStudentLine(line string) (models.Student, error) {
	parts := splitFields(line)

	switch parts[0] {
	case tagUndergrad:
		if len(parts) != undergradFields {
			return nil, fmt.Errorf("expected %d fields for %s record, got %d", undergradFields, tagUndergrad, len(parts))
		}
		age, err := strconv.Atoi(parts[4])
		if err != nil {
			return nil, fmt.Errorf("invalid age %q: %w", parts[4], err)
		}
		yearLevel, err := strconv.Atoi(parts[6])
		if err != nil {
			return nil, fmt.Errorf("invalid year level %q: %w", parts[6], err)
		}
		return models.NewUndergraduate(parts[1], parts[2], parts[3], age, parts[5], yearLevel, parts[7])

	case tagGrad:
		if len(parts) != gradFields {
			return nil, fmt.Errorf("expected %d fields for %s record, got %d", gradFields, tagGrad, len(parts))
		}
		age, err := strconv.Atoi(parts[4])
		if err != nil {
			return nil, fmt.Errorf("invalid age %q: %w", parts[4], err)
		}
		thesisTrack, err := strconv.ParseBool(parts[8])
		if err != nil {
			return nil, fmt.Errorf("invalid thesis flag %q: %w", parts[8], err)
		}
		return models.NewGraduate(parts[1], parts[2], parts[3], age, parts[5], parts[6], parts[7], thesisTrack)

	default:
		return nil, fmt.Errorf("unknown student type %q", parts[0])
	}
}

// courseLine renders one course as a delimited record.
func courseLine(course *models.Course) string {
	return strings.Join([]string{
		course.ID(),
		course.Name(),
		course.Department(),
		strconv.Itoa(course.Credits()),
		strconv.Itoa(course.MaxCapacity()),
		course.Instructor(),
	}, delimiter)
}

// parseCourseLine rebuilds a course from a delimited record.
func parseCourseLine(line string) (*models.Course, error) {
	parts := splitFields(line)
	if len(parts) != courseFields {
		return nil, fmt.Errorf("expected %d fields for course record, got %d", courseFields, len(parts))
	}
	credits, err := strconv.Atoi(parts[3])
	if err != nil {
		return nil, fmt.Errorf("invalid credits %q: %w", parts[3], err)
	}
	maxCapacity, err := strconv.Atoi(parts[4])
	if err != nil {
		return nil, fmt.Errorf("invalid max capacity %q: %w", parts[4], err)
	}
	return models.NewCourse(parts[0], parts[1], parts[2], credits, maxCapacity, parts[5])
}

// enrollmentLine renders one (student, course, grade) triple.
func enrollmentLine(studentID, courseID string, grade float64) string {
	return strings.Join([]string{studentID, courseID, formatGrade(grade)}, delimiter)
}

// parseEnrollmentLine rebuilds one enrollment triple.
func parseEnrollmentLine(line string) (enrollmentRecord, error) {
	parts := splitFields(line)
	if len(parts) != enrollmentFields {
		return enrollmentRecord{}, fmt.Errorf("expected %d fields for enrollment record, got %d", enrollmentFields, len(parts))
	}
	grade, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return enrollmentRecord{}, fmt.Errorf("invalid grade %q: %w", parts[2], err)
	}
	return enrollmentRecord{
		studentID: parts[0],
		courseID:  parts[1],
		grade:     grade,
	}, nil
}

// formatGrade renders a grade with a decimal point so ungraded rows always
// read as the documented 0.0 marker.
func formatGrade(grade float64) string {
	s := strconv.FormatFloat(grade, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// splitFields breaks a record into trimmed positional fields.
func splitFields(line string) []string {
	parts := strings.Split(line, delimiter)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
