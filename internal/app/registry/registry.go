// Package registry holds the authoritative in-memory collection of students
// and courses. Every cross-entity mutation goes through the University type
// so the two sides of an enrollment can never drift apart: the grade mapping
// on the student and the roster on the course are always updated as a pair.
package registry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/campusone/registrar/internal/app/models"
	"github.com/campusone/registrar/internal/pkg/apperrors"
	"github.com/campusone/registrar/internal/pkg/validation"
)

const (
	studentIDPrefix = "STU"
	studentIDStart  = 1000
)

// University is the registry of all students and courses. It is constructed
// explicitly and passed to whatever needs it; there is no package-level
// instance.
type University struct {
	students     []models.Student
	studentsByID map[string]models.Student
	courses      map[string]*models.Course

	nextStudentID int
	log           zerolog.Logger
}

// New creates an empty registry.
func New(log zerolog.Logger) *University {
	return &University{
		studentsByID:  make(map[string]models.Student),
		courses:       make(map[string]*models.Course),
		nextStudentID: studentIDStart,
		log:           log,
	}
}

// RegisterUndergraduate validates the fields, assigns the next student ID and
// adds the student to the registry. Duplicate names or emails are allowed.
// The ID is consumed only when validation passes.
func (u *University) RegisterUndergraduate(name, email string, age int, department string, yearLevel int, major string) (*models.Undergraduate, error) {
	id := studentIDPrefix + strconv.Itoa(u.nextStudentID)
	student, err := models.NewUndergraduate(id, name, email, age, department, yearLevel, major)
	if err != nil {
		return nil, err
	}

	u.nextStudentID++
	u.addStudent(student)

	u.log.Info().Str("studentId", id).Str("name", name).Msg("Registered undergraduate student")
	return student, nil
}

// RegisterGraduate validates the fields, assigns the next student ID and adds
// the student to the registry.
func (u *University) RegisterGraduate(name, email string, age int, department, researchTopic, advisor string, thesisTrack bool) (*models.Graduate, error) {
	id := studentIDPrefix + strconv.Itoa(u.nextStudentID)
	student, err := models.NewGraduate(id, name, email, age, department, researchTopic, advisor, thesisTrack)
	if err != nil {
		return nil, err
	}

	u.nextStudentID++
	u.addStudent(student)

	u.log.Info().Str("studentId", id).Str("name", name).Msg("Registered graduate student")
	return student, nil
}

// addStudent appends to the ordered list and indexes by upper-cased ID.
func (u *University) addStudent(student models.Student) {
	u.students = append(u.students, student)
	u.studentsByID[strings.ToUpper(student.StudentID())] = student
}

// CreateCourse validates the fields and adds a course, rejecting duplicate
// IDs. Course IDs are normalized to upper case, so "cs101" and "CS101"
// collide by design.
func (u *University) CreateCourse(id, name, department string, credits, maxCapacity int, instructor string) (*models.Course, error) {
	course, err := models.NewCourse(id, name, department, credits, maxCapacity, instructor)
	if err != nil {
		return nil, err
	}

	if existing, ok := u.courses[course.ID()]; ok {
		return nil, apperrors.NewDomainError(apperrors.ErrCourseAlreadyExists,
			fmt.Sprintf("course with ID '%s' already exists", course.ID())).
			WithDetails(map[string]interface{}{
				"courseId":   course.ID(),
				"courseName": existing.Name(),
			})
	}
	u.courses[course.ID()] = course

	u.log.Info().Str("courseId", course.ID()).Str("name", name).Msg("Created course")
	return course, nil
}

// FindStudentByID looks a student up case-insensitively by ID.
func (u *University) FindStudentByID(studentID string) (models.Student, bool) {
	student, ok := u.studentsByID[strings.ToUpper(strings.TrimSpace(studentID))]
	return student, ok
}

// FindStudentsByName returns every student whose name contains the given
// substring, matched case-insensitively, in registration order.
func (u *University) FindStudentsByName(name string) []models.Student {
	needle := strings.ToLower(name)
	var out []models.Student
	for _, student := range u.students {
		if strings.Contains(strings.ToLower(student.Name()), needle) {
			out = append(out, student)
		}
	}
	return out
}

// FindCourseByID looks a course up by its normalized ID. Caller casing does
// not matter.
func (u *University) FindCourseByID(courseID string) (*models.Course, bool) {
	course, ok := u.courses[strings.ToUpper(strings.TrimSpace(courseID))]
	return course, ok
}

// Enroll adds a student to a course. Both sides of the relationship are
// updated together; no caller can observe one side without the other. Fails
// when either ID is unknown, the student already holds the course, or the
// course is full.
func (u *University) Enroll(studentID, courseID string) error {
	student, course, err := u.resolve(studentID, courseID)
	if err != nil {
		return err
	}

	if student.IsEnrolledIn(course) {
		return apperrors.NewDomainError(apperrors.ErrAlreadyEnrolled,
			fmt.Sprintf("student '%s' (ID: %s) is already enrolled in '%s' (%s)",
				student.Name(), student.StudentID(), course.Name(), course.ID())).
			WithDetails(map[string]interface{}{
				"studentId": student.StudentID(),
				"courseId":  course.ID(),
			})
	}
	if !course.HasSpace() {
		return apperrors.NewDomainError(apperrors.ErrCourseFull,
			fmt.Sprintf("course '%s' (%s) is full: maximum capacity of %d students reached",
				course.Name(), course.ID(), course.MaxCapacity())).
			WithDetails(map[string]interface{}{
				"courseId":    course.ID(),
				"courseName":  course.Name(),
				"maxCapacity": course.MaxCapacity(),
			})
	}

	// Paired mutation: roster and grade mapping change together.
	course.AddStudent(student)
	student.AddCourse(course)

	u.log.Debug().Str("studentId", student.StudentID()).Str("courseId", course.ID()).Msg("Enrolled student in course")
	return nil
}

// Unenroll removes a student from a course, dropping the roster entry and the
// grade mapping together.
func (u *University) Unenroll(studentID, courseID string) error {
	student, course, err := u.resolve(studentID, courseID)
	if err != nil {
		return err
	}

	if !student.IsEnrolledIn(course) {
		return apperrors.NewDomainError(apperrors.ErrNotEnrolled,
			fmt.Sprintf("student %s is not enrolled in %s", student.StudentID(), course.ID()))
	}

	student.RemoveCourse(course)
	course.RemoveStudent(student)

	u.log.Debug().Str("studentId", student.StudentID()).Str("courseId", course.ID()).Msg("Unenrolled student from course")
	return nil
}

// UpdateGrade records a grade for an enrolled student. Range and enrollment
// checks live on the student; the registry resolves the IDs.
func (u *University) UpdateGrade(studentID, courseID string, grade float64) error {
	student, course, err := u.resolve(studentID, courseID)
	if err != nil {
		return err
	}

	if err := student.UpdateGrade(course, grade); err != nil {
		return err
	}

	u.log.Debug().
		Str("studentId", student.StudentID()).
		Str("courseId", course.ID()).
		Float64("grade", grade).
		Msg("Updated grade")
	return nil
}

// resolve maps a pair of IDs to live entities, failing with a not-found
// error naming the missing one.
func (u *University) resolve(studentID, courseID string) (models.Student, *models.Course, error) {
	student, ok := u.FindStudentByID(studentID)
	if !ok {
		return nil, nil, apperrors.NewNotFoundError(apperrors.ErrStudentNotFound,
			fmt.Sprintf("student not found with ID: %s", studentID))
	}
	course, ok := u.FindCourseByID(courseID)
	if !ok {
		return nil, nil, apperrors.NewNotFoundError(apperrors.ErrCourseNotFound,
			fmt.Sprintf("course not found with ID: %s", courseID))
	}
	return student, course, nil
}

// Students returns all students in registration order.
func (u *University) Students() []models.Student {
	out := make([]models.Student, len(u.students))
	copy(out, u.students)
	return out
}

// Courses returns all courses sorted by ID so iteration is deterministic.
func (u *University) Courses() []*models.Course {
	out := make([]*models.Course, 0, len(u.courses))
	for _, course := range u.courses {
		out = append(out, course)
	}
	sortCoursesByID(out)
	return out
}

// AddStudent inserts a reconstructed student, used by the persistence codec.
// The ID counter advances past any sequence number it encounters so future
// registrations never collide with loaded data. Students already present by
// ID are left untouched.
func (u *University) AddStudent(student models.Student) {
	key := strings.ToUpper(student.StudentID())
	if _, ok := u.studentsByID[key]; ok {
		return
	}
	u.students = append(u.students, student)
	u.studentsByID[key] = student

	if validation.StudentID(student.StudentID()) {
		if n, err := strconv.Atoi(strings.TrimPrefix(student.StudentID(), studentIDPrefix)); err == nil && n >= u.nextStudentID {
			u.nextStudentID = n + 1
		}
	}
}

// AddCourse inserts a reconstructed course, used by the persistence codec.
// An existing course with the same ID is replaced.
func (u *University) AddCourse(course *models.Course) {
	u.courses[course.ID()] = course
}

// RestoreEnrollment re-links a saved (student, course, grade) triple. It runs
// the same paired mutation as Enroll but skips the capacity and duplicate
// checks: the data already passed them when it was created. The grade range
// is still enforced, and rejected before either side mutates. A grade of 0.0
// stays "not graded" and is not re-applied as a grade set.
func (u *University) RestoreEnrollment(studentID, courseID string, grade float64) error {
	student, course, err := u.resolve(studentID, courseID)
	if err != nil {
		return err
	}
	if !validation.Grade(grade) {
		return apperrors.NewDomainError(apperrors.ErrInvalidGrade,
			fmt.Sprintf("grade must be between %.1f and %.1f, got %.2f",
				validation.GradeMin, validation.GradeMax, grade))
	}

	student.AddCourse(course)
	course.AddStudent(student)

	if grade > 0.0 {
		if err := student.UpdateGrade(course, grade); err != nil {
			return err
		}
	}
	return nil
}

// StudentCount returns the number of registered students.
func (u *University) StudentCount() int { return len(u.students) }

// CourseCount returns the number of courses.
func (u *University) CourseCount() int { return len(u.courses) }

// AuditIntegrity re-checks the registry's invariants and returns a finding
// per violation. Loaded data bypasses the live enrollment checks, so the
// codec runs this once after a full load; the audit never mutates.
func (u *University) AuditIntegrity() []string {
	var findings []string

	for _, course := range u.Courses() {
		if course.CurrentEnrollment() > course.MaxCapacity() {
			findings = append(findings, fmt.Sprintf(
				"course %s enrollment %d exceeds capacity %d",
				course.ID(), course.CurrentEnrollment(), course.MaxCapacity()))
		}
		for _, student := range course.EnrolledStudents() {
			if !student.IsEnrolledIn(course) {
				findings = append(findings, fmt.Sprintf(
					"course %s lists student %s who has no matching enrollment",
					course.ID(), student.StudentID()))
			}
		}
	}

	for _, student := range u.students {
		for _, course := range student.EnrolledCourses() {
			if !course.IsStudentEnrolled(student) {
				findings = append(findings, fmt.Sprintf(
					"student %s holds course %s but is missing from its roster",
					student.StudentID(), course.ID()))
			}
		}
	}

	return findings
}
