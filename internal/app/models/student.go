package models

import (
	"fmt"

	"github.com/campusone/registrar/internal/pkg/apperrors"
	"github.com/campusone/registrar/internal/pkg/validation"
)

// StudentType discriminates the two student variants.
type StudentType string

const (
	// TypeUndergraduate tags an undergraduate student.
	TypeUndergraduate StudentType = "UNDERGRADUATE"
	// TypeGraduate tags a graduate student.
	TypeGraduate StudentType = "GRADUATE"
)

// Student is the capability interface shared by both variants. Anything a
// caller may do to a student without knowing its variant goes through here;
// tuition is the one polymorphic point.
type Student interface {
	StudentID() string
	Name() string
	Email() string
	Age() int
	Department() string
	Type() StudentType
	GPA() float64

	SetName(string) error
	SetEmail(string) error
	SetAge(int) error
	SetDepartment(string)

	CalculateTuition() float64

	AddCourse(*Course)
	UpdateGrade(*Course, float64) error
	RemoveCourse(*Course)
	IsEnrolledIn(*Course) bool
	EnrolledCourses() []*Course
	GradeFor(*Course) (float64, bool)
	CourseCount() int
}

// StudentBase carries the state common to both variants; each variant embeds
// it and adds its own fields plus CalculateTuition and Type.
//
// The grade mapping is keyed by course ID. A grade of 0.0 means enrolled but
// not yet graded; such courses are excluded from the GPA, not averaged as
// zeros. GPA is derived state and is recomputed on every grade mutation.
type StudentBase struct {
	Person

	id         string
	department string
	gpa        float64

	grades      map[string]float64
	courses     map[string]*Course
	courseOrder []string
}

// newStudentBase builds the shared portion of a student.
func newStudentBase(id, name, email string, age int, department string) (StudentBase, error) {
	person, err := newPerson(name, email, age)
	if err != nil {
		return StudentBase{}, err
	}
	return StudentBase{
		Person:     person,
		id:         id,
		department: department,
		grades:     make(map[string]float64),
		courses:    make(map[string]*Course),
	}, nil
}

// StudentID returns the registry-assigned identifier.
func (s *StudentBase) StudentID() string { return s.id }

// Department returns the student's home department.
func (s *StudentBase) Department() string { return s.department }

// SetDepartment replaces the home department.
func (s *StudentBase) SetDepartment(department string) {
	s.department = department
}

// GPA returns the derived grade point average.
func (s *StudentBase) GPA() float64 { return s.gpa }

// AddCourse records an enrollment with no grade yet. It is idempotent and
// does not touch the course's roster; keeping both sides in sync is the
// registry's job.
func (s *StudentBase) AddCourse(course *Course) {
	if _, ok := s.grades[course.ID()]; ok {
		return
	}
	s.grades[course.ID()] = 0.0
	s.courses[course.ID()] = course
	s.courseOrder = append(s.courseOrder, course.ID())
}

// UpdateGrade stores a grade for an enrolled course and recomputes the GPA.
// An out-of-range grade or a course the student is not enrolled in is
// rejected without mutating state.
func (s *StudentBase) UpdateGrade(course *Course, grade float64) error {
	if !validation.Grade(grade) {
		return apperrors.NewDomainError(apperrors.ErrInvalidGrade,
			fmt.Sprintf("grade must be between %.1f and %.1f, got %.2f",
				validation.GradeMin, validation.GradeMax, grade))
	}
	if _, ok := s.grades[course.ID()]; !ok {
		return apperrors.NewDomainError(apperrors.ErrNotEnrolled,
			fmt.Sprintf("student %s is not enrolled in %s", s.id, course.Name())).
			WithDetails(map[string]interface{}{
				"studentId": s.id,
				"courseId":  course.ID(),
			})
	}
	s.grades[course.ID()] = grade
	s.recalculateGPA()
	return nil
}

// RemoveCourse drops the enrollment and its grade, then recomputes the GPA.
// Removing a course the student never held is a no-op.
func (s *StudentBase) RemoveCourse(course *Course) {
	if _, ok := s.grades[course.ID()]; !ok {
		return
	}
	delete(s.grades, course.ID())
	delete(s.courses, course.ID())
	for i, id := range s.courseOrder {
		if id == course.ID() {
			s.courseOrder = append(s.courseOrder[:i], s.courseOrder[i+1:]...)
			break
		}
	}
	s.recalculateGPA()
}

// IsEnrolledIn tests membership in the grade mapping.
func (s *StudentBase) IsEnrolledIn(course *Course) bool {
	_, ok := s.grades[course.ID()]
	return ok
}

// EnrolledCourses returns the enrolled courses in enrollment order.
func (s *StudentBase) EnrolledCourses() []*Course {
	out := make([]*Course, 0, len(s.courseOrder))
	for _, id := range s.courseOrder {
		out = append(out, s.courses[id])
	}
	return out
}

// GradeFor returns the recorded grade for a course and whether the student
// is enrolled in it. A 0.0 grade with ok=true means not yet graded.
func (s *StudentBase) GradeFor(course *Course) (float64, bool) {
	grade, ok := s.grades[course.ID()]
	return grade, ok
}

// CourseCount returns the number of enrollments, graded or not.
func (s *StudentBase) CourseCount() int {
	return len(s.grades)
}

// recalculateGPA derives the GPA as the mean of grades above 0.0.
// Ungraded courses are excluded from the mean.
func (s *StudentBase) recalculateGPA() {
	total := 0.0
	count := 0
	for _, grade := range s.grades {
		if grade > 0.0 {
			total += grade
			count++
		}
	}
	if count == 0 {
		s.gpa = 0.0
		return
	}
	s.gpa = total / float64(count)
}
