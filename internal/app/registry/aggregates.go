package registry

import (
	"sort"
	"strings"

	"github.com/campusone/registrar/internal/app/models"
)

// deansListThreshold is the GPA a student must exceed to make the list.
const deansListThreshold = 3.5

// EnrollmentStatistics carries the headline numbers for reporting.
type EnrollmentStatistics struct {
	TotalStudents     int
	TotalCourses      int
	Undergraduates    int
	Graduates         int
	OverallAverageGPA float64
}

// DeansList returns students with a GPA above 3.5, highest first. The sort is
// stable, so ties keep registration order.
func (u *University) DeansList() []models.Student {
	var out []models.Student
	for _, student := range u.students {
		if student.GPA() > deansListThreshold {
			out = append(out, student)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].GPA() > out[j].GPA()
	})
	return out
}

// AverageGPAByDepartment returns the mean GPA over graded students in a
// department, matched case-insensitively. Students with no grades yet do not
// drag the average down; with no graded students the result is 0.0.
func (u *University) AverageGPAByDepartment(department string) float64 {
	total := 0.0
	count := 0
	for _, student := range u.students {
		if !strings.EqualFold(student.Department(), department) {
			continue
		}
		if student.GPA() > 0.0 {
			total += student.GPA()
			count++
		}
	}
	if count == 0 {
		return 0.0
	}
	return total / float64(count)
}

// TopPerformingStudent returns the graded student with the highest GPA, or
// false when nobody has a grade yet.
func (u *University) TopPerformingStudent() (models.Student, bool) {
	var top models.Student
	for _, student := range u.students {
		if student.GPA() <= 0.0 {
			continue
		}
		if top == nil || student.GPA() > top.GPA() {
			top = student
		}
	}
	return top, top != nil
}

// StudentsByDepartment filters students by department, case-insensitively,
// in registration order.
func (u *University) StudentsByDepartment(department string) []models.Student {
	var out []models.Student
	for _, student := range u.students {
		if strings.EqualFold(student.Department(), department) {
			out = append(out, student)
		}
	}
	return out
}

// Statistics computes the enrollment summary from the live student list.
func (u *University) Statistics() EnrollmentStatistics {
	stats := EnrollmentStatistics{
		TotalStudents: len(u.students),
		TotalCourses:  len(u.courses),
	}

	total := 0.0
	graded := 0
	for _, student := range u.students {
		switch student.Type() {
		case models.TypeUndergraduate:
			stats.Undergraduates++
		case models.TypeGraduate:
			stats.Graduates++
		}
		if student.GPA() > 0.0 {
			total += student.GPA()
			graded++
		}
	}
	if graded > 0 {
		stats.OverallAverageGPA = total / float64(graded)
	}
	return stats
}

// sortCoursesByID orders a course slice by ID in place.
func sortCoursesByID(courses []*models.Course) {
	sort.Slice(courses, func(i, j int) bool {
		return courses[i].ID() < courses[j].ID()
	})
}
