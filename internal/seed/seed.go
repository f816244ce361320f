// Package seed populates an empty registry with sample data so a fresh
// installation has something to browse.
package seed

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/campusone/registrar/internal/app/registry"
)

// CreateSampleData registers a handful of students and courses and wires up
// a few enrollments. Individual failures are collected rather than aborting
// the rest of the seed.
func CreateSampleData(u *registry.University, lgr zerolog.Logger) error {
	lgr.Info().Msg("Seeding sample data...")
	var finalErr error

	courses := []struct {
		id, name, department string
		credits, capacity    int
		instructor           string
	}{
		{"CS101", "Introduction to Programming", "Computer Science", 3, 30, "Dr. Grace Hopper"},
		{"CS301", "Operating Systems", "Computer Science", 4, 25, "Dr. Ken Thompson"},
		{"MATH201", "Linear Algebra", "Mathematics", 4, 40, "Dr. Emmy Noether"},
	}
	for _, c := range courses {
		if _, err := u.CreateCourse(c.id, c.name, c.department, c.credits, c.capacity, c.instructor); err != nil {
			lgr.Error().Err(err).Str("courseId", c.id).Msg("Error seeding course")
			finalErr = errors.Join(finalErr, err)
		}
	}

	alice, err := u.RegisterUndergraduate("Alice Carter", "alice@example.edu", 20, "Computer Science", 2, "Computer Science")
	if err != nil {
		lgr.Error().Err(err).Msg("Error seeding undergraduate student")
		finalErr = errors.Join(finalErr, err)
	}
	if _, err := u.RegisterUndergraduate("Deniz Aydin", "deniz@example.edu", 22, "Mathematics", 4, "Applied Mathematics"); err != nil {
		lgr.Error().Err(err).Msg("Error seeding undergraduate student")
		finalErr = errors.Join(finalErr, err)
	}
	bora, err := u.RegisterGraduate("Bora Yilmaz", "bora@example.edu", 26, "Computer Science", "Distributed Systems", "Dr. Leslie Lamport", true)
	if err != nil {
		lgr.Error().Err(err).Msg("Error seeding graduate student")
		finalErr = errors.Join(finalErr, err)
	}

	if alice != nil {
		for _, courseID := range []string{"CS101", "MATH201"} {
			if err := u.Enroll(alice.StudentID(), courseID); err != nil {
				lgr.Error().Err(err).Str("courseId", courseID).Msg("Error seeding enrollment")
				finalErr = errors.Join(finalErr, err)
			}
		}
		if err := u.UpdateGrade(alice.StudentID(), "CS101", 3.7); err != nil {
			lgr.Error().Err(err).Msg("Error seeding grade")
			finalErr = errors.Join(finalErr, err)
		}
	}
	if bora != nil {
		if err := u.Enroll(bora.StudentID(), "CS301"); err != nil {
			lgr.Error().Err(err).Msg("Error seeding enrollment")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().
		Int("students", u.StudentCount()).
		Int("courses", u.CourseCount()).
		Msg("Sample data seeded")
	return finalErr
}
