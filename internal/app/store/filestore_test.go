package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusone/registrar/internal/app/models"
	"github.com/campusone/registrar/internal/app/registry"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	fs, err := New(dir, "students.csv", "courses.csv", "enrollments.csv", zerolog.Nop())
	require.NoError(t, err)
	return fs, dir
}

// populatedUniversity builds a registry with both variants, a graded course,
// an ungraded course and one empty course.
func populatedUniversity(t *testing.T) *registry.University {
	t.Helper()
	u := registry.New(zerolog.Nop())

	ada, err := u.RegisterUndergraduate("Ada Lovelace", "ada@example.edu", 20, "CS", 4, "CS")
	require.NoError(t, err)
	bo, err := u.RegisterGraduate("Bo Chen", "bo@example.edu", 27, "CS", "Distributed Systems", "Dr. Lamport", true)
	require.NoError(t, err)

	_, err = u.CreateCourse("CS101", "Intro to Programming", "CS", 3, 30, "Dr. Hopper")
	require.NoError(t, err)
	_, err = u.CreateCourse("CS500", "Advanced Topics", "CS", 4, 15, "Dr. Thompson")
	require.NoError(t, err)
	_, err = u.CreateCourse("MATH201", "Linear Algebra", "Math", 4, 40, "Dr. Noether")
	require.NoError(t, err)

	require.NoError(t, u.Enroll(ada.StudentID(), "CS101"))
	require.NoError(t, u.Enroll(ada.StudentID(), "CS500"))
	require.NoError(t, u.Enroll(bo.StudentID(), "CS500"))
	require.NoError(t, u.UpdateGrade(ada.StudentID(), "CS101", 3.7))

	return u
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	fs, _ := newTestStore(t)
	original := populatedUniversity(t)
	require.NoError(t, fs.Save(original))

	restored := registry.New(zerolog.Nop())
	require.NoError(t, fs.Load(restored))

	require.Equal(t, original.StudentCount(), restored.StudentCount())
	require.Equal(t, original.CourseCount(), restored.CourseCount())

	for _, want := range original.Students() {
		got, ok := restored.FindStudentByID(want.StudentID())
		require.True(t, ok, "student %s restored", want.StudentID())
		assert.Equal(t, want.Name(), got.Name())
		assert.Equal(t, want.Email(), got.Email())
		assert.Equal(t, want.Age(), got.Age())
		assert.Equal(t, want.Department(), got.Department())
		assert.Equal(t, want.Type(), got.Type())
		assert.InDelta(t, want.GPA(), got.GPA(), 1e-9)
		assert.Equal(t, want.CourseCount(), got.CourseCount())
		assert.InDelta(t, want.CalculateTuition(), got.CalculateTuition(), 1e-9)
	}

	for _, want := range original.Courses() {
		got, ok := restored.FindCourseByID(want.ID())
		require.True(t, ok, "course %s restored", want.ID())
		assert.Equal(t, want.Name(), got.Name())
		assert.Equal(t, want.Department(), got.Department())
		assert.Equal(t, want.Credits(), got.Credits())
		assert.Equal(t, want.MaxCapacity(), got.MaxCapacity())
		assert.Equal(t, want.Instructor(), got.Instructor())
		assert.Equal(t, want.CurrentEnrollment(), got.CurrentEnrollment())
	}

	assert.Empty(t, restored.AuditIntegrity())
}

func TestRoundTripPreservesVariantFields(t *testing.T) {
	fs, _ := newTestStore(t)
	original := populatedUniversity(t)
	require.NoError(t, fs.Save(original))

	restored := registry.New(zerolog.Nop())
	require.NoError(t, fs.Load(restored))

	ada, ok := restored.FindStudentByID("STU1000")
	require.True(t, ok)
	undergrad, ok := ada.(*models.Undergraduate)
	require.True(t, ok)
	assert.Equal(t, 4, undergrad.YearLevel())
	assert.Equal(t, "CS", undergrad.Major())

	bo, ok := restored.FindStudentByID("STU1001")
	require.True(t, ok)
	grad, ok := bo.(*models.Graduate)
	require.True(t, ok)
	assert.Equal(t, "Distributed Systems", grad.ResearchTopic())
	assert.Equal(t, "Dr. Lamport", grad.Advisor())
	assert.True(t, grad.IsThesisTrack())
}

func TestLoadAdvancesStudentIDCounter(t *testing.T) {
	fs, _ := newTestStore(t)
	require.NoError(t, fs.Save(populatedUniversity(t)))

	restored := registry.New(zerolog.Nop())
	require.NoError(t, fs.Load(restored))

	next, err := restored.RegisterUndergraduate("Fresh", "fresh@example.edu", 18, "CS", 1, "CS")
	require.NoError(t, err)
	assert.Equal(t, "STU1002", next.StudentID())
}

func TestUngradedEnrollmentStaysUngraded(t *testing.T) {
	fs, _ := newTestStore(t)
	require.NoError(t, fs.Save(populatedUniversity(t)))

	restored := registry.New(zerolog.Nop())
	require.NoError(t, fs.Load(restored))

	bo, ok := restored.FindStudentByID("STU1001")
	require.True(t, ok)
	course, ok := restored.FindCourseByID("CS500")
	require.True(t, ok)

	grade, enrolled := bo.GradeFor(course)
	require.True(t, enrolled)
	assert.Equal(t, 0.0, grade)
	assert.Equal(t, 0.0, bo.GPA())
}

func TestGradeSerializationKeepsDecimalPoint(t *testing.T) {
	fs, dir := newTestStore(t)
	require.NoError(t, fs.Save(populatedUniversity(t)))

	content, err := os.ReadFile(filepath.Join(dir, "enrollments.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "STU1000,CS101,3.7")
	assert.Contains(t, string(content), "STU1001,CS500,0.0")
}

func TestLoadFromEmptyDirectory(t *testing.T) {
	fs, _ := newTestStore(t)
	u := registry.New(zerolog.Nop())

	require.NoError(t, fs.Load(u))
	assert.Equal(t, 0, u.StudentCount())
	assert.Equal(t, 0, u.CourseCount())
}

func TestLoadSkipsMalformedLines(t *testing.T) {
	fs, dir := newTestStore(t)

	students := `# comment line

UNDERGRAD,STU1000,Ada,ada@example.edu,20,CS,4,CS
UNDERGRAD,STU1001,Broken,broken@example.edu,notanumber,CS,1,CS
MYSTERY,STU1002,Who,who@example.edu,30,CS
UNDERGRAD,STU1003,Short,short@example.edu,20
GRAD,STU1004,Bo,bo@example.edu,27,CS,Systems,Dr. X,true
`
	courses := `# comment
CS101,Intro,CS,3,30,Dr. X
CS102,Broken,CS,three,30,Dr. X
CS103,Short,CS
`
	enrollments := `STU1000,CS101,3.5
STU1000,CS101
STU1004,CS101,abc
STU9999,CS101,2.0
STU1004,CS999,2.0
STU1004,CS101,0.0
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "students.csv"), []byte(students), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "courses.csv"), []byte(courses), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "enrollments.csv"), []byte(enrollments), 0o644))

	u := registry.New(zerolog.Nop())
	require.NoError(t, fs.Load(u))

	assert.Equal(t, 2, u.StudentCount(), "only well-formed students load")
	assert.Equal(t, 1, u.CourseCount(), "only well-formed courses load")

	ada, ok := u.FindStudentByID("STU1000")
	require.True(t, ok)
	assert.InDelta(t, 3.5, ada.GPA(), 1e-9)

	bo, ok := u.FindStudentByID("STU1004")
	require.True(t, ok)
	assert.Equal(t, 1, bo.CourseCount(), "unresolvable references skipped, valid ungraded enrollment kept")
	assert.Equal(t, 0.0, bo.GPA())
}

func TestLoadSkipsOutOfRangeGradeWholeLine(t *testing.T) {
	fs, dir := newTestStore(t)

	students := `UNDERGRAD,STU1000,Ada,ada@example.edu,20,CS,4,CS
`
	courses := `CS101,Intro,CS,3,30,Dr. X
`
	enrollments := `STU1000,CS101,5.0
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "students.csv"), []byte(students), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "courses.csv"), []byte(courses), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "enrollments.csv"), []byte(enrollments), 0o644))

	u := registry.New(zerolog.Nop())
	require.NoError(t, fs.Load(u))

	ada, ok := u.FindStudentByID("STU1000")
	require.True(t, ok)
	assert.Equal(t, 0, ada.CourseCount(), "enrollment with impossible grade dropped whole")

	course, ok := u.FindCourseByID("CS101")
	require.True(t, ok)
	assert.Equal(t, 0, course.CurrentEnrollment())
	assert.Empty(t, u.AuditIntegrity())
}

func TestLoadWithMissingEnrollmentsResource(t *testing.T) {
	fs, dir := newTestStore(t)
	require.NoError(t, fs.Save(populatedUniversity(t)))
	require.NoError(t, os.Remove(filepath.Join(dir, "enrollments.csv")))

	u := registry.New(zerolog.Nop())
	require.NoError(t, fs.Load(u), "missing resources are skipped without error")
	assert.Equal(t, 2, u.StudentCount())
	assert.Equal(t, 3, u.CourseCount())
}

func TestLoadOverCapacityDataIsKeptAndAudited(t *testing.T) {
	fs, dir := newTestStore(t)

	students := `UNDERGRAD,STU1000,Ada,ada@example.edu,20,CS,4,CS
UNDERGRAD,STU1001,Grace,grace@example.edu,21,CS,3,CS
`
	courses := `CS101,Intro,CS,3,1,Dr. X
`
	enrollments := `STU1000,CS101,3.0
STU1001,CS101,2.0
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "students.csv"), []byte(students), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "courses.csv"), []byte(courses), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "enrollments.csv"), []byte(enrollments), 0o644))

	u := registry.New(zerolog.Nop())
	require.NoError(t, fs.Load(u))

	course, ok := u.FindCourseByID("CS101")
	require.True(t, ok)
	assert.Equal(t, 2, course.CurrentEnrollment(), "capacity check bypassed on load")

	findings := u.AuditIntegrity()
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0], "exceeds capacity")
}

func TestSaveOverwritesPreviousState(t *testing.T) {
	fs, _ := newTestStore(t)
	require.NoError(t, fs.Save(populatedUniversity(t)))

	// A smaller registry saved over the old files must fully replace them.
	small := registry.New(zerolog.Nop())
	_, err := small.RegisterUndergraduate("Solo", "solo@example.edu", 19, "CS", 1, "CS")
	require.NoError(t, err)
	require.NoError(t, fs.Save(small))

	restored := registry.New(zerolog.Nop())
	require.NoError(t, fs.Load(restored))
	assert.Equal(t, 1, restored.StudentCount())
	assert.Equal(t, 0, restored.CourseCount())
}

func TestHasData(t *testing.T) {
	fs, _ := newTestStore(t)
	assert.False(t, fs.HasData())

	require.NoError(t, fs.Save(registry.New(zerolog.Nop())))
	assert.True(t, fs.HasData())
}
