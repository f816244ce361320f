package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/campusone/registrar/internal/app/models"
	"github.com/campusone/registrar/internal/bootstrap"
)

// menu is the interactive front end. It is pure I/O glue: every mutation is
// delegated to the registry and every view reads through it.
type menu struct {
	app *bootstrap.App
	in  *bufio.Reader
	out io.Writer
}

// runMenu drives the prompt loop until the user saves and exits.
func runMenu(app *bootstrap.App) error {
	m := &menu{
		app: app,
		in:  bufio.NewReader(os.Stdin),
		out: os.Stdout,
	}
	return m.run()
}

func (m *menu) run() error {
	for {
		m.printOptions()
		choice, err := m.readInt("Choice: ")
		if err != nil {
			if err == io.EOF {
				return m.saveAndExit()
			}
			fmt.Fprintln(m.out, "Please enter a number.")
			continue
		}

		switch choice {
		case 1:
			m.registerStudent()
		case 2:
			m.createCourse()
		case 3:
			m.enrollStudent()
		case 4:
			m.updateGrade()
		case 5:
			m.viewStudentRecord()
		case 6:
			m.viewCourseRoster()
		case 7:
			m.showDeansList()
		case 8:
			m.showDepartmentStats()
		case 9:
			m.showTopStudent()
		case 10:
			m.listStudents()
		case 11:
			m.listCourses()
		case 12:
			m.showTuition()
		case 13:
			m.findStudentsByName()
		case 14:
			m.dropCourse()
		case 0:
			return m.saveAndExit()
		default:
			fmt.Fprintln(m.out, "Unknown option.")
		}
	}
}

func (m *menu) printOptions() {
	fmt.Fprint(m.out, `
===== REGISTRAR =====
 1. Register student
 2. Create course
 3. Enroll student in course
 4. Update grade
 5. View student record
 6. View course roster
 7. Dean's list
 8. Department statistics
 9. Top performing student
10. List all students
11. List all courses
12. Tuition report
13. Find students by name
14. Drop student from course
 0. Save and exit
`)
}

func (m *menu) registerStudent() {
	kind := m.readLine("Type (U)ndergraduate / (G)raduate: ")
	name := m.readLine("Name: ")
	email := m.readLine("Email: ")
	age, err := m.readInt("Age: ")
	if err != nil {
		fmt.Fprintln(m.out, "Invalid age.")
		return
	}
	department := m.readLine("Department: ")

	var student models.Student
	switch strings.ToUpper(kind) {
	case "U":
		yearLevel, err := m.readInt("Year level (1-4): ")
		if err != nil {
			fmt.Fprintln(m.out, "Invalid year level.")
			return
		}
		major := m.readLine("Major: ")
		student, err = m.app.University.RegisterUndergraduate(name, email, age, department, yearLevel, major)
		if err != nil {
			fmt.Fprintf(m.out, "ERROR: %v\n", err)
			return
		}
	case "G":
		topic := m.readLine("Research topic: ")
		advisor := m.readLine("Advisor: ")
		thesis := strings.EqualFold(m.readLine("Thesis track (y/n): "), "y")
		var err error
		student, err = m.app.University.RegisterGraduate(name, email, age, department, topic, advisor, thesis)
		if err != nil {
			fmt.Fprintf(m.out, "ERROR: %v\n", err)
			return
		}
	default:
		fmt.Fprintln(m.out, "Unknown student type.")
		return
	}

	fmt.Fprintf(m.out, "Registered %s (ID: %s)\n", student.Name(), student.StudentID())
}

func (m *menu) createCourse() {
	id := m.readLine("Course ID: ")
	name := m.readLine("Course name: ")
	department := m.readLine("Department: ")
	credits, err := m.readInt("Credits: ")
	if err != nil {
		fmt.Fprintln(m.out, "Invalid credits.")
		return
	}
	capacity, err := m.readInt("Max capacity: ")
	if err != nil {
		fmt.Fprintln(m.out, "Invalid capacity.")
		return
	}
	instructor := m.readLine("Instructor: ")

	course, err := m.app.University.CreateCourse(id, name, department, credits, capacity, instructor)
	if err != nil {
		fmt.Fprintf(m.out, "ERROR: %v\n", err)
		return
	}
	fmt.Fprintf(m.out, "Created course %s (%s)\n", course.Name(), course.ID())
}

func (m *menu) enrollStudent() {
	studentID := m.readLine("Student ID: ")
	courseID := m.readLine("Course ID: ")

	if err := m.app.University.Enroll(studentID, courseID); err != nil {
		fmt.Fprintf(m.out, "ERROR: %v\n", err)
		return
	}
	fmt.Fprintln(m.out, "Enrolled.")
}

func (m *menu) updateGrade() {
	studentID := m.readLine("Student ID: ")
	courseID := m.readLine("Course ID: ")
	grade, err := m.readFloat("Grade (0.0-4.0): ")
	if err != nil {
		fmt.Fprintln(m.out, "Invalid grade.")
		return
	}

	if err := m.app.University.UpdateGrade(studentID, courseID, grade); err != nil {
		fmt.Fprintf(m.out, "ERROR: %v\n", err)
		return
	}
	fmt.Fprintln(m.out, "Grade updated.")
}

func (m *menu) viewStudentRecord() {
	studentID := m.readLine("Student ID: ")
	student, ok := m.app.University.FindStudentByID(studentID)
	if !ok {
		fmt.Fprintf(m.out, "Student not found: %s\n", studentID)
		return
	}

	fmt.Fprintln(m.out, describeStudent(student))
	for _, course := range student.EnrolledCourses() {
		grade, _ := student.GradeFor(course)
		gradeText := "not graded"
		if grade > 0.0 {
			gradeText = fmt.Sprintf("%.1f", grade)
		}
		fmt.Fprintf(m.out, "  %s %s - %s\n", course.ID(), course.Name(), gradeText)
	}
}

func (m *menu) viewCourseRoster() {
	courseID := m.readLine("Course ID: ")
	course, ok := m.app.University.FindCourseByID(courseID)
	if !ok {
		fmt.Fprintf(m.out, "Course not found: %s\n", courseID)
		return
	}

	fmt.Fprintln(m.out, course.String())
	for _, student := range course.EnrolledStudents() {
		fmt.Fprintf(m.out, "  %s %s\n", student.StudentID(), student.Name())
	}
}

func (m *menu) showDeansList() {
	list := m.app.University.DeansList()
	if len(list) == 0 {
		fmt.Fprintln(m.out, "Nobody on the dean's list yet.")
		return
	}
	fmt.Fprintln(m.out, "===== DEAN'S LIST =====")
	for i, student := range list {
		fmt.Fprintf(m.out, "%2d. %s %s (GPA %.2f)\n", i+1, student.StudentID(), student.Name(), student.GPA())
	}
}

func (m *menu) showDepartmentStats() {
	department := m.readLine("Department: ")
	students := m.app.University.StudentsByDepartment(department)
	average := m.app.University.AverageGPAByDepartment(department)
	fmt.Fprintf(m.out, "%s: %d students, average GPA %.2f\n", department, len(students), average)
}

func (m *menu) showTopStudent() {
	student, ok := m.app.University.TopPerformingStudent()
	if !ok {
		fmt.Fprintln(m.out, "No graded students yet.")
		return
	}
	fmt.Fprintf(m.out, "Top performer: %s %s (GPA %.2f)\n", student.StudentID(), student.Name(), student.GPA())
}

func (m *menu) listStudents() {
	students := m.app.University.Students()
	if len(students) == 0 {
		fmt.Fprintln(m.out, "No students registered.")
		return
	}
	for _, student := range students {
		fmt.Fprintln(m.out, describeStudent(student))
	}

	stats := m.app.University.Statistics()
	fmt.Fprintf(m.out, "Total: %d (%d undergraduate, %d graduate), overall average GPA %.2f\n",
		stats.TotalStudents, stats.Undergraduates, stats.Graduates, stats.OverallAverageGPA)
}

func (m *menu) listCourses() {
	courses := m.app.University.Courses()
	if len(courses) == 0 {
		fmt.Fprintln(m.out, "No courses created.")
		return
	}
	for _, course := range courses {
		fmt.Fprintln(m.out, course.String())
	}
}

func (m *menu) showTuition() {
	for _, student := range m.app.University.Students() {
		fmt.Fprintf(m.out, "%s %s (%s): $%.2f\n",
			student.StudentID(), student.Name(), student.Type(), student.CalculateTuition())
	}
}

func (m *menu) findStudentsByName() {
	name := m.readLine("Name contains: ")
	matches := m.app.University.FindStudentsByName(name)
	if len(matches) == 0 {
		fmt.Fprintf(m.out, "No students matching %q.\n", name)
		return
	}
	for _, student := range matches {
		fmt.Fprintln(m.out, describeStudent(student))
	}
}

func (m *menu) dropCourse() {
	studentID := m.readLine("Student ID: ")
	courseID := m.readLine("Course ID: ")

	if err := m.app.University.Unenroll(studentID, courseID); err != nil {
		fmt.Fprintf(m.out, "ERROR: %v\n", err)
		return
	}
	fmt.Fprintln(m.out, "Dropped.")
}

func (m *menu) saveAndExit() error {
	fmt.Fprintln(m.out, "Saving...")
	if err := m.app.Store.Save(m.app.University); err != nil {
		fmt.Fprintf(m.out, "ERROR: some data could not be saved: %v\n", err)
		return err
	}
	fmt.Fprintln(m.out, "All data saved. Goodbye.")
	return nil
}

// describeStudent renders the one-line summary, with variant extras.
func describeStudent(student models.Student) string {
	base := fmt.Sprintf("%s %s | %s | Dept: %s | GPA: %.2f | Courses: %d",
		student.StudentID(), student.Name(), student.Email(), student.Department(), student.GPA(), student.CourseCount())
	switch s := student.(type) {
	case *models.Undergraduate:
		return fmt.Sprintf("%s | %s, %s", base, s.YearLevelName(), s.Major())
	case *models.Graduate:
		thesis := "non-thesis"
		if s.IsThesisTrack() {
			thesis = "thesis"
		}
		return fmt.Sprintf("%s | %s with %s (%s)", base, s.ResearchTopic(), s.Advisor(), thesis)
	default:
		return base
	}
}

func (m *menu) readLine(prompt string) string {
	fmt.Fprint(m.out, prompt)
	line, _ := m.in.ReadString('\n')
	return strings.TrimSpace(line)
}

func (m *menu) readInt(prompt string) (int, error) {
	fmt.Fprint(m.out, prompt)
	line, err := m.in.ReadString('\n')
	if err != nil && line == "" {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(line))
}

func (m *menu) readFloat(prompt string) (float64, error) {
	fmt.Fprint(m.out, prompt)
	line, err := m.in.ReadString('\n')
	if err != nil && line == "" {
		return 0, err
	}
	return strconv.ParseFloat(strings.TrimSpace(line), 64)
}
