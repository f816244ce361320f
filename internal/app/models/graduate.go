package models

// Graduate tuition components. Contract values, same as the undergraduate
// set: billing depends on these exact amounts.
const (
	gradCostPerCredit    = 1500.00
	gradResearchFee      = 2000.00
	gradLabFee           = 500.00
	thesisSupervisionFee = 1500.00

	// defaultFullTimeCredits is billed when a graduate has no enrollments
	// yet; they are treated as carrying a standard full-time load.
	defaultFullTimeCredits = 9
)

// Graduate is a student in a master's or doctoral program.
type Graduate struct {
	StudentBase

	researchTopic string
	advisor       string
	thesisTrack   bool
}

// NewGraduate validates the fields and builds a graduate student.
func NewGraduate(id, name, email string, age int, department, researchTopic, advisor string, thesisTrack bool) (*Graduate, error) {
	base, err := newStudentBase(id, name, email, age, department)
	if err != nil {
		return nil, err
	}
	return &Graduate{
		StudentBase:   base,
		researchTopic: researchTopic,
		advisor:       advisor,
		thesisTrack:   thesisTrack,
	}, nil
}

// Type returns the graduate discriminator.
func (g *Graduate) Type() StudentType { return TypeGraduate }

// CalculateTuition bills per credit across the currently enrolled courses,
// plus fixed research and lab fees, plus a supervision fee on the thesis
// track. Zero enrollments bill as the default full-time load.
func (g *Graduate) CalculateTuition() float64 {
	totalCredits := 0
	for _, course := range g.EnrolledCourses() {
		totalCredits += course.Credits()
	}
	if totalCredits == 0 {
		totalCredits = defaultFullTimeCredits
	}

	tuition := float64(totalCredits)*gradCostPerCredit + gradResearchFee + gradLabFee
	if g.thesisTrack {
		tuition += thesisSupervisionFee
	}
	return tuition
}

// ResearchTopic returns the current research topic.
func (g *Graduate) ResearchTopic() string { return g.researchTopic }

// Advisor returns the advisor's display name.
func (g *Graduate) Advisor() string { return g.advisor }

// IsThesisTrack reports whether the student is on the thesis track.
func (g *Graduate) IsThesisTrack() bool { return g.thesisTrack }

// SetResearchTopic replaces the research topic.
func (g *Graduate) SetResearchTopic(topic string) {
	g.researchTopic = topic
}

// SetAdvisor replaces the advisor.
func (g *Graduate) SetAdvisor(advisor string) {
	g.advisor = advisor
}

// SetThesisTrack toggles the thesis-track flag.
func (g *Graduate) SetThesisTrack(thesisTrack bool) {
	g.thesisTrack = thesisTrack
}
