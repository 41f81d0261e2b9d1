package assessment

// Step is the position of the wizard.
type Step int

const (
	StepProfile Step = iota + 1
	StepLectures
	StepResults
	StepAttendance
	StepGuidance

	MinStep = StepProfile
	MaxStep = StepGuidance
)

// Section names, as used by the API routes and the terminal wizard.
const (
	SectionProfile    = "profile"
	SectionLectures   = "lectures"
	SectionResults    = "results"
	SectionAttendance = "attendance"
	SectionGuidance   = "guidance"
	SectionProjects   = "projects" // rows of the guidance step
)

var stepSections = map[Step]string{
	StepProfile:    SectionProfile,
	StepLectures:   SectionLectures,
	StepResults:    SectionResults,
	StepAttendance: SectionAttendance,
	StepGuidance:   SectionGuidance,
}

var stepTitles = map[Step]string{
	StepProfile:    "Faculty Assessment Form",
	StepLectures:   "Performance Of Engaging Lectures",
	StepResults:    "Performance of the Result",
	StepAttendance: "Performance of Attendance of Students",
	StepGuidance:   "Guidance and Innovation in Student's Major Project Work",
}

func (s Step) Section() string { return stepSections[s] }
func (s Step) Title() string   { return stepTitles[s] }

// Wizard tracks which section is shown. Moves past either end are no-ops.
type Wizard struct {
	position Step
}

func NewWizard() *Wizard {
	return &Wizard{position: MinStep}
}

func (w *Wizard) Advance() Step {
	if w.position < MaxStep {
		w.position++
	}
	return w.position
}

func (w *Wizard) Retreat() Step {
	if w.position > MinStep {
		w.position--
	}
	return w.position
}

func (w *Wizard) Current() Step {
	return w.position
}
