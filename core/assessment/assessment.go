package assessment

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/apar/core"
)

var (
	ErrNotFound       = errors.New("assessment not found")
	ErrRowNotFound    = errors.New("row not found")
	ErrUnknownSection = errors.New("unknown section")
)

// Assessment is one faculty member's in-progress self-assessment.
// Every section owns its state; nothing is shared between sections.
type Assessment struct {
	ID        string
	CreatedAt time.Time

	Wizard     *Wizard
	Profile    *Profile
	Lectures   *Table[LectureRow]
	Results    *Table[ResultRow]
	Attendance *Table[AttendanceRow]
	Guidance   *Guidance

	mu sync.Mutex
}

func New(id string) *Assessment {
	return &Assessment{
		ID:         id,
		CreatedAt:  time.Now().UTC(),
		Wizard:     NewWizard(),
		Profile:    newProfile(),
		Lectures:   NewTable(lectureSpec, 1),
		Results:    NewTable(resultSpec, 1),
		Attendance: NewTable(attendanceSpec, 1),
		Guidance:   newGuidance(),
	}
}

// Table returns the row store of a tabular section.
func (a *Assessment) Table(section string) (Tabular, error) {
	switch section {
	case SectionLectures:
		return a.Lectures, nil
	case SectionResults:
		return a.Results, nil
	case SectionAttendance:
		return a.Attendance, nil
	case SectionProjects, SectionGuidance:
		return a.Guidance.Projects, nil
	default:
		return nil, unknownSectionError(section)
	}
}

// SetField edits a scalar field of the profile or guidance section.
func (a *Assessment) SetField(section, field, raw string) error {
	switch section {
	case SectionProfile:
		return a.Profile.Set(field, raw)
	case SectionGuidance:
		return a.Guidance.Set(field, raw)
	default:
		return unknownSectionError(section)
	}
}

// Snapshot is a detached, serializable copy of an Assessment.
type Snapshot struct {
	ID         string           `json:"id"`
	Step       Step             `json:"step"`
	Section    string           `json:"section"`
	Title      string           `json:"title"`
	Profile    Profile          `json:"profile"`
	Lectures   []LectureRow     `json:"lectures"`
	Results    []ResultRow      `json:"results"`
	Attendance []AttendanceRow  `json:"attendance"`
	Guidance   GuidanceSnapshot `json:"guidance"`
	CreatedAt  time.Time        `json:"created_at"` // UTC
}

func (a *Assessment) Snapshot() Snapshot {
	step := a.Wizard.Current()
	return Snapshot{
		ID:         a.ID,
		Step:       step,
		Section:    step.Section(),
		Title:      step.Title(),
		Profile:    *a.Profile,
		Lectures:   a.Lectures.Rows(),
		Results:    a.Results.Rows(),
		Attendance: a.Attendance.Rows(),
		Guidance:   a.Guidance.Snapshot(),
		CreatedAt:  a.CreatedAt,
	}
}

func unknownSectionError(section string) error {
	return core.NewValidationError(
		errors.Wrapf(ErrUnknownSection, "%q", section),
		core.FieldError{Field: "section", Error: "unknown section " + `"` + section + `"`},
	)
}
