package assessment

const firstRowNotice = "The first row cannot be deleted."

// LectureRow is one course of the lecture engagement table.
type LectureRow struct {
	ID                      string `json:"id"`
	Semester                Value  `json:"semester"`
	Course                  Value  `json:"course"`
	PeriodAllotted          Value  `json:"periodAllotted"`
	PeriodEngaged           Value  `json:"periodEngaged"`
	MFTeaching              Value  `json:"mfTeaching"`
	ReportingOfficerOpinion Value  `json:"reportingOfficerOpinion"`

	// derived
	PercentAchieved Value `json:"percentAchieved"`
	CreditsEarned   Value `json:"creditsEarned"`
}

func (r LectureRow) RowID() string { return r.ID }

var lectureSpec = &TableSpec[LectureRow]{
	New: func(id string) LectureRow {
		return LectureRow{ID: id, MFTeaching: Number(DefaultTeachingFactor)}
	},
	Set: func(r *LectureRow, field, raw string) bool {
		switch field {
		case "semester":
			r.Semester = ParseText(raw)
		case "course":
			r.Course = ParseText(raw)
		case "periodAllotted":
			r.PeriodAllotted = ParseNumber(raw, Empty())
		case "periodEngaged":
			r.PeriodEngaged = ParseNumber(raw, Empty())
		case "mfTeaching":
			r.MFTeaching = ParseNumber(raw, Empty())
		case "reportingOfficerOpinion":
			r.ReportingOfficerOpinion = ParseText(raw)
		default:
			return false
		}
		return true
	},
	Derive: func(r *LectureRow) {
		r.PercentAchieved = PercentAchieved(r.PeriodEngaged, r.PeriodAllotted)
		r.CreditsEarned = LectureCredits(r.PercentAchieved, r.MFTeaching)
	},
	Locked:       func(index int) bool { return index == 0 },
	LockedNotice: firstRowNotice,
	MinRows:      1,
	// unreachable while the first row is locked
	MinRowsNotice: onlyRowNotice,
}

// LecturePayload is the wire shape of one lecture row.
type LecturePayload struct {
	Semester                string  `json:"semester" validate:"notblank"`
	Course                  string  `json:"course" validate:"notblank"`
	PeriodsAllotted         int     `json:"periodsAllotted" validate:"required"`
	PeriodEngaged           int     `json:"periodEngaged" validate:"required"`
	MFTeaching              float64 `json:"mfTeaching"`
	ReportingOfficerOpinion string  `json:"reportingOfficerOpinion"`
}

func (r LectureRow) Payload() LecturePayload {
	opinion := r.ReportingOfficerOpinion.String()
	if opinion == "" {
		opinion = "good"
	}
	return LecturePayload{
		Semester:                r.Semester.String(),
		Course:                  r.Course.String(),
		PeriodsAllotted:         r.PeriodAllotted.Int(),
		PeriodEngaged:           r.PeriodEngaged.Int(),
		MFTeaching:              r.MFTeaching.Num(),
		ReportingOfficerOpinion: opinion,
	}
}
