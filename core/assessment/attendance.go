package assessment

// AttendanceRow is one course of the student attendance table.
type AttendanceRow struct {
	ID                      string `json:"id"`
	SNo                     int    `json:"sNo"`
	Semester                Value  `json:"semester"`
	Course                  Value  `json:"course"`
	StudentPresent          Value  `json:"studentPresent"`
	LectureEngaged          Value  `json:"lectureEngaged"`
	StudentRoll             Value  `json:"studentRoll"`
	ReportingOfficerOpinion Value  `json:"reportingOfficerOpinion"`

	// derived
	AverageAttendance Value `json:"averageAttendence"`
	AverageOfColumn   Value `json:"averageOfColumn"` // same on every row
	PerformanceFactor Value `json:"performanceFactor"`
	CreditsEarned     Value `json:"creditsEarned"`
}

func (r AttendanceRow) RowID() string { return r.ID }

var attendanceSpec = &TableSpec[AttendanceRow]{
	New: func(id string) AttendanceRow {
		return AttendanceRow{
			ID:                id,
			Semester:          Number(0),
			StudentPresent:    Number(0),
			LectureEngaged:    Number(0),
			StudentRoll:       Number(0),
			AverageAttendance: Number(0),
			AverageOfColumn:   Number(0),
			PerformanceFactor: Number(0),
			CreditsEarned:     Number(0),
		}
	},
	Set: func(r *AttendanceRow, field, raw string) bool {
		switch field {
		case "semester":
			r.Semester = ParseInt(raw, Empty())
		case "course":
			r.Course = ParseText(raw)
		case "studentPresent":
			r.StudentPresent = ParseNumber(raw, Empty())
		case "lectureEngaged":
			r.LectureEngaged = ParseNumber(raw, Empty())
		case "studentRoll":
			r.StudentRoll = ParseNumber(raw, Empty())
		case "reportingOfficerOpinion":
			r.ReportingOfficerOpinion = ParseText(raw)
		default:
			return false
		}
		return true
	},
	// derived values are kept as they were until all three inputs are filled
	Derive: func(r *AttendanceRow) {
		avg, ok := AverageAttendance(r.StudentPresent, r.LectureEngaged, r.StudentRoll)
		if !ok {
			return
		}
		r.AverageAttendance = avg
		r.PerformanceFactor = PerformanceFactor(avg)
		r.CreditsEarned = FactorCredits(r.PerformanceFactor)
	},
	Aggregate: func(rows []AttendanceRow) {
		averages := make([]Value, len(rows))
		for i := range rows {
			averages[i] = rows[i].AverageAttendance
		}
		colAvg := ColumnAverage(averages)
		for i := range rows {
			rows[i].SNo = i + 1
			rows[i].AverageOfColumn = colAvg
		}
	},
	MinRows:       1,
	MinRowsNotice: onlyRowNotice,
}

// AttendancePayload is the wire shape of one attendance row.
// averageOfColumn and creditsEarned travel as fixed two-decimal strings.
type AttendancePayload struct {
	SNo                     int     `json:"sNo"`
	Semester                int     `json:"semester" validate:"required"`
	Course                  string  `json:"course" validate:"notblank"`
	StudentPresent          float64 `json:"studentPresent" validate:"required"`
	LectureEngaged          float64 `json:"lectureEngaged" validate:"required"`
	StudentRoll             float64 `json:"studentRoll" validate:"required"`
	AverageAttendence       float64 `json:"averageAttendence"`
	AverageOfColumn         string  `json:"averageOfColumn"`
	PerformanceFactor       float64 `json:"performanceFactor"`
	CreditsEarned           string  `json:"creditsEarned"`
	ReportingOfficerOpinion string  `json:"reportingOfficerOpinion"`
}

func (r AttendanceRow) Payload() AttendancePayload {
	return AttendancePayload{
		SNo:                     r.SNo,
		Semester:                r.Semester.Int(),
		Course:                  r.Course.String(),
		StudentPresent:          r.StudentPresent.Num(),
		LectureEngaged:          r.LectureEngaged.Num(),
		StudentRoll:             r.StudentRoll.Num(),
		AverageAttendence:       r.AverageAttendance.Num(),
		AverageOfColumn:         Fixed2(r.AverageOfColumn),
		PerformanceFactor:       r.PerformanceFactor.Num(),
		CreditsEarned:           Fixed2(r.CreditsEarned),
		ReportingOfficerOpinion: r.ReportingOfficerOpinion.String(),
	}
}

// AttendanceSubmission is the single request body of the attendance section:
// one object carrying every row, never a bare list.
type AttendanceSubmission struct {
	Rows            []AttendancePayload `json:"rows"`
	AverageOfColumn string              `json:"averageOfColumn"`
}
