package assessment

// ResultRow is one course of the result performance table.
type ResultRow struct {
	ID                      string `json:"id"`
	Semester                Value  `json:"semester"`
	Course                  Value  `json:"course"`
	AverageResult           Value  `json:"averageResult"`
	AverageOfColumn4        Value  `json:"averageOfColumn4"`
	ReportingOfficerOpinion Value  `json:"reportingOfficerOpinion"`

	// derived
	PerformanceFactor Value `json:"performanceFactors"`
	CreditsEarned     Value `json:"creditsEarned"`
}

func (r ResultRow) RowID() string { return r.ID }

var resultSpec = &TableSpec[ResultRow]{
	New: func(id string) ResultRow {
		return ResultRow{ID: id, Semester: Number(0), AverageResult: Number(0)}
	},
	Set: func(r *ResultRow, field, raw string) bool {
		switch field {
		case "semester":
			r.Semester = ParseInt(raw, Empty())
		case "course":
			r.Course = ParseText(raw)
		case "averageResult":
			r.AverageResult = ParseNumber(raw, Empty())
		case "averageOfColumn4":
			r.AverageOfColumn4 = ParseNumber(raw, Empty())
		case "reportingOfficerOpinion":
			r.ReportingOfficerOpinion = ParseText(raw)
		default:
			return false
		}
		return true
	},
	Derive: func(r *ResultRow) {
		if !r.AverageOfColumn4.IsNumber() {
			r.PerformanceFactor, r.CreditsEarned = Empty(), Empty()
			return
		}
		r.PerformanceFactor = PerformanceFactor(r.AverageOfColumn4)
		r.CreditsEarned = FactorCredits(r.PerformanceFactor)
	},
	MinRows:       1,
	MinRowsNotice: onlyRowNotice,
}

// ResultPayload is the wire shape of one result row.
type ResultPayload struct {
	Semester      int     `json:"semester" validate:"required"`
	Course        string  `json:"course" validate:"notblank"`
	AverageResult float64 `json:"averageResult"`
}

func (r ResultRow) Payload() ResultPayload {
	return ResultPayload{
		Semester:      r.Semester.Int(),
		Course:        r.Course.String(),
		AverageResult: r.AverageResult.Num(),
	}
}
