package assessment

// ProjectRow is one guided project. Credits are capped at 2 per project on submission.
type ProjectRow struct {
	ID       string `json:"id"`
	Name     Value  `json:"name"`
	Funding  Value  `json:"funding"` // internal/external
	Duration Value  `json:"duration"`
	Cost     Value  `json:"cost"`
	Credits  Value  `json:"credits"`
}

func (r ProjectRow) RowID() string { return r.ID }

// Guidance is the project guidance and innovation section.
type Guidance struct {
	Projects                *Table[ProjectRow]
	Innovation              string
	ReportingOfficerOpinion string
	TotalCredits            Value
}

func newGuidance() *Guidance {
	g := &Guidance{TotalCredits: Number(0)}
	g.Projects = NewTable(&TableSpec[ProjectRow]{
		New: func(id string) ProjectRow { return ProjectRow{ID: id} },
		Set: func(r *ProjectRow, field, raw string) bool {
			switch field {
			case "name":
				r.Name = ParseText(raw)
			case "funding":
				r.Funding = ParseText(raw)
			case "duration":
				r.Duration = ParseText(raw)
			case "cost":
				r.Cost = ParseText(raw)
			case "credits":
				r.Credits = ParseNumber(raw, Empty())
			default:
				return false
			}
			return true
		},
		Aggregate: func(rows []ProjectRow) { g.recompute(rows) },
	}, 0)
	return g
}

// Set edits the free-text fields of the section.
func (g *Guidance) Set(field, raw string) error {
	switch field {
	case "innovation":
		g.Innovation = raw
	case "reportingOfficerOpinion":
		g.ReportingOfficerOpinion = raw
	default:
		return unknownFieldError(field)
	}
	g.recompute(g.Projects.rows)
	return nil
}

func (g *Guidance) recompute(rows []ProjectRow) {
	credits := make([]Value, len(rows))
	for i := range rows {
		credits[i] = rows[i].Credits
	}
	g.TotalCredits = TotalProjectCredits(credits, g.Innovation)
}

// GuidanceSnapshot is a detached copy of the section.
type GuidanceSnapshot struct {
	Projects                []ProjectRow `json:"projects"`
	Innovation              string       `json:"innovation"`
	ReportingOfficerOpinion string       `json:"reportingOfficerOpinion"`
	TotalCredits            Value        `json:"totalCredits"`
}

func (g *Guidance) Snapshot() GuidanceSnapshot {
	return GuidanceSnapshot{
		Projects:                g.Projects.Rows(),
		Innovation:              g.Innovation,
		ReportingOfficerOpinion: g.ReportingOfficerOpinion,
		TotalCredits:            g.TotalCredits,
	}
}

type (
	ProjectPayload struct {
		Name     string  `json:"name" validate:"notblank"`
		Funding  string  `json:"funding"`
		Duration string  `json:"duration"`
		Cost     string  `json:"cost"`
		Credits  float64 `json:"credits" validate:"min=0,max=2"`
	}

	// GuidancePayload is the wire shape of the whole section.
	GuidancePayload struct {
		Projects                []ProjectPayload `json:"projects" validate:"dive"`
		Innovation              string           `json:"innovation"`
		ReportingOfficerOpinion string           `json:"reportingOfficerOpinion"`
		TotalCredits            float64          `json:"totalCredits"`
	}
)

func (g *Guidance) Payload() GuidancePayload {
	projects := make([]ProjectPayload, 0, g.Projects.Len())
	for _, p := range g.Projects.rows {
		projects = append(projects, ProjectPayload{
			Name:     p.Name.String(),
			Funding:  p.Funding.String(),
			Duration: p.Duration.String(),
			Cost:     p.Cost.String(),
			Credits:  p.Credits.Num(),
		})
	}
	return GuidancePayload{
		Projects:                projects,
		Innovation:              g.Innovation,
		ReportingOfficerOpinion: g.ReportingOfficerOpinion,
		TotalCredits:            g.TotalCredits.Num(),
	}
}
