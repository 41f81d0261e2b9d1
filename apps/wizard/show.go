package main

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/trezcool/apar/core/assessment"
)

// print renders the current step of snap.
func (cli *commandLine) print(snap assessment.Snapshot) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "\nStep %d/%d: %s\n", snap.Step, assessment.MaxStep, snap.Title)

	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	row := func(cells ...interface{}) {
		strs := make([]string, len(cells))
		for i, c := range cells {
			if v, ok := c.(assessment.Value); ok {
				strs[i] = v.String()
			} else {
				strs[i] = fmt.Sprint(c)
			}
		}
		fmt.Fprintln(tw, strings.Join(strs, "\t"))
	}

	switch snap.Section {
	case assessment.SectionProfile:
		for _, fld := range assessment.ProfileFields {
			v, _ := snap.Profile.Get(fld.Name)
			row(fld.Name, v, fld.Label)
		}
	case assessment.SectionLectures:
		row("#", "semester", "course", "periodAllotted", "periodEngaged", "%", "mfTeaching", "credits", "reportingOfficerOpinion")
		for i, r := range snap.Lectures {
			row(i+1, r.Semester, r.Course, r.PeriodAllotted, r.PeriodEngaged, r.PercentAchieved, r.MFTeaching,
				r.CreditsEarned, r.ReportingOfficerOpinion)
		}
	case assessment.SectionResults:
		row("#", "semester", "course", "averageResult", "averageOfColumn4", "factor", "rating", "credits", "reportingOfficerOpinion")
		for i, r := range snap.Results {
			row(i+1, r.Semester, r.Course, r.AverageResult, r.AverageOfColumn4, r.PerformanceFactor,
				assessment.Rating(r.PerformanceFactor), r.CreditsEarned, r.ReportingOfficerOpinion)
		}
	case assessment.SectionAttendance:
		row("#", "semester", "course", "studentPresent", "lectureEngaged", "studentRoll", "average", "factor", "rating",
			"credits", "reportingOfficerOpinion")
		for _, r := range snap.Attendance {
			row(r.SNo, r.Semester, r.Course, r.StudentPresent, r.LectureEngaged, r.StudentRoll, r.AverageAttendance,
				r.PerformanceFactor, assessment.Rating(r.PerformanceFactor), r.CreditsEarned, r.ReportingOfficerOpinion)
		}
		if len(snap.Attendance) > 0 {
			row("", "", "", "", "", "average of column", snap.Attendance[0].AverageOfColumn)
		}
	case assessment.SectionGuidance:
		row("#", "name", "funding", "duration", "cost", "credits")
		for i, p := range snap.Guidance.Projects {
			row(i+1, p.Name, p.Funding, p.Duration, p.Cost, p.Credits)
		}
		_ = tw.Flush()
		fmt.Fprintf(&buf, "innovation: %s\n", snap.Guidance.Innovation)
		fmt.Fprintf(&buf, "reportingOfficerOpinion: %s\n", snap.Guidance.ReportingOfficerOpinion)
		fmt.Fprintf(&buf, "totalCredits: %s\n", snap.Guidance.TotalCredits)
	}
	_ = tw.Flush()

	_, _ = cli.out.Write(buf.Bytes())
}
