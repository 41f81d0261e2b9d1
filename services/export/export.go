// Package exportsvc renders an assessment snapshot as an Excel workbook.
package exportsvc

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/apar/core/assessment"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// sheet names, in wizard order
const (
	SheetProfile    = "Part A"
	SheetLectures   = "Lectures"
	SheetResults    = "Results"
	SheetAttendance = "Attendance"
	SheetGuidance   = "Guidance"
)

type sheet struct {
	name   string
	header []string
	rows   [][]interface{}
}

// Workbook builds one sheet per section, derived values included.
// The caller must Close the returned file.
func Workbook(snap assessment.Snapshot) (*excelize.File, error) {
	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, "creating header style")
	}

	for i, sh := range sheets(snap) {
		if i == 0 {
			if err = f.SetSheetName(f.GetSheetName(0), sh.name); err != nil {
				_ = f.Close()
				return nil, errors.Wrapf(err, "naming sheet %s", sh.name)
			}
		} else if _, err = f.NewSheet(sh.name); err != nil {
			_ = f.Close()
			return nil, errors.Wrapf(err, "adding sheet %s", sh.name)
		}
		if err = writeSheet(f, sh, bold); err != nil {
			_ = f.Close()
			return nil, errors.Wrapf(err, "writing sheet %s", sh.name)
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// Write streams the workbook of snap to w.
func Write(w io.Writer, snap assessment.Snapshot) error {
	f, err := Workbook(snap)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return errors.Wrap(f.Write(w), "writing workbook")
}

func writeSheet(f *excelize.File, sh sheet, headerStyle int) error {
	header := make([]interface{}, len(sh.header))
	for i, h := range sh.header {
		header[i] = h
	}
	if err := f.SetSheetRow(sh.name, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(sh.header), 1)
	if err != nil {
		return err
	}
	if err = f.SetCellStyle(sh.name, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, row := range sh.rows {
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err = f.SetSheetRow(sh.name, axis, &row); err != nil {
			return err
		}
	}
	return nil
}

// cell keeps numbers numeric in the workbook; unset values stay blank.
func cell(v assessment.Value) interface{} {
	if f, ok := v.Float(); ok {
		return f
	}
	if v.IsEmpty() {
		return nil
	}
	return v.String()
}

func sheets(snap assessment.Snapshot) []sheet {
	profile := sheet{name: SheetProfile, header: []string{"Field", "Value"}}
	for _, fld := range assessment.ProfileFields {
		v, _ := snap.Profile.Get(fld.Name)
		profile.rows = append(profile.rows, []interface{}{fld.Label, cell(v)})
	}

	lectures := sheet{name: SheetLectures, header: []string{
		"S.No", "Semester", "Course", "Periods Allotted", "Periods Engaged",
		"% Achieved", "Teaching Factor", "Credits Earned", "Reporting Officer Opinion",
	}}
	for i, r := range snap.Lectures {
		lectures.rows = append(lectures.rows, []interface{}{
			i + 1, cell(r.Semester), cell(r.Course), cell(r.PeriodAllotted), cell(r.PeriodEngaged),
			cell(r.PercentAchieved), cell(r.MFTeaching), cell(r.CreditsEarned), cell(r.ReportingOfficerOpinion),
		})
	}

	results := sheet{name: SheetResults, header: []string{
		"S.No", "Semester", "Course", "Average Result", "Average of Column 4",
		"Performance Factor", "Rating", "Credits Earned", "Reporting Officer Opinion",
	}}
	for i, r := range snap.Results {
		results.rows = append(results.rows, []interface{}{
			i + 1, cell(r.Semester), cell(r.Course), cell(r.AverageResult), cell(r.AverageOfColumn4),
			cell(r.PerformanceFactor), assessment.Rating(r.PerformanceFactor), cell(r.CreditsEarned),
			cell(r.ReportingOfficerOpinion),
		})
	}

	attendance := sheet{name: SheetAttendance, header: []string{
		"S.No", "Semester", "Course", "Students Present", "Lectures Engaged", "Student Roll",
		"Average Attendance", "Average of Column", "Performance Factor", "Rating", "Credits Earned",
		"Reporting Officer Opinion",
	}}
	for _, r := range snap.Attendance {
		attendance.rows = append(attendance.rows, []interface{}{
			r.SNo, cell(r.Semester), cell(r.Course), cell(r.StudentPresent), cell(r.LectureEngaged),
			cell(r.StudentRoll), cell(r.AverageAttendance), cell(r.AverageOfColumn), cell(r.PerformanceFactor),
			assessment.Rating(r.PerformanceFactor), cell(r.CreditsEarned), cell(r.ReportingOfficerOpinion),
		})
	}

	guidance := sheet{name: SheetGuidance, header: []string{"S.No", "Project", "Funding", "Duration", "Cost", "Credits"}}
	for i, p := range snap.Guidance.Projects {
		guidance.rows = append(guidance.rows, []interface{}{
			i + 1, cell(p.Name), cell(p.Funding), cell(p.Duration), cell(p.Cost), cell(p.Credits),
		})
	}
	guidance.rows = append(guidance.rows,
		[]interface{}{},
		[]interface{}{"", "Innovation", snap.Guidance.Innovation},
		[]interface{}{"", "Reporting Officer Opinion", snap.Guidance.ReportingOfficerOpinion},
		[]interface{}{"", "Total Credits", cell(snap.Guidance.TotalCredits)},
	)

	return []sheet{profile, lectures, results, attendance, guidance}
}
