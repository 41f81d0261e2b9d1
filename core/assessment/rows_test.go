package assessment

import (
	"strconv"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/apar/core"
)

func sequentialIDs(t *testing.T) {
	var n int
	newRowID = func() string {
		n++
		return "row-" + strconv.Itoa(n)
	}
	t.Cleanup(func() { newRowID = defaultRowID })
}

var defaultRowID = newRowID

func TestTable_Lectures(t *testing.T) {
	sequentialIDs(t)
	tbl := NewTable(lectureSpec, 1)
	first, _ := tbl.IDAt(0)

	row, ok := tbl.Get(first)
	require.True(t, ok)
	assert.Equal(t, Number(DefaultTeachingFactor), row.MFTeaching)
	assert.Equal(t, Empty(), row.PercentAchieved)

	require.NoError(t, tbl.Update(first, "periodAllotted", "50"))
	require.NoError(t, tbl.Update(first, "periodEngaged", "45"))
	row, _ = tbl.Get(first)
	assert.Equal(t, Number(90), row.PercentAchieved)
	assert.Equal(t, Number(3.6), row.CreditsEarned)

	// invalid input empties the field and its derived values
	require.NoError(t, tbl.Update(first, "periodEngaged", "x4"))
	row, _ = tbl.Get(first)
	assert.Equal(t, Empty(), row.PeriodEngaged)
	assert.Equal(t, Empty(), row.PercentAchieved)
	assert.Equal(t, Empty(), row.CreditsEarned)

	// the first row can never be deleted
	err := tbl.Delete(first)
	require.Error(t, err)
	assert.True(t, core.IsRefused(err))
	assert.Equal(t, firstRowNotice, err.Error())
	assert.Equal(t, 1, tbl.Len())

	second := tbl.Add()
	third := tbl.Add()
	assert.Equal(t, 3, tbl.Len())
	require.NoError(t, tbl.Delete(second))
	assert.Equal(t, []string{first, third}, rowIDs(tbl.Rows()))

	// unknown identities are ignored
	assert.NoError(t, tbl.Update("nope", "course", "Maths"))
	assert.NoError(t, tbl.Delete("nope"))
	assert.Equal(t, 2, tbl.Len())

	// identities are never reused
	fourth := tbl.Add()
	assert.NotEqual(t, second, fourth)
}

func TestTable_UnknownField(t *testing.T) {
	tbl := NewTable(resultSpec, 1)
	id, _ := tbl.IDAt(0)
	before := tbl.Rows()

	err := tbl.Update(id, "creditsEarned", "10")
	require.Error(t, err)
	assert.True(t, errors.Is(errors.Cause(err).(*core.ValidationError).Err, ErrUnknownField))
	assert.Equal(t, before, tbl.Rows())
}

func TestTable_Results(t *testing.T) {
	tbl := NewTable(resultSpec, 1)
	id, _ := tbl.IDAt(0)

	tests := []struct {
		raw         string
		wantFactor  Value
		wantCredits Value
	}{
		{raw: "81", wantFactor: Number(1), wantCredits: Number(10)},
		{raw: "80.99", wantFactor: Number(0.7), wantCredits: Number(7)},
		{raw: "41", wantFactor: Number(0.5), wantCredits: Number(5)},
		{raw: "12", wantFactor: Number(0.2), wantCredits: Number(2)},
		{raw: "0", wantFactor: Number(0.2), wantCredits: Number(2)},
		{raw: "65 marks", wantFactor: Number(0.7), wantCredits: Number(7)},
		{raw: "", wantFactor: Empty(), wantCredits: Empty()},
		{raw: "abc", wantFactor: Empty(), wantCredits: Empty()},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			require.NoError(t, tbl.Update(id, "averageOfColumn4", tt.raw))
			row, _ := tbl.Get(id)
			assert.Equal(t, tt.wantFactor, row.PerformanceFactor)
			assert.Equal(t, tt.wantCredits, row.CreditsEarned)
		})
	}

	// the only row cannot be deleted
	err := tbl.Delete(id)
	require.Error(t, err)
	assert.Equal(t, onlyRowNotice, err.Error())
	assert.Equal(t, 1, tbl.Len())

	// but the first one can once there are others
	second := tbl.Add()
	require.NoError(t, tbl.Delete(id))
	assert.Equal(t, []string{second}, rowIDs(tbl.Rows()))
}

func TestTable_Attendance(t *testing.T) {
	tbl := NewTable(attendanceSpec, 1)
	first, _ := tbl.IDAt(0)

	set := func(id string, present, engaged, roll string) {
		require.NoError(t, tbl.Update(id, "studentPresent", present))
		require.NoError(t, tbl.Update(id, "lectureEngaged", engaged))
		require.NoError(t, tbl.Update(id, "studentRoll", roll))
	}

	set(first, "45", "50", "1")
	row, _ := tbl.Get(first)
	assert.Equal(t, Number(90), row.AverageAttendance)
	assert.Equal(t, Number(1), row.PerformanceFactor)
	assert.Equal(t, Number(10), row.CreditsEarned)
	assert.Equal(t, Number(90), row.AverageOfColumn)

	second := tbl.Add()
	rows := tbl.Rows()
	assert.Equal(t, 2, rows[1].SNo)
	// the new row counts as 0 in the column average
	assert.Equal(t, Number(45), rows[0].AverageOfColumn)
	assert.Equal(t, Number(45), rows[1].AverageOfColumn)

	set(second, "25", "50", "1")
	for _, r := range tbl.Rows() {
		assert.Equal(t, Number(70), r.AverageOfColumn)
	}
	row, _ = tbl.Get(second)
	assert.Equal(t, Number(50), row.AverageAttendance)
	assert.Equal(t, Number(0.5), row.PerformanceFactor)
	assert.Equal(t, Number(5), row.CreditsEarned)

	// incomplete inputs keep the previous derived values
	require.NoError(t, tbl.Update(second, "studentRoll", ""))
	row, _ = tbl.Get(second)
	assert.Equal(t, Empty(), row.StudentRoll)
	assert.Equal(t, Number(50), row.AverageAttendance)
	assert.Equal(t, Number(5), row.CreditsEarned)

	// deleting renumbers and refreshes the column average
	require.NoError(t, tbl.Delete(first))
	rows = tbl.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].SNo)
	assert.Equal(t, Number(50), rows[0].AverageOfColumn)

	err := tbl.Delete(second)
	require.Error(t, err)
	assert.True(t, core.IsRefused(err))
	assert.Equal(t, 1, tbl.Len())
}

func TestTable_RowsAreCopies(t *testing.T) {
	tbl := NewTable(lectureSpec, 1)
	rows := tbl.Rows()
	rows[0].Course = Text("changed")

	fresh := tbl.Rows()
	assert.Equal(t, Empty(), fresh[0].Course)
}

func rowIDs[R Row](rows []R) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.RowID()
	}
	return ids
}
