package transform

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/KimTsegzc/Peel-Potato/pkg/peelpotato/bridge"
)

// newDataWorkbook builds a grp/emp_id/emp_nm/hours/bonus table.
func newDataWorkbook(t *testing.T) *bridge.Workbook {
	t.Helper()
	f := excelize.NewFile()
	sheet := "Sheet1"
	rows := [][]interface{}{
		{"grp", "emp_id", "emp_nm", "hours", "bonus"},
		{"a", "e1", "Ann", 8, 1.5},
		{"a", "e1", "Ann", 7, 0.5},
		{"a", "e2", "Bob", 6, 1},
		{"b", "e3", "Cid", 5, 2},
	}
	for i, row := range rows {
		cell := "A" + strconv.Itoa(i+1)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	wb := bridge.Wrap(f)
	t.Cleanup(func() { wb.Close() })
	return wb
}

// saveAuxWorkbook writes a one-sheet workbook to a temp file.
func saveAuxWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	_, err := f.NewSheet(sheet)
	require.NoError(t, err)
	require.NoError(t, f.DeleteSheet("Sheet1"))
	for i, row := range rows {
		r := row
		require.NoError(t, f.SetSheetRow(sheet, "A"+strconv.Itoa(i+1), &r))
	}
	path := filepath.Join(t.TempDir(), "aux.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestSummarize(t *testing.T) {
	wb := newDataWorkbook(t)

	name, err := Summarize(wb, "Sheet1")
	require.NoError(t, err)
	assert.Equal(t, "Sheet1_sum", name)

	rows, err := wb.GetRows(name)
	require.NoError(t, err)

	// 1 header + 3 ids + 2 group subtotals + 1 total.
	require.Len(t, rows, 7)
	assert.Equal(t, []string{"grp", "emp_id", "emp_nm", "hours", "bonus"}, rows[0])

	// e1's two rows are summed.
	assert.Equal(t, []string{"a", "e1", "Ann", "15", "2"}, rows[1])
	assert.Equal(t, []string{"a", "e2", "Bob", "6", "1"}, rows[2])
	assert.Equal(t, []string{"b", "e3", "Cid", "5", "2"}, rows[3])

	assert.Equal(t, "a subtotal", rows[4][1])
	assert.Equal(t, "21", rows[4][3])
	assert.Equal(t, "b subtotal", rows[5][1])
	assert.Equal(t, "Total", rows[6][1])
	assert.Equal(t, "26", rows[6][3])
	assert.Equal(t, "5", rows[6][4])
}

func TestSummarizeNoIDColumn(t *testing.T) {
	f := excelize.NewFile()
	vals := []interface{}{"foo", "bar"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &vals))
	wb := bridge.Wrap(f)
	defer wb.Close()

	_, err := Summarize(wb, "Sheet1")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestSelectColumns(t *testing.T) {
	wb := newDataWorkbook(t)
	dict := saveAuxWorkbook(t, DictSheetName, [][]interface{}{
		{"old", "new"},
		{"EMP_ID", "Employee"},
		{"hours", "Hours Worked"},
		{"bonus", ""}, // empty new drops the column
	})

	name, err := SelectColumns(wb, "Sheet1", dict)
	require.NoError(t, err)
	assert.Equal(t, "Sheet1_slc", name)

	rows, err := wb.GetRows(name)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"Employee", "Hours Worked"}, rows[0])
	assert.Equal(t, []string{"e1", "8"}, rows[1])
}

func TestSelectColumnsEmptyDictionary(t *testing.T) {
	wb := newDataWorkbook(t)
	dict := saveAuxWorkbook(t, DictSheetName, [][]interface{}{
		{"old", "new"},
		{"emp_id", ""},
	})

	_, err := SelectColumns(wb, "Sheet1", dict)
	assert.ErrorIs(t, err, ErrEmptyDictionary)
}

func TestSelectColumnsNoMatch(t *testing.T) {
	wb := newDataWorkbook(t)
	dict := saveAuxWorkbook(t, DictSheetName, [][]interface{}{
		{"old", "new"},
		{"salary", "Salary"},
	})

	_, err := SelectColumns(wb, "Sheet1", dict)
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestEnrich(t *testing.T) {
	wb := newDataWorkbook(t)
	ref := saveAuxWorkbook(t, RefSheetName, [][]interface{}{
		{"emp_id", "title", "site"},
		{"e1", "analyst", "east"},
		{"e3", "manager", "west"},
	})

	name, err := Enrich(wb, "Sheet1", ref)
	require.NoError(t, err)
	assert.Equal(t, "Sheet1_info", name)

	rows, err := wb.GetRows(name)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"grp", "emp_id", "emp_nm", "hours", "bonus", "title", "site"}, rows[0])
	assert.Equal(t, "analyst", rows[1][5])

	// Unmatched id keeps empty reference cells. GetRows trims
	// trailing empties, so just confirm no title leaked in.
	bobRow := rows[3]
	if len(bobRow) > 5 {
		assert.Empty(t, bobRow[5])
	}
}

func TestFindColumn(t *testing.T) {
	headers := []string{"Date", "GRP", "emp_id", "Emp_NM", "hours"}

	idx, ok := FindColumn(headers, IDColumnNames)
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	idx, ok = FindColumn(headers, GroupColumnNames)
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	idx, ok = FindColumn(headers, NameColumnNames)
	require.True(t, ok)
	assert.Equal(t, 3, idx)

	idx, ok = FindColumn(headers, DateColumnNames)
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	_, ok = FindColumn(headers, []string{"salary"})
	assert.False(t, ok)
}

func TestReadTablePadsRows(t *testing.T) {
	f := excelize.NewFile()
	h := []interface{}{"id", "a", "b"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &h))
	short := []interface{}{"e1", "1"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &short))
	wb := bridge.Wrap(f)
	defer wb.Close()

	table, err := ReadTable(wb, "Sheet1")
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Len(t, table.Rows[0], 3)
	assert.Equal(t, "", table.Rows[0][2])
}
