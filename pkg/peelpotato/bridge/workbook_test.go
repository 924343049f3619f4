package bridge

import (
	"errors"
	"path/filepath"
	"strconv"
	"testing"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/KimTsegzc/Peel-Potato/pkg/peelpotato/models"
)

// newTestWorkbook builds a small sales table with a header row.
func newTestWorkbook(t *testing.T) *Workbook {
	t.Helper()
	f := excelize.NewFile()

	sheet := "Sheet1"
	f.SetCellValue(sheet, "A1", "Month")
	f.SetCellValue(sheet, "B1", "Sales")
	f.SetCellValue(sheet, "C1", "Cost")
	months := []string{"Jan", "Feb", "Mar", "Apr"}
	for i, m := range months {
		row := strconv.Itoa(i + 2)
		f.SetCellValue(sheet, "A"+row, m)
		f.SetCellValue(sheet, "B"+row, 100+i*10)
		f.SetCellValue(sheet, "C"+row, 60+i*5)
	}

	wb := Wrap(f)
	t.Cleanup(func() { wb.Close() })
	return wb
}

func TestUsedExtent(t *testing.T) {
	wb := newTestWorkbook(t)

	ext, err := wb.UsedExtent("Sheet1")
	if err != nil {
		t.Fatalf("UsedExtent failed: %v", err)
	}

	want := models.UsedExtent{FirstRow: 1, LastRow: 5, FirstCol: 1, LastCol: 3}
	if ext != want {
		t.Errorf("Expected extent %+v, got %+v", want, ext)
	}
}

func TestUsedExtentEmptySheet(t *testing.T) {
	f := excelize.NewFile()
	wb := Wrap(f)
	defer wb.Close()

	ext, err := wb.UsedExtent("Sheet1")
	if err != nil {
		t.Fatalf("UsedExtent failed: %v", err)
	}
	if ext.Valid() {
		t.Errorf("Expected invalid extent for empty sheet, got %+v", ext)
	}
}

func TestUsedExtentMissingSheet(t *testing.T) {
	wb := newTestWorkbook(t)

	_, err := wb.UsedExtent("Nope")
	if err == nil {
		t.Fatal("Expected error for missing sheet")
	}
}

func TestUsedExtentRecomputed(t *testing.T) {
	wb := newTestWorkbook(t)

	before, err := wb.UsedExtent("Sheet1")
	if err != nil {
		t.Fatalf("UsedExtent failed: %v", err)
	}

	// Append a row; the next call must see it.
	wb.f.SetCellValue("Sheet1", "A6", "May")
	wb.f.SetCellValue("Sheet1", "B6", 150)

	after, err := wb.UsedExtent("Sheet1")
	if err != nil {
		t.Fatalf("UsedExtent failed: %v", err)
	}
	if after.LastRow != before.LastRow+1 {
		t.Errorf("Expected last row %d after append, got %d", before.LastRow+1, after.LastRow)
	}
}

func TestHeaderValue(t *testing.T) {
	wb := newTestWorkbook(t)

	got, err := wb.HeaderValue("Sheet1", 2, 1)
	if err != nil {
		t.Fatalf("HeaderValue failed: %v", err)
	}
	if got != "Sales" {
		t.Errorf("Expected 'Sales', got %q", got)
	}
}

func TestAddAndReplaceChart(t *testing.T) {
	wb := newTestWorkbook(t)

	label := models.ResolvedRange{Sheet: "Sheet1", R1: 2, C1: 1, R2: 5, C2: 1}
	req := &models.ChartRequest{
		Label: &label,
		Series: []models.Series{
			{Name: "Sales", Values: models.ResolvedRange{Sheet: "Sheet1", R1: 2, C1: 2, R2: 5, C2: 2}},
			{Name: "Cost", Values: models.ResolvedRange{Sheet: "Sheet1", R1: 2, C1: 3, R2: 5, C2: 3}},
		},
		Kind: models.KindColumn,
		Mode: models.ModeClustered,
	}

	anchor := models.ChartAnchor{Sheet: "Sheet1", Cell: "E2"}
	if err := wb.AddChart(anchor, req, DefaultStyle()); err != nil {
		t.Fatalf("AddChart failed: %v", err)
	}

	// Rebuild in place with a different type.
	req.Kind = models.KindLine
	req.Mode = models.ModeStacked
	if err := wb.ReplaceChart(anchor, req, DefaultStyle()); err != nil {
		t.Fatalf("ReplaceChart failed: %v", err)
	}

	// The workbook must still round-trip through a save.
	tmp := filepath.Join(t.TempDir(), "chart.xlsx")
	if err := wb.SaveAs(tmp); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
	reopened, err := Open(tmp)
	if err != nil {
		t.Fatalf("Failed to reopen saved workbook: %v", err)
	}
	defer reopened.Close()
}

func TestAddChartMissingSheet(t *testing.T) {
	wb := newTestWorkbook(t)

	req := &models.ChartRequest{
		Series: []models.Series{
			{Values: models.ResolvedRange{Sheet: "Nope", R1: 2, C1: 2, R2: 5, C2: 2}},
		},
		Kind: models.KindColumn,
		Mode: models.ModeClustered,
	}
	err := wb.AddChart(models.ChartAnchor{Sheet: "Nope", Cell: "E2"}, req, DefaultStyle())
	if err == nil {
		t.Fatal("Expected error for missing sheet")
	}
}

func TestWriteSheet(t *testing.T) {
	wb := newTestWorkbook(t)

	name, err := wb.WriteSheet("Sheet1_sum", []string{"grp", "total"}, [][]string{
		{"a", "10"},
		{"b", "20"},
	})
	if err != nil {
		t.Fatalf("WriteSheet failed: %v", err)
	}
	if name != "Sheet1_sum" {
		t.Errorf("Unexpected sheet name %q", name)
	}
	if !wb.SheetExists(name) {
		t.Fatal("Created sheet not found")
	}

	rows, err := wb.GetRows(name)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "grp" || rows[2][1] != "20" {
		t.Errorf("Unexpected sheet content: %v", rows)
	}

	// Writing again replaces the sheet instead of failing.
	if _, err := wb.WriteSheet("Sheet1_sum", []string{"grp"}, nil); err != nil {
		t.Fatalf("WriteSheet replace failed: %v", err)
	}
}

func TestAddPivotTable(t *testing.T) {
	wb := newTestWorkbook(t)

	data := models.ResolvedRange{Sheet: "Sheet1", R1: 1, C1: 1, R2: 5, C2: 3}
	dest := models.ResolvedRange{Sheet: "Sheet1", R1: 1, C1: 5, R2: 7, C2: 7}
	if err := wb.AddPivotTable(data, dest, "Month", []string{"Sales", "Cost"}); err != nil {
		t.Fatalf("AddPivotTable failed: %v", err)
	}

	// The pivot definition must survive a save.
	tmp := filepath.Join(t.TempDir(), "pivot.xlsx")
	if err := wb.SaveAs(tmp); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
	reopened, err := Open(tmp)
	if err != nil {
		t.Fatalf("Failed to reopen saved workbook: %v", err)
	}
	defer reopened.Close()

	pivots, err := reopened.f.GetPivotTables("Sheet1")
	if err != nil {
		t.Fatalf("GetPivotTables failed: %v", err)
	}
	if len(pivots) != 1 {
		t.Fatalf("Expected 1 pivot table, got %d", len(pivots))
	}
}

func TestAddPivotTableMissingSheet(t *testing.T) {
	wb := newTestWorkbook(t)

	data := models.ResolvedRange{Sheet: "Gone", R1: 1, C1: 1, R2: 5, C2: 3}
	dest := models.ResolvedRange{Sheet: "Gone", R1: 1, C1: 5, R2: 7, C2: 7}
	err := wb.AddPivotTable(data, dest, "Month", []string{"Sales"})
	if !errors.Is(err, ErrSheetNotFound) {
		t.Fatalf("Expected ErrSheetNotFound, got %v", err)
	}
}

func TestSanitizeSheetName(t *testing.T) {
	tests := []struct {
		name     string
		suffix   string
		expected string
	}{
		{"Sheet1", "_sum", "Sheet1_sum"},
		{"a:b/c", "", "a_b_c"},
		{"Report [2024]", "_slc", "Report _2024__slc"},
		{"very long sheet name that keeps going on", "_sum", "very long sheet name that k_sum"},
		// Within the cap in characters even though it is over 31 bytes.
		{"a工资表工资表工资表工资表工资", "_sum", "a工资表工资表工资表工资表工资_sum"},
		// CJK names truncate on character boundaries.
		{"工资表工资表工资表工资表工资表工资表工资表工资表工资表工资表", "_sum", "工资表工资表工资表工资表工资表工资表工资表工资表工资表_sum"},
	}
	for _, tt := range tests {
		got := SanitizeSheetName(tt.name, tt.suffix)
		if got != tt.expected {
			t.Errorf("SanitizeSheetName(%q, %q) = %q, expected %q", tt.name, tt.suffix, got, tt.expected)
		}
		if !utf8.ValidString(got) {
			t.Errorf("Sanitized name %q is not valid UTF-8", got)
		}
		if utf8.RuneCountInString(got) > 31 {
			t.Errorf("Sanitized name %q exceeds 31 chars", got)
		}
	}
}

func TestChartTypeForLineModes(t *testing.T) {
	// The host library offers no stacked line chart types, so every
	// line mode maps to the plain line type.
	for _, mode := range models.KindLine.Modes() {
		if got := chartTypeFor(models.KindLine, mode); got != excelize.Line {
			t.Errorf("chartTypeFor(line, %s) = %v, expected %v", mode, got, excelize.Line)
		}
	}
}
