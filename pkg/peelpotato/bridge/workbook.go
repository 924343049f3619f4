// Package bridge is the excelize-backed spreadsheet adapter. It owns all
// workbook I/O: extent discovery, chart creation, and output sheets. The
// resolver and the orchestration layer never touch excelize directly.
package bridge

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/xuri/excelize/v2"

	"github.com/KimTsegzc/Peel-Potato/pkg/peelpotato/models"
)

// ErrSheetNotFound indicates the named worksheet does not exist in the
// workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// Workbook wraps one open workbook file.
type Workbook struct {
	f    *excelize.File
	path string
}

// Open opens an existing workbook.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &Workbook{f: f, path: path}, nil
}

// Wrap adopts an already-open excelize file. Used by tests and callers
// that build workbooks in memory.
func Wrap(f *excelize.File) *Workbook {
	return &Workbook{f: f}
}

// Path returns the file path the workbook was opened from ("" for
// in-memory workbooks).
func (w *Workbook) Path() string {
	return w.path
}

// Save writes the workbook back to the path it was opened from.
func (w *Workbook) Save() error {
	return w.f.Save()
}

// SaveAs writes the workbook to a new path.
func (w *Workbook) SaveAs(path string) error {
	return w.f.SaveAs(path)
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// Sheets returns all sheet names in workbook order.
func (w *Workbook) Sheets() []string {
	return w.f.GetSheetList()
}

// SheetExists reports whether the named sheet is present.
func (w *Workbook) SheetExists(name string) bool {
	idx, err := w.f.GetSheetIndex(name)
	return err == nil && idx >= 0
}

// GetRows returns the sheet's rows as strings.
func (w *Workbook) GetRows(sheet string) ([][]string, error) {
	if !w.SheetExists(sheet) {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, sheet)
	}
	return w.f.GetRows(sheet)
}

// HeaderValue reads the cell at (row, col), used to name a series from
// the header row above its data.
func (w *Workbook) HeaderValue(sheet string, col, row int) (string, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", err
	}
	return w.f.GetCellValue(sheet, cell)
}

// WriteSheet writes a header row plus data rows to a fresh sheet named
// name (sanitized), replacing any existing sheet of that name. The
// created sheet name is returned.
func (w *Workbook) WriteSheet(name string, headers []string, rows [][]string) (string, error) {
	name = SanitizeSheetName(name, "")
	if w.SheetExists(name) {
		if err := w.f.DeleteSheet(name); err != nil {
			return "", fmt.Errorf("replace sheet %s: %w", name, err)
		}
	}
	if _, err := w.f.NewSheet(name); err != nil {
		return "", fmt.Errorf("create sheet %s: %w", name, err)
	}

	hdr := make([]interface{}, len(headers))
	for i, h := range headers {
		hdr[i] = h
	}
	if err := w.f.SetSheetRow(name, "A1", &hdr); err != nil {
		return "", err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", err
		}
		vals := make([]interface{}, len(row))
		for j, v := range row {
			vals[j] = v
		}
		if err := w.f.SetSheetRow(name, cell, &vals); err != nil {
			return "", err
		}
	}
	return name, nil
}

var invalidSheetChars = regexp.MustCompile(`[:\\/*?\[\]]`)

// SanitizeSheetName makes name a valid Excel sheet name: invalid
// characters replaced, suffix preserved, 31-character cap. The cap
// counts characters, not bytes, so CJK names truncate cleanly.
func SanitizeSheetName(name, suffix string) string {
	clean := []rune(invalidSheetChars.ReplaceAllString(name, "_"))
	maxBase := 31 - len([]rune(suffix))
	if maxBase < 0 {
		maxBase = 0
	}
	if len(clean) > maxBase {
		clean = clean[:maxBase]
	}
	return string(clean) + suffix
}

// anchorCoordinates validates a chart anchor against the workbook.
func (w *Workbook) anchorCoordinates(a models.ChartAnchor) error {
	if !w.SheetExists(a.Sheet) {
		return fmt.Errorf("%w: %s", ErrSheetNotFound, a.Sheet)
	}
	if _, _, err := excelize.CellNameToCoordinates(a.Cell); err != nil {
		return fmt.Errorf("invalid chart anchor %q: %w", a.Cell, err)
	}
	return nil
}
