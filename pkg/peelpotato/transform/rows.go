// Package transform implements the workbook utilities that ship with
// the chart helper: column select/rename, row enrichment from a
// reference workbook, and grouped numeric summaries.
package transform

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/KimTsegzc/Peel-Potato/pkg/peelpotato/bridge"
)

// ErrNoData indicates the sheet has no header row to work with.
var ErrNoData = errors.New("sheet has no data")

// ErrColumnNotFound indicates a required column could not be located by
// any of its known name variants.
var ErrColumnNotFound = errors.New("column not found")

// ErrEmptyDictionary indicates the column dictionary contains no usable
// mappings.
var ErrEmptyDictionary = errors.New("column dictionary is empty")

// Table is one sheet read as a header row plus string data rows. Every
// row is padded to the header width.
type Table struct {
	Sheet   string
	Headers []string
	Rows    [][]string
}

// ReadTable loads a sheet into a Table.
func ReadTable(wb *bridge.Workbook, sheet string) (*Table, error) {
	raw, err := wb.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, sheet)
	}

	headers := make([]string, len(raw[0]))
	for i, h := range raw[0] {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([][]string, 0, len(raw)-1)
	for _, r := range raw[1:] {
		row := make([]string, len(headers))
		for j := range headers {
			if j < len(r) {
				row[j] = strings.TrimSpace(r[j])
			}
		}
		rows = append(rows, row)
	}

	return &Table{Sheet: sheet, Headers: headers, Rows: rows}, nil
}

// parseNumber reports whether s is a numeric cell value.
func parseNumber(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	return f, err == nil
}

// formatNumber renders an aggregate back into a cell.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
