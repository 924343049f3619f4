package transform

import (
	"fmt"
	"log"

	"github.com/KimTsegzc/Peel-Potato/pkg/peelpotato/bridge"
)

// RefSheetName is the sheet holding reference rows in an enrichment
// workbook.
const RefSheetName = "emp"

// Enrich left-joins the columns of a reference workbook (sheet "emp")
// onto a sheet's rows by the shared id column and writes the result to
// "<sheet>_info". Rows without a reference match keep empty cells.
// Returns the created sheet name.
func Enrich(wb *bridge.Workbook, sheet, refPath string) (string, error) {
	ref, err := bridge.Open(refPath)
	if err != nil {
		return "", err
	}
	defer ref.Close()

	rt, err := ReadTable(ref, RefSheetName)
	if err != nil {
		return "", err
	}
	refIDIdx, ok := FindColumn(rt.Headers, IDColumnNames)
	if !ok {
		return "", fmt.Errorf("%w: no id column in reference %s", ErrColumnNotFound, refPath)
	}

	t, err := ReadTable(wb, sheet)
	if err != nil {
		return "", err
	}
	idIdx, ok := FindColumn(t.Headers, IDColumnNames)
	if !ok {
		return "", fmt.Errorf("%w: no id column on %s", ErrColumnNotFound, sheet)
	}

	// Reference columns to append: everything but its id column.
	var refCols []int
	headers := append([]string(nil), t.Headers...)
	for i, h := range rt.Headers {
		if i == refIDIdx {
			continue
		}
		refCols = append(refCols, i)
		headers = append(headers, h)
	}

	byID := make(map[string][]string, len(rt.Rows))
	for _, row := range rt.Rows {
		if id := row[refIDIdx]; id != "" {
			if _, dup := byID[id]; !dup {
				byID[id] = row
			}
		}
	}

	matched := 0
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		out := append([]string(nil), row...)
		refRow, found := byID[row[idIdx]]
		if found {
			matched++
		}
		for _, c := range refCols {
			if found {
				out = append(out, refRow[c])
			} else {
				out = append(out, "")
			}
		}
		rows[i] = out
	}

	name, err := wb.WriteSheet(bridge.SanitizeSheetName(sheet, "_info"), headers, rows)
	if err != nil {
		return "", err
	}
	log.Printf("[Transform] enriched %s: %d/%d rows matched -> %s", sheet, matched, len(t.Rows), name)
	return name, nil
}
