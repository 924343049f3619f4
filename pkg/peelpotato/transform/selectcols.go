package transform

import (
	"fmt"
	"log"
	"strings"

	"github.com/KimTsegzc/Peel-Potato/pkg/peelpotato/bridge"
)

// DictSheetName is the sheet the column dictionary lives on.
const DictSheetName = "columnlist"

// SelectColumns filters a sheet down to the columns named in a
// dictionary workbook (sheet "columnlist" with "old" and "new" columns),
// renames them, and writes the result to "<sheet>_slc". Dictionary rows
// with an empty "new" value drop the column. Returns the created sheet
// name.
func SelectColumns(wb *bridge.Workbook, sheet, dictPath string) (string, error) {
	dict, err := bridge.Open(dictPath)
	if err != nil {
		return "", err
	}
	defer dict.Close()

	dt, err := ReadTable(dict, DictSheetName)
	if err != nil {
		return "", err
	}
	oldIdx, ok := FindColumn(dt.Headers, []string{"old"})
	if !ok {
		return "", fmt.Errorf("%w: %q in dictionary", ErrColumnNotFound, "old")
	}
	newIdx, ok := FindColumn(dt.Headers, []string{"new"})
	if !ok {
		return "", fmt.Errorf("%w: %q in dictionary", ErrColumnNotFound, "new")
	}

	type mapping struct{ old, renamed string }
	var mappings []mapping
	for _, row := range dt.Rows {
		if row[oldIdx] != "" && row[newIdx] != "" {
			mappings = append(mappings, mapping{old: row[oldIdx], renamed: row[newIdx]})
		}
	}
	if len(mappings) == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmptyDictionary, dictPath)
	}

	t, err := ReadTable(wb, sheet)
	if err != nil {
		return "", err
	}

	var keep []int
	var headers []string
	for _, m := range mappings {
		for i, h := range t.Headers {
			if strings.EqualFold(h, m.old) {
				keep = append(keep, i)
				headers = append(headers, m.renamed)
				break
			}
		}
	}
	if len(keep) == 0 {
		return "", fmt.Errorf("%w: no dictionary columns present on %s", ErrColumnNotFound, sheet)
	}

	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		out := make([]string, len(keep))
		for j, c := range keep {
			out[j] = row[c]
		}
		rows[i] = out
	}

	name, err := wb.WriteSheet(bridge.SanitizeSheetName(sheet, "_slc"), headers, rows)
	if err != nil {
		return "", err
	}
	log.Printf("[Transform] selected %d of %d columns from %s -> %s",
		len(keep), len(t.Headers), sheet, name)
	return name, nil
}
