package transform

import (
	"fmt"
	"log"

	"github.com/montanaflynn/stats"

	"github.com/KimTsegzc/Peel-Potato/pkg/peelpotato/bridge"
)

// Summarize groups a sheet's rows by the id column, sums every numeric
// column per id, and writes the result to "<sheet>_sum" with per-group
// subtotal rows and a grand total. Returns the created sheet name.
func Summarize(wb *bridge.Workbook, sheet string) (string, error) {
	t, err := ReadTable(wb, sheet)
	if err != nil {
		return "", err
	}

	idIdx, ok := FindColumn(t.Headers, IDColumnNames)
	if !ok {
		return "", fmt.Errorf("%w: no id column among %v", ErrColumnNotFound, t.Headers)
	}
	grpIdx, hasGrp := FindColumn(t.Headers, GroupColumnNames)
	nameIdx, hasName := FindColumn(t.Headers, NameColumnNames)
	dateIdx, hasDate := FindColumn(t.Headers, DateColumnNames)

	keyCols := map[int]bool{idIdx: true}
	if hasGrp {
		keyCols[grpIdx] = true
	}
	if hasName {
		keyCols[nameIdx] = true
	}
	if hasDate {
		keyCols[dateIdx] = true
	}

	numericCols := numericColumns(t, keyCols)
	if len(numericCols) == 0 {
		return "", fmt.Errorf("%w: no numeric columns to sum", ErrColumnNotFound)
	}

	// Output keeps the key columns then the numeric columns, in the
	// original header order within each class.
	outCols := make([]int, 0, len(keyCols)+len(numericCols))
	for i := range t.Headers {
		if keyCols[i] {
			outCols = append(outCols, i)
		}
	}
	outCols = append(outCols, numericCols...)

	headers := make([]string, len(outCols))
	for i, c := range outCols {
		headers[i] = t.Headers[c]
	}

	// Aggregate per id, first-seen order.
	var order []string
	byID := make(map[string]*aggregate)
	for _, row := range t.Rows {
		id := row[idIdx]
		if id == "" {
			continue
		}
		agg, seen := byID[id]
		if !seen {
			agg = &aggregate{first: row, sums: make(map[int]stats.Float64Data)}
			byID[id] = agg
			order = append(order, id)
		}
		for _, c := range numericCols {
			if v, numOK := parseNumber(row[c]); numOK {
				agg.sums[c] = append(agg.sums[c], v)
			}
		}
	}
	if len(order) == 0 {
		return "", fmt.Errorf("%w: id column has no values", ErrNoData)
	}

	var out [][]string
	groupTotals := make(map[string]map[int]float64)
	var groupOrder []string
	grandTotal := make(map[int]float64)

	for _, id := range order {
		agg := byID[id]
		row := make([]string, len(outCols))
		for i, c := range outCols {
			if keyCols[c] {
				row[i] = agg.first[c]
				continue
			}
			sum, _ := stats.Sum(agg.sums[c])
			row[i] = formatNumber(sum)
			grandTotal[c] += sum
			if hasGrp {
				grp := agg.first[grpIdx]
				if _, seen := groupTotals[grp]; !seen {
					groupTotals[grp] = make(map[int]float64)
					groupOrder = append(groupOrder, grp)
				}
				groupTotals[grp][c] += sum
			}
		}
		out = append(out, row)
	}

	if hasGrp {
		for _, grp := range groupOrder {
			out = append(out, totalRow(outCols, keyCols, idIdx, grp+" subtotal", groupTotals[grp]))
		}
	}
	out = append(out, totalRow(outCols, keyCols, idIdx, "Total", grandTotal))

	name, err := wb.WriteSheet(bridge.SanitizeSheetName(sheet, "_sum"), headers, out)
	if err != nil {
		return "", err
	}
	log.Printf("[Transform] summarized %s: %d ids, %d numeric columns -> %s",
		sheet, len(order), len(numericCols), name)
	return name, nil
}

type aggregate struct {
	first []string
	sums  map[int]stats.Float64Data
}

// numericColumns returns non-key columns whose every non-empty value
// parses as a number (and which have at least one value).
func numericColumns(t *Table, keyCols map[int]bool) []int {
	var cols []int
	for c := range t.Headers {
		if keyCols[c] {
			continue
		}
		seen := false
		numeric := true
		for _, row := range t.Rows {
			if row[c] == "" {
				continue
			}
			seen = true
			if _, ok := parseNumber(row[c]); !ok {
				numeric = false
				break
			}
		}
		if seen && numeric {
			cols = append(cols, c)
		}
	}
	return cols
}

// totalRow renders a subtotal/total line with the label in the id column.
func totalRow(outCols []int, keyCols map[int]bool, idIdx int, label string, sums map[int]float64) []string {
	row := make([]string, len(outCols))
	for i, c := range outCols {
		switch {
		case c == idIdx:
			row[i] = label
		case keyCols[c]:
			row[i] = ""
		default:
			row[i] = formatNumber(sums[c])
		}
	}
	return row
}
