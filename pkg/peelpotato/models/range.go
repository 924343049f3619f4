// Package models defines the value types shared by the resolver, the
// workbook bridge, and the chart orchestration layer.
package models

import (
	"fmt"
	"strconv"
	"strings"
)

// UsedExtent is the bounding rectangle of non-empty cells on a worksheet,
// as reported by the workbook bridge. All coordinates are 1-based and
// inclusive. It is an input only: the resolver never caches one.
type UsedExtent struct {
	// FirstRow is the first row containing data.
	FirstRow int
	// LastRow is the last row containing data.
	LastRow int
	// FirstCol is the first column containing data.
	FirstCol int
	// LastCol is the last column containing data.
	LastCol int
}

// Valid reports whether the extent describes at least one cell.
func (e UsedExtent) Valid() bool {
	return e.FirstRow >= 1 && e.FirstCol >= 1 &&
		e.LastRow >= e.FirstRow && e.LastCol >= e.FirstCol
}

// Rows returns the number of rows covered by the extent.
func (e UsedExtent) Rows() int {
	if !e.Valid() {
		return 0
	}
	return e.LastRow - e.FirstRow + 1
}

// ResolvedRange is a concrete rectangular cell range on a single sheet.
// Coordinates are 1-based and inclusive. Immutable once produced.
type ResolvedRange struct {
	// Sheet is the worksheet name owning the range.
	Sheet string
	// R1 is the start row.
	R1 int
	// C1 is the start column.
	C1 int
	// R2 is the end row (inclusive).
	R2 int
	// C2 is the end column (inclusive).
	C2 int
}

// Rows returns the number of rows in the range.
func (r ResolvedRange) Rows() int {
	return r.R2 - r.R1 + 1
}

// Cols returns the number of columns in the range.
func (r ResolvedRange) Cols() int {
	return r.C2 - r.C1 + 1
}

// Overlaps reports whether two ranges on the same sheet intersect.
func (r ResolvedRange) Overlaps(o ResolvedRange) bool {
	if r.Sheet != o.Sheet {
		return false
	}
	return r.C1 <= o.C2 && o.C1 <= r.C2 && r.R1 <= o.R2 && o.R1 <= r.R2
}

// A1 returns the unqualified A1-style reference, e.g. "B2:B13" or "B2"
// for a single cell.
func (r ResolvedRange) A1() string {
	start := ColumnLetters(r.C1) + strconv.Itoa(r.R1)
	if r.R1 == r.R2 && r.C1 == r.C2 {
		return start
	}
	return start + ":" + ColumnLetters(r.C2) + strconv.Itoa(r.R2)
}

// Ref returns the sheet-qualified absolute reference used for chart
// series, e.g. "Sheet1!$B$2:$B$13".
func (r ResolvedRange) Ref() string {
	start := "$" + ColumnLetters(r.C1) + "$" + strconv.Itoa(r.R1)
	end := "$" + ColumnLetters(r.C2) + "$" + strconv.Itoa(r.R2)
	return quoteSheet(r.Sheet) + "!" + start + ":" + end
}

func (r ResolvedRange) String() string {
	return quoteSheet(r.Sheet) + "!" + r.A1()
}

// quoteSheet wraps sheet names that need quoting in A1 references.
func quoteSheet(name string) string {
	if name == "" {
		return name
	}
	plain := true
	for _, c := range name {
		if !(c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_' || c == '.') {
			plain = false
			break
		}
	}
	if plain {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// ColumnLetters converts a 1-based column number to its letter form
// (1 -> "A", 27 -> "AA").
func ColumnLetters(n int) string {
	var s string
	for n > 0 {
		s = string(rune((n-1)%26+'A')) + s
		n = (n - 1) / 26
	}
	return s
}

// ColumnIndex converts column letters to a 1-based column number.
// Matching is case-insensitive; ok is false for anything but letters.
func ColumnIndex(letters string) (int, bool) {
	letters = strings.ToUpper(strings.TrimSpace(letters))
	if letters == "" {
		return 0, false
	}
	n := 0
	for _, c := range letters {
		if c < 'A' || c > 'Z' {
			return 0, false
		}
		n = n*26 + int(c-'A'+1)
	}
	return n, true
}

// ChartAnchor identifies the top-left cell a chart object is attached to.
// It is the session-scoped handle used to rebuild a chart in place.
type ChartAnchor struct {
	// Sheet is the worksheet the chart lives on.
	Sheet string
	// Cell is the top-left anchor cell, e.g. "E2".
	Cell string
}

func (a ChartAnchor) String() string {
	return fmt.Sprintf("%s!%s", a.Sheet, a.Cell)
}
