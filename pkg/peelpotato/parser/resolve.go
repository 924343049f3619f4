// Package parser turns user-typed range expressions like "B", "B:C",
// "B2:B13" or "B,C" into concrete cell ranges against the current used
// extent of a sheet. Resolution is a pure function: no I/O, no caching,
// identical inputs always produce identical output.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/KimTsegzc/Peel-Potato/pkg/peelpotato/models"
)

// SpecForm tags which grammar form a spec resolved as.
type SpecForm string

const (
	// FormColumn is a bare column letter, e.g. "B".
	FormColumn SpecForm = "column"
	// FormColumnSpan is a column-letter range, e.g. "B:C".
	FormColumnSpan SpecForm = "column_span"
	// FormExplicit is an explicit cell range, e.g. "B2:B13".
	FormExplicit SpecForm = "explicit"
	// FormList is a comma-separated list of the other forms.
	FormList SpecForm = "list"
)

// DefaultAdvisoryRows is the row count above which an explicit range is
// flagged as a performance advisory.
const DefaultAdvisoryRows = 10000

// Options configures a single resolution call.
type Options struct {
	// Sheet is the worksheet name stamped onto resolved ranges.
	Sheet string
	// ExcludeHeader removes the first row of the used extent from
	// inferred rows. It never applies to explicit ranges.
	ExcludeHeader bool
	// AdvisoryRows overrides DefaultAdvisoryRows when positive; a
	// negative value disables advisories.
	AdvisoryRows int
}

func (o Options) advisoryRows() int {
	switch {
	case o.AdvisoryRows > 0:
		return o.AdvisoryRows
	case o.AdvisoryRows < 0:
		return 0
	default:
		return DefaultAdvisoryRows
	}
}

// Advisory flags an accepted but suspiciously large explicit range. It is
// not an error; the caller decides whether to warn the user.
type Advisory struct {
	Range     models.ResolvedRange
	Threshold int
}

func (a Advisory) String() string {
	return fmt.Sprintf("range %s spans %d rows (threshold %d); charting may be slow",
		a.Range.A1(), a.Range.Rows(), a.Threshold)
}

// Resolution is the successful output of Resolve.
type Resolution struct {
	// Spec is the raw input text.
	Spec string
	// Form is the grammar form the spec resolved as.
	Form SpecForm
	// Ranges is the ordered list of resolved ranges, one per series.
	Ranges []models.ResolvedRange
	// Advisories lists accepted-but-large explicit ranges.
	Advisories []Advisory
}

// Resolve parses spec against the current used extent of a sheet and
// returns the concrete ranges it denotes. Resolution is all-or-nothing:
// on any failure no partial ranges are returned.
func Resolve(spec string, ext models.UsedExtent, opts Options) (Resolution, error) {
	if !ext.Valid() {
		return Resolution{}, resolveErr(spec, "", ErrUnresolvedExtent)
	}

	trimmed := strings.TrimSpace(spec)
	if trimmed == "" {
		return Resolution{}, resolveErr(spec, trimmed, ErrInvalidSyntax)
	}

	var parts []string
	for _, p := range strings.Split(trimmed, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return Resolution{}, resolveErr(spec, trimmed, ErrInvalidSyntax)
	}

	res := Resolution{Spec: spec, Form: FormList}
	for _, part := range parts {
		ranges, form, err := resolvePart(part, ext, opts)
		if err != nil {
			var re *ResolveError
			if errors.As(err, &re) {
				re.Spec = spec
			}
			return Resolution{}, err
		}
		if len(parts) == 1 {
			res.Form = form
		}
		if form == FormExplicit && opts.advisoryRows() > 0 {
			for _, r := range ranges {
				if r.Rows() > opts.advisoryRows() {
					res.Advisories = append(res.Advisories, Advisory{Range: r, Threshold: opts.advisoryRows()})
				}
			}
		}
		res.Ranges = append(res.Ranges, ranges...)
	}

	// Series ranges must be pairwise disjoint; "B,B" is a failure,
	// not two copies of the same series.
	for i := 0; i < len(res.Ranges); i++ {
		for j := i + 1; j < len(res.Ranges); j++ {
			if res.Ranges[i].Overlaps(res.Ranges[j]) {
				return Resolution{}, resolveErr(spec, res.Ranges[j].A1(), ErrOverlappingRanges)
			}
		}
	}

	return res, nil
}

// resolvePart handles one comma-free token.
func resolvePart(part string, ext models.UsedExtent, opts Options) ([]models.ResolvedRange, SpecForm, error) {
	// Tokens with digits are explicit ranges, used verbatim; the user
	// has already bounded them so header exclusion does not apply.
	if strings.ContainsAny(part, "0123456789") {
		r, err := parseExplicit(part, opts.Sheet)
		if err != nil {
			return nil, "", err
		}
		return []models.ResolvedRange{r}, FormExplicit, nil
	}

	if left, right, ok := strings.Cut(part, ":"); ok {
		leftIdx, lok := models.ColumnIndex(left)
		rightIdx, rok := models.ColumnIndex(right)
		if !lok || !rok {
			return nil, "", resolveErr(part, part, ErrInvalidSyntax)
		}
		if leftIdx > rightIdx {
			return nil, "", resolveErr(part, part, ErrInvalidSyntax)
		}
		start, end, err := dataRows(part, ext, opts.ExcludeHeader)
		if err != nil {
			return nil, "", err
		}
		// One range per column, left to right as written. Columns
		// beyond the extent's column span still resolve; the host
		// charts them as empty cells.
		ranges := make([]models.ResolvedRange, 0, rightIdx-leftIdx+1)
		for col := leftIdx; col <= rightIdx; col++ {
			ranges = append(ranges, models.ResolvedRange{
				Sheet: opts.Sheet, R1: start, C1: col, R2: end, C2: col,
			})
		}
		return ranges, FormColumnSpan, nil
	}

	col, ok := models.ColumnIndex(part)
	if !ok {
		return nil, "", resolveErr(part, part, ErrInvalidSyntax)
	}
	start, end, err := dataRows(part, ext, opts.ExcludeHeader)
	if err != nil {
		return nil, "", err
	}
	return []models.ResolvedRange{{
		Sheet: opts.Sheet, R1: start, C1: col, R2: end, C2: col,
	}}, FormColumn, nil
}

// dataRows infers the row span for bare-column forms from the current
// extent, dropping exactly the extent's first row when the header is
// excluded.
func dataRows(token string, ext models.UsedExtent, excludeHeader bool) (start, end int, err error) {
	start, end = ext.FirstRow, ext.LastRow
	if excludeHeader {
		start++
	}
	if start > end {
		return 0, 0, resolveErr(token, token, ErrEmptyRange)
	}
	return start, end, nil
}

// parseExplicit parses "B2" or "B2:B13" style tokens.
func parseExplicit(token, sheet string) (models.ResolvedRange, error) {
	first, second, hasColon := strings.Cut(token, ":")
	c1, r1, ok := parseCellRef(first)
	if !ok {
		return models.ResolvedRange{}, resolveErr(token, token, ErrInvalidSyntax)
	}
	c2, r2 := c1, r1
	if hasColon {
		if c2, r2, ok = parseCellRef(second); !ok {
			return models.ResolvedRange{}, resolveErr(token, token, ErrInvalidSyntax)
		}
	}
	if c2 < c1 {
		c1, c2 = c2, c1
	}
	if r2 < r1 {
		r1, r2 = r2, r1
	}
	return models.ResolvedRange{Sheet: sheet, R1: r1, C1: c1, R2: r2, C2: c2}, nil
}

// parseCellRef parses a single "B13" style reference.
func parseCellRef(s string) (col, row int, ok bool) {
	s = strings.TrimSpace(s)
	split := 0
	for split < len(s) && !isDigit(s[split]) {
		split++
	}
	if split == 0 || split == len(s) {
		return 0, 0, false
	}
	col, ok = models.ColumnIndex(s[:split])
	if !ok {
		return 0, 0, false
	}
	row, err := strconv.Atoi(s[split:])
	if err != nil || row < 1 {
		return 0, 0, false
	}
	return col, row, true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
