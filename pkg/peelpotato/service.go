package peelpotato

import (
	"fmt"
	"log"
	"strings"

	"github.com/KimTsegzc/Peel-Potato/pkg/peelpotato/bridge"
	"github.com/KimTsegzc/Peel-Potato/pkg/peelpotato/models"
	"github.com/KimTsegzc/Peel-Potato/pkg/peelpotato/parser"
)

// Service orchestrates chart creation against one open workbook.
type Service struct {
	wb   *bridge.Workbook
	opts Options
}

// NewService binds a service to an open workbook.
func NewService(wb *bridge.Workbook, opts Options) *Service {
	return &Service{wb: wb, opts: opts}
}

// ChartInput mirrors the original tool's form fields.
type ChartInput struct {
	// Sheet is the worksheet the ranges refer to.
	Sheet string
	// Dim is the category/X range spec; optional for non-scatter kinds.
	Dim string
	// Values is the value series spec; required.
	Values string
	// Kind is the chart type.
	Kind models.ChartKind
	// Mode is the multi-series mode ("" picks the kind's default).
	Mode models.MultiMode
	// Anchor overrides the default anchor cell for new charts.
	Anchor string
}

// ChartResult reports what was created or changed.
type ChartResult struct {
	Request    *models.ChartRequest
	Anchor     models.ChartAnchor
	Advisories []parser.Advisory
}

// CreateChart resolves the input, creates a new chart object, and
// remembers its anchor in the session for a later change.
func (s *Service) CreateChart(sess *Session, in ChartInput) (*ChartResult, error) {
	req, advisories, err := s.assemble(in)
	if err != nil {
		return nil, err
	}

	cell := in.Anchor
	if cell == "" {
		cell = s.opts.Anchor
	}
	anchor := models.ChartAnchor{Sheet: in.Sheet, Cell: cell}
	if err := s.wb.AddChart(anchor, req, s.opts.Style()); err != nil {
		return nil, err
	}
	sess.Remember(anchor)
	log.Printf("[Service] session %s created %s chart at %s", sess.ID, req.Kind, anchor)

	return &ChartResult{Request: req, Anchor: anchor, Advisories: advisories}, nil
}

// ChangeChart rebuilds the session's remembered chart in place from the
// new input. The chart keeps its anchor; type, mode, and series are
// replaced wholesale.
func (s *Service) ChangeChart(sess *Session, in ChartInput) (*ChartResult, error) {
	anchor, ok := sess.LastChart()
	if !ok {
		return nil, ErrChartNotFound
	}
	if !s.wb.SheetExists(anchor.Sheet) {
		// The remembered chart's sheet is gone; the handle is stale.
		sess.Forget()
		return nil, fmt.Errorf("%w: sheet %s no longer exists", ErrChartNotFound, anchor.Sheet)
	}

	if in.Sheet == "" {
		in.Sheet = anchor.Sheet
	}
	req, advisories, err := s.assemble(in)
	if err != nil {
		return nil, err
	}
	if err := s.wb.ReplaceChart(anchor, req, s.opts.Style()); err != nil {
		return nil, err
	}
	sess.Remember(anchor)
	log.Printf("[Service] session %s changed chart at %s to %s", sess.ID, anchor, req.Kind)

	return &ChartResult{Request: req, Anchor: anchor, Advisories: advisories}, nil
}

// PivotInput describes a pivot table over one sheet's data block.
type PivotInput struct {
	// Sheet is the worksheet the ranges refer to.
	Sheet string
	// Dim is the row field range spec; required, single range.
	Dim string
	// Values is the spec for the columns summed as data fields.
	Values string
}

// PivotResult reports the created pivot table's geometry.
type PivotResult struct {
	Data        models.ResolvedRange
	Destination models.ResolvedRange
	RowField    string
	DataFields  []string
	Advisories  []parser.Advisory
}

// CreatePivot builds a pivot table from the input: the dim column
// becomes the row field, each value column a summed data field, and
// the table lands two columns right of the source block.
func (s *Service) CreatePivot(in PivotInput) (*PivotResult, error) {
	if strings.TrimSpace(in.Dim) == "" {
		return nil, ErrPivotNeedsDim
	}

	ext, err := s.wb.UsedExtent(in.Sheet)
	if err != nil {
		return nil, err
	}
	popts := s.parserOptions(in.Sheet)

	dimRes, err := parser.Resolve(in.Dim, ext, popts)
	if err != nil {
		return nil, err
	}
	if len(dimRes.Ranges) != 1 {
		return nil, &parser.ResolveError{
			Spec: in.Dim, Token: in.Dim,
			Err: fmt.Errorf("%w: dim must resolve to a single range", parser.ErrInvalidSyntax),
		}
	}
	dim := dimRes.Ranges[0]

	valRes, err := parser.Resolve(in.Values, ext, popts)
	if err != nil {
		return nil, err
	}
	for _, r := range valRes.Ranges {
		if dim.Overlaps(r) {
			return nil, fmt.Errorf("%w: dim %s intersects values %s",
				parser.ErrOverlappingRanges, dim, r)
		}
	}
	advisories := append(dimRes.Advisories, valRes.Advisories...)

	// Pivot fields bind to header labels, so every column needs one.
	headerRow := ext.FirstRow
	rowField, err := s.pivotField(in.Sheet, dim.C1, headerRow)
	if err != nil {
		return nil, err
	}
	dataFields := make([]string, 0, len(valRes.Ranges))
	firstCol, lastCol, lastRow := dim.C1, dim.C1, dim.R2
	for _, r := range valRes.Ranges {
		field, err := s.pivotField(in.Sheet, r.C1, headerRow)
		if err != nil {
			return nil, err
		}
		dataFields = append(dataFields, field)
		if r.C1 < firstCol {
			firstCol = r.C1
		}
		if r.C2 > lastCol {
			lastCol = r.C2
		}
		if r.R2 > lastRow {
			lastRow = r.R2
		}
	}

	// Source block: header row plus every row the ranges cover.
	data := models.ResolvedRange{
		Sheet: in.Sheet,
		R1:    headerRow, C1: firstCol,
		R2: lastRow, C2: lastCol,
	}
	dest := models.ResolvedRange{
		Sheet: in.Sheet,
		R1:    headerRow, C1: lastCol + 2,
		R2: lastRow + 2, C2: lastCol + 2 + len(dataFields),
	}
	if err := s.wb.AddPivotTable(data, dest, rowField, dataFields); err != nil {
		return nil, err
	}
	log.Printf("[Service] created pivot table at %s over %s", dest, data)

	return &PivotResult{
		Data:        data,
		Destination: dest,
		RowField:    rowField,
		DataFields:  dataFields,
		Advisories:  advisories,
	}, nil
}

// pivotField reads the header label a pivot field binds to.
func (s *Service) pivotField(sheet string, col, row int) (string, error) {
	name, err := s.wb.HeaderValue(sheet, col, row)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("pivot needs a header label for column %s", models.ColumnLetters(col))
	}
	return name, nil
}

// Resolve resolves a spec against a sheet's current extent without
// touching the workbook otherwise. Used by dry-run checks.
func (s *Service) Resolve(sheet, spec string) (parser.Resolution, error) {
	ext, err := s.wb.UsedExtent(sheet)
	if err != nil {
		return parser.Resolution{}, err
	}
	return parser.Resolve(spec, ext, s.parserOptions(sheet))
}

func (s *Service) parserOptions(sheet string) parser.Options {
	return parser.Options{
		Sheet:         sheet,
		ExcludeHeader: s.opts.ShouldExcludeHeader(),
		AdvisoryRows:  s.opts.AdvisoryRows,
	}
}

// assemble turns the raw input into a validated chart request.
func (s *Service) assemble(in ChartInput) (*models.ChartRequest, []parser.Advisory, error) {
	if !in.Kind.Valid() {
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidChartKind, in.Kind)
	}

	ext, err := s.wb.UsedExtent(in.Sheet)
	if err != nil {
		return nil, nil, err
	}
	popts := s.parserOptions(in.Sheet)

	valRes, err := parser.Resolve(in.Values, ext, popts)
	if err != nil {
		return nil, nil, err
	}
	advisories := valRes.Advisories
	ranges := valRes.Ranges

	var label *models.ResolvedRange
	dimForm := parser.SpecForm("")
	if strings.TrimSpace(in.Dim) != "" {
		dimRes, err := parser.Resolve(in.Dim, ext, popts)
		if err != nil {
			return nil, nil, err
		}
		if len(dimRes.Ranges) != 1 {
			return nil, nil, &parser.ResolveError{
				Spec: in.Dim, Token: in.Dim,
				Err: fmt.Errorf("%w: dim must resolve to a single range", parser.ErrInvalidSyntax),
			}
		}
		r := dimRes.Ranges[0]
		label = &r
		dimForm = dimRes.Form
		advisories = append(advisories, dimRes.Advisories...)
	}

	switch in.Kind {
	case models.KindScatter:
		// X comes from dim when given, otherwise from the first value
		// range, with the next range as Y.
		if label == nil {
			if len(ranges) < 2 {
				return nil, nil, ErrScatterNeedsPair
			}
			x := ranges[0]
			label = &x
			ranges = ranges[1:2]
		} else {
			ranges = ranges[:1]
		}
	case models.KindPie:
		// Pie charts plot only the first value column.
		ranges = ranges[:1]
	}

	// A bare-column dim follows the rows of the first series, so an
	// explicit values range like B2:B5 pairs with A2:A5, not the whole
	// extent column.
	if label != nil && dimForm == parser.FormColumn && len(ranges) > 0 {
		label.R1 = ranges[0].R1
		label.R2 = ranges[0].R2
	}

	series := make([]models.Series, 0, len(ranges))
	for _, r := range ranges {
		series = append(series, models.Series{
			Name:   s.seriesName(in.Sheet, r),
			Values: r,
		})
	}

	req, err := NewChartRequest(label, series, in.Kind, in.Mode)
	if err != nil {
		return nil, nil, err
	}
	return req, advisories, nil
}

// seriesName reads the header cell immediately above the series data.
// Best effort: a missing or empty header leaves the name to the host.
func (s *Service) seriesName(sheet string, r models.ResolvedRange) string {
	headerRow := r.R1 - 1
	if headerRow < 1 {
		return ""
	}
	name, err := s.wb.HeaderValue(sheet, r.C1, headerRow)
	if err != nil {
		return ""
	}
	return name
}
