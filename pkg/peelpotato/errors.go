package peelpotato

import "errors"

// ErrNoSeries indicates a chart request was assembled with an empty
// series list.
var ErrNoSeries = errors.New("chart request has no series")

// ErrInvalidChartKind indicates an unknown chart type.
var ErrInvalidChartKind = errors.New("unknown chart type")

// ErrInvalidMode indicates a multi-series mode that does not apply to
// the requested chart type.
var ErrInvalidMode = errors.New("multi-series mode not valid for chart type")

// ErrChartNotFound indicates a change was requested but the session
// holds no live chart.
var ErrChartNotFound = errors.New("no chart to change in this session")

// ErrScatterNeedsPair indicates a scatter chart without both an X and a
// Y range.
var ErrScatterNeedsPair = errors.New("scatter needs two ranges (X and Y)")

// ErrPivotNeedsDim indicates a pivot table was requested without a row
// field range.
var ErrPivotNeedsDim = errors.New("pivot needs a dim range for the row field")
