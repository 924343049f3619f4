package peelpotato

import (
	"fmt"

	"github.com/KimTsegzc/Peel-Potato/pkg/peelpotato/models"
	"github.com/KimTsegzc/Peel-Potato/pkg/peelpotato/parser"
)

// NewChartRequest assembles one optional label range and one-or-more
// series into a chart request. No resolution logic of its own; it only
// validates the combination. Series order is preserved.
func NewChartRequest(label *models.ResolvedRange, series []models.Series, kind models.ChartKind, mode models.MultiMode) (*models.ChartRequest, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidChartKind, kind)
	}
	if mode == "" {
		mode = kind.DefaultMode()
	}
	if !kind.AllowsMode(mode) {
		return nil, fmt.Errorf("%w: %q for %s", ErrInvalidMode, mode, kind)
	}
	if len(series) == 0 {
		return nil, ErrNoSeries
	}

	// Series come from separate resolutions for dim and values, so the
	// disjointness invariant is re-checked across the whole request.
	for i := range series {
		for j := i + 1; j < len(series); j++ {
			if series[i].Values.Overlaps(series[j].Values) {
				return nil, fmt.Errorf("%w: %s and %s", parser.ErrOverlappingRanges,
					series[i].Values.A1(), series[j].Values.A1())
			}
		}
		if label != nil && label.Overlaps(series[i].Values) {
			return nil, fmt.Errorf("%w: label %s intersects series %s", parser.ErrOverlappingRanges,
				label.A1(), series[i].Values.A1())
		}
	}

	return &models.ChartRequest{Label: label, Series: series, Kind: kind, Mode: mode}, nil
}
