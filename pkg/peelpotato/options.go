// Package peelpotato creates and updates Excel charts from small
// user-typed range expressions, in the manner of the original floating
// chart-helper tool.
package peelpotato

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/KimTsegzc/Peel-Potato/pkg/peelpotato/bridge"
	"github.com/KimTsegzc/Peel-Potato/pkg/peelpotato/parser"
)

// Options configures chart creation behavior.
type Options struct {
	// ExcludeHeader removes the used extent's first row from inferred
	// column ranges. If nil, defaults to true.
	ExcludeHeader *bool
	// AdvisoryRows is the explicit-range row threshold for performance
	// advisories (0 uses the parser default, negative disables).
	AdvisoryRows int
	// ChartWidth and ChartHeight are the chart dimensions in pixels.
	ChartWidth  uint
	ChartHeight uint
	// Anchor is the default top-left anchor cell for new charts.
	Anchor string
	// FontName and FontSize apply to titles, legends, labels and axes.
	FontName string
	FontSize float64
	// LabelNumFmt is the data-label number format.
	LabelNumFmt string
}

// DefaultOptions returns the original tool's defaults.
func DefaultOptions() Options {
	return Options{
		AdvisoryRows: parser.DefaultAdvisoryRows,
		ChartWidth:   520,
		ChartHeight:  320,
		Anchor:       "E2",
		FontName:     "Microsoft YaHei UI",
		FontSize:     12,
		LabelNumFmt:  "0.0",
	}
}

// ShouldExcludeHeader returns whether inferred ranges drop the header row.
func (o Options) ShouldExcludeHeader() bool {
	if o.ExcludeHeader != nil {
		return *o.ExcludeHeader
	}
	return true
}

// Style converts the options to the bridge formatting defaults.
func (o Options) Style() bridge.Style {
	s := bridge.DefaultStyle()
	if o.ChartWidth > 0 {
		s.Width = o.ChartWidth
	}
	if o.ChartHeight > 0 {
		s.Height = o.ChartHeight
	}
	if o.FontName != "" {
		s.FontName = o.FontName
	}
	if o.FontSize > 0 {
		s.FontSize = o.FontSize
	}
	if o.LabelNumFmt != "" {
		s.LabelNumFmt = o.LabelNumFmt
	}
	return s
}

// LoadOptions builds Options from defaults, an optional .env file, and
// PEELPOTATO_* environment variables.
func LoadOptions() Options {
	// A missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	o := DefaultOptions()
	if v, ok := envBool("PEELPOTATO_EXCLUDE_HEADER"); ok {
		o.ExcludeHeader = &v
	}
	if v, ok := envInt("PEELPOTATO_ADVISORY_ROWS"); ok {
		o.AdvisoryRows = v
	}
	if v, ok := envInt("PEELPOTATO_CHART_WIDTH"); ok && v > 0 {
		o.ChartWidth = uint(v)
	}
	if v, ok := envInt("PEELPOTATO_CHART_HEIGHT"); ok && v > 0 {
		o.ChartHeight = uint(v)
	}
	if v := os.Getenv("PEELPOTATO_ANCHOR"); v != "" {
		o.Anchor = v
	}
	if v := os.Getenv("PEELPOTATO_FONT_NAME"); v != "" {
		o.FontName = v
	}
	if v, ok := envFloat("PEELPOTATO_FONT_SIZE"); ok && v > 0 {
		o.FontSize = v
	}
	if v := os.Getenv("PEELPOTATO_LABEL_NUMFMT"); v != "" {
		o.LabelNumFmt = v
	}
	return o
}

func envBool(key string) (bool, bool) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b, true
		}
	}
	return false, false
}

func envInt(key string) (int, bool) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n, true
		}
	}
	return 0, false
}

func envFloat(key string) (float64, bool) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
