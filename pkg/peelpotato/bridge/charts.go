package bridge

import (
	"fmt"
	"log"

	"github.com/xuri/excelize/v2"

	"github.com/KimTsegzc/Peel-Potato/pkg/peelpotato/models"
)

// Style carries the presentation defaults applied to every chart the
// tool creates: legend at the top, data labels above with a fixed number
// format, one font family and size everywhere.
type Style struct {
	Width       uint
	Height      uint
	FontName    string
	FontSize    float64
	LabelNumFmt string
	TitleSuffix string
}

// DefaultStyle mirrors the original tool's formatting pass.
func DefaultStyle() Style {
	return Style{
		Width:       520,
		Height:      320,
		FontName:    "Microsoft YaHei UI",
		FontSize:    12,
		LabelNumFmt: "0.0",
		TitleSuffix: "Peel Potato",
	}
}

// chartTypeFor maps a chart kind plus multi-series mode onto the host
// chart type, falling back to a clustered column like the original.
func chartTypeFor(kind models.ChartKind, mode models.MultiMode) excelize.ChartType {
	switch kind {
	case models.KindLine:
		// The host has no stacked line chart types; stacked modes render
		// as plain lines.
		return excelize.Line
	case models.KindColumn:
		switch mode {
		case models.ModePercentStacked:
			return excelize.ColPercentStacked
		case models.ModeStacked:
			return excelize.ColStacked
		}
		return excelize.Col
	case models.KindBar:
		switch mode {
		case models.ModePercentStacked:
			return excelize.BarPercentStacked
		case models.ModeStacked:
			return excelize.BarStacked
		}
		return excelize.Bar
	case models.KindArea:
		switch mode {
		case models.ModePercentStacked:
			return excelize.AreaPercentStacked
		case models.ModeStacked:
			return excelize.AreaStacked
		}
		return excelize.Area
	case models.KindPie:
		switch mode {
		case models.ModeDoughnut:
			return excelize.Doughnut
		case models.ModePieOfPie:
			return excelize.PieOfPie
		}
		return excelize.Pie
	case models.KindScatter:
		return excelize.Scatter
	case models.KindRadar:
		return excelize.Radar
	}
	return excelize.Col
}

// AddChart creates a chart object anchored at the given cell from the
// request, applying the default formatting.
func (w *Workbook) AddChart(anchor models.ChartAnchor, req *models.ChartRequest, style Style) error {
	if err := w.anchorCoordinates(anchor); err != nil {
		return err
	}
	chart := buildChart(req, style)
	if err := w.f.AddChart(anchor.Sheet, anchor.Cell, chart); err != nil {
		return fmt.Errorf("add chart at %s: %w", anchor, err)
	}
	log.Printf("[Bridge] added %s chart at %s (%d series)", req.Kind, anchor, len(req.Series))
	return nil
}

// ReplaceChart rebuilds the chart at an existing anchor in place: the
// old chart object is removed and a new one is created from the request.
func (w *Workbook) ReplaceChart(anchor models.ChartAnchor, req *models.ChartRequest, style Style) error {
	if err := w.anchorCoordinates(anchor); err != nil {
		return err
	}
	if err := w.f.DeleteChart(anchor.Sheet, anchor.Cell); err != nil {
		return fmt.Errorf("remove chart at %s: %w", anchor, err)
	}
	return w.AddChart(anchor, req, style)
}

// buildChart converts a ChartRequest into the excelize chart definition.
func buildChart(req *models.ChartRequest, style Style) *excelize.Chart {
	font := excelize.Font{Family: style.FontName, Size: style.FontSize}

	series := make([]excelize.ChartSeries, 0, len(req.Series))
	for _, s := range req.Series {
		cs := excelize.ChartSeries{
			Name:              s.Name,
			Values:            s.Values.Ref(),
			DataLabelPosition: excelize.ChartDataLabelsPositionAbove,
		}
		if req.Label != nil {
			cs.Categories = req.Label.Ref()
		}
		series = append(series, cs)
	}

	title := fmt.Sprintf("%s - %s", titleKind(req.Kind), style.TitleSuffix)
	return &excelize.Chart{
		Type:   chartTypeFor(req.Kind, req.Mode),
		Series: series,
		Dimension: excelize.ChartDimension{
			Width:  style.Width,
			Height: style.Height,
		},
		Title: []excelize.RichTextRun{
			{Text: title, Font: &font},
		},
		Legend: excelize.ChartLegend{Position: "top"},
		PlotArea: excelize.ChartPlotArea{
			ShowVal: true,
			NumFmt:  excelize.ChartNumFmt{CustomNumFmt: style.LabelNumFmt},
		},
		XAxis: excelize.ChartAxis{Font: font},
		YAxis: excelize.ChartAxis{Font: font},
	}
}

// titleKind renders the kind for chart titles ("Line", "Column", ...).
func titleKind(k models.ChartKind) string {
	if k == "" {
		return "Chart"
	}
	b := []byte(string(k))
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
