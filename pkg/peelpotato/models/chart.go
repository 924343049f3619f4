package models

import "strings"

// ChartKind is the user-facing chart type selection.
type ChartKind string

const (
	KindLine    ChartKind = "line"
	KindBar     ChartKind = "bar"
	KindColumn  ChartKind = "column"
	KindPie     ChartKind = "pie"
	KindArea    ChartKind = "area"
	KindScatter ChartKind = "scatter"
	KindRadar   ChartKind = "radar"
)

// MultiMode is the multi-series modifier, orthogonal to range resolution.
type MultiMode string

const (
	ModeStandard       MultiMode = "standard"
	ModeClustered      MultiMode = "clustered"
	ModeStacked        MultiMode = "stacked"
	ModePercentStacked MultiMode = "100% stacked"
	ModePie            MultiMode = "pie"
	ModePieOfPie       MultiMode = "pie of"
	ModeDoughnut       MultiMode = "doughnut"
	ModeScatter        MultiMode = "scatter"
	ModeRadar          MultiMode = "radar"
)

// kindModes mirrors the mode choices the original UI offered per chart
// type; the first entry is the default.
var kindModes = map[ChartKind][]MultiMode{
	KindLine:    {ModeStandard, ModeStacked, ModePercentStacked},
	KindColumn:  {ModeClustered, ModeStacked, ModePercentStacked},
	KindBar:     {ModeClustered, ModeStacked, ModePercentStacked},
	KindArea:    {ModeStandard, ModeStacked, ModePercentStacked},
	KindPie:     {ModePie, ModePieOfPie, ModeDoughnut},
	KindScatter: {ModeScatter},
	KindRadar:   {ModeRadar},
}

// Kinds returns all chart kinds in display order.
func Kinds() []ChartKind {
	return []ChartKind{KindLine, KindBar, KindColumn, KindPie, KindArea, KindScatter, KindRadar}
}

// Valid reports whether k is a known chart kind.
func (k ChartKind) Valid() bool {
	_, ok := kindModes[k]
	return ok
}

// Modes returns the multi-series modes available for the kind.
func (k ChartKind) Modes() []MultiMode {
	return kindModes[k]
}

// DefaultMode returns the default multi-series mode for the kind.
func (k ChartKind) DefaultMode() MultiMode {
	modes := kindModes[k]
	if len(modes) == 0 {
		return ModeStandard
	}
	return modes[0]
}

// AllowsMode reports whether m is a valid mode for the kind.
func (k ChartKind) AllowsMode(m MultiMode) bool {
	for _, mode := range kindModes[k] {
		if mode == m {
			return true
		}
	}
	return false
}

// ParseKind matches free-form chart type text like "Column (vertical)"
// the way the original UI labels read, by keyword.
func ParseKind(s string) (ChartKind, bool) {
	t := strings.ToLower(s)
	for _, k := range Kinds() {
		if strings.Contains(t, string(k)) {
			return k, true
		}
	}
	return "", false
}

// ParseMode matches free-form mode text like "100% Stacked" by keyword.
// Empty input maps to the kind's default mode.
func ParseMode(s string, kind ChartKind) (MultiMode, bool) {
	t := strings.ToLower(strings.TrimSpace(s))
	switch {
	case t == "":
		return kind.DefaultMode(), true
	case strings.Contains(t, "100"):
		return ModePercentStacked, true
	case strings.Contains(t, "stack"):
		return ModeStacked, true
	case strings.Contains(t, "cluster"):
		return ModeClustered, true
	case strings.Contains(t, "doughnut"):
		return ModeDoughnut, true
	case strings.Contains(t, "pie of"):
		return ModePieOfPie, true
	case strings.Contains(t, "pie"):
		return ModePie, true
	case strings.Contains(t, "scatter"):
		return ModeScatter, true
	case strings.Contains(t, "radar"):
		return ModeRadar, true
	case strings.Contains(t, "standard"):
		return ModeStandard, true
	}
	return "", false
}

// Series is one value range to plot, with an optional display name taken
// from the header row above the data.
type Series struct {
	// Name is the series display name ("" lets the host pick one).
	Name string
	// Values is the value range for the series.
	Values ResolvedRange
}

// ChartRequest bundles everything the bridge needs to create or rebuild
// one chart. Series order is significant: it determines series order in
// the resulting chart.
type ChartRequest struct {
	// Label is the optional category/label range (X axis).
	Label *ResolvedRange
	// Series is the ordered list of value series; never empty.
	Series []Series
	// Kind is the requested chart type, passed through unchanged.
	Kind ChartKind
	// Mode is the requested multi-series mode, passed through unchanged.
	Mode MultiMode
}
