package domain

import "time"

// ChartType identifies one of the renderable chart styles.
type ChartType string

const (
	// ChartMap plots per-state annual means as markers over state geography.
	ChartMap ChartType = "map"
	// ChartHeatmap draws the full state×month grid as shaded cells.
	ChartHeatmap ChartType = "heatmap"
	// ChartBar draws grouped monthly bars per state.
	ChartBar ChartType = "bar_chart"
	// ChartWindField draws wind vectors as arrows at state centroids.
	ChartWindField ChartType = "wind_field"
)

// StyleConfig controls chart appearance. Zero-valued fields fall back to
// the defaults in DefaultStyle; see Normalized.
type StyleConfig struct {
	// Palette names the color ramp for value-mapped fills, e.g. "coolwarm"
	// for temperatures or "blues" for rainfall.
	Palette string `yaml:"palette"`
	// FigureSize is the chart canvas as [width, height] in inches.
	FigureSize []float64 `yaml:"figure_size"`
	// DPI scales inches to output pixels.
	DPI int `yaml:"dpi"`
	// Theme names the overall look. Unknown themes degrade along a fixed
	// fallback chain rather than failing the build.
	Theme string `yaml:"theme"`
}

// DefaultStyle returns the styling used when no style file is given.
func DefaultStyle() StyleConfig {
	return StyleConfig{
		Palette:    "coolwarm",
		FigureSize: []float64{14, 8},
		DPI:        150,
		Theme:      "seaborn",
	}
}

// Normalized fills unset fields from DefaultStyle and discards malformed
// figure sizes, returning a config safe to render with.
func (s StyleConfig) Normalized() StyleConfig {
	def := DefaultStyle()
	if s.Palette == "" {
		s.Palette = def.Palette
	}
	if len(s.FigureSize) != 2 || s.FigureSize[0] <= 0 || s.FigureSize[1] <= 0 {
		s.FigureSize = def.FigureSize
	}
	if s.DPI <= 0 {
		s.DPI = def.DPI
	}
	if s.Theme == "" {
		s.Theme = def.Theme
	}
	return s
}

// PixelSize returns the output canvas in pixels.
func (s StyleConfig) PixelSize() (width, height int) {
	n := s.Normalized()
	return int(n.FigureSize[0] * float64(n.DPI)), int(n.FigureSize[1] * float64(n.DPI))
}

// ChartRequest describes one chart to render: the chart type, the resolved
// data behind it, and the style to draw it with. Grid charts use Grid; the
// map and wind charts additionally use Geo; the wind chart uses Wind.
type ChartRequest struct {
	Chart ChartType
	Grid  Resolution
	Geo   GeoResolution
	Wind  WindField
	Style StyleConfig
}

// Page is the assembled dashboard: every artifact in render order plus
// the build metadata shown in the page header.
type Page struct {
	GeneratedAt time.Time
	BuildID     string
	Artifacts   []Artifact

	// Notes are per-dataset provenance lines, shown so placeholder data
	// is never mistaken for observations.
	Notes []string
}

// Artifact is one rendered dashboard asset: a chart image plus the
// metadata the page assembler needs to title and label it.
type Artifact struct {
	Name  string // output filename, e.g. "temperature_map.svg"
	Title string
	Chart ChartType
	SVG   []byte

	// Source is the provenance of the data behind the chart.
	Source Source

	// Fallback marks a chart drawn in a degraded form, such as a map
	// rendered without geography.
	Fallback bool
}
