package chart

import (
	"fmt"
	"strings"
)

// Theme is a resolved set of canvas colors shared by every chart.
type Theme struct {
	Name       string
	Background string // full-canvas background
	PlotBg     string // plot-area fill behind the data
	Grid       string
	Text       string
}

var themes = map[string]Theme{
	"seaborn": {
		Name:       "seaborn",
		Background: "#ffffff",
		PlotBg:     "#eaeaf2",
		Grid:       "#ffffff",
		Text:       "#262626",
	},
	"ggplot": {
		Name:       "ggplot",
		Background: "#ffffff",
		PlotBg:     "#e5e5e5",
		Grid:       "#ffffff",
		Text:       "#555555",
	},
	"classic": {
		Name:       "classic",
		Background: "#ffffff",
		PlotBg:     "#ffffff",
		Grid:       "#b0b0b0",
		Text:       "#000000",
	},
}

// themeChain is the fallback order for unknown theme names.
var themeChain = []string{"seaborn", "ggplot", "classic"}

// ResolveTheme returns the named theme, walking the fallback chain when
// the name is unknown. It never fails.
func ResolveTheme(name string) Theme {
	if t, ok := themes[strings.ToLower(name)]; ok {
		return t
	}
	for _, fallback := range themeChain {
		if t, ok := themes[fallback]; ok {
			return t
		}
	}
	return themes["classic"]
}

// rgb is one color stop of a ramp.
type rgb struct {
	r, g, b uint8
}

// Ramp is a sequence of color stops sampled by linear interpolation.
type Ramp []rgb

var palettes = map[string]Ramp{
	// Diverging blue-to-red, the default for temperature.
	"coolwarm": {{59, 76, 192}, {221, 221, 221}, {180, 4, 38}},
	// Sequential light-to-dark blue for rainfall.
	"blues": {{247, 251, 255}, {107, 174, 214}, {8, 48, 107}},
	// Perceptually uniform purple-green-yellow.
	"viridis": {{68, 1, 84}, {33, 145, 140}, {253, 231, 37}},
}

// Palette returns the named color ramp, or the coolwarm ramp for unknown
// names.
func Palette(name string) Ramp {
	if r, ok := palettes[strings.ToLower(name)]; ok {
		return r
	}
	return palettes["coolwarm"]
}

// At samples the ramp at t, clamped to [0, 1], and returns a hex color.
func (r Ramp) At(t float64) string {
	if len(r) == 0 {
		return "#000000"
	}
	if len(r) == 1 {
		return hexColor(r[0])
	}
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	segments := len(r) - 1
	pos := t * float64(segments)
	i := int(pos)
	if i >= segments {
		i = segments - 1
	}
	frac := pos - float64(i)

	a, b := r[i], r[i+1]
	return hexColor(rgb{
		r: uint8(float64(a.r) + frac*(float64(b.r)-float64(a.r))),
		g: uint8(float64(a.g) + frac*(float64(b.g)-float64(a.g))),
		b: uint8(float64(a.b) + frac*(float64(b.b)-float64(a.b))),
	})
}

func hexColor(c rgb) string {
	return fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)
}

// seriesColors is the categorical cycle for multi-state series, one color
// per state in a grouped chart or legend.
var seriesColors = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

func seriesColor(i int) string {
	return seriesColors[i%len(seriesColors)]
}
