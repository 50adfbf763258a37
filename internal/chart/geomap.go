package chart

import (
	"fmt"
	"strings"

	"github.com/couchcryptid/weather-dashboard/internal/domain"
)

// TemperatureMap draws each state's annual mean temperature as a filled
// shape (or marker, when no boundary ring is available) over the state
// geography. States present in the geography but absent from the dataset
// are filled light grey.
func TemperatureMap(temps domain.Dataset, geo domain.Geography, style domain.StyleConfig) string {
	f := newFrame(style, temperatureMapTitle)
	if temps.Empty() {
		return emptySVG(f, "No temperature data")
	}
	if geo.Empty() {
		return emptySVG(f, "No geography data")
	}

	means := make(map[string]float64)
	lo, hi := 0.0, 0.0
	first := true
	for _, state := range temps.States() {
		mean, ok := temps.Mean(state)
		if !ok {
			continue
		}
		means[state] = mean
		if first || mean < lo {
			lo = mean
		}
		if first || mean > hi {
			hi = mean
		}
		first = false
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	ramp := Palette(style.Normalized().Palette)
	p := newProjection(geoPoints(geo), f)
	markerR := float64(min(p.pw, p.ph)) / 16

	var sb strings.Builder
	chartOpen(&sb, f)

	// Shapes first, then labels, so text is never painted over.
	for _, sg := range geo.States() {
		fill := "lightgrey"
		if mean, ok := means[sg.State]; ok {
			fill = ramp.At((mean - lo) / span)
		}
		if path := boundaryPath(sg.Boundary, p); path != "" {
			sb.WriteString(fmt.Sprintf(`<path d="%s" fill="%s" stroke="black" stroke-width="1"/>`,
				path, fill))
			continue
		}
		x, y := p.xy(sg.Centroid)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="black" stroke-width="1"/>`,
			x, y, markerR, fill))
	}

	for _, sg := range geo.States() {
		x, y := p.xy(sg.Centroid)
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="%d" fill="%s" text-anchor="middle">%s</text>`,
			x, y+float64(f.AnnotSize)/2, f.AnnotSize, f.Theme.Text, escapeXML(sg.State)))
	}

	colorbar(&sb, f, ramp, lo, hi, "")

	sb.WriteString("</svg>")
	return sb.String()
}

// meanTemperatureBars is the degraded form of the temperature map, used
// when no geography at all is available: one horizontal bar per state,
// colored on the same ramp the map would have used.
func meanTemperatureBars(temps domain.Dataset, style domain.StyleConfig) string {
	f := newFrame(style, temperatureMapTitle)
	if temps.Empty() {
		return emptySVG(f, "No temperature data")
	}

	states := temps.States()
	means := make([]float64, len(states))
	lo, hi := 0.0, 0.0
	for i, state := range states {
		mean, _ := temps.Mean(state)
		means[i] = mean
		if i == 0 || mean < lo {
			lo = mean
		}
		if i == 0 || mean > hi {
			hi = mean
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	scaleMax := hi * 1.05
	if scaleMax <= 0 {
		scaleMax = 1
	}

	ramp := Palette(style.Normalized().Palette)
	px, py, pw, ph := f.plotArea()

	var sb strings.Builder
	chartOpen(&sb, f)
	sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`,
		px, py, pw, ph, f.Theme.PlotBg))

	gridLines := 5
	for i := 0; i <= gridLines; i++ {
		v := scaleMax * float64(i) / float64(gridLines)
		x := px + int(float64(pw)*float64(i)/float64(gridLines))
		sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="1"/>`,
			x, py, x, py+ph, f.Theme.Grid))
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="%d" fill="%s" text-anchor="middle">%.1f</text>`,
			x, py+ph+f.LabelSize+6, f.AnnotSize, f.Theme.Text, v))
	}

	barH := float64(ph) / float64(len(states)) * 0.7
	gap := (float64(ph) - barH*float64(len(states))) / float64(len(states)+1)
	for i, state := range states {
		by := float64(py) + gap + float64(i)*(barH+gap)
		bw := means[i] / scaleMax * float64(pw)
		sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`,
			px, by, bw, barH, ramp.At((means[i]-lo)/span)))
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%.1f" font-size="%d" fill="%s" text-anchor="end">%s</text>`,
			px-6, by+barH/2+float64(f.AnnotSize)/2, f.AnnotSize, f.Theme.Text, escapeXML(state)))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="%d" fill="%s">%.1f</text>`,
			float64(px)+bw+6, by+barH/2+float64(f.AnnotSize)/2, f.AnnotSize, f.Theme.Text, means[i]))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
