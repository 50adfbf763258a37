package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/couchcryptid/weather-dashboard/internal/domain"
)

// quiverScale divides wind speed into plot-width fractions; higher values
// draw shorter arrows.
const quiverScale = 50.0

// WindPatterns draws wind vectors as arrows at their coordinates over the
// state boundaries, on a latitude/longitude grid.
func WindPatterns(wind domain.WindField, geo domain.Geography, style domain.StyleConfig) string {
	f := newFrame(style, windPatternsTitle)
	if wind.Empty() {
		return emptySVG(f, "No wind data")
	}

	points := geoPoints(geo)
	for _, vec := range wind.Vectors {
		points = append(points, vec.Geo)
	}
	p := newProjection(points, f)
	px, py, pw, ph := f.plotArea()

	var sb strings.Builder
	chartOpen(&sb, f)
	sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`,
		px, py, pw, ph, f.Theme.PlotBg))

	// Faint coordinate grid with longitude/latitude tick labels.
	ticks := 5
	for i := 0; i <= ticks; i++ {
		lon := p.minLon + (p.maxLon-p.minLon)*float64(i)/float64(ticks)
		x := px + int(float64(pw)*float64(i)/float64(ticks))
		sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="1" stroke-opacity="0.3"/>`,
			x, py, x, py+ph, f.Theme.Grid))
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="%d" fill="%s" text-anchor="middle">%.0f</text>`,
			x, py+ph+f.LabelSize+6, f.AnnotSize, f.Theme.Text, lon))

		lat := p.minLat + (p.maxLat-p.minLat)*float64(i)/float64(ticks)
		y := py + ph - int(float64(ph)*float64(i)/float64(ticks))
		sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="1" stroke-opacity="0.3"/>`,
			px, y, px+pw, y, f.Theme.Grid))
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="%d" fill="%s" text-anchor="end">%.0f</text>`,
			px-8, y+f.AnnotSize/2, f.AnnotSize, f.Theme.Text, lat))
	}

	// Geographic context: boundary outlines, or centroid dots when only
	// the fallback table is available.
	for _, sg := range geo.States() {
		if path := boundaryPath(sg.Boundary, p); path != "" {
			sb.WriteString(fmt.Sprintf(`<path d="%s" fill="none" stroke="gray" stroke-width="1"/>`, path))
			continue
		}
		x, y := p.xy(sg.Centroid)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="none" stroke="gray" stroke-width="1"/>`,
			x, y))
	}

	for _, vec := range wind.Vectors {
		drawArrow(&sb, p, vec, float64(pw))
	}

	// Axis titles.
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="%d" fill="%s" text-anchor="middle">Longitude</text>`,
		px+pw/2, f.Height-f.MarginBottom/4, f.LabelSize, f.Theme.Text))
	ylx, yly := f.MarginLeft/4, py+ph/2
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="%d" fill="%s" text-anchor="middle" transform="rotate(-90,%d,%d)">Latitude</text>`,
		ylx, yly, f.LabelSize, f.Theme.Text, ylx, yly))

	sb.WriteString("</svg>")
	return sb.String()
}

// drawArrow renders one wind vector as a shaft plus a filled head. Arrow
// length is speed divided by quiverScale, as a fraction of plot width,
// capped so outliers cannot cross the whole chart.
func drawArrow(sb *strings.Builder, p projection, vec domain.WindVector, plotW float64) {
	x, y := p.xy(vec.Geo)
	mag := math.Hypot(vec.U, vec.V)
	if mag == 0 {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="2" fill="black"/>`, x, y))
		return
	}

	length := mag / quiverScale * plotW
	if length > plotW/4 {
		length = plotW / 4
	}
	if length < 6 {
		length = 6
	}

	// Screen y grows downward, so northward V points up.
	dx := vec.U / mag
	dy := -vec.V / mag
	ex := x + dx*length
	ey := y + dy*length

	head := length * 0.3
	if head > 18 {
		head = 18
	}
	if head < 5 {
		head = 5
	}
	theta := math.Atan2(dy, dx)
	bx1 := ex + head*math.Cos(theta+2.8)
	by1 := ey + head*math.Sin(theta+2.8)
	bx2 := ex + head*math.Cos(theta-2.8)
	by2 := ey + head*math.Sin(theta-2.8)

	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="black" stroke-width="1.5"/>`,
		x, y, ex, ey))
	sb.WriteString(fmt.Sprintf(`<path d="M%.1f,%.1f L%.1f,%.1f L%.1f,%.1f Z" fill="black"/>`,
		ex, ey, bx1, by1, bx2, by2))
}
