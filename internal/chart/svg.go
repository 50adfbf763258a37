package chart

import (
	"fmt"
	"strings"

	"github.com/couchcryptid/weather-dashboard/internal/domain"
)

// frame holds the resolved geometry for one chart: canvas size in pixels,
// margins, and font sizes, all scaled from the style's figure size and DPI
// so charts stay readable at any resolution.
type frame struct {
	Width  int
	Height int

	MarginTop    int
	MarginRight  int
	MarginBottom int
	MarginLeft   int

	TitleSize int
	LabelSize int
	AnnotSize int

	Theme Theme
	Title string
}

func newFrame(style domain.StyleConfig, title string) frame {
	w, h := style.PixelSize()
	return frame{
		Width:        w,
		Height:       h,
		MarginTop:    h / 10,
		MarginRight:  w / 8,
		MarginBottom: h / 9,
		MarginLeft:   w / 8,
		TitleSize:    atLeast(h/36, 12),
		LabelSize:    atLeast(h/60, 8),
		AnnotSize:    atLeast(h/75, 7),
		Theme:        ResolveTheme(style.Normalized().Theme),
		Title:        title,
	}
}

// plotArea returns the usable drawing area inside the margins.
func (f frame) plotArea() (x, y, w, h int) {
	return f.MarginLeft, f.MarginTop,
		f.Width - f.MarginLeft - f.MarginRight,
		f.Height - f.MarginTop - f.MarginBottom
}

func atLeast(v, floor int) int {
	if v < floor {
		return floor
	}
	return v
}

func svgHeader(f frame) string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">`,
		f.Width, f.Height, f.Width, f.Height)
}

// chartOpen writes the SVG header, canvas background, and centered title.
func chartOpen(sb *strings.Builder, f frame) {
	sb.WriteString(svgHeader(f))
	sb.WriteString(fmt.Sprintf(`<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`,
		f.Width, f.Height, f.Theme.Background))
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="%d" font-weight="bold" fill="%s" text-anchor="middle">%s</text>`,
		f.Width/2, f.MarginTop/2+f.TitleSize/2, f.TitleSize, f.Theme.Text, escapeXML(f.Title)))
}

func emptySVG(f frame, msg string) string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d"><rect width="%d" height="%d" fill="#f5f5f5"/><text x="%d" y="%d" text-anchor="middle" fill="#999" font-size="14">%s</text></svg>`,
		f.Width, f.Height, f.Width, f.Height, f.Width/2, f.Height/2, escapeXML(msg))
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}

// colorbar draws a vertical legend bar to the right of the plot area,
// sampling the ramp top-to-bottom from hi to lo, with tick labels and an
// optional rotated unit label.
func colorbar(sb *strings.Builder, f frame, ramp Ramp, lo, hi float64, label string) {
	px, py, pw, ph := f.plotArea()
	barX := px + pw + f.MarginRight/5
	barW := f.MarginRight / 5
	segments := 20

	segH := float64(ph) / float64(segments)
	for i := 0; i < segments; i++ {
		// Segment 0 is the top of the bar, so it holds the highest value.
		t := 1 - (float64(i)+0.5)/float64(segments)
		sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%.1f" width="%d" height="%.1f" fill="%s"/>`,
			barX, float64(py)+float64(i)*segH, barW, segH+0.5, ramp.At(t)))
	}
	sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="none" stroke="%s" stroke-width="1"/>`,
		barX, py, barW, ph, f.Theme.Text))

	ticks := 5
	for i := 0; i <= ticks; i++ {
		v := lo + (hi-lo)*float64(i)/float64(ticks)
		y := py + ph - int(float64(ph)*float64(i)/float64(ticks))
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="%d" fill="%s">%.1f</text>`,
			barX+barW+6, y+f.AnnotSize/2, f.AnnotSize, f.Theme.Text, v))
	}

	if label != "" {
		lx := barX + barW + f.MarginRight/2
		ly := py + ph/2
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="%d" fill="%s" text-anchor="middle" transform="rotate(90,%d,%d)">%s</text>`,
			lx, ly, f.LabelSize, f.Theme.Text, lx, ly, escapeXML(label)))
	}
}

// projection maps geographic coordinates onto the plot area with equal
// linear scaling per axis and padded bounds.
type projection struct {
	minLon, maxLon float64
	minLat, maxLat float64
	px, py, pw, ph int
}

func newProjection(points []domain.Geo, f frame) projection {
	px, py, pw, ph := f.plotArea()
	p := projection{px: px, py: py, pw: pw, ph: ph}
	if len(points) == 0 {
		// Bounding box of India, for safety.
		p.minLon, p.maxLon = 68, 98
		p.minLat, p.maxLat = 6, 38
		return p
	}

	p.minLon, p.maxLon = points[0].Lon, points[0].Lon
	p.minLat, p.maxLat = points[0].Lat, points[0].Lat
	for _, g := range points[1:] {
		if g.Lon < p.minLon {
			p.minLon = g.Lon
		}
		if g.Lon > p.maxLon {
			p.maxLon = g.Lon
		}
		if g.Lat < p.minLat {
			p.minLat = g.Lat
		}
		if g.Lat > p.maxLat {
			p.maxLat = g.Lat
		}
	}

	// Pad so markers and labels near the edge stay inside the plot.
	padLon := (p.maxLon - p.minLon) * 0.1
	padLat := (p.maxLat - p.minLat) * 0.1
	if padLon == 0 {
		padLon = 1
	}
	if padLat == 0 {
		padLat = 1
	}
	p.minLon -= padLon
	p.maxLon += padLon
	p.minLat -= padLat
	p.maxLat += padLat
	return p
}

// xy projects a coordinate into pixel space. North is up.
func (p projection) xy(g domain.Geo) (float64, float64) {
	x := float64(p.px) + (g.Lon-p.minLon)/(p.maxLon-p.minLon)*float64(p.pw)
	y := float64(p.py) + (p.maxLat-g.Lat)/(p.maxLat-p.minLat)*float64(p.ph)
	return x, y
}

// boundaryPath builds an SVG path for a closed boundary ring, or "" when
// the ring has too few points to enclose anything.
func boundaryPath(ring []domain.Geo, p projection) string {
	if len(ring) < 3 {
		return ""
	}
	var parts []string
	for i, g := range ring {
		x, y := p.xy(g)
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		parts = append(parts, fmt.Sprintf("%s%.1f,%.1f", cmd, x, y))
	}
	return strings.Join(parts, " ") + " Z"
}

// geoPoints flattens a geography into every coordinate it contains, for
// bounds computation.
func geoPoints(geo domain.Geography) []domain.Geo {
	var points []domain.Geo
	for _, sg := range geo.States() {
		points = append(points, sg.Centroid)
		points = append(points, sg.Boundary...)
	}
	return points
}
