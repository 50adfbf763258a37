package chart

import (
	"fmt"
	"strings"

	"github.com/couchcryptid/weather-dashboard/internal/domain"
)

// RainfallHeatmap draws the full state-by-month grid as shaded cells, each
// annotated with its rounded value. Rows are states, columns are calendar
// months.
func RainfallHeatmap(rain domain.Dataset, style domain.StyleConfig) string {
	f := newFrame(style, rainfallHeatmapTitle)
	if rain.Empty() {
		return emptySVG(f, "No rainfall data")
	}

	states := rain.States()
	months := domain.Months()
	lo, hi := rain.Range()
	span := hi - lo
	if span == 0 {
		span = 1
	}

	ramp := Palette("blues")
	px, py, pw, ph := f.plotArea()
	cellW := float64(pw) / float64(len(months))
	cellH := float64(ph) / float64(len(states))

	var sb strings.Builder
	chartOpen(&sb, f)

	for row, state := range states {
		for col := range months {
			v, ok := rain.Value(state, col)
			if !ok {
				continue
			}
			t := (v - lo) / span
			x := float64(px) + float64(col)*cellW
			y := float64(py) + float64(row)*cellH
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="white" stroke-width="1"/>`,
				x, y, cellW, cellH, ramp.At(t)))

			// Dark cells get white annotations so the value stays legible.
			annotColor := f.Theme.Text
			if t > 0.6 {
				annotColor = "#ffffff"
			}
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="%d" fill="%s" text-anchor="middle">%.0f</text>`,
				x+cellW/2, y+cellH/2+float64(f.AnnotSize)/2, f.AnnotSize, annotColor, v))
		}
	}

	for col, month := range months {
		x := float64(px) + float64(col)*cellW + cellW/2
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%d" font-size="%d" fill="%s" text-anchor="middle">%s</text>`,
			x, py+ph+f.LabelSize+6, f.LabelSize, f.Theme.Text, month))
	}
	for row, state := range states {
		y := float64(py) + float64(row)*cellH + cellH/2
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%.1f" font-size="%d" fill="%s" text-anchor="end">%s</text>`,
			px-8, y+float64(f.LabelSize)/2, f.LabelSize, f.Theme.Text, escapeXML(state)))
	}

	// Axis titles.
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="%d" fill="%s" text-anchor="middle">Month</text>`,
		px+pw/2, f.Height-f.MarginBottom/4, f.LabelSize, f.Theme.Text))
	ylx, yly := f.MarginLeft/4, py+ph/2
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="%d" fill="%s" text-anchor="middle" transform="rotate(-90,%d,%d)">State</text>`,
		ylx, yly, f.LabelSize, f.Theme.Text, ylx, yly))

	colorbar(&sb, f, ramp, lo, hi, "Rainfall (mm)")

	sb.WriteString("</svg>")
	return sb.String()
}
