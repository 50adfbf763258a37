package chart

import (
	"fmt"
	"strings"

	"github.com/couchcryptid/weather-dashboard/internal/domain"
)

// RainfallBars draws monthly rainfall as grouped vertical bars, one group
// per calendar month with one bar per state, plus a state legend.
func RainfallBars(rain domain.Dataset, style domain.StyleConfig) string {
	f := newFrame(style, rainfallBarsTitle)
	if rain.Empty() {
		return emptySVG(f, "No rainfall data")
	}

	states := rain.States()
	months := domain.Months()
	_, hi := rain.Range()
	scaleMax := hi * 1.05
	if scaleMax <= 0 {
		scaleMax = 1
	}

	px, py, pw, ph := f.plotArea()

	var sb strings.Builder
	chartOpen(&sb, f)
	sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`,
		px, py, pw, ph, f.Theme.PlotBg))

	gridLines := 5
	for i := 0; i <= gridLines; i++ {
		v := scaleMax * float64(i) / float64(gridLines)
		y := py + ph - int(float64(ph)*float64(i)/float64(gridLines))
		sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="1"/>`,
			px, y, px+pw, y, f.Theme.Grid))
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="%d" fill="%s" text-anchor="end">%.0f</text>`,
			px-8, y+f.AnnotSize/2, f.AnnotSize, f.Theme.Text, v))
	}

	groupW := float64(pw) / float64(len(months))
	barW := groupW * 0.8 / float64(len(states))
	for col, month := range months {
		groupX := float64(px) + float64(col)*groupW + groupW*0.1
		for i, state := range states {
			v, ok := rain.Value(state, col)
			if !ok {
				continue
			}
			bh := v / scaleMax * float64(ph)
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`,
				groupX+float64(i)*barW, float64(py+ph)-bh, barW, bh, seriesColor(i)))
		}
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%d" font-size="%d" fill="%s" text-anchor="middle">%s</text>`,
			groupX+groupW*0.4, py+ph+f.LabelSize+6, f.LabelSize, f.Theme.Text, month))
	}

	// Legend in the right margin, one swatch per state.
	swatch := f.LabelSize
	legendX := px + pw + f.MarginRight/6
	for i, state := range states {
		ly := py + i*(swatch+8)
		sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`,
			legendX, ly, swatch, swatch, seriesColor(i)))
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="%d" fill="%s">%s</text>`,
			legendX+swatch+6, ly+swatch-2, f.AnnotSize, f.Theme.Text, escapeXML(state)))
	}

	// Axis titles.
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="%d" fill="%s" text-anchor="middle">Month</text>`,
		px+pw/2, f.Height-f.MarginBottom/4, f.LabelSize, f.Theme.Text))
	ylx, yly := f.MarginLeft/4, py+ph/2
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="%d" fill="%s" text-anchor="middle" transform="rotate(-90,%d,%d)">Rainfall (mm)</text>`,
		ylx, yly, f.LabelSize, f.Theme.Text, ylx, yly))

	sb.WriteString("</svg>")
	return sb.String()
}
