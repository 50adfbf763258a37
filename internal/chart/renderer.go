// Package chart renders dashboard charts as standalone SVG documents with
// no drawing dependencies: each chart is assembled from SVG primitives so
// the output embeds directly into the dashboard page.
package chart

import (
	"context"

	"github.com/couchcryptid/weather-dashboard/internal/domain"
)

// Artifact filenames, one per chart type.
const (
	TemperatureMapFile  = "temperature_map.svg"
	RainfallHeatmapFile = "rainfall_heatmap.svg"
	RainfallBarsFile    = "rainfall_barchart.svg"
	WindPatternsFile    = "wind_patterns.svg"
)

const (
	temperatureMapTitle  = "India - Average Temperature by State (°C)"
	rainfallHeatmapTitle = "Monthly Rainfall by State (mm)"
	rainfallBarsTitle    = "Monthly Rainfall Across Indian States"
	windPatternsTitle    = "India - Wind Patterns"
)

// Renderer draws one artifact per chart request.
// It implements pipeline.ChartRenderer.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the SVG artifact for a chart request. Degenerate inputs
// degrade to a simplified artifact flagged Fallback; only a chart type
// with no implementation returns an error, and that error is an
// UnsupportedChartError the caller can choose to skip.
func (r *Renderer) Render(_ context.Context, req domain.ChartRequest) (domain.Artifact, error) {
	switch req.Chart {
	case domain.ChartMap:
		a := domain.Artifact{
			Name:   TemperatureMapFile,
			Title:  temperatureMapTitle,
			Chart:  req.Chart,
			Source: req.Grid.Source,
		}
		if req.Geo.Geography.Empty() {
			a.SVG = []byte(meanTemperatureBars(req.Grid.Dataset, req.Style))
			a.Fallback = true
			return a, nil
		}
		a.SVG = []byte(TemperatureMap(req.Grid.Dataset, req.Geo.Geography, req.Style))
		a.Fallback = req.Grid.Dataset.Empty()
		return a, nil

	case domain.ChartHeatmap:
		return domain.Artifact{
			Name:     RainfallHeatmapFile,
			Title:    rainfallHeatmapTitle,
			Chart:    req.Chart,
			Source:   req.Grid.Source,
			SVG:      []byte(RainfallHeatmap(req.Grid.Dataset, req.Style)),
			Fallback: req.Grid.Dataset.Empty(),
		}, nil

	case domain.ChartBar:
		return domain.Artifact{
			Name:     RainfallBarsFile,
			Title:    rainfallBarsTitle,
			Chart:    req.Chart,
			Source:   req.Grid.Source,
			SVG:      []byte(RainfallBars(req.Grid.Dataset, req.Style)),
			Fallback: req.Grid.Dataset.Empty(),
		}, nil

	case domain.ChartWindField:
		a := domain.Artifact{
			Name:   WindPatternsFile,
			Title:  windPatternsTitle,
			Chart:  req.Chart,
			Source: req.Wind.Source,
			SVG:    []byte(WindPatterns(req.Wind, req.Geo.Geography, req.Style)),
		}
		a.Fallback = req.Wind.Empty()
		return a, nil

	default:
		return domain.Artifact{}, &domain.UnsupportedChartError{Chart: req.Chart}
	}
}
