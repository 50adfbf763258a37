package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/weather-dashboard/internal/domain"
	"github.com/couchcryptid/weather-dashboard/internal/observability"
)

// DatasetResolver produces the resolved datasets for one build, falling
// back to synthesis so that resolution itself never leaves the build
// without data.
type DatasetResolver interface {
	ResolveGrid(ctx context.Context, kind domain.Kind) (domain.Resolution, error)
	ResolveGeography(ctx context.Context) (domain.GeoResolution, error)
	ResolveWind(ctx context.Context) (domain.WindField, error)
}

// ChartRenderer draws one artifact per chart request.
type ChartRenderer interface {
	Render(ctx context.Context, req domain.ChartRequest) (domain.Artifact, error)
}

// SiteWriter persists artifacts and the assembled dashboard page.
type SiteWriter interface {
	WriteArtifact(ctx context.Context, a domain.Artifact) error
	WriteIndex(ctx context.Context, page domain.Page) error
}

// Pipeline orchestrates one resolve-render-write build.
type Pipeline struct {
	resolver DatasetResolver
	renderer ChartRenderer
	writer   SiteWriter
	logger   *slog.Logger
	metrics  *observability.Metrics
	style    domain.StyleConfig
	buildID  string
}

// New creates a Pipeline with the given stages and observability.
func New(r DatasetResolver, c ChartRenderer, w SiteWriter, logger *slog.Logger, metrics *observability.Metrics, style domain.StyleConfig, buildID string) *Pipeline {
	return &Pipeline{
		resolver: r,
		renderer: c,
		writer:   w,
		logger:   logger,
		metrics:  metrics,
		style:    style,
		buildID:  buildID,
	}
}

// Run executes one build: resolve all datasets, render every chart, write
// the artifacts and the dashboard page. Data acquisition failures are
// recovered inside the resolver; only unwritable output or a broken stage
// aborts the build.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()
	p.logger.Info("build started", "build_id", p.buildID)
	p.metrics.BuildRunning.Set(1)
	defer p.metrics.BuildRunning.Set(0)
	defer func() {
		p.metrics.BuildDuration.Observe(time.Since(start).Seconds())
	}()

	data, err := p.resolveAll(ctx)
	if err != nil {
		return err
	}

	artifacts, err := p.renderAll(ctx, data)
	if err != nil {
		return err
	}

	page := domain.Page{
		GeneratedAt: domain.Now(),
		BuildID:     p.buildID,
		Artifacts:   artifacts,
		Notes:       buildNotes(data),
	}
	if err := p.writeAll(ctx, page); err != nil {
		return err
	}

	p.logger.Info("build complete",
		"charts", len(artifacts),
		"temperature_source", data.Temperature.Source,
		"rainfall_source", data.Rainfall.Source,
		"geography_source", data.Geography.Source,
		"wind_available", !data.Wind.Empty(),
		"duration", time.Since(start),
	)
	return nil
}

func (p *Pipeline) resolveAll(ctx context.Context) (domain.DashboardData, error) {
	var data domain.DashboardData

	for _, kind := range domain.GridKinds() {
		start := time.Now()
		res, err := p.resolver.ResolveGrid(ctx, kind)
		if err != nil {
			return data, fmt.Errorf("resolve %s: %w", kind, err)
		}
		p.metrics.ResolveDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
		p.metrics.DatasetsResolved.WithLabelValues(string(kind), string(res.Source)).Inc()
		p.metrics.CellsResolved.WithLabelValues(string(kind), "loaded").Add(float64(res.LoadedCells))
		p.metrics.CellsResolved.WithLabelValues(string(kind), "synthetic").Add(float64(res.SyntheticCells))
		p.logger.Info("dataset resolved",
			"kind", kind,
			"source", res.Source,
			"states", len(res.Dataset.States()),
			"loaded_cells", res.LoadedCells,
			"synthetic_cells", res.SyntheticCells,
		)

		switch kind {
		case domain.KindTemperature:
			data.Temperature = res
		case domain.KindRainfall:
			data.Rainfall = res
		}
	}

	geo, err := p.resolver.ResolveGeography(ctx)
	if err != nil {
		return data, fmt.Errorf("resolve geography: %w", err)
	}
	p.metrics.DatasetsResolved.WithLabelValues(string(domain.KindGeography), string(geo.Source)).Inc()
	p.logger.Info("dataset resolved", "kind", domain.KindGeography, "source", geo.Source, "states", geo.Geography.Len())
	data.Geography = geo

	wind, err := p.resolver.ResolveWind(ctx)
	if err != nil {
		return data, fmt.Errorf("resolve wind: %w", err)
	}
	if !wind.Empty() {
		p.metrics.DatasetsResolved.WithLabelValues(string(domain.KindWind), string(wind.Source)).Inc()
		p.logger.Info("dataset resolved", "kind", domain.KindWind, "source", wind.Source, "vectors", len(wind.Vectors))
	}
	data.Wind = wind

	return data, nil
}

func (p *Pipeline) chartRequests(data domain.DashboardData) []domain.ChartRequest {
	requests := []domain.ChartRequest{
		{Chart: domain.ChartMap, Grid: data.Temperature, Geo: data.Geography, Style: p.style},
		{Chart: domain.ChartHeatmap, Grid: data.Rainfall, Style: p.style},
		{Chart: domain.ChartBar, Grid: data.Rainfall, Style: p.style},
	}
	// The wind chart is a bonus: only requested when wind data exists.
	if !data.Wind.Empty() {
		requests = append(requests, domain.ChartRequest{
			Chart: domain.ChartWindField,
			Wind:  data.Wind,
			Geo:   data.Geography,
			Style: p.style,
		})
	}
	return requests
}

func (p *Pipeline) renderAll(ctx context.Context, data domain.DashboardData) ([]domain.Artifact, error) {
	requests := p.chartRequests(data)
	artifacts := make([]domain.Artifact, 0, len(requests))

	for _, req := range requests {
		start := time.Now()
		a, err := p.renderer.Render(ctx, req)
		p.metrics.RenderDuration.WithLabelValues(string(req.Chart)).Observe(time.Since(start).Seconds())
		if err != nil {
			var unsupported *domain.UnsupportedChartError
			if errors.As(err, &unsupported) {
				p.logger.Warn("chart skipped", "chart", req.Chart, "error", err)
				p.metrics.ChartsRendered.WithLabelValues(string(req.Chart), "skipped").Inc()
				continue
			}
			return nil, fmt.Errorf("render %s: %w", req.Chart, err)
		}

		outcome := "success"
		if a.Fallback {
			outcome = "fallback"
			p.logger.Warn("chart rendered in degraded form", "chart", req.Chart, "artifact", a.Name)
		}
		p.metrics.ChartsRendered.WithLabelValues(string(req.Chart), outcome).Inc()
		artifacts = append(artifacts, a)
	}
	return artifacts, nil
}

func (p *Pipeline) writeAll(ctx context.Context, page domain.Page) error {
	for _, a := range page.Artifacts {
		if err := p.writer.WriteArtifact(ctx, a); err != nil {
			p.logger.Error("write artifact failed", "artifact", a.Name, "error", err)
			return err
		}
		p.metrics.AssetBytes.Observe(float64(len(a.SVG)))
	}

	if err := p.writer.WriteIndex(ctx, page); err != nil {
		p.logger.Error("write dashboard failed", "error", err)
		return err
	}
	return nil
}

// buildNotes summarizes per-dataset provenance for the page header.
func buildNotes(data domain.DashboardData) []string {
	notes := []string{
		datasetNote("temperature", data.Temperature),
		datasetNote("rainfall", data.Rainfall),
	}

	geoNote := fmt.Sprintf("geography: %s", data.Geography.Source)
	if data.Geography.Reason != "" {
		geoNote += " (" + data.Geography.Reason + ")"
	}
	notes = append(notes, geoNote)

	if data.Wind.Empty() {
		notes = append(notes, "wind: not available")
	} else {
		notes = append(notes, fmt.Sprintf("wind: %s", data.Wind.Source))
	}
	return notes
}

func datasetNote(name string, res domain.Resolution) string {
	note := fmt.Sprintf("%s: %s", name, res.Source)
	if res.Reason != "" {
		note += " (" + res.Reason + ")"
	}
	return note
}
