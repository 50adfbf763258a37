package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for a
// dashboard build.
type Metrics struct {
	BuildRunning  prometheus.Gauge
	BuildDuration prometheus.Histogram

	// Data resolution metrics.
	DatasetsResolved *prometheus.CounterVec   // labels: kind, source={file,live,synthetic,merged,builtin}
	CellsResolved    *prometheus.CounterVec   // labels: kind, origin={loaded,synthetic}
	ResolveDuration  *prometheus.HistogramVec // labels: kind

	// Chart rendering metrics.
	ChartsRendered *prometheus.CounterVec   // labels: chart, outcome={success,fallback,skipped}
	RenderDuration *prometheus.HistogramVec // labels: chart
	AssetBytes     prometheus.Histogram

	// Live weather API metrics.
	LiveRequests    *prometheus.CounterVec // labels: outcome={success,error}
	LiveAPIDuration prometheus.Histogram
	LiveEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all build metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		BuildRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_dashboard",
			Name:      "build_running",
			Help:      "1 while a dashboard build is in progress, 0 when finished.",
		}),
		BuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_dashboard",
			Name:      "build_duration_seconds",
			Help:      "Duration of a complete resolve-render-assemble build.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		DatasetsResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_dashboard",
			Name:      "datasets_resolved_total",
			Help:      "Resolved datasets by kind and source.",
		}, []string{"kind", "source"}),
		CellsResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_dashboard",
			Name:      "cells_resolved_total",
			Help:      "Grid cells by kind and origin (loaded vs synthetic).",
		}, []string{"kind", "origin"}),
		ResolveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_dashboard",
			Name:      "resolve_duration_seconds",
			Help:      "Time to resolve one dataset, including any live fetches.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"kind"}),
		ChartsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_dashboard",
			Name:      "charts_rendered_total",
			Help:      "Chart renders by type and outcome.",
		}, []string{"chart", "outcome"}),
		RenderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_dashboard",
			Name:      "render_duration_seconds",
			Help:      "Time to render one chart to SVG.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"chart"}),
		AssetBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_dashboard",
			Name:      "asset_bytes",
			Help:      "Size of written output assets in bytes.",
			Buckets:   []float64{1 << 10, 10 << 10, 50 << 10, 100 << 10, 500 << 10, 1 << 20, 5 << 20},
		}),
		LiveRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_dashboard",
			Name:      "live_requests_total",
			Help:      "Live weather API requests by outcome.",
		}, []string{"outcome"}),
		LiveAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_dashboard",
			Name:      "live_api_duration_seconds",
			Help:      "Live weather API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		LiveEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_dashboard",
			Name:      "live_enabled",
			Help:      "1 when live weather fetching is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.BuildRunning,
		m.BuildDuration,
		m.DatasetsResolved,
		m.CellsResolved,
		m.ResolveDuration,
		m.ChartsRendered,
		m.RenderDuration,
		m.AssetBytes,
		m.LiveRequests,
		m.LiveAPIDuration,
		m.LiveEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with no registration to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		BuildRunning:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "weather_dashboard", Name: "build_running"}),
		BuildDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "weather_dashboard", Name: "build_duration_seconds"}),
		DatasetsResolved: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_dashboard", Name: "datasets_resolved_total"}, []string{"kind", "source"}),
		CellsResolved:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_dashboard", Name: "cells_resolved_total"}, []string{"kind", "origin"}),
		ResolveDuration:  prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "weather_dashboard", Name: "resolve_duration_seconds"}, []string{"kind"}),
		ChartsRendered:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_dashboard", Name: "charts_rendered_total"}, []string{"chart", "outcome"}),
		RenderDuration:   prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "weather_dashboard", Name: "render_duration_seconds"}, []string{"chart"}),
		AssetBytes:       prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "weather_dashboard", Name: "asset_bytes"}),
		LiveRequests:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_dashboard", Name: "live_requests_total"}, []string{"outcome"}),
		LiveAPIDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "weather_dashboard", Name: "live_api_duration_seconds"}),
		LiveEnabled:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "weather_dashboard", Name: "live_enabled"}),
	}
}
