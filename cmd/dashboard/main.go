// Command dashboard builds the static India weather dashboard. It resolves
// the temperature, rainfall, geography, and wind datasets from the data
// directory (or the live weather API when enabled), synthesizes whatever is
// missing, renders each chart as a standalone SVG, and writes the assembled
// HTML page to the output directory.
//
// Usage:
//
//	go run ./cmd/dashboard -data-dir data -out-dir assets
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/weather-dashboard/internal/adapter/datafile"
	"github.com/couchcryptid/weather-dashboard/internal/adapter/weatherapi"
	"github.com/couchcryptid/weather-dashboard/internal/chart"
	"github.com/couchcryptid/weather-dashboard/internal/config"
	"github.com/couchcryptid/weather-dashboard/internal/dashboard"
	"github.com/couchcryptid/weather-dashboard/internal/domain"
	"github.com/couchcryptid/weather-dashboard/internal/observability"
	"github.com/couchcryptid/weather-dashboard/internal/pipeline"
	"github.com/google/uuid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dataDir := flag.String("data-dir", cfg.DataDir, "directory holding the input data files")
	outDir := flag.String("out-dir", cfg.OutDir, "directory the dashboard is written to")
	styleFile := flag.String("style", cfg.StyleFile, "YAML chart style file")
	seed := flag.Int64("seed", cfg.SynthSeed, "synthetic data seed, 0 derives it from today's date")
	liveFlag := flag.Bool("live", cfg.WeatherAPIEnabled, "fetch current conditions from the live weather API")
	flag.Parse()

	cfg.DataDir = *dataDir
	cfg.OutDir = *outDir
	cfg.StyleFile = *styleFile
	cfg.SynthSeed = *seed
	cfg.WeatherAPIEnabled = *liveFlag

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	style, err := config.LoadStyle(cfg.StyleFile)
	if err != nil {
		logger.Error("failed to load chart style", "error", err)
		os.Exit(1)
	}

	// Initialize the live source (feature-flagged via WEATHERAPI_ENABLED / WEATHERAPI_KEY).
	var liveSource pipeline.LiveSource
	if cfg.WeatherAPIEnabled {
		if cfg.WeatherAPIKey == "" {
			logger.Error("live fetching enabled but WEATHERAPI_KEY is not set")
			os.Exit(1)
		}
		liveSource = weatherapi.NewClient(cfg, logger, metrics)
		metrics.LiveEnabled.Set(1)
		logger.Info("live weather fetching enabled", "timeout", cfg.WeatherAPITimeout, "rate_limit", cfg.WeatherAPIRateLimit)
	} else {
		logger.Info("live weather fetching disabled")
	}

	synthSeed := cfg.SynthSeed
	if synthSeed == 0 {
		synthSeed = domain.DateSeed()
	}

	runID := uuid.NewString()
	store := datafile.NewStore(cfg.DataDir)
	resolver := pipeline.NewResolver(store, liveSource, domain.NewSynthesizer(synthSeed), logger)
	renderer := chart.NewRenderer()
	writer := dashboard.NewWriter(cfg.OutDir, logger)

	p := pipeline.New(resolver, renderer, writer, logger, metrics, style, runID)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("dashboard build starting",
		"run_id", runID,
		"data_dir", cfg.DataDir,
		"out_dir", cfg.OutDir,
		"seed", synthSeed,
	)

	if err := p.Run(ctx); err != nil {
		logger.Error("build failed", "error", err)
		os.Exit(1)
	}

	if cfg.MetricsPushURL != "" {
		if err := observability.PushMetrics(cfg.MetricsPushURL, cfg.MetricsJob, runID); err != nil {
			logger.Warn("metrics push failed", "error", err)
		}
	}
}
