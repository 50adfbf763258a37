package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/weather-dashboard/internal/domain"
)

// Config holds all build settings, populated from environment variables.
// Command-line flags may override individual fields after Load.
type Config struct {
	DataDir   string
	OutDir    string
	LogLevel  string
	LogFormat string

	// SynthSeed pins the synthetic data seed. Zero means derive the seed
	// from the current calendar date.
	SynthSeed int64

	// StyleFile points at an optional YAML chart style file.
	StyleFile string

	// Live weather fetching, feature-flagged via WEATHERAPI_ENABLED /
	// WEATHERAPI_KEY.
	WeatherAPIKey       string
	WeatherAPIEnabled   bool
	WeatherAPITimeout   time.Duration
	WeatherAPIRateLimit float64 // requests per second
	WeatherAPIBurst     int

	// Metrics are pushed to a Pushgateway when a URL is set; a one-shot
	// build has no scrape surface to expose.
	MetricsPushURL string
	MetricsJob     string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	seed, err := parseSeed()
	if err != nil {
		return nil, err
	}

	timeout, err := parsePositiveDuration("WEATHERAPI_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	rateLimit, err := parseRateLimit()
	if err != nil {
		return nil, err
	}

	burst, err := parseBurst()
	if err != nil {
		return nil, err
	}

	apiKey := os.Getenv("WEATHERAPI_KEY")
	apiEnabled := apiKey != ""
	if v := os.Getenv("WEATHERAPI_ENABLED"); v != "" {
		apiEnabled = v == "true"
	}

	cfg := &Config{
		DataDir:   envOrDefault("DATA_DIR", "data"),
		OutDir:    envOrDefault("OUT_DIR", "assets"),
		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "json"),

		SynthSeed: seed,
		StyleFile: os.Getenv("STYLE_FILE"),

		WeatherAPIKey:       apiKey,
		WeatherAPIEnabled:   apiEnabled,
		WeatherAPITimeout:   timeout,
		WeatherAPIRateLimit: rateLimit,
		WeatherAPIBurst:     burst,

		MetricsPushURL: os.Getenv("METRICS_PUSH_URL"),
		MetricsJob:     envOrDefault("METRICS_JOB", "weather-dashboard"),
	}

	if cfg.DataDir == "" {
		return nil, errors.New("DATA_DIR is required")
	}
	if cfg.OutDir == "" {
		return nil, errors.New("OUT_DIR is required")
	}
	if cfg.WeatherAPIEnabled && cfg.WeatherAPIKey == "" {
		return nil, errors.New("WEATHERAPI_ENABLED is true but WEATHERAPI_KEY is not set")
	}

	return cfg, nil
}

// LoadStyle reads a YAML chart style file and fills unset fields with
// defaults. An empty path returns the default style.
func LoadStyle(path string) (domain.StyleConfig, error) {
	if path == "" {
		return domain.DefaultStyle(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.StyleConfig{}, fmt.Errorf("read style file: %w", err)
	}

	var style domain.StyleConfig
	if err := yaml.Unmarshal(data, &style); err != nil {
		return domain.StyleConfig{}, fmt.Errorf("parse style file %s: %w", path, err)
	}

	return style.Normalized(), nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseSeed() (int64, error) {
	s := os.Getenv("SYNTH_SEED")
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.New("invalid SYNTH_SEED")
	}
	return n, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func parseRateLimit() (float64, error) {
	s := envOrDefault("WEATHERAPI_RATE_LIMIT", "1")
	r, err := strconv.ParseFloat(s, 64)
	if err != nil || r <= 0 {
		return 0, errors.New("invalid WEATHERAPI_RATE_LIMIT")
	}
	return r, nil
}

func parseBurst() (int, error) {
	s := envOrDefault("WEATHERAPI_BURST", "1")
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, errors.New("invalid WEATHERAPI_BURST")
	}
	return n, nil
}
