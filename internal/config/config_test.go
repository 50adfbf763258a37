package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/weather-dashboard/internal/domain"
)

const testAPIKey = "wk.test-key"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "assets", cfg.OutDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Zero(t, cfg.SynthSeed)
	assert.Empty(t, cfg.StyleFile)
	assert.False(t, cfg.WeatherAPIEnabled)
	assert.Empty(t, cfg.WeatherAPIKey)
	assert.Equal(t, 5*time.Second, cfg.WeatherAPITimeout)
	assert.Equal(t, 1.0, cfg.WeatherAPIRateLimit)
	assert.Equal(t, 1, cfg.WeatherAPIBurst)
	assert.Empty(t, cfg.MetricsPushURL)
	assert.Equal(t, "weather-dashboard", cfg.MetricsJob)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("DATA_DIR", "/srv/weather/in")
	t.Setenv("OUT_DIR", "/srv/weather/out")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SYNTH_SEED", "42")
	t.Setenv("STYLE_FILE", "style.yaml")
	t.Setenv("WEATHERAPI_KEY", testAPIKey)
	t.Setenv("WEATHERAPI_TIMEOUT", "10s")
	t.Setenv("WEATHERAPI_RATE_LIMIT", "2.5")
	t.Setenv("WEATHERAPI_BURST", "3")
	t.Setenv("METRICS_PUSH_URL", "http://pushgateway:9091")
	t.Setenv("METRICS_JOB", "weather-nightly")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/weather/in", cfg.DataDir)
	assert.Equal(t, "/srv/weather/out", cfg.OutDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, int64(42), cfg.SynthSeed)
	assert.Equal(t, "style.yaml", cfg.StyleFile)
	assert.True(t, cfg.WeatherAPIEnabled)
	assert.Equal(t, testAPIKey, cfg.WeatherAPIKey)
	assert.Equal(t, 10*time.Second, cfg.WeatherAPITimeout)
	assert.Equal(t, 2.5, cfg.WeatherAPIRateLimit)
	assert.Equal(t, 3, cfg.WeatherAPIBurst)
	assert.Equal(t, "http://pushgateway:9091", cfg.MetricsPushURL)
	assert.Equal(t, "weather-nightly", cfg.MetricsJob)
}

func TestLoad_InvalidSeed(t *testing.T) {
	t.Setenv("SYNTH_SEED", "not-a-number")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SYNTH_SEED")
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("WEATHERAPI_TIMEOUT", "bad")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEATHERAPI_TIMEOUT")
}

func TestLoad_NegativeTimeout(t *testing.T) {
	t.Setenv("WEATHERAPI_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEATHERAPI_TIMEOUT")
}

func TestLoad_InvalidRateLimit(t *testing.T) {
	t.Setenv("WEATHERAPI_RATE_LIMIT", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEATHERAPI_RATE_LIMIT")
}

func TestLoad_InvalidBurst(t *testing.T) {
	t.Setenv("WEATHERAPI_BURST", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEATHERAPI_BURST")
}

func TestLoad_APIEnabledWithoutKey(t *testing.T) {
	t.Setenv("WEATHERAPI_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEATHERAPI_KEY")
}

func TestLoad_APIKeyImpliesEnabled(t *testing.T) {
	t.Setenv("WEATHERAPI_KEY", testAPIKey)
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.WeatherAPIEnabled)
}

func TestLoad_APIExplicitlyDisabled(t *testing.T) {
	t.Setenv("WEATHERAPI_KEY", testAPIKey)
	t.Setenv("WEATHERAPI_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.WeatherAPIEnabled)
}

func TestLoadStyle_EmptyPath(t *testing.T) {
	style, err := LoadStyle("")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultStyle(), style)
}

func TestLoadStyle_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.yaml")
	content := "palette: blues\nfigure_size: [10, 6]\ndpi: 96\ntheme: ggplot\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	style, err := LoadStyle(path)
	require.NoError(t, err)

	assert.Equal(t, "blues", style.Palette)
	assert.Equal(t, []float64{10, 6}, style.FigureSize)
	assert.Equal(t, 96, style.DPI)
	assert.Equal(t, "ggplot", style.Theme)
}

func TestLoadStyle_PartialFileGetsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.yaml")
	require.NoError(t, os.WriteFile(path, []byte("palette: blues\n"), 0o600))

	style, err := LoadStyle(path)
	require.NoError(t, err)

	assert.Equal(t, "blues", style.Palette)
	assert.Equal(t, []float64{14, 8}, style.FigureSize)
	assert.Equal(t, 150, style.DPI)
	assert.Equal(t, "seaborn", style.Theme)
}

func TestLoadStyle_MissingFile(t *testing.T) {
	_, err := LoadStyle(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read style file")
}

func TestLoadStyle_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.yaml")
	require.NoError(t, os.WriteFile(path, []byte("palette: [unclosed"), 0o600))

	_, err := LoadStyle(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse style file")
}
