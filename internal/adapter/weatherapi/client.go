package weatherapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/couchcryptid/weather-dashboard/internal/config"
	"github.com/couchcryptid/weather-dashboard/internal/domain"
	"github.com/couchcryptid/weather-dashboard/internal/observability"
)

// stateCities maps each reference state to the city queried for it. One
// request per city per run, in this order.
var stateCities = []struct {
	City  string
	State string
}{
	{"Mumbai", "Maharashtra"},
	{"Delhi", "Delhi"},
	{"Bangalore", "Karnataka"},
	{"Chennai", "Tamil Nadu"},
	{"Jaipur", "Rajasthan"},
	{"Lucknow", "Uttar Pradesh"},
	{"Kolkata", "West Bengal"},
}

// Client fetches current conditions from the WeatherAPI.com API.
// It implements pipeline.LiveSource.
type Client struct {
	key        string
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a live weather client for the configured API key.
func NewClient(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		key: cfg.WeatherAPIKey,
		httpClient: &http.Client{
			Timeout: cfg.WeatherAPITimeout,
		},
		baseURL: "https://api.weatherapi.com/v1/current.json",
		limiter: rate.NewLimiter(rate.Limit(cfg.WeatherAPIRateLimit), cfg.WeatherAPIBurst),
		logger:  logger,
		metrics: metrics,
	}
}

// FetchCurrent samples current conditions for every reference state. A
// failed city drops that state's reading with a warning rather than
// failing the sweep; the returned slice may be empty. The error is
// non-nil only when the context is done.
func (c *Client) FetchCurrent(ctx context.Context) ([]domain.LiveReading, error) {
	readings := make([]domain.LiveReading, 0, len(stateCities))
	for _, sc := range stateCities {
		reading, err := c.fetchCity(ctx, sc.City, sc.State)
		if err != nil {
			if ctx.Err() != nil {
				return readings, fmt.Errorf("live fetch interrupted: %w", ctx.Err())
			}
			c.metrics.LiveRequests.WithLabelValues("error").Inc()
			c.logger.Warn("live weather fetch failed",
				"city", sc.City,
				"state", sc.State,
				"error", err)
			continue
		}
		c.metrics.LiveRequests.WithLabelValues("success").Inc()
		readings = append(readings, reading)
	}
	return readings, nil
}

func (c *Client) fetchCity(ctx context.Context, city, state string) (domain.LiveReading, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.LiveReading{}, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{
		"key": {c.key},
		"q":   {city},
		"aqi": {"no"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.LiveReading{}, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.LiveAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return domain.LiveReading{}, fmt.Errorf("current conditions request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.LiveReading{}, fmt.Errorf("weatherapi error: status %d: %s", resp.StatusCode, body)
	}

	var apiResp response
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return domain.LiveReading{}, fmt.Errorf("decode response: %w", err)
	}

	// wind_degree is the compass bearing the wind blows from; charts want
	// the eastward/northward components of the flow itself.
	rad := apiResp.Current.WindDegree * math.Pi / 180
	return domain.LiveReading{
		State:    state,
		Month:    domain.CurrentMonth(),
		Geo:      domain.Geo{Lat: apiResp.Location.Lat, Lon: apiResp.Location.Lon},
		TempC:    apiResp.Current.TempC,
		PrecipMm: apiResp.Current.PrecipMm,
		WindU:    -apiResp.Current.WindKph * math.Sin(rad),
		WindV:    -apiResp.Current.WindKph * math.Cos(rad),
	}, nil
}

// WeatherAPI.com response types.

type response struct {
	Location location `json:"location"`
	Current  current  `json:"current"`
}

type location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type current struct {
	TempC      float64 `json:"temp_c"`
	PrecipMm   float64 `json:"precip_mm"`
	WindKph    float64 `json:"wind_kph"`
	WindDegree float64 `json:"wind_degree"`
}
