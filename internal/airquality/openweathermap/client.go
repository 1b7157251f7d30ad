// Package openweathermap implements the air quality Provider against the
// OpenWeatherMap Air Pollution API.
package openweathermap

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/airsense/airsense/internal/airquality"
	"github.com/airsense/airsense/internal/provider/resilience"
)

const (
	// ProviderName identifies this provider.
	ProviderName = "openweathermap"

	// DefaultBaseURL is the Air Pollution API base URL.
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"
)

// ClientConfig holds configuration for the Air Pollution client.
type ClientConfig struct {
	// APIKey is the OpenWeatherMap API key (required).
	APIKey string

	// BaseURL overrides the API base URL (used in tests).
	BaseURL string

	// HTTPClient is the resilient HTTP client to use. If nil, a client with
	// default settings is created.
	HTTPClient *resilience.Client

	// Registry receives success/failure reports for ops status. Optional.
	Registry *resilience.Registry

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an OpenWeatherMap Air Pollution API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *resilience.Client
	registry   *resilience.Registry
	logger     zerolog.Logger
}

// NewClient creates a new Air Pollution client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultConfig(ProviderName))
	}
	if cfg.Registry != nil {
		cfg.Registry.Register(httpClient)
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		registry:   cfg.Registry,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// FetchCurrent fetches the current air pollution observation.
func (c *Client) FetchCurrent(ctx context.Context, lat, lon float64) (*airquality.Observation, error) {
	url := fmt.Sprintf("%s/air_pollution?lat=%.6f&lon=%.6f&appid=%s", c.baseURL, lat, lon, c.apiKey)

	observations, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return &observations[0], nil
}

// FetchForecast fetches the hourly air pollution forecast.
func (c *Client) FetchForecast(ctx context.Context, lat, lon float64) ([]airquality.Observation, error) {
	url := fmt.Sprintf("%s/air_pollution/forecast?lat=%.6f&lon=%.6f&appid=%s", c.baseURL, lat, lon, c.apiKey)
	return c.fetch(ctx, url)
}

// FetchHistory fetches historical air pollution data for a time range.
// The API takes Unix seconds.
func (c *Client) FetchHistory(ctx context.Context, lat, lon float64, from, to time.Time) ([]airquality.Observation, error) {
	url := fmt.Sprintf("%s/air_pollution/history?lat=%.6f&lon=%.6f&start=%d&end=%d&appid=%s",
		c.baseURL, lat, lon, from.Unix(), to.Unix(), c.apiKey)
	return c.fetch(ctx, url)
}

func (c *Client) fetch(ctx context.Context, url string) ([]airquality.Observation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordFailure(err)
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		c.recordFailure(airquality.ErrInvalidAPIKey)
		return nil, airquality.ErrInvalidAPIKey
	case resp.StatusCode == http.StatusNotFound:
		return nil, airquality.ErrNoData
	case resp.StatusCode != http.StatusOK:
		err := fmt.Errorf("%w: unexpected status code %d", airquality.ErrProviderUnavailable, resp.StatusCode)
		c.recordFailure(err)
		return nil, err
	}

	var payload pollutionResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.recordFailure(err)
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(payload.List) == 0 {
		return nil, airquality.ErrNoData
	}

	if c.registry != nil {
		c.registry.RecordSuccess(ProviderName)
	}

	now := time.Now()
	observations := make([]airquality.Observation, 0, len(payload.List))
	for _, entry := range payload.List {
		observations = append(observations, airquality.Observation{
			Lat:        payload.Coord.Lat,
			Lon:        payload.Coord.Lon,
			AQI:        airquality.AQI(entry.Main.AQI),
			Components: entry.Components,
			ObservedAt: time.Unix(entry.Dt, 0),
			FetchedAt:  now,
		})
	}
	return observations, nil
}

func (c *Client) recordFailure(err error) {
	if c.registry != nil {
		c.registry.RecordFailure(ProviderName, err)
	}
}

// Air Pollution API response structures. Components decodes directly into the
// domain record; unrecognized keys in the payload are dropped by the decoder.

type pollutionResponse struct {
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			AQI int `json:"aqi"`
		} `json:"main"`
		Components airquality.Components `json:"components"`
	} `json:"list"`
}
