// Package openweathermap implements the geocoding Provider against the
// OpenWeatherMap Geocoding API.
package openweathermap

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/airsense/airsense/internal/geocoding"
	"github.com/airsense/airsense/internal/provider/resilience"
)

const (
	// ProviderName identifies this provider.
	ProviderName = "openweathermap-geo"

	// DefaultBaseURL is the Geocoding API base URL.
	DefaultBaseURL = "https://api.openweathermap.org/geo/1.0"
)

// ClientConfig holds configuration for the Geocoding client.
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

// Client is an OpenWeatherMap Geocoding API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *resilience.Client
	registry   *resilience.Registry
	logger     zerolog.Logger
}

// NewClient creates a new Geocoding client.
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

// Search resolves a free-form place name.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]geocoding.Place, error) {
	endpoint := fmt.Sprintf("%s/direct?q=%s&limit=%d&appid=%s",
		c.baseURL, url.QueryEscape(query), limit, c.apiKey)
	return c.fetch(ctx, endpoint)
}

// Reverse resolves a coordinate to place names.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) ([]geocoding.Place, error) {
	endpoint := fmt.Sprintf("%s/reverse?lat=%.6f&lon=%.6f&limit=1&appid=%s",
		c.baseURL, lat, lon, c.apiKey)
	return c.fetch(ctx, endpoint)
}

func (c *Client) fetch(ctx context.Context, endpoint string) ([]geocoding.Place, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordFailure(err)
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("%w: unexpected status code %d", geocoding.ErrProviderUnavailable, resp.StatusCode)
		c.recordFailure(err)
		return nil, err
	}

	var payload []geoResult
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.recordFailure(err)
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if c.registry != nil {
		c.registry.RecordSuccess(ProviderName)
	}

	places := make([]geocoding.Place, 0, len(payload))
	for _, r := range payload {
		places = append(places, geocoding.Place{
			Name:    r.Name,
			Lat:     r.Lat,
			Lon:     r.Lon,
			Country: r.Country,
			State:   r.State,
		})
	}
	return places, nil
}

func (c *Client) recordFailure(err error) {
	if c.registry != nil {
		c.registry.RecordFailure(ProviderName, err)
	}
}

type geoResult struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state"`
}
