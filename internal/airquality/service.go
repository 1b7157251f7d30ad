package airquality

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Provider defines the interface for air quality data providers.
type Provider interface {
	// FetchCurrent fetches the current observation for a coordinate.
	FetchCurrent(ctx context.Context, lat, lon float64) (*Observation, error)

	// FetchForecast fetches the hourly forecast for a coordinate.
	FetchForecast(ctx context.Context, lat, lon float64) ([]Observation, error)

	// FetchHistory fetches historical observations for a coordinate.
	FetchHistory(ctx context.Context, lat, lon float64, from, to time.Time) ([]Observation, error)
}

// ServiceConfig holds configuration for the air quality service.
type ServiceConfig struct {
	// Provider is the air quality data provider.
	Provider Provider

	// Analyzer classifies readings. Required.
	Analyzer *Analyzer

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long to cache current observations (default: 10 minutes).
	CacheTTL time.Duration

	// ForecastCacheTTL is how long to cache forecasts (default: 1 hour).
	ForecastCacheTTL time.Duration

	// StaleIfErrorTTL allows serving stale data on provider errors (default: 1 hour).
	StaleIfErrorTTL time.Duration
}

type cacheEntry struct {
	observation *Observation
	forecast    []Observation
	expiresAt   time.Time
}

// Service provides air quality data with per-coordinate caching.
type Service struct {
	provider        Provider
	analyzer        *Analyzer
	logger          zerolog.Logger
	cacheTTL        time.Duration
	forecastTTL     time.Duration
	staleIfErrorTTL time.Duration

	mu       sync.RWMutex
	current  map[string]cacheEntry
	forecast map[string]cacheEntry
}

// NewService creates a new air quality service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}

	forecastTTL := cfg.ForecastCacheTTL
	if forecastTTL == 0 {
		forecastTTL = time.Hour
	}

	staleIfErrorTTL := cfg.StaleIfErrorTTL
	if staleIfErrorTTL == 0 {
		staleIfErrorTTL = time.Hour
	}

	return &Service{
		provider:        cfg.Provider,
		analyzer:        cfg.Analyzer,
		logger:          cfg.Logger,
		cacheTTL:        cacheTTL,
		forecastTTL:     forecastTTL,
		staleIfErrorTTL: staleIfErrorTTL,
		current:         make(map[string]cacheEntry),
		forecast:        make(map[string]cacheEntry),
	}
}

// Analyzer returns the analyzer used by the service.
func (s *Service) Analyzer() *Analyzer {
	return s.analyzer
}

// cacheKey rounds coordinates to ~110m so nearby map positions share a reading.
func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("%.3f:%.3f", lat, lon)
}

// GetCurrent returns the current observation for a coordinate, using the
// cache when fresh and falling back to stale data on provider errors.
func (s *Service) GetCurrent(ctx context.Context, lat, lon float64) (*Observation, error) {
	if err := ValidateCoordinates(lat, lon); err != nil {
		return nil, err
	}

	key := cacheKey(lat, lon)

	s.mu.RLock()
	entry, ok := s.current[key]
	s.mu.RUnlock()
	if ok && time.Now().Before(entry.expiresAt) {
		return entry.observation, nil
	}

	obs, err := s.provider.FetchCurrent(ctx, lat, lon)
	if err != nil {
		// Serve stale data if it is not too old.
		if ok && time.Now().Before(entry.observation.FetchedAt.Add(s.staleIfErrorTTL)) {
			s.logger.Warn().
				Err(err).
				Str("key", key).
				Time("fetched_at", entry.observation.FetchedAt).
				Msg("serving stale air quality data due to provider error")
			return entry.observation, nil
		}
		return nil, err
	}

	s.mu.Lock()
	s.current[key] = cacheEntry{observation: obs, expiresAt: time.Now().Add(s.cacheTTL)}
	s.mu.Unlock()

	s.logger.Debug().
		Str("key", key).
		Int("aqi", int(obs.AQI)).
		Msg("air quality observation refreshed")

	return obs, nil
}

// GetCurrentAnalysis returns the current observation together with its
// pollutant analysis.
func (s *Service) GetCurrentAnalysis(ctx context.Context, lat, lon float64) (*Observation, *Analysis, error) {
	obs, err := s.GetCurrent(ctx, lat, lon)
	if err != nil {
		return nil, nil, err
	}

	analysis, err := s.analyzer.Analyze(obs.Components)
	if err != nil {
		return nil, nil, err
	}
	return obs, analysis, nil
}

// GetForecast returns the hourly forecast for a coordinate.
func (s *Service) GetForecast(ctx context.Context, lat, lon float64) ([]Observation, error) {
	if err := ValidateCoordinates(lat, lon); err != nil {
		return nil, err
	}

	key := cacheKey(lat, lon)

	s.mu.RLock()
	entry, ok := s.forecast[key]
	s.mu.RUnlock()
	if ok && time.Now().Before(entry.expiresAt) {
		return entry.forecast, nil
	}

	forecast, err := s.provider.FetchForecast(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.forecast[key] = cacheEntry{forecast: forecast, expiresAt: time.Now().Add(s.forecastTTL)}
	s.mu.Unlock()

	return forecast, nil
}

// GetHistory returns historical observations for a coordinate and time range.
// History is not cached: each query is range-specific.
func (s *Service) GetHistory(ctx context.Context, lat, lon float64, from, to time.Time) ([]Observation, error) {
	if err := ValidateCoordinates(lat, lon); err != nil {
		return nil, err
	}
	if !to.After(from) {
		return nil, fmt.Errorf("%w: end must be after start", ErrInvalidTimeRange)
	}

	return s.provider.FetchHistory(ctx, lat, lon, from, to)
}

// Refresh forces a cache refresh for a coordinate. Used by the background
// worker to keep saved locations warm.
func (s *Service) Refresh(ctx context.Context, lat, lon float64) error {
	if err := ValidateCoordinates(lat, lon); err != nil {
		return err
	}

	obs, err := s.provider.FetchCurrent(ctx, lat, lon)
	if err != nil {
		return err
	}

	key := cacheKey(lat, lon)
	s.mu.Lock()
	s.current[key] = cacheEntry{observation: obs, expiresAt: time.Now().Add(s.cacheTTL)}
	s.mu.Unlock()
	return nil
}

// InvalidateCache clears all cached observations and forecasts.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = make(map[string]cacheEntry)
	s.forecast = make(map[string]cacheEntry)
}

// CacheStatus describes the current cache state for ops reporting.
type CacheStatus struct {
	CurrentEntries  int
	ForecastEntries int
}

// CacheStatus returns information about the current cache state.
func (s *Service) CacheStatus() CacheStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CacheStatus{
		CurrentEntries:  len(s.current),
		ForecastEntries: len(s.forecast),
	}
}
