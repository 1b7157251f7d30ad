package geocoding

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ServiceConfig holds configuration for the geocoding service.
type ServiceConfig struct {
	// Provider is the geocoding provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long resolved queries stay cached (default: 24 hours).
	// Place names move a lot less than air quality does.
	CacheTTL time.Duration
}

type cachedResult struct {
	places    []Place
	expiresAt time.Time
}

// Service resolves place names with a query cache in front of the provider.
type Service struct {
	provider Provider
	logger   zerolog.Logger
	cacheTTL time.Duration

	mu    sync.RWMutex
	cache map[string]cachedResult
}

// NewService creates a new geocoding service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
		cacheTTL: cacheTTL,
		cache:    make(map[string]cachedResult),
	}
}

// Search resolves a place name to candidate places.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 || limit > 10 {
		limit = 5
	}

	key := fmt.Sprintf("q:%s:%d", strings.ToLower(query), limit)
	if places, ok := s.lookup(key); ok {
		return places, nil
	}

	places, err := s.provider.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, ErrPlaceNotFound
	}

	s.store(key, places)
	s.logger.Debug().Str("query", query).Int("results", len(places)).Msg("geocoded place name")
	return places, nil
}

// Reverse resolves a coordinate to the nearest known places.
func (s *Service) Reverse(ctx context.Context, lat, lon float64) ([]Place, error) {
	key := fmt.Sprintf("r:%.4f:%.4f", lat, lon)
	if places, ok := s.lookup(key); ok {
		return places, nil
	}

	places, err := s.provider.Reverse(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, ErrPlaceNotFound
	}

	s.store(key, places)
	return places, nil
}

// InvalidateCache drops all cached geocoding results.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]cachedResult)
}

func (s *Service) lookup(key string) ([]Place, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.cache[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.places, true
}

func (s *Service) store(key string, places []Place) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[key] = cachedResult{places: places, expiresAt: time.Now().Add(s.cacheTTL)}
}
