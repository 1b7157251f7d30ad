// Package geocoding provides place name to coordinate resolution.
package geocoding

import (
	"context"
	"errors"
)

// Geocoding errors.
var (
	ErrPlaceNotFound       = errors.New("place not found")
	ErrEmptyQuery          = errors.New("empty geocoding query")
	ErrProviderUnavailable = errors.New("geocoding provider unavailable")
)

// Place is a resolved geographic place.
type Place struct {
	Name    string
	Lat     float64
	Lon     float64
	Country string
	State   string
}

// Provider defines the interface for geocoding providers.
type Provider interface {
	// Search resolves a free-form place name to candidate places.
	Search(ctx context.Context, query string, limit int) ([]Place, error)

	// Reverse resolves a coordinate to the nearest known places.
	Reverse(ctx context.Context, lat, lon float64) ([]Place, error)
}
