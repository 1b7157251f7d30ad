// Package worker provides background snapshot refresh for AirSense.
package worker

import (
	"time"
)

// Point represents a geographic coordinate.
type Point struct {
	Lat float64
	Lon float64
}

// RefreshConfig holds configuration for the snapshot refresh job.
type RefreshConfig struct {
	// FallbackPoints are refreshed when no saved locations exist yet.
	// Typically the centers of the cities the deployment serves.
	FallbackPoints []Point

	// Concurrency is the number of concurrent refresh operations.
	// Default: 3
	Concurrency int

	// Timeout is the timeout for each refresh operation.
	// Default: 30 seconds
	Timeout time.Duration

	// LocationLimit caps how many saved locations one run refreshes.
	// Default: 100
	LocationLimit int
}

// DefaultRefreshConfig returns the default refresh configuration.
func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		FallbackPoints: DefaultFallbackPoints(),
		Concurrency:    3,
		Timeout:        30 * time.Second,
		LocationLimit:  100,
	}
}

// DefaultFallbackPoints returns the default refresh points used before any
// locations are saved. Major European population centers.
func DefaultFallbackPoints() []Point {
	return []Point{
		{Lat: 52.3676, Lon: 4.9041},  // Amsterdam
		{Lat: 51.5074, Lon: -0.1278}, // London
		{Lat: 48.8566, Lon: 2.3522},  // Paris
		{Lat: 52.5200, Lon: 13.4050}, // Berlin
		{Lat: 40.4168, Lon: -3.7038}, // Madrid
	}
}

func (c RefreshConfig) withDefaults() RefreshConfig {
	if c.Concurrency <= 0 {
		c.Concurrency = 3
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.LocationLimit <= 0 {
		c.LocationLimit = 100
	}
	return c
}
