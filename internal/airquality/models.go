// Package airquality provides air quality readings, threshold classification
// and pollutant analysis.
package airquality

import (
	"errors"
	"fmt"
	"time"
)

// Domain errors.
var (
	ErrInvalidReading      = errors.New("invalid pollutant reading")
	ErrInvalidCoordinates  = errors.New("invalid coordinates")
	ErrInvalidTimeRange    = errors.New("invalid time range")
	ErrNoData              = errors.New("no air quality data available")
	ErrInvalidAPIKey       = errors.New("invalid provider API key")
	ErrProviderUnavailable = errors.New("air quality provider unavailable")
)

// Pollutant identifies a tracked airborne substance.
// Values match the provider's wire keys.
type Pollutant string

const (
	PollutantCO   Pollutant = "co"
	PollutantNO   Pollutant = "no"
	PollutantNO2  Pollutant = "no2"
	PollutantO3   Pollutant = "o3"
	PollutantSO2  Pollutant = "so2"
	PollutantPM25 Pollutant = "pm2_5"
	PollutantPM10 Pollutant = "pm10"
	PollutantNH3  Pollutant = "nh3"
)

// Pollutants lists all tracked pollutants in wire order. This order is also
// the encounter order used by the analyzer.
var Pollutants = []Pollutant{
	PollutantCO,
	PollutantNO,
	PollutantNO2,
	PollutantO3,
	PollutantSO2,
	PollutantPM25,
	PollutantPM10,
	PollutantNH3,
}

// Band is a severity class assigned per pollutant per reading.
type Band int

const (
	BandGood Band = iota + 1
	BandFair
	BandModerate
	BandPoor
	BandVeryPoor
)

// String returns the display label for the band.
func (b Band) String() string {
	switch b {
	case BandGood:
		return "Good"
	case BandFair:
		return "Fair"
	case BandModerate:
		return "Moderate"
	case BandPoor:
		return "Poor"
	case BandVeryPoor:
		return "Very Poor"
	default:
		return "Unknown"
	}
}

// AQI is the provider-supplied overall air quality index (1-5).
type AQI int

// Valid reports whether the index is in the defined 1-5 range.
func (a AQI) Valid() bool {
	return a >= 1 && a <= 5
}

// Band returns the severity band corresponding to the index.
func (a AQI) Band() Band {
	if !a.Valid() {
		return 0
	}
	return Band(a)
}

// Components holds the measured concentration for each pollutant in µg/m³.
// A nil field means the pollutant was absent from the reading. Decoding a
// provider payload into this struct drops any keys it does not declare.
type Components struct {
	CO   *float64 `json:"co,omitempty"`
	NO   *float64 `json:"no,omitempty"`
	NO2  *float64 `json:"no2,omitempty"`
	O3   *float64 `json:"o3,omitempty"`
	SO2  *float64 `json:"so2,omitempty"`
	PM25 *float64 `json:"pm2_5,omitempty"`
	PM10 *float64 `json:"pm10,omitempty"`
	NH3  *float64 `json:"nh3,omitempty"`
}

// Get returns the concentration for a pollutant and whether it was measured.
func (c Components) Get(p Pollutant) (float64, bool) {
	var v *float64
	switch p {
	case PollutantCO:
		v = c.CO
	case PollutantNO:
		v = c.NO
	case PollutantNO2:
		v = c.NO2
	case PollutantO3:
		v = c.O3
	case PollutantSO2:
		v = c.SO2
	case PollutantPM25:
		v = c.PM25
	case PollutantPM10:
		v = c.PM10
	case PollutantNH3:
		v = c.NH3
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// Set stores the concentration for a pollutant. Unknown pollutants are ignored.
func (c *Components) Set(p Pollutant, value float64) {
	v := value
	switch p {
	case PollutantCO:
		c.CO = &v
	case PollutantNO:
		c.NO = &v
	case PollutantNO2:
		c.NO2 = &v
	case PollutantO3:
		c.O3 = &v
	case PollutantSO2:
		c.SO2 = &v
	case PollutantPM25:
		c.PM25 = &v
	case PollutantPM10:
		c.PM10 = &v
	case PollutantNH3:
		c.NH3 = &v
	}
}

// Observation is a single timestamped air quality reading at a coordinate.
type Observation struct {
	Lat        float64
	Lon        float64
	AQI        AQI
	Components Components
	ObservedAt time.Time
	FetchedAt  time.Time
}

// ValidateCoordinates checks that lat/lon are within range.
func ValidateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %.6f out of range", ErrInvalidCoordinates, lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("%w: longitude %.6f out of range", ErrInvalidCoordinates, lon)
	}
	return nil
}
