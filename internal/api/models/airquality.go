package models

// ComponentReading holds the measured pollutant concentrations in μg/m³.
// Absent pollutants are omitted from the JSON payload entirely.
type ComponentReading struct {
	CO   *float64 `json:"co,omitempty"`
	NO   *float64 `json:"no,omitempty"`
	NO2  *float64 `json:"no2,omitempty"`
	O3   *float64 `json:"o3,omitempty"`
	SO2  *float64 `json:"so2,omitempty"`
	PM25 *float64 `json:"pm2_5,omitempty"`
	PM10 *float64 `json:"pm10,omitempty"`
	NH3  *float64 `json:"nh3,omitempty"`
}

// Observation represents a single air quality reading at a coordinate.
type Observation struct {
	Point      Point            `json:"point"`
	AQI        int              `json:"aqi"`
	AQILabel   string           `json:"aqiLabel"`
	Components ComponentReading `json:"components"`
	ObservedAt Timestamp        `json:"observedAt"`
	FetchedAt  Timestamp        `json:"fetchedAt"`
}

// SignificantPollutant is one pollutant whose concentration reached the
// Moderate band or worse.
type SignificantPollutant struct {
	Key       string  `json:"key"`
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	Band      int     `json:"band"`
	BandLabel string  `json:"bandLabel"`
}

// Analysis represents the derived analysis of an observation.
type Analysis struct {
	Significant        []SignificantPollutant `json:"significant"`
	Sources            []string               `json:"sources"`
	WorstBand          int                    `json:"worstBand"`
	WorstBandLabel     string                 `json:"worstBandLabel"`
	HealthImplications string                 `json:"healthImplications"`
}

// ObservationWithAnalysis pairs an observation with its analysis.
type ObservationWithAnalysis struct {
	Observation Observation `json:"observation"`
	Analysis    Analysis    `json:"analysis"`
}

// Forecast represents a list of forecast observations for a coordinate.
type Forecast struct {
	Point Point                     `json:"point"`
	Items []ObservationWithAnalysis `json:"items"`
}

// History represents a list of historical observations for a coordinate.
type History struct {
	Point Point                     `json:"point"`
	Start Timestamp                 `json:"start"`
	End   Timestamp                 `json:"end"`
	Items []ObservationWithAnalysis `json:"items"`
}
