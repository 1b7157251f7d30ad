package models

// PollutantThresholds holds the band boundaries for one pollutant in μg/m³.
// Values at or below a boundary classify into that boundary's band.
type PollutantThresholds struct {
	Good     float64 `json:"good"`
	Fair     float64 `json:"fair"`
	Moderate float64 `json:"moderate"`
	Poor     float64 `json:"poor"`
}

// PollutantInfo describes one pollutant tracked by the service.
type PollutantInfo struct {
	Key           string              `json:"key"`
	Name          string              `json:"name"`
	FullName      string              `json:"fullName"`
	Unit          string              `json:"unit"`
	Description   string              `json:"description,omitempty"`
	Sources       []string            `json:"sources"`
	HealthEffects string              `json:"healthEffects,omitempty"`
	Thresholds    PollutantThresholds `json:"thresholds"`
}

// PollutantCatalog wraps the full pollutant catalog plus the per-band
// health implication messages.
type PollutantCatalog struct {
	Pollutants     []PollutantInfo `json:"pollutants"`
	BandLabels     map[int]string  `json:"bandLabels"`
	HealthMessages map[int]string  `json:"healthMessages"`
}
