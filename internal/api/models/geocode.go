package models

// Place represents a resolved geographic place.
type Place struct {
	Name    string `json:"name"`
	Point   Point  `json:"point"`
	Country string `json:"country,omitempty"`
	State   string `json:"state,omitempty"`
}

// Places wraps a list of geocoding results.
type Places struct {
	Items []Place `json:"items"`
}
