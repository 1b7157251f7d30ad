package models

// Location represents a saved location.
type Location struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Point     Point     `json:"point"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

// Locations wraps a list of saved locations.
type Locations struct {
	Items []Location `json:"items"`
}

// LocationCreateRequest is the request body for creating a saved location.
type LocationCreateRequest struct {
	Label string  `json:"label"`
	Point Point   `json:"point"`
	Notes *string `json:"notes,omitempty"`
}

// LocationUpdateRequest is the request body for updating a saved location.
type LocationUpdateRequest struct {
	Label string  `json:"label"`
	Point Point   `json:"point"`
	Notes *string `json:"notes,omitempty"`
}
