package location

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Validation constants.
const (
	MaxLabelLength = 80
	MaxNotesLength = 500
)

// CreateInput holds the fields for creating a location.
type CreateInput struct {
	Label string
	Lat   float64
	Lon   float64
	Notes *string
}

// UpdateInput holds the fields for updating a location.
type UpdateInput struct {
	Label string
	Lat   float64
	Lon   float64
	Notes *string
}

// Service provides location operations with validation.
type Service struct {
	repo Repository
}

// NewService creates a new location service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List retrieves saved locations.
func (s *Service) List(ctx context.Context, limit int) ([]*Location, error) {
	return s.repo.List(ctx, ListOptions{Limit: limit})
}

// Get retrieves a location by ID.
func (s *Service) Get(ctx context.Context, id string) (*Location, error) {
	return s.repo.Get(ctx, id)
}

// Create validates and stores a new location.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Location, error) {
	if fieldErrors := validate(input.Label, input.Lat, input.Lon, input.Notes); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	now := time.Now()
	loc := &Location{
		ID:        "loc_" + uuid.New().String()[:22],
		Label:     strings.TrimSpace(input.Label),
		Lat:       input.Lat,
		Lon:       input.Lon,
		Notes:     input.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// Update validates and replaces an existing location.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*Location, error) {
	if fieldErrors := validate(input.Label, input.Lat, input.Lon, input.Notes); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	loc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	loc.Label = strings.TrimSpace(input.Label)
	loc.Lat = input.Lat
	loc.Lon = input.Lon
	loc.Notes = input.Notes
	loc.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// Delete removes a location by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func validate(label string, lat, lon float64, notes *string) []FieldError {
	var fieldErrors []FieldError

	label = strings.TrimSpace(label)
	if label == "" {
		fieldErrors = append(fieldErrors, FieldError{Field: "label", Message: "required"})
	} else if len(label) > MaxLabelLength {
		fieldErrors = append(fieldErrors, FieldError{Field: "label", Message: "too long"})
	}

	if lat < -90 || lat > 90 {
		fieldErrors = append(fieldErrors, FieldError{Field: "lat", Message: "must be between -90 and 90"})
	}
	if lon < -180 || lon > 180 {
		fieldErrors = append(fieldErrors, FieldError{Field: "lon", Message: "must be between -180 and 180"})
	}

	if notes != nil && len(*notes) > MaxNotesLength {
		fieldErrors = append(fieldErrors, FieldError{Field: "notes", Message: "too long"})
	}

	return fieldErrors
}
