// Package location provides saved location management.
package location

import (
	"errors"
	"fmt"
	"time"
)

// Repository errors.
var (
	ErrLocationNotFound = errors.New("location not found")
)

// Location is a user-saved place whose air quality the worker keeps warm.
type Location struct {
	ID        string
	Label     string
	Lat       float64
	Lon       float64
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FieldError describes a validation failure on one input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates field errors for an invalid input.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d invalid field(s)", len(e.Errors))
}
