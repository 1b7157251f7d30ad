package location

import "context"

// ListOptions contains options for listing locations.
type ListOptions struct {
	Limit int
}

// Repository defines the interface for location persistence.
type Repository interface {
	// Get retrieves a location by ID. Returns ErrLocationNotFound if absent.
	Get(ctx context.Context, id string) (*Location, error)

	// List retrieves saved locations, newest first.
	List(ctx context.Context, opts ListOptions) ([]*Location, error)

	// Create stores a new location.
	Create(ctx context.Context, loc *Location) error

	// Update replaces an existing location.
	Update(ctx context.Context, loc *Location) error

	// Delete removes a location by ID.
	Delete(ctx context.Context, id string) error
}
