package location

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository, intended
// for tests and local development without PostgreSQL.
type InMemoryRepository struct {
	mu        sync.RWMutex
	locations map[string]*Location
}

// NewInMemoryRepository creates a new in-memory location repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{locations: make(map[string]*Location)}
}

// Get retrieves a location by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	loc, ok := r.locations[id]
	if !ok {
		return nil, ErrLocationNotFound
	}
	cpy := *loc
	return &cpy, nil
}

// List retrieves saved locations, newest first.
func (r *InMemoryRepository) List(_ context.Context, opts ListOptions) ([]*Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	locations := make([]*Location, 0, len(r.locations))
	for _, loc := range r.locations {
		cpy := *loc
		locations = append(locations, &cpy)
	}

	sort.Slice(locations, func(i, j int) bool {
		return locations[i].CreatedAt.After(locations[j].CreatedAt)
	})

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	if len(locations) > limit {
		locations = locations[:limit]
	}
	return locations, nil
}

// Create stores a new location.
func (r *InMemoryRepository) Create(_ context.Context, loc *Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *loc
	r.locations[loc.ID] = &cpy
	return nil
}

// Update replaces an existing location.
func (r *InMemoryRepository) Update(_ context.Context, loc *Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.locations[loc.ID]; !ok {
		return ErrLocationNotFound
	}
	cpy := *loc
	r.locations[loc.ID] = &cpy
	return nil
}

// Delete removes a location by ID.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.locations[id]; !ok {
		return ErrLocationNotFound
	}
	delete(r.locations, id)
	return nil
}
