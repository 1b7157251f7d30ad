package location

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL location repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get retrieves a location by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Location, error) {
	query := `
		SELECT id, label, lat, lon, notes, created_at, updated_at
		FROM locations
		WHERE id = $1
	`

	var loc Location
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&loc.ID,
		&loc.Label,
		&loc.Lat,
		&loc.Lon,
		&loc.Notes,
		&loc.CreatedAt,
		&loc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return &loc, nil
}

// List retrieves saved locations, newest first.
func (r *PostgresRepository) List(ctx context.Context, opts ListOptions) ([]*Location, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, label, lat, lon, notes, created_at, updated_at
		FROM locations
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []*Location
	for rows.Next() {
		var loc Location
		if err := rows.Scan(
			&loc.ID,
			&loc.Label,
			&loc.Lat,
			&loc.Lon,
			&loc.Notes,
			&loc.CreatedAt,
			&loc.UpdatedAt,
		); err != nil {
			return nil, err
		}
		locations = append(locations, &loc)
	}
	return locations, rows.Err()
}

// Create stores a new location.
func (r *PostgresRepository) Create(ctx context.Context, loc *Location) error {
	query := `
		INSERT INTO locations (id, label, lat, lon, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		loc.ID, loc.Label, loc.Lat, loc.Lon, loc.Notes, loc.CreatedAt, loc.UpdatedAt)
	return err
}

// Update replaces an existing location.
func (r *PostgresRepository) Update(ctx context.Context, loc *Location) error {
	query := `
		UPDATE locations
		SET label = $2, lat = $3, lon = $4, notes = $5, updated_at = $6
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		loc.ID, loc.Label, loc.Lat, loc.Lon, loc.Notes, loc.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrLocationNotFound
	}
	return nil
}

// Delete removes a location by ID.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrLocationNotFound
	}
	return nil
}
