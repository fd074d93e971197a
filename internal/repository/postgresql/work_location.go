package postgresql

import (
	"context"
	"fmt"

	"github.com/dokterku/klinik-backend-go/internal/domain/worklocation"
	"github.com/dokterku/klinik-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workLocationRepository struct {
	db *database.DB
}

// Create implements worklocation.WorkLocationRepository.
func (w *workLocationRepository) Create(ctx context.Context, location worklocation.WorkLocation) (worklocation.WorkLocation, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		INSERT INTO work_locations (name, type, latitude, longitude, radius_meters, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		location.Name,
		location.Type,
		location.Latitude,
		location.Longitude,
		location.RadiusMeters,
		location.IsActive,
	).Scan(&location.ID, &location.CreatedAt, &location.UpdatedAt)
	if err != nil {
		return worklocation.WorkLocation{}, fmt.Errorf("failed to create work location: %w", err)
	}

	return location, nil
}

// GetByID implements worklocation.WorkLocationRepository.
func (w *workLocationRepository) GetByID(ctx context.Context, id string) (worklocation.WorkLocation, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		SELECT id, name, type, latitude, longitude, radius_meters, is_active, created_at, updated_at
		FROM work_locations
		WHERE id = $1
	`

	var location worklocation.WorkLocation
	err := q.QueryRow(ctx, query, id).Scan(
		&location.ID, &location.Name, &location.Type,
		&location.Latitude, &location.Longitude, &location.RadiusMeters,
		&location.IsActive, &location.CreatedAt, &location.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return worklocation.WorkLocation{}, worklocation.ErrWorkLocationNotFound
		}
		return worklocation.WorkLocation{}, fmt.Errorf("failed to get work location: %w", err)
	}

	return location, nil
}

// ListActive implements worklocation.WorkLocationRepository.
func (w *workLocationRepository) ListActive(ctx context.Context) ([]worklocation.WorkLocation, error) {
	return w.list(ctx, true)
}

// List implements worklocation.WorkLocationRepository.
func (w *workLocationRepository) List(ctx context.Context) ([]worklocation.WorkLocation, error) {
	return w.list(ctx, false)
}

func (w *workLocationRepository) list(ctx context.Context, activeOnly bool) ([]worklocation.WorkLocation, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		SELECT id, name, type, latitude, longitude, radius_meters, is_active, created_at, updated_at
		FROM work_locations
	`
	if activeOnly {
		query += " WHERE is_active = TRUE"
	}
	// Stable order so geofence matching is deterministic.
	query += " ORDER BY created_at ASC"

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query work locations: %w", err)
	}
	defer rows.Close()

	var locations []worklocation.WorkLocation
	for rows.Next() {
		var location worklocation.WorkLocation
		err := rows.Scan(
			&location.ID, &location.Name, &location.Type,
			&location.Latitude, &location.Longitude, &location.RadiusMeters,
			&location.IsActive, &location.CreatedAt, &location.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work location: %w", err)
		}
		locations = append(locations, location)
	}

	return locations, nil
}

// Update implements worklocation.WorkLocationRepository.
func (w *workLocationRepository) Update(ctx context.Context, location worklocation.WorkLocation) error {
	q := GetQuerier(ctx, w.db)

	query := `
		UPDATE work_locations
		SET name = $1,
			type = $2,
			latitude = $3,
			longitude = $4,
			radius_meters = $5,
			is_active = $6,
			updated_at = NOW()
		WHERE id = $7
	`

	tag, err := q.Exec(ctx, query,
		location.Name,
		location.Type,
		location.Latitude,
		location.Longitude,
		location.RadiusMeters,
		location.IsActive,
		location.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update work location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return worklocation.ErrWorkLocationNotFound
	}

	return nil
}

// Delete implements worklocation.WorkLocationRepository.
func (w *workLocationRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, w.db)

	tag, err := q.Exec(ctx, "DELETE FROM work_locations WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete work location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return worklocation.ErrWorkLocationNotFound
	}

	return nil
}

func NewWorkLocationRepository(db *database.DB) worklocation.WorkLocationRepository {
	return &workLocationRepository{db: db}
}
