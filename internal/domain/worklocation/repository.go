package worklocation

import "context"

// WorkLocationRepository defines data access methods for work locations.
type WorkLocationRepository interface {
	// Create creates a new work location
	Create(ctx context.Context, location WorkLocation) (WorkLocation, error)

	// GetByID retrieves a work location by ID
	GetByID(ctx context.Context, id string) (WorkLocation, error)

	// ListActive retrieves active work locations in a stable order,
	// used by geofence matching
	ListActive(ctx context.Context) ([]WorkLocation, error)

	// List retrieves all work locations including inactive ones
	List(ctx context.Context) ([]WorkLocation, error)

	// Update updates an existing work location
	Update(ctx context.Context, location WorkLocation) error

	// Delete removes a work location
	Delete(ctx context.Context, id string) error
}
