package worklocation

import "context"

// WorkLocationService defines business logic for work locations: the
// geofence matcher used by the attendance flow plus the admin CRUD.
type WorkLocationService interface {
	// Match finds the first active work location whose geofence contains
	// the coordinate. Accuracy is gated before any distance is computed:
	// a reported accuracy above the configured maximum returns
	// ErrAccuracyTooLow regardless of actual proximity. No match returns
	// ErrOutsideRadius.
	Match(ctx context.Context, latitude, longitude, accuracy float64) (MatchResult, error)

	// CreateWorkLocation creates a work location (admin)
	CreateWorkLocation(ctx context.Context, req CreateWorkLocationRequest) (WorkLocationResponse, error)

	// GetWorkLocation retrieves a single work location by ID
	GetWorkLocation(ctx context.Context, id string) (WorkLocationResponse, error)

	// ListWorkLocations retrieves all work locations (admin)
	ListWorkLocations(ctx context.Context) ([]WorkLocationResponse, error)

	// UpdateWorkLocation updates a work location (admin)
	UpdateWorkLocation(ctx context.Context, req UpdateWorkLocationRequest) (WorkLocationResponse, error)

	// DeleteWorkLocation removes a work location (admin)
	DeleteWorkLocation(ctx context.Context, id string) error
}
