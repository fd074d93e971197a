package user

import "context"

// UserRepository defines data access methods for users.
type UserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (User, error)

	// GetByEmail retrieves a user by email, used by login
	GetByEmail(ctx context.Context, email string) (User, error)

	// ListActiveIDsByRole returns the IDs of active users holding a role,
	// used by bulk scheduling
	ListActiveIDsByRole(ctx context.Context, role Role) ([]string, error)
}
