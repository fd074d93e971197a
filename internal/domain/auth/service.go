package auth

import "context"

// AuthService defines authentication operations. Identity is the only thing
// the attendance flow consumes from here; session mechanics stay in this
// package.
type AuthService interface {
	// Login verifies credentials and issues an access/refresh token pair
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// Refresh exchanges a valid refresh token for a new access token
	Refresh(ctx context.Context, refreshToken string) (LoginResponse, error)
}
