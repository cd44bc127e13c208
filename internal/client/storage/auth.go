// Package storage defines the client-side persistence interfaces.
package storage

import (
	"context"
)

// AuthStorage stores the current session between CLI invocations.
type AuthStorage interface {
	// SaveAuth replaces the cached session
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves the cached session.
	// Returns ErrAuthNotFound if nothing is cached.
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth removes the cached session (logout)
	DeleteAuth(ctx context.Context) error

	// IsAuthenticated reports whether a cached session exists
	IsAuthenticated(ctx context.Context) (bool, error)
}

// AuthData is the cached session written after register/login. The token is
// only as valid as the server says: a revoked session still present here
// simply fails the next request.
type AuthData struct {
	Email   string `json:"email"`
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
	Token   string `json:"token"`
	SavedAt int64  `json:"saved_at"`
}
