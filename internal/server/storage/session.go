package storage

import (
	"context"
	"time"

	"github.com/iudanet/taskkeeper/internal/models"
)

// SessionStorage defines the interface for the per-user session registry. A
// signed token is only trusted while its row exists here; deleting the row is
// instant revocation regardless of the token's cryptographic validity.
type SessionStorage interface {
	// SaveSession records a newly issued token for a user
	SaveSession(ctx context.Context, session *models.Session) error

	// HasSession reports whether this exact token is currently registered
	// for this user
	HasSession(ctx context.Context, userID, token string) (bool, error)

	// DeleteSession revokes a single token
	// Returns ErrSessionNotFound if the token is not registered
	DeleteSession(ctx context.Context, token string) error

	// DeleteUserSessions revokes every token of a user ("log out
	// everywhere"). Returns the number of revoked sessions
	DeleteUserSessions(ctx context.Context, userID string) (int, error)

	// GetUserSessions retrieves a user's sessions in issuance order
	GetUserSessions(ctx context.Context, userID string) ([]*models.Session, error)

	// DeleteExpiredSessions removes sessions issued before the cutoff.
	// Returns the number of removed sessions
	DeleteExpiredSessions(ctx context.Context, cutoff time.Time) (int, error)
}
