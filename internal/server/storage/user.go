// Package storage defines the persistence interfaces for users, sessions and
// tasks. Implementations live in the sqlite subpackage.
package storage

import (
	"context"

	"github.com/iudanet/taskkeeper/internal/models"
)

// UserStorage defines the interface for user persistence. Emails are stored
// normalized (lowercase); callers normalize before lookups so uniqueness is
// case-insensitive.
type UserStorage interface {
	// CreateUser creates a new user
	// Returns ErrEmailTaken if the email is already registered
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by normalized email
	// Returns ErrUserNotFound if the user doesn't exist
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID
	// Returns ErrUserNotFound if the user doesn't exist
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// UpdateUser persists changed profile fields (email, name, age,
	// password hash). Returns ErrUserNotFound if the user doesn't exist,
	// ErrEmailTaken if the new email collides with another user
	UpdateUser(ctx context.Context, user *models.User) error

	// DeleteUser deletes a user by ID. Sessions and tasks of the user are
	// removed with it, so every outstanding token stops resolving.
	// Returns ErrUserNotFound if the user doesn't exist
	DeleteUser(ctx context.Context, userID string) error

	// UpdateAvatar stores the avatar blob for a user (nil clears it)
	// Returns ErrUserNotFound if the user doesn't exist
	UpdateAvatar(ctx context.Context, userID string, avatar []byte) error

	// GetAvatar retrieves the avatar blob for a user
	// Returns ErrAvatarNotFound if the user has none, ErrUserNotFound if
	// the user doesn't exist
	GetAvatar(ctx context.Context, userID string) ([]byte, error)
}
