package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that the user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken indicates that another user already owns this email
	ErrEmailTaken = errors.New("email already taken")

	// ErrSessionNotFound indicates that the session token was not found
	ErrSessionNotFound = errors.New("session not found")

	// ErrTaskNotFound indicates that the task was not found
	ErrTaskNotFound = errors.New("task not found")

	// ErrAvatarNotFound indicates that the user has no stored avatar
	ErrAvatarNotFound = errors.New("avatar not found")
)
