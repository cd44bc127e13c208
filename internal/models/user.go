package models

import "time"

// User represents a registered account. PasswordHash and Avatar never leave
// the server; API responses are built from pkg/api.User instead.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Age          *int      `json:"age,omitempty"`
	PasswordHash string    `json:"-"`
	Avatar       []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Session represents one issued bearer token for a user. The token string is
// a signed JWT; the row is what makes it revocable independently of the
// signature staying valid.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
