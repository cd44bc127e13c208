// Package validation holds the input rules shared by the server handlers and
// the CLI client.
package validation

import (
	"fmt"
	"net/mail"
	"strings"
)

const (
	// MinPasswordLen is the minimum password length
	MinPasswordLen = 7
	// MaxEmailLen caps stored email addresses
	MaxEmailLen = 254
)

// NormalizeEmail lowercases and trims an email address. Uniqueness checks and
// lookups are case-insensitive, so every address is normalized before it
// touches storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks that the address is well-formed (RFC 5322 address
// without display name).
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	if len(email) > MaxEmailLen {
		return fmt.Errorf("email must not exceed %d characters", MaxEmailLen)
	}

	addr, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("invalid email address")
	}

	// mail.ParseAddress accepts "Name <addr>"; only the bare form is valid here
	if addr.Address != email {
		return fmt.Errorf("invalid email address")
	}

	return nil
}

// ValidatePassword enforces the minimum password policy: at least
// MinPasswordLen characters and not containing the word "password".
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}

	if strings.Contains(strings.ToLower(password), "password") {
		return fmt.Errorf("password must not contain the word \"password\"")
	}

	return nil
}

// ValidateAge rejects negative ages. A nil age is valid (field is optional).
func ValidateAge(age *int) error {
	if age != nil && *age < 0 {
		return fmt.Errorf("age must be a positive number")
	}
	return nil
}
