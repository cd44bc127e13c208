// Package auth provides the password hashing primitives used by the user
// handlers. Hashing is bcrypt: the per-call random salt is embedded in the
// digest, and verification is constant-time.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when the config does not
// override it.
const DefaultCost = bcrypt.DefaultCost

// HashPassword derives a salted bcrypt digest from the plaintext password.
// Two calls with the same plaintext produce different digests.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = DefaultCost
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(digest), nil
}

// VerifyPassword reports whether the plaintext password matches the digest.
// A malformed digest is a mismatch, never a success.
func VerifyPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
