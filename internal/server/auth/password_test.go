package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	digest, err := HashPassword("Secr3t!", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEmpty(t, digest)

	assert.NotContains(t, digest, "Secr3t!")
	assert.True(t, VerifyPassword("Secr3t!", digest))
	assert.False(t, VerifyPassword("wrong-password", digest))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	first, err := HashPassword("Secr3t!", bcrypt.MinCost)
	require.NoError(t, err)

	second, err := HashPassword("Secr3t!", bcrypt.MinCost)
	require.NoError(t, err)

	// Random embedded salt: same plaintext, different digests
	assert.NotEqual(t, first, second)
	assert.True(t, VerifyPassword("Secr3t!", first))
	assert.True(t, VerifyPassword("Secr3t!", second))
}

func TestHashPassword_DefaultCost(t *testing.T) {
	digest, err := HashPassword("Secr3t!", 0)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, cost)
}

func TestVerifyPassword_MalformedDigest(t *testing.T) {
	tests := []struct {
		name   string
		digest string
	}{
		{name: "empty digest", digest: ""},
		{name: "not a bcrypt digest", digest: "plaintext"},
		{name: "truncated digest", digest: "$2a$10$abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, VerifyPassword("Secr3t!", tt.digest))
		})
	}
}
