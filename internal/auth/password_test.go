package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	digest, err := HashPassword("secret1")
	require.NoError(t, err)
	require.NotEmpty(t, digest)

	assert.NotEqual(t, "secret1", digest, "digest must not contain the plaintext")
	assert.True(t, CheckPassword("secret1", digest))
}

func TestHashPassword_FreshSaltPerCall(t *testing.T) {
	first, err := HashPassword("secret1")
	require.NoError(t, err)
	second, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "each hash must use a fresh salt")
	assert.True(t, CheckPassword("secret1", first))
	assert.True(t, CheckPassword("secret1", second))
}

func TestCheckPassword_Mismatch(t *testing.T) {
	digest, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.False(t, CheckPassword("secret2", digest))
	assert.False(t, CheckPassword("", digest))
}

func TestCheckPassword_MalformedDigest(t *testing.T) {
	tests := []struct {
		name   string
		digest string
	}{
		{"empty", ""},
		{"garbage", "not-a-bcrypt-digest"},
		{"truncated", "$2a$10$abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, CheckPassword("secret1", tt.digest))
		})
	}
}
