package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/EasyPost_Go/internal/domain"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.NoError(t, CheckPassword(hash, "correct horse battery staple"))
}

func TestCheckPassword_Mismatch(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	err = CheckPassword(hash, "wrong password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestCheckPassword_NotAHash(t *testing.T) {
	err := CheckPassword("plaintext-not-a-hash", "anything")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	first, err := HashPassword("same password")
	require.NoError(t, err)
	second, err := HashPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
