package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/EasyPost_Go/internal/domain"
)

const testSecret = "test-secret-key-for-auth-tests"

func testUser() *domain.User {
	return &domain.User{
		ID:       42,
		Username: "alice",
		Email:    "alice@example.com",
	}
}

func TestTokenManager_GenerateAndVerify(t *testing.T) {
	manager := NewTokenManager(testSecret, time.Hour)

	token, err := manager.Generate(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, TokenIssuer, claims.Issuer)
	assert.Equal(t, "42", claims.Subject)
}

func TestTokenManager_Verify_Expired(t *testing.T) {
	manager := NewTokenManager(testSecret, time.Hour)
	manager.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := manager.Generate(testUser())
	require.NoError(t, err)

	_, err = manager.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestTokenManager_Verify_WrongSecret(t *testing.T) {
	manager := NewTokenManager(testSecret, time.Hour)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:   42,
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := forged.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	_, err = manager.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestTokenManager_Verify_Malformed(t *testing.T) {
	manager := NewTokenManager(testSecret, time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"empty string", ""},
		{"not a jwt", "not-a-jwt"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.Verify(tt.token)
			assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		})
	}
}

func TestTokenManager_Verify_RejectsUnsignedAlgorithm(t *testing.T) {
	manager := NewTokenManager(testSecret, time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = manager.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestNewTokenManager_DefaultLifetime(t *testing.T) {
	manager := NewTokenManager(testSecret, 0)
	assert.Equal(t, DefaultTokenLifetime, manager.lifetime)
}
