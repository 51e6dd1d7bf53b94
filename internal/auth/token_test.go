// internal/auth/token_test.go
package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngeukam/backendmaoni/internal/auth"
)

func TestTokenPair(t *testing.T) {
	tm := auth.NewTokenManager("test_secret", time.Hour, 24*time.Hour)
	userID := uuid.NewString()

	pair, err := tm.GeneratePair(userID, "marie@example.com", "manager")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	access, err := tm.Validate(pair.AccessToken, auth.TokenAccess)
	require.NoError(t, err)
	assert.Equal(t, userID, access.UserID)
	assert.Equal(t, "marie@example.com", access.Email)
	assert.Equal(t, "manager", access.Role)
	assert.NotEmpty(t, access.ID, "tokens carry a jti for blacklisting")

	refresh, err := tm.Validate(pair.RefreshToken, auth.TokenRefresh)
	require.NoError(t, err)
	assert.NotEqual(t, access.ID, refresh.ID)
}

func TestTokenTypeEnforced(t *testing.T) {
	tm := auth.NewTokenManager("test_secret", time.Hour, 24*time.Hour)

	pair, err := tm.GeneratePair(uuid.NewString(), "marie@example.com", "manager")
	require.NoError(t, err)

	_, err = tm.Validate(pair.AccessToken, auth.TokenRefresh)
	assert.Error(t, err, "an access token is not a refresh token")

	_, err = tm.Validate(pair.RefreshToken, auth.TokenAccess)
	assert.Error(t, err, "a refresh token is not an access token")
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	tm := auth.NewTokenManager("test_secret", time.Hour, 24*time.Hour)
	other := auth.NewTokenManager("other_secret", time.Hour, 24*time.Hour)

	pair, err := tm.GeneratePair(uuid.NewString(), "marie@example.com", "manager")
	require.NoError(t, err)

	_, err = other.Validate(pair.AccessToken, auth.TokenAccess)
	assert.Error(t, err)
}

func TestTokenRejectsExpired(t *testing.T) {
	tm := auth.NewTokenManager("test_secret", -time.Minute, -time.Minute)

	pair, err := tm.GeneratePair(uuid.NewString(), "marie@example.com", "manager")
	require.NoError(t, err)

	_, err = tm.Validate(pair.AccessToken, auth.TokenAccess)
	assert.Error(t, err)
}
