package util

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "catalog-test-secret"

func TestGenerateTokenPair_CarriesMember(t *testing.T) {
	pair, err := GenerateTokenPair(42, "alice@example.com", "member", testSecret, 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)

	access, err := ValidateToken(pair.AccessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), access.UserID)
	assert.Equal(t, "alice@example.com", access.Email)
	assert.Equal(t, "member", access.Role)

	refresh, err := ValidateToken(pair.RefreshToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), refresh.UserID)
	assert.True(t, refresh.ExpiresAt.After(access.ExpiresAt.Time))
}

func TestGenerateTokenPair_UniqueTokenIDs(t *testing.T) {
	pair, err := GenerateTokenPair(1, "bob@example.com", "member", testSecret, time.Hour, time.Hour)
	require.NoError(t, err)

	// Same member and same expiry: only the token ID keeps them apart.
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	access, err := ValidateToken(pair.AccessToken, testSecret)
	require.NoError(t, err)
	refresh, err := ValidateToken(pair.RefreshToken, testSecret)
	require.NoError(t, err)

	assert.NotEmpty(t, access.ID)
	assert.NotEmpty(t, refresh.ID)
	assert.NotEqual(t, access.ID, refresh.ID)
}

func TestValidateToken_Errors(t *testing.T) {
	valid, err := GenerateTokenPair(7, "m@example.com", "member", testSecret, time.Hour, time.Hour)
	require.NoError(t, err)
	expired, err := GenerateTokenPair(7, "m@example.com", "member", testSecret, -time.Minute, time.Hour)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		secret  string
		wantErr error
	}{
		{"expired", expired.AccessToken, testSecret, ErrExpiredToken},
		{"wrong secret", valid.AccessToken, "other-secret", ErrInvalidToken},
		{"alg none", unsigned, testSecret, ErrInvalidToken},
		{"garbage", "not.a.token", testSecret, ErrInvalidToken},
		{"empty", "", testSecret, ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ValidateToken(tt.token, tt.secret)
			assert.Nil(t, claims)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestValidateToken_ExpiredIsNotInvalid(t *testing.T) {
	expired, err := GenerateTokenPair(7, "m@example.com", "member", testSecret, -time.Minute, time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(expired.AccessToken, testSecret)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.NotErrorIs(t, err, ErrInvalidToken)
}
