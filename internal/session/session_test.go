package session

import (
	"context"
	"testing"
	"time"

	"negromart_seller/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestSession_TokensPersistAcrossLoad(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()

	access := signedToken(t, jwt.MapClaims{"user_id": 42, "exp": time.Now().Add(time.Hour).Unix()})
	refresh := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(24 * time.Hour).Unix()})

	s := New(store)
	require.NoError(t, s.SetTokens(ctx, access, refresh))
	require.NoError(t, s.SetCurrency(ctx, "GHS"))

	restored, err := Load(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, access, restored.AccessToken())
	assert.Equal(t, refresh, restored.RefreshToken())
	assert.Equal(t, "GHS", restored.Currency())
	assert.Equal(t, "42", restored.VendorID())
	assert.True(t, restored.IsAuthenticated())
	assert.False(t, restored.AccessExpired(time.Now()))
}

func TestSession_SetTokensKeepsRefreshWhenNotRotated(t *testing.T) {
	ctx := context.Background()
	s := New(nil)

	require.NoError(t, s.SetTokens(ctx, "a1", "r1"))
	require.NoError(t, s.SetTokens(ctx, "a2", ""))

	assert.Equal(t, "a2", s.AccessToken())
	assert.Equal(t, "r1", s.RefreshToken())
}

func TestSession_ExpiredAccessToken(t *testing.T) {
	ctx := context.Background()
	s := New(nil)

	expired := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Minute).Unix()})
	require.NoError(t, s.SetTokens(ctx, expired, "r1"))

	assert.Equal(t, "", s.AccessToken(), "expired cookie reads as unset")
	assert.True(t, s.AccessExpired(time.Now()))
	assert.True(t, s.IsAuthenticated(), "refresh token still usable")
}

func TestSession_OTPIdentifierExpires(t *testing.T) {
	ctx := context.Background()
	s := New(nil)
	now := time.Now()
	s.now = func() time.Time { return now }

	require.NoError(t, s.SetOTPIdentifier(ctx, "otp-123"))
	assert.Equal(t, "otp-123", s.OTPIdentifier())

	now = now.Add(otpTTL + time.Second)
	assert.Equal(t, "", s.OTPIdentifier())
}

func TestSession_ClearRemovesPersistedState(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()

	s := New(store)
	require.NoError(t, s.SetTokens(ctx, "a", "r"))
	require.NoError(t, s.Clear(ctx))

	restored, err := Load(ctx, store)
	require.NoError(t, err)
	assert.False(t, restored.IsAuthenticated())
	assert.Empty(t, restored.HTTPCookies())
}
