package jwtx_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/yukti/platform/pkg/jwtx"
)

func TestNewClaims(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	perms := []string{"user:read", "project:read"}

	c := jwtx.NewClaims(jwtx.Identity{
		UserID:      "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV",
		Email:       "a@biz.com",
		Role:        "client",
		CompanyID:   "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZW",
		Permissions: perms,
	}, jwtx.TypeAccess, "yukti-platform", 15*time.Minute, now)

	require.Equal(t, "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", c.Subject)
	require.Equal(t, now.Add(15*time.Minute), c.Expiry())
	require.NotEmpty(t, c.ID)
	require.Equal(t, jwtx.TypeAccess, c.Type)
	require.True(t, c.HasPermission("project:read"))
	require.False(t, c.HasPermission("admin:users"))

	// claims own their permission slice
	perms[0] = "admin:settings"
	require.Equal(t, "user:read", c.Permissions[0])

	other := jwtx.NewClaims(jwtx.Identity{UserID: "x"}, jwtx.TypeAccess, "", time.Minute, now)
	require.NotEqual(t, c.ID, other.ID)
}

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Issuer: "yukti-platform"}}

	require.NoError(t, c.ValidateIssuer("yukti-platform"))
	require.NoError(t, c.ValidateIssuer(""))
	require.ErrorIs(t, c.ValidateIssuer("someone-else"), jwtx.ErrIssuer)
}

func TestValidateExpiryAt(t *testing.T) {
	now := time.Now().UTC()

	t.Run("valid", func(t *testing.T) {
		c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute))}}
		require.NoError(t, c.ValidateExpiryAt(now))
	})

	t.Run("expired", func(t *testing.T) {
		c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute))}}
		require.ErrorIs(t, c.ValidateExpiryAt(now), jwtx.ErrExpired)
	})

	t.Run("not yet valid", func(t *testing.T) {
		c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{NotBefore: jwt.NewNumericDate(now.Add(time.Minute))}}
		require.ErrorIs(t, c.ValidateExpiryAt(now), jwtx.ErrNotYetValid)
	})
}
