package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Token types carried in the "typ" claim. An access token is never accepted
// where a refresh token is expected and vice versa, even before the signature
// check (the two kinds are signed with different secrets).
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims is the payload of both access and refresh tokens.
type Claims struct {
	jwt.RegisteredClaims

	Email       string   `json:"email"`
	Role        string   `json:"role"`
	CompanyID   string   `json:"companyId"`
	Permissions []string `json:"permissions"`
	Type        string   `json:"typ"`
}

// Identity is the user data a token pair is minted for.
type Identity struct {
	UserID      string
	Email       string
	Role        string
	CompanyID   string
	Permissions []string
}

// NewClaims stamps identity with issuer, lifetime and a fresh jti.
func NewClaims(id Identity, tokenType, issuer string, ttl time.Duration, now time.Time) Claims {
	perms := make([]string, len(id.Permissions))
	copy(perms, id.Permissions)

	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Email:       id.Email,
		Role:        id.Role,
		CompanyID:   id.CompanyID,
		Permissions: perms,
		Type:        tokenType,
	}
}

func NewJTI() string {
	return uuid.NewString()
}

func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiryAt checks exp and nbf against now.
func (c *Claims) ValidateExpiryAt(now time.Time) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}

// Expiry returns exp in UTC, or the zero time.
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time.UTC()
}

func (c *Claims) HasPermission(p string) bool {
	for _, have := range c.Permissions {
		if have == p {
			return true
		}
	}
	return false
}
