package domain

import "time"

// TokenPair is what a successful login, invitation acceptance or refresh yields.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// RevokedToken records a refresh token JTI that must not be accepted again
// before ExpiresAt.
type RevokedToken struct {
	JTI       string
	UserID    string
	Reason    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
