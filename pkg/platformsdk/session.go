package platformsdk

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"
)

// refreshSkew is how long before expiry a session refreshes its access token.
const refreshSkew = 30 * time.Second

// Session is an authenticated user session. Every Session method refreshes
// the access token when it is about to expire.
type Session struct {
	client *SDKClient

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time
	role         string
	user         *User
	company      *Company
}

func newSession(client *SDKClient, tokenResp *TokenResponse) *Session {
	s := &Session{
		client:       client,
		accessToken:  tokenResp.AccessToken,
		refreshToken: tokenResp.RefreshToken,
		expiresAt:    expiryFrom(tokenResp.ExpiresIn),
		user:         tokenResp.User,
		company:      tokenResp.Company,
	}
	if tokenResp.User != nil {
		s.role = tokenResp.User.Role
	}
	return s
}

func expiryFrom(expiresIn int) time.Time {
	return time.Now().Add(time.Duration(expiresIn)*time.Second - refreshSkew)
}

// Logout revokes the refresh token. The session is unusable afterwards.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	refreshToken := s.refreshToken
	s.refreshToken = ""
	s.expiresAt = time.Time{}
	s.mu.Unlock()

	if refreshToken == "" {
		return fmt.Errorf("no refresh token to revoke")
	}
	return s.client.Logout(ctx, refreshToken)
}

// getValidToken returns a valid access token, refreshing when expired.
func (s *Session) getValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if time.Now().Before(s.expiresAt) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have refreshed while we waited
	if time.Now().Before(s.expiresAt) {
		return s.accessToken, nil
	}
	if s.refreshToken == "" {
		return "", fmt.Errorf("access token expired and no refresh token available")
	}

	tokenResp, err := s.client.Refresh(ctx, s.refreshToken)
	if err != nil {
		return "", fmt.Errorf("failed to refresh token: %w", err)
	}

	s.accessToken = tokenResp.AccessToken
	s.refreshToken = tokenResp.RefreshToken
	s.expiresAt = expiryFrom(tokenResp.ExpiresIn)
	return s.accessToken, nil
}

// AccessToken returns the current access token without checking expiry.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// Role is the role reported when the session was created.
func (s *Session) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

// User is the user returned at login, or nil for sessions built from tokens.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Company is the user's company as returned at login.
func (s *Session) Company() *Company {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.company
}

// checkRoles fails when role checking is on, the role is known, and it is not
// one of allowed.
func (s *Session) checkRoles(allowed ...string) error {
	if !s.client.CheckRoles || len(allowed) == 0 {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.role == "" || slices.Contains(allowed, s.role) {
		return nil
	}
	return fmt.Errorf("%w: %s is not one of %v", ErrRoleRequired, s.role, allowed)
}
