package platformsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the Yukti platform API.
// It covers the public endpoints and creates authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// CheckRoles makes a Session refuse admin-only calls locally when its
	// user lacks the role, instead of waiting for the server's 403.
	// Tests turn this off to exercise the server-side checks.
	// Default: true
	CheckRoles bool
}

// NewSDKClient creates a new platform client with role checking enabled.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		CheckRoles: true,
	}
}

// AuthenticateWithOTP exchanges an emailed login code for a session.
func (c *SDKClient) AuthenticateWithOTP(ctx context.Context, email, otp string) (*Session, error) {
	tokenResp, err := c.VerifyOTP(ctx, email, otp)
	if err != nil {
		return nil, err
	}
	return newSession(c, tokenResp), nil
}

// AuthenticateWithInvitation accepts an invitation and returns the invitee's
// first session.
func (c *SDKClient) AuthenticateWithInvitation(ctx context.Context, token, otp string) (*Session, error) {
	tokenResp, err := c.AcceptInvitation(ctx, token, otp)
	if err != nil {
		return nil, err
	}
	return newSession(c, tokenResp), nil
}

// AuthenticateWithRefreshToken creates a session from a stored refresh token.
// The old refresh token is spent.
func (c *SDKClient) AuthenticateWithRefreshToken(ctx context.Context, refreshToken string) (*Session, error) {
	tokenResp, err := c.Refresh(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	return newSession(c, tokenResp), nil
}

// NewSessionFromTokens creates a session from tokens obtained elsewhere. The
// role is only used for local checks and may be empty.
func (c *SDKClient) NewSessionFromTokens(accessToken, refreshToken, role string, expiresIn int) *Session {
	return &Session{
		client:       c,
		accessToken:  accessToken,
		refreshToken: refreshToken,
		expiresAt:    expiryFrom(expiresIn),
		role:         role,
	}
}
