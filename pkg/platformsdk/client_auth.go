package platformsdk

import (
	"context"
	"net/http"
)

// Signup registers a company and its first user. A login code is emailed.
func (c *SDKClient) Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error) {
	return callPublic[SignupResponse](ctx, c, http.MethodPost, "/auth/signup", req, nil, http.StatusCreated)
}

// RequestOTP emails a login code to email.
func (c *SDKClient) RequestOTP(ctx context.Context, email string) (*OTPSentResponse, error) {
	return callPublic[OTPSentResponse](ctx, c, http.MethodPost, "/auth/login", EmailRequest{Email: email}, nil, http.StatusOK)
}

// ResendOTP replaces the current login code.
func (c *SDKClient) ResendOTP(ctx context.Context, email string) (*OTPSentResponse, error) {
	return callPublic[OTPSentResponse](ctx, c, http.MethodPost, "/auth/resend-otp", EmailRequest{Email: email}, nil, http.StatusOK)
}

// VerifyOTP exchanges a login code for a token pair.
func (c *SDKClient) VerifyOTP(ctx context.Context, email, otp string) (*TokenResponse, error) {
	return callPublic[TokenResponse](ctx, c, http.MethodPost, "/auth/verify-otp",
		VerifyOTPRequest{Email: email, OTP: otp}, nil, http.StatusOK)
}

// Refresh rotates a refresh token. The token passed in is spent.
func (c *SDKClient) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	return callPublic[TokenResponse](ctx, c, http.MethodPost, "/auth/refresh",
		RefreshRequest{RefreshToken: refreshToken}, nil, http.StatusOK)
}

// Logout revokes refreshToken.
func (c *SDKClient) Logout(ctx context.Context, refreshToken string) error {
	_, err := callPublic[MessageResponse](ctx, c, http.MethodPost, "/auth/logout",
		RefreshRequest{RefreshToken: refreshToken}, nil, http.StatusOK)
	return err
}

// VerifyToken asks the platform whether an access token is usable. Invalid
// tokens are reported in the response, not as an error.
func (c *SDKClient) VerifyToken(ctx context.Context, token string) (*VerifyTokenResponse, error) {
	return callPublic[VerifyTokenResponse](ctx, c, http.MethodPost, "/auth/verify-token",
		VerifyTokenRequest{Token: token}, nil, http.StatusOK)
}

// AcceptInvitation activates an invited user with the emailed token and code.
func (c *SDKClient) AcceptInvitation(ctx context.Context, token, otp string) (*TokenResponse, error) {
	return callPublic[TokenResponse](ctx, c, http.MethodPost, "/auth/accept-invitation",
		AcceptInvitationRequest{Token: token, OTP: otp}, nil, http.StatusOK)
}

// Bootstrap creates the operator company and first admin.
func (c *SDKClient) Bootstrap(ctx context.Context, token string, req BootstrapRequest) (*BootstrapResponse, error) {
	return callPublic[BootstrapResponse](ctx, c, http.MethodPost, "/bootstrap", req,
		map[string]string{"X-Bootstrap-Token": token}, http.StatusCreated)
}

// GetLiveness checks if the service is alive.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return callPublic[HealthResponse](ctx, c, http.MethodGet, "/livez", nil, nil, http.StatusOK)
}

// GetReadiness checks if the service can reach its database.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return callPublic[HealthResponse](ctx, c, http.MethodGet, "/readyz", nil, nil, http.StatusOK)
}
