package http

import (
	"net/http"
	"strings"

	"github.com/yukti/platform/internal/platform/domain"
	"github.com/yukti/platform/internal/platform/service"
	"github.com/yukti/platform/pkg/httpx"
	"github.com/yukti/platform/pkg/platformsdk"
)

type AuthHandler struct {
	AuthService *service.AuthService
	Cookies     CookieConfig
}

// tokenResponse is the JSON twin of the token cookies.
type tokenResponse struct {
	Message      string              `json:"message,omitempty"`
	AccessToken  string              `json:"accessToken"`
	RefreshToken string              `json:"refreshToken"`
	ExpiresIn    int                 `json:"expiresIn"`
	User         *domain.UserView    `json:"user,omitempty"`
	Company      *domain.CompanyView `json:"company,omitempty"`
}

func (c CookieConfig) respondTokens(w http.ResponseWriter, pair domain.TokenPair, user *domain.UserView, company *domain.CompanyView, message string) {
	c.SetTokens(w, pair)
	httpx.WriteJSON(w, http.StatusOK, tokenResponse{
		Message:      message,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    int(c.settings().AccessTokenTTL().Seconds()),
		User:         user,
		Company:      company,
	})
}

func (c CookieConfig) respondSession(w http.ResponseWriter, s service.Session) {
	user := s.User
	c.respondTokens(w, s.Tokens, &user, s.Company, s.Message)
}

func clientInfo(r *http.Request) service.ClientInfo {
	return service.ClientInfo{IP: httpx.IPKeyExtractor(r), UserAgent: r.UserAgent()}
}

// HandleSignup godoc
//
//	@Summary		Register a company
//	@Description	Creates a pending company and its first user. The account can log in once an admin approves the company.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		platformsdk.SignupRequest	true	"Signup request"
//	@Success		201		{object}	platformsdk.SignupResponse	"message, userId, companyId, requiresApproval"
//	@Failure		400		{object}	platformsdk.ErrorResponse	"Validation failed"
//	@Failure		409		{object}	platformsdk.ErrorResponse	"Email, company name or alias already taken"
//	@Router			/auth/signup [post].
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var in service.SignupInput
	if !decode(w, r, &in) {
		return
	}

	res, err := h.AuthService.Signup(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, res)
}

// HandleLogin godoc
//
//	@Summary		Request a login code
//	@Description	Sends a one-time code to an existing account. Per-account request caps apply.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		platformsdk.EmailRequest	true	"Account email"
//	@Success		200		{object}	platformsdk.OTPSentResponse	"message, otpSent"
//	@Failure		400		{object}	platformsdk.ErrorResponse	"Rate limited or delivery failed"
//	@Failure		401		{object}	platformsdk.ErrorResponse	"Invalid credentials, inactive or locked account"
//	@Router			/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req platformsdk.EmailRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		writeBadRequest(w, "Email is required")
		return
	}

	res, err := h.AuthService.RequestOTP(r.Context(), req.Email, clientInfo(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

// HandleResendOTP godoc
//
//	@Summary		Resend a login code
//	@Description	Issues a new code unless the current one still has most of its validity left. Also served as /auth/resend-signup-otp.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		platformsdk.EmailRequest	true	"Account email"
//	@Success		200		{object}	platformsdk.OTPSentResponse	"message, otpSent"
//	@Failure		400		{object}	platformsdk.ErrorResponse	"Rate limited or delivery failed"
//	@Failure		401		{object}	platformsdk.ErrorResponse	"Invalid credentials or inactive account"
//	@Router			/auth/resend-otp [post].
func (h *AuthHandler) HandleResendOTP(w http.ResponseWriter, r *http.Request) {
	var req platformsdk.EmailRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		writeBadRequest(w, "Email is required")
		return
	}

	res, err := h.AuthService.ResendOTP(r.Context(), req.Email, clientInfo(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

// HandleVerifyOTP godoc
//
//	@Summary		Verify a login code
//	@Description	Exchanges the current code for an access and refresh token pair. Tokens are also set as HttpOnly cookies. Also served as /auth/verify-signup.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		platformsdk.VerifyOTPRequest	true	"Email and code"
//	@Success		200		{object}	platformsdk.TokenResponse		"Token pair with user and company"
//	@Failure		400		{object}	platformsdk.ErrorResponse		"Invalid, expired or exhausted code"
//	@Failure		401		{object}	platformsdk.ErrorResponse		"Invalid credentials or inactive account"
//	@Failure		409		{object}	platformsdk.ErrorResponse		"Concurrent verification"
//	@Router			/auth/verify-otp [post].
func (h *AuthHandler) HandleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req platformsdk.VerifyOTPRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.OTP) == "" {
		writeBadRequest(w, "Email and OTP are required")
		return
	}

	sess, err := h.AuthService.VerifyOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if sess.Message == "" {
		sess.Message = "Login successful"
	}
	h.Cookies.respondSession(w, sess)
}

// HandleRefresh godoc
//
//	@Summary		Rotate tokens
//	@Description	Exchanges a refresh token, from the refreshToken cookie or the body, for a new pair. Each refresh token is accepted once.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		platformsdk.RefreshRequest	false	"Refresh token when no cookie is sent"
//	@Success		200		{object}	platformsdk.TokenResponse	"New token pair"
//	@Failure		401		{object}	platformsdk.ErrorResponse	"Missing, invalid or reused refresh token"
//	@Router			/auth/refresh [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req platformsdk.RefreshRequest
	if err := httpx.DecodeJSON(r, &req, true); err != nil {
		writeBadRequest(w, "Request body must be valid JSON")
		return
	}

	pair, err := h.AuthService.Refresh(r.Context(), refreshTokenFrom(r, req.RefreshToken))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.Cookies.respondTokens(w, pair, nil, nil, "Token refreshed successfully")
}

// HandleVerifyToken godoc
//
//	@Summary		Check an access token
//	@Description	Reports whether an access token is valid and its owner may still authenticate. A bad token is not an error.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		platformsdk.VerifyTokenRequest	true	"Access token"
//	@Success		200		{object}	platformsdk.VerifyTokenResponse	"valid, user, company, expiresAt"
//	@Failure		400		{object}	platformsdk.ErrorResponse		"Missing token"
//	@Router			/auth/verify-token [post].
func (h *AuthHandler) HandleVerifyToken(w http.ResponseWriter, r *http.Request) {
	var req platformsdk.VerifyTokenRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Token) == "" {
		writeBadRequest(w, "Token is required")
		return
	}

	res, err := h.AuthService.VerifyToken(r.Context(), req.Token)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

// HandleLogout godoc
//
//	@Summary		Log out
//	@Description	Clears the token cookies and revokes the presented refresh token, if any.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		platformsdk.RefreshRequest		false	"Refresh token when no cookie is sent"
//	@Success		200		{object}	platformsdk.MessageResponse	"message"
//	@Router			/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	var req platformsdk.RefreshRequest
	_ = httpx.DecodeJSON(r, &req, true)

	h.Cookies.Clear(w)
	if err := h.AuthService.Logout(r.Context(), refreshTokenFrom(r, req.RefreshToken)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, platformsdk.MessageResponse{Message: "Logged out successfully"})
}

// HandleChangeEmail godoc
//
//	@Summary		Change account email
//	@Description	Replaces the caller's email after confirming their current one-time code.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		platformsdk.ChangeEmailRequest	true	"New email and code"
//	@Success		200		{object}	platformsdk.UserResponse		"message, user"
//	@Failure		400		{object}	platformsdk.ErrorResponse		"Invalid email or code"
//	@Failure		401		{object}	platformsdk.ErrorResponse		"Not authenticated"
//	@Failure		409		{object}	platformsdk.ErrorResponse		"Email already in use"
//	@Security		BearerAuth
//	@Router			/auth/change-email [post].
func (h *AuthHandler) HandleChangeEmail(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req platformsdk.ChangeEmailRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.NewEmail) == "" || strings.TrimSpace(req.OTP) == "" {
		writeBadRequest(w, "New email and OTP are required")
		return
	}

	res, err := h.AuthService.ChangeEmail(r.Context(), actor.UserID, req.NewEmail, req.OTP)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

// HandleMe godoc
//
//	@Summary		Current identity
//	@Description	Returns the identity carried by the validated access token.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	platformsdk.MeResponse		"userId, email, role, companyId, permissions"
//	@Failure		401	{object}	platformsdk.ErrorResponse	"Not authenticated"
//	@Security		BearerAuth
//	@Router			/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}
	perms := claims.Permissions
	if perms == nil {
		perms = []string{}
	}
	httpx.WriteJSON(w, http.StatusOK, platformsdk.MeResponse{
		UserID:      claims.Subject,
		Email:       claims.Email,
		Role:        claims.Role,
		CompanyID:   claims.CompanyID,
		Permissions: perms,
	})
}
