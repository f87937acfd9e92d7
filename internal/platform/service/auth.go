package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yukti/platform/internal/platform/domain"
	"github.com/yukti/platform/internal/platform/notify"
	"github.com/yukti/platform/internal/platform/store"
	"github.com/yukti/platform/pkg/idx"
	"github.com/yukti/platform/pkg/slogx"
)

// AuthService owns signup and the passwordless login flow: OTP issuance,
// verification and the session that follows.
type AuthService struct {
	Store        store.Store
	Tokens       *TokenService
	Notifier     notify.Notifier
	Settings     Settings
	Metrics      *Metrics
	GenerateCode CodeGenerator
	Now          func() time.Time

	// DashboardBaseURL prefixes company aliases in company projections.
	DashboardBaseURL string
}

type SignupInput struct {
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	CompanyName   string          `json:"companyName"`
	CompanyAlias  string          `json:"companyAlias,omitempty"`
	BusinessEmail string          `json:"businessEmail,omitempty"`
	BackupEmail   string          `json:"backupEmail,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	Address       *domain.Address `json:"businessAddress,omitempty"`
	Timezone      string          `json:"timezone,omitempty"`
	CompanySize   string          `json:"companySize,omitempty"`
	Industry      string          `json:"industry,omitempty"`
	Website       string          `json:"website,omitempty"`
	Description   string          `json:"description,omitempty"`
}

type SignupResult struct {
	Message          string `json:"message"`
	UserID           string `json:"userId"`
	CompanyID        string `json:"companyId"`
	RequiresApproval bool   `json:"requiresApproval"`
}

type OTPSentResult struct {
	Message string `json:"message"`
	OTPSent bool   `json:"otpSent"`
}

// Session is the outcome of a successful OTP or invitation verification.
type Session struct {
	Tokens  domain.TokenPair
	User    domain.UserView
	Company *domain.CompanyView
	Message string
}

// ClientInfo is request metadata recorded on OTP requests.
type ClientInfo struct {
	IP        string
	UserAgent string
}

func (s *AuthService) settings() Settings { return settingsOrDefault(s.Settings) }

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (SignupResult, error) {
	log := slogx.FromContext(ctx)
	now := nowOr(s.Now)

	in.Name = SanitizeInput(in.Name)
	in.CompanyName = SanitizeInput(in.CompanyName)
	in.Email = NormalizeEmail(in.Email)
	in.BusinessEmail = NormalizeEmail(in.BusinessEmail)
	in.BackupEmail = NormalizeEmail(in.BackupEmail)

	if err := validateSignup(in); err != nil {
		return SignupResult{}, err
	}
	if !ValidBusinessEmail(in.Email) {
		return SignupResult{}, ErrInvalidEmail
	}
	if in.BusinessEmail != "" && !ValidBusinessEmail(in.BusinessEmail) {
		return SignupResult{}, ErrInvalidCompanyEmail
	}
	if in.Phone != "" && !ValidPhone(in.Phone) {
		return SignupResult{}, ErrInvalidPhone
	}

	if _, err := s.Store.Users().GetUserByEmail(ctx, in.Email); err == nil {
		return SignupResult{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return SignupResult{}, fmt.Errorf("lookup user: %w", err)
	}

	alias, err := s.resolveAlias(ctx, in.CompanyName, strings.ToLower(strings.TrimSpace(in.CompanyAlias)))
	if err != nil {
		return SignupResult{}, err
	}
	if _, err := s.Store.Companies().GetCompanyByName(ctx, in.CompanyName); err == nil {
		return SignupResult{}, ErrCompanyTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return SignupResult{}, fmt.Errorf("lookup company: %w", err)
	}

	businessEmail := in.BusinessEmail
	if businessEmail == "" {
		businessEmail = in.Email
	}
	timezone := in.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	company := domain.Company{
		ID:               idx.NewAt(now).String(),
		Name:             in.CompanyName,
		Alias:            alias,
		BusinessEmail:    businessEmail,
		BackupEmail:      in.BackupEmail,
		Address:          in.Address,
		Timezone:         timezone,
		Status:           domain.CompanyPending,
		SubscriptionPlan: "free",
		Settings:         domain.DefaultCompanySettings(),
		Metadata: domain.CompanyMetadata{
			Size:        in.CompanySize,
			Industry:    in.Industry,
			Website:     in.Website,
			Description: in.Description,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	user := domain.User{
		ID:          idx.NewAt(now).String(),
		Email:       in.Email,
		Name:        in.Name,
		Phone:       in.Phone,
		Role:        domain.RoleClient,
		CompanyID:   company.ID,
		Status:      domain.UserPending,
		Permissions: domain.DefaultPermissions(domain.RoleClient),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Companies().CreateCompany(ctx, company); err != nil {
			return err
		}
		return tx.Users().CreateUser(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			if strings.Contains(err.Error(), "users.") {
				return SignupResult{}, ErrEmailTaken
			}
			return SignupResult{}, ErrCompanyTaken
		}
		log.Error("failed to create signup records", slog.Any("error", err))
		return SignupResult{}, fmt.Errorf("create signup: %w", err)
	}

	if err := s.Notifier.SendWelcome(ctx, notify.WelcomeMessage{
		To:          user.Email,
		Name:        user.Name,
		CompanyName: company.Name,
	}); err != nil {
		log.Warn("failed to send welcome email",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
	}

	log.Info("new signup",
		slog.String("user_id", user.ID),
		slog.String("company_id", company.ID),
		slog.String("email", MaskEmail(user.Email)),
	)
	return SignupResult{
		Message:          "Signup successful. Your account is pending approval.",
		UserID:           user.ID,
		CompanyID:        company.ID,
		RequiresApproval: true,
	}, nil
}

func validateSignup(in SignupInput) error {
	if n := len([]rune(in.Name)); n < 2 || n > 100 {
		return Errorf(ErrInvalidRequest, "Name must be between 2 and 100 characters")
	}
	if n := len([]rune(in.CompanyName)); n < 2 || n > 100 {
		return Errorf(ErrInvalidRequest, "Company name must be between 2 and 100 characters")
	}
	if in.CompanySize != "" && !containsString(domain.CompanySizes, in.CompanySize) {
		return Errorf(ErrInvalidRequest, "Company size must be one of: %s", strings.Join(domain.CompanySizes, ", "))
	}
	return nil
}

// resolveAlias validates a requested alias, or generates one from the
// company name and retries with suffixes while it is taken or reserved.
func (s *AuthService) resolveAlias(ctx context.Context, name, requested string) (string, error) {
	if requested != "" {
		if !ValidAlias(requested) {
			return "", ErrInvalidAlias
		}
		taken, err := aliasTaken(ctx, s.Store, requested)
		if err != nil {
			return "", err
		}
		if taken {
			return "", ErrCompanyTaken
		}
		return requested, nil
	}

	base := GenerateAlias(name)
	candidate := base
	for range 6 {
		if ValidAlias(candidate) {
			taken, err := aliasTaken(ctx, s.Store, candidate)
			if err != nil {
				return "", err
			}
			if !taken {
				return candidate, nil
			}
		}
		candidate = withAliasSuffix(base)
	}
	return "", ErrCompanyTaken
}

func aliasTaken(ctx context.Context, st store.Store, alias string) (bool, error) {
	_, err := st.Companies().GetCompanyByAlias(ctx, alias)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("lookup alias: %w", err)
	}
}

// RequestOTP issues a login code. At most three codes are issued per user in
// any 15 minute window.
func (s *AuthService) RequestOTP(ctx context.Context, email string, client ClientInfo) (OTPSentResult, error) {
	now := nowOr(s.Now)
	user, err := s.Store.Users().GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return OTPSentResult{}, ErrInvalidCredentials
		}
		return OTPSentResult{}, fmt.Errorf("load user: %w", err)
	}

	if !user.Status.CanAuthenticate() {
		return OTPSentResult{}, ErrAccountInactive
	}
	if user.LockedFor(now) > 0 {
		return OTPSentResult{}, Errorf(ErrAccountLocked,
			"Account is locked. Try again in %d minutes.", user.LockedMinutes(now))
	}
	if !otpWindow(&user, now, loginWindow, loginWindowMax) {
		return OTPSentResult{}, Errorf(ErrTooManyOTPRequests,
			"Too many OTP requests. Please wait 15 minutes before requesting again.")
	}

	if err := s.issueAndDeliver(ctx, user, client, now, "login"); err != nil {
		return OTPSentResult{}, err
	}
	return OTPSentResult{Message: "OTP sent to your email", OTPSent: true}, nil
}

// ResendOTP is RequestOTP on a one hour window of five, and refuses while
// the current code still has more than four minutes to live.
func (s *AuthService) ResendOTP(ctx context.Context, email string, client ClientInfo) (OTPSentResult, error) {
	now := nowOr(s.Now)
	user, err := s.Store.Users().GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return OTPSentResult{}, ErrInvalidCredentials
		}
		return OTPSentResult{}, fmt.Errorf("load user: %w", err)
	}

	if !user.Status.CanAuthenticate() {
		return OTPSentResult{}, ErrAccountInactive
	}
	if user.LockedFor(now) > 0 {
		return OTPSentResult{}, ErrAccountLocked
	}
	if !otpWindow(&user, now, resendWindow, resendWindowMax) {
		return OTPSentResult{}, Errorf(ErrTooManyOTPRequests,
			"Too many OTP requests. Please wait 1 hour before requesting again.")
	}
	if user.OTP.Pending() && user.OTP.ExpiresAt.After(now) {
		remaining := user.OTP.ExpiresAt.Sub(now)
		if remaining > resendMinRemaining {
			secs := int((remaining + time.Second - 1) / time.Second)
			return OTPSentResult{}, Errorf(ErrOTPResendTooSoon,
				"Please wait %d seconds before requesting a new OTP.", secs)
		}
	}

	if err := s.issueAndDeliver(ctx, user, client, now, "resend"); err != nil {
		return OTPSentResult{}, err
	}
	return OTPSentResult{Message: "New OTP sent to your email", OTPSent: true}, nil
}

// issueAndDeliver persists a new code, emails it, and puts the previous
// slot and counters back if the email cannot be sent.
func (s *AuthService) issueAndDeliver(ctx context.Context, user domain.User, client ClientInfo, now time.Time, flow string) error {
	log := slogx.FromContext(ctx)
	prev := captureOTPState(&user)

	code, err := issueOTP(&user, s.GenerateCode, now, s.settings().OTPTTL())
	if err != nil {
		return err
	}
	user.Security.LastOTPRequest = &now
	user.Security.OTPRequestCount++
	user.Security.LastLoginIP = client.IP
	if client.UserAgent != "" {
		user.Security.LastUserAgent = client.UserAgent
	}
	user.UpdatedAt = now

	saved, err := s.Store.Users().UpdateUser(ctx, user)
	if err != nil {
		return mapWriteErr(err)
	}

	err = s.Notifier.SendOTP(ctx, notify.OTPMessage{
		To:            saved.Email,
		Name:          saved.Name,
		Code:          code,
		ExpiryMinutes: int(s.settings().OTPTTL() / time.Minute),
	})
	if err != nil {
		log.Error("failed to send otp email",
			slog.String("user_id", saved.ID),
			slog.String("flow", flow),
			slog.Any("error", err),
		)
		prev.restore(&saved)
		saved.UpdatedAt = nowOr(s.Now)
		if _, rerr := s.Store.Users().UpdateUser(ctx, saved); rerr != nil {
			log.Error("failed to restore otp state after delivery failure",
				slog.String("user_id", saved.ID),
				slog.Any("error", rerr),
			)
		}
		return ErrDeliveryFailed
	}

	s.Metrics.otpIssued(flow)
	log.Info("otp sent", slog.String("user_id", saved.ID), slog.String("flow", flow))
	return nil
}

// VerifyOTP exchanges the user's current code for a session. Wrong codes
// count against the attempt cap; the first correct one consumes the slot.
// Users with an unaccepted invitation are refused.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (Session, error) {
	log := slogx.FromContext(ctx)
	now := nowOr(s.Now)

	user, err := s.Store.Users().GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("load user: %w", err)
	}
	if !user.Status.CanAuthenticate() {
		return Session{}, ErrAccountInactive
	}
	// An open invitation is only redeemed through AcceptInvitation, which
	// also demands the emailed token. The slot is left untouched.
	if user.Invitation.TokenHash != "" {
		s.Metrics.otpVerification("invitation_pending")
		return Session{}, Errorf(ErrInvalidOrExpiredOTP,
			"Invalid or expired OTP. Accept your invitation to activate this account.")
	}

	if err := checkOTP(&user, strings.TrimSpace(code), now, s.settings().MaxOTPAttempts()); err != nil {
		if errors.Is(err, ErrInvalidOTP) {
			user.UpdatedAt = now
			if _, werr := s.Store.Users().UpdateUser(ctx, user); werr != nil {
				return Session{}, mapWriteErr(werr)
			}
		}
		s.Metrics.otpVerification(verificationResult(err))
		return Session{}, err
	}

	user.OTP.Verified = true
	user.LastLogin = &now
	user.Security.LoginAttempts = 0
	user.Security.LockUntil = nil
	if !user.EmailVerified {
		user.EmailVerified = true
		user.EmailVerifiedAt = &now
	}
	user.UpdatedAt = now

	saved, err := s.Store.Users().UpdateUser(ctx, user)
	if err != nil {
		return Session{}, mapWriteErr(err)
	}
	s.Metrics.otpVerification("success")
	log.Info("user logged in", slog.String("user_id", saved.ID))

	return s.session(ctx, saved, "")
}

func verificationResult(err error) string {
	switch {
	case errors.Is(err, ErrInvalidOTP):
		return "invalid"
	case errors.Is(err, ErrOTPExpired):
		return "expired"
	case errors.Is(err, ErrMaxOTPAttempts):
		return "max_attempts"
	default:
		return "no_otp"
	}
}

// session mints tokens for u and attaches the sanitized projections.
func (s *AuthService) session(ctx context.Context, u domain.User, message string) (Session, error) {
	return buildSession(ctx, s.Store, s.Tokens, s.DashboardBaseURL, u, message)
}

func buildSession(ctx context.Context, st store.Store, tokens *TokenService, dashboardBase string, u domain.User, message string) (Session, error) {
	pair, err := tokens.Mint(ctx, u)
	if err != nil {
		return Session{}, err
	}

	sess := Session{Tokens: pair, User: u.View(), Message: message}
	company, err := st.Companies().GetCompanyByID(ctx, u.CompanyID)
	switch {
	case err == nil:
		view := company.View(dashboardBase)
		sess.Company = &view
	case !errors.Is(err, store.ErrNotFound):
		return Session{}, fmt.Errorf("load company: %w", err)
	}
	return sess, nil
}

// Refresh rotates a refresh token.
func (s *AuthService) Refresh(ctx context.Context, raw string) (domain.TokenPair, error) {
	if strings.TrimSpace(raw) == "" {
		return domain.TokenPair{}, ErrMissingRefreshToken
	}
	return s.Tokens.Refresh(ctx, raw)
}

// Logout revokes the refresh token if one was presented.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.Tokens.Revoke(ctx, refreshToken, "logout"); err != nil {
		slogx.FromContext(ctx).Error("failed to revoke refresh token on logout", slog.Any("error", err))
		return err
	}
	return nil
}

type TokenVerification struct {
	Valid     bool                `json:"valid"`
	User      *domain.UserView    `json:"user,omitempty"`
	Company   *domain.CompanyView `json:"company,omitempty"`
	ExpiresAt *time.Time          `json:"expiresAt,omitempty"`
	Error     string              `json:"error,omitempty"`
}

// VerifyToken reports whether an access token is currently usable. It never
// fails for a bad token; only store errors are returned.
func (s *AuthService) VerifyToken(ctx context.Context, raw string) (TokenVerification, error) {
	claims, err := s.Tokens.VerifyAccess(strings.TrimSpace(raw))
	if err != nil {
		return TokenVerification{Valid: false, Error: "Invalid or expired token"}, nil
	}

	m, err := s.Store.Users().GetMembership(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return TokenVerification{Valid: false, Error: "User not found"}, nil
		}
		return TokenVerification{}, fmt.Errorf("load membership: %w", err)
	}
	if !m.User.Status.CanAuthenticate() {
		return TokenVerification{Valid: false, Error: "Account is inactive"}, nil
	}

	user := m.User.View()
	company := m.Company.View(s.DashboardBaseURL)
	exp := claims.Expiry()
	return TokenVerification{Valid: true, User: &user, Company: &company, ExpiresAt: &exp}, nil
}

type ChangeEmailResult struct {
	Message string          `json:"message"`
	User    domain.UserView `json:"user"`
}

// ChangeEmail swaps the user's email after confirming their current OTP.
func (s *AuthService) ChangeEmail(ctx context.Context, userID, newEmail, code string) (ChangeEmailResult, error) {
	log := slogx.FromContext(ctx)
	now := nowOr(s.Now)

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ChangeEmailResult{}, ErrUserNotFound
		}
		return ChangeEmailResult{}, fmt.Errorf("load user: %w", err)
	}

	if err := checkOTPUniform(&user, strings.TrimSpace(code), now, s.settings().MaxOTPAttempts()); err != nil {
		if user.OTP != nil {
			user.UpdatedAt = now
			if _, werr := s.Store.Users().UpdateUser(ctx, user); werr != nil {
				return ChangeEmailResult{}, mapWriteErr(werr)
			}
		}
		return ChangeEmailResult{}, err
	}

	newEmail = NormalizeEmail(newEmail)
	if !ValidBusinessEmail(newEmail) {
		return ChangeEmailResult{}, ErrInvalidEmail
	}
	if _, err := s.Store.Users().GetUserByEmail(ctx, newEmail); err == nil {
		return ChangeEmailResult{}, ErrEmailInUse
	} else if !errors.Is(err, store.ErrNotFound) {
		return ChangeEmailResult{}, fmt.Errorf("lookup email: %w", err)
	}

	oldEmail := user.Email
	user.Email = newEmail
	user.EmailVerified = true
	user.EmailVerifiedAt = &now
	user.EmailChange = domain.EmailChange{}
	user.OTP.Verified = true
	user.UpdatedAt = now

	saved, err := s.Store.Users().UpdateUser(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return ChangeEmailResult{}, ErrEmailInUse
		}
		return ChangeEmailResult{}, mapWriteErr(err)
	}

	log.Info("user email changed",
		slog.String("user_id", saved.ID),
		slog.String("from", MaskEmail(oldEmail)),
		slog.String("to", MaskEmail(newEmail)),
	)
	return ChangeEmailResult{Message: "Email changed successfully", User: saved.View()}, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
