package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/yukti/platform/internal/platform/domain"
	"github.com/yukti/platform/internal/platform/notify"
	"github.com/yukti/platform/internal/platform/store"
	"github.com/yukti/platform/pkg/cryptox"
	"github.com/yukti/platform/pkg/idx"
	"github.com/yukti/platform/pkg/slogx"
)

// invitationTokenBytes is the entropy of an invitation token before hex encoding.
const invitationTokenBytes = 32

// invitationSealPurpose scopes the key the pending token is sealed under.
const invitationSealPurpose = "invitation"

// TokenGenerator returns a fresh URL-safe invitation token.
type TokenGenerator func() (string, error)

func defaultInvitationToken() (string, error) {
	return cryptox.GenerateHexToken(invitationTokenBytes)
}

// InviteService creates pending users on behalf of a company manager and
// turns accepted invitations into active accounts.
type InviteService struct {
	Store         store.Store
	Tokens        *TokenService
	Notifier      notify.Notifier
	Settings      Settings
	Metrics       *Metrics
	GenerateCode  CodeGenerator
	GenerateToken TokenGenerator
	Now           func() time.Time

	FrontendURL      string
	DashboardBaseURL string
}

type InviteInput struct {
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	Role        domain.Role `json:"role"`
	Permissions []string    `json:"permissions,omitempty"`
	Message     string      `json:"message,omitempty"`
	Phone       string      `json:"phone,omitempty"`
}

type InviteResult struct {
	Message          string    `json:"message"`
	UserID           string    `json:"userId"`
	Email            string    `json:"email"`
	InvitationExpiry time.Time `json:"invitationExpiry"`
}

type BulkInviteItem struct {
	Email   string        `json:"email"`
	Success bool          `json:"success"`
	Result  *InviteResult `json:"result,omitempty"`
	Error   string        `json:"error,omitempty"`
}

type BulkInviteResult struct {
	Message    string           `json:"message"`
	Results    []BulkInviteItem `json:"results"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
}

func (s *InviteService) newToken() (string, error) {
	gen := s.GenerateToken
	if gen == nil {
		gen = defaultInvitationToken
	}
	return gen()
}

// mintToken generates an invitation token and its sealed form for storage.
func (s *InviteService) mintToken() (token, sealed string, err error) {
	token, err = s.newToken()
	if err != nil {
		return "", "", fmt.Errorf("generate invitation token: %w", err)
	}
	sealed, err = cryptox.SealString(invitationSealPurpose, token)
	if err != nil {
		return "", "", fmt.Errorf("seal invitation token: %w", err)
	}
	return token, sealed, nil
}

// pendingToken recovers the token of an invitation that has not expired.
// ok is false when the invitation must be reissued.
func pendingToken(inv domain.Invitation, now time.Time) (string, bool) {
	if inv.Expiry == nil || !inv.Expiry.After(now) || inv.TokenSealed == "" {
		return "", false
	}
	token, err := cryptox.OpenString(invitationSealPurpose, inv.TokenSealed)
	if err != nil || cryptox.FingerprintToken(token) != inv.TokenHash {
		return "", false
	}
	return token, true
}

// InvitationURL is the link emailed to the invitee.
func (s *InviteService) InvitationURL(token string) string {
	return strings.TrimRight(s.FrontendURL, "/") + "/accept-invitation?token=" + url.QueryEscape(token)
}

// Invite creates a pending user in the actor's company and emails them a
// token and a code. The user is deleted again if the email cannot be sent.
func (s *InviteService) Invite(ctx context.Context, actor Actor, in InviteInput) (InviteResult, error) {
	log := slogx.FromContext(ctx)
	now := nowOr(s.Now)

	inviter, err := s.Store.Users().GetUserByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return InviteResult{}, Errorf(ErrUserNotFound, "Inviter not found")
		}
		return InviteResult{}, fmt.Errorf("load inviter: %w", err)
	}

	email := NormalizeEmail(in.Email)
	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return InviteResult{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return InviteResult{}, fmt.Errorf("lookup invitee: %w", err)
	}
	if !ValidBusinessEmail(email) {
		return InviteResult{}, ErrInvalidEmail
	}

	name := SanitizeInput(in.Name)
	if n := len([]rune(name)); n < 2 || n > 100 {
		return InviteResult{}, Errorf(ErrInvalidRequest, "Name must be between 2 and 100 characters")
	}
	if in.Phone != "" && !ValidPhone(in.Phone) {
		return InviteResult{}, ErrInvalidPhone
	}
	perms, err := grantable(actor, in.Role, in.Permissions)
	if err != nil {
		return InviteResult{}, err
	}

	company, err := s.Store.Companies().GetCompanyByID(ctx, inviter.CompanyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return InviteResult{}, ErrCompanyNotFound
		}
		return InviteResult{}, fmt.Errorf("load company: %w", err)
	}

	token, _, err := s.mintToken()
	if err != nil {
		return InviteResult{}, err
	}
	expiry := now.Add(InvitationTTL)

	user := domain.User{
		ID:          idx.NewAt(now).String(),
		Email:       email,
		Name:        name,
		Phone:       in.Phone,
		Role:        in.Role,
		CompanyID:   company.ID,
		Status:      domain.UserPending,
		Permissions: perms,
		Invitation: domain.Invitation{
			TokenHash: cryptox.FingerprintToken(token),
			Expiry:    &expiry,
			InvitedBy: inviter.ID,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	code, err := issueOTP(&user, s.GenerateCode, now, InvitationTTL)
	if err != nil {
		return InviteResult{}, err
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return InviteResult{}, ErrEmailTaken
		}
		return InviteResult{}, fmt.Errorf("create invited user: %w", err)
	}

	err = s.Notifier.SendInvitation(ctx, notify.InvitationMessage{
		To:          user.Email,
		Name:        user.Name,
		CompanyName: company.Name,
		InviterName: inviter.Name,
		Role:        string(user.Role),
		URL:         s.InvitationURL(token),
		Message:     SanitizeInput(in.Message),
		Code:        code,
		ExpiresAt:   expiry,
	})
	if err != nil {
		log.Error("failed to send invitation, removing invited user",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		if derr := s.Store.Users().DeleteUser(ctx, user.ID); derr != nil {
			log.Error("failed to remove invited user after delivery failure",
				slog.String("user_id", user.ID),
				slog.Any("error", derr),
			)
		}
		s.Metrics.invitation("failed")
		return InviteResult{}, Errorf(ErrDeliveryFailed, "Failed to send invitation. Please try again.")
	}

	s.Metrics.invitation("sent")
	s.Metrics.otpIssued("invitation")
	log.Info("user invited",
		slog.String("user_id", user.ID),
		slog.String("invited_by", inviter.ID),
		slog.String("role", string(user.Role)),
	)
	return InviteResult{
		Message:          "Invitation sent successfully",
		UserID:           user.ID,
		Email:            user.Email,
		InvitationExpiry: expiry,
	}, nil
}

// grantable validates a role and permission set the actor wants to hand out.
// No permissions means the role's defaults.
func grantable(actor Actor, role domain.Role, perms []string) ([]string, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	if role == domain.RoleAdmin && !actor.IsAdmin() {
		return nil, ErrAdminRoleGrant
	}
	if len(perms) == 0 {
		return domain.DefaultPermissions(role), nil
	}
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		if !domain.ValidPermission(p) {
			return nil, Errorf(ErrInvalidPermission, "Invalid permission: %s", p)
		}
		if !containsString(out, p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// BulkInvite runs Invite for each entry in order. One failure does not stop
// the rest.
func (s *InviteService) BulkInvite(ctx context.Context, actor Actor, invitations []InviteInput) BulkInviteResult {
	out := BulkInviteResult{
		Message: "Bulk invitation completed",
		Results: make([]BulkInviteItem, 0, len(invitations)),
	}
	for _, in := range invitations {
		item := BulkInviteItem{Email: NormalizeEmail(in.Email)}
		res, err := s.Invite(ctx, actor, in)
		if err != nil {
			item.Error = clientMessage(err)
			out.Failed++
		} else {
			item.Success = true
			item.Result = &res
			out.Successful++
		}
		out.Results = append(out.Results, item)
	}
	return out
}

type ResendInvitationResult struct {
	Message          string    `json:"message"`
	Email            string    `json:"email"`
	InvitationExpiry time.Time `json:"invitationExpiry"`
}

// ResendInvitation emails the invitation again with a new code. A token that
// is still valid is sent unchanged. Once it has expired a new token with a
// fresh expiry replaces it. The previous invitation and code are restored
// when the email fails.
func (s *InviteService) ResendInvitation(ctx context.Context, actor Actor, email string) (ResendInvitationResult, error) {
	log := slogx.FromContext(ctx)
	now := nowOr(s.Now)

	user, err := s.Store.Users().GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ResendInvitationResult{}, ErrInvitationNotFound
		}
		return ResendInvitationResult{}, fmt.Errorf("load invitee: %w", err)
	}
	if user.Status != domain.UserPending || user.Invitation.TokenHash == "" || !actor.sameCompany(user.CompanyID) {
		return ResendInvitationResult{}, ErrInvitationNotFound
	}

	inviter, err := s.Store.Users().GetUserByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ResendInvitationResult{}, Errorf(ErrUserNotFound, "Inviter not found")
		}
		return ResendInvitationResult{}, fmt.Errorf("load inviter: %w", err)
	}
	company, err := s.Store.Companies().GetCompanyByID(ctx, user.CompanyID)
	if err != nil {
		return ResendInvitationResult{}, fmt.Errorf("load company: %w", err)
	}

	prevInvitation := user.Invitation
	prevOTP := captureOTPState(&user)

	token, reused := pendingToken(user.Invitation, now)
	expiry := now.Add(InvitationTTL)
	if reused {
		expiry = *user.Invitation.Expiry
	} else {
		var sealed string
		token, sealed, err = s.mintToken()
		if err != nil {
			return ResendInvitationResult{}, err
		}
		user.Invitation.TokenHash = cryptox.FingerprintToken(token)
		user.Invitation.TokenSealed = sealed
		user.Invitation.Expiry = &expiry
	}

	code, err := issueOTP(&user, s.GenerateCode, now, expiry.Sub(now))
	if err != nil {
		return ResendInvitationResult{}, err
	}
	user.UpdatedAt = now

	saved, err := s.Store.Users().UpdateUser(ctx, user)
	if err != nil {
		return ResendInvitationResult{}, mapWriteErr(err)
	}

	err = s.Notifier.SendInvitation(ctx, notify.InvitationMessage{
		To:          saved.Email,
		Name:        saved.Name,
		CompanyName: company.Name,
		InviterName: inviter.Name,
		Role:        string(saved.Role),
		URL:         s.InvitationURL(token),
		Code:        code,
		ExpiresAt:   expiry,
	})
	if err != nil {
		log.Error("failed to resend invitation",
			slog.String("user_id", saved.ID),
			slog.Any("error", err),
		)
		saved.Invitation = prevInvitation
		prevOTP.restore(&saved)
		if _, rerr := s.Store.Users().UpdateUser(ctx, saved); rerr != nil {
			log.Error("failed to restore invitation after delivery failure",
				slog.String("user_id", saved.ID),
				slog.Any("error", rerr),
			)
		}
		s.Metrics.invitation("failed")
		return ResendInvitationResult{}, Errorf(ErrDeliveryFailed, "Failed to resend invitation. Please try again.")
	}

	s.Metrics.invitation("resent")
	s.Metrics.otpIssued("invitation")
	log.Info("invitation resent",
		slog.String("user_id", saved.ID),
		slog.Bool("token_reissued", !reused),
	)
	return ResendInvitationResult{
		Message:          "Invitation resent successfully",
		Email:            saved.Email,
		InvitationExpiry: expiry,
	}, nil
}

// AcceptInvitation activates the invited user when both the token and the
// emailed code check out, and starts a session for them.
func (s *InviteService) AcceptInvitation(ctx context.Context, token, code string) (Session, error) {
	log := slogx.FromContext(ctx)
	now := nowOr(s.Now)

	token = strings.TrimSpace(token)
	if token == "" {
		return Session{}, ErrInvalidInvitation
	}
	user, err := s.Store.Users().GetUserByInvitationHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Session{}, ErrInvalidInvitation
		}
		return Session{}, fmt.Errorf("load invitee: %w", err)
	}
	if user.Status != domain.UserPending {
		return Session{}, ErrInvalidInvitation
	}
	if user.Invitation.Expiry == nil || !user.Invitation.Expiry.After(now) {
		return Session{}, ErrInvitationExpired
	}

	if err := checkOTPUniform(&user, strings.TrimSpace(code), now, settingsOrDefault(s.Settings).MaxOTPAttempts()); err != nil {
		if user.OTP != nil {
			user.UpdatedAt = now
			if _, werr := s.Store.Users().UpdateUser(ctx, user); werr != nil {
				return Session{}, mapWriteErr(werr)
			}
		}
		s.Metrics.otpVerification("invalid")
		return Session{}, err
	}

	user.Status = domain.UserActive
	user.Invitation.TokenHash = ""
	user.Invitation.TokenSealed = ""
	user.Invitation.Expiry = nil
	user.Invitation.AcceptedAt = &now
	user.EmailVerified = true
	user.EmailVerifiedAt = &now
	user.OTP.Verified = true
	user.LastLogin = &now
	user.UpdatedAt = now

	saved, err := s.Store.Users().UpdateUser(ctx, user)
	if err != nil {
		return Session{}, mapWriteErr(err)
	}
	s.Metrics.otpVerification("success")
	s.Metrics.invitation("accepted")
	log.Info("invitation accepted", slog.String("user_id", saved.ID))

	return buildSession(ctx, s.Store, s.Tokens, s.DashboardBaseURL, saved, "Invitation accepted successfully")
}

// clientMessage is the text a caller may see for err. Internal failures are
// not described.
func clientMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error"
}
