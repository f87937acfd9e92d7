package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yukti/platform/internal/platform/domain"
	"github.com/yukti/platform/internal/platform/store"
	"github.com/yukti/platform/pkg/idx"
	"github.com/yukti/platform/pkg/slogx"
)

// BootstrapService creates the first platform admin. It is disabled while
// Token is empty and refuses to run once any admin exists.
type BootstrapService struct {
	Store store.Store
	Token string
	Now   func() time.Time
}

type BootstrapInput struct {
	CompanyName  string `json:"companyName"`
	CompanyAlias string `json:"companyAlias,omitempty"`
	AdminName    string `json:"adminName"`
	AdminEmail   string `json:"adminEmail"`
}

type BootstrapResult struct {
	Message   string `json:"message"`
	UserID    string `json:"userId"`
	CompanyID string `json:"companyId"`
}

func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	n, err := s.Store.Users().CountAdmins(ctx)
	if err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	return n > 0, nil
}

func (s *BootstrapService) Bootstrap(ctx context.Context, token string, in BootstrapInput) (BootstrapResult, error) {
	l := slogx.FromContext(ctx)
	now := nowOr(s.Now)

	// 1. Check the token before revealing anything about state
	if s.Token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(s.Token)) != 1 {
		l.Warn("unauthorized bootstrap attempt")
		return BootstrapResult{}, ErrBootstrapUnauthorized
	}

	// 2. Check if already bootstrapped
	bootstrapped, err := s.IsBootstrapped(ctx)
	if err != nil {
		return BootstrapResult{}, err
	}
	if bootstrapped {
		l.Warn("attempted bootstrap on already-bootstrapped platform")
		return BootstrapResult{}, ErrAlreadyBootstrapped
	}

	// 3. Validate input
	email := NormalizeEmail(in.AdminEmail)
	if !ValidBusinessEmail(email) {
		return BootstrapResult{}, ErrInvalidEmail
	}
	name := SanitizeInput(in.AdminName)
	companyName := SanitizeInput(in.CompanyName)
	if name == "" || companyName == "" {
		return BootstrapResult{}, Errorf(ErrInvalidRequest, "adminName and companyName are required")
	}
	alias := strings.ToLower(strings.TrimSpace(in.CompanyAlias))
	if alias == "" {
		alias = GenerateAlias(companyName)
	}
	if !ValidAlias(alias) {
		return BootstrapResult{}, ErrInvalidAlias
	}

	// 4. Create the operator company and its admin together
	company := domain.Company{
		ID:                  idx.NewAt(now).String(),
		Name:                companyName,
		Alias:               alias,
		BusinessEmail:       email,
		Timezone:            "UTC",
		Status:              domain.CompanyApproved,
		SubscriptionPlan:    "enterprise",
		OnboardingCompleted: true,
		Settings:            domain.DefaultCompanySettings(),
		ApprovedAt:          &now,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	admin := domain.User{
		ID:              idx.NewAt(now).String(),
		Email:           email,
		Name:            name,
		Role:            domain.RoleAdmin,
		CompanyID:       company.ID,
		Status:          domain.UserActive,
		Permissions:     domain.DefaultPermissions(domain.RoleAdmin),
		EmailVerified:   true,
		EmailVerifiedAt: &now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	company.ApprovedBy = admin.ID

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Companies().CreateCompany(ctx, company); err != nil {
			return err
		}
		return tx.Users().CreateUser(ctx, admin)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return BootstrapResult{}, ErrAlreadyBootstrapped
		}
		l.Error("failed to bootstrap platform", slog.Any("error", err))
		return BootstrapResult{}, fmt.Errorf("bootstrap: %w", err)
	}

	l.Info("successfully bootstrapped platform",
		slog.String("admin_user_id", admin.ID),
		slog.String("company_id", company.ID),
	)
	return BootstrapResult{
		Message:   "Platform bootstrapped",
		UserID:    admin.ID,
		CompanyID: company.ID,
	}, nil
}
