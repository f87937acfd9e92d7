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
	"github.com/yukti/platform/pkg/slogx"
)

// CompanyService covers tenant listing, profile updates and the approval
// decision with its cascade onto member users.
type CompanyService struct {
	Store            store.Store
	Notifier         notify.Notifier
	Metrics          *Metrics
	Now              func() time.Time
	DashboardBaseURL string
}

type CompanyListInput struct {
	Status    domain.CompanyStatus
	Search    string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

type CompanyList struct {
	Companies  []domain.CompanyView `json:"companies"`
	Pagination Pagination           `json:"pagination"`
}

var companySortFields = []string{"createdAt", "name", "status"}

func (s *CompanyService) view(c domain.Company) domain.CompanyView {
	return c.View(s.DashboardBaseURL)
}

func (s *CompanyService) List(ctx context.Context, in CompanyListInput) (CompanyList, error) {
	if in.Status != "" && !in.Status.Valid() {
		return CompanyList{}, ErrInvalidStatus
	}
	sortBy := in.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	if !containsString(companySortFields, sortBy) {
		return CompanyList{}, Errorf(ErrInvalidRequest, "sortBy must be one of: %s", strings.Join(companySortFields, ", "))
	}
	desc := true
	switch strings.ToLower(in.SortOrder) {
	case "", "desc":
	case "asc":
		desc = false
	default:
		return CompanyList{}, Errorf(ErrInvalidRequest, "sortOrder must be asc or desc")
	}
	page, limit := clampPage(in.Page, in.Limit)

	companies, total, err := s.Store.Companies().ListCompanies(ctx, store.CompanyFilter{
		Status:   in.Status,
		Search:   strings.TrimSpace(in.Search),
		SortBy:   sortBy,
		SortDesc: desc,
		Offset:   (page - 1) * limit,
		Limit:    limit,
	})
	if err != nil {
		return CompanyList{}, fmt.Errorf("list companies: %w", err)
	}

	views := make([]domain.CompanyView, 0, len(companies))
	for _, c := range companies {
		views = append(views, s.view(c))
	}
	return CompanyList{Companies: views, Pagination: newPagination(page, limit, total)}, nil
}

type CompanyStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

func (s *CompanyService) Stats(ctx context.Context) (CompanyStats, error) {
	counts, err := s.Store.Companies().CountCompaniesByStatus(ctx)
	if err != nil {
		return CompanyStats{}, fmt.Errorf("count companies: %w", err)
	}
	st := CompanyStats{
		Pending:  counts[domain.CompanyPending],
		Approved: counts[domain.CompanyApproved],
		Rejected: counts[domain.CompanyRejected],
		Active:   counts[domain.CompanyActive],
		Inactive: counts[domain.CompanyInactive],
	}
	for _, n := range counts {
		st.Total += n
	}
	return st, nil
}

type AliasAvailability struct {
	Alias     string `json:"alias"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

func (s *CompanyService) CheckAlias(ctx context.Context, alias string) (AliasAvailability, error) {
	alias = strings.ToLower(strings.TrimSpace(alias))
	res := AliasAvailability{Alias: alias}
	switch {
	case IsReservedAlias(alias):
		res.Reason = "Alias is reserved"
		return res, nil
	case !ValidAlias(alias):
		res.Reason = "Invalid alias format"
		return res, nil
	}
	taken, err := aliasTaken(ctx, s.Store, alias)
	if err != nil {
		return AliasAvailability{}, err
	}
	if taken {
		res.Reason = "Alias is already taken"
		return res, nil
	}
	res.Available = true
	return res, nil
}

// Get returns a company the actor may see: any for admins, otherwise only
// their own.
func (s *CompanyService) Get(ctx context.Context, actor Actor, id string) (domain.CompanyView, error) {
	c, err := s.load(ctx, func(cs store.Companies) (domain.Company, error) { return cs.GetCompanyByID(ctx, id) })
	if err != nil {
		return domain.CompanyView{}, err
	}
	if !actor.sameCompany(c.ID) {
		return domain.CompanyView{}, ErrCompanyAccessDenied
	}
	return s.view(c), nil
}

func (s *CompanyService) GetByAlias(ctx context.Context, actor Actor, alias string) (domain.CompanyView, error) {
	alias = strings.ToLower(strings.TrimSpace(alias))
	c, err := s.load(ctx, func(cs store.Companies) (domain.Company, error) { return cs.GetCompanyByAlias(ctx, alias) })
	if err != nil {
		return domain.CompanyView{}, err
	}
	if !actor.sameCompany(c.ID) {
		return domain.CompanyView{}, ErrCompanyAccessDenied
	}
	return s.view(c), nil
}

func (s *CompanyService) load(ctx context.Context, get func(store.Companies) (domain.Company, error)) (domain.Company, error) {
	c, err := get(s.Store.Companies())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Company{}, ErrCompanyNotFound
		}
		return domain.Company{}, fmt.Errorf("load company: %w", err)
	}
	return c, nil
}

type DashboardURLResult struct {
	DashboardURL string `json:"dashboardUrl"`
}

func (s *CompanyService) DashboardURL(ctx context.Context, actor Actor, id string) (DashboardURLResult, error) {
	v, err := s.Get(ctx, actor, id)
	if err != nil {
		return DashboardURLResult{}, err
	}
	return DashboardURLResult{DashboardURL: domain.DashboardURL(s.DashboardBaseURL, v.Alias)}, nil
}

type UpdateCompanyInput struct {
	Name                *string                 `json:"name,omitempty"`
	BusinessEmail       *string                 `json:"businessEmail,omitempty"`
	BackupEmail         *string                 `json:"backupEmail,omitempty"`
	Address             *domain.Address         `json:"businessAddress,omitempty"`
	Timezone            *string                 `json:"preferredTimezone,omitempty"`
	Metadata            *domain.CompanyMetadata `json:"metadata,omitempty"`
	Settings            *domain.CompanySettings `json:"settings,omitempty"`
	OnboardingCompleted *bool                   `json:"onboardingCompleted,omitempty"`
	Status              *domain.CompanyStatus   `json:"status,omitempty"`
}

type CompanyResult struct {
	Message string             `json:"message"`
	Company domain.CompanyView `json:"company"`
}

// Update edits the company profile. Admins may edit any company, company
// admins only their own; only admins change status.
func (s *CompanyService) Update(ctx context.Context, actor Actor, id string, in UpdateCompanyInput) (CompanyResult, error) {
	log := slogx.FromContext(ctx)
	now := nowOr(s.Now)

	c, err := s.load(ctx, func(cs store.Companies) (domain.Company, error) { return cs.GetCompanyByID(ctx, id) })
	if err != nil {
		return CompanyResult{}, err
	}
	if !actor.IsAdmin() && (actor.Role != domain.RoleCompanyAdmin || actor.CompanyID != c.ID) {
		return CompanyResult{}, ErrCompanyAccessDenied
	}
	if in.Status != nil && !actor.IsAdmin() {
		return CompanyResult{}, ErrCompanyStatusForbidden
	}

	if in.Name != nil {
		name := SanitizeInput(*in.Name)
		if n := len([]rune(name)); n < 2 || n > 100 {
			return CompanyResult{}, Errorf(ErrInvalidRequest, "Company name must be between 2 and 100 characters")
		}
		if !strings.EqualFold(name, c.Name) {
			if _, err := s.Store.Companies().GetCompanyByName(ctx, name); err == nil {
				return CompanyResult{}, ErrCompanyTaken
			} else if !errors.Is(err, store.ErrNotFound) {
				return CompanyResult{}, fmt.Errorf("lookup company: %w", err)
			}
		}
		c.Name = name
	}
	if in.BusinessEmail != nil {
		email := NormalizeEmail(*in.BusinessEmail)
		if !ValidBusinessEmail(email) {
			return CompanyResult{}, ErrInvalidCompanyEmail
		}
		c.BusinessEmail = email
	}
	if in.BackupEmail != nil {
		email := NormalizeEmail(*in.BackupEmail)
		if email != "" && !ValidBusinessEmail(email) {
			return CompanyResult{}, ErrInvalidCompanyEmail
		}
		c.BackupEmail = email
	}
	if in.Address != nil {
		c.Address = in.Address
	}
	if in.Timezone != nil && strings.TrimSpace(*in.Timezone) != "" {
		c.Timezone = strings.TrimSpace(*in.Timezone)
	}
	if in.Metadata != nil {
		if in.Metadata.Size != "" && !containsString(domain.CompanySizes, in.Metadata.Size) {
			return CompanyResult{}, Errorf(ErrInvalidRequest, "Company size must be one of: %s", strings.Join(domain.CompanySizes, ", "))
		}
		c.Metadata = *in.Metadata
	}
	if in.Settings != nil {
		c.Settings = *in.Settings
		if c.Settings.AlertChannels == nil {
			c.Settings.AlertChannels = []domain.AlertChannel{}
		}
	}
	if in.OnboardingCompleted != nil {
		c.OnboardingCompleted = *in.OnboardingCompleted
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return CompanyResult{}, ErrInvalidStatus
		}
		c.Status = *in.Status
	}
	c.UpdatedAt = now

	if err := s.Store.Companies().UpdateCompany(ctx, c); err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			return CompanyResult{}, ErrCompanyTaken
		case errors.Is(err, store.ErrNotFound):
			return CompanyResult{}, ErrCompanyNotFound
		}
		return CompanyResult{}, fmt.Errorf("update company: %w", err)
	}

	log.Info("company updated", slog.String("company_id", c.ID), slog.String("by", actor.UserID))
	return CompanyResult{Message: "Company updated successfully", Company: s.view(c)}, nil
}

// Approve moves a pending company to approved and activates its pending
// members in the same transaction. The approval email is best-effort.
func (s *CompanyService) Approve(ctx context.Context, actor Actor, companyID string) (CompanyResult, error) {
	log := slogx.FromContext(ctx)
	now := nowOr(s.Now)

	var (
		company   domain.Company
		activated int64
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		c, err := pendingCompany(ctx, tx, companyID)
		if err != nil {
			return err
		}
		c.Status = domain.CompanyApproved
		c.ApprovedAt = &now
		c.ApprovedBy = actor.UserID
		c.RejectionReason = ""
		c.UpdatedAt = now
		if err := tx.Companies().UpdateCompany(ctx, c); err != nil {
			return fmt.Errorf("update company: %w", err)
		}

		activated, err = tx.Users().SetCompanyUsersStatus(ctx, c.ID,
			[]domain.UserStatus{domain.UserPending}, domain.UserActive, now)
		if err != nil {
			return fmt.Errorf("activate members: %w", err)
		}
		company = c
		return nil
	})
	if err != nil {
		return CompanyResult{}, err
	}

	s.Metrics.companyDecision("approved")
	log.Info("company approved",
		slog.String("company_id", company.ID),
		slog.String("by", actor.UserID),
		slog.Int64("users_activated", activated),
	)
	s.notifyApproval(ctx, company)

	return CompanyResult{Message: "Company approved successfully", Company: s.view(company)}, nil
}

// notifyApproval emails the company's first client, or a company admin when
// it has none.
func (s *CompanyService) notifyApproval(ctx context.Context, c domain.Company) {
	log := slogx.FromContext(ctx)

	recipient, err := s.Store.Users().FirstUserByRole(ctx, c.ID, domain.RoleClient)
	if errors.Is(err, store.ErrNotFound) {
		recipient, err = s.Store.Users().FirstUserByRole(ctx, c.ID, domain.RoleCompanyAdmin)
	}
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Warn("failed to find approval email recipient",
				slog.String("company_id", c.ID),
				slog.Any("error", err),
			)
		}
		return
	}

	err = s.Notifier.SendCompanyApproval(ctx, notify.ApprovalMessage{
		To:           recipient.Email,
		Name:         recipient.Name,
		CompanyName:  c.Name,
		DashboardURL: domain.DashboardURL(s.DashboardBaseURL, c.Alias),
	})
	if err != nil {
		log.Warn("failed to send approval email",
			slog.String("company_id", c.ID),
			slog.String("user_id", recipient.ID),
			slog.Any("error", err),
		)
	}
}

// Reject moves a pending company to rejected and deactivates every member.
func (s *CompanyService) Reject(ctx context.Context, actor Actor, companyID, reason string) (CompanyResult, error) {
	log := slogx.FromContext(ctx)
	now := nowOr(s.Now)

	reason = SanitizeInput(reason)
	if reason == "" {
		return CompanyResult{}, Errorf(ErrInvalidRequest, "Rejection reason is required")
	}

	var (
		company     domain.Company
		deactivated int64
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		c, err := pendingCompany(ctx, tx, companyID)
		if err != nil {
			return err
		}
		c.Status = domain.CompanyRejected
		c.RejectionReason = reason
		c.UpdatedAt = now
		if err := tx.Companies().UpdateCompany(ctx, c); err != nil {
			return fmt.Errorf("update company: %w", err)
		}

		deactivated, err = tx.Users().SetCompanyUsersStatus(ctx, c.ID, nil, domain.UserInactive, now)
		if err != nil {
			return fmt.Errorf("deactivate members: %w", err)
		}
		company = c
		return nil
	})
	if err != nil {
		return CompanyResult{}, err
	}

	s.Metrics.companyDecision("rejected")
	log.Info("company rejected",
		slog.String("company_id", company.ID),
		slog.String("by", actor.UserID),
		slog.Int64("users_deactivated", deactivated),
	)
	return CompanyResult{Message: "Company rejected successfully", Company: s.view(company)}, nil
}

func pendingCompany(ctx context.Context, tx store.Tx, id string) (domain.Company, error) {
	c, err := tx.Companies().GetCompanyByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Company{}, ErrCompanyNotFound
		}
		return domain.Company{}, fmt.Errorf("load company: %w", err)
	}
	if c.Status != domain.CompanyPending {
		return domain.Company{}, ErrCompanyNotPending
	}
	return c, nil
}
