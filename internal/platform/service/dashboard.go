package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukti/platform/internal/platform/domain"
	"github.com/yukti/platform/internal/platform/store"
)

// DashboardService assembles the landing payload a member sees after login.
type DashboardService struct {
	Store            store.Store
	DashboardBaseURL string
}

type DashboardCompany struct {
	ID                  string               `json:"id"`
	Name                string               `json:"name"`
	Alias               string               `json:"alias"`
	Status              domain.CompanyStatus `json:"status"`
	DashboardURL        string               `json:"dashboardUrl"`
	OnboardingCompleted bool                 `json:"onboardingCompleted"`
}

type DashboardUser struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	Role        domain.Role `json:"role"`
	Permissions []string    `json:"permissions"`
}

type QuickAction struct {
	Label  string `json:"label"`
	Action string `json:"action"`
}

type Notification struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

type Dashboard struct {
	Company       DashboardCompany `json:"company"`
	User          DashboardUser    `json:"user"`
	Features      []string         `json:"features"`
	QuickActions  []QuickAction    `json:"quickActions"`
	Notifications []Notification   `json:"notifications"`
}

func (s *DashboardService) membership(ctx context.Context, userID string) (domain.Membership, error) {
	m, err := s.Store.Users().GetMembership(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Membership{}, ErrUserNotFound
		}
		return domain.Membership{}, fmt.Errorf("load membership: %w", err)
	}
	return m, nil
}

func (s *DashboardService) Get(ctx context.Context, actor Actor) (Dashboard, error) {
	m, err := s.membership(ctx, actor.UserID)
	if err != nil {
		return Dashboard{}, err
	}
	return s.build(m.User, m.Company), nil
}

// ForCompany renders the dashboard of the company with alias. Only admins
// may look at a company other than their own.
func (s *DashboardService) ForCompany(ctx context.Context, actor Actor, alias string) (Dashboard, error) {
	m, err := s.membership(ctx, actor.UserID)
	if err != nil {
		return Dashboard{}, err
	}
	c, err := s.Store.Companies().GetCompanyByAlias(ctx, strings.ToLower(strings.TrimSpace(alias)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Dashboard{}, ErrCompanyNotFound
		}
		return Dashboard{}, fmt.Errorf("load company: %w", err)
	}
	if !actor.sameCompany(c.ID) {
		return Dashboard{}, ErrDashboardAccessDenied
	}
	return s.build(m.User, c), nil
}

func (s *DashboardService) build(u domain.User, c domain.Company) Dashboard {
	perms := u.Permissions
	if perms == nil {
		perms = []string{}
	}
	d := Dashboard{
		Company: DashboardCompany{
			ID:                  c.ID,
			Name:                c.Name,
			Alias:               c.Alias,
			Status:              c.Status,
			DashboardURL:        domain.DashboardURL(s.DashboardBaseURL, c.Alias),
			OnboardingCompleted: c.OnboardingCompleted,
		},
		User: DashboardUser{
			ID:          u.ID,
			Email:       u.Email,
			Role:        u.Role,
			Permissions: perms,
		},
		Features:      dashboardFeatures(u.Role, c.Status),
		QuickActions:  quickActions(u.Role, c.Status),
		Notifications: []Notification{},
	}
	if c.Status == domain.CompanyPending {
		d.Notifications = append(d.Notifications, Notification{
			Type:    "info",
			Title:   "Account pending approval",
			Message: "Your company account is awaiting approval. You will be notified once it is approved.",
		})
	}
	return d
}

var roleFeatures = map[domain.Role][]string{
	domain.RoleClient: {"projects", "incidents", "reports", "settings"},
	domain.RoleSRE:    {"projects", "incidents", "monitoring", "deployments"},
	domain.RoleAdmin:  {"user_management", "company_management", "system_settings"},
}

func dashboardFeatures(role domain.Role, status domain.CompanyStatus) []string {
	features := []string{"dashboard", "profile"}
	switch {
	case status == domain.CompanyPending:
		return append(features, "limited_view")
	case !status.Operational():
		return features
	}
	return append(features, roleFeatures[role]...)
}

var roleQuickActions = map[domain.Role][]QuickAction{
	domain.RoleClient: {
		{Label: "Create Incident", Action: "create_incident"},
		{Label: "View Reports", Action: "view_reports"},
	},
	domain.RoleSRE: {
		{Label: "Monitor Systems", Action: "monitor_systems"},
		{Label: "Deploy Application", Action: "deploy_application"},
	},
	domain.RoleAdmin: {
		{Label: "Manage Users", Action: "manage_users"},
		{Label: "Approve Companies", Action: "approve_companies"},
	},
}

func quickActions(role domain.Role, status domain.CompanyStatus) []QuickAction {
	contact := QuickAction{Label: "Contact Support", Action: "contact_support"}
	switch {
	case status == domain.CompanyPending:
		return []QuickAction{{Label: "View Application Status", Action: "view_status"}, contact}
	case !status.Operational():
		return []QuickAction{contact}
	}
	actions := []QuickAction{
		{Label: "View Profile", Action: "view_profile"},
		{Label: "Settings", Action: "settings"},
	}
	return append(actions, roleQuickActions[role]...)
}

type DashboardStats struct {
	Company struct {
		Status           domain.CompanyStatus `json:"status"`
		CreatedAt        time.Time            `json:"createdAt"`
		LastActivityAt   *time.Time           `json:"lastActivityAt,omitempty"`
		SubscriptionPlan string               `json:"subscriptionPlan"`
	} `json:"company"`
	Users struct {
		Total   int `json:"total"`
		Active  int `json:"active"`
		Pending int `json:"pending"`
	} `json:"users"`
	Projects struct {
		Total     int `json:"total"`
		Active    int `json:"active"`
		Completed int `json:"completed"`
	} `json:"projects"`
	Incidents struct {
		Open     int `json:"open"`
		Resolved int `json:"resolved"`
		Total    int `json:"total"`
	} `json:"incidents"`
}

func (s *DashboardService) Stats(ctx context.Context, actor Actor) (DashboardStats, error) {
	m, err := s.membership(ctx, actor.UserID)
	if err != nil {
		return DashboardStats{}, err
	}
	counts, err := s.Store.Users().CountUsersByStatus(ctx, m.Company.ID)
	if err != nil {
		return DashboardStats{}, fmt.Errorf("count users: %w", err)
	}

	var st DashboardStats
	st.Company.Status = m.Company.Status
	st.Company.CreatedAt = m.Company.CreatedAt
	st.Company.LastActivityAt = m.Company.LastActivityAt
	st.Company.SubscriptionPlan = m.Company.SubscriptionPlan
	for _, n := range counts {
		st.Users.Total += n
	}
	st.Users.Active = counts[domain.UserActive]
	st.Users.Pending = counts[domain.UserPending]
	return st, nil
}

type Activity struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

type RecentActivity struct {
	Activities []Activity `json:"activities"`
}

// RecentActivity lists what the user record itself can tell: last login and
// account creation, newest first.
func (s *DashboardService) RecentActivity(ctx context.Context, actor Actor) (RecentActivity, error) {
	m, err := s.membership(ctx, actor.UserID)
	if err != nil {
		return RecentActivity{}, err
	}
	out := RecentActivity{Activities: []Activity{}}
	if m.User.LastLogin != nil {
		out.Activities = append(out.Activities, Activity{
			Type:        "login",
			Description: "Last login",
			Timestamp:   *m.User.LastLogin,
		})
	}
	out.Activities = append(out.Activities, Activity{
		Type:        "account_created",
		Description: "Account created",
		Timestamp:   m.User.CreatedAt,
	})
	return out, nil
}
