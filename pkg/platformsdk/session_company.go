package platformsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ListCompaniesOptions filters ListCompanies. Zero values use server defaults.
type ListCompaniesOptions struct {
	Status    string
	Search    string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

func (o ListCompaniesOptions) query() string {
	q := url.Values{}
	for k, v := range map[string]string{
		"status":    o.Status,
		"search":    o.Search,
		"sortBy":    o.SortBy,
		"sortOrder": o.SortOrder,
	} {
		if v != "" {
			q.Set(k, v)
		}
	}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// ============================================================================
// Platform admin
// ============================================================================

// Requires: admin role
func (s *Session) ListCompanies(ctx context.Context, opts ListCompaniesOptions) (*CompanyListResponse, error) {
	return call[CompanyListResponse](ctx, s, http.MethodGet, "/companies"+opts.query(), nil, http.StatusOK, RoleAdmin)
}

// Requires: admin role
func (s *Session) CompanyStats(ctx context.Context) (*CompanyStatsResponse, error) {
	return call[CompanyStatsResponse](ctx, s, http.MethodGet, "/companies/stats", nil, http.StatusOK, RoleAdmin)
}

// ApproveCompany approves a pending company and activates its pending members.
// Requires: admin role
func (s *Session) ApproveCompany(ctx context.Context, companyID string) (*CompanyResponse, error) {
	return call[CompanyResponse](ctx, s, http.MethodPost, "/companies/approve",
		CompanyDecisionRequest{CompanyID: companyID}, http.StatusOK, RoleAdmin)
}

// RejectCompany rejects a pending company and deactivates its members.
// Requires: admin role
func (s *Session) RejectCompany(ctx context.Context, companyID, reason string) (*CompanyResponse, error) {
	return call[CompanyResponse](ctx, s, http.MethodPost, "/companies/reject",
		CompanyDecisionRequest{CompanyID: companyID, Reason: reason}, http.StatusOK, RoleAdmin)
}

// ============================================================================
// Members
// ============================================================================

func (s *Session) GetCompany(ctx context.Context, companyID string) (*Company, error) {
	return call[Company](ctx, s, http.MethodGet, "/companies/"+url.PathEscape(companyID), nil, http.StatusOK)
}

func (s *Session) GetCompanyByAlias(ctx context.Context, alias string) (*Company, error) {
	return call[Company](ctx, s, http.MethodGet, "/companies/alias/"+url.PathEscape(alias), nil, http.StatusOK)
}

func (s *Session) CheckAlias(ctx context.Context, alias string) (*AliasAvailabilityResponse, error) {
	return call[AliasAvailabilityResponse](ctx, s, http.MethodGet, "/companies/check-alias/"+url.PathEscape(alias), nil, http.StatusOK)
}

func (s *Session) CompanyDashboardURL(ctx context.Context, companyID string) (*DashboardURLResponse, error) {
	return call[DashboardURLResponse](ctx, s, http.MethodGet, "/companies/"+url.PathEscape(companyID)+"/dashboard-url", nil, http.StatusOK)
}

// UpdateCompany edits a company profile. Only platform admins may set Status.
func (s *Session) UpdateCompany(ctx context.Context, companyID string, req UpdateCompanyRequest) (*CompanyResponse, error) {
	return call[CompanyResponse](ctx, s, http.MethodPatch, "/companies/"+url.PathEscape(companyID), req, http.StatusOK,
		RoleAdmin, RoleCompanyAdmin)
}

// ============================================================================
// Dashboard
// ============================================================================

func (s *Session) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	return call[DashboardResponse](ctx, s, http.MethodGet, "/dashboard", nil, http.StatusOK)
}

func (s *Session) CompanyDashboard(ctx context.Context, alias string) (*DashboardResponse, error) {
	return call[DashboardResponse](ctx, s, http.MethodGet, "/dashboard/company/"+url.PathEscape(alias), nil, http.StatusOK)
}

func (s *Session) DashboardStats(ctx context.Context) (*DashboardStatsResponse, error) {
	return call[DashboardStatsResponse](ctx, s, http.MethodGet, "/dashboard/stats", nil, http.StatusOK)
}

func (s *Session) RecentActivity(ctx context.Context) (*RecentActivityResponse, error) {
	return call[RecentActivityResponse](ctx, s, http.MethodGet, "/dashboard/recent-activity", nil, http.StatusOK)
}
