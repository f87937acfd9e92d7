package http

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yukti/platform/internal/platform/domain"
	"github.com/yukti/platform/internal/platform/service"
	"github.com/yukti/platform/pkg/httpx"
	"github.com/yukti/platform/pkg/platformsdk"
)

func TestInviteAndAccept(t *testing.T) {
	e := newTestEnv(t)
	c := e.seedCompany(t, "Acme", "acme", domain.CompanyApproved)
	e.seedUser(t, c.ID, "admin@acme.com", domain.RoleCompanyAdmin, domain.UserActive)
	e.seedUser(t, c.ID, "dev@acme.com", domain.RoleClient, domain.UserActive)
	adminTok, _ := e.login(t, "admin@acme.com")
	devTok, _ := e.login(t, "dev@acme.com")

	invite := map[string]string{"email": "new@acme.com", "name": "New Hire", "role": "user"}

	w := e.do(t, request{method: http.MethodPost, path: "/auth/invite", token: devTok.AccessToken, body: invite})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(t, request{method: http.MethodPost, path: "/auth/invite", token: adminTok.AccessToken, body: map[string]string{"email": "new@acme.com"}})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(t, request{method: http.MethodPost, path: "/auth/invite", token: adminTok.AccessToken, body: invite})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	res := decodeAs[service.InviteResult](t, w)
	require.Equal(t, "new@acme.com", res.Email)

	msg, ok := e.rec.LastInvitation("new@acme.com")
	require.True(t, ok)
	link, err := url.Parse(msg.URL)
	require.NoError(t, err)
	token := link.Query().Get("token")
	require.NotEmpty(t, token)

	// The invitation code only works together with the token.
	w = e.do(t, request{method: http.MethodPost, path: "/auth/verify-otp", body: map[string]string{"email": "new@acme.com", "otp": msg.Code}})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, decodeAs[platformsdk.ErrorResponse](t, w).ErrorDescription, "Accept your invitation")

	w = e.do(t, request{method: http.MethodPost, path: "/auth/accept-invitation", body: map[string]string{"token": token, "otp": "000000"}})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Invalid or expired OTP", decodeAs[platformsdk.ErrorResponse](t, w).ErrorDescription)

	w = e.do(t, request{method: http.MethodPost, path: "/auth/accept-invitation", body: map[string]string{"token": token, "otp": msg.Code}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	sess := decodeAs[tokenResponse](t, w)
	require.Equal(t, "Invitation accepted successfully", sess.Message)
	require.Equal(t, domain.UserActive, sess.User.Status)
	require.NotNil(t, cookieNamed(w, httpx.AccessTokenCookie))

	// The token is single use.
	w = e.do(t, request{method: http.MethodPost, path: "/auth/accept-invitation", body: map[string]string{"token": token, "otp": msg.Code}})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBulkInviteReportsPerItem(t *testing.T) {
	e := newTestEnv(t)
	c := e.seedCompany(t, "Acme", "acme", domain.CompanyApproved)
	e.seedUser(t, c.ID, "admin@acme.com", domain.RoleCompanyAdmin, domain.UserActive)
	tok, _ := e.login(t, "admin@acme.com")

	w := e.do(t, request{method: http.MethodPost, path: "/auth/invite/bulk", token: tok.AccessToken, body: map[string]any{
		"invitations": []map[string]string{
			{"email": "one@acme.com", "name": "One Person", "role": "user"},
			{"email": "admin@acme.com", "name": "Dup Person", "role": "user"},
		},
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decodeAs[service.BulkInviteResult](t, w)
	require.Equal(t, 1, res.Successful)
	require.Equal(t, 1, res.Failed)
	require.True(t, res.Results[0].Success)
	require.Equal(t, service.ErrEmailTaken.Message, res.Results[1].Error)

	w = e.do(t, request{method: http.MethodPost, path: "/auth/invite/bulk", token: tok.AccessToken, body: map[string]any{"invitations": []any{}}})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserManagement(t *testing.T) {
	e := newTestEnv(t)
	c := e.seedCompany(t, "Acme", "acme", domain.CompanyApproved)
	other := e.seedCompany(t, "Globex", "globex", domain.CompanyApproved)
	admin := e.seedUser(t, c.ID, "admin@acme.com", domain.RoleCompanyAdmin, domain.UserActive)
	member := e.seedUser(t, c.ID, "dev@acme.com", domain.RoleClient, domain.UserActive)
	outsider := e.seedUser(t, other.ID, "dev@globex.com", domain.RoleClient, domain.UserActive)
	tok, _ := e.login(t, admin.Email)

	w := e.do(t, request{method: http.MethodGet, path: "/auth/users?page=1&limit=10", token: tok.AccessToken})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	list := decodeAs[service.UserList](t, w)
	require.Len(t, list.Users, 2)
	require.Equal(t, 2, list.Pagination.Total)

	w = e.do(t, request{method: http.MethodPatch, path: "/auth/users/" + admin.ID + "/status", token: tok.AccessToken, body: map[string]string{"status": "inactive"}})
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "Cannot deactivate your own account", decodeAs[platformsdk.ErrorResponse](t, w).ErrorDescription)

	// The short path behaves the same.
	w = e.do(t, request{method: http.MethodPatch, path: "/users/" + admin.ID + "/status", token: tok.AccessToken, body: map[string]string{"status": "suspended"}})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(t, request{method: http.MethodPatch, path: "/auth/users/" + member.ID + "/role", token: tok.AccessToken, body: map[string]string{"role": "admin"}})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(t, request{method: http.MethodPatch, path: "/auth/users/" + member.ID + "/role", token: tok.AccessToken, body: map[string]string{"role": "sre"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, domain.RoleSRE, decodeAs[service.UserResult](t, w).User.Role)

	w = e.do(t, request{method: http.MethodPatch, path: "/auth/users/" + outsider.ID, token: tok.AccessToken, body: map[string]string{"name": "Renamed"}})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(t, request{method: http.MethodDelete, path: "/auth/users/" + member.ID, token: tok.AccessToken})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, member.ID, decodeAs[service.RemoveResult](t, w).UserID)

	w = e.do(t, request{method: http.MethodDelete, path: "/auth/users/" + admin.ID, token: tok.AccessToken})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestCompanyRoutes(t *testing.T) {
	e := newTestEnv(t)
	ops := e.seedCompany(t, "Yukti Ops", "yukti-ops", domain.CompanyApproved)
	acme := e.seedCompany(t, "Acme", "acme", domain.CompanyPending)
	globex := e.seedCompany(t, "Globex", "globex", domain.CompanyPending)
	e.seedUser(t, ops.ID, "root@yukti-ops.com", domain.RoleAdmin, domain.UserActive)
	e.seedUser(t, acme.ID, "owner@acme.com", domain.RoleClient, domain.UserPending)
	adminTok, _ := e.login(t, "root@yukti-ops.com")
	ownerTok, _ := e.login(t, "owner@acme.com")

	w := e.do(t, request{method: http.MethodGet, path: "/companies", token: ownerTok.AccessToken})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(t, request{method: http.MethodGet, path: "/companies?status=pending", token: adminTok.AccessToken})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, decodeAs[service.CompanyList](t, w).Companies, 2)

	w = e.do(t, request{method: http.MethodGet, path: "/companies/stats", token: adminTok.AccessToken})
	require.Equal(t, http.StatusOK, w.Code)
	stats := decodeAs[service.CompanyStats](t, w)
	require.Equal(t, 3, stats.Total)
	require.Equal(t, 2, stats.Pending)

	// Two segment routes share one pattern.
	w = e.do(t, request{method: http.MethodGet, path: "/companies/check-alias/acme", token: ownerTok.AccessToken})
	require.Equal(t, http.StatusOK, w.Code)
	require.False(t, decodeAs[service.AliasAvailability](t, w).Available)

	w = e.do(t, request{method: http.MethodGet, path: "/companies/check-alias/fresh-name", token: ownerTok.AccessToken})
	require.True(t, decodeAs[service.AliasAvailability](t, w).Available)

	w = e.do(t, request{method: http.MethodGet, path: "/companies/alias/acme", token: ownerTok.AccessToken})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, acme.ID, decodeAs[domain.CompanyView](t, w).ID)

	w = e.do(t, request{method: http.MethodGet, path: "/companies/alias/globex", token: ownerTok.AccessToken})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(t, request{method: http.MethodGet, path: "/companies/" + acme.ID + "/dashboard-url", token: ownerTok.AccessToken})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, dashboardBase+"/acme", decodeAs[service.DashboardURLResult](t, w).DashboardURL)

	w = e.do(t, request{method: http.MethodGet, path: "/companies/" + acme.ID + "/nothing", token: ownerTok.AccessToken})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = e.do(t, request{method: http.MethodGet, path: "/companies/" + globex.ID, token: adminTok.AccessToken})
	require.Equal(t, http.StatusOK, w.Code)

	// Decisions
	w = e.do(t, request{method: http.MethodPost, path: "/companies/approve", token: adminTok.AccessToken, body: map[string]string{}})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(t, request{method: http.MethodPost, path: "/companies/approve", token: adminTok.AccessToken, body: map[string]string{"companyId": acme.ID}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, domain.CompanyApproved, decodeAs[service.CompanyResult](t, w).Company.Status)
	require.Len(t, e.rec.Approvals, 1)

	w = e.do(t, request{method: http.MethodPost, path: "/companies/approve", token: adminTok.AccessToken, body: map[string]string{"companyId": acme.ID}})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(t, request{method: http.MethodPost, path: "/companies/reject", token: adminTok.AccessToken, body: map[string]string{"companyId": globex.ID, "reason": "Incomplete details"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	rejected := decodeAs[service.CompanyResult](t, w).Company
	require.Equal(t, domain.CompanyRejected, rejected.Status)
	require.Equal(t, "Incomplete details", rejected.RejectionReason)

	// Approval activated the pending owner.
	w = e.do(t, request{method: http.MethodGet, path: "/auth/me", token: ownerTok.AccessToken})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestDashboardRoutes(t *testing.T) {
	e := newTestEnv(t)
	acme := e.seedCompany(t, "Acme", "acme", domain.CompanyApproved)
	e.seedCompany(t, "Globex", "globex", domain.CompanyApproved)
	e.seedUser(t, acme.ID, "admin@acme.com", domain.RoleCompanyAdmin, domain.UserActive)
	e.seedUser(t, acme.ID, "invitee@acme.com", domain.RoleUser, domain.UserPending)
	tok, _ := e.login(t, "admin@acme.com")

	w := e.do(t, request{method: http.MethodGet, path: "/dashboard", token: tok.AccessToken})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	d := decodeAs[service.Dashboard](t, w)
	require.Equal(t, "acme", d.Company.Alias)
	require.Equal(t, dashboardBase+"/acme", d.Company.DashboardURL)
	require.Equal(t, domain.RoleCompanyAdmin, d.User.Role)
	require.NotEmpty(t, d.Features)

	w = e.do(t, request{method: http.MethodGet, path: "/dashboard/company/ACME", token: tok.AccessToken})
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(t, request{method: http.MethodGet, path: "/dashboard/company/globex", token: tok.AccessToken})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(t, request{method: http.MethodGet, path: "/dashboard/company/missing", token: tok.AccessToken})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = e.do(t, request{method: http.MethodGet, path: "/dashboard/stats", token: tok.AccessToken})
	require.Equal(t, http.StatusOK, w.Code)
	stats := decodeAs[service.DashboardStats](t, w)
	require.Equal(t, 2, stats.Users.Total)
	require.Equal(t, 1, stats.Users.Pending)

	w = e.do(t, request{method: http.MethodGet, path: "/dashboard/recent-activity", token: tok.AccessToken})
	require.Equal(t, http.StatusOK, w.Code)
	act := decodeAs[service.RecentActivity](t, w)
	require.Len(t, act.Activities, 2)
	require.Equal(t, "login", act.Activities[0].Type)
}
