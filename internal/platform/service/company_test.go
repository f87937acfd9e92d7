package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukti/platform/internal/platform/domain"
	"github.com/yukti/platform/internal/platform/notify"
)

func TestApproveCascade(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	platform := f.seedCompany(t, "Yukti Ops", "yukti-ops", domain.CompanyApproved)
	admin := f.seedUser(t, platform.ID, "root@ops.com", domain.RoleAdmin, domain.UserActive, 0)

	c := f.seedCompany(t, "Acme", "acme", domain.CompanyPending)
	owner := f.seedUser(t, c.ID, "owner@acme.com", domain.RoleClient, domain.UserPending, time.Minute)
	second := f.seedUser(t, c.ID, "second@acme.com", domain.RoleClient, domain.UserPending, 2*time.Minute)
	gone := f.seedUser(t, c.ID, "gone@acme.com", domain.RoleUser, domain.UserInactive, 3*time.Minute)

	res, err := f.companies.Approve(ctx, actorOf(admin), c.ID)
	require.NoError(t, err)
	require.Equal(t, domain.CompanyApproved, res.Company.Status)
	require.Equal(t, admin.ID, res.Company.ApprovedBy)
	require.NotNil(t, res.Company.ApprovedAt)

	require.Equal(t, domain.UserActive, f.user(t, owner.ID).Status)
	require.Equal(t, domain.UserActive, f.user(t, second.ID).Status)
	require.Equal(t, domain.UserInactive, f.user(t, gone.ID).Status)

	require.Len(t, f.rec.Approvals, 1)
	require.Equal(t, "owner@acme.com", f.rec.Approvals[0].To)
	require.Equal(t, dashboardBase+"/acme", f.rec.Approvals[0].DashboardURL)

	_, err = f.companies.Approve(ctx, actorOf(admin), c.ID)
	require.ErrorIs(t, err, ErrCompanyNotPending)
	_, err = f.companies.Reject(ctx, actorOf(admin), c.ID, "late")
	require.ErrorIs(t, err, ErrCompanyNotPending)
	_, err = f.companies.Approve(ctx, actorOf(admin), "missing")
	require.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestApproveEmailFallbackAndFailure(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	admin := Actor{UserID: "root", Role: domain.RoleAdmin}

	c := f.seedCompany(t, "Acme", "acme", domain.CompanyPending)
	f.seedUser(t, c.ID, "ca@acme.com", domain.RoleCompanyAdmin, domain.UserPending, 0)
	_, err := f.companies.Approve(ctx, admin, c.ID)
	require.NoError(t, err)
	require.Equal(t, "ca@acme.com", f.rec.Approvals[0].To)

	f.rec.FailWith(notify.KindApproval, notify.ErrDelivery)
	d := f.seedCompany(t, "Initech", "initech", domain.CompanyPending)
	f.seedUser(t, d.ID, "peter@initech.com", domain.RoleClient, domain.UserPending, 0)
	_, err = f.companies.Approve(ctx, admin, d.ID)
	require.NoError(t, err)
	require.Len(t, f.rec.Approvals, 1)
}

func TestRejectCascade(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	admin := Actor{UserID: "root", Role: domain.RoleAdmin}

	c := f.seedCompany(t, "Acme", "acme", domain.CompanyPending)
	pending := f.seedUser(t, c.ID, "p@acme.com", domain.RoleClient, domain.UserPending, 0)
	active := f.seedUser(t, c.ID, "a@acme.com", domain.RoleUser, domain.UserActive, time.Minute)
	suspended := f.seedUser(t, c.ID, "s@acme.com", domain.RoleUser, domain.UserSuspended, 2*time.Minute)

	_, err := f.companies.Reject(ctx, admin, c.ID, "  ")
	require.ErrorIs(t, err, ErrInvalidRequest)

	res, err := f.companies.Reject(ctx, admin, c.ID, "Incomplete documents")
	require.NoError(t, err)
	require.Equal(t, domain.CompanyRejected, res.Company.Status)
	require.Equal(t, "Incomplete documents", res.Company.RejectionReason)

	for _, id := range []string{pending.ID, active.ID, suspended.ID} {
		require.Equal(t, domain.UserInactive, f.user(t, id).Status)
	}
	require.Empty(t, f.rec.Approvals)
}

func TestCompanyVisibility(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	acme := f.seedCompany(t, "Acme", "acme", domain.CompanyApproved)
	globex := f.seedCompany(t, "Globex", "globex", domain.CompanyApproved)
	member := f.seedUser(t, acme.ID, "m@acme.com", domain.RoleUser, domain.UserActive, 0)
	admin := Actor{UserID: "root", Role: domain.RoleAdmin, CompanyID: "elsewhere"}

	v, err := f.companies.Get(ctx, actorOf(member), acme.ID)
	require.NoError(t, err)
	require.Equal(t, dashboardBase+"/acme", v.DashboardURL)

	_, err = f.companies.Get(ctx, actorOf(member), globex.ID)
	require.ErrorIs(t, err, ErrCompanyAccessDenied)
	_, err = f.companies.GetByAlias(ctx, actorOf(member), "GLOBEX")
	require.ErrorIs(t, err, ErrCompanyAccessDenied)

	v, err = f.companies.GetByAlias(ctx, admin, "globex")
	require.NoError(t, err)
	require.Equal(t, globex.ID, v.ID)

	_, err = f.companies.Get(ctx, admin, "missing")
	require.ErrorIs(t, err, ErrCompanyNotFound)

	url, err := f.companies.DashboardURL(ctx, actorOf(member), acme.ID)
	require.NoError(t, err)
	require.Equal(t, dashboardBase+"/acme", url.DashboardURL)
}

func TestCheckAlias(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	f.seedCompany(t, "Acme", "acme", domain.CompanyApproved)

	tests := []struct {
		alias     string
		available bool
		reason    string
	}{
		{"acme", false, "Alias is already taken"},
		{"admin", false, "Alias is reserved"},
		{"-bad", false, "Invalid alias format"},
		{"ab", false, "Invalid alias format"},
		{"Fresh-Name", true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			res, err := f.companies.CheckAlias(ctx, tt.alias)
			require.NoError(t, err)
			require.Equal(t, tt.available, res.Available)
			require.Equal(t, tt.reason, res.Reason)
		})
	}
}

func TestCompanyUpdate(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	acme := f.seedCompany(t, "Acme", "acme", domain.CompanyApproved)
	f.seedCompany(t, "Globex", "globex", domain.CompanyApproved)
	owner := f.seedUser(t, acme.ID, "ca@acme.com", domain.RoleCompanyAdmin, domain.UserActive, 0)
	member := f.seedUser(t, acme.ID, "m@acme.com", domain.RoleUser, domain.UserActive, time.Minute)

	name := "Acme Corp"
	done := true
	res, err := f.companies.Update(ctx, actorOf(owner), acme.ID, UpdateCompanyInput{
		Name:                &name,
		OnboardingCompleted: &done,
		Metadata:            &domain.CompanyMetadata{Size: "medium", Industry: "retail"},
	})
	require.NoError(t, err)
	require.Equal(t, "Acme Corp", res.Company.Name)
	require.True(t, res.Company.OnboardingCompleted)
	require.Equal(t, "medium", res.Company.Metadata.Size)

	taken := "globex"
	_, err = f.companies.Update(ctx, actorOf(owner), acme.ID, UpdateCompanyInput{Name: &taken})
	require.ErrorIs(t, err, ErrCompanyTaken)

	inactive := domain.CompanyInactive
	_, err = f.companies.Update(ctx, actorOf(owner), acme.ID, UpdateCompanyInput{Status: &inactive})
	require.ErrorIs(t, err, ErrCompanyStatusForbidden)
	require.Equal(t, "Only admins can change company status", err.Error())

	_, err = f.companies.Update(ctx, actorOf(member), acme.ID, UpdateCompanyInput{Name: &name})
	require.ErrorIs(t, err, ErrCompanyAccessDenied)

	res, err = f.companies.Update(ctx, Actor{UserID: "root", Role: domain.RoleAdmin}, acme.ID, UpdateCompanyInput{Status: &inactive})
	require.NoError(t, err)
	require.Equal(t, domain.CompanyInactive, res.Company.Status)
}

func TestCompanyListAndStats(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	f.seedCompany(t, "Acme", "acme", domain.CompanyPending)
	f.clock.Advance(time.Minute)
	f.seedCompany(t, "Globex", "globex", domain.CompanyApproved)
	f.clock.Advance(time.Minute)
	f.seedCompany(t, "Initech", "initech", domain.CompanyRejected)

	list, err := f.companies.List(ctx, CompanyListInput{})
	require.NoError(t, err)
	require.Equal(t, 3, list.Pagination.Total)
	require.Equal(t, "Initech", list.Companies[0].Name)

	list, err = f.companies.List(ctx, CompanyListInput{SortBy: "name", SortOrder: "asc", Limit: 2})
	require.NoError(t, err)
	require.Equal(t, 2, list.Pagination.TotalPages)
	require.Equal(t, "Acme", list.Companies[0].Name)

	list, err = f.companies.List(ctx, CompanyListInput{Search: "GLOB"})
	require.NoError(t, err)
	require.Len(t, list.Companies, 1)

	list, err = f.companies.List(ctx, CompanyListInput{Status: domain.CompanyPending})
	require.NoError(t, err)
	require.Len(t, list.Companies, 1)

	_, err = f.companies.List(ctx, CompanyListInput{SortBy: "revenue"})
	require.ErrorIs(t, err, ErrInvalidRequest)

	stats, err := f.companies.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, CompanyStats{Total: 3, Pending: 1, Approved: 1, Rejected: 1}, stats)
}
