package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukti/platform/internal/platform/domain"
	"github.com/yukti/platform/internal/platform/store"
	"github.com/yukti/platform/internal/platform/store/drivers/sqlite"
	"github.com/yukti/platform/pkg/idx"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedCompany(t *testing.T, s store.Store, name, alias string, status domain.CompanyStatus) domain.Company {
	t.Helper()
	c := domain.Company{
		ID:               idx.New().String(),
		Name:             name,
		Alias:            alias,
		BusinessEmail:    "ops@" + alias + ".com",
		Timezone:         "UTC",
		Status:           status,
		SubscriptionPlan: "free",
		Settings:         domain.DefaultCompanySettings(),
		Metadata:         domain.CompanyMetadata{Size: "small", Industry: "fintech"},
		CreatedAt:        t0,
		UpdatedAt:        t0,
	}
	require.NoError(t, s.Companies().CreateCompany(context.Background(), c))
	return c
}

func seedUser(t *testing.T, s store.Store, companyID, email string, role domain.Role, status domain.UserStatus, created time.Time) domain.User {
	t.Helper()
	u := domain.User{
		ID:          idx.NewAt(created).String(),
		Email:       email,
		Name:        "Test User",
		Role:        role,
		CompanyID:   companyID,
		Status:      status,
		Permissions: domain.DefaultPermissions(role),
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	u.Version = 1
	return u
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.ApplyMigrations())

	version, dirty, err := s.MigrationVersion()
	require.NoError(t, err)
	require.False(t, dirty)
	require.EqualValues(t, 2, version)
}

func TestUsersRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	c := seedCompany(t, s, "Acme", "acme", domain.CompanyPending)

	lock := t0.Add(10 * time.Minute)
	u := seedUser(t, s, c.ID, "a@biz.com", domain.RoleClient, domain.UserPending, t0)
	u.OTP = &domain.OTP{CodeHash: "$argon2id$hash", ExpiresAt: t0.Add(5 * time.Minute), Attempts: 2}
	u.Security.LockUntil = &lock
	u.Security.LastLoginIP = "10.0.0.1"
	u.Invitation.TokenHash = "fingerprint"
	u.Invitation.TokenSealed = "sealed-token"
	u.UpdatedAt = t0.Add(time.Minute)

	updated, err := s.Users().UpdateUser(ctx, u)
	require.NoError(t, err)
	require.EqualValues(t, 2, updated.Version)

	got, err := s.Users().GetUserByEmail(ctx, "A@Biz.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.EqualValues(t, 2, got.Version)
	require.Equal(t, domain.DefaultPermissions(domain.RoleClient), got.Permissions)
	require.NotNil(t, got.OTP)
	require.Equal(t, "$argon2id$hash", got.OTP.CodeHash)
	require.Equal(t, 2, got.OTP.Attempts)
	require.True(t, got.OTP.ExpiresAt.Equal(t0.Add(5*time.Minute)))
	require.True(t, got.Security.LockUntil.Equal(lock))
	require.Equal(t, "10.0.0.1", got.Security.LastLoginIP)

	byHash, err := s.Users().GetUserByInvitationHash(ctx, "fingerprint")
	require.NoError(t, err)
	require.Equal(t, u.ID, byHash.ID)
	require.Equal(t, "sealed-token", byHash.Invitation.TokenSealed)

	_, err = s.Users().GetUserByInvitationHash(ctx, "")
	require.ErrorIs(t, err, store.ErrNotFound)

	m, err := s.Users().GetMembership(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "acme", m.Company.Alias)
	require.Equal(t, "small", m.Company.Metadata.Size)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := newStore(t)
	c := seedCompany(t, s, "Acme", "acme", domain.CompanyPending)
	seedUser(t, s, c.ID, "a@biz.com", domain.RoleClient, domain.UserPending, t0)

	err := s.Users().CreateUser(context.Background(), domain.User{
		ID: idx.New().String(), Email: "a@biz.com", Name: "Dup", Role: domain.RoleUser,
		CompanyID: c.ID, Status: domain.UserPending, CreatedAt: t0, UpdatedAt: t0,
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
	require.Contains(t, err.Error(), "users.email")
}

func TestUpdateUserStaleVersion(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	c := seedCompany(t, s, "Acme", "acme", domain.CompanyPending)
	u := seedUser(t, s, c.ID, "a@biz.com", domain.RoleClient, domain.UserPending, t0)

	first := u
	first.Name = "First"
	_, err := s.Users().UpdateUser(ctx, first)
	require.NoError(t, err)

	second := u
	second.Name = "Second"
	_, err = s.Users().UpdateUser(ctx, second)
	require.ErrorIs(t, err, store.ErrConflict)

	missing := u
	missing.ID = idx.New().String()
	_, err = s.Users().UpdateUser(ctx, missing)
	require.ErrorIs(t, err, store.ErrNotFound)

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "First", got.Name)
}

func TestListUsersPagination(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	c := seedCompany(t, s, "Acme", "acme", domain.CompanyApproved)
	other := seedCompany(t, s, "Other", "other", domain.CompanyApproved)

	for i, email := range []string{"a@biz.com", "b@biz.com", "c@biz.com"} {
		seedUser(t, s, c.ID, email, domain.RoleUser, domain.UserActive, t0.Add(time.Duration(i)*time.Minute))
	}
	seedUser(t, s, c.ID, "d@biz.com", domain.RoleUser, domain.UserPending, t0.Add(time.Hour))
	seedUser(t, s, other.ID, "x@other.com", domain.RoleUser, domain.UserActive, t0)

	users, total, err := s.Users().ListUsers(ctx, store.UserFilter{CompanyID: c.ID, Limit: 2})
	require.NoError(t, err)
	require.Equal(t, 4, total)
	require.Len(t, users, 2)
	require.Equal(t, "d@biz.com", users[0].Email)
	require.Equal(t, "c@biz.com", users[1].Email)

	users, total, err = s.Users().ListUsers(ctx, store.UserFilter{CompanyID: c.ID, Status: domain.UserActive, Offset: 2, Limit: 2})
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, users, 1)
	require.Equal(t, "a@biz.com", users[0].Email)

	counts, err := s.Users().CountUsersByStatus(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, 3, counts[domain.UserActive])
	require.Equal(t, 1, counts[domain.UserPending])
}

func TestSetCompanyUsersStatus(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	c := seedCompany(t, s, "Acme", "acme", domain.CompanyPending)
	pending := seedUser(t, s, c.ID, "p@biz.com", domain.RoleClient, domain.UserPending, t0)
	inactive := seedUser(t, s, c.ID, "i@biz.com", domain.RoleUser, domain.UserInactive, t0)

	n, err := s.Users().SetCompanyUsersStatus(ctx, c.ID, []domain.UserStatus{domain.UserPending}, domain.UserActive, t0)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	got, err := s.Users().GetUserByID(ctx, pending.ID)
	require.NoError(t, err)
	require.Equal(t, domain.UserActive, got.Status)
	require.EqualValues(t, 2, got.Version)

	got, err = s.Users().GetUserByID(ctx, inactive.ID)
	require.NoError(t, err)
	require.Equal(t, domain.UserInactive, got.Status)

	n, err = s.Users().SetCompanyUsersStatus(ctx, c.ID, nil, domain.UserInactive, t0)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)
}

func TestClearStaleOTPs(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	c := seedCompany(t, s, "Acme", "acme", domain.CompanyPending)

	stale := seedUser(t, s, c.ID, "s@biz.com", domain.RoleClient, domain.UserPending, t0)
	stale.OTP = &domain.OTP{CodeHash: "h", ExpiresAt: t0.Add(-time.Hour)}
	_, err := s.Users().UpdateUser(ctx, stale)
	require.NoError(t, err)

	fresh := seedUser(t, s, c.ID, "f@biz.com", domain.RoleClient, domain.UserPending, t0)
	fresh.OTP = &domain.OTP{CodeHash: "h", ExpiresAt: t0.Add(time.Hour)}
	_, err = s.Users().UpdateUser(ctx, fresh)
	require.NoError(t, err)

	n, err := s.Users().ClearStaleOTPs(ctx, t0)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	got, err := s.Users().GetUserByID(ctx, stale.ID)
	require.NoError(t, err)
	require.Nil(t, got.OTP)

	got, err = s.Users().GetUserByID(ctx, fresh.ID)
	require.NoError(t, err)
	require.NotNil(t, got.OTP)
}

func TestFirstUserByRoleAndCountAdmins(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	c := seedCompany(t, s, "Acme", "acme", domain.CompanyPending)
	seedUser(t, s, c.ID, "late@biz.com", domain.RoleClient, domain.UserPending, t0.Add(time.Hour))
	early := seedUser(t, s, c.ID, "early@biz.com", domain.RoleClient, domain.UserPending, t0)

	got, err := s.Users().FirstUserByRole(ctx, c.ID, domain.RoleClient)
	require.NoError(t, err)
	require.Equal(t, early.ID, got.ID)

	_, err = s.Users().FirstUserByRole(ctx, c.ID, domain.RoleCompanyAdmin)
	require.ErrorIs(t, err, store.ErrNotFound)

	n, err := s.Users().CountAdmins(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestCompanies(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	acme := seedCompany(t, s, "Acme", "acme", domain.CompanyPending)
	seedCompany(t, s, "Beta Corp", "beta-corp", domain.CompanyApproved)
	seedCompany(t, s, "Gamma", "gamma", domain.CompanyRejected)

	t.Run("unique name is case-insensitive", func(t *testing.T) {
		err := s.Companies().CreateCompany(ctx, domain.Company{
			ID: idx.New().String(), Name: "ACME", Alias: "acme-2", Status: domain.CompanyPending,
			Settings: domain.DefaultCompanySettings(), CreatedAt: t0, UpdatedAt: t0,
		})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("lookups", func(t *testing.T) {
		got, err := s.Companies().GetCompanyByName(ctx, "acme")
		require.NoError(t, err)
		require.Equal(t, acme.ID, got.ID)

		got, err = s.Companies().GetCompanyByAlias(ctx, "ACME")
		require.NoError(t, err)
		require.Equal(t, acme.ID, got.ID)
		require.True(t, got.Settings.NotificationPreferences.Incidents)

		_, err = s.Companies().GetCompanyByID(ctx, "missing")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("update", func(t *testing.T) {
		approvedAt := t0.Add(time.Hour)
		acme.Status = domain.CompanyApproved
		acme.ApprovedAt = &approvedAt
		acme.ApprovedBy = "admin-1"
		acme.Address = &domain.Address{City: "Pune", Country: "IN"}
		require.NoError(t, s.Companies().UpdateCompany(ctx, acme))

		got, err := s.Companies().GetCompanyByID(ctx, acme.ID)
		require.NoError(t, err)
		require.Equal(t, domain.CompanyApproved, got.Status)
		require.Equal(t, "admin-1", got.ApprovedBy)
		require.Equal(t, "Pune", got.Address.City)
		require.True(t, got.ApprovedAt.Equal(approvedAt))

		acme.Status = domain.CompanyPending
		acme.ApprovedAt = nil
		acme.ApprovedBy = ""
		require.NoError(t, s.Companies().UpdateCompany(ctx, acme))
	})

	t.Run("list with search and sort", func(t *testing.T) {
		list, total, err := s.Companies().ListCompanies(ctx, store.CompanyFilter{Search: "CORP"})
		require.NoError(t, err)
		require.Equal(t, 1, total)
		require.Equal(t, "beta-corp", list[0].Alias)

		list, total, err = s.Companies().ListCompanies(ctx, store.CompanyFilter{SortBy: "name", SortDesc: true, Limit: 2})
		require.NoError(t, err)
		require.Equal(t, 3, total)
		require.Len(t, list, 2)
		require.Equal(t, "Gamma", list[0].Name)
		require.Equal(t, "Beta Corp", list[1].Name)

		list, _, err = s.Companies().ListCompanies(ctx, store.CompanyFilter{Status: domain.CompanyPending})
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, acme.ID, list[0].ID)
	})

	t.Run("counts", func(t *testing.T) {
		counts, err := s.Companies().CountCompaniesByStatus(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, counts[domain.CompanyPending])
		require.Equal(t, 1, counts[domain.CompanyApproved])
		require.Equal(t, 1, counts[domain.CompanyRejected])
	})
}

func TestRevokedTokens(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	repo := s.RevokedTokens()

	tok := domain.RevokedToken{JTI: "jti-1", UserID: "u1", Reason: "rotated", ExpiresAt: t0.Add(time.Hour), CreatedAt: t0}
	first, err := repo.RevokeToken(ctx, tok)
	require.NoError(t, err)
	require.True(t, first)

	again, err := repo.RevokeToken(ctx, tok)
	require.NoError(t, err)
	require.False(t, again)

	revoked, err := repo.IsTokenRevoked(ctx, "jti-1", t0)
	require.NoError(t, err)
	require.True(t, revoked)

	revoked, err = repo.IsTokenRevoked(ctx, "jti-2", t0)
	require.NoError(t, err)
	require.False(t, revoked)

	n, err := repo.DeleteExpiredRevokedTokens(ctx, t0.Add(2*time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	c := seedCompany(t, s, "Acme", "acme", domain.CompanyPending)

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, domain.User{
			ID: idx.New().String(), Email: "tx@biz.com", Name: "Tx", Role: domain.RoleUser,
			CompanyID: c.ID, Status: domain.UserPending, CreatedAt: t0, UpdatedAt: t0,
		}); err != nil {
			return err
		}
		require.ErrorIs(t, tx.WithTx(ctx, func(store.Tx) error { return nil }), sql.ErrTxDone)
		return store.ErrConflict
	})
	require.ErrorIs(t, err, store.ErrConflict)

	_, err = s.Users().GetUserByEmail(ctx, "tx@biz.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}
