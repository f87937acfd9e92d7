package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukti/platform/internal/platform/domain"
	"github.com/yukti/platform/internal/platform/notify"
	"github.com/yukti/platform/internal/platform/store/drivers/sqlite"
	"github.com/yukti/platform/pkg/cryptox"
	"github.com/yukti/platform/pkg/idx"
	"github.com/yukti/platform/pkg/jwtx"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// sequentialCodes hands out 100001, 100002, ... so each issuance differs.
func sequentialCodes() CodeGenerator {
	var mu sync.Mutex
	n := 100000
	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%06d", n), nil
	}
}

func sequentialTokens() TokenGenerator {
	var mu sync.Mutex
	n := 0
	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("invite-token-%03d", n), nil
	}
}

type fixture struct {
	store    *sqlite.Store
	clock    *fakeClock
	rec      *notify.Recorder
	settings *StaticSettings

	tokens    *TokenService
	auth      *AuthService
	invites   *InviteService
	users     *UserService
	companies *CompanyService
	dashboard *DashboardService
	resolver  *PrincipalResolver
}

const dashboardBase = "https://app.example.com/dashboard"

func newFixture(t *testing.T) *fixture {
	t.Helper()
	// Invitation tokens are sealed under the pepper.
	cryptox.SetPepper("service-test-pepper")

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	clock := &fakeClock{now: t0}
	rec := notify.NewRecorder()
	settings := NewStaticSettings(10*time.Minute, 3, 15*time.Minute, 7*24*time.Hour)

	accessSecret := []byte("access-secret-for-tests-0123456789")
	refreshSecret := []byte("refresh-secret-for-tests-012345678")
	accessSigner, err := jwtx.NewSignerHS256(accessSecret)
	require.NoError(t, err)
	refreshSigner, err := jwtx.NewSignerHS256(refreshSecret)
	require.NoError(t, err)
	accessVerifier, err := jwtx.NewVerifierHS256(accessSecret, jwtx.VerifyOptions{
		Issuer: "yukti-platform", Type: jwtx.TypeAccess, Now: clock.Now,
	})
	require.NoError(t, err)
	refreshVerifier, err := jwtx.NewVerifierHS256(refreshSecret, jwtx.VerifyOptions{
		Issuer: "yukti-platform", Type: jwtx.TypeRefresh, Now: clock.Now,
	})
	require.NoError(t, err)

	tokens := &TokenService{
		Store:           st,
		Settings:        settings,
		Issuer:          "yukti-platform",
		Now:             clock.Now,
		AccessSigner:    accessSigner,
		RefreshSigner:   refreshSigner,
		AccessVerifier:  accessVerifier,
		RefreshVerifier: refreshVerifier,
	}
	codes := sequentialCodes()

	return &fixture{
		store:    st,
		clock:    clock,
		rec:      rec,
		settings: settings,
		tokens:   tokens,
		auth: &AuthService{
			Store:            st,
			Tokens:           tokens,
			Notifier:         rec,
			Settings:         settings,
			GenerateCode:     codes,
			Now:              clock.Now,
			DashboardBaseURL: dashboardBase,
		},
		invites: &InviteService{
			Store:            st,
			Tokens:           tokens,
			Notifier:         rec,
			Settings:         settings,
			GenerateCode:     codes,
			GenerateToken:    sequentialTokens(),
			Now:              clock.Now,
			FrontendURL:      "https://app.example.com",
			DashboardBaseURL: dashboardBase,
		},
		users: &UserService{Store: st, Now: clock.Now},
		companies: &CompanyService{
			Store:            st,
			Notifier:         rec,
			Now:              clock.Now,
			DashboardBaseURL: dashboardBase,
		},
		dashboard: &DashboardService{Store: st, DashboardBaseURL: dashboardBase},
		resolver:  &PrincipalResolver{Store: st},
	}
}

func (f *fixture) seedCompany(t *testing.T, name, alias string, status domain.CompanyStatus) domain.Company {
	t.Helper()
	now := f.clock.Now()
	c := domain.Company{
		ID:               idx.NewAt(now).String(),
		Name:             name,
		Alias:            alias,
		BusinessEmail:    "ops@" + alias + ".com",
		Timezone:         "UTC",
		Status:           status,
		SubscriptionPlan: "free",
		Settings:         domain.DefaultCompanySettings(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	require.NoError(t, f.store.Companies().CreateCompany(context.Background(), c))
	return c
}

// seedUser creates a user whose created_at is offset from the clock so
// ordering by creation is deterministic.
func (f *fixture) seedUser(t *testing.T, companyID, email string, role domain.Role, status domain.UserStatus, offset time.Duration) domain.User {
	t.Helper()
	created := f.clock.Now().Add(offset)
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
	require.NoError(t, f.store.Users().CreateUser(context.Background(), u))
	u.Version = 1
	return u
}

func (f *fixture) user(t *testing.T, id string) domain.User {
	t.Helper()
	u, err := f.store.Users().GetUserByID(context.Background(), id)
	require.NoError(t, err)
	return u
}

// login runs the full OTP flow and returns the session.
func (f *fixture) login(t *testing.T, email string) Session {
	t.Helper()
	ctx := context.Background()
	_, err := f.auth.RequestOTP(ctx, email, ClientInfo{IP: "203.0.113.7", UserAgent: "test"})
	require.NoError(t, err)
	sess, err := f.auth.VerifyOTP(ctx, email, f.rec.LastOTP(email))
	require.NoError(t, err)
	return sess
}

func actorOf(u domain.User) Actor {
	return Actor{UserID: u.ID, Email: u.Email, Role: u.Role, CompanyID: u.CompanyID}
}
