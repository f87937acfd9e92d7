package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/yukti/platform/internal/platform/domain"
	"github.com/yukti/platform/internal/platform/notify"
	"github.com/yukti/platform/internal/platform/service"
	"github.com/yukti/platform/internal/platform/store/drivers/sqlite"
	"github.com/yukti/platform/pkg/cryptox"
	"github.com/yukti/platform/pkg/idx"
	"github.com/yukti/platform/pkg/jwtx"
	"github.com/yukti/platform/pkg/slogx"
)

const (
	testIssuer    = "yukti-platform"
	dashboardBase = "https://app.example.com/dashboard"
	bootstrapKey  = "bootstrap-secret"
)

type testEnv struct {
	router *Router
	store  *sqlite.Store
	rec    *notify.Recorder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cryptox.SetPepper("http-test-pepper")

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	accessSecret := []byte("access-secret-for-tests-0123456789")
	refreshSecret := []byte("refresh-secret-for-tests-012345678")
	accessSigner, err := jwtx.NewSignerHS256(accessSecret)
	require.NoError(t, err)
	refreshSigner, err := jwtx.NewSignerHS256(refreshSecret)
	require.NoError(t, err)
	accessVerifier, err := jwtx.NewVerifierHS256(accessSecret, jwtx.VerifyOptions{Issuer: testIssuer, Type: jwtx.TypeAccess})
	require.NoError(t, err)
	refreshVerifier, err := jwtx.NewVerifierHS256(refreshSecret, jwtx.VerifyOptions{Issuer: testIssuer, Type: jwtx.TypeRefresh})
	require.NoError(t, err)

	rec := notify.NewRecorder()
	settings := service.NewStaticSettings(10*time.Minute, 3, 15*time.Minute, 7*24*time.Hour)
	reg := prometheus.NewRegistry()
	metrics := service.NewMetrics(reg, "platform")
	tokens := &service.TokenService{
		Store:           st,
		Settings:        settings,
		Issuer:          testIssuer,
		Metrics:         metrics,
		AccessSigner:    accessSigner,
		RefreshSigner:   refreshSigner,
		AccessVerifier:  accessVerifier,
		RefreshVerifier: refreshVerifier,
	}

	r := NewRouter(accessVerifier, "test", st, reg, slogx.Discard())
	r.Cookies = CookieConfig{Secure: true, Settings: settings}
	r.AuthService = &service.AuthService{
		Store:            st,
		Tokens:           tokens,
		Notifier:         rec,
		Settings:         settings,
		Metrics:          metrics,
		DashboardBaseURL: dashboardBase,
	}
	r.InviteService = &service.InviteService{
		Store:            st,
		Tokens:           tokens,
		Notifier:         rec,
		Settings:         settings,
		Metrics:          metrics,
		FrontendURL:      "https://app.example.com",
		DashboardBaseURL: dashboardBase,
	}
	r.UserService = &service.UserService{Store: st}
	r.CompanyService = &service.CompanyService{Store: st, Notifier: rec, Metrics: metrics, DashboardBaseURL: dashboardBase}
	r.DashboardService = &service.DashboardService{Store: st, DashboardBaseURL: dashboardBase}
	r.BootstrapService = &service.BootstrapService{Store: st, Token: bootstrapKey}
	r.ApplyRoutes()

	return &testEnv{router: r, store: st, rec: rec}
}

type request struct {
	method  string
	path    string
	body    any
	token   string
	cookies []*http.Cookie
	header  map[string]string
}

func (e *testEnv) do(t *testing.T, req request) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if req.body != nil {
		raw, err := json.Marshal(req.body)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	r := httptest.NewRequest(req.method, req.path, body)
	r.Header.Set("Content-Type", "application/json")
	if req.token != "" {
		r.Header.Set("Authorization", "Bearer "+req.token)
	}
	for _, c := range req.cookies {
		r.AddCookie(c)
	}
	for k, v := range req.header {
		r.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, r)
	return w
}

func decodeAs[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (e *testEnv) seedCompany(t *testing.T, name, alias string, status domain.CompanyStatus) domain.Company {
	t.Helper()
	now := time.Now().UTC()
	c := domain.Company{
		ID:               idx.New().String(),
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
	require.NoError(t, e.store.Companies().CreateCompany(context.Background(), c))
	return c
}

func (e *testEnv) seedUser(t *testing.T, companyID, email string, role domain.Role, status domain.UserStatus) domain.User {
	t.Helper()
	now := time.Now().UTC()
	u := domain.User{
		ID:          idx.New().String(),
		Email:       email,
		Name:        "Test User",
		Role:        role,
		CompanyID:   companyID,
		Status:      status,
		Permissions: domain.DefaultPermissions(role),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, e.store.Users().CreateUser(context.Background(), u))
	return u
}

// login drives /auth/login and /auth/verify-otp and returns the response.
func (e *testEnv) login(t *testing.T, email string) (tokenResponse, *httptest.ResponseRecorder) {
	t.Helper()
	w := e.do(t, request{method: http.MethodPost, path: "/auth/login", body: map[string]string{"email": email}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = e.do(t, request{method: http.MethodPost, path: "/auth/verify-otp", body: map[string]string{
		"email": email,
		"otp":   e.rec.LastOTP(email),
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeAs[tokenResponse](t, w), w
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestHealthEndpoints(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, request{method: http.MethodGet, path: "/livez"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"status":"ok"`)

	w = e.do(t, request{method: http.MethodGet, path: "/readyz"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"database":"ok"`)

	require.NoError(t, e.store.Close())
	w = e.do(t, request{method: http.MethodGet, path: "/readyz"})
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.Contains(t, w.Body.String(), `"status":"degraded"`)
}

func TestMetricsEndpointRecordsRoutePattern(t *testing.T) {
	e := newTestEnv(t)

	e.do(t, request{method: http.MethodGet, path: "/livez"})
	w := e.do(t, request{method: http.MethodGet, path: "/metrics"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `platform_http_requests_total{code="200",method="GET",route="GET /livez"} 1`)
}

func TestUnknownRoute(t *testing.T) {
	e := newTestEnv(t)
	w := e.do(t, request{method: http.MethodGet, path: "/nope"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSwaggerIsMounted(t *testing.T) {
	e := newTestEnv(t)
	w := e.do(t, request{method: http.MethodGet, path: "/swagger/doc.json"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Yukti Platform API")
}

func TestBootstrapEndpoint(t *testing.T) {
	e := newTestEnv(t)
	body := map[string]string{
		"companyName": "Yukti Ops",
		"adminName":   "Root Admin",
		"adminEmail":  "root@yukti-ops.com",
	}

	w := e.do(t, request{method: http.MethodPost, path: "/bootstrap", body: body})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = e.do(t, request{method: http.MethodPost, path: "/bootstrap", body: body, header: map[string]string{"X-Bootstrap-Token": "wrong"}})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(t, request{method: http.MethodPost, path: "/bootstrap", body: body, header: map[string]string{"X-Bootstrap-Token": bootstrapKey}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	res := decodeAs[service.BootstrapResult](t, w)
	require.NotEmpty(t, res.UserID)

	w = e.do(t, request{method: http.MethodPost, path: "/bootstrap", body: body, header: map[string]string{"X-Bootstrap-Token": bootstrapKey}})
	require.Equal(t, http.StatusConflict, w.Code)

	// The bootstrapped admin can log in straight away.
	tok, _ := e.login(t, "root@yukti-ops.com")
	require.Equal(t, domain.RoleAdmin, tok.User.Role)
}

func TestBootstrapDisabledWithoutToken(t *testing.T) {
	e := newTestEnv(t)
	e.router.BootstrapService.Token = ""

	w := e.do(t, request{method: http.MethodPost, path: "/bootstrap", body: map[string]string{}})
	require.Equal(t, http.StatusNotFound, w.Code)
}
