package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/yukti/platform/pkg/httpx"
	"github.com/yukti/platform/pkg/jwtx"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type resolverFunc func(ctx context.Context, c jwtx.Claims) (httpx.Principal, error)

func (f resolverFunc) ResolvePrincipal(ctx context.Context, c jwtx.Claims) (httpx.Principal, error) {
	return f(ctx, c)
}

func accessToken(t *testing.T, role string, perms ...string) string {
	t.Helper()
	s, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)
	tok, err := s.Sign(jwtx.NewClaims(jwtx.Identity{
		UserID: "u1", Email: "u1@biz.com", Role: role, CompanyID: "c1", Permissions: perms,
	}, jwtx.TypeAccess, "", time.Minute, time.Now()))
	require.NoError(t, err)
	return tok
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := httpx.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { order = append(order, "handler") }), mw("a"), mw("b"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"a", "b", "handler"}, order)
}

func TestAuthnMiddleware(t *testing.T) {
	v, err := jwtx.NewVerifierHS256(testSecret, jwtx.VerifyOptions{Type: jwtx.TypeAccess})
	require.NoError(t, err)

	status := "active"
	resolver := resolverFunc(func(_ context.Context, c jwtx.Claims) (httpx.Principal, error) {
		if status != "active" {
			return httpx.Principal{}, httpx.ErrPrincipalRejected
		}
		return httpx.Principal{UserID: c.Subject, Role: c.Role, Permissions: c.Permissions}, nil
	})

	var got httpx.Principal
	h := httpx.AuthnMiddleware(v, resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = httpx.PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tok := accessToken(t, "client", "user:read")

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "u1", got.UserID)
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.AddCookie(&http.Cookie{Name: httpx.AccessTokenCookie, Value: tok})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), `error="invalid_token"`)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("suspended user with valid token", func(t *testing.T) {
		status = "suspended"
		defer func() { status = "active" }()

		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var body httpx.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "unauthorized", body.Error)
	})
}

func TestAuthz(t *testing.T) {
	serve := func(mw httpx.Middleware, p *httpx.Principal) int {
		h := mw(okHandler())
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if p != nil {
			req = req.WithContext(httpx.ContextWithPrincipal(req.Context(), *p))
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	admin := &httpx.Principal{UserID: "a", Role: "admin", Permissions: []string{"company:approve", "admin:companies"}}
	client := &httpx.Principal{UserID: "c", Role: "client", Permissions: []string{"user:read"}}

	require.Equal(t, http.StatusOK, serve(httpx.RequireRoles("admin"), admin))
	require.Equal(t, http.StatusForbidden, serve(httpx.RequireRoles("admin"), client))
	require.Equal(t, http.StatusForbidden, serve(httpx.RequireRoles("admin"), nil))
	require.Equal(t, http.StatusOK, serve(httpx.RequireRoles("admin", "client"), client))

	require.Equal(t, http.StatusOK, serve(httpx.RequirePermissions("company:approve", "admin:companies"), admin))
	require.Equal(t, http.StatusForbidden, serve(httpx.RequirePermissions("user:read", "user:write"), client))
}

func TestMetricsMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := httpx.NewMetrics(reg, "platform")

	h := m.Middleware(func(*http.Request) string { return "GET /livez" })(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	for range 2 {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/livez", nil))
	}

	require.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("GET /livez", "GET", "202")))
	require.Equal(t, 1, testutil.CollectAndCount(m.Duration))
}

func TestDecodeJSON(t *testing.T) {
	var v struct{ Email string }
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	require.NoError(t, httpx.DecodeJSON(req, &v, true))
	require.Error(t, httpx.DecodeJSON(httptest.NewRequest(http.MethodPost, "/", nil), &v, false))

	err := httpx.DecodeJSON(httptest.NewRequest(http.MethodPost, "/", errReader{}), &v, false)
	require.Error(t, err)
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("boom") }
