package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/yukti/platform/pkg/jwtx"
	"github.com/yukti/platform/pkg/slogx"
)

// AccessTokenCookie is the cookie browsers carry the access token in.
const AccessTokenCookie = "accessToken"

// ErrPrincipalRejected is returned by a PrincipalResolver when the subject
// exists but may not authenticate (inactive, suspended).
var ErrPrincipalRejected = errors.New("httpx: principal rejected")

// PrincipalResolver re-loads the token subject on every request so that a
// status change takes effect before the token expires.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, claims jwtx.Claims) (Principal, error)
}

// AuthnMiddleware accepts a bearer header or, failing that, the access token
// cookie. Any failure is a 401 with an RFC 6750 challenge.
func AuthnMiddleware(v jwtx.Verifier, resolver PrincipalResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw := ExtractAccessToken(r)
			if raw == "" {
				writeBearerError(w, "missing bearer token")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Debug("access token rejected", slog.Any("err", err))
				writeBearerError(w, "invalid or expired token")
				return
			}

			principal, err := resolver.ResolvePrincipal(ctx, claims)
			if err != nil {
				log.Info("principal rejected",
					slog.String("user_id", claims.Subject),
					slog.Any("err", err),
				)
				writeBearerError(w, "account is not active")
				return
			}

			ctx = context.WithValue(ctx, ctxKeyClaims, claims)
			ctx = ContextWithPrincipal(ctx, principal)
			ctx = slogx.WithContext(ctx, log.With(slog.String("user_id", principal.UserID)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ExtractAccessToken returns the bearer token, or the cookie value when no
// Authorization header is present.
func ExtractAccessToken(r *http.Request) string {
	if authz := r.Header.Get("Authorization"); authz != "" {
		scheme, token, ok := strings.Cut(authz, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return ""
		}
		return strings.TrimSpace(token)
	}
	if c, err := r.Cookie(AccessTokenCookie); err == nil {
		return c.Value
	}
	return ""
}

func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, "unauthorized", desc)
}
