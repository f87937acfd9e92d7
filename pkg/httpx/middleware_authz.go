package httpx

import (
	"net/http"
	"strings"
)

// RequireRoles admits callers whose role is in the allow-list.
func RequireRoles(roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok || !p.HasRole(roles...) {
				writeForbidden(w, "requires role: "+strings.Join(roles, " or "))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequirePermissions admits callers holding every listed permission.
func RequirePermissions(perms ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				writeForbidden(w, "insufficient permissions")
				return
			}
			for _, perm := range perms {
				if !p.HasPermission(perm) {
					writeForbidden(w, "missing permission: "+perm)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeForbidden(w http.ResponseWriter, desc string) {
	WriteError(w, http.StatusForbidden, "forbidden", desc)
}
