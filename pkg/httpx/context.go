package httpx

import (
	"context"

	"github.com/yukti/platform/pkg/jwtx"
)

type ctxKey string

const (
	ctxKeyPrincipal ctxKey = "principal"
	ctxKeyClaims    ctxKey = "claims"
)

// Principal is the authenticated caller, as resolved from live user state
// rather than from the token payload.
type Principal struct {
	UserID      string
	Email       string
	Role        string
	CompanyID   string
	Permissions []string
}

func (p Principal) HasRole(roles ...string) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

func (p Principal) HasPermission(perm string) bool {
	for _, have := range p.Permissions {
		if have == perm {
			return true
		}
	}
	return false
}

func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKeyPrincipal, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKeyPrincipal).(Principal)
	return p, ok
}

func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(ctxKeyClaims).(jwtx.Claims)
	return c, ok
}
