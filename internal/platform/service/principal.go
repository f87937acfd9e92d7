package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukti/platform/internal/platform/domain"
	"github.com/yukti/platform/internal/platform/store"
	"github.com/yukti/platform/pkg/httpx"
	"github.com/yukti/platform/pkg/jwtx"
)

// PrincipalResolver loads the token subject on every request, so role,
// permission and status changes apply before the token expires.
type PrincipalResolver struct {
	Store store.Store
}

var _ httpx.PrincipalResolver = (*PrincipalResolver)(nil)

func (r *PrincipalResolver) ResolvePrincipal(ctx context.Context, claims jwtx.Claims) (httpx.Principal, error) {
	u, err := r.Store.Users().GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return httpx.Principal{}, httpx.ErrPrincipalRejected
		}
		return httpx.Principal{}, fmt.Errorf("load principal: %w", err)
	}
	if !u.Status.CanAuthenticate() {
		return httpx.Principal{}, httpx.ErrPrincipalRejected
	}
	return httpx.Principal{
		UserID:      u.ID,
		Email:       u.Email,
		Role:        string(u.Role),
		CompanyID:   u.CompanyID,
		Permissions: u.Permissions,
	}, nil
}

// ActorFrom converts an authenticated principal into a service actor.
func ActorFrom(p httpx.Principal) Actor {
	return Actor{UserID: p.UserID, Email: p.Email, Role: domain.Role(p.Role), CompanyID: p.CompanyID}
}
