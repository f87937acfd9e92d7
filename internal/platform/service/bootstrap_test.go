package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukti/platform/internal/platform/domain"
)

func TestBootstrap(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	svc := &BootstrapService{Store: f.store, Token: "s3cret", Now: f.clock.Now}
	in := BootstrapInput{CompanyName: "Yukti Ops", AdminName: "Root", AdminEmail: "Root@Ops.com"}

	_, err := svc.Bootstrap(ctx, "wrong", in)
	require.ErrorIs(t, err, ErrBootstrapUnauthorized)

	disabled := &BootstrapService{Store: f.store}
	_, err = disabled.Bootstrap(ctx, "", in)
	require.ErrorIs(t, err, ErrBootstrapUnauthorized)

	ok, err := svc.IsBootstrapped(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	res, err := svc.Bootstrap(ctx, "s3cret", in)
	require.NoError(t, err)

	admin := f.user(t, res.UserID)
	require.Equal(t, domain.RoleAdmin, admin.Role)
	require.Equal(t, domain.UserActive, admin.Status)
	require.Equal(t, "root@ops.com", admin.Email)
	require.Len(t, admin.Permissions, len(domain.AllPermissions))

	company, err := f.store.Companies().GetCompanyByID(ctx, res.CompanyID)
	require.NoError(t, err)
	require.Equal(t, domain.CompanyApproved, company.Status)
	require.Equal(t, "yukti-ops", company.Alias)

	_, err = svc.Bootstrap(ctx, "s3cret", in)
	require.ErrorIs(t, err, ErrAlreadyBootstrapped)

	// the new admin can log in straight away
	sess := f.login(t, "root@ops.com")
	require.Equal(t, domain.RoleAdmin, sess.User.Role)
}
