//go:build e2e

package platform_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yukti/platform/pkg/platformsdk"
)

func TestBootstrapOnlyOnce(t *testing.T) {
	env := setupPlatform(t)
	ctx := t.Context()

	req := platformsdk.BootstrapRequest{CompanyName: "Yukti", AdminName: adminName, AdminEmail: adminEmail}

	_, err := env.Client.Bootstrap(ctx, "wrong-token", req)
	requireStatus(t, err, http.StatusForbidden, "wrong bootstrap token should be refused")

	admin := env.bootstrapAdmin(t)
	require.Equal(t, platformsdk.RoleAdmin, admin.Role())
	require.NotNil(t, admin.Company())
	require.Equal(t, "approved", admin.Company().Status)

	_, err = env.Client.Bootstrap(ctx, bootstrapToken, req)
	requireStatus(t, err, http.StatusConflict, "second bootstrap should conflict")

	me, err := admin.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, adminEmail, me.Email)
	require.Equal(t, platformsdk.RoleAdmin, me.Role)
}

func TestBootstrapDisabledWithoutToken(t *testing.T) {
	env := setupPlatformWithEnv(t, map[string]string{"BOOTSTRAP_TOKEN": ""})

	_, err := env.Client.Bootstrap(t.Context(), "anything", platformsdk.BootstrapRequest{
		CompanyName: "Yukti", AdminName: adminName, AdminEmail: adminEmail,
	})
	requireStatus(t, err, http.StatusNotFound)
}
