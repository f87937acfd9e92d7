//go:build e2e

package platform_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yukti/platform/pkg/platformsdk"
)

func TestOTPEndpointsAreRateLimited(t *testing.T) {
	env := setupPlatformWithEnv(t, nil)
	ctx := t.Context()

	var limited error
	for range 10 {
		_, err := env.Client.RequestOTP(ctx, "flood@yukti.io")
		require.Error(t, err)
		if platformsdk.IsStatus(err, http.StatusTooManyRequests) {
			limited = err
			break
		}
		requireUnauthorized(t, err)
	}
	require.Error(t, limited, "strict profile should trip within 10 requests")
	require.True(t, platformsdk.IsCode(limited, platformsdk.ErrorCodeRateLimitHit))

	// Buckets are keyed by address and email together.
	_, err := env.Client.RequestOTP(ctx, "other@yukti.io")
	requireUnauthorized(t, err)
}
