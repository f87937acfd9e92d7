package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukti/platform/internal/platform/store"
)

func TestErrorVariantsMatchSentinel(t *testing.T) {
	t.Parallel()

	err := Errorf(ErrAccountLocked, "Account is locked. Try again in %d minutes.", 5)
	require.ErrorIs(t, err, ErrAccountLocked)
	require.NotErrorIs(t, err, ErrAccountInactive)
	require.Equal(t, KindAuthentication, KindOf(err))

	wrapped := fmt.Errorf("login: %w", err)
	require.ErrorIs(t, wrapped, ErrAccountLocked)
	require.Equal(t, KindAuthentication, KindOf(wrapped))

	require.Equal(t, KindInternal, KindOf(errors.New("boom")))
	require.Equal(t, "rate_limit", KindRateLimit.String())
}

func TestMapWriteErr(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, mapWriteErr(fmt.Errorf("update: %w", store.ErrConflict)), ErrConcurrentUpdate)
	other := errors.New("disk full")
	require.Equal(t, other, mapWriteErr(other))
	require.Equal(t, "Internal error", clientMessage(other))
	require.Equal(t, ErrEmailTaken.Message, clientMessage(ErrEmailTaken))
}

func TestStaticSettingsDefaults(t *testing.T) {
	t.Parallel()

	var s StaticSettings
	require.Equal(t, DefaultOTPTTL, s.OTPTTL())
	require.Equal(t, DefaultMaxOTPAttempts, s.MaxOTPAttempts())

	s.SetMaxOTPAttempts(5)
	s.SetOTPTTL(time.Minute)
	require.Equal(t, 5, s.MaxOTPAttempts())
	require.Equal(t, time.Minute, s.OTPTTL())
}
