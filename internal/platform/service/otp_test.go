package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukti/platform/internal/platform/domain"
)

func fixedCode(code string) CodeGenerator {
	return func() (string, error) { return code, nil }
}

func TestCheckOTPLadder(t *testing.T) {
	t.Parallel()
	now := t0

	var u domain.User
	require.ErrorIs(t, checkOTP(&u, "123456", now, 3), ErrNoValidOTP)

	code, err := issueOTP(&u, fixedCode("123456"), now, 10*time.Minute)
	require.NoError(t, err)
	require.Equal(t, "123456", code)
	require.NotContains(t, u.OTP.CodeHash, "123456")

	require.ErrorIs(t, checkOTP(&u, "654321", now, 3), ErrInvalidOTP)
	require.Equal(t, 1, u.OTP.Attempts)
	require.ErrorIs(t, checkOTP(&u, "12345", now, 3), ErrInvalidOTP)
	require.Equal(t, 2, u.OTP.Attempts)

	require.NoError(t, checkOTP(&u, "123456", now, 3))

	require.ErrorIs(t, checkOTP(&u, "123456", now.Add(11*time.Minute), 3), ErrOTPExpired)

	u.OTP.Attempts = 3
	require.ErrorIs(t, checkOTP(&u, "123456", now, 3), ErrMaxOTPAttempts)

	u.OTP.Verified = true
	require.ErrorIs(t, checkOTP(&u, "123456", now, 3), ErrNoValidOTP)
	require.ErrorIs(t, checkOTPUniform(&u, "123456", now, 3), ErrInvalidOrExpiredOTP)
}

func TestDefaultCodeGenerator(t *testing.T) {
	t.Parallel()

	for i := 0; i < 50; i++ {
		code, err := DefaultCodeGenerator()
		require.NoError(t, err)
		require.Len(t, code, 6)
		require.NotEqual(t, byte('0'), code[0])
	}
}

func TestOTPWindow(t *testing.T) {
	t.Parallel()
	now := t0

	var u domain.User
	require.True(t, otpWindow(&u, now, 15*time.Minute, 3))

	last := now.Add(-time.Minute)
	u.Security.LastOTPRequest = &last
	u.Security.OTPRequestCount = 3
	require.False(t, otpWindow(&u, now, 15*time.Minute, 3))
	require.Equal(t, 3, u.Security.OTPRequestCount)

	require.True(t, otpWindow(&u, now.Add(15*time.Minute), 15*time.Minute, 3))
	require.Zero(t, u.Security.OTPRequestCount)
}

func TestOTPStateRestore(t *testing.T) {
	t.Parallel()

	var u domain.User
	_, err := issueOTP(&u, fixedCode("111111"), t0, time.Minute)
	require.NoError(t, err)
	u.Security.OTPRequestCount = 1
	st := captureOTPState(&u)

	_, err = issueOTP(&u, fixedCode("222222"), t0, time.Minute)
	require.NoError(t, err)
	u.OTP.Attempts = 2
	u.Security.OTPRequestCount = 2

	st.restore(&u)
	require.Equal(t, 1, u.Security.OTPRequestCount)
	require.Zero(t, u.OTP.Attempts)
	require.NoError(t, checkOTP(&u, "111111", t0, 3))
}
