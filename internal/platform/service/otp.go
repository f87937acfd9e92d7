package service

import (
	"fmt"
	"time"

	"github.com/pquerna/otp"
	"github.com/yukti/platform/internal/platform/domain"
	"github.com/yukti/platform/pkg/cryptox"
)

// OTPDigits is the length of every one-time code.
const OTPDigits = otp.DigitsSix

// CodeGenerator produces a fresh one-time code. Tests substitute a
// deterministic one.
type CodeGenerator func() (string, error)

func DefaultCodeGenerator() (string, error) {
	return cryptox.GenerateNumericCode(OTPDigits)
}

func generateOr(gen CodeGenerator) (string, error) {
	if gen == nil {
		gen = DefaultCodeGenerator
	}
	return gen()
}

// issueOTP replaces the user's OTP slot with a new code valid for ttl and
// returns the plaintext code for delivery.
func issueOTP(u *domain.User, gen CodeGenerator, now time.Time, ttl time.Duration) (string, error) {
	code, err := generateOr(gen)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	hash, err := cryptox.HashSecret(code)
	if err != nil {
		return "", fmt.Errorf("hash otp: %w", err)
	}
	u.OTP = &domain.OTP{
		CodeHash:  hash,
		ExpiresAt: now.Add(ttl),
		Attempts:  0,
		Verified:  false,
	}
	return code, nil
}

// checkOTP applies the verification ladder to the user's slot. On a wrong
// code the attempt counter is incremented in u and ErrInvalidOTP returned;
// the caller persists u either way.
func checkOTP(u *domain.User, code string, now time.Time, maxAttempts int) error {
	if !u.OTP.Pending() {
		return ErrNoValidOTP
	}
	if u.OTP.Expired(now) {
		return ErrOTPExpired
	}
	if u.OTP.Attempts >= maxAttempts {
		return ErrMaxOTPAttempts
	}
	if !codeMatches(code, u.OTP.CodeHash) {
		u.OTP.Attempts++
		return ErrInvalidOTP
	}
	return nil
}

// checkOTPUniform is checkOTP for flows that report every failure as
// ErrInvalidOrExpiredOTP. Wrong codes still count against the cap.
func checkOTPUniform(u *domain.User, code string, now time.Time, maxAttempts int) error {
	if err := checkOTP(u, code, now, maxAttempts); err != nil {
		return ErrInvalidOrExpiredOTP
	}
	return nil
}

func codeMatches(code, hash string) bool {
	if !cryptox.ValidNumericCode(code, OTPDigits) {
		return false
	}
	err := cryptox.VerifySecret(code, hash)
	return err == nil
}

// otpState is the part of a user that OTP issuance touches, kept so a failed
// delivery can put it back.
type otpState struct {
	otp             *domain.OTP
	lastOTPRequest  *time.Time
	otpRequestCount int
	lastLoginIP     string
	lastUserAgent   string
}

func captureOTPState(u *domain.User) otpState {
	st := otpState{
		lastOTPRequest:  u.Security.LastOTPRequest,
		otpRequestCount: u.Security.OTPRequestCount,
		lastLoginIP:     u.Security.LastLoginIP,
		lastUserAgent:   u.Security.LastUserAgent,
	}
	if u.OTP != nil {
		cp := *u.OTP
		st.otp = &cp
	}
	return st
}

func (st otpState) restore(u *domain.User) {
	u.OTP = st.otp
	u.Security.LastOTPRequest = st.lastOTPRequest
	u.Security.OTPRequestCount = st.otpRequestCount
	u.Security.LastLoginIP = st.lastLoginIP
	u.Security.LastUserAgent = st.lastUserAgent
}

// otpWindow enforces a sliding request window on the user's OTP counter. It
// resets the counter when the window has elapsed and reports whether another
// request is allowed.
func otpWindow(u *domain.User, now time.Time, window time.Duration, max int) bool {
	last := u.Security.LastOTPRequest
	if last != nil && last.After(now.Add(-window)) {
		return u.Security.OTPRequestCount < max
	}
	u.Security.OTPRequestCount = 0
	return true
}
