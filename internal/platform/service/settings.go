package service

import (
	"sync"
	"time"

	"github.com/yukti/platform/pkg/jwtx"
)

const (
	DefaultOTPTTL         = 10 * time.Minute
	DefaultMaxOTPAttempts = 3
	InvitationTTL         = 7 * 24 * time.Hour

	loginWindow     = 15 * time.Minute
	loginWindowMax  = 3
	resendWindow    = time.Hour
	resendWindowMax = 5

	// A code with more validity than this left is not replaced on resend.
	resendMinRemaining = 240 * time.Second
)

// Settings are consulted on every call, so a provider backed by live
// configuration takes effect without a restart.
type Settings interface {
	OTPTTL() time.Duration
	MaxOTPAttempts() int
	AccessTokenTTL() time.Duration
	RefreshTokenTTL() time.Duration
}

// StaticSettings is a fixed Settings value. Zero fields fall back to defaults.
type StaticSettings struct {
	mu         sync.RWMutex
	otpTTL     time.Duration
	maxAttempt int
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewStaticSettings(otpTTL time.Duration, maxAttempts int, accessTTL, refreshTTL time.Duration) *StaticSettings {
	return &StaticSettings{otpTTL: otpTTL, maxAttempt: maxAttempts, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func (s *StaticSettings) OTPTTL() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.otpTTL <= 0 {
		return DefaultOTPTTL
	}
	return s.otpTTL
}

func (s *StaticSettings) MaxOTPAttempts() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.maxAttempt <= 0 {
		return DefaultMaxOTPAttempts
	}
	return s.maxAttempt
}

func (s *StaticSettings) AccessTokenTTL() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.accessTTL <= 0 {
		return jwtx.DefaultAccessTokenTTL
	}
	return s.accessTTL
}

func (s *StaticSettings) RefreshTokenTTL() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.refreshTTL <= 0 {
		return jwtx.DefaultRefreshTokenTTL
	}
	return s.refreshTTL
}

// SetOTPTTL changes the TTL for codes issued from now on.
func (s *StaticSettings) SetOTPTTL(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.otpTTL = d
}

func (s *StaticSettings) SetMaxOTPAttempts(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxAttempt = n
}

func settingsOrDefault(s Settings) Settings {
	if s == nil {
		return &StaticSettings{}
	}
	return s
}

func nowOr(now func() time.Time) time.Time {
	if now == nil {
		return time.Now().UTC()
	}
	return now().UTC()
}
