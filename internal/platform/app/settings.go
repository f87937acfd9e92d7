package app

import (
	"time"

	"github.com/spf13/viper"

	"github.com/yukti/platform/internal/platform/service"
	"github.com/yukti/platform/pkg/jwtx"
)

// viperSettings resolves lifetimes on every call so that a changed
// environment or a reloaded config file applies to the next request.
type viperSettings struct {
	v *viper.Viper
}

var _ service.Settings = viperSettings{}

func NewViperSettings(v *viper.Viper) service.Settings {
	return viperSettings{v: v}
}

func (s viperSettings) OTPTTL() time.Duration {
	if n := s.v.GetInt("otp_expiry_minutes"); n > 0 {
		return time.Duration(n) * time.Minute
	}
	return service.DefaultOTPTTL
}

func (s viperSettings) MaxOTPAttempts() int {
	if n := s.v.GetInt("max_otp_attempts"); n > 0 {
		return n
	}
	return service.DefaultMaxOTPAttempts
}

func (s viperSettings) AccessTokenTTL() time.Duration {
	if d := s.v.GetDuration("jwt_expiration"); d > 0 {
		return d
	}
	return jwtx.DefaultAccessTokenTTL
}

func (s viperSettings) RefreshTokenTTL() time.Duration {
	if d := s.v.GetDuration("jwt_refresh_expiration"); d > 0 {
		return d
	}
	return jwtx.DefaultRefreshTokenTTL
}
