package http

import (
	"net/http"

	"github.com/yukti/platform/internal/platform/domain"
	"github.com/yukti/platform/internal/platform/service"
	"github.com/yukti/platform/pkg/httpx"
)

// RefreshTokenCookie carries the refresh token for browser clients.
const RefreshTokenCookie = "refreshToken"

// CookieConfig controls the token cookies set on login, invitation
// acceptance and refresh.
type CookieConfig struct {
	Secure   bool
	Settings service.Settings
}

func (c CookieConfig) settings() service.Settings {
	if c.Settings == nil {
		return service.NewStaticSettings(0, 0, 0, 0)
	}
	return c.Settings
}

func (c CookieConfig) tokenCookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// SetTokens writes both token cookies with lifetimes equal to the token TTLs.
func (c CookieConfig) SetTokens(w http.ResponseWriter, pair domain.TokenPair) {
	s := c.settings()
	http.SetCookie(w, c.tokenCookie(httpx.AccessTokenCookie, pair.AccessToken, int(s.AccessTokenTTL().Seconds())))
	http.SetCookie(w, c.tokenCookie(RefreshTokenCookie, pair.RefreshToken, int(s.RefreshTokenTTL().Seconds())))
}

// Clear expires both token cookies.
func (c CookieConfig) Clear(w http.ResponseWriter) {
	http.SetCookie(w, c.tokenCookie(httpx.AccessTokenCookie, "", -1))
	http.SetCookie(w, c.tokenCookie(RefreshTokenCookie, "", -1))
}

// refreshTokenFrom prefers the cookie over the body value.
func refreshTokenFrom(r *http.Request, body string) string {
	if ck, err := r.Cookie(RefreshTokenCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	return body
}
