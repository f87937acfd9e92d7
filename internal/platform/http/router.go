package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/yukti/platform/api/platform" // Swagger docs
	"github.com/yukti/platform/internal/platform/domain"
	"github.com/yukti/platform/internal/platform/service"
	"github.com/yukti/platform/internal/platform/store"
	"github.com/yukti/platform/pkg/httpx"
	"github.com/yukti/platform/pkg/jwtx"
	"github.com/yukti/platform/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	resolver     httpx.PrincipalResolver
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	gatherer     prometheus.Gatherer

	store            store.Store
	Cookies          CookieConfig
	AuthService      *service.AuthService
	InviteService    *service.InviteService
	UserService      *service.UserService
	CompanyService   *service.CompanyService
	DashboardService *service.DashboardService
	BootstrapService *service.BootstrapService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	reg *prometheus.Registry,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		resolver:     &service.PrincipalResolver{Store: st},
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		gatherer:     reg,
	}

	// The metrics middleware sits inside the logger so that it sees the
	// request value ServeMux stamps with the matched pattern.
	metrics := httpx.NewMetrics(reg, "platform")
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		metrics.Middleware(func(req *http.Request) string { return req.Pattern }),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerInvites()
	r.registerUsers()
	r.registerCompanies()
	r.registerDashboard()
	r.registerSystem()
	r.registerBootstrap()

	r.Mux.Handle("/swagger/",
		httpx.Chain(httpSwagger.Handler(), httpx.RateLimitByIP(httpx.PublicLimit)),
	)
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title						Yukti Platform API
//	@version					0.1.0
//	@description				Multi-tenant onboarding and passwordless authentication for the Yukti platform.
//	@description
//	@description				Users log in with emailed one-time codes. Access and refresh tokens are HS256 JWTs, returned in the body and as HttpOnly cookies.
//
//	@contact.name				Yukti Platform Team
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authenticated prefixes mws with token verification and live principal
// resolution.
func (r *Router) authenticated(h http.Handler, mws ...httpx.Middleware) http.Handler {
	return httpx.Chain(h, append([]httpx.Middleware{httpx.AuthnMiddleware(r.verifier, r.resolver)}, mws...)...)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService, Cookies: r.Cookies}

	// Code requests and verification - strict rate limit by IP + email
	otpLimited := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"))
	}
	r.Mux.Handle("POST /auth/signup", otpLimited(h.HandleSignup))
	r.Mux.Handle("POST /auth/login", otpLimited(h.HandleLogin))
	r.Mux.Handle("POST /auth/verify-otp", otpLimited(h.HandleVerifyOTP))
	r.Mux.Handle("POST /auth/verify-signup", otpLimited(h.HandleVerifyOTP))
	r.Mux.Handle("POST /auth/resend-otp", otpLimited(h.HandleResendOTP))
	r.Mux.Handle("POST /auth/resend-signup-otp", otpLimited(h.HandleResendOTP))

	// Token endpoints - moderate rate limit by IP
	r.Mux.Handle("POST /auth/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh), httpx.RateLimitByIP(httpx.ModerateLimit)),
	)
	r.Mux.Handle("POST /auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout), httpx.RateLimitByIP(httpx.ModerateLimit)),
	)
	r.Mux.Handle("POST /auth/verify-token",
		httpx.Chain(http.HandlerFunc(h.HandleVerifyToken), httpx.RateLimitByIP(httpx.LenientLimit)),
	)

	r.Mux.Handle("GET /auth/me",
		r.authenticated(http.HandlerFunc(h.HandleMe), httpx.RateLimitByUser(httpx.LenientLimit)),
	)
	// Confirms an OTP, so strict
	r.Mux.Handle("POST /auth/change-email",
		r.authenticated(http.HandlerFunc(h.HandleChangeEmail), httpx.RateLimitByUser(httpx.StrictLimit)),
	)
}

func (r *Router) registerInvites() {
	h := &InviteHandler{InviteService: r.InviteService, Cookies: r.Cookies}

	inviters := func(fn http.HandlerFunc) http.Handler {
		return r.authenticated(fn,
			httpx.RequireRoles(string(domain.RoleAdmin), string(domain.RoleCompanyAdmin)),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}
	r.Mux.Handle("POST /auth/invite", inviters(h.HandleInvite))
	r.Mux.Handle("POST /auth/invite/bulk", inviters(h.HandleBulkInvite))
	r.Mux.Handle("POST /auth/invite/resend", inviters(h.HandleResendInvitation))

	// Public acceptance - strict rate limit by IP + invitation token
	r.Mux.Handle("POST /auth/accept-invitation",
		httpx.Chain(http.HandlerFunc(h.HandleAcceptInvitation),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "token"),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	r.Mux.Handle("GET /auth/users",
		r.authenticated(http.HandlerFunc(h.HandleList), httpx.RateLimitByUser(httpx.LenientLimit)),
	)

	moderate := func(fn http.HandlerFunc) http.Handler {
		return r.authenticated(fn, httpx.RateLimitByUser(httpx.ModerateLimit))
	}
	r.Mux.Handle("PATCH /auth/users/{userId}", moderate(h.HandleUpdate))
	r.Mux.Handle("PATCH /auth/users/{userId}/role", moderate(h.HandleUpdateRole))
	r.Mux.Handle("PATCH /auth/users/{userId}/status", moderate(h.HandleUpdateStatus))
	r.Mux.Handle("PATCH /users/{userId}/status", moderate(h.HandleUpdateStatus))
	r.Mux.Handle("DELETE /auth/users/{userId}", moderate(h.HandleRemove))
	r.Mux.Handle("POST /auth/users/bulk-action", moderate(h.HandleBulkAction))
}

func (r *Router) registerCompanies() {
	h := &CompaniesHandler{CompanyService: r.CompanyService}

	adminOnly := func(fn http.HandlerFunc) http.Handler {
		return r.authenticated(fn,
			httpx.RequireRoles(string(domain.RoleAdmin)),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}
	r.Mux.Handle("GET /companies", adminOnly(h.HandleList))
	r.Mux.Handle("GET /companies/stats", adminOnly(h.HandleStats))
	decisions := func(fn http.HandlerFunc) http.Handler {
		return r.authenticated(fn,
			httpx.RequireRoles(string(domain.RoleAdmin)),
			httpx.RequirePermissions(domain.PermCompanyApprove),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}
	r.Mux.Handle("POST /companies/approve", decisions(h.HandleApprove))
	r.Mux.Handle("POST /companies/reject", decisions(h.HandleReject))

	// Visibility for the rest is decided per company by the service
	member := func(fn http.HandlerFunc) http.Handler {
		return r.authenticated(fn, httpx.RateLimitByUser(httpx.LenientLimit))
	}
	r.Mux.Handle("GET /companies/{id}", member(h.HandleGet))
	r.Mux.Handle("PATCH /companies/{id}", member(h.HandleUpdate))
	r.Mux.Handle("GET /companies/{first}/{second}", member(h.HandleSubresource))
}

func (r *Router) registerDashboard() {
	h := &DashboardHandler{DashboardService: r.DashboardService}

	member := func(fn http.HandlerFunc) http.Handler {
		return r.authenticated(fn, httpx.RateLimitByUser(httpx.LenientLimit))
	}
	r.Mux.Handle("GET /dashboard", member(h.HandleGet))
	r.Mux.Handle("GET /dashboard/company/{alias}", member(h.HandleForCompany))
	r.Mux.Handle("GET /dashboard/stats", member(h.HandleStats))
	r.Mux.Handle("GET /dashboard/recent-activity", member(h.HandleRecentActivity))
}

func (r *Router) registerBootstrap() {
	// POST /bootstrap - very strict rate limit by IP (one-time setup endpoint)
	r.Mux.Handle("POST /bootstrap",
		httpx.Chain(&BootstrapHandler{BootstrapService: r.BootstrapService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /metrics",
		httpx.Chain(promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{}),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
