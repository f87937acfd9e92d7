package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	httpapi "github.com/yukti/platform/internal/platform/http"
	"github.com/yukti/platform/internal/platform/notify"
	"github.com/yukti/platform/internal/platform/service"
	"github.com/yukti/platform/internal/platform/store"
	"github.com/yukti/platform/internal/platform/store/drivers/redis"
	"github.com/yukti/platform/internal/platform/store/drivers/sqlite"
	"github.com/yukti/platform/pkg/cryptox"
	"github.com/yukti/platform/pkg/jwtx"
	"github.com/yukti/platform/pkg/slogx"
)

const metricsNamespace = "platform"

// Application owns every long-lived dependency of the platform service.
type Application struct {
	cfg      Config
	settings service.Settings
	logger   *slog.Logger

	db       *sqlite.Store
	revoked  store.RevokedTokens
	redis    *redis.RevocationList // nil unless REDIS_URL is set
	notifier notify.Notifier
	registry *prometheus.Registry

	tokenService        *service.TokenService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New opens storage, applies migrations and wires the HTTP stack. settings
// is consulted per request for OTP and token lifetimes.
func New(cfg Config, settings service.Settings) (*Application, error) {
	app := &Application{
		cfg:      cfg,
		settings: settings,
		logger: slogx.New(slogx.Config{
			Service: "platform",
			Version: cfg.Version,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		registry: prometheus.NewRegistry(),
	}
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if err := cryptox.LoadPepper(cfg.PepperFile); err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initRevocation(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initNotifier()

	if err := app.initServices(); err != nil {
		_ = app.closeStores()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler is the fully wired HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("platform service starting", "addr", app.cfg.HTTPAddr, "version", app.cfg.Version)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		app.housekeepingService.Stop()
		_ = app.closeStores()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests, stops housekeeping and closes storage.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down platform service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.closeStores(); err != nil {
		return err
	}

	app.logger.Info("platform service stopped")
	return nil
}

func (app *Application) closeStores() error {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}
	return nil
}

// OpenStore opens the SQLite database at path and brings its schema up to
// date. The migrate command uses it too.
func OpenStore(path string) (*sqlite.Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", path)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	return db, nil
}

func (app *Application) initDatabase() error {
	db, err := OpenStore(app.cfg.DatabaseFile)
	if err != nil {
		return err
	}
	app.db = db
	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

// initRevocation picks Redis for the refresh token deny list when
// configured, otherwise the SQLite table.
func (app *Application) initRevocation() error {
	if app.cfg.RedisURL == "" {
		app.revoked = app.db.RevokedTokens()
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	list, err := redis.NewRevocationList(ctx, app.cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.redis = list
	app.revoked = list
	app.logger.Info("using redis revocation list")
	return nil
}

func (app *Application) initNotifier() {
	if app.cfg.SMTP.Host == "" {
		app.notifier = notify.NewLogNotifier(app.cfg.Env == EnvDevelopment)
		app.logger.Warn("SMTP_HOST not set; emails are logged instead of sent")
		return
	}
	app.notifier = notify.NewSMTPNotifier(app.cfg.SMTP)
	app.logger.Info("smtp notifier configured", "host", app.cfg.SMTP.Host, "port", app.cfg.SMTP.Port)
}

// signingSecrets returns the configured secrets, generating throwaway ones in
// development. Tokens signed with generated secrets die with the process.
func (app *Application) signingSecrets() (access, refresh []byte, err error) {
	a, r := app.cfg.JWTSecret, app.cfg.JWTRefreshSecret
	if a == "" || r == "" {
		app.logger.Warn("JWT secrets not configured; generating ephemeral development secrets")
	}
	if a == "" {
		if a, err = cryptox.GenerateToken(32); err != nil {
			return nil, nil, err
		}
	}
	if r == "" {
		if r, err = cryptox.GenerateToken(32); err != nil {
			return nil, nil, err
		}
	}
	return []byte(a), []byte(r), nil
}

func (app *Application) initServices() error {
	accessSecret, refreshSecret, err := app.signingSecrets()
	if err != nil {
		return fmt.Errorf("failed to generate signing secrets: %w", err)
	}

	accessSigner, err := jwtx.NewSignerHS256(accessSecret)
	if err != nil {
		return err
	}
	refreshSigner, err := jwtx.NewSignerHS256(refreshSecret)
	if err != nil {
		return err
	}
	accessVerifier, err := jwtx.NewVerifierHS256(accessSecret, jwtx.VerifyOptions{Issuer: app.cfg.Issuer, Type: jwtx.TypeAccess})
	if err != nil {
		return err
	}
	refreshVerifier, err := jwtx.NewVerifierHS256(refreshSecret, jwtx.VerifyOptions{Issuer: app.cfg.Issuer, Type: jwtx.TypeRefresh})
	if err != nil {
		return err
	}

	metrics := service.NewMetrics(app.registry, metricsNamespace)
	app.tokenService = &service.TokenService{
		Store:           app.db,
		Revoked:         app.revoked,
		Settings:        app.settings,
		Issuer:          app.cfg.Issuer,
		Metrics:         metrics,
		AccessSigner:    accessSigner,
		RefreshSigner:   refreshSigner,
		AccessVerifier:  accessVerifier,
		RefreshVerifier: refreshVerifier,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.revoked,
		app.settings,
		app.logger,
		app.cfg.HousekeepingInterval,
	)

	router := httpapi.NewRouter(accessVerifier, app.cfg.Version, app.db, app.registry, app.logger)
	router.Cookies = httpapi.CookieConfig{Secure: app.cfg.CookieSecure, Settings: app.settings}
	router.AuthService = &service.AuthService{
		Store:            app.db,
		Tokens:           app.tokenService,
		Notifier:         app.notifier,
		Settings:         app.settings,
		Metrics:          metrics,
		DashboardBaseURL: app.cfg.DashboardBaseURL,
	}
	router.InviteService = &service.InviteService{
		Store:            app.db,
		Tokens:           app.tokenService,
		Notifier:         app.notifier,
		Settings:         app.settings,
		Metrics:          metrics,
		FrontendURL:      app.cfg.FrontendURL,
		DashboardBaseURL: app.cfg.DashboardBaseURL,
	}
	router.UserService = &service.UserService{Store: app.db}
	router.CompanyService = &service.CompanyService{
		Store:            app.db,
		Notifier:         app.notifier,
		Metrics:          metrics,
		DashboardBaseURL: app.cfg.DashboardBaseURL,
	}
	router.DashboardService = &service.DashboardService{Store: app.db, DashboardBaseURL: app.cfg.DashboardBaseURL}
	router.BootstrapService = &service.BootstrapService{Store: app.db, Token: app.cfg.BootstrapToken}
	app.router = router
	return nil
}

func (app *Application) initHTTP() {
	app.router.ApplyRoutes()

	app.server = &http.Server{
		Addr:              app.cfg.HTTPAddr,
		Handler:           app.router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
