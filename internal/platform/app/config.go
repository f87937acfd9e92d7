package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/yukti/platform/internal/platform/notify"
)

const EnvDevelopment = "development"

type Config struct {
	Env       string // development, staging, production (default: development)
	LogLevel  string // debug, info, warn, error (default: info)
	LogFormat string // json, text (default: json)
	Version   string // reported by /livez and in every log line (default: dev)

	HTTPAddr            string        // listen address (default: :8080)
	ShutdownGracePeriod time.Duration // drain timeout (default: 10s)
	CookieSecure        bool          // Secure flag on token cookies (default: true in production)

	DatabaseFile string // SQLite database path (default: platform.db)
	PepperFile   string // pepper for hashed OTP codes, created if missing (default: pepper)
	RedisURL     string // Optional: shared refresh token revocation list

	JWTSecret        string // Required outside development
	JWTRefreshSecret string // Required outside development
	Issuer           string // iss claim (default: yukti-platform)

	DashboardBaseURL string // company dashboards live under this URL
	FrontendURL      string // invitation links point here

	SMTP notify.SMTPConfig // empty host logs emails instead of sending them

	BootstrapToken       string        // Optional: enables POST /bootstrap
	HousekeepingInterval time.Duration // (default: 1h)
}

// NewViper reads an optional .env file and an optional config file, then
// layers the environment on top. Keys are the lower-cased variable names.
func NewViper(configFile string) (*viper.Viper, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", EnvDevelopment)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("version", "dev")

	v.SetDefault("http_addr", ":8080")
	v.SetDefault("shutdown_grace_period", 10*time.Second)

	v.SetDefault("platform_database_file", "platform.db")
	v.SetDefault("platform_pepper_file", "pepper")
	v.SetDefault("redis_url", "")

	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_refresh_secret", "")
	v.SetDefault("jwt_expiration", 15*time.Minute)
	v.SetDefault("jwt_refresh_expiration", 7*24*time.Hour)
	v.SetDefault("jwt_issuer", "yukti-platform")

	v.SetDefault("otp_expiry_minutes", 10)
	v.SetDefault("max_otp_attempts", 3)

	v.SetDefault("dashboard_base_url", "http://localhost:3000/dashboard")
	v.SetDefault("frontend_url", "http://localhost:3000")

	v.SetDefault("smtp_host", "")
	v.SetDefault("smtp_port", 587)
	v.SetDefault("smtp_user", "")
	v.SetDefault("smtp_pass", "")
	v.SetDefault("smtp_from", "noreply@yukti.local")

	v.SetDefault("bootstrap_token", "")
	v.SetDefault("housekeeping_interval", time.Hour)
}

// LoadConfig snapshots v. Values read per call (OTP and token lifetimes) go
// through NewViperSettings instead.
func LoadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		Env:       strings.ToLower(v.GetString("env")),
		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		Version:   v.GetString("version"),

		HTTPAddr:            v.GetString("http_addr"),
		ShutdownGracePeriod: v.GetDuration("shutdown_grace_period"),

		DatabaseFile: v.GetString("platform_database_file"),
		PepperFile:   v.GetString("platform_pepper_file"),
		RedisURL:     v.GetString("redis_url"),

		JWTSecret:        v.GetString("jwt_secret"),
		JWTRefreshSecret: v.GetString("jwt_refresh_secret"),
		Issuer:           v.GetString("jwt_issuer"),

		DashboardBaseURL: v.GetString("dashboard_base_url"),
		FrontendURL:      v.GetString("frontend_url"),

		SMTP: notify.SMTPConfig{
			Host:     v.GetString("smtp_host"),
			Port:     v.GetInt("smtp_port"),
			Username: v.GetString("smtp_user"),
			Password: v.GetString("smtp_pass"),
			From:     v.GetString("smtp_from"),
		},

		BootstrapToken:       v.GetString("bootstrap_token"),
		HousekeepingInterval: v.GetDuration("housekeeping_interval"),
	}

	cfg.CookieSecure = cfg.Env == "production"
	if v.IsSet("cookie_secure") {
		cfg.CookieSecure = v.GetBool("cookie_secure")
	}
	if cfg.ShutdownGracePeriod <= 0 {
		cfg.ShutdownGracePeriod = 10 * time.Second
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.Env != EnvDevelopment {
		if c.JWTSecret == "" {
			errs = append(errs, errors.New("JWT_SECRET is required outside development"))
		}
		if c.JWTRefreshSecret == "" {
			errs = append(errs, errors.New("JWT_REFRESH_SECRET is required outside development"))
		}
	}
	if c.JWTSecret != "" && c.JWTSecret == c.JWTRefreshSecret {
		errs = append(errs, errors.New("JWT_SECRET and JWT_REFRESH_SECRET must differ"))
	}
	if c.SMTP.Host != "" && c.SMTP.From == "" {
		errs = append(errs, errors.New("SMTP_FROM is required when SMTP_HOST is set"))
	}
	return errors.Join(errs...)
}
