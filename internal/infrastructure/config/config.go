package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig encapsulates all runtime configuration knobs.
type AppConfig struct {
	App      AppSettings
	HTTP     HTTPSettings
	Auth     AuthSettings
	Log      LogSettings
	Database DatabaseSettings
	Audit    AuditSettings
	Upstream UpstreamSettings
	Captcha  CaptchaSettings
	Company  CompanySettings
}

type AppSettings struct {
	Name        string
	Version     string
	Environment string
}

type HTTPSettings struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// AuthSettings configures the operator login and session cookie.
// PasswordHash holds a base64-encoded bcrypt hash (see cmd/hashgen).
type AuthSettings struct {
	Enabled       bool
	Username      string
	PasswordHash  string
	SessionSecret string
	SessionTTL    time.Duration
	BypassPaths   []string
}

type LogSettings struct {
	Level string
}

type DatabaseSettings struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string
	MaxConns int
}

// ConnString returns a keyword/value connection string for pgx.
func (d DatabaseSettings) ConnString() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Database, d.User, d.Password, d.SSLMode,
	)
}

type AuditSettings struct {
	Enabled bool
}

// UpstreamSettings configures the invoicing API the exporter pulls
// companies and invoices from.
type UpstreamSettings struct {
	BaseURL         string
	APIKey          string
	Timeout         time.Duration
	PreviewPageSize int
	CompanyCacheTTL time.Duration
}

// CaptchaSettings configures Turnstile verification on login.
type CaptchaSettings struct {
	Enabled   bool
	SecretKey string
	VerifyURL string
	Timeout   time.Duration
}

type CompanySettings struct {
	DisplayName string
}

const defaultTurnstileVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// Load resolves the application configuration from environment variables.
// It first attempts to load variables from a .env file if it exists;
// variables set in the environment take precedence over .env values.
func Load() (AppConfig, error) {
	_ = godotenv.Load()

	cfg := AppConfig{
		App: AppSettings{
			Name:        getEnv("APP_NAME", "ms_coretax_exporter"),
			Version:     getEnv("APP_VERSION", "0.1.0"),
			Environment: getEnv("APP_ENV", "local"),
		},
		HTTP: HTTPSettings{
			Port:            getEnvAsInt("APP_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     getEnvAsDuration("HTTP_IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getEnvAsDuration("HTTP_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Auth: AuthSettings{
			Enabled:       getEnvAsBool("AUTH_ENABLED", true),
			Username:      strings.TrimSpace(os.Getenv("S_USERNAME")),
			PasswordHash:  strings.TrimSpace(os.Getenv("S_PASSWORD_HASH")),
			SessionSecret: strings.TrimSpace(os.Getenv("S_SESSION_SECRET")),
			SessionTTL:    getEnvAsDuration("SESSION_TTL", 12*time.Hour),
			BypassPaths:   getEnvAsCSV("AUTH_BYPASS_PATHS", []string{"/health", "/auth/login", "/auth/logout"}),
		},
		Log: LogSettings{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseSettings{
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnvAsInt("DB_PORT", 5432),
			Database: getEnv("DB_NAME", "ms_coretax_exporter"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
		},
		Audit: AuditSettings{
			Enabled: getEnvAsBool("AUDIT_ENABLED", true),
		},
		Upstream: UpstreamSettings{
			BaseURL:         strings.TrimSpace(os.Getenv("S_NINJA_API_URL")),
			APIKey:          strings.TrimSpace(os.Getenv("S_NINJA_API_KEY")),
			Timeout:         getEnvAsDuration("NINJA_API_TIMEOUT", 30*time.Second),
			PreviewPageSize: getEnvAsInt("NINJA_PREVIEW_PAGE_SIZE", 10),
			CompanyCacheTTL: getEnvAsDuration("COMPANY_CACHE_TTL", 10*time.Minute),
		},
		Captcha: CaptchaSettings{
			Enabled:   getEnvAsBool("TURNSTILE_ENABLED", true),
			SecretKey: strings.TrimSpace(os.Getenv("S_TURNSTILE_SECRET_KEY")),
			VerifyURL: getEnv("TURNSTILE_VERIFY_URL", defaultTurnstileVerifyURL),
			Timeout:   getEnvAsDuration("TURNSTILE_TIMEOUT", 10*time.Second),
		},
		Company: CompanySettings{
			DisplayName: getEnv("C_COMPANY_NAME", "Default Company Name"),
		},
	}

	if cfg.Upstream.BaseURL == "" {
		return cfg, errors.New("invalid config: S_NINJA_API_URL is required")
	}
	if cfg.Upstream.APIKey == "" {
		return cfg, errors.New("invalid config: S_NINJA_API_KEY is required")
	}
	if cfg.Upstream.PreviewPageSize <= 0 {
		return cfg, errors.New("invalid config: NINJA_PREVIEW_PAGE_SIZE must be greater than 0")
	}

	if cfg.Auth.Enabled {
		if cfg.Auth.Username == "" {
			return cfg, errors.New("invalid config: S_USERNAME is required when AUTH_ENABLED=true")
		}
		if cfg.Auth.PasswordHash == "" {
			return cfg, errors.New("invalid config: S_PASSWORD_HASH is required when AUTH_ENABLED=true")
		}
		if cfg.Auth.SessionSecret == "" {
			return cfg, errors.New("invalid config: S_SESSION_SECRET is required when AUTH_ENABLED=true")
		}
	}

	if cfg.Captcha.Enabled && cfg.Captcha.SecretKey == "" {
		return cfg, errors.New("invalid config: S_TURNSTILE_SECRET_KEY is required when TURNSTILE_ENABLED=true")
	}

	return cfg, nil
}

// Address returns the HTTP listen address in host:port form.
func (h HTTPSettings) Address() string {
	return fmt.Sprintf(":%d", h.Port)
}

// IsLocal reports whether the service runs in a development environment.
// Session cookies are only marked Secure outside of local environments.
func (a AppSettings) IsLocal() bool {
	switch strings.ToLower(strings.TrimSpace(a.Environment)) {
	case "local", "dev", "development":
		return true
	default:
		return false
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsCSV(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			values = append(values, trimmed)
		}
	}
	if len(values) == 0 {
		return fallback
	}
	return values
}
