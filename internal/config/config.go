package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// DevSessionSecret is the fallback signing secret used when none is
// configured. Tokens signed with it are forgeable by anyone who reads this
// file, so Load warns loudly whenever it is in effect.
const DevSessionSecret = "outfitoo-dev-secret-do-not-use"

// GoogleConfig holds the OAuth client registration for Google.
type GoogleConfig struct {
	ClientID     string `env:"OUTFITOO_GOOGLE_CLIENT_ID"`
	ClientSecret string `env:"OUTFITOO_GOOGLE_CLIENT_SECRET"`
	RedirectURI  string `env:"OUTFITOO_GOOGLE_REDIRECT_URI"`
}

// S3Config holds S3-compatible object storage configuration.
type S3Config struct {
	Endpoint      string `env:"OUTFITOO_S3_ENDPOINT"`
	Bucket        string `env:"OUTFITOO_S3_BUCKET"`
	Region        string `env:"OUTFITOO_S3_REGION" envDefault:"us-east-1"`
	AccessKey     string `env:"OUTFITOO_S3_ACCESS_KEY"`
	SecretKey     string `env:"OUTFITOO_S3_SECRET_KEY"`
	PublicBaseURL string `env:"OUTFITOO_S3_PUBLIC_BASE_URL"`
}

// Config is the process-wide configuration, parsed from the environment
// exactly once at startup and passed by reference to the components that
// need it.
type Config struct {
	Port     string `env:"OUTFITOO_PORT" envDefault:"8080"`
	DBPath   string `env:"OUTFITOO_DB_PATH" envDefault:"outfitoo.db"`
	LogLevel string `env:"OUTFITOO_LOG_LEVEL" envDefault:"info"`

	SessionSecret string        `env:"OUTFITOO_SESSION_SECRET"`
	SessionTTL    time.Duration `env:"OUTFITOO_SESSION_TTL" envDefault:"24h"`
	CookieName    string        `env:"OUTFITOO_COOKIE_NAME" envDefault:"outfitoo_session"`

	GenerationAPIKey string `env:"OUTFITOO_GENERATION_API_KEY"`

	Google GoogleConfig
	S3     S3Config
}

// Load parses the environment into a Config and applies safe defaults.
// Missing OAuth or storage settings do not fail the load; the affected
// flows report explicit errors when first used.
func Load(logger *slog.Logger) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.SessionSecret == "" {
		cfg.SessionSecret = DevSessionSecret
		logger.Warn("OUTFITOO_SESSION_SECRET is not set, using insecure development secret; sessions are forgeable")
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}

	if !cfg.Google.Configured() {
		logger.Warn("Google OAuth is not fully configured; login will be unavailable")
	}
	if !cfg.S3.Configured() {
		logger.Warn("object storage is not fully configured; generation will be unavailable")
	}

	return cfg, nil
}

// Configured reports whether the OAuth client registration is complete
// enough to build an authorization redirect.
func (g GoogleConfig) Configured() bool {
	return g.ClientID != "" && g.ClientSecret != "" && g.RedirectURI != ""
}

// Configured reports whether uploads can be attempted.
func (s S3Config) Configured() bool {
	return s.Bucket != "" && s.AccessKey != "" && s.SecretKey != ""
}
