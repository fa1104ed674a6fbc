package config

import (
	"io"
	"log/slog"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(discardLogger())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.DBPath != "outfitoo.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "outfitoo.db")
	}
	if cfg.CookieName != "outfitoo_session" {
		t.Errorf("CookieName = %q, want %q", cfg.CookieName, "outfitoo_session")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v, want 24h", cfg.SessionTTL)
	}
	if cfg.SessionSecret != DevSessionSecret {
		t.Errorf("SessionSecret = %q, want dev fallback", cfg.SessionSecret)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("OUTFITOO_PORT", "9090")
	t.Setenv("OUTFITOO_LOG_LEVEL", "debug")
	t.Setenv("OUTFITOO_SESSION_SECRET", "super-secret")
	t.Setenv("OUTFITOO_SESSION_TTL", "1h")
	t.Setenv("OUTFITOO_GOOGLE_CLIENT_ID", "cid")
	t.Setenv("OUTFITOO_GOOGLE_CLIENT_SECRET", "csecret")
	t.Setenv("OUTFITOO_GOOGLE_REDIRECT_URI", "http://localhost:9090/auth/google/callback")
	t.Setenv("OUTFITOO_S3_BUCKET", "outfits")
	t.Setenv("OUTFITOO_S3_ACCESS_KEY", "ak")
	t.Setenv("OUTFITOO_S3_SECRET_KEY", "sk")

	cfg, err := Load(discardLogger())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want %q", cfg.Port, "9090")
	}
	if cfg.SessionSecret != "super-secret" {
		t.Errorf("SessionSecret = %q, want %q", cfg.SessionSecret, "super-secret")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("SessionTTL = %v, want 1h", cfg.SessionTTL)
	}
	if !cfg.Google.Configured() {
		t.Error("expected Google config to be complete")
	}
	if !cfg.S3.Configured() {
		t.Error("expected S3 config to be complete")
	}
}

func TestGoogleConfigured(t *testing.T) {
	g := GoogleConfig{ClientID: "cid", ClientSecret: "cs"}
	if g.Configured() {
		t.Error("expected incomplete config without redirect URI")
	}
	g.RedirectURI = "http://localhost/cb"
	if !g.Configured() {
		t.Error("expected complete config")
	}
}
