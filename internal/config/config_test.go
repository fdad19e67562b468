package config

import (
	"testing"
	"time"
)

// setRequiredEnv は必須環境変数を全てテスト用の値で設定するヘルパー。
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "client-secret")
	t.Setenv("GOOGLE_REDIRECT_URL", "http://localhost:8080/oauth2callback")
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("BASE_URL", "http://localhost:8080")
}

func TestLoad_AllRequiredSet_Succeeds(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("MongoURI = %q", cfg.MongoURI)
	}
	if cfg.AdminEmail != "admin@example.com" {
		t.Errorf("AdminEmail = %q", cfg.AdminEmail)
	}
}

func TestLoad_MissingRequired_ReturnsError(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MONGODB_URI", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when MONGODB_URI is missing")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.MongoDatabase != "verona" {
		t.Errorf("MongoDatabase = %q, want %q", cfg.MongoDatabase, "verona")
	}
	if cfg.SessionMaxAge != 2592000 {
		t.Errorf("SessionMaxAge = %d, want %d", cfg.SessionMaxAge, 2592000)
	}
	if cfg.GenerateTimeout != 60*time.Second {
		t.Errorf("GenerateTimeout = %v, want %v", cfg.GenerateTimeout, 60*time.Second)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want %q", cfg.ServerPort, "8080")
	}
}

func TestLoad_CookieSecure_FollowsBaseURLScheme(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.CookieSecure {
		t.Error("CookieSecure = true for http base URL, want false")
	}

	t.Setenv("BASE_URL", "https://verona.example.com")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.CookieSecure {
		t.Error("CookieSecure = false for https base URL, want true")
	}
}

func TestLoad_OptionalOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SESSION_MAX_AGE", "3600")
	t.Setenv("GENERATE_TIMEOUT", "30s")
	t.Setenv("SERVER_PORT", "9000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.SessionMaxAge != 3600 {
		t.Errorf("SessionMaxAge = %d, want 3600", cfg.SessionMaxAge)
	}
	if cfg.GenerateTimeout != 30*time.Second {
		t.Errorf("GenerateTimeout = %v, want 30s", cfg.GenerateTimeout)
	}
	if cfg.ServerPort != "9000" {
		t.Errorf("ServerPort = %q, want %q", cfg.ServerPort, "9000")
	}
}

func TestLoad_InvalidIntFallsBackToDefault(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SESSION_MAX_AGE", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SessionMaxAge != 2592000 {
		t.Errorf("SessionMaxAge = %d, want default 2592000", cfg.SessionMaxAge)
	}
}
