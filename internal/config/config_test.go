package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "http://127.0.0.1:2024" {
		t.Fatalf("unexpected default base_url %q", cfg.BaseURL)
	}
	if cfg.RequestTimeout != 120*time.Second {
		t.Fatalf("unexpected default timeout %v", cfg.RequestTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("unexpected default log_level %q", cfg.LogLevel)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("GRAPHRUN_BASE_URL", "https://graphs.example.com")
	t.Setenv("GRAPHRUN_REQUEST_TIMEOUT_SECONDS", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://graphs.example.com" {
		t.Fatalf("env override ignored, got %q", cfg.BaseURL)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.RequestTimeout)
	}
}

func TestLoadRejectsNonPositiveTimeout(t *testing.T) {
	t.Setenv("GRAPHRUN_REQUEST_TIMEOUT_SECONDS", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero timeout")
	}
}

func TestLoadResolvesProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.yaml")
	content := `profiles:
  staging:
    base_url: https://staging.example.com
    api_key: stg-key
    headers:
      X-Org: quiver
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write profiles file: %v", err)
	}

	t.Setenv("GRAPHRUN_PROFILES_FILE", path)
	t.Setenv("GRAPHRUN_PROFILE", "staging")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://staging.example.com" {
		t.Fatalf("profile base_url not applied, got %q", cfg.BaseURL)
	}
	if cfg.APIKey != "stg-key" {
		t.Fatalf("profile api_key not applied, got %q", cfg.APIKey)
	}
	if cfg.Headers["X-Org"] != "quiver" {
		t.Fatalf("profile headers not applied: %#v", cfg.Headers)
	}
}

func TestLoadUnknownProfileFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.yaml")
	if err := os.WriteFile(path, []byte("profiles: {}\n"), 0o600); err != nil {
		t.Fatalf("write profiles file: %v", err)
	}

	t.Setenv("GRAPHRUN_PROFILES_FILE", path)
	t.Setenv("GRAPHRUN_PROFILE", "missing")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown profile")
	}
}
