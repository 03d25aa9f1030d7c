package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIBaseURL != "http://localhost:5000" {
		t.Fatalf("expected default API base URL, got %q", cfg.APIBaseURL)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Fatalf("expected default timeout, got %v", cfg.HTTPTimeout)
	}
	if cfg.APIRate <= 0 || cfg.APIBurst < 1 {
		t.Fatalf("expected sane limiter defaults, got rate=%v burst=%d", cfg.APIRate, cfg.APIBurst)
	}
}

func TestLoadTrimsTrailingSlash(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.in///")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIBaseURL != "https://api.example.in" {
		t.Fatalf("expected trailing slashes trimmed, got %q", cfg.APIBaseURL)
	}
}

func TestLoadRecoversFromBadValues(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "banana")
	t.Setenv("API_RATE", "-3")
	t.Setenv("API_BURST", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPTimeout <= 0 {
		t.Fatal("expected fallback timeout")
	}
	if cfg.APIRate <= 0 || cfg.APIBurst < 1 {
		t.Fatal("expected fallback limiter settings")
	}
}
