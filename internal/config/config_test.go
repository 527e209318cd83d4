package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/rxguard_test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.RxNavBaseURL != "https://rxnav.nlm.nih.gov/REST" {
		t.Errorf("unexpected RxNav base URL: %s", cfg.RxNavBaseURL)
	}
	if cfg.LookupTimeout() != 10*time.Second {
		t.Errorf("expected 10s lookup timeout, got %s", cfg.LookupTimeout())
	}
	if !cfg.IsDev() {
		t.Error("expected development mode by default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/rxguard_test")
	t.Setenv("PORT", "9090")
	t.Setenv("LOOKUP_TIMEOUT_SECS", "3")
	t.Setenv("CORS_ORIGINS", "http://a.example,http://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.LookupTimeout() != 3*time.Second {
		t.Errorf("expected 3s timeout, got %s", cfg.LookupTimeout())
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("expected 2 CORS origins, got %v", cfg.CORSOrigins)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		DatabaseURL:       "postgres://localhost/rxguard",
		RxNavBaseURL:      "https://rxnav.nlm.nih.gov/REST",
		OpenFDABaseURL:    "https://api.fda.gov/drug/event.json",
		LookupTimeoutSecs: 10,
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	bad := *cfg
	bad.DatabaseURL = ""
	if err := bad.Validate(); err == nil {
		t.Error("expected error for missing DATABASE_URL")
	}

	bad = *cfg
	bad.LookupTimeoutSecs = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected error for zero lookup timeout")
	}
}
