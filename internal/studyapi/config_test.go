package studyapi

import (
	"testing"
	"time"
)

func TestConfigFromEnv_Defaults(t *testing.T) {
	cfg := ConfigFromEnv()
	if cfg.Backend != "http" {
		t.Errorf("Backend = %q, want http", cfg.Backend)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", cfg.Retry.MaxAttempts)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %s, want 30s", cfg.Timeout)
	}
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("STUDYBUDDY_BACKEND", "mock")
	t.Setenv("STUDYBUDDY_BASE_URL", "https://csxl.example.edu")
	t.Setenv("STUDYBUDDY_TOKEN", "tok")
	t.Setenv("STUDYBUDDY_TIMEOUT", "5s")

	cfg := ConfigFromEnv()
	if cfg.Backend != "mock" {
		t.Errorf("Backend = %q", cfg.Backend)
	}
	if cfg.BaseURL != "https://csxl.example.edu" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.BearerToken != "tok" {
		t.Errorf("BearerToken = %q", cfg.BearerToken)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %s", cfg.Timeout)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}

	cfg.BaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Error("http backend without base URL should fail validation")
	}

	cfg.Backend = "mock"
	if err := cfg.Validate(); err != nil {
		t.Errorf("mock backend needs no settings: %v", err)
	}

	cfg.Backend = "carrier-pigeon"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown backend should fail validation")
	}
}
