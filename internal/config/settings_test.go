package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "http://gate.local/cgi-bin" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Timeout() != 8*time.Second {
		t.Errorf("Timeout = %v, want 8s", cfg.Timeout())
	}
	if cfg.Autofill != "hints" {
		t.Errorf("Autofill = %q, want hints", cfg.Autofill)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("GATECON_BASE_URL", "http://10.0.0.5/cgi-bin")
	t.Setenv("GATECON_TIMEOUT", "20")
	t.Setenv("GATECON_AUTOFILL", "fill")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "http://10.0.0.5/cgi-bin" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Timeout() != 20*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout())
	}
	if cfg.Autofill != "fill" {
		t.Errorf("Autofill = %q", cfg.Autofill)
	}
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct{ key, value string }{
		{"GATECON_BASE_URL", "not a url"},
		{"GATECON_TIMEOUT", "0"},
		{"GATECON_TIMEOUT", "999"},
		{"GATECON_AUTOFILL", "always"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("%s=%s must fail validation", tt.key, tt.value)
			}
		})
	}
}
