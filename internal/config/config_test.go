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

	if cfg.BackendURL != "http://localhost:8000" {
		t.Errorf("expected default backend url, got %s", cfg.BackendURL)
	}
	if cfg.ControlPort != "8090" {
		t.Errorf("expected default control port, got %s", cfg.ControlPort)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level, got %s", cfg.LogLevel)
	}
	if cfg.CallFlash != 2500*time.Millisecond {
		t.Errorf("expected 2.5s call flash, got %v", cfg.CallFlash)
	}
	if cfg.AudioFlash != 3*time.Second {
		t.Errorf("expected 3s audio flash, got %v", cfg.AudioFlash)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("expected 10s http timeout, got %v", cfg.HTTPTimeout)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://queue.example.com")
	t.Setenv("OPERATOR_NAME", "Alice")
	t.Setenv("CONTROL_PORT", "9999")
	t.Setenv("CALL_FLASH_MS", "1000")
	t.Setenv("PLAYER_COMMAND", "mpv")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BackendURL != "http://queue.example.com" {
		t.Errorf("expected overridden backend url, got %s", cfg.BackendURL)
	}
	if cfg.OperatorName != "Alice" {
		t.Errorf("expected operator name Alice, got %s", cfg.OperatorName)
	}
	if cfg.ControlPort != "9999" {
		t.Errorf("expected port 9999, got %s", cfg.ControlPort)
	}
	if cfg.CallFlash != time.Second {
		t.Errorf("expected 1s call flash, got %v", cfg.CallFlash)
	}
	if cfg.PlayerCommand != "mpv" {
		t.Errorf("expected mpv player, got %s", cfg.PlayerCommand)
	}
}

func TestLoadTrimsOrigins(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "http://a.example.com, http://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %d", len(cfg.AllowedOrigins))
	}
	if cfg.AllowedOrigins[1] != "http://b.example.com" {
		t.Errorf("expected trimmed origin, got %q", cfg.AllowedOrigins[1])
	}
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	t.Setenv("CALL_FLASH_MS", "not-a-number")

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid CALL_FLASH_MS")
	}
}
