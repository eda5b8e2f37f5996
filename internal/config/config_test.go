package config

import (
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv(EnvPort, "")
	t.Setenv(EnvToken, "")
	t.Setenv(EnvIdleTimeout, "")
	t.Setenv(EnvBaseURL, "")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.IdleTimeout != DefaultIdleTimeout {
		t.Errorf("IdleTimeout = %v, want %v", cfg.IdleTimeout, DefaultIdleTimeout)
	}
	if cfg.Token != "" {
		t.Errorf("Token = %q, want empty", cfg.Token)
	}
	if cfg.BaseURL != "http://localhost:3000" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv(EnvPort, "8080")
	t.Setenv(EnvToken, "sekrit")
	t.Setenv(EnvIdleTimeout, "5m")
	t.Setenv(EnvBaseURL, "http://bridge.local:8080")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 8080 || cfg.Token != "sekrit" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.IdleTimeout != 5*time.Minute {
		t.Errorf("IdleTimeout = %v, want 5m", cfg.IdleTimeout)
	}
	if cfg.BaseURL != "http://bridge.local:8080" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
}

func TestFromEnv_BaseURLFollowsPort(t *testing.T) {
	t.Setenv(EnvPort, "9999")
	t.Setenv(EnvBaseURL, "")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != "http://localhost:9999" {
		t.Errorf("BaseURL = %q, want it derived from the port", cfg.BaseURL)
	}
}

func TestFromEnv_InvalidPort(t *testing.T) {
	for _, v := range []string{"abc", "0", "70000", "-1"} {
		t.Setenv(EnvPort, v)
		if _, err := FromEnv(); err == nil {
			t.Errorf("FromEnv accepted port %q", v)
		}
	}
}

func TestFromEnv_InvalidIdleTimeout(t *testing.T) {
	t.Setenv(EnvPort, "")
	for _, v := range []string{"banana", "-5m"} {
		t.Setenv(EnvIdleTimeout, v)
		if _, err := FromEnv(); err == nil {
			t.Errorf("FromEnv accepted idle timeout %q", v)
		}
	}
}

func TestFromEnv_ZeroIdleTimeoutDisablesSweep(t *testing.T) {
	t.Setenv(EnvPort, "")
	t.Setenv(EnvIdleTimeout, "0")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.IdleTimeout != 0 {
		t.Errorf("IdleTimeout = %v, want 0", cfg.IdleTimeout)
	}
}

func TestAddr(t *testing.T) {
	cfg := Config{Port: 3000}
	if got := cfg.Addr(); got != ":3000" {
		t.Errorf("Addr = %q, want :3000", got)
	}
}
