// Package config holds the bridge's runtime configuration, read from
// the environment with sensible defaults. Flags layered on top by the
// CLI override whatever the environment provided.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Defaults.
const (
	DefaultPort        = 3000
	DefaultIdleTimeout = 30 * time.Minute
	DefaultEventBuffer = 100
)

// Environment variable names.
const (
	EnvPort        = "SP_MCP_PORT"
	EnvToken       = "SP_MCP_TOKEN"
	EnvIdleTimeout = "SP_MCP_IDLE_TIMEOUT"
	EnvBaseURL     = "SP_MCP_URL"
)

// Config is the resolved runtime configuration.
type Config struct {
	// Port the HTTP server (MCP endpoint, plugin socket, REST API)
	// listens on.
	Port int

	// Token is an optional bearer token required on the MCP endpoint
	// and the plugin socket. The REST surface stays open either way.
	// Empty disables authentication.
	Token string

	// IdleTimeout is how long a protocol session may sit unused before
	// the sweeper evicts it. Zero disables eviction.
	IdleTimeout time.Duration

	// EventBuffer is how many plugin events the event log retains.
	EventBuffer int

	// BaseURL is where the inspection CLI commands find a running
	// bridge's REST surface.
	BaseURL string
}

// FromEnv builds a Config from the environment, filling defaults for
// anything unset.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:        DefaultPort,
		Token:       os.Getenv(EnvToken),
		IdleTimeout: DefaultIdleTimeout,
		EventBuffer: DefaultEventBuffer,
		BaseURL:     os.Getenv(EnvBaseURL),
	}

	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			return Config{}, fmt.Errorf("invalid %s: %q", EnvPort, v)
		}
		cfg.Port = port
	}

	if v := os.Getenv(EnvIdleTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return Config{}, fmt.Errorf("invalid %s: %q (want a duration like 30m, or 0 to disable)", EnvIdleTimeout, v)
		}
		cfg.IdleTimeout = d
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = fmt.Sprintf("http://localhost:%d", cfg.Port)
	}
	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
