// Package config loads process configuration from the environment.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the fairness server needs at startup. Game
// configuration (house edges, paytables) arrives per-request from the
// admin configuration store and is validated in the games package; this
// is process plumbing only.
type Config struct {
	Addr     string `envconfig:"FAIR_ADDR" default:":8080"`
	DBPath   string `envconfig:"FAIR_DB_PATH" default:"fairness.db"`
	LogLevel string `envconfig:"FAIR_LOG_LEVEL" default:"info"`

	// CORSOrigins lists allowed origins for the verification endpoint;
	// third-party verifiers call it straight from the browser.
	CORSOrigins []string `envconfig:"FAIR_CORS_ORIGINS" default:"*"`

	// RequestTimeoutSeconds bounds request handling; the engine itself
	// is synchronous pure computation and never blocks.
	RequestTimeoutSeconds int `envconfig:"FAIR_REQUEST_TIMEOUT_SECONDS" default:"30"`
}

// Load reads the environment and validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("FAIR_ADDR must not be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("FAIR_DB_PATH must not be empty")
	}
	if c.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("FAIR_REQUEST_TIMEOUT_SECONDS must be > 0")
	}
	return nil
}
