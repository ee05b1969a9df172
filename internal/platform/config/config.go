// Copyright (c) 2026 NexusHost. All rights reserved.
// Author: platform@nexushost.io

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local .env file is
loaded first (when present) via 'joho/godotenv' for development convenience.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, mailer) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// minSessionSecretLength is the minimum accepted SESSION_SECRET length.
// Anything shorter undermines the HMAC signature on the session cookie.
const minSessionSecretLength = 32

// # Configuration Schema

// Config holds all runtime configuration for the NexusHost API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Session store (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// SessionSecret signs the session cookie value (HMAC-SHA256).
	SessionSecret string `env:"SESSION_SECRET,required"`

	// Cross-Origin Resource Sharing: the single allowed frontend origin.
	CORSOrigin string `env:"CORS_ORIGIN,required"`

	// Rate limiting: RateLimitMax requests per RateLimitWindow seconds, per IP.
	RateLimitWindow int `env:"RATE_LIMIT_WINDOW" envDefault:"10"`
	RateLimitMax    int `env:"RATE_LIMIT_MAX"    envDefault:"100"`

	// Email delivery (SMTP). Optional in development, where reset links are
	// logged instead of sent; enforced for every other environment in Load.
	SMTPHost  string `env:"SMTP_HOST"`
	SMTPPort  int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser  string `env:"SMTP_USER"`
	SMTPPass  string `env:"SMTP_PASS"`
	EmailFrom string `env:"EMAIL_FROM"`

	// Game panel integration. The provisioning services consuming these run
	// outside this repository; the credentials are still validated at startup
	// so a misconfigured deploy fails before taking traffic.
	PanelAPIURL string `env:"PANEL_API_URL"`
	PanelAPIKey string `env:"PANEL_API_KEY"`

	// Payment provider credentials, same deployment contract as the panel keys.
	StripeSecretKey     string `env:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `env:"STRIPE_WEBHOOK_SECRET"`

	// Branding
	AppName string `env:"APP_NAME" envDefault:"NexusHost"`
	AppURL  string `env:"APP_URL"  envDefault:"http://localhost:3000"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
//
// A missing or malformed required variable is a fatal condition for the
// caller: the process must not start with partial configuration.
func Load() (*Config, error) {

	// Best-effort .env loading. A missing file is the normal production case.
	_ = godotenv.Load()

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if len(cfg.SessionSecret) < minSessionSecretLength {
		return nil, fmt.Errorf("config: SESSION_SECRET must be at least %d characters", minSessionSecretLength)
	}

	if cfg.RateLimitWindow <= 0 || cfg.RateLimitMax <= 0 {
		return nil, fmt.Errorf("config: RATE_LIMIT_WINDOW and RATE_LIMIT_MAX must be positive")
	}

	// Integration credentials may be blank on a developer machine; any other
	// environment must fail fast on an incomplete deployment.
	if !cfg.IsDevelopment() {
		if cfg.SMTPHost == "" || cfg.EmailFrom == "" {
			return nil, fmt.Errorf("config: SMTP_HOST and EMAIL_FROM are required outside development")
		}
		if cfg.PanelAPIURL == "" || cfg.PanelAPIKey == "" {
			return nil, fmt.Errorf("config: PANEL_API_URL and PANEL_API_KEY are required outside development")
		}
		if cfg.StripeSecretKey == "" || cfg.StripeWebhookSecret == "" {
			return nil, fmt.Errorf("config: STRIPE_SECRET_KEY and STRIPE_WEBHOOK_SECRET are required outside development")
		}
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
