// Package config defines the application's environment-driven configuration.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config files for the
// available variables:
//   - auth.go: employer auth mode, token signing, OIDC
//   - database.go: Postgres and Redis
//   - http.go: HTTP server
//   - match.go: matching proxy
package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
type AppConfig struct {
	// IsDev controls development mode behavior. Set DEV=true for dev mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Auth is the employer authentication configuration.
	Auth AuthConfig

	// Postgres and Redis connection configuration.
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// HTTP server configuration.
	HTTP HTTPConfig

	// Match is the matching proxy configuration.
	Match MatchConfig `envPrefix:"MATCH_"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// Call after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.detectDevMode()
}

// detectDevMode checks NODE_ENV as a fallback for the DEV flag, matching the
// frontend tooling convention.
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
