// Package config defines the environment-driven configuration of the iris API.
package config

import (
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - database.go: MongoDB and Redis configuration
//   - http.go: HTTP server configuration
//   - jobs.go: status buckets, pagination and restart trigger configuration
//   - observability.go: logging and metrics configuration
type AppConfig struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Database configuration
	Mongo MongoConfig `envPrefix:"MONGO_"`
	Redis RedisConfig `envPrefix:"REDIS_"`
	Cache CacheConfig

	// HTTP server configuration
	HTTP HTTPConfig

	// Scan job listing and restart configuration
	Jobs    JobsConfig
	Restart RestartConfig `envPrefix:"RESTART_"`

	// Observability configuration
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = "info"
	}

	c.Mongo.Sanitize()
	c.Redis.Sanitize()
	c.Cache.Sanitize()
	c.HTTP.Sanitize()
	c.Jobs.Sanitize()
	c.Restart.Sanitize()
	c.Observability.Sanitize()
}

// Validate reports configuration that cannot be repaired by Sanitize.
func (c *AppConfig) Validate() error {
	return c.Jobs.Validate()
}
