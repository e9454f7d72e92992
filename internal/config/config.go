// Package config provides configuration management.
// It loads configuration from environment variables and config.yaml using Viper.
// The resulting Configuration is built once at startup and passed explicitly
// to the components that need it.
package config

import (
	"net/url"
	"time"

	"github.com/hpn/voice-agent-gateway/internal/domain"
)

// Configuration holds all application configuration values.
type Configuration struct {
	// Server configuration
	Server ServerConfig `json:"server" mapstructure:"server"`

	// Providers configuration
	Providers ProvidersConfig `json:"providers" mapstructure:"providers"`

	// Logging configuration
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`

	// Console output configuration
	UI UIConfig `json:"ui" mapstructure:"ui"`
}

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	// Host is the server bind address.
	Host string `json:"host" mapstructure:"host"`

	// Port is the server port number.
	Port int `json:"port" mapstructure:"port"`

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeoutSeconds int `json:"read_timeout_seconds" mapstructure:"read_timeout_seconds"`

	// WriteTimeout is the maximum duration before timing out writes of the response.
	// Zero disables it so a slow provider call is never cut short.
	WriteTimeoutSeconds int `json:"write_timeout_seconds" mapstructure:"write_timeout_seconds"`

	// ShutdownTimeout is the maximum duration to wait for active connections to finish.
	ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds" mapstructure:"shutdown_timeout_seconds"`
}

// ProvidersConfig groups the per-vendor settings.
type ProvidersConfig struct {
	Vapi   ProviderConfig `json:"vapi" mapstructure:"vapi"`
	Retell ProviderConfig `json:"retell" mapstructure:"retell"`
}

// ProviderConfig holds the outbound settings for one vendor.
type ProviderConfig struct {
	// APIKey is sent as the bearer token.
	APIKey string `json:"-" mapstructure:"api_key"`

	// Endpoint is the agent-creation URL.
	Endpoint string `json:"endpoint" mapstructure:"endpoint"`

	// TimeoutSeconds bounds the outbound call. Zero means no timeout.
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// Timeout returns TimeoutSeconds as a time.Duration.
func (p ProviderConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `json:"level" mapstructure:"level"`

	// Format is the log format (json, text).
	Format string `json:"format" mapstructure:"format"`
}

// UIConfig toggles the colored console output.
type UIConfig struct {
	Banner  bool `json:"banner" mapstructure:"banner"`
	Console bool `json:"console" mapstructure:"console"`
}

// Provider returns the settings for the given provider.
func (c *Configuration) Provider(p domain.ProviderType) ProviderConfig {
	switch p {
	case domain.ProviderVapi:
		return c.Providers.Vapi
	case domain.ProviderRetell:
		return c.Providers.Retell
	default:
		return ProviderConfig{}
	}
}

// MissingAPIKeys lists the providers that have no API key configured.
// Requests to those providers will still be forwarded and rejected upstream.
func (c *Configuration) MissingAPIKeys() []domain.ProviderType {
	missing := make([]domain.ProviderType, 0)
	for _, p := range domain.SupportedProviders {
		if c.Provider(p).APIKey == "" {
			missing = append(missing, p)
		}
	}
	return missing
}

// Validate returns a *ValidationError listing every invalid key.
func (c *Configuration) Validate() error {
	var problems []FieldError

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		problems = append(problems, &InvalidValueError{Key: "server.port", Value: c.Server.Port, Allowed: "1-65535"})
	}
	for _, tm := range []struct {
		key  string
		secs int
	}{
		{"server.read_timeout_seconds", c.Server.ReadTimeoutSeconds},
		{"server.write_timeout_seconds", c.Server.WriteTimeoutSeconds},
		{"server.shutdown_timeout_seconds", c.Server.ShutdownTimeoutSeconds},
	} {
		if tm.secs < 0 {
			problems = append(problems, &InvalidValueError{Key: tm.key, Value: tm.secs, Allowed: ">= 0"})
		}
	}

	for _, p := range domain.SupportedProviders {
		pc := c.Provider(p)
		prefix := "providers." + p.String()

		switch {
		case pc.Endpoint == "":
			problems = append(problems, &MissingKeyError{Key: prefix + ".endpoint"})
		case !isValidEndpoint(pc.Endpoint):
			problems = append(problems, &InvalidValueError{Key: prefix + ".endpoint", Value: pc.Endpoint, Allowed: "absolute http(s) URL"})
		}

		if pc.TimeoutSeconds < 0 {
			problems = append(problems, &InvalidValueError{Key: prefix + ".timeout_seconds", Value: pc.TimeoutSeconds, Allowed: ">= 0"})
		}
	}

	if c.Logging.Level != "" && !isValidLogLevel(c.Logging.Level) {
		problems = append(problems, &InvalidValueError{Key: "logging.level", Value: c.Logging.Level, Allowed: "debug, info, warn, error"})
	}
	if c.Logging.Format != "" && c.Logging.Format != "json" && c.Logging.Format != "text" {
		problems = append(problems, &InvalidValueError{Key: "logging.format", Value: c.Logging.Format, Allowed: "json, text"})
	}

	if len(problems) > 0 {
		return &ValidationError{Errors: problems}
	}
	return nil
}

// isValidLogLevel checks if the log level is valid.
func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func isValidEndpoint(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
