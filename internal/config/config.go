// Package config builds the immutable process-wide configuration. Secrets
// are read from the environment exactly once at startup and carried into the
// pipeline by reference; stage logic never reads ambient global state.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the service needs. A missing secret is not fatal
// at startup; the affected stage reports a config-class failure per request
// until the operator supplies it.
type Config struct {
	// Port is the HTTP listen port.
	Port int

	// RegistryToken authenticates against the business-registry provider.
	RegistryToken string
	// RegistryBaseURL is the provider's search-by-keyword endpoint.
	RegistryBaseURL string
	// RegistryUserAgent overrides the User-Agent sent to the provider.
	RegistryUserAgent string
	// RegistryTimeout bounds a single lookup request.
	RegistryTimeout time.Duration

	// CompletionAPIKey authenticates against the completion provider.
	CompletionAPIKey string
	// CompletionBaseURL is the chat-completions base URL.
	CompletionBaseURL string
	// CompletionModel is the chat model used for report generation.
	CompletionModel string
	// CompletionTimeout bounds a single completion request.
	CompletionTimeout time.Duration

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// LogFormat is json or console.
	LogFormat string
}

// FromEnv reads the configuration from the environment. Every value has a
// default except the two provider secrets, which default to empty.
func FromEnv() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("port", 8080)
	v.SetDefault("tianyancha_token", "")
	v.SetDefault("tianyancha_api_url", "")
	v.SetDefault("registry_user_agent", "")
	v.SetDefault("registry_timeout", "10s")
	v.SetDefault("deepseek_api_key", "")
	v.SetDefault("deepseek_base_url", "")
	v.SetDefault("deepseek_model", "")
	v.SetDefault("completion_timeout", "120s")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	return &Config{
		Port:              v.GetInt("port"),
		RegistryToken:     v.GetString("tianyancha_token"),
		RegistryBaseURL:   v.GetString("tianyancha_api_url"),
		RegistryUserAgent: v.GetString("registry_user_agent"),
		RegistryTimeout:   v.GetDuration("registry_timeout"),
		CompletionAPIKey:  v.GetString("deepseek_api_key"),
		CompletionBaseURL: v.GetString("deepseek_base_url"),
		CompletionModel:   v.GetString("deepseek_model"),
		CompletionTimeout: v.GetDuration("completion_timeout"),
		LogLevel:          v.GetString("log_level"),
		LogFormat:         v.GetString("log_format"),
	}
}

// MissingSecrets lists the environment variables for absent credentials.
// Used for startup warnings only; requests fail individually until set.
func (c *Config) MissingSecrets() []string {
	var missing []string
	if c.RegistryToken == "" {
		missing = append(missing, "TIANYANCHA_TOKEN")
	}
	if c.CompletionAPIKey == "" {
		missing = append(missing, "DEEPSEEK_API_KEY")
	}
	return missing
}
