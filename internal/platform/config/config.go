// Package config loads application configuration from environment variables.
// All variables use the QB_ prefix.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	AI        AIConfig
	Execution ExecutionConfig
	Log       LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int
	Host string
}

// DatabaseConfig holds MongoDB connection settings.
type DatabaseConfig struct {
	URI  string
	Name string
}

// CacheConfig holds Dragonfly/Redis connection settings.
type CacheConfig struct {
	URL     string
	Enabled bool
}

// AIConfig holds configuration for all AI providers.
type AIConfig struct {
	Google GoogleConfig
	OpenAI OpenAIConfig
	Model  string
}

// GoogleConfig holds Google Gemini provider settings.
type GoogleConfig struct {
	APIKey string
}

// OpenAIConfig holds OpenAI provider settings.
type OpenAIConfig struct {
	APIKey string
}

// ExecutionConfig holds settings for the code execution service.
type ExecutionConfig struct {
	BaseURL        string
	APIKey         string
	PollIntervalMS int
	MaxPolls       int
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with QB_ prefix.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("QB_SERVER_PORT", 8080),
			Host: envStr("QB_SERVER_HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			URI:  envStr("QB_DATABASE_URI", "mongodb://localhost:27017"),
			Name: envStr("QB_DATABASE_NAME", "question_bank"),
		},
		Cache: CacheConfig{
			URL:     envStr("QB_CACHE_URL", "redis://localhost:6379"),
			Enabled: envBool("QB_CACHE_ENABLED", false),
		},
		AI: AIConfig{
			Google: GoogleConfig{
				APIKey: envStr("QB_AI_GOOGLE_API_KEY", ""),
			},
			OpenAI: OpenAIConfig{
				APIKey: envStr("QB_AI_OPENAI_API_KEY", ""),
			},
			Model: envStr("QB_AI_MODEL", ""),
		},
		Execution: ExecutionConfig{
			BaseURL:        envStr("QB_EXECUTION_BASE_URL", "https://judge0-ce.p.rapidapi.com"),
			APIKey:         envStr("QB_EXECUTION_API_KEY", ""),
			PollIntervalMS: envInt("QB_EXECUTION_POLL_INTERVAL_MS", 1500),
			MaxPolls:       envInt("QB_EXECUTION_MAX_POLLS", 40),
		},
		Log: LogConfig{
			Level:  envStr("QB_LOG_LEVEL", "info"),
			Format: envStr("QB_LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Database.URI == "" {
		return fmt.Errorf("QB_DATABASE_URI is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("QB_DATABASE_NAME is required")
	}

	if !c.HasAIProvider() {
		return fmt.Errorf("at least one AI provider must be configured")
	}

	if c.Execution.MaxPolls <= 0 {
		return fmt.Errorf("QB_EXECUTION_MAX_POLLS must be positive, got %d", c.Execution.MaxPolls)
	}

	return nil
}

// HasAIProvider returns true if at least one AI provider is configured.
func (c *Config) HasAIProvider() bool {
	return c.AI.Google.APIKey != "" || c.AI.OpenAI.APIKey != ""
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.EqualFold(v, "true") || v == "1"
	}
	return fallback
}
