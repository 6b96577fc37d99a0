// Package config loads the engine configuration from YAML, filling in
// defaults for anything the file leaves out.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the complete engine configuration.
type Config struct {
	LLM struct {
		Endpoint       string `yaml:"endpoint"`
		APIKey         string `yaml:"api_key"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"llm"`

	Agent struct {
		SystemPrompt  string `yaml:"system_prompt"`
		MaxIterations int    `yaml:"max_iterations"`
		HistoryWindow int    `yaml:"history_window"`
	} `yaml:"agent"`

	Notifier struct {
		DeliveryDelayMS int `yaml:"delivery_delay_ms"`
	} `yaml:"notifier"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// Default returns the configuration used when no file overrides it.
// TimeoutSeconds defaults to 0: a hung completion request blocks the whole
// Execute call, and the iteration cap is the only termination guarantee.
func Default() *Config {
	cfg := &Config{}
	cfg.LLM.Endpoint = "http://localhost:8080/v1/agent/completions"
	cfg.Agent.MaxIterations = 10
	cfg.Agent.HistoryWindow = 12
	cfg.Notifier.DeliveryDelayMS = 10
	cfg.Logging.Level = "info"
	return cfg
}

// Load reads and parses the configuration file, starting from Default so
// omitted fields keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Timeout returns the whole-request completion timeout; zero means none.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.LLM.TimeoutSeconds) * time.Second
}

// DeliveryDelay returns the notifier's per-delivery pause.
func (c *Config) DeliveryDelay() time.Duration {
	return time.Duration(c.Notifier.DeliveryDelayMS) * time.Millisecond
}

// LogLevel maps the configured level name onto slog levels; unknown names
// fall back to info.
func (c *Config) LogLevel() slog.Level {
	switch c.Logging.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// validate checks that required fields are present and sane.
func (c *Config) validate() error {
	if c.LLM.Endpoint == "" {
		return fmt.Errorf("llm.endpoint is required")
	}
	if c.LLM.TimeoutSeconds < 0 {
		return fmt.Errorf("llm.timeout_seconds must not be negative")
	}
	if c.Agent.MaxIterations < 1 {
		return fmt.Errorf("agent.max_iterations must be at least 1")
	}
	if c.Agent.HistoryWindow < 0 {
		return fmt.Errorf("agent.history_window must not be negative")
	}
	if c.Notifier.DeliveryDelayMS < 0 {
		return fmt.Errorf("notifier.delivery_delay_ms must not be negative")
	}
	return nil
}
