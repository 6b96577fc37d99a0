package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wirely.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "http://localhost:8080/v1/agent/completions", cfg.LLM.Endpoint)
	assert.Equal(t, 10, cfg.Agent.MaxIterations)
	assert.Equal(t, 12, cfg.Agent.HistoryWindow)
	assert.Equal(t, 10*time.Millisecond, cfg.DeliveryDelay())
	assert.Equal(t, time.Duration(0), cfg.Timeout())
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
}

func TestLoad_OverridesKeepOmittedDefaults(t *testing.T) {
	path := writeConfig(t, `
llm:
  endpoint: https://llm.internal/v1/completions
  api_key: k-123
  timeout_seconds: 30
agent:
  max_iterations: 5
logging:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://llm.internal/v1/completions", cfg.LLM.Endpoint)
	assert.Equal(t, "k-123", cfg.LLM.APIKey)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.Equal(t, 5, cfg.Agent.MaxIterations)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())

	// Omitted fields keep their defaults.
	assert.Equal(t, 12, cfg.Agent.HistoryWindow)
	assert.Equal(t, 10*time.Millisecond, cfg.DeliveryDelay())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "llm: [this is not\n  a mapping")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_ValidationFailures(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"empty endpoint", "llm:\n  endpoint: \"\"\n", "llm.endpoint is required"},
		{"negative timeout", "llm:\n  timeout_seconds: -1\n", "timeout_seconds must not be negative"},
		{"zero iterations", "agent:\n  max_iterations: 0\n", "max_iterations must be at least 1"},
		{"negative window", "agent:\n  history_window: -2\n", "history_window must not be negative"},
		{"negative delay", "notifier:\n  delivery_delay_ms: -5\n", "delivery_delay_ms must not be negative"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLogLevel_UnknownFallsBackToInfo(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "verbose"
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())

	cfg.Logging.Level = "warn"
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel())
	cfg.Logging.Level = "error"
	assert.Equal(t, slog.LevelError, cfg.LogLevel())
}
