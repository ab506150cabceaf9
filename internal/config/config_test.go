package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "http://localhost:5000", cfg.Backend.URL)
	assert.Equal(t, 60*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Backend.URL, cfg.Backend.URL)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeFile(t, "gateway.yaml", `
server:
  address: ":9090"
backend:
  url: "http://rag-backend:5000"
  timeout: 15s
logging:
  level: debug
  format: console
metrics:
  enabled: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "http://rag-backend:5000", cfg.Backend.URL)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.False(t, cfg.Metrics.Enabled)

	// untouched sections keep their defaults
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.True(t, cfg.Swagger.Enabled)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read configuration file")
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeFile(t, "bad.yaml", "backend: [unclosed")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse configuration file")
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeFile(t, "gateway.yaml", `
backend:
  url: "http://from-file:5000"
`)

	t.Setenv(EnvBackendURL, "http://from-env:5000")
	t.Setenv(EnvBackendTimeout, "5s")
	t.Setenv(EnvListenAddress, ":7000")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvMetricsEnabled, "false")
	t.Setenv(EnvSwaggerEnabled, "not-a-bool")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://from-env:5000", cfg.Backend.URL)
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, ":7000", cfg.Server.Address)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.False(t, cfg.Metrics.Enabled)
	assert.True(t, cfg.Swagger.Enabled, "unparsable override is ignored")
}

func TestLoad_PythonServiceURL(t *testing.T) {
	t.Setenv(EnvPythonServiceURL, "http://python:5000")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://python:5000", cfg.Backend.URL)

	t.Setenv(EnvBackendURL, "http://preferred:5000")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://preferred:5000", cfg.Backend.URL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty backend url", func(c *Config) { c.Backend.URL = "" }, "backend.url is required"},
		{"relative backend url", func(c *Config) { c.Backend.URL = "localhost:5000" }, "must use http or https"},
		{"backend url without host", func(c *Config) { c.Backend.URL = "http://" }, "has no host"},
		{"zero timeout", func(c *Config) { c.Backend.Timeout = 0 }, "backend.timeout must be positive"},
		{"unknown log level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"unknown log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"metrics path", func(c *Config) { c.Metrics.Path = "metrics" }, "metrics.path"},
		{"empty address", func(c *Config) { c.Server.Address = "" }, "server.address is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Backend.URL = ""
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend.url is required")
	assert.Contains(t, err.Error(), "logging.level")
}
