package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables recognised by Load
const (
	EnvListenAddress   = "RAG_GATEWAY_LISTEN_ADDRESS"
	EnvBackendURL      = "RAG_GATEWAY_BACKEND_URL"
	EnvBackendTimeout  = "RAG_GATEWAY_BACKEND_TIMEOUT"
	EnvLogLevel        = "RAG_GATEWAY_LOG_LEVEL"
	EnvLogFormat       = "RAG_GATEWAY_LOG_FORMAT"
	EnvMetricsEnabled  = "RAG_GATEWAY_METRICS_ENABLED"
	EnvSwaggerEnabled  = "RAG_GATEWAY_SWAGGER_ENABLED"
	EnvShutdownTimeout = "RAG_GATEWAY_SHUTDOWN_TIMEOUT"

	// EnvPythonServiceURL is honoured for deployments configured for the
	// Python backend directly. RAG_GATEWAY_BACKEND_URL takes precedence.
	EnvPythonServiceURL = "PYTHON_SERVICE_URL"
)

// DotEnvFile is read, when present, before environment overrides are applied
const DotEnvFile = ".env"

// Load builds the configuration. path may be empty, in which case only
// defaults and the environment are used.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// loadDotEnv loads file into the process environment without overriding
// variables that are already set. A missing file is not an error.
func loadDotEnv(file string) error {
	err := godotenv.Load(file)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", file, err)
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv(EnvListenAddress); val != "" {
		cfg.Server.Address = val
	}

	if val := os.Getenv(EnvBackendURL); val != "" {
		cfg.Backend.URL = val
	} else if val := os.Getenv(EnvPythonServiceURL); val != "" {
		cfg.Backend.URL = val
	}

	if val := os.Getenv(EnvBackendTimeout); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Backend.Timeout = d
		}
	}
	if val := os.Getenv(EnvShutdownTimeout); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ShutdownTimeout = d
		}
	}

	if val := os.Getenv(EnvLogLevel); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv(EnvLogFormat); val != "" {
		cfg.Logging.Format = val
	}

	if val := os.Getenv(EnvMetricsEnabled); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if val := os.Getenv(EnvSwaggerEnabled); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Swagger.Enabled = b
		}
	}
}
