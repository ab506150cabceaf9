// Package config loads the gateway configuration from defaults, an optional
// YAML file, an optional .env file and environment variables, in that order
// of increasing precedence.
package config

import (
	"time"
)

// Config is the complete gateway configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Backend BackendConfig `yaml:"backend"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Swagger SwaggerConfig `yaml:"swagger"`
}

// ServerConfig holds the inbound HTTP server settings
type ServerConfig struct {
	Address         string        `yaml:"address"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowedOrigin   string        `yaml:"allowed_origin"`
}

// BackendConfig holds the settings for the downstream RAG backend
type BackendConfig struct {
	URL                 string        `yaml:"url"`
	Timeout             time.Duration `yaml:"timeout"` // per-call deadline
	MaxIdleConns        int           `yaml:"max_idle_conns"`
	MaxIdleConnsPerHost int           `yaml:"max_idle_conns_per_host"`
	IdleConnTimeout     time.Duration `yaml:"idle_conn_timeout"`
}

// LoggingConfig holds the logger settings
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
}

// MetricsConfig holds the Prometheus settings
type MetricsConfig struct {
	Enabled         bool      `yaml:"enabled"`
	Path            string    `yaml:"path"`
	Namespace       string    `yaml:"namespace"`
	Subsystem       string    `yaml:"subsystem"`
	DurationBuckets []float64 `yaml:"duration_buckets"`
}

// SwaggerConfig holds the API documentation settings
type SwaggerConfig struct {
	Enabled bool   `yaml:"enabled"`
	DocURL  string `yaml:"doc_url"`
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Address:         ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    90 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			AllowedOrigin:   "*",
		},
		Backend: BackendConfig{
			URL:                 "http://localhost:5000",
			Timeout:             60 * time.Second,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Path:      "/metrics",
			Namespace: "rag",
			Subsystem: "gateway",
		},
		Swagger: SwaggerConfig{
			Enabled: true,
			DocURL:  "/swagger/doc.json",
		},
	}
}
