package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate reports every problem found in the configuration
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Address == "" {
		errs = append(errs, errors.New("server.address is required"))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must be positive"))
	}

	if err := validateBackendURL(c.Backend.URL); err != nil {
		errs = append(errs, err)
	}
	if c.Backend.Timeout <= 0 {
		errs = append(errs, errors.New("backend.timeout must be positive"))
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q is not one of json, console", c.Logging.Format))
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("metrics.path %q must start with /", c.Metrics.Path))
	}

	return errors.Join(errs...)
}

func validateBackendURL(raw string) error {
	if raw == "" {
		return errors.New("backend.url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("backend.url %q is invalid: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend.url %q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("backend.url %q has no host", raw)
	}
	return nil
}
