package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration for errors and inconsistencies.
// Returns nil if valid, or the joined validation errors.
func Validate(cfg *Config) error {
	var errs []error

	// Worker name is a base name, not a path
	if strings.ContainsAny(cfg.WorkerName, `/\`) {
		errs = append(errs, ValidationError{
			Field:   "worker_name",
			Message: fmt.Sprintf("must be a file name, not a path (got %q)", cfg.WorkerName),
		})
	}

	if cfg.StopTimeout <= 0 {
		errs = append(errs, ValidationError{
			Field:   "stop_timeout",
			Message: "must be positive",
		})
	}

	if strings.TrimSpace(cfg.GreetName) == "" {
		errs = append(errs, ValidationError{
			Field:   "greet_name",
			Message: "must not be empty",
		})
	}

	if cfg.LockFile == "" {
		errs = append(errs, ValidationError{
			Field:   "lock_file",
			Message: "must not be empty",
		})
	}

	if cfg.MetricsAddr != "" {
		if _, _, err := net.SplitHostPort(cfg.MetricsAddr); err != nil {
			errs = append(errs, ValidationError{
				Field:   "metrics_addr",
				Message: fmt.Sprintf("must be host:port (got %q)", cfg.MetricsAddr),
			})
		}
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[cfg.LogFormat] {
		errs = append(errs, ValidationError{
			Field:   "log_format",
			Message: fmt.Sprintf("must be 'json' or 'text' (got %q)", cfg.LogFormat),
		})
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
