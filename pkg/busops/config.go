package busops

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config holds the ops server configuration.
type Config struct {
	// Network configuration
	Address string

	// Timeout configuration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Security configuration
	BodyLimit int // Maximum request body size in bytes

	// Service identification
	ServiceName    string
	ServiceVersion string
	Environment    string

	// CORS configuration
	CORSOrigins string
	EnableCORS  bool

	// Endpoint toggles
	EnableMetrics      bool
	EnableHealthChecks bool
}

// DefaultConfig returns a new Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:            ":8080",
		ReadTimeout:        30 * time.Second,
		WriteTimeout:       30 * time.Second,
		IdleTimeout:        120 * time.Second,
		BodyLimit:          4 * 1024 * 1024,
		ServiceName:        "unknown-service",
		ServiceVersion:     "unknown",
		Environment:        "development",
		CORSOrigins:        "",
		EnableCORS:         false,
		EnableMetrics:      false,
		EnableHealthChecks: true,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.ServiceName) == "" {
		errs = append(errs, errors.New("service name is required"))
	}

	if strings.TrimSpace(c.ServiceVersion) == "" {
		errs = append(errs, errors.New("service version is required"))
	}

	if strings.TrimSpace(c.Environment) == "" {
		errs = append(errs, errors.New("environment is required"))
	}

	if c.ReadTimeout <= 0 {
		errs = append(errs, fmt.Errorf("read timeout must be positive, got %v", c.ReadTimeout))
	}

	if c.WriteTimeout <= 0 {
		errs = append(errs, fmt.Errorf("write timeout must be positive, got %v", c.WriteTimeout))
	}

	if c.IdleTimeout <= 0 {
		errs = append(errs, fmt.Errorf("idle timeout must be positive, got %v", c.IdleTimeout))
	}

	if c.BodyLimit <= 0 {
		errs = append(errs, fmt.Errorf("body limit must be positive, got %d", c.BodyLimit))
	}

	if c.EnableCORS && strings.TrimSpace(c.CORSOrigins) == "" {
		errs = append(errs, errors.New("CORS origins are required when CORS is enabled"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}
