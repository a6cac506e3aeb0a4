package workerpool

import (
	"errors"
	"time"
)

// Config holds the configuration for the worker pool.
// It follows the same validation and defaults pattern as the other
// long-running components of this module.
type Config struct {
	// WorkerCount is the number of goroutines consuming the task queue.
	// Default: 5
	WorkerCount int

	// QueueSize is the capacity of the task queue. Execute fails with
	// ErrQueueFull once the queue is at capacity.
	// Default: 64
	QueueSize int

	// ShutdownTimeout is the maximum time to wait for in-flight tasks
	// during graceful shutdown.
	// Default: 30s
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		WorkerCount:     5,
		QueueSize:       64,
		ShutdownTimeout: 30 * time.Second,
	}
}

// Validate checks if the configuration is valid and returns an error
// with detailed information about what is invalid.
func (c Config) Validate() error {
	var errs []error

	if c.WorkerCount <= 0 {
		errs = append(errs, errors.New("WorkerCount must be greater than 0"))
	}

	if c.QueueSize <= 0 {
		errs = append(errs, errors.New("QueueSize must be greater than 0"))
	}

	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("ShutdownTimeout must be greater than 0"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}
