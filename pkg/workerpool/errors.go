package workerpool

import (
	"errors"
	"fmt"
)

var (
	// ErrPoolClosed is returned by Execute after Shutdown has started.
	ErrPoolClosed = errors.New("worker pool is closed")

	// ErrQueueFull is returned by Execute when the task queue is at
	// capacity. Callers decide whether to drop, retry, or block.
	ErrQueueFull = errors.New("worker pool queue is full")

	// ErrAlreadyRunning is returned by Start when the pool is running.
	ErrAlreadyRunning = errors.New("worker pool is already running")
)

// ShutdownError represents an error during graceful shutdown.
type ShutdownError struct {
	Message string // Human-readable error message
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *ShutdownError) Error() string {
	return fmt.Sprintf("shutdown error: %s: %v", e.Message, e.Err)
}

// Unwrap returns the underlying error for errors.Is and errors.As.
func (e *ShutdownError) Unwrap() error {
	return e.Err
}
