package events

import (
	"errors"
	"fmt"
)

var (
	// ErrEventNil is returned when Publish is called with a nil event.
	ErrEventNil = errors.New("event cannot be nil")

	// ErrListenerNotFound is returned when a registered listener name cannot
	// be resolved by the configured ListenerProvider.
	ErrListenerNotFound = errors.New("listener not found")

	// ErrNoListenerProvider is returned when a listener name is registered
	// but no ListenerProvider was configured.
	ErrNoListenerProvider = errors.New("no listener provider configured")
)

// DeliveryError describes a failed delivery to a single listener during
// asynchronous dispatch. It carries the delivery identity so error handlers
// can correlate retries and logs.
type DeliveryError struct {
	Op         string // failing operation: "deliver" or "retry"
	Listener   string // concrete listener type
	DeliveryID string // unique id assigned to the delivery
	Err        error  // underlying cause
}

// NewDeliveryError creates a DeliveryError for the given listener and
// delivery attempt.
func NewDeliveryError(op string, listener Listener, deliveryID string, err error) *DeliveryError {
	return &DeliveryError{
		Op:         op,
		Listener:   fmt.Sprintf("%T", listener),
		DeliveryID: deliveryID,
		Err:        err,
	}
}

// Error implements the error interface.
func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery error [%s] to listener %s (delivery %s): %v", e.Op, e.Listener, e.DeliveryID, e.Err)
}

// Unwrap returns the underlying error for errors.Is/errors.As support.
func (e *DeliveryError) Unwrap() error {
	return e.Err
}
