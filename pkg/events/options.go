package events

import (
	"github.com/JailtonJunior94/eventkit-go/pkg/observability"

	"github.com/cenkalti/backoff/v4"
)

// Option configures a Multicaster at construction time.
type Option func(*multicaster)

// WithObservability sets the observability provider used for spans,
// counters, and the default error handler's logging.
func WithObservability(o observability.Observability) Option {
	return func(m *multicaster) {
		m.observability = o
	}
}

// WithExecutor switches Publish to asynchronous dispatch: every delivery
// becomes a task submitted to executor.
func WithExecutor(executor Executor) Option {
	return func(m *multicaster) {
		m.executor = executor
	}
}

// WithListenerProvider wires the provider that resolves names registered
// through RegisterByName.
func WithListenerProvider(provider ListenerProvider) Option {
	return func(m *multicaster) {
		m.provider = provider
	}
}

// WithOrderingPolicy replaces the default delivery order (priority class
// first, then ascending order values, registration order on ties).
func WithOrderingPolicy(policy OrderingPolicy) Option {
	return func(m *multicaster) {
		m.ordering = policy
	}
}

// WithRetentionPolicy limits which (event type, source type) pairs the
// resolution cache may keep.
func WithRetentionPolicy(policy RetentionPolicy) Option {
	return func(m *multicaster) {
		m.retention = policy
	}
}

// WithErrorHandler replaces the default handler for failed asynchronous
// deliveries.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(m *multicaster) {
		m.errorHandler = handler
	}
}

// WithRetry retries failed asynchronous deliveries. newBackOff builds a
// fresh policy per delivery, so deliveries running in parallel never share
// back-off state:
//
//	events.WithRetry(func() backoff.BackOff {
//		return backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3)
//	})
func WithRetry(newBackOff func() backoff.BackOff) Option {
	return func(m *multicaster) {
		m.newBackOff = newBackOff
	}
}
