package events

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/JailtonJunior94/eventkit-go/pkg/observability"
	"github.com/JailtonJunior94/eventkit-go/pkg/observability/noop"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

// ErrorHandler receives the final error of a failed asynchronous delivery.
// err is always a *DeliveryError carrying the listener type and the delivery
// id. Handlers must be safe for concurrent use.
type ErrorHandler func(ctx context.Context, event Event, err error)

// multicaster is the default Multicaster implementation.
type multicaster struct {
	observability observability.Observability
	registry      *registry
	executor      Executor
	errorHandler  ErrorHandler
	newBackOff    func() backoff.BackOff

	provider  ListenerProvider
	ordering  OrderingPolicy
	retention RetentionPolicy

	published observability.Counter
	delivered observability.Counter
	failed    observability.Counter
}

// NewMulticaster creates a Multicaster. Without options it dispatches
// synchronously, memoizes every resolution, and reports through the no-op
// observability provider.
func NewMulticaster(opts ...Option) Multicaster {
	m := &multicaster{
		observability: noop.NewProvider(),
		ordering:      defaultOrderingPolicy{},
		retention:     defaultRetentionPolicy{},
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.errorHandler == nil {
		m.errorHandler = m.logDeliveryError
	}

	m.registry = newRegistry(m.provider, m.ordering, m.retention)

	metrics := m.observability.Metrics()
	m.published = metrics.Counter("events_published_total", "Events accepted by Publish", "{event}")
	m.delivered = metrics.Counter("events_delivered_total", "Successful listener deliveries", "{delivery}")
	m.failed = metrics.Counter("events_delivery_failures_total", "Failed listener deliveries", "{delivery}")

	return m
}

func (m *multicaster) Register(listener Listener) { m.registry.register(listener) }

func (m *multicaster) RegisterByName(name string) { m.registry.registerByName(name) }

func (m *multicaster) Unregister(listener Listener) { m.registry.unregister(listener) }

func (m *multicaster) UnregisterByName(name string) { m.registry.unregisterByName(name) }

func (m *multicaster) UnregisterAll() { m.registry.unregisterAll() }

func (m *multicaster) Snapshot() RegistrySnapshot { return m.registry.snapshot() }

func (m *multicaster) Publish(ctx context.Context, event Event) error {
	if event == nil {
		return ErrEventNil
	}

	eventType := fmt.Sprintf("%T", event)
	ctx, span := m.observability.Tracer().Start(ctx, "events.Publish",
		observability.WithSpanKind(observability.SpanKindInternal),
		observability.WithAttributes(observability.String("event.type", eventType)),
	)
	defer span.End()

	listeners, err := m.registry.resolve(event)
	if err != nil {
		span.SetStatus(observability.StatusCodeError, "listener resolution failed")
		span.RecordError(err)
		return err
	}

	m.published.Increment(ctx, observability.String("event.type", eventType))

	if m.executor == nil {
		return m.dispatchSync(ctx, span, event, listeners)
	}
	return m.dispatchAsync(ctx, span, event, listeners)
}

// dispatchSync invokes the listeners in order on the calling goroutine.
// The first listener error aborts the remaining listeners.
func (m *multicaster) dispatchSync(ctx context.Context, span observability.Span, event Event, listeners []Listener) error {
	for _, listener := range listeners {
		select {
		case <-ctx.Done():
			span.SetStatus(observability.StatusCodeError, "context cancelled")
			return ctx.Err()
		default:
		}

		if err := listener.OnEvent(ctx, event); err != nil {
			m.failed.Increment(ctx, observability.String("listener", fmt.Sprintf("%T", listener)))
			span.SetStatus(observability.StatusCodeError, "listener failed")
			span.RecordError(err)
			return err
		}

		m.delivered.Increment(ctx, observability.String("listener", fmt.Sprintf("%T", listener)))
	}
	return nil
}

// dispatchAsync submits one delivery task per listener and returns after
// submission. Task errors go to the error handler, never to the caller;
// submission errors do. Tasks keep the publish context's values but not its
// cancellation, since delivery outlives the Publish call.
func (m *multicaster) dispatchAsync(ctx context.Context, span observability.Span, event Event, listeners []Listener) error {
	taskCtx := context.WithoutCancel(ctx)

	for _, listener := range listeners {
		deliveryID := uuid.NewString()
		err := m.executor.Execute(func() {
			m.deliver(taskCtx, event, listener, deliveryID)
		})
		if err != nil {
			span.SetStatus(observability.StatusCodeError, "task submission failed")
			span.RecordError(err)
			return fmt.Errorf("submitting delivery %s to executor: %w", deliveryID, err)
		}
	}
	return nil
}

// deliver runs one asynchronous delivery, retrying per the configured
// policy and reporting the final error to the error handler.
func (m *multicaster) deliver(ctx context.Context, event Event, listener Listener, deliveryID string) {
	listenerType := fmt.Sprintf("%T", listener)
	ctx, span := m.observability.Tracer().Start(ctx, "events.Deliver",
		observability.WithSpanKind(observability.SpanKindInternal),
		observability.WithAttributes(
			observability.String("listener", listenerType),
			observability.String("delivery.id", deliveryID),
		),
	)
	defer span.End()

	operation := func() error {
		return m.attempt(ctx, event, listener)
	}

	op := "deliver"
	var err error
	if m.newBackOff != nil {
		op = "retry"
		err = backoff.Retry(operation, backoff.WithContext(m.newBackOff(), ctx))
	} else {
		err = operation()
	}

	if err == nil {
		m.delivered.Increment(ctx, observability.String("listener", listenerType))
		return
	}

	m.failed.Increment(ctx, observability.String("listener", listenerType))
	span.SetStatus(observability.StatusCodeError, "delivery failed")
	span.RecordError(err)
	m.errorHandler(ctx, event, NewDeliveryError(op, listener, deliveryID, err))
}

// attempt invokes the listener once, converting a panic into an error.
func (m *multicaster) attempt(ctx context.Context, event Event, listener Listener) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("listener panic: %v\n%s", r, debug.Stack())
		}
	}()
	return listener.OnEvent(ctx, event)
}

// logDeliveryError is the default ErrorHandler. It reports the failure
// through the observability facade.
func (m *multicaster) logDeliveryError(ctx context.Context, event Event, err error) {
	m.observability.Logger().Error(ctx, "event delivery failed",
		observability.String("event.type", fmt.Sprintf("%T", event)),
		observability.Error(err),
	)
}
