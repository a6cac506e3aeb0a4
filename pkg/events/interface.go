// Package events provides in-process event multicasting with type-based
// listener matching, deterministic ordering, and pluggable dispatch strategies.
//
// Publishers hand an Event to a Multicaster. The multicaster resolves the
// registered listeners whose declared event-type and source-type interests
// match, orders them, and invokes them synchronously on the publishing
// goroutine or asynchronously through an Executor. Resolution results are
// memoized per (event type, source type) pair.
package events

import (
	"context"
	"reflect"
)

// Event represents something that happened inside the process, carrying the
// object it originated from.
//
// Source Identity:
// Source returns the object the event is about. Listeners attached through
// FilterBySource compare sources by identity, so publishers should hold a
// stable reference to the source for as long as filtered listeners are
// registered against it. A nil source is allowed for custom implementations;
// such events only reach listeners whose source predicate accepts the
// unknown source type.
type Event interface {
	// Source returns the object on which the event initially occurred.
	Source() any
}

// Listener receives events published through a Multicaster.
// Implementations must be safe for concurrent use if shared across goroutines.
//
// Listener Identity:
// Listeners are deduplicated and removed by identity. Always use pointer
// receivers and register listener pointers so Register, Unregister, and the
// duplicate collapse behave predictably.
//
// Context Cancellation:
// Listeners MUST respect context cancellation by checking ctx.Done() during
// long-running operations. The multicaster checks cancellation before each
// synchronous invocation, but cannot interrupt a listener mid-flight.
type Listener interface {
	// OnEvent processes a published event.
	// Returns an error if the event cannot be handled successfully.
	OnEvent(ctx context.Context, event Event) error
}

// SmartListener is a Listener that declares which events it wants. The
// multicaster consults both predicates during resolution and memoizes the
// outcome per (event type, source type) pair, so implementations must answer
// consistently for the lifetime of the registration.
//
// Plain listeners are adapted into this form by AsSmartListener; implement
// SmartListener directly only when the matching rules go beyond a single
// event-type binding.
type SmartListener interface {
	Listener
	Ordered

	// SupportsEventType reports whether the listener wants events of the
	// given dynamic type.
	SupportsEventType(eventType reflect.Type) bool

	// SupportsSourceType reports whether the listener wants events whose
	// source has the given dynamic type. A nil sourceType means the event
	// carries no source.
	SupportsSourceType(sourceType reflect.Type) bool
}

// Multicaster routes published events to the registered listeners whose
// declared interests match the event and its source. All implementations
// must be safe for concurrent use by multiple goroutines.
//
// Mutations tolerate nil and empty arguments as no-ops, take effect
// immediately, and invalidate all memoized resolution state before
// returning. Listeners may mutate the multicaster from inside OnEvent.
type Multicaster interface {
	// Register adds a listener instance. Registering the same instance
	// twice holds a single slot.
	Register(listener Listener)

	// RegisterByName adds a listener by provider name. The instance is
	// looked up through the configured ListenerProvider on every publish,
	// so swapping the instance behind the name takes effect without
	// re-registration.
	RegisterByName(name string)

	// Unregister removes a directly registered listener instance.
	// Unknown listeners are ignored.
	Unregister(listener Listener)

	// UnregisterByName removes a listener name. Unknown names are ignored.
	UnregisterByName(name string)

	// UnregisterAll removes every registered listener and name.
	UnregisterAll()

	// Publish delivers the event to every matching listener.
	//
	// Without an executor, delivery is synchronous in listener order:
	// cancellation is checked before each invocation and the first listener
	// error aborts the remainder. With an executor, every delivery is
	// submitted as its own task and Publish returns after submission;
	// listener errors are routed to the error handler, while executor
	// submission errors are returned to the caller.
	//
	// Publishing a nil event returns ErrEventNil. A registered name the
	// provider cannot resolve returns an error wrapping ErrListenerNotFound.
	// No matching listeners is not an error.
	Publish(ctx context.Context, event Event) error

	// Snapshot reports the current registrations and cache occupancy for
	// introspection. It never exposes listener instances.
	Snapshot() RegistrySnapshot
}

// Executor runs delivery tasks for a Multicaster in async mode. A bounded
// worker pool satisfies this interface.
type Executor interface {
	// Execute submits a task for asynchronous execution. It returns an error
	// when the task cannot be accepted, for example because the executor is
	// shut down or its queue is full.
	Execute(task func()) error
}
