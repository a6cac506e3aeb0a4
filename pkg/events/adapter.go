package events

import (
	"context"
	"reflect"
)

// sameIdentity reports whether a and b are the same object. Interface
// equality is used only when both dynamic types match and are comparable;
// values of uncomparable types (funcs, slices, maps) are never identical.
func sameIdentity(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}

	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}

	return a == b
}

// AsSmartListener returns l in its self-describing form. Listeners that
// already implement SmartListener are returned unchanged; anything else is
// wrapped in an adapter that:
//
//   - reads the event-type binding from the innermost target's TypeBound
//     token (no token, a nil token, or the Event interface itself mean the
//     listener accepts every event type);
//   - accepts every source type;
//   - answers Order and Prioritized from the target's capabilities.
func AsSmartListener(l Listener) SmartListener {
	if smart, ok := l.(SmartListener); ok {
		return smart
	}

	adapter := &smartAdapter{target: l}
	if bound, ok := unwrapTarget(l).(TypeBound); ok {
		adapter.binding = bound.EventType()
	}

	return adapter
}

// smartAdapter upgrades a plain Listener to the SmartListener contract.
type smartAdapter struct {
	target  Listener
	binding reflect.Type // nil accepts every event type
}

func (a *smartAdapter) OnEvent(ctx context.Context, event Event) error {
	return a.target.OnEvent(ctx, event)
}

func (a *smartAdapter) SupportsEventType(eventType reflect.Type) bool {
	if a.binding == nil || a.binding == eventInterfaceType {
		return true
	}
	if eventType == nil {
		return false
	}
	return eventType.AssignableTo(a.binding)
}

func (a *smartAdapter) SupportsSourceType(sourceType reflect.Type) bool {
	return true
}

func (a *smartAdapter) Order() int { return OrderOf(a.target) }

func (a *smartAdapter) Prioritized() bool { return IsPrioritized(a.target) }

func (a *smartAdapter) UnwrapTarget() Listener { return a.target }

// TypedListener adapts a function over a concrete event type into a Listener
// bound to that type. The multicaster only routes assignable events to it,
// so fn needs no type checking of its own:
//
//	listener := events.TypedListener(func(ctx context.Context, event OrderPlaced) error {
//		return process(ctx, event)
//	})
//	multicaster.Register(listener)
//
// Instantiated at the Event interface itself, the listener accepts every
// event. The returned value is a pointer and therefore registrable,
// comparable, and unregistrable like any hand-written listener. Events of
// other types handed to OnEvent directly are ignored.
func TypedListener[E Event](fn func(ctx context.Context, event E) error) Listener {
	if fn == nil {
		panic("listener function is required")
	}
	return &typedListener[E]{fn: fn}
}

type typedListener[E Event] struct {
	fn func(ctx context.Context, event E) error
}

func (l *typedListener[E]) OnEvent(ctx context.Context, event Event) error {
	typed, ok := event.(E)
	if !ok {
		return nil
	}
	return l.fn(ctx, typed)
}

// EventType returns the type token of E.
func (l *typedListener[E]) EventType() reflect.Type {
	return reflect.TypeFor[E]()
}

// OrderedListener decorates l with a fixed delivery order.
// It panics when l is nil.
func OrderedListener(l Listener, order int) Listener {
	if l == nil {
		panic("listener is required")
	}
	return &orderedListener{target: l, order: order}
}

type orderedListener struct {
	target Listener
	order  int
}

func (l *orderedListener) OnEvent(ctx context.Context, event Event) error {
	return l.target.OnEvent(ctx, event)
}

func (l *orderedListener) Order() int { return l.order }

func (l *orderedListener) UnwrapTarget() Listener { return l.target }

// PriorityListener decorates l with a fixed order inside the priority class,
// delivered before every plain ordered listener. It panics when l is nil.
func PriorityListener(l Listener, order int) Listener {
	if l == nil {
		panic("listener is required")
	}
	return &priorityListener{orderedListener{target: l, order: order}}
}

type priorityListener struct {
	orderedListener
}

func (l *priorityListener) Prioritized() bool { return true }
