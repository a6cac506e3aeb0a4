package events

import (
	"context"
	"reflect"
)

// SourceFilteredListener delivers events to its delegate only when the
// event's source is the configured source object. Matching is by identity,
// so two equal-but-distinct sources do not pass; use a pointer or another
// comparable value as the source.
type SourceFilteredListener struct {
	source   any
	delegate Listener
	smart    SmartListener
}

// FilterBySource decorates delegate so it only receives events originating
// from source. It panics when source or delegate is nil.
func FilterBySource(source any, delegate Listener) *SourceFilteredListener {
	if source == nil {
		panic("source is required")
	}
	if delegate == nil {
		panic("delegate listener is required")
	}

	return &SourceFilteredListener{
		source:   source,
		delegate: delegate,
		smart:    AsSmartListener(delegate),
	}
}

// OnEvent forwards the event to the delegate when the source matches and
// silently drops it otherwise.
func (l *SourceFilteredListener) OnEvent(ctx context.Context, event Event) error {
	if !sameIdentity(event.Source(), l.source) {
		return nil
	}
	return l.delegate.OnEvent(ctx, event)
}

// SupportsEventType reports whether the delegate wants the event type.
func (l *SourceFilteredListener) SupportsEventType(eventType reflect.Type) bool {
	return l.smart.SupportsEventType(eventType)
}

// SupportsSourceType reports whether events with the given source type can
// possibly carry the configured source: t must be the source's own type or
// an interface it implements.
func (l *SourceFilteredListener) SupportsSourceType(t reflect.Type) bool {
	if t == nil {
		return false
	}
	return reflect.TypeOf(l.source).AssignableTo(t)
}

// Order reports the delegate's delivery order.
func (l *SourceFilteredListener) Order() int { return OrderOf(l.delegate) }

// Prioritized reports whether the delegate belongs to the priority class.
func (l *SourceFilteredListener) Prioritized() bool { return IsPrioritized(l.delegate) }

// UnwrapTarget exposes the filtered delegate.
func (l *SourceFilteredListener) UnwrapTarget() Listener { return l.delegate }
