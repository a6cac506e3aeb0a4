package events

import (
	"context"
	"reflect"
	"testing"
)

type namedSource struct{ name string }

func (s *namedSource) Name() string { return s.name }

type sourceName interface{ Name() string }

// ============================================================================
// SOURCE FILTER TESTS
// ============================================================================

func TestFilterBySource_NilArgumentsPanic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil source")
		}
	}()
	FilterBySource(nil, &testListener{})
}

func TestFilterBySource_NilDelegatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil delegate")
		}
	}()
	FilterBySource(&testSource{}, nil)
}

func TestFilterBySource_MatchesByIdentity(t *testing.T) {
	source := &testSource{name: "checkout"}
	delegate := &testListener{}
	filter := FilterBySource(source, delegate)

	if err := filter.OnEvent(context.Background(), &testEvent{source: source}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delegate.GetCallCount() != 1 {
		t.Errorf("expected 1 delivery, got %d", delegate.GetCallCount())
	}
}

func TestFilterBySource_EqualButDistinctDoesNotMatch(t *testing.T) {
	delegate := &testListener{}
	filter := FilterBySource(&testSource{name: "checkout"}, delegate)

	// Same field values, different object.
	other := &testSource{name: "checkout"}
	if err := filter.OnEvent(context.Background(), &testEvent{source: other}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delegate.GetCallCount() != 0 {
		t.Error("expected an equal but distinct source to be dropped")
	}
}

func TestFilterBySource_SourcelessEventDropped(t *testing.T) {
	delegate := &testListener{}
	filter := FilterBySource(&testSource{}, delegate)

	if err := filter.OnEvent(context.Background(), &testEvent{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delegate.GetCallCount() != 0 {
		t.Error("expected a sourceless event to be dropped")
	}
}

func TestFilterBySource_SupportsSourceType(t *testing.T) {
	filter := FilterBySource(&namedSource{name: "checkout"}, &testListener{})

	if !filter.SupportsSourceType(reflect.TypeOf(&namedSource{})) {
		t.Error("expected the source's own type to be supported")
	}
	if !filter.SupportsSourceType(reflect.TypeOf((*sourceName)(nil)).Elem()) {
		t.Error("expected an interface the source implements to be supported")
	}
	if filter.SupportsSourceType(reflect.TypeOf(&testSource{})) {
		t.Error("expected an unrelated source type to be rejected")
	}
	if filter.SupportsSourceType(nil) {
		t.Error("expected a nil source type to be rejected")
	}
}

func TestFilterBySource_EventTypeDelegation(t *testing.T) {
	delegate := TypedListener(func(ctx context.Context, event *testEvent) error { return nil })
	filter := FilterBySource(&testSource{}, delegate)

	if !filter.SupportsEventType(reflect.TypeOf(&testEvent{})) {
		t.Error("expected the delegate's bound type to be supported")
	}
	if filter.SupportsEventType(reflect.TypeOf(&otherEvent{})) {
		t.Error("expected unrelated event types to be rejected")
	}
}

func TestFilterBySource_ForwardsOrderAndPriority(t *testing.T) {
	filter := FilterBySource(&testSource{}, PriorityListener(&testListener{}, 4))

	if filter.Order() != 4 {
		t.Errorf("expected delegate order 4, got %d", filter.Order())
	}
	if !filter.Prioritized() {
		t.Error("expected priority to shine through the filter")
	}
}

func TestFilterBySource_ExcludedByRegistryForOtherSources(t *testing.T) {
	delegateCalls := 0
	source := &namedSource{name: "checkout"}
	filter := FilterBySource(source, funcListener(func(ctx context.Context, event Event) error {
		delegateCalls++
		return nil
	}))

	multicaster := NewMulticaster()
	multicaster.Register(filter)

	// Events from a different source type never reach the filter at all.
	if err := multicaster.Publish(context.Background(), &testEvent{source: &testSource{}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delegateCalls != 0 {
		t.Error("expected the filter to be pruned for foreign source types")
	}

	// Events from the configured source pass.
	if err := multicaster.Publish(context.Background(), &testEvent{source: source}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delegateCalls != 1 {
		t.Errorf("expected 1 delivery, got %d", delegateCalls)
	}
}
