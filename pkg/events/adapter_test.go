package events

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

// ============================================================================
// IDENTITY TESTS
// ============================================================================

func TestSameIdentity_Pointers(t *testing.T) {
	a := &testListener{}
	b := &testListener{}

	if !sameIdentity(a, a) {
		t.Error("expected a listener to be identical to itself")
	}
	if sameIdentity(a, b) {
		t.Error("expected distinct pointers to differ")
	}
}

func TestSameIdentity_Nil(t *testing.T) {
	if !sameIdentity(nil, nil) {
		t.Error("expected nil to be identical to nil")
	}
	if sameIdentity(&testListener{}, nil) {
		t.Error("expected listener and nil to differ")
	}
}

func TestSameIdentity_DifferentTypes(t *testing.T) {
	if sameIdentity(&testListener{}, &panicListener{}) {
		t.Error("expected listeners of different types to differ")
	}
}

func TestSameIdentity_Uncomparable(t *testing.T) {
	f := funcListener(func(ctx context.Context, event Event) error { return nil })

	// Func values cannot be compared with ==; identity must answer false
	// instead of panicking.
	if sameIdentity(f, f) {
		t.Error("expected uncomparable values to never be identical")
	}
}

// ============================================================================
// SMART ADAPTER TESTS
// ============================================================================

func TestAsSmartListener_PassThrough(t *testing.T) {
	smart := &probeListener{}

	if AsSmartListener(smart) != SmartListener(smart) {
		t.Error("expected smart listeners to be returned unchanged")
	}
}

func TestAsSmartListener_UnboundAcceptsEverything(t *testing.T) {
	smart := AsSmartListener(&testListener{})

	if !smart.SupportsEventType(reflect.TypeOf(&testEvent{})) {
		t.Error("expected unbound listener to accept testEvent")
	}
	if !smart.SupportsEventType(reflect.TypeOf(&otherEvent{})) {
		t.Error("expected unbound listener to accept otherEvent")
	}
	if !smart.SupportsSourceType(reflect.TypeOf(&testSource{})) {
		t.Error("expected plain listener to accept any source type")
	}
	if !smart.SupportsSourceType(nil) {
		t.Error("expected plain listener to accept sourceless events")
	}
}

func TestAsSmartListener_TypedBinding(t *testing.T) {
	listener := TypedListener(func(ctx context.Context, event *testEvent) error { return nil })
	smart := AsSmartListener(listener)

	if !smart.SupportsEventType(reflect.TypeOf(&testEvent{})) {
		t.Error("expected bound listener to accept its event type")
	}
	if smart.SupportsEventType(reflect.TypeOf(&otherEvent{})) {
		t.Error("expected bound listener to reject unrelated event types")
	}
	if smart.SupportsEventType(nil) {
		t.Error("expected bound listener to reject a nil event type")
	}
}

func TestAsSmartListener_EventInterfaceBindingIsUniversal(t *testing.T) {
	listener := TypedListener(func(ctx context.Context, event Event) error { return nil })
	smart := AsSmartListener(listener)

	if !smart.SupportsEventType(reflect.TypeOf(&testEvent{})) {
		t.Error("expected Event-bound listener to accept testEvent")
	}
	if !smart.SupportsEventType(reflect.TypeOf(&otherEvent{})) {
		t.Error("expected Event-bound listener to accept otherEvent")
	}
}

func TestAsSmartListener_BindingReadFromInnermostTarget(t *testing.T) {
	inner := TypedListener(func(ctx context.Context, event *testEvent) error { return nil })
	decorated := OrderedListener(PriorityListener(inner, 3), 7)

	smart := AsSmartListener(decorated)

	if !smart.SupportsEventType(reflect.TypeOf(&testEvent{})) {
		t.Error("expected binding to be resolved through the decoration chain")
	}
	if smart.SupportsEventType(reflect.TypeOf(&otherEvent{})) {
		t.Error("expected decorated binding to still reject unrelated types")
	}
}

func TestAsSmartListener_OrderDefaults(t *testing.T) {
	smart := AsSmartListener(&testListener{})

	if smart.Order() != LowestOrder {
		t.Errorf("expected LowestOrder for unordered listener, got %d", smart.Order())
	}
}

func TestAsSmartListener_DeliversToTarget(t *testing.T) {
	target := &testListener{}
	smart := AsSmartListener(target)

	if err := smart.OnEvent(context.Background(), &testEvent{source: "s"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.GetCallCount() != 1 {
		t.Errorf("expected 1 delivery, got %d", target.GetCallCount())
	}
}

// ============================================================================
// TYPED LISTENER TESTS
// ============================================================================

func TestTypedListener_NilFuncPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil function")
		}
	}()
	TypedListener[*testEvent](nil)
}

func TestTypedListener_IgnoresOtherTypes(t *testing.T) {
	calls := 0
	listener := TypedListener(func(ctx context.Context, event *testEvent) error {
		calls++
		return nil
	})

	if err := listener.OnEvent(context.Background(), &otherEvent{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 0 {
		t.Error("expected events of other types to be ignored")
	}

	if err := listener.OnEvent(context.Background(), &testEvent{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestTypedListener_PropagatesError(t *testing.T) {
	wantErr := errors.New("handler failed")
	listener := TypedListener(func(ctx context.Context, event *testEvent) error {
		return wantErr
	})

	if err := listener.OnEvent(context.Background(), &testEvent{}); !errors.Is(err, wantErr) {
		t.Errorf("expected handler error, got %v", err)
	}
}

func TestTypedListener_EventType(t *testing.T) {
	listener := TypedListener(func(ctx context.Context, event *testEvent) error { return nil })

	bound, ok := listener.(TypeBound)
	if !ok {
		t.Fatal("expected TypedListener to implement TypeBound")
	}
	if bound.EventType() != reflect.TypeOf(&testEvent{}) {
		t.Errorf("unexpected type token: %v", bound.EventType())
	}
}

// ============================================================================
// ORDER DECORATOR TESTS
// ============================================================================

func TestOrderedListener_NilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil listener")
		}
	}()
	OrderedListener(nil, 1)
}

func TestPriorityListener_NilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil listener")
		}
	}()
	PriorityListener(nil, 1)
}

func TestOrderOf_WalksDecorationChain(t *testing.T) {
	inner := &testListener{}

	if got := OrderOf(inner); got != LowestOrder {
		t.Errorf("expected LowestOrder, got %d", got)
	}
	if got := OrderOf(OrderedListener(inner, 5)); got != 5 {
		t.Errorf("expected 5, got %d", got)
	}
	if got := OrderOf(FilterBySource("src", OrderedListener(inner, 9))); got != 9 {
		t.Errorf("expected order through filter, got %d", got)
	}
}

func TestIsPrioritized_WalksDecorationChain(t *testing.T) {
	inner := &testListener{}

	if IsPrioritized(inner) {
		t.Error("expected plain listener to be unprioritized")
	}
	if IsPrioritized(OrderedListener(inner, 1)) {
		t.Error("expected ordered listener to be unprioritized")
	}
	if !IsPrioritized(PriorityListener(inner, 1)) {
		t.Error("expected priority listener to be prioritized")
	}
	if !IsPrioritized(FilterBySource("src", PriorityListener(inner, 1))) {
		t.Error("expected priority to be visible through the filter")
	}
}

func TestUnwrapTarget_StopsAtPlainListener(t *testing.T) {
	inner := &testListener{}
	wrapped := OrderedListener(PriorityListener(inner, 1), 2)

	if unwrapTarget(wrapped) != Listener(inner) {
		t.Error("expected unwrap to reach the innermost listener")
	}
	if unwrapTarget(inner) != Listener(inner) {
		t.Error("expected plain listener to unwrap to itself")
	}
}
