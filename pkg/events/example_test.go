package events_test

import (
	"context"
	"fmt"

	"github.com/JailtonJunior94/eventkit-go/pkg/events"
)

type orderRepository struct{ name string }

type orderPlaced struct {
	source  *orderRepository
	OrderID string
}

func (e *orderPlaced) Source() any { return e.source }

type orderShipped struct {
	source  *orderRepository
	OrderID string
}

func (e *orderShipped) Source() any { return e.source }

func ExampleMulticaster() {
	multicaster := events.NewMulticaster()

	multicaster.Register(events.TypedListener(func(ctx context.Context, event *orderPlaced) error {
		fmt.Println("order placed:", event.OrderID)
		return nil
	}))
	multicaster.Register(events.TypedListener(func(ctx context.Context, event *orderShipped) error {
		fmt.Println("order shipped:", event.OrderID)
		return nil
	}))

	repo := &orderRepository{name: "orders"}
	_ = multicaster.Publish(context.Background(), &orderPlaced{source: repo, OrderID: "42"})
	_ = multicaster.Publish(context.Background(), &orderShipped{source: repo, OrderID: "42"})

	// Only the listener bound to the published event type runs.
	// Output:
	// order placed: 42
	// order shipped: 42
}

func ExampleOrderedListener() {
	multicaster := events.NewMulticaster()

	notify := events.TypedListener(func(ctx context.Context, event *orderPlaced) error {
		fmt.Println("notify")
		return nil
	})
	persist := events.TypedListener(func(ctx context.Context, event *orderPlaced) error {
		fmt.Println("persist")
		return nil
	})

	// Lower order values run first, regardless of registration order.
	multicaster.Register(events.OrderedListener(notify, 20))
	multicaster.Register(events.OrderedListener(persist, 10))

	repo := &orderRepository{name: "orders"}
	_ = multicaster.Publish(context.Background(), &orderPlaced{source: repo, OrderID: "42"})

	// Output:
	// persist
	// notify
}

func ExampleFilterBySource() {
	multicaster := events.NewMulticaster()

	primary := &orderRepository{name: "primary"}
	replica := &orderRepository{name: "replica"}

	multicaster.Register(events.FilterBySource(primary, events.TypedListener(
		func(ctx context.Context, event *orderPlaced) error {
			fmt.Println("primary order:", event.OrderID)
			return nil
		},
	)))

	_ = multicaster.Publish(context.Background(), &orderPlaced{source: primary, OrderID: "1"})
	_ = multicaster.Publish(context.Background(), &orderPlaced{source: replica, OrderID: "2"})

	// Only events from the primary repository reach the listener.
	// Output:
	// primary order: 1
}

func ExampleMulticaster_registerByName() {
	provider := events.NewStaticListenerProvider()
	provider.Add("audit", events.TypedListener(func(ctx context.Context, event *orderPlaced) error {
		fmt.Println("audit:", event.OrderID)
		return nil
	}))

	multicaster := events.NewMulticaster(events.WithListenerProvider(provider))

	// The name is resolved on every publish, so the instance behind it can
	// change without re-registering.
	multicaster.RegisterByName("audit")

	repo := &orderRepository{name: "orders"}
	_ = multicaster.Publish(context.Background(), &orderPlaced{source: repo, OrderID: "7"})

	// Output:
	// audit: 7
}
