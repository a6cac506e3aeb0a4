// Package eventsfx provides fx modules wiring an event multicaster (and
// optionally a worker pool for asynchronous dispatch) into an fx
// application.
package eventsfx

import (
	"context"

	"github.com/JailtonJunior94/eventkit-go/pkg/events"
	"github.com/JailtonJunior94/eventkit-go/pkg/observability"
	"github.com/JailtonJunior94/eventkit-go/pkg/observability/noop"
	"github.com/JailtonJunior94/eventkit-go/pkg/workerpool"

	"go.uber.org/fx"
)

// Module provides a synchronous multicaster.
// Usage:
//
//	fx.New(
//	    eventsfx.Module,
//	    fx.Invoke(func(m events.Multicaster) { ... }),
//	)
var Module = fx.Module("events",
	fx.Provide(ProvideMulticaster),
)

// AsyncModule provides a worker pool and a multicaster dispatching through
// it. The pool is started and drained through the fx lifecycle.
// Usage:
//
//	fx.New(
//	    eventsfx.AsyncModule,
//	    fx.Invoke(func(m events.Multicaster) { ... }),
//	)
var AsyncModule = fx.Module("events-async",
	fx.Provide(
		ProvidePool,
		ProvideAsyncMulticaster,
	),
)

// MulticasterParams contains the optional dependencies a multicaster picks
// up from the fx graph.
type MulticasterParams struct {
	fx.In

	Observability observability.Observability `optional:"true"`
	Provider      events.ListenerProvider     `optional:"true"`
	Ordering      events.OrderingPolicy       `optional:"true"`
	Retention     events.RetentionPolicy      `optional:"true"`
}

// options collects the multicaster options present in the fx graph.
func (p MulticasterParams) options() []events.Option {
	opts := make([]events.Option, 0, 4)
	if p.Observability != nil {
		opts = append(opts, events.WithObservability(p.Observability))
	}
	if p.Provider != nil {
		opts = append(opts, events.WithListenerProvider(p.Provider))
	}
	if p.Ordering != nil {
		opts = append(opts, events.WithOrderingPolicy(p.Ordering))
	}
	if p.Retention != nil {
		opts = append(opts, events.WithRetentionPolicy(p.Retention))
	}
	return opts
}

// ProvideMulticaster creates a synchronous multicaster.
func ProvideMulticaster(p MulticasterParams) events.Multicaster {
	return events.NewMulticaster(p.options()...)
}

// PoolParams contains dependencies for creating the worker pool.
type PoolParams struct {
	fx.In

	Observability observability.Observability `optional:"true"`
	Config        workerpool.Config           `optional:"true"`
	LC            fx.Lifecycle
}

// PoolResult exposes the pool both concretely and as an events.Executor.
type PoolResult struct {
	fx.Out

	Pool     *workerpool.Pool
	Executor events.Executor
}

// ProvidePool creates a worker pool with lifecycle management: the pool
// comes up on start and drains on stop.
func ProvidePool(p PoolParams) PoolResult {
	o11y := p.Observability
	if o11y == nil {
		o11y = noop.NewProvider()
	}

	opts := []workerpool.Option{}
	if p.Config != (workerpool.Config{}) {
		opts = append(opts, workerpool.WithConfig(p.Config))
	}

	pool := workerpool.New(o11y, opts...)

	runCtx, stop := context.WithCancel(context.Background())
	p.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() { _ = pool.Start(runCtx) }()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			stop()
			return pool.Shutdown(ctx)
		},
	})

	return PoolResult{Pool: pool, Executor: pool}
}

// AsyncMulticasterParams are MulticasterParams plus the executor the async
// dispatch submits to.
type AsyncMulticasterParams struct {
	fx.In

	MulticasterParams
	Executor events.Executor
}

// ProvideAsyncMulticaster creates a multicaster dispatching through the
// executor from the graph.
func ProvideAsyncMulticaster(p AsyncMulticasterParams) events.Multicaster {
	opts := append(p.options(), events.WithExecutor(p.Executor))
	return events.NewMulticaster(opts...)
}
