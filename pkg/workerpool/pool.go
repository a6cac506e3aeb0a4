// Package workerpool provides a bounded goroutine pool for running
// independent tasks. It implements the events.Executor contract, so a pool
// can back the asynchronous dispatch mode of an event multicaster while
// remaining usable for any other fire-and-forget work.
package workerpool

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/JailtonJunior94/eventkit-go/pkg/observability"
)

// Pool is a fixed-size worker pool over a bounded task queue. Tasks are
// accepted through Execute and run on the pool's workers; a panicking task
// is recovered and logged without taking its worker down.
type Pool struct {
	config        Config
	observability observability.Observability

	tasks   chan func()
	workers sync.WaitGroup

	// mu serializes Execute against the queue close during shutdown, so a
	// late submit fails with ErrPoolClosed instead of panicking on a closed
	// channel.
	mu           sync.RWMutex
	closed       bool
	isRunning    atomic.Bool
	shutdownOnce sync.Once

	executed  observability.Counter
	recovered observability.Counter
}

// New creates a worker pool with the provided observability and optional
// configuration. It panics if the configuration is invalid, following the
// same pattern as the other components of this module.
func New(o11y observability.Observability, opts ...Option) *Pool {
	if o11y == nil {
		panic("observability is required")
	}

	pool := &Pool{
		config:        DefaultConfig(),
		observability: o11y,
	}

	for _, opt := range opts {
		opt(pool)
	}

	if err := pool.config.Validate(); err != nil {
		panic(fmt.Sprintf("invalid worker pool configuration: %v", err))
	}

	pool.tasks = make(chan func(), pool.config.QueueSize)

	metrics := o11y.Metrics()
	pool.executed = metrics.Counter("workerpool_tasks_executed_total", "Tasks executed by the pool", "{task}")
	pool.recovered = metrics.Counter("workerpool_panics_recovered_total", "Task panics recovered by workers", "{panic}")

	return pool
}

// Execute submits a task to the pool. It implements events.Executor.
// Submissions are accepted even before Start; the tasks run once the
// workers come up.
func (p *Pool) Execute(task func()) error {
	if task == nil {
		return nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// QueueDepth reports the number of tasks waiting for a worker.
func (p *Pool) QueueDepth() int {
	return len(p.tasks)
}

// worker consumes the task queue until it is closed and drained.
func (p *Pool) worker(ctx context.Context, workerID int) {
	defer p.workers.Done()

	p.observability.Logger().Debug(ctx, "worker started",
		observability.Int("worker_id", workerID))

	for task := range p.tasks {
		p.runTask(ctx, task)
	}

	p.observability.Logger().Debug(ctx, "worker stopping",
		observability.Int("worker_id", workerID))
}

// runTask executes a single task, recovering and logging panics so one bad
// task cannot take down its worker.
func (p *Pool) runTask(ctx context.Context, task func()) {
	defer func() {
		if recovered := recover(); recovered != nil {
			p.recovered.Increment(ctx)
			p.observability.Logger().Error(ctx, "task panic recovered",
				observability.Any("panic", recovered),
				observability.String("stack", string(debug.Stack())),
			)
		}
	}()

	task()
	p.executed.Increment(ctx)
}
