package workerpool

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/JailtonJunior94/eventkit-go/pkg/observability"
)

// Start brings up the workers and blocks until the context is cancelled or
// an OS signal (SIGINT, SIGTERM) is received, then performs a graceful
// shutdown. Run it on its own goroutine when the pool is embedded in a
// larger application.
func (p *Pool) Start(ctx context.Context) error {
	if !p.isRunning.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	p.observability.Logger().Info(ctx, "starting worker pool",
		observability.Int("workers", p.config.WorkerCount),
		observability.Int("queue_size", p.config.QueueSize),
	)

	// Workers keep a background context: they outlive the Start context by
	// exactly the shutdown grace period.
	workerCtx := context.Background()
	for i := 0; i < p.config.WorkerCount; i++ {
		p.workers.Add(1)
		go p.worker(workerCtx, i)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		p.observability.Logger().Info(ctx, "context cancelled, initiating shutdown")
	case sig := <-sigChan:
		p.observability.Logger().Info(ctx, "signal received, initiating graceful shutdown",
			observability.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), p.config.ShutdownTimeout)
	defer cancel()

	return p.Shutdown(shutdownCtx)
}

// Shutdown stops accepting tasks, waits for the queued and in-flight tasks
// to finish within the context deadline, and releases the workers. It uses
// sync.Once so concurrent and repeated calls are safe.
func (p *Pool) Shutdown(ctx context.Context) error {
	var shutdownErr error

	p.shutdownOnce.Do(func() {
		p.observability.Logger().Info(ctx, "initiating graceful shutdown")

		p.mu.Lock()
		p.closed = true
		close(p.tasks)
		p.mu.Unlock()

		workersDone := make(chan struct{})
		go func() {
			p.workers.Wait()
			close(workersDone)
		}()

		select {
		case <-workersDone:
			p.observability.Logger().Info(ctx, "all workers finished gracefully")
		case <-ctx.Done():
			shutdownErr = &ShutdownError{
				Message: "shutdown timeout exceeded, some tasks may not have finished",
				Err:     ctx.Err(),
			}
			p.observability.Logger().Warn(ctx, "shutdown timeout exceeded",
				observability.Error(shutdownErr))
		}

		p.isRunning.Store(false)
	})

	return shutdownErr
}
