package workerpool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/JailtonJunior94/eventkit-go/pkg/observability/noop"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startedPool(t *testing.T, opts ...Option) *Pool {
	t.Helper()

	pool := New(noop.NewProvider(), opts...)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- pool.Start(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("pool did not shut down")
		}
	})

	return pool
}

func TestNew_InvalidConfigPanics(t *testing.T) {
	assert.Panics(t, func() {
		New(noop.NewProvider(), WithWorkerCount(0))
	})
}

func TestNew_NilObservabilityPanics(t *testing.T) {
	assert.Panics(t, func() {
		New(nil)
	})
}

func TestExecute_RunsTask(t *testing.T) {
	pool := startedPool(t, WithWorkerCount(2))

	done := make(chan struct{})
	err := pool.Execute(func() { close(done) })
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run")
	}
}

func TestExecute_NilTaskIgnored(t *testing.T) {
	pool := startedPool(t)
	require.NoError(t, pool.Execute(nil))
}

func TestExecute_QueueFull(t *testing.T) {
	pool := New(noop.NewProvider(), WithWorkerCount(1), WithQueueSize(1))

	// No workers running, so the single queue slot fills up.
	require.NoError(t, pool.Execute(func() {}))
	err := pool.Execute(func() {})
	assert.ErrorIs(t, err, ErrQueueFull)

	require.NoError(t, pool.Shutdown(context.Background()))
}

func TestExecute_AfterShutdown(t *testing.T) {
	pool := New(noop.NewProvider())
	require.NoError(t, pool.Shutdown(context.Background()))

	err := pool.Execute(func() {})
	assert.ErrorIs(t, err, ErrPoolClosed)
}

func TestExecute_PanicRecovered(t *testing.T) {
	pool := startedPool(t, WithWorkerCount(1))

	require.NoError(t, pool.Execute(func() { panic("boom") }))

	// The same worker must survive to run the next task.
	done := make(chan struct{})
	require.Eventually(t, func() bool {
		return pool.Execute(func() { close(done) }) == nil
	}, 2*time.Second, 10*time.Millisecond)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive the panic")
	}
}

func TestStart_AlreadyRunning(t *testing.T) {
	pool := startedPool(t)

	require.Eventually(t, func() bool {
		return pool.isRunning.Load()
	}, time.Second, 5*time.Millisecond)

	err := pool.Start(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyRunning)
}

func TestShutdown_DrainsQueuedTasks(t *testing.T) {
	pool := New(noop.NewProvider(), WithWorkerCount(2), WithQueueSize(32))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- pool.Start(ctx) }()

	var executed atomic.Int32
	for i := 0; i < 20; i++ {
		require.NoError(t, pool.Execute(func() {
			time.Sleep(time.Millisecond)
			executed.Add(1)
		}))
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("pool did not shut down")
	}

	assert.Equal(t, int32(20), executed.Load())
}

func TestShutdown_Timeout(t *testing.T) {
	pool := New(noop.NewProvider(), WithWorkerCount(1))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = pool.Start(ctx) }()

	blocked := make(chan struct{})
	require.Eventually(t, func() bool {
		return pool.Execute(func() { <-blocked }) == nil
	}, 2*time.Second, 10*time.Millisecond)
	defer close(blocked)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer shutdownCancel()

	err := pool.Shutdown(shutdownCtx)
	require.Error(t, err)

	var shutdownErr *ShutdownError
	assert.True(t, errors.As(err, &shutdownErr))
}

func TestShutdown_Idempotent(t *testing.T) {
	pool := New(noop.NewProvider())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = pool.Shutdown(context.Background())
		}()
	}
	wg.Wait()
}

func TestConcurrentExecute(t *testing.T) {
	pool := startedPool(t, WithWorkerCount(8), WithQueueSize(1024))

	var executed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if pool.Execute(func() { executed.Add(1) }) == nil {
				return
			}
		}()
	}
	wg.Wait()

	assert.Eventually(t, func() bool {
		return executed.Load() > 0 && pool.QueueDepth() == 0
	}, 2*time.Second, 10*time.Millisecond)
}
