package workerpool

import "time"

// Option is a functional option for configuring the worker pool.
type Option func(*Pool)

// WithConfig sets the complete configuration, overriding defaults.
func WithConfig(config Config) Option {
	return func(p *Pool) {
		p.config = config
	}
}

// WithWorkerCount sets the number of concurrent workers.
func WithWorkerCount(count int) Option {
	return func(p *Pool) {
		p.config.WorkerCount = count
	}
}

// WithQueueSize sets the capacity of the task queue.
func WithQueueSize(size int) Option {
	return func(p *Pool) {
		p.config.QueueSize = size
	}
}

// WithShutdownTimeout sets the timeout for graceful shutdown.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(p *Pool) {
		p.config.ShutdownTimeout = timeout
	}
}
