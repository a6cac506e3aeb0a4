package observability

import "context"

// Metrics hands out instruments by name. Calling an accessor twice with the
// same name must yield instruments backed by the same series, so bus
// components can look instruments up at call sites without caching them.
type Metrics interface {
	Counter(name, description, unit string) Counter
	Histogram(name, description, unit string) Histogram
	UpDownCounter(name, description, unit string) UpDownCounter

	// Gauge registers an asynchronous instrument sampled via callback at
	// collection time. Registration can fail, for example on a duplicate
	// name with conflicting metadata.
	Gauge(name, description, unit string, callback GaugeCallback) error
}

// Counter only goes up. The multicaster counts published events,
// deliveries, and delivery failures with these.
type Counter interface {
	Add(ctx context.Context, value int64, fields ...Field)

	// Increment is Add with a value of 1.
	Increment(ctx context.Context, fields ...Field)
}

// Histogram records a value distribution, such as delivery latency.
type Histogram interface {
	Record(ctx context.Context, value float64, fields ...Field)
}

// UpDownCounter moves in both directions, fitting quantities like queued
// task counts.
type UpDownCounter interface {
	Add(ctx context.Context, value int64, fields ...Field)
}

// GaugeCallback produces the current value for a Gauge at collection time.
type GaugeCallback func(ctx context.Context) float64
