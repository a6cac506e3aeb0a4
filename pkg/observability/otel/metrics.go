package otel

import (
	"context"

	"github.com/JailtonJunior94/eventkit-go/pkg/observability"

	"go.opentelemetry.io/otel/metric"
)

// meterMetrics builds facade instruments on an OTel meter. The meter
// deduplicates by name, so repeated lookups feed the same series. Creation
// errors (conflicting metadata for an existing name) degrade to discard
// instruments rather than failing the caller's hot path.
type meterMetrics struct {
	meter metric.Meter
}

func (m *meterMetrics) Counter(name, description, unit string) observability.Counter {
	counter, err := m.meter.Int64Counter(name,
		metric.WithDescription(description),
		metric.WithUnit(unit),
	)
	if err != nil {
		return discardInstrument{}
	}
	return otelCounter{counter: counter}
}

func (m *meterMetrics) Histogram(name, description, unit string) observability.Histogram {
	histogram, err := m.meter.Float64Histogram(name,
		metric.WithDescription(description),
		metric.WithUnit(unit),
	)
	if err != nil {
		return discardInstrument{}
	}
	return otelHistogram{histogram: histogram}
}

func (m *meterMetrics) UpDownCounter(name, description, unit string) observability.UpDownCounter {
	counter, err := m.meter.Int64UpDownCounter(name,
		metric.WithDescription(description),
		metric.WithUnit(unit),
	)
	if err != nil {
		return discardInstrument{}
	}
	return otelUpDownCounter{counter: counter}
}

func (m *meterMetrics) Gauge(name, description, unit string, callback observability.GaugeCallback) error {
	_, err := m.meter.Float64ObservableGauge(name,
		metric.WithDescription(description),
		metric.WithUnit(unit),
		metric.WithFloat64Callback(func(ctx context.Context, observer metric.Float64Observer) error {
			observer.Observe(callback(ctx))
			return nil
		}),
	)
	return err
}

type otelCounter struct {
	counter metric.Int64Counter
}

func (c otelCounter) Add(ctx context.Context, value int64, fields ...observability.Field) {
	if attrs := attributesFrom(fields); attrs != nil {
		c.counter.Add(ctx, value, metric.WithAttributes(attrs...))
		return
	}
	c.counter.Add(ctx, value)
}

func (c otelCounter) Increment(ctx context.Context, fields ...observability.Field) {
	c.Add(ctx, 1, fields...)
}

type otelHistogram struct {
	histogram metric.Float64Histogram
}

func (h otelHistogram) Record(ctx context.Context, value float64, fields ...observability.Field) {
	if attrs := attributesFrom(fields); attrs != nil {
		h.histogram.Record(ctx, value, metric.WithAttributes(attrs...))
		return
	}
	h.histogram.Record(ctx, value)
}

type otelUpDownCounter struct {
	counter metric.Int64UpDownCounter
}

func (u otelUpDownCounter) Add(ctx context.Context, value int64, fields ...observability.Field) {
	if attrs := attributesFrom(fields); attrs != nil {
		u.counter.Add(ctx, value, metric.WithAttributes(attrs...))
		return
	}
	u.counter.Add(ctx, value)
}

// discardInstrument stands in for any instrument the meter refused.
type discardInstrument struct{}

func (discardInstrument) Add(context.Context, int64, ...observability.Field)      {}
func (discardInstrument) Increment(context.Context, ...observability.Field)       {}
func (discardInstrument) Record(context.Context, float64, ...observability.Field) {}
