// Package observability defines the narrow telemetry surface the event
// multicasting packages program against: a tracer for publish/deliver spans,
// a structured logger, and a metrics registry. Concrete providers live in
// the subpackages (otel, prom, zaplog, noop, fake) and can be mixed through
// Compose, so a bus can ship spans over OTLP while counting deliveries in
// prometheus.
package observability

// Observability bundles the three telemetry concerns behind one value. Bus
// components take this interface instead of individual tracer/logger/metrics
// dependencies.
type Observability interface {
	Tracer() Tracer
	Logger() Logger
	Metrics() Metrics
}

// Compose assembles an Observability from separately chosen providers.
// Every slot must be filled; use the noop provider's components to silence
// a concern rather than passing nil.
func Compose(tracer Tracer, logger Logger, metrics Metrics) Observability {
	if tracer == nil {
		panic("tracer is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	if metrics == nil {
		panic("metrics is required")
	}

	return &composite{tracer: tracer, logger: logger, metrics: metrics}
}

type composite struct {
	tracer  Tracer
	logger  Logger
	metrics Metrics
}

func (c *composite) Tracer() Tracer   { return c.tracer }
func (c *composite) Logger() Logger   { return c.logger }
func (c *composite) Metrics() Metrics { return c.metrics }
