package observability

import "context"

// Tracer starts spans and moves them through contexts. The multicaster
// starts one span per publish and one per delivery; providers decide what,
// if anything, those spans become on the wire.
type Tracer interface {
	// Start begins a span and returns a context carrying it.
	Start(ctx context.Context, name string, opts ...SpanOption) (context.Context, Span)

	// SpanFromContext returns the span stored in ctx, or a no-op span when
	// none is present.
	SpanFromContext(ctx context.Context) Span

	// ContextWithSpan returns a copy of ctx carrying span.
	ContextWithSpan(ctx context.Context, span Span) context.Context
}

// Span is an in-flight trace span.
type Span interface {
	// End finishes the span. The span must not be used afterwards.
	End()

	SetAttributes(fields ...Field)
	SetStatus(code StatusCode, description string)

	// RecordError attaches err to the span as an error event. It does not
	// change the span status; call SetStatus separately.
	RecordError(err error, fields ...Field)

	// AddEvent records a point-in-time annotation on the span.
	AddEvent(name string, fields ...Field)

	// Context returns the identifiers needed to correlate logs with this span.
	Context() SpanContext
}

// SpanContext exposes the propagation identity of a span.
type SpanContext interface {
	TraceID() string
	SpanID() string
	IsSampled() bool
}

// StatusCode is the canonical outcome of a span.
type StatusCode int

const (
	StatusCodeUnset StatusCode = iota
	StatusCodeOK
	StatusCodeError
)

// SpanKind classifies a span's role. Publish spans are producers, delivery
// spans are consumers, everything else defaults to internal.
type SpanKind int

const (
	SpanKindInternal SpanKind = iota
	SpanKindServer
	SpanKindClient
	SpanKindProducer
	SpanKindConsumer
)

// SpanOption configures Start.
type SpanOption interface {
	apply(*spanConfig)
}

type spanOption func(*spanConfig)

func (o spanOption) apply(c *spanConfig) { o(c) }

// WithSpanKind overrides the default internal kind.
func WithSpanKind(kind SpanKind) SpanOption {
	return spanOption(func(c *spanConfig) { c.kind = kind })
}

// WithAttributes adds attributes present from the span's first instant.
// Repeated uses accumulate.
func WithAttributes(fields ...Field) SpanOption {
	return spanOption(func(c *spanConfig) {
		c.attributes = append(c.attributes, fields...)
	})
}

// SpanConfig is the resolved view of a Start call's options, consumed by
// provider implementations.
type SpanConfig interface {
	Kind() SpanKind
	Attributes() []Field
}

// NewSpanConfig folds opts into a SpanConfig. Providers call this at the
// top of their Start implementations.
func NewSpanConfig(opts []SpanOption) SpanConfig {
	cfg := &spanConfig{kind: SpanKindInternal}
	for _, opt := range opts {
		opt.apply(cfg)
	}
	return cfg
}

type spanConfig struct {
	kind       SpanKind
	attributes []Field
}

func (c *spanConfig) Kind() SpanKind      { return c.kind }
func (c *spanConfig) Attributes() []Field { return c.attributes }
