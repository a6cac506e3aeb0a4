package otel

import (
	"context"

	"github.com/JailtonJunior94/eventkit-go/pkg/observability"

	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

type tracer struct {
	tracer oteltrace.Tracer
}

func (t *tracer) Start(ctx context.Context, name string, opts ...observability.SpanOption) (context.Context, observability.Span) {
	cfg := observability.NewSpanConfig(opts)

	startOpts := []oteltrace.SpanStartOption{
		oteltrace.WithSpanKind(spanKinds[cfg.Kind()]),
	}
	if attrs := attributesFrom(cfg.Attributes()); attrs != nil {
		startOpts = append(startOpts, oteltrace.WithAttributes(attrs...))
	}

	ctx, s := t.tracer.Start(ctx, name, startOpts...)
	return ctx, span{inner: s}
}

// SpanFromContext wraps whatever span the context carries; with none
// present the OTel SDK hands back a non-recording span, so the result is
// always safe to use.
func (t *tracer) SpanFromContext(ctx context.Context) observability.Span {
	return span{inner: oteltrace.SpanFromContext(ctx)}
}

func (t *tracer) ContextWithSpan(ctx context.Context, s observability.Span) context.Context {
	wrapped, ok := s.(span)
	if !ok {
		return ctx
	}
	return oteltrace.ContextWithSpan(ctx, wrapped.inner)
}

type span struct {
	inner oteltrace.Span
}

func (s span) End() {
	s.inner.End()
}

func (s span) SetAttributes(fields ...observability.Field) {
	if attrs := attributesFrom(fields); attrs != nil {
		s.inner.SetAttributes(attrs...)
	}
}

func (s span) SetStatus(code observability.StatusCode, description string) {
	s.inner.SetStatus(statusCodes[code], description)
}

func (s span) RecordError(err error, fields ...observability.Field) {
	if attrs := attributesFrom(fields); attrs != nil {
		s.inner.RecordError(err, oteltrace.WithAttributes(attrs...))
		return
	}
	s.inner.RecordError(err)
}

func (s span) AddEvent(name string, fields ...observability.Field) {
	if attrs := attributesFrom(fields); attrs != nil {
		s.inner.AddEvent(name, oteltrace.WithAttributes(attrs...))
		return
	}
	s.inner.AddEvent(name)
}

func (s span) Context() observability.SpanContext {
	return spanContext{inner: s.inner.SpanContext()}
}

type spanContext struct {
	inner oteltrace.SpanContext
}

func (c spanContext) TraceID() string { return c.inner.TraceID().String() }
func (c spanContext) SpanID() string  { return c.inner.SpanID().String() }
func (c spanContext) IsSampled() bool { return c.inner.IsSampled() }

// Out-of-range facade values miss the maps and yield the OTel zero values,
// which the SDK treats as internal kind and unset status.
var spanKinds = map[observability.SpanKind]oteltrace.SpanKind{
	observability.SpanKindInternal: oteltrace.SpanKindInternal,
	observability.SpanKindServer:   oteltrace.SpanKindServer,
	observability.SpanKindClient:   oteltrace.SpanKindClient,
	observability.SpanKindProducer: oteltrace.SpanKindProducer,
	observability.SpanKindConsumer: oteltrace.SpanKindConsumer,
}

var statusCodes = map[observability.StatusCode]codes.Code{
	observability.StatusCodeUnset: codes.Unset,
	observability.StatusCodeOK:    codes.Ok,
	observability.StatusCodeError: codes.Error,
}
