package noop_test

import (
	"context"
	"errors"
	"testing"

	"github.com/JailtonJunior94/eventkit-go/pkg/observability"
	"github.com/JailtonJunior94/eventkit-go/pkg/observability/noop"
)

// The provider must be usable anywhere a real one is, so these tests walk
// the full facade the way the multicaster does on a publish.

func TestProvider_ImplementsObservability(t *testing.T) {
	var _ observability.Observability = noop.NewProvider()
}

func TestTracer_PassesContextThrough(t *testing.T) {
	tracer := noop.NewProvider().Tracer()

	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "kept")

	spanCtx, span := tracer.Start(ctx, "events.Publish",
		observability.WithSpanKind(observability.SpanKindProducer))
	defer span.End()

	if spanCtx.Value(ctxKey{}) != "kept" {
		t.Error("Start must not drop values from the caller's context")
	}
	if tracer.ContextWithSpan(ctx, span).Value(ctxKey{}) != "kept" {
		t.Error("ContextWithSpan must not drop values from the caller's context")
	}
}

func TestSpan_SafeForFullLifecycle(t *testing.T) {
	_, span := noop.NewProvider().Tracer().Start(context.Background(), "events.Deliver")

	span.SetAttributes(observability.String("event_type", "OrderPlaced"))
	span.AddEvent("listener resolved", observability.Int("listeners", 2))
	span.RecordError(errors.New("listener failed"))
	span.SetStatus(observability.StatusCodeError, "listener failed")
	span.End()

	sc := span.Context()
	if sc.TraceID() != "" || sc.SpanID() != "" || sc.IsSampled() {
		t.Errorf("no-op span must carry an empty, unsampled context, got trace=%q span=%q sampled=%v",
			sc.TraceID(), sc.SpanID(), sc.IsSampled())
	}
}

func TestTracer_SpanFromEmptyContext(t *testing.T) {
	span := noop.NewProvider().Tracer().SpanFromContext(context.Background())
	if span == nil {
		t.Fatal("SpanFromContext must never return nil")
	}
	span.End()
}

func TestLogger_WithIsChainable(t *testing.T) {
	logger := noop.NewProvider().Logger().
		With(observability.String("component", "multicaster")).
		With(observability.String("event_type", "OrderPlaced"))

	ctx := context.Background()
	logger.Debug(ctx, "resolving listeners")
	logger.Info(ctx, "event delivered")
	logger.Warn(ctx, "slow listener")
	logger.Error(ctx, "event delivery failed", observability.Error(errors.New("boom")))
}

func TestMetrics_InstrumentsAreUsable(t *testing.T) {
	metrics := noop.NewProvider().Metrics()
	ctx := context.Background()

	metrics.Counter("events_published_total", "published events", "{event}").Increment(ctx)
	metrics.Counter("events_delivered_total", "delivered events", "{event}").Add(ctx, 3)
	metrics.Histogram("event_delivery_duration_seconds", "delivery latency", "s").Record(ctx, 0.01)
	metrics.UpDownCounter("workerpool_queue_depth", "queued tasks", "{task}").Add(ctx, -1)

	err := metrics.Gauge("workerpool_workers", "active workers", "{worker}", func(context.Context) float64 {
		return 4
	})
	if err != nil {
		t.Errorf("Gauge registration must never fail on the no-op provider: %v", err)
	}
}
