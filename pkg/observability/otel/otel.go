// Package otel is the OpenTelemetry-backed observability provider. One
// Provider owns a tracer, meter, and logger provider wired to the same OTLP
// endpoint and resource, so publish spans, delivery counters, and delivery
// failure logs land in one backend correlated by trace id.
package otel

import (
	"context"
	"errors"
	"fmt"

	"github.com/JailtonJunior94/eventkit-go/pkg/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// Provider implements observability.Observability over the OpenTelemetry
// SDK. Construct it once at startup and Shutdown it on exit to flush
// buffered telemetry.
type Provider struct {
	tracer  *tracer
	logger  *bridgeLogger
	metrics *meterMetrics
	closers []func(context.Context) error
}

// NewProvider connects all three signals to the configured OTLP endpoint.
// On a partial initialization failure the already started pieces are shut
// down before the error is returned.
func NewProvider(ctx context.Context, cfg *Config) (*Provider, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	res, err := newResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("building resource: %w", err)
	}

	p := &Provider{}

	traceExporter, err := newTraceExporter(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating trace exporter: %w", err)
	}
	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(cfg.sampler()),
		sdktrace.WithBatcher(traceExporter),
	)
	p.closers = append(p.closers, tracerProvider.Shutdown)

	metricExporter, err := newMetricExporter(ctx, cfg)
	if err != nil {
		_ = p.Shutdown(ctx)
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
	)
	p.closers = append(p.closers, meterProvider.Shutdown)

	logExporter, err := newLogExporter(ctx, cfg)
	if err != nil {
		_ = p.Shutdown(ctx)
		return nil, fmt.Errorf("creating log exporter: %w", err)
	}
	loggerProvider := sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
	)
	p.closers = append(p.closers, loggerProvider.Shutdown)

	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	p.tracer = &tracer{tracer: tracerProvider.Tracer(cfg.ServiceName)}
	p.logger = newBridgeLogger(cfg, loggerProvider.Logger(cfg.ServiceName))
	p.metrics = &meterMetrics{meter: meterProvider.Meter(cfg.ServiceName)}

	return p, nil
}

func (p *Provider) Tracer() observability.Tracer   { return p.tracer }
func (p *Provider) Logger() observability.Logger   { return p.logger }
func (p *Provider) Metrics() observability.Metrics { return p.metrics }

// Shutdown flushes and stops every started signal provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	var errs []error
	for _, closer := range p.closers {
		errs = append(errs, closer(ctx))
	}
	p.closers = nil
	return errors.Join(errs...)
}

// newResource describes the service emitting the telemetry.
func newResource(cfg *Config) (*resource.Resource, error) {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironment(cfg.Environment),
	}
	for key, value := range cfg.ResourceAttributes {
		attrs = append(attrs, attribute.String(key, value))
	}

	return resource.New(context.Background(), resource.WithAttributes(attrs...))
}
