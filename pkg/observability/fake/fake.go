// Package fake provides a recording observability provider for tests. It
// captures the spans, log entries, and counter increments the bus emits so
// assertions can be written against telemetry instead of sleeping and
// hoping. Recording depth follows what the bus packages actually emit:
// counters are captured per call, while histograms, up-down counters, and
// gauges only satisfy the interface.
package fake

import (
	"context"
	"sync"
	"time"

	"github.com/JailtonJunior94/eventkit-go/pkg/observability"
)

// Provider records everything routed through it. Safe for concurrent use,
// which matters when asserting on async deliveries.
type Provider struct {
	tracer  *FakeTracer
	logger  *FakeLogger
	metrics *FakeMetrics
}

func NewProvider() *Provider {
	return &Provider{
		tracer:  &FakeTracer{},
		logger:  &FakeLogger{sink: &logSink{}},
		metrics: &FakeMetrics{counters: make(map[string]*FakeCounter)},
	}
}

func (p *Provider) Tracer() observability.Tracer   { return p.tracer }
func (p *Provider) Logger() observability.Logger   { return p.logger }
func (p *Provider) Metrics() observability.Metrics { return p.metrics }

// Reset clears all recorded telemetry while keeping registered instruments.
func (p *Provider) Reset() {
	p.tracer.mu.Lock()
	p.tracer.spans = nil
	p.tracer.mu.Unlock()

	p.logger.sink.mu.Lock()
	p.logger.sink.entries = nil
	p.logger.sink.mu.Unlock()

	p.metrics.mu.Lock()
	for _, c := range p.metrics.counters {
		c.mu.Lock()
		c.values = nil
		c.mu.Unlock()
	}
	p.metrics.mu.Unlock()
}

// ===== tracer =====

// FakeTracer collects every started span, ended or not.
type FakeTracer struct {
	mu    sync.Mutex
	spans []*FakeSpan
}

type spanCtxKey struct{}

func (t *FakeTracer) Start(ctx context.Context, name string, opts ...observability.SpanOption) (context.Context, observability.Span) {
	cfg := observability.NewSpanConfig(opts)

	span := &FakeSpan{
		Name:      name,
		Kind:      cfg.Kind(),
		StartTime: time.Now(),
	}
	span.SetAttributes(cfg.Attributes()...)

	t.mu.Lock()
	t.spans = append(t.spans, span)
	t.mu.Unlock()

	return context.WithValue(ctx, spanCtxKey{}, span), span
}

func (t *FakeTracer) SpanFromContext(ctx context.Context) observability.Span {
	if span, ok := ctx.Value(spanCtxKey{}).(*FakeSpan); ok {
		return span
	}
	return &FakeSpan{Name: "detached"}
}

func (t *FakeTracer) ContextWithSpan(ctx context.Context, span observability.Span) context.Context {
	if fs, ok := span.(*FakeSpan); ok {
		return context.WithValue(ctx, spanCtxKey{}, fs)
	}
	return ctx
}

// GetSpans returns a snapshot of all started spans in start order.
func (t *FakeTracer) GetSpans() []*FakeSpan {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]*FakeSpan(nil), t.spans...)
}

// FakeSpan records the full span lifecycle. Fields set at Start are plain
// struct fields; everything mutated afterwards goes through the mutex.
type FakeSpan struct {
	Name      string
	Kind      observability.SpanKind
	StartTime time.Time

	mu         sync.Mutex
	ended      bool
	endTime    time.Time
	attributes []observability.Field
	events     []SpanEvent
	status     observability.StatusCode
	statusDesc string
	errs       []error
}

// SpanEvent is one AddEvent call.
type SpanEvent struct {
	Name   string
	Fields []observability.Field
	Time   time.Time
}

func (s *FakeSpan) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ended {
		s.ended = true
		s.endTime = time.Now()
	}
}

func (s *FakeSpan) SetAttributes(fields ...observability.Field) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attributes = append(s.attributes, fields...)
}

func (s *FakeSpan) SetStatus(code observability.StatusCode, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = code
	s.statusDesc = description
}

func (s *FakeSpan) RecordError(err error, fields ...observability.Field) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs = append(s.errs, err)
	s.events = append(s.events, SpanEvent{Name: "exception", Fields: fields, Time: time.Now()})
}

func (s *FakeSpan) AddEvent(name string, fields ...observability.Field) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, SpanEvent{Name: name, Fields: fields, Time: time.Now()})
}

func (s *FakeSpan) Context() observability.SpanContext {
	return fakeSpanContext{}
}

func (s *FakeSpan) Ended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ended
}

func (s *FakeSpan) Attributes() []observability.Field {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]observability.Field(nil), s.attributes...)
}

func (s *FakeSpan) Events() []SpanEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SpanEvent(nil), s.events...)
}

func (s *FakeSpan) Status() (observability.StatusCode, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.statusDesc
}

func (s *FakeSpan) Errors() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]error(nil), s.errs...)
}

type fakeSpanContext struct{}

func (fakeSpanContext) TraceID() string { return "00000000000000000000000000000001" }
func (fakeSpanContext) SpanID() string  { return "0000000000000001" }
func (fakeSpanContext) IsSampled() bool { return true }

// ===== logger =====

// logSink is the shared store behind a FakeLogger and all loggers derived
// from it with With, so entries land in one place regardless of which
// derived logger wrote them.
type logSink struct {
	mu      sync.Mutex
	entries []LogEntry
}

// LogEntry is one recorded log call. Fields holds the bound With fields
// followed by the per-call fields.
type LogEntry struct {
	Level   observability.LogLevel
	Message string
	Fields  []observability.Field
	Time    time.Time
}

// FakeLogger records entries into its sink. With derives loggers that share
// the sink and prepend their bound fields.
type FakeLogger struct {
	sink  *logSink
	bound []observability.Field
}

func (l *FakeLogger) log(level observability.LogLevel, msg string, fields []observability.Field) {
	entry := LogEntry{
		Level:   level,
		Message: msg,
		Fields:  append(append([]observability.Field(nil), l.bound...), fields...),
		Time:    time.Now(),
	}

	l.sink.mu.Lock()
	l.sink.entries = append(l.sink.entries, entry)
	l.sink.mu.Unlock()
}

func (l *FakeLogger) Debug(ctx context.Context, msg string, fields ...observability.Field) {
	l.log(observability.LogLevelDebug, msg, fields)
}

func (l *FakeLogger) Info(ctx context.Context, msg string, fields ...observability.Field) {
	l.log(observability.LogLevelInfo, msg, fields)
}

func (l *FakeLogger) Warn(ctx context.Context, msg string, fields ...observability.Field) {
	l.log(observability.LogLevelWarn, msg, fields)
}

func (l *FakeLogger) Error(ctx context.Context, msg string, fields ...observability.Field) {
	l.log(observability.LogLevelError, msg, fields)
}

func (l *FakeLogger) With(fields ...observability.Field) observability.Logger {
	return &FakeLogger{
		sink:  l.sink,
		bound: append(append([]observability.Field(nil), l.bound...), fields...),
	}
}

// GetEntries returns a snapshot of every entry written through this logger
// or any logger derived from it.
func (l *FakeLogger) GetEntries() []LogEntry {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	return append([]LogEntry(nil), l.sink.entries...)
}

// ===== metrics =====

// FakeMetrics hands out recording counters keyed by name. Histograms,
// up-down counters, and gauges are accepted but not recorded.
type FakeMetrics struct {
	mu       sync.Mutex
	counters map[string]*FakeCounter
}

func (m *FakeMetrics) Counter(name, description, unit string) observability.Counter {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.counters[name]; ok {
		return c
	}
	c := &FakeCounter{Name: name}
	m.counters[name] = c
	return c
}

func (m *FakeMetrics) Histogram(name, description, unit string) observability.Histogram {
	return discardInstrument{}
}

func (m *FakeMetrics) UpDownCounter(name, description, unit string) observability.UpDownCounter {
	return discardInstrument{}
}

func (m *FakeMetrics) Gauge(name, description, unit string, callback observability.GaugeCallback) error {
	return nil
}

// GetCounter returns the counter registered under name, or nil when no code
// path asked for it yet.
func (m *FakeMetrics) GetCounter(name string) *FakeCounter {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[name]
}

// FakeCounter records every Add and Increment call.
type FakeCounter struct {
	Name string

	mu     sync.Mutex
	values []CounterValue
}

// CounterValue is one recorded counter call.
type CounterValue struct {
	Value  int64
	Fields []observability.Field
}

func (c *FakeCounter) Add(ctx context.Context, value int64, fields ...observability.Field) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = append(c.values, CounterValue{Value: value, Fields: fields})
}

func (c *FakeCounter) Increment(ctx context.Context, fields ...observability.Field) {
	c.Add(ctx, 1, fields...)
}

// GetValues returns the recorded calls in order.
func (c *FakeCounter) GetValues() []CounterValue {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]CounterValue(nil), c.values...)
}

// Total sums the recorded values.
func (c *FakeCounter) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total int64
	for _, v := range c.values {
		total += v.Value
	}
	return total
}

type discardInstrument struct{}

func (discardInstrument) Add(context.Context, int64, ...observability.Field)      {}
func (discardInstrument) Record(context.Context, float64, ...observability.Field) {}
