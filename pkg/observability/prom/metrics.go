// Package prom implements the observability.Metrics interface on top of
// prometheus/client_golang, for services that scrape metrics instead of
// pushing them over OTLP. Pair it with promhttp.Handler() on a /metrics
// route.
package prom

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/JailtonJunior94/eventkit-go/pkg/observability"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// DefaultMaxInstruments is the default maximum number of metric
	// instruments allowed. The cap protects against unbounded cardinality
	// from dynamically generated metric names.
	DefaultMaxInstruments = 1000
)

// Metrics implements observability.Metrics backed by a prometheus
// Registerer. Instruments are created lazily on first use, because
// prometheus requires the label names up front and the facade only reveals
// them at recording time. Later recordings must use the same field keys as
// the first one; unknown keys are dropped, missing keys record as empty.
type Metrics struct {
	registerer prometheus.Registerer
	namespace  string
	maxInstr   int

	mu         sync.RWMutex
	counters   map[string]*counterVec
	gaugeVecs  map[string]*gaugeVec
	histograms map[string]*histogramVec
}

// Option configures the Metrics provider.
type Option func(*Metrics)

// WithRegisterer sets the prometheus registerer. Defaults to
// prometheus.DefaultRegisterer, which promhttp.Handler() serves.
func WithRegisterer(registerer prometheus.Registerer) Option {
	return func(m *Metrics) {
		m.registerer = registerer
	}
}

// WithNamespace prefixes every metric name with the given namespace.
func WithNamespace(namespace string) Option {
	return func(m *Metrics) {
		m.namespace = namespace
	}
}

// WithMaxInstruments caps the number of distinct instruments.
func WithMaxInstruments(max int) Option {
	return func(m *Metrics) {
		m.maxInstr = max
	}
}

// NewMetrics creates a prometheus-backed metrics recorder.
func NewMetrics(opts ...Option) *Metrics {
	m := &Metrics{
		registerer: prometheus.DefaultRegisterer,
		maxInstr:   DefaultMaxInstruments,
		counters:   make(map[string]*counterVec),
		gaugeVecs:  make(map[string]*gaugeVec),
		histograms: make(map[string]*histogramVec),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Counter returns a counter metric instrument.
func (m *Metrics) Counter(name, description, unit string) observability.Counter {
	return &promCounter{metrics: m, name: name, help: helpText(description, unit)}
}

// Histogram returns a histogram metric instrument.
func (m *Metrics) Histogram(name, description, unit string) observability.Histogram {
	return &promHistogram{metrics: m, name: name, help: helpText(description, unit)}
}

// UpDownCounter returns an up-down counter instrument, mapped to a
// prometheus gauge since prometheus counters are monotonic.
func (m *Metrics) UpDownCounter(name, description, unit string) observability.UpDownCounter {
	return &promUpDownCounter{metrics: m, name: name, help: helpText(description, unit)}
}

// Gauge registers an asynchronous gauge evaluated at scrape time.
func (m *Metrics) Gauge(name, description, unit string, callback observability.GaugeCallback) error {
	gauge := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      name,
		Help:      helpText(description, unit),
	}, func() float64 {
		return callback(context.Background())
	})

	return m.registerer.Register(gauge)
}

// helpText folds the unit into the help string, since prometheus metadata
// has no dedicated unit field.
func helpText(description, unit string) string {
	if unit == "" {
		return description
	}
	return fmt.Sprintf("%s (unit: %s)", description, unit)
}

// counterVec pairs a prometheus vector with the label names it was
// registered with, so recordings can align their fields to it.
type counterVec struct {
	vec    *prometheus.CounterVec
	labels []string
}

type gaugeVec struct {
	vec    *prometheus.GaugeVec
	labels []string
}

type histogramVec struct {
	vec    *prometheus.HistogramVec
	labels []string
}

// getOrCreateCounter returns the counter vector for name, creating and
// registering it on first use. Read lock first for the common path, then
// write lock with a double-check.
func (m *Metrics) getOrCreateCounter(name, help string, labels []string) (*counterVec, error) {
	m.mu.RLock()
	if cv, ok := m.counters[name]; ok {
		m.mu.RUnlock()
		return cv, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if cv, ok := m.counters[name]; ok {
		return cv, nil
	}

	if err := m.checkInstrumentLimit(); err != nil {
		return nil, err
	}

	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      name,
		Help:      help,
	}, labels)

	if err := m.registerer.Register(vec); err != nil {
		return nil, err
	}

	cv := &counterVec{vec: vec, labels: labels}
	m.counters[name] = cv
	return cv, nil
}

func (m *Metrics) getOrCreateGauge(name, help string, labels []string) (*gaugeVec, error) {
	m.mu.RLock()
	if gv, ok := m.gaugeVecs[name]; ok {
		m.mu.RUnlock()
		return gv, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if gv, ok := m.gaugeVecs[name]; ok {
		return gv, nil
	}

	if err := m.checkInstrumentLimit(); err != nil {
		return nil, err
	}

	vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      name,
		Help:      help,
	}, labels)

	if err := m.registerer.Register(vec); err != nil {
		return nil, err
	}

	gv := &gaugeVec{vec: vec, labels: labels}
	m.gaugeVecs[name] = gv
	return gv, nil
}

func (m *Metrics) getOrCreateHistogram(name, help string, labels []string) (*histogramVec, error) {
	m.mu.RLock()
	if hv, ok := m.histograms[name]; ok {
		m.mu.RUnlock()
		return hv, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if hv, ok := m.histograms[name]; ok {
		return hv, nil
	}

	if err := m.checkInstrumentLimit(); err != nil {
		return nil, err
	}

	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      name,
		Help:      help,
		Buckets:   prometheus.DefBuckets,
	}, labels)

	if err := m.registerer.Register(vec); err != nil {
		return nil, err
	}

	hv := &histogramVec{vec: vec, labels: labels}
	m.histograms[name] = hv
	return hv, nil
}

// checkInstrumentLimit must run with mu held for writing.
func (m *Metrics) checkInstrumentLimit() error {
	total := len(m.counters) + len(m.gaugeVecs) + len(m.histograms)
	if total >= m.maxInstr {
		return fmt.Errorf("instrument limit reached (%d)", m.maxInstr)
	}
	return nil
}

// labelNames extracts the sorted field keys, the label set the instrument
// is registered with on first use.
func labelNames(fields []observability.Field) []string {
	if len(fields) == 0 {
		return nil
	}

	names := make([]string, 0, len(fields))
	for _, field := range fields {
		names = append(names, field.Key)
	}
	sort.Strings(names)
	return names
}

// labelValues aligns the fields to the registered label names. Unknown
// field keys are dropped; registered labels without a field record as "".
func labelValues(registered []string, fields []observability.Field) prometheus.Labels {
	labels := make(prometheus.Labels, len(registered))
	for _, name := range registered {
		labels[name] = ""
	}
	for _, field := range fields {
		if _, ok := labels[field.Key]; ok {
			labels[field.Key] = fmt.Sprintf("%v", field.Value)
		}
	}
	return labels
}

// promCounter implements observability.Counter.
type promCounter struct {
	metrics *Metrics
	name    string
	help    string
}

// Add increments the counter by the given value.
func (c *promCounter) Add(ctx context.Context, value int64, fields ...observability.Field) {
	cv, err := c.metrics.getOrCreateCounter(c.name, c.help, labelNames(fields))
	if err != nil {
		return
	}
	cv.vec.With(labelValues(cv.labels, fields)).Add(float64(value))
}

// Increment increments the counter by 1.
func (c *promCounter) Increment(ctx context.Context, fields ...observability.Field) {
	c.Add(ctx, 1, fields...)
}

// promHistogram implements observability.Histogram.
type promHistogram struct {
	metrics *Metrics
	name    string
	help    string
}

// Record adds a value to the histogram.
func (h *promHistogram) Record(ctx context.Context, value float64, fields ...observability.Field) {
	hv, err := h.metrics.getOrCreateHistogram(h.name, h.help, labelNames(fields))
	if err != nil {
		return
	}
	hv.vec.With(labelValues(hv.labels, fields)).Observe(value)
}

// promUpDownCounter implements observability.UpDownCounter.
type promUpDownCounter struct {
	metrics *Metrics
	name    string
	help    string
}

// Add adds the given value, which may be negative.
func (u *promUpDownCounter) Add(ctx context.Context, value int64, fields ...observability.Field) {
	gv, err := u.metrics.getOrCreateGauge(u.name, u.help, labelNames(fields))
	if err != nil {
		return
	}
	gv.vec.With(labelValues(gv.labels, fields)).Add(float64(value))
}
