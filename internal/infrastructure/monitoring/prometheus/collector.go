// Package prometheus exposes ReactionMapper metrics through a private
// Prometheus registry.  The Collector hands out thin vector wrappers so that
// callers never touch client_golang types directly, and a failed registration
// degrades to a no-op metric instead of a panic.
package prometheus

import (
	stdliberrors "errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/turtacn/ReactionMapper/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ReactionMapper/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Metric handles
// ─────────────────────────────────────────────────────────────────────────────

// CounterVec is a labelled counter.
type CounterVec interface {
	WithLabelValues(lvs ...string) Counter
}

// Counter only goes up.
type Counter interface {
	Inc()
	Add(delta float64)
}

// GaugeVec is a labelled gauge.
type GaugeVec interface {
	WithLabelValues(lvs ...string) Gauge
}

// Gauge can be set to any value.
type Gauge interface {
	Set(value float64)
	Inc()
	Dec()
}

// HistogramVec is a labelled histogram.
type HistogramVec interface {
	WithLabelValues(lvs ...string) Histogram
}

// Histogram records observations into buckets.
type Histogram interface {
	Observe(value float64)
}

// ─────────────────────────────────────────────────────────────────────────────
// Collector
// ─────────────────────────────────────────────────────────────────────────────

// DefaultDurationBuckets covers sub-millisecond kernels up to multi-minute
// runs, in seconds.
var DefaultDurationBuckets = []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5, 30, 120, 600}

// CollectorConfig configures a Collector.
type CollectorConfig struct {
	Namespace            string
	Subsystem            string
	EnableProcessMetrics bool
	EnableGoMetrics      bool
	ConstLabels          map[string]string
}

// Collector owns a registry and registers metrics under one namespace.
type Collector interface {
	Counter(name, help string, labels ...string) CounterVec
	Gauge(name, help string, labels ...string) GaugeVec
	Histogram(name, help string, buckets []float64, labels ...string) HistogramVec
	MustRegister(cs ...prometheus.Collector)
	Registry() *prometheus.Registry
	Handler() http.Handler
}

type registryCollector struct {
	registry *prometheus.Registry
	cfg      CollectorConfig
	logger   logging.Logger

	mu sync.Mutex
}

// NewCollector builds a Collector with a fresh registry.
func NewCollector(cfg CollectorConfig, logger logging.Logger) (Collector, error) {
	if cfg.Namespace == "" {
		return nil, errors.InvalidParam("metrics namespace is required")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	reg := prometheus.NewRegistry()
	if cfg.EnableProcessMetrics {
		reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: cfg.Namespace}))
	}
	if cfg.EnableGoMetrics {
		reg.MustRegister(collectors.NewGoCollector())
	}
	return &registryCollector{registry: reg, cfg: cfg, logger: logger.Named("metrics")}, nil
}

func (c *registryCollector) Registry() *prometheus.Registry { return c.registry }

func (c *registryCollector) MustRegister(cs ...prometheus.Collector) { c.registry.MustRegister(cs...) }

func (c *registryCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// register adds col, or returns the already registered collector with the
// same descriptor.
func (c *registryCollector) register(name string, col prometheus.Collector) (prometheus.Collector, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.registry.Register(col)
	if err == nil {
		return col, true
	}
	var already prometheus.AlreadyRegisteredError
	if stdliberrors.As(err, &already) {
		return already.ExistingCollector, true
	}
	c.logger.Error("metric registration failed", logging.String("name", name), logging.Err(err))
	return nil, false
}

func (c *registryCollector) Counter(name, help string, labels ...string) CounterVec {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: c.cfg.Namespace, Subsystem: c.cfg.Subsystem, Name: name, Help: help, ConstLabels: c.cfg.ConstLabels,
	}, labels)
	if col, ok := c.register(name, vec); ok {
		if v, ok := col.(*prometheus.CounterVec); ok {
			return counterVec{v}
		}
	}
	return noopCounterVec{}
}

func (c *registryCollector) Gauge(name, help string, labels ...string) GaugeVec {
	vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: c.cfg.Namespace, Subsystem: c.cfg.Subsystem, Name: name, Help: help, ConstLabels: c.cfg.ConstLabels,
	}, labels)
	if col, ok := c.register(name, vec); ok {
		if v, ok := col.(*prometheus.GaugeVec); ok {
			return gaugeVec{v}
		}
	}
	return noopGaugeVec{}
}

func (c *registryCollector) Histogram(name, help string, buckets []float64, labels ...string) HistogramVec {
	if buckets == nil {
		buckets = DefaultDurationBuckets
	}
	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: c.cfg.Namespace, Subsystem: c.cfg.Subsystem, Name: name, Help: help, ConstLabels: c.cfg.ConstLabels,
		Buckets: buckets,
	}, labels)
	if col, ok := c.register(name, vec); ok {
		if v, ok := col.(*prometheus.HistogramVec); ok {
			return histogramVec{v}
		}
	}
	return noopHistogramVec{}
}

type counterVec struct{ v *prometheus.CounterVec }

func (c counterVec) WithLabelValues(lvs ...string) Counter { return c.v.WithLabelValues(lvs...) }

type gaugeVec struct{ v *prometheus.GaugeVec }

func (g gaugeVec) WithLabelValues(lvs ...string) Gauge { return g.v.WithLabelValues(lvs...) }

type histogramVec struct{ v *prometheus.HistogramVec }

func (h histogramVec) WithLabelValues(lvs ...string) Histogram { return h.v.WithLabelValues(lvs...) }

// Stand-ins for metrics whose registration failed.
type (
	noopCounterVec   struct{}
	noopGaugeVec     struct{}
	noopHistogramVec struct{}
	noopMetric       struct{}
)

func (noopCounterVec) WithLabelValues(...string) Counter     { return noopMetric{} }
func (noopGaugeVec) WithLabelValues(...string) Gauge         { return noopMetric{} }
func (noopHistogramVec) WithLabelValues(...string) Histogram { return noopMetric{} }

func (noopMetric) Inc()            {}
func (noopMetric) Dec()            {}
func (noopMetric) Add(float64)     {}
func (noopMetric) Set(float64)     {}
func (noopMetric) Observe(float64) {}

// Timer observes the time since its creation into a Histogram.
type Timer struct {
	h     Histogram
	start time.Time
}

// NewTimer starts a Timer.
func NewTimer(h Histogram) *Timer { return &Timer{h: h, start: time.Now()} }

// ObserveDuration records the elapsed seconds and returns the duration.
func (t *Timer) ObserveDuration() time.Duration {
	d := time.Since(t.start)
	if t.h != nil {
		t.h.Observe(d.Seconds())
	}
	return d
}
