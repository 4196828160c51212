// Package metrics exposes Prometheus instrumentation for debounce
// schedulers, snapshot stores, and reactive containers.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/bind/pkg/bind"
	"github.com/vango-dev/bind/pkg/debounce"
	"github.com/vango-dev/bind/pkg/snapshot"
)

// Config configures the metrics set.
type Config struct {
	// Namespace is the metrics namespace (default: "bind").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the metrics set.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the duration histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// defaultConfig returns the default metrics configuration.
func defaultConfig() Config {
	return Config{
		Namespace: "bind",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus metrics for the binding layer.
type Metrics struct {
	factory promauto.Factory
	cfg     Config

	invocationsTotal *prometheus.CounterVec
	coalescedCalls   *prometheus.HistogramVec
	burstLatency     *prometheus.HistogramVec
	cancelledTotal   *prometheus.CounterVec

	snapshotOps      *prometheus.CounterVec
	snapshotDuration *prometheus.HistogramVec
	snapshotBytes    *prometheus.HistogramVec
}

// New creates the metrics set and registers it with the configured
// registry.
//
// Metrics collected:
//   - bind_debounce_invocations_total: Counter of invocations by scheduler and edge
//   - bind_debounce_coalesced_calls: Histogram of calls coalesced per burst
//   - bind_debounce_burst_latency_seconds: Histogram of first-call-to-invocation latency
//   - bind_debounce_cancelled_total: Counter of cancelled bursts
//   - bind_snapshot_ops_total: Counter of store operations by store, op, and status
//   - bind_snapshot_op_duration_seconds: Histogram of store operation duration
//   - bind_snapshot_bytes: Histogram of snapshot payload sizes
func New(opts ...Option) *Metrics {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	factory := promauto.With(cfg.Registry)

	return &Metrics{
		factory: factory,
		cfg:     cfg,

		invocationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "debounce_invocations_total",
			Help:        "Total debounced invocations by scheduler and edge",
			ConstLabels: cfg.ConstLabels,
		}, []string{"name", "edge"}),

		coalescedCalls: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "debounce_coalesced_calls",
			Help:        "Calls coalesced into each burst",
			ConstLabels: cfg.ConstLabels,
			Buckets:     []float64{1, 2, 5, 10, 20, 50, 100},
		}, []string{"name"}),

		burstLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "debounce_burst_latency_seconds",
			Help:        "Time from a burst's first call to its invocation",
			ConstLabels: cfg.ConstLabels,
			Buckets:     cfg.Buckets,
		}, []string{"name"}),

		cancelledTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "debounce_cancelled_total",
			Help:        "Total cancelled bursts by scheduler",
			ConstLabels: cfg.ConstLabels,
		}, []string{"name"}),

		snapshotOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "snapshot_ops_total",
			Help:        "Total snapshot store operations by store, op, and status",
			ConstLabels: cfg.ConstLabels,
		}, []string{"store", "op", "status"}),

		snapshotDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "snapshot_op_duration_seconds",
			Help:        "Snapshot store operation duration in seconds",
			ConstLabels: cfg.ConstLabels,
			Buckets:     cfg.Buckets,
		}, []string{"store", "op"}),

		snapshotBytes: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "snapshot_bytes",
			Help:        "Snapshot payload size in bytes",
			ConstLabels: cfg.ConstLabels,
			Buckets:     []float64{256, 1024, 4096, 16384, 65536, 262144},
		}, []string{"store", "op"}),
	}
}

// DebounceObserver returns an observer publishing a scheduler's events
// under name. Pass it to the scheduler at construction:
//
//	d := debounce.New(fn, wait, debounce.WithObserver(m.DebounceObserver("autosave")))
func (m *Metrics) DebounceObserver(name string) debounce.Observer {
	return &schedObserver{m: m, name: name}
}

type schedObserver struct {
	m    *Metrics
	name string
}

func (o *schedObserver) Invoked(s debounce.Stats) {
	o.m.invocationsTotal.WithLabelValues(o.name, s.Edge.String()).Inc()
	o.m.coalescedCalls.WithLabelValues(o.name).Observe(float64(s.Calls))
	o.m.burstLatency.WithLabelValues(o.name).Observe(s.Latency.Seconds())
}

func (o *schedObserver) Cancelled(int) {
	o.m.cancelledTotal.WithLabelValues(o.name).Inc()
}

// Store wraps a snapshot store so every operation is counted, timed, and
// sized under the given store name.
func (m *Metrics) Store(name string, inner snapshot.Store) snapshot.Store {
	return &instrumentedStore{m: m, name: name, inner: inner}
}

type instrumentedStore struct {
	m     *Metrics
	name  string
	inner snapshot.Store
}

func (s *instrumentedStore) Save(ctx context.Context, key string, data []byte) error {
	start := time.Now()
	err := s.inner.Save(ctx, key, data)
	s.record("save", start, err)
	if err == nil {
		s.m.snapshotBytes.WithLabelValues(s.name, "save").Observe(float64(len(data)))
	}
	return err
}

func (s *instrumentedStore) Load(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	data, err := s.inner.Load(ctx, key)
	s.record("load", start, err)
	if err == nil {
		s.m.snapshotBytes.WithLabelValues(s.name, "load").Observe(float64(len(data)))
	}
	return data, err
}

func (s *instrumentedStore) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := s.inner.Delete(ctx, key)
	s.record("delete", start, err)
	return err
}

func (s *instrumentedStore) record(op string, start time.Time, err error) {
	s.m.snapshotDuration.WithLabelValues(s.name, op).Observe(time.Since(start).Seconds())
	s.m.snapshotOps.WithLabelValues(s.name, op, statusOf(err)).Inc()
}

// statusOf folds errors into low-cardinality status labels.
func statusOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, snapshot.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// Gauge registers a gauge that reads a float64 container on every scrape.
// The returned collector is already registered.
func (m *Metrics) Gauge(name, help string, c bind.Container[float64]) prometheus.GaugeFunc {
	return m.factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   m.cfg.Namespace,
		Subsystem:   m.cfg.Subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.cfg.ConstLabels,
	}, c.Get)
}
