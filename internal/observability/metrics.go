package observability

import (
	"time"

	"cache-manager/internal/store"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exports cache and service metrics to Prometheus.
// It implements store.Metrics so a cache can report into it directly.
type Metrics struct {
	// OperationsTotal counts get/set/delete operations
	OperationsTotal *prometheus.CounterVec

	// HitsTotal counts cache hits
	HitsTotal prometheus.Counter

	// MissesTotal counts cache misses
	MissesTotal prometheus.Counter

	// EvictionsTotal counts entries removed by the eviction policy
	EvictionsTotal prometheus.Counter

	// Entries tracks the number of resident entries
	Entries prometheus.Gauge

	// DurationSeconds measures latency
	DurationSeconds *prometheus.HistogramVec
}

var _ store.Metrics = (*Metrics)(nil)

// New registers the cache metrics with reg under namespace.
// A nil reg registers with prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer, namespace string) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		OperationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "The total number of cache operations",
		}, []string{"type", "status"}),
		HitsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hits_total",
			Help:      "The total number of cache hits",
		}),
		MissesTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "misses_total",
			Help:      "The total number of cache misses",
		}),
		EvictionsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evictions_total",
			Help:      "The total number of entries evicted by the policy",
		}),
		Entries: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entries",
			Help:      "The number of resident entries",
		}),
		DurationSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "duration_seconds",
			Help:      "The latency of cache operations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"type"}),
	}
}

func (m *Metrics) Hit()             { m.HitsTotal.Inc() }
func (m *Metrics) Miss()            { m.MissesTotal.Inc() }
func (m *Metrics) Evict()           { m.EvictionsTotal.Inc() }
func (m *Metrics) Size(entries int) { m.Entries.Set(float64(entries)) }

// ObserveOperation records one service operation and how long it took.
func (m *Metrics) ObserveOperation(op, status string, started time.Time) {
	m.OperationsTotal.WithLabelValues(op, status).Inc()
	m.DurationSeconds.WithLabelValues(op).Observe(time.Since(started).Seconds())
}
