package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorageMetrics records storage adapter calls by backend and operation.
type StorageMetrics struct {
	duration *prometheus.HistogramVec
	failure  *prometheus.CounterVec
}

// NewStorageMetrics registers the storage metrics on the provided registerer.
// A nil registerer yields a recorder whose methods are no-ops.
func NewStorageMetrics(reg prometheus.Registerer) *StorageMetrics {
	if reg == nil {
		return &StorageMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mall_storage_op_duration_seconds",
		Help:    "Duration of storage adapter operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend", "op"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mall_storage_op_failures_total",
		Help: "Storage adapter operations that returned an error.",
	}, []string{"backend", "op"})
	reg.MustRegister(duration, failure)
	return &StorageMetrics{duration: duration, failure: failure}
}

// ObserveDuration records how long one operation took.
func (s *StorageMetrics) ObserveDuration(backend, op string, duration time.Duration) {
	if s == nil || s.duration == nil {
		return
	}
	s.duration.WithLabelValues(normalizeLabel(backend), normalizeLabel(op)).Observe(duration.Seconds())
}

// IncFailure counts a failed operation.
func (s *StorageMetrics) IncFailure(backend, op string) {
	if s == nil || s.failure == nil {
		return
	}
	s.failure.WithLabelValues(normalizeLabel(backend), normalizeLabel(op)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
