package observability

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"reactcore/pkg/reaction"
)

var (
	registerOnce sync.Once

	internLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reactcore",
			Subsystem: "intern",
			Name:      "lookups_total",
			Help:      "Flyweight intern table lookups by kind and result (hit or miss).",
		},
		[]string{"kind", "result"},
	)
	internEntries = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "reactcore",
			Subsystem: "intern",
			Name:      "entries",
			Help:      "Entries held by each intern table.",
		},
		[]string{"kind"},
	)
	serviceOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reactcore",
			Subsystem: "service",
			Name:      "operations_total",
			Help:      "Rate set service operations by outcome.",
		},
		[]string{"operation", "status"},
	)
	serviceDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "reactcore",
			Subsystem: "service",
			Name:      "operation_duration_seconds",
			Help:      "Rate set service operation duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// RegisterMetrics registers every collector with the default registry once.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(internLookups, internEntries, serviceOperations, serviceDuration)
	})
}

// InternMetrics implements reaction.InternObserver on top of Prometheus.
type InternMetrics struct{}

var _ reaction.InternObserver = InternMetrics{}

// Hit counts a lookup that returned an existing instance.
func (InternMetrics) Hit(kind reaction.Kind) {
	RegisterMetrics()
	internLookups.WithLabelValues(string(kind), "hit").Inc()
}

// Miss counts a lookup that inserted a new instance and records the table size.
func (InternMetrics) Miss(kind reaction.Kind, entries int) {
	RegisterMetrics()
	internLookups.WithLabelValues(string(kind), "miss").Inc()
	internEntries.WithLabelValues(string(kind)).Set(float64(entries))
}

// SyncInternEntries sets the entries gauge from the interner's current sizes,
// used at startup and after Reset.
func SyncInternEntries(in *reaction.Interner) {
	RegisterMetrics()
	for _, kind := range reaction.Kinds() {
		internEntries.WithLabelValues(string(kind)).Set(float64(in.Len(kind)))
	}
}

// ServiceMetrics records service operation outcomes.
type ServiceMetrics struct{}

// Observe records one operation.
func (ServiceMetrics) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	RecordServiceOperation(operation, success, duration)
}

// RecordServiceOperation counts and times one service operation.
func RecordServiceOperation(operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	RegisterMetrics()
	status := "error"
	if success {
		status = "success"
	}
	serviceOperations.WithLabelValues(operation, status).Inc()
	serviceDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
