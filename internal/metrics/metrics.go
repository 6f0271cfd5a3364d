// Package metrics holds the Prometheus collectors updated while processing
// commit batches. Collectors register with the default registry on import.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Processing modes used as the "mode" label.
const (
	ModeSequential = "sequential"
	ModeParallel   = "parallel"
)

var (
	// CommitsProcessed counts commits parsed and classified, by mode.
	CommitsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "semcommit_commits_processed_total",
		Help: "Total commits parsed and classified by processing mode",
	}, []string{"mode"})

	// CommitsDropped counts commits removed by classification, by reason.
	CommitsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "semcommit_commits_dropped_total",
		Help: "Total commits dropped by classification reason",
	}, []string{"reason"})

	// HeadersDegraded counts summaries that did not follow the convention.
	HeadersDegraded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "semcommit_headers_degraded_total",
		Help: "Total commit headers that did not match type(scope)!: description",
	})

	// BatchDuration tracks Process latency by mode.
	BatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "semcommit_batch_duration_seconds",
		Help:    "Batch processing duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~800ms
	}, []string{"mode"})
)

// ObserveBatch records one completed batch.
func ObserveBatch(mode string, commits int, elapsed time.Duration) {
	CommitsProcessed.WithLabelValues(mode).Add(float64(commits))
	BatchDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
}

// ObserveDrop records one dropped commit.
func ObserveDrop(reason string) {
	CommitsDropped.WithLabelValues(reason).Inc()
}
