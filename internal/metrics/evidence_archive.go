package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	archiveRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "utxoscope",
		Subsystem: "evidence_archive",
		Name:      "operations_total",
		Help:      "Count of evidence archive operations.",
	}, []string{"operation", "status"})
	archiveRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "utxoscope",
		Subsystem: "evidence_archive",
		Name:      "operation_duration_seconds",
		Help:      "Duration of evidence archive operations.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30},
	}, []string{"operation", "status"})
)

// EvidenceArchive tracks metrics for ClickHouse evidence archive writes.
type EvidenceArchive struct{}

// NewEvidenceArchive creates an EvidenceArchive metrics collector.
func NewEvidenceArchive() *EvidenceArchive {
	return &EvidenceArchive{}
}

// Observe records duration and status of an archive operation.
func (m EvidenceArchive) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	archiveRequestsTotal.WithLabelValues(operation, status).Inc()
	archiveRequestDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}
