package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	esploraRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "utxoscope",
		Subsystem: "esplora_client",
		Name:      "operations_total",
		Help:      "Count of Esplora REST operations.",
	}, []string{"operation", "status"})
	esploraRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "utxoscope",
		Subsystem: "esplora_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of Esplora REST operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})
)

// EsploraClient tracks metrics for calls against an Esplora instance.
type EsploraClient struct{}

// NewEsploraClient constructs a metrics collector for Esplora calls.
func NewEsploraClient() *EsploraClient {
	return &EsploraClient{}
}

// Observe records a single call outcome and duration.
func (m EsploraClient) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	esploraRequestsTotal.WithLabelValues(operation, status).Inc()
	esploraRequestDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}
