// Package metrics exposes Prometheus collectors for provider calls, analysis
// runs, and evidence archive writes.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	analysisRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "utxoscope",
		Subsystem: "analysis",
		Name:      "runs_total",
		Help:      "Count of analysis runs by kind.",
	}, []string{"kind", "status"})
	analysisRunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "utxoscope",
		Subsystem: "analysis",
		Name:      "run_duration_seconds",
		Help:      "Duration of analysis runs by kind.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
	}, []string{"kind", "status"})
)

// Analysis tracks outcomes of whole analysis runs. Runs are paced by the
// provider politeness delay, so durations stretch into minutes.
type Analysis struct{}

// NewAnalysis constructs a metrics collector for analysis runs.
func NewAnalysis() *Analysis {
	return &Analysis{}
}

// ObserveRun records one completed run of the given kind.
func (m Analysis) ObserveRun(kind string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	analysisRunsTotal.WithLabelValues(kind, status).Inc()
	analysisRunDuration.WithLabelValues(kind, status).Observe(time.Since(started).Seconds())
}
