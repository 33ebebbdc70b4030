package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const outcomeSuccess = "success"

var (
	analysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "company_insight",
		Subsystem: "pipeline",
		Name:      "analyses_total",
		Help:      "Pipeline runs by outcome (success or the stage that failed).",
	}, []string{"outcome"})

	stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "company_insight",
		Subsystem: "pipeline",
		Name:      "stage_duration_seconds",
		Help:      "Duration of the outbound pipeline stages.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"stage"})
)

// observeStage records the duration of one stage run, success or not.
func observeStage(stage Stage, d time.Duration) {
	stageDuration.WithLabelValues(string(stage)).Observe(d.Seconds())
}

// observeOutcome counts one finished pipeline run. A failed run is labelled
// with the stage that terminated it.
func observeOutcome(failedStage Stage, success bool) {
	if success {
		analysesTotal.WithLabelValues(outcomeSuccess).Inc()
		return
	}
	analysesTotal.WithLabelValues(string(failedStage)).Inc()
}
