package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "transcription",
		Subsystem: "pipeline",
		Name:      "runs_total",
		Help:      "Pipeline runs by outcome.",
	}, []string{"outcome"})

	stageFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "transcription",
		Subsystem: "pipeline",
		Name:      "stage_failures_total",
		Help:      "Stage failures, including non-fatal preprocessing fallbacks.",
	}, []string{"stage"})

	runDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "transcription",
		Subsystem: "pipeline",
		Name:      "run_duration_seconds",
		Help:      "Wall time of one pipeline run.",
		Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
	})
)

func observeRun(outcome string, elapsed time.Duration) {
	runsTotal.WithLabelValues(outcome).Inc()
	runDurationSeconds.Observe(elapsed.Seconds())
}

func recordStageFailure(stage Stage) {
	stageFailuresTotal.WithLabelValues(string(stage)).Inc()
}
