// Package metrics exposes Prometheus collectors for pipeline runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PipelineRuns counts pipeline runs by terminal status
	// (ok, partial, failed).
	PipelineRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xwstats_pipeline_runs_total",
		Help: "Total pipeline runs by status.",
	}, []string{"status"})

	// PipelineDuration tracks end-to-end run duration.
	PipelineDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "xwstats_pipeline_duration_seconds",
		Help:    "Pipeline run duration in seconds.",
		Buckets: prometheus.DefBuckets,
	})

	// CardsGenerated counts successfully generated card documents by card name.
	CardsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xwstats_cards_generated_total",
		Help: "Total card documents generated, by card.",
	}, []string{"card"})
)
