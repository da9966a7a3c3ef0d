// Package metrics holds the Prometheus collectors for the analysis pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for outbound calls.
const (
	OutcomeSuccess = "success"
	OutcomeEmpty   = "empty"
	OutcomeError   = "error"
)

var (
	OutboundRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deepcut_outbound_requests_total",
			Help: "Outbound collaborator calls by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	OutboundDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "deepcut_outbound_request_duration_seconds",
			Help:    "Latency of outbound collaborator calls",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8, 15, 30, 60},
		},
		[]string{"provider"},
	)

	ModelParseOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deepcut_model_parse_total",
			Help: "Model completions by parse outcome (strict, extracted, degenerate)",
		},
		[]string{"outcome"},
	)

	EnrichmentCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deepcut_enrichment_cache_lookups_total",
			Help: "Enrichment cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	AnalyzeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "deepcut_analyze_duration_seconds",
			Help:    "End-to-end duration of an analysis",
			Buckets: []float64{0.5, 1, 2, 4, 8, 15, 30, 60, 120},
		},
	)

	RecommendationsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "deepcut_recommendations_returned",
			Help:    "Number of recommendations returned per analysis",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		},
	)
)

// ObserveOutbound records one outbound call.
func ObserveOutbound(provider, outcome string, started time.Time) {
	OutboundRequests.WithLabelValues(provider, outcome).Inc()
	OutboundDuration.WithLabelValues(provider).Observe(time.Since(started).Seconds())
}
