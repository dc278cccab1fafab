package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interview_evaluations_total",
			Help: "Total number of evaluated answers by classification",
		},
		[]string{"classification"},
	)

	EvaluationMatchPercentage = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "interview_evaluation_match_percentage",
			Help:    "Distribution of answer match percentages",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interview_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "interview_http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"route", "method"},
	)

	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interview_cache_lookups_total",
			Help: "Result cache lookups by outcome (hit, miss, error)",
		},
		[]string{"result"},
	)

	BatchSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interview_batch_submissions_total",
			Help: "Batch submissions by outcome (evaluated, invalid)",
		},
		[]string{"outcome"},
	)
)

// ObserveEvaluation records a finished evaluation.
func ObserveEvaluation(classification string, matchPercentage float64) {
	EvaluationsTotal.WithLabelValues(classification).Inc()
	EvaluationMatchPercentage.Observe(matchPercentage)
}
