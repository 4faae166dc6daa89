// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/deppfellow/placerate/internal/errs"
)

var (
	// Database
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "placerate_db_query_duration_seconds",
			Help:    "Duration of repository calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "placerate_db_query_errors_total",
			Help: "Repository calls that failed, by error kind",
		},
		[]string{"operation", "table", "kind"},
	)

	// API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "placerate_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "placerate_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	RateLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "placerate_rate_limit_hits_total",
			Help: "Requests rejected by the rate limiter",
		},
	)

	// Ratings
	RatingSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "placerate_rating_submissions_total",
			Help: "Accepted rating submissions by outcome (created, updated)",
		},
		[]string{"outcome"},
	)

	// Proximity search
	NearbyCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "placerate_nearby_candidates",
			Help:    "Places read from the store per nearby search, before the exact distance filter",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	NearbyResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "placerate_nearby_results",
			Help:    "Places returned per nearby search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	NearbyFullScans = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "placerate_nearby_full_scans_total",
			Help: "Nearby searches that could not use a bounding box",
		},
	)

	// Jobs
	JobsEnqueued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "placerate_jobs_enqueued_total",
			Help: "Background tasks enqueued, by task type and result",
		},
		[]string{"task", "result"},
	)
)

// RecordDBQuery records one repository call. err is expected to be already
// classified by sqlerr.HandleError.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table, string(errs.KindOf(err))).Inc()
	}
}

// RecordAPIRequest records an API request. endpoint is the route template.
func RecordAPIRequest(method, endpoint string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRatingSubmission counts an accepted submission.
func RecordRatingSubmission(outcome string) {
	RatingSubmissions.WithLabelValues(outcome).Inc()
}

// RecordNearbySearch records candidate and result counts of one search.
func RecordNearbySearch(candidates, results int, fullScan bool) {
	NearbyCandidates.Observe(float64(candidates))
	NearbyResults.Observe(float64(results))
	if fullScan {
		NearbyFullScans.Inc()
	}
}

// RecordJobEnqueue counts an enqueue attempt.
func RecordJobEnqueue(task string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	JobsEnqueued.WithLabelValues(task, result).Inc()
}
