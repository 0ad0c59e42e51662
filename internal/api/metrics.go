package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "commanderforge",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status code.",
		},
		[]string{"route", "method", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "commanderforge",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	generationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "commanderforge",
			Name:      "deck_generation_duration_seconds",
			Help:      "Time spent generating one deck.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	generationWarnings = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "commanderforge",
			Name:      "deck_generation_warnings_total",
			Help:      "Constraint-violation warnings attached to generated decks.",
		},
	)

	candidatePoolSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "commanderforge",
			Name:      "deck_candidate_pool_size",
			Help:      "Candidate pool size of the most recent deck generation.",
		},
	)
)

// statusRecorder captures the response status for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// metricsMiddleware records per-route request counts and latency. The chi
// route pattern is used instead of the raw path to keep label cardinality
// bounded.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		requestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(recorder.status)).Inc()
		requestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

// ObserveGeneration records one deck generation for the metrics endpoint.
func ObserveGeneration(elapsed time.Duration, warnings, poolSize int) {
	generationDuration.Observe(elapsed.Seconds())
	generationWarnings.Add(float64(warnings))
	candidatePoolSize.Set(float64(poolSize))
}
