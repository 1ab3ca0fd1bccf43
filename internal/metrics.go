package internal

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides Prometheus metrics collection for HTTP requests and
// the item lifecycle
type Metrics struct {
	reqTotal   *prometheus.CounterVec
	reqLatency *prometheus.HistogramVec

	itemsSubmitted prometheus.Counter
	itemsClaimed   prometheus.Counter
	claimConflicts prometheus.Counter
	orphanedClaims prometheus.Counter

	registry *prometheus.Registry
}

// NewMetrics creates a new Metrics instance with a private Prometheus registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	reqTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	reqLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	itemsSubmitted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lostfound_items_submitted_total",
		Help: "Items submitted to the open pool",
	})
	itemsClaimed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lostfound_items_claimed_total",
		Help: "Items successfully claimed",
	})
	claimConflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lostfound_claim_conflicts_total",
		Help: "Claim attempts for items no longer in the open pool",
	})
	orphanedClaims := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lostfound_orphaned_claims_total",
		Help: "Claims removed from the open pool but not recorded in the ledger",
	})

	registry.MustRegister(reqTotal, reqLatency, itemsSubmitted, itemsClaimed, claimConflicts, orphanedClaims)

	return &Metrics{
		reqTotal:       reqTotal,
		reqLatency:     reqLatency,
		itemsSubmitted: itemsSubmitted,
		itemsClaimed:   itemsClaimed,
		claimConflicts: claimConflicts,
		orphanedClaims: orphanedClaims,
		registry:       registry,
	}
}

// Middleware returns a Chi middleware that collects metrics
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &statusRecorder{ResponseWriter: w, code: http.StatusOK}

			next.ServeHTTP(rw, r)

			// Use Chi's route pattern if available so labels stay low-cardinality
			path := r.URL.Path
			if chiCtx := chi.RouteContext(r.Context()); chiCtx != nil && len(chiCtx.RoutePatterns) > 0 {
				path = chiCtx.RoutePatterns[len(chiCtx.RoutePatterns)-1]
			}

			status := http.StatusText(rw.code)
			m.reqTotal.WithLabelValues(r.Method, path, status).Inc()
			m.reqLatency.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
		})
	}
}

// Handler returns an http.Handler that serves Prometheus metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// statusRecorder captures the HTTP status code for metrics
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.code = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	return sr.ResponseWriter.Write(b)
}
