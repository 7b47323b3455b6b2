package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portfolio_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Auth metrics
	loginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_logins_total",
			Help: "Login attempts by result",
		},
		[]string{"result"},
	)

	// Blog metrics
	blogMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_blog_mutations_total",
			Help: "Admin blog mutations by operation",
		},
		[]string{"operation"},
	)

	contactSubmissionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portfolio_contact_submissions_total",
			Help: "Accepted contact form submissions",
		},
	)
)

// Metrics returns a middleware that records Prometheus request metrics.
func Metrics() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrapResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			// the route pattern is only complete after routing
			path := routePattern(r)
			httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.status)).Inc()
			httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}

// routePattern returns the chi route pattern so ids and slugs do not
// explode label cardinality.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

// ObserveLogin counts a login attempt.
func ObserveLogin(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	loginsTotal.WithLabelValues(result).Inc()
}

// ObserveBlogMutation counts an admin create, update or delete.
func ObserveBlogMutation(operation string) {
	blogMutationsTotal.WithLabelValues(operation).Inc()
}

// ObserveContactSubmission counts an accepted contact form message.
func ObserveContactSubmission() {
	contactSubmissionsTotal.Inc()
}
