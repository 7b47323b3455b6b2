package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics())
	r.Get("/api/blogs/slug/{slug}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	counter := httpRequestsTotal.WithLabelValues("GET", "/api/blogs/slug/{slug}", "404")
	before := testutil.ToFloat64(counter)

	for _, slug := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/blogs/slug/"+slug, nil))
	}

	assert.Equal(t, before+3, testutil.ToFloat64(counter))
}

func TestObserveHelpers(t *testing.T) {
	success := loginsTotal.WithLabelValues("success")
	failure := loginsTotal.WithLabelValues("failure")
	created := blogMutationsTotal.WithLabelValues("create")

	s0, f0, c0 := testutil.ToFloat64(success), testutil.ToFloat64(failure), testutil.ToFloat64(created)
	contact0 := testutil.ToFloat64(contactSubmissionsTotal)

	ObserveLogin(true)
	ObserveLogin(false)
	ObserveLogin(false)
	ObserveBlogMutation("create")
	ObserveContactSubmission()

	assert.Equal(t, s0+1, testutil.ToFloat64(success))
	assert.Equal(t, f0+2, testutil.ToFloat64(failure))
	assert.Equal(t, c0+1, testutil.ToFloat64(created))
	assert.Equal(t, contact0+1, testutil.ToFloat64(contactSubmissionsTotal))
}
