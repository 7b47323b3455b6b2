package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/UditanshuPandey/Portfolio-Website/internal/middleware"
	apierrors "github.com/UditanshuPandey/Portfolio-Website/internal/pkg/errors"
	"github.com/UditanshuPandey/Portfolio-Website/internal/pkg/response"
	"github.com/UditanshuPandey/Portfolio-Website/internal/service"
)

// Dependencies are the collaborators wired into the router.
type Dependencies struct {
	Logger *slog.Logger

	AuthService    service.AuthService
	BlogService    service.BlogService
	ContactService service.ContactService
	AuditService   service.AuditService

	Cookies *middleware.SessionCookies

	// RateLimiter backs the login and contact limits. Nil disables them.
	RateLimiter middleware.Counter
	RateLimit   middleware.RateLimitConfig

	AllowedOrigins []string
	RequestTimeout time.Duration
	Compress       bool

	// Ready reports whether external dependencies are reachable.
	Ready func(ctx context.Context) error
}

// NewRouter builds the HTTP handler for the whole API.
func NewRouter(d Dependencies) http.Handler {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(d.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(d.AllowedOrigins))
	r.Use(chimiddleware.Timeout(d.RequestTimeout))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, apierrors.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, apierrors.ErrMethodNotAllowed)
	})

	// Health and metrics endpoints (no auth required)
	r.Get("/health", healthHandler)
	r.Get("/ready", readyHandler(d.Ready, d.Logger))
	r.Handle("/metrics", promhttp.Handler())

	authHandler := NewAuthHandler(d.AuthService, d.AuditService, d.Cookies, d.Logger)
	blogHandler := NewBlogHandler(d.BlogService)
	adminHandler := NewAdminHandler(d.BlogService, d.AuditService)
	contactHandler := NewContactHandler(d.ContactService)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(
			middleware.RateLimit(d.RateLimiter, d.RateLimit, "login", d.Logger),
		))
		r.Mount("/blogs", blogHandler.Routes())
		r.Mount("/contact", contactHandler.Routes(
			middleware.RateLimit(d.RateLimiter, d.RateLimit, "contact", d.Logger),
		))

		// Admin console, session required on every route
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(d.AuthService, d.Cookies, d.Logger))
			r.Mount("/admin", adminHandler.Routes())
		})
	})

	if d.Compress {
		return gzhttp.GzipHandler(r)
	}
	return r
}

// HealthResponse is the body of the health endpoints.
type HealthResponse struct {
	Status string `json:"status"`
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.OK(w, HealthResponse{Status: "ok"})
}

func readyHandler(ready func(ctx context.Context) error, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ready != nil {
			if err := ready(r.Context()); err != nil {
				logger.WarnContext(r.Context(), "readiness check failed", slog.String("error", err.Error()))
				response.Error(w, apierrors.ErrServiceUnavailable)
				return
			}
		}
		response.OK(w, HealthResponse{Status: "ready"})
	}
}
