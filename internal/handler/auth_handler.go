package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/UditanshuPandey/Portfolio-Website/internal/middleware"
	"github.com/UditanshuPandey/Portfolio-Website/internal/models"
	apierrors "github.com/UditanshuPandey/Portfolio-Website/internal/pkg/errors"
	"github.com/UditanshuPandey/Portfolio-Website/internal/pkg/response"
	"github.com/UditanshuPandey/Portfolio-Website/internal/service"
)

// AuthHandler handles login, logout and the current-user lookup.
type AuthHandler struct {
	authService  service.AuthService
	auditService service.AuditService
	cookies      *middleware.SessionCookies
	validate     *validator.Validate
	logger       *slog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, auditService service.AuditService, cookies *middleware.SessionCookies, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		auditService: auditService,
		cookies:      cookies,
		validate:     service.NewValidator(),
		logger:       logger,
	}
}

// Routes returns a chi router with auth routes. loginLimiter wraps the
// login endpoint only.
func (h *AuthHandler) Routes(loginLimiter func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	if loginLimiter == nil {
		loginLimiter = passthrough
	}
	r.With(loginLimiter).Post("/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(h.authService, h.cookies, h.logger))
		r.Post("/logout", h.Logout)
		r.Get("/user", h.User)
	})

	return r
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Message string            `json:"message"`
	User    models.PublicUser `json:"user"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, err)
		return
	}

	if err := service.ValidateStruct(h.validate, req); err != nil {
		var apiErr *apierrors.APIError
		if errors.As(err, &apiErr) {
			err = apiErr.WithMessage("Username and password are required")
		}
		response.Error(w, err)
		return
	}

	result, err := h.authService.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, apierrors.ErrInvalidCredentials) {
			middleware.ObserveLogin(false)
			entry := newAuditEntry(r, models.AuditEventAuthLoginFailed, nil, models.ResourceTypeUser, nil)
			entry.Metadata = map[string]string{"username": req.Username}
			h.auditService.Record(r.Context(), entry)
		} else {
			h.logger.ErrorContext(r.Context(), "login failed", slog.String("error", err.Error()))
		}
		response.Error(w, err)
		return
	}

	if err := h.cookies.Write(w, r, result.Session.ID); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write session cookie", slog.String("error", err.Error()))
		_ = h.authService.Logout(r.Context(), result.Session.ID)
		response.InternalError(w)
		return
	}

	middleware.ObserveLogin(true)
	userID := result.User.ID
	h.auditService.Record(r.Context(), newAuditEntry(r, models.AuditEventAuthLogin, &userID, models.ResourceTypeSession, nil))

	response.OK(w, LoginResponse{Message: "Login successful", User: result.User})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context(), middleware.GetSessionID(r.Context())); err != nil {
		h.logger.ErrorContext(r.Context(), "logout failed", slog.String("error", err.Error()))
		response.Error(w, err)
		return
	}

	if err := h.cookies.Clear(w, r); err != nil {
		h.logger.WarnContext(r.Context(), "failed to clear session cookie", slog.String("error", err.Error()))
	}

	h.auditService.Record(r.Context(), newAuditEntry(r, models.AuditEventAuthLogout, actorID(r), models.ResourceTypeSession, nil))

	response.OKMessage(w, "Logged out successfully")
}

// User handles GET /api/auth/user
func (h *AuthHandler) User(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}
	response.OK(w, user.Public())
}
