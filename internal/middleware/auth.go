package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/UditanshuPandey/Portfolio-Website/internal/models"
	apierrors "github.com/UditanshuPandey/Portfolio-Website/internal/pkg/errors"
	"github.com/UditanshuPandey/Portfolio-Website/internal/pkg/response"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserKey is the context key for the authenticated user.
	UserKey contextKey = "user"
	// SessionIDKey is the context key for the session id.
	SessionIDKey contextKey = "session_id"
)

// SessionValidator resolves a session id to its user.
type SessionValidator interface {
	ValidateSession(ctx context.Context, sessionID string) (*models.User, error)
}

// RequireSession rejects requests without a valid session. Every failure
// (no cookie, bad signature, unknown or expired session, missing user)
// yields the same 401. The session is re-validated on every request.
func RequireSession(validator SessionValidator, cookies *SessionCookies, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID, ok := cookies.Read(r)
			if !ok {
				response.Error(w, apierrors.ErrUnauthorized)
				return
			}

			user, err := validator.ValidateSession(r.Context(), sessionID)
			if err != nil {
				logger.DebugContext(r.Context(), "session rejected", slog.String("reason", err.Error()))
				response.Error(w, apierrors.ErrUnauthorized)
				return
			}

			ctx := WithUser(r.Context(), user, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithUser returns a context carrying the authenticated user and session id.
func WithUser(ctx context.Context, user *models.User, sessionID string) context.Context {
	ctx = context.WithValue(ctx, UserKey, user)
	return context.WithValue(ctx, SessionIDKey, sessionID)
}

// GetUser retrieves the authenticated user from context.
func GetUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserKey).(*models.User)
	return user, ok && user != nil
}

// GetSessionID retrieves the session id from context.
func GetSessionID(ctx context.Context) string {
	if v, ok := ctx.Value(SessionIDKey).(string); ok {
		return v
	}
	return ""
}
