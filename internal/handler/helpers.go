// Package handler provides HTTP handlers for the portfolio API.
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/UditanshuPandey/Portfolio-Website/internal/middleware"
	"github.com/UditanshuPandey/Portfolio-Website/internal/models"
	apierrors "github.com/UditanshuPandey/Portfolio-Website/internal/pkg/errors"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// decodeJSON reads the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apierrors.ErrBadRequest.WithMessage("Invalid request body")
	}
	return nil
}

// blogID parses the {id} URL parameter.
func blogID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, apierrors.ErrBadRequest.WithMessage("Invalid blog ID")
	}
	return id, nil
}

// newAuditEntry builds an audit entry carrying the request's client details.
func newAuditEntry(r *http.Request, event models.AuditEvent, actorID *int, resource models.ResourceType, resourceID *int) *models.AuditLog {
	return &models.AuditLog{
		Event:        event,
		ActorID:      actorID,
		ResourceType: &resource,
		ResourceID:   resourceID,
		IPAddress:    middleware.ClientIP(r),
		UserAgent:    r.UserAgent(),
	}
}

// actorID returns the id of the authenticated user, if any.
func actorID(r *http.Request) *int {
	if user, ok := middleware.GetUser(r.Context()); ok {
		id := user.ID
		return &id
	}
	return nil
}

func passthrough(next http.Handler) http.Handler { return next }
