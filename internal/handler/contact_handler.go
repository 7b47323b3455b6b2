package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/UditanshuPandey/Portfolio-Website/internal/middleware"
	"github.com/UditanshuPandey/Portfolio-Website/internal/pkg/response"
	"github.com/UditanshuPandey/Portfolio-Website/internal/service"
)

// ContactHandler handles contact form submissions.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Routes returns a chi router with the contact route.
func (h *ContactHandler) Routes(limiter func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	if limiter == nil {
		limiter = passthrough
	}
	r.With(limiter).Post("/", h.Submit)
	return r
}

// ContactResponse is the body of an accepted submission.
type ContactResponse struct {
	Message   string `json:"message"`
	Success   bool   `json:"success"`
	Reference string `json:"reference"`
}

// Submit handles POST /api/contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req service.ContactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, err)
		return
	}

	msg, err := h.contactService.Submit(r.Context(), req)
	if err != nil {
		response.Error(w, err)
		return
	}

	middleware.ObserveContactSubmission()
	response.OK(w, ContactResponse{
		Message:   "Message sent successfully",
		Success:   true,
		Reference: msg.Reference,
	})
}
