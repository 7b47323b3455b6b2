package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/UditanshuPandey/Portfolio-Website/internal/middleware"
	"github.com/UditanshuPandey/Portfolio-Website/internal/models"
	apierrors "github.com/UditanshuPandey/Portfolio-Website/internal/pkg/errors"
	"github.com/UditanshuPandey/Portfolio-Website/internal/pkg/response"
	"github.com/UditanshuPandey/Portfolio-Website/internal/service"
)

// AdminHandler serves the session-protected admin console endpoints.
// The caller mounts it behind middleware.RequireSession.
type AdminHandler struct {
	blogService  service.BlogService
	auditService service.AuditService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(blogService service.BlogService, auditService service.AuditService) *AdminHandler {
	return &AdminHandler{
		blogService:  blogService,
		auditService: auditService,
	}
}

// Routes returns a chi router with admin routes.
func (h *AdminHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/blogs", func(r chi.Router) {
		r.Get("/", h.ListBlogs)
		r.Post("/", h.CreateBlog)
		r.Get("/{id}", h.GetBlog)
		r.Put("/{id}", h.UpdateBlog)
		r.Delete("/{id}", h.DeleteBlog)
	})

	r.Get("/audit", h.ListAudit)

	return r
}

// ListBlogs handles GET /api/admin/blogs
func (h *AdminHandler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogService.ListAll(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, blogs)
}

// GetBlog handles GET /api/admin/blogs/{id}
func (h *AdminHandler) GetBlog(w http.ResponseWriter, r *http.Request) {
	id, err := blogID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	blog, err := h.blogService.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, blog)
}

// CreateBlog handles POST /api/admin/blogs
func (h *AdminHandler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	var req service.CreateBlogRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, err)
		return
	}

	blog, err := h.blogService.Create(r.Context(), req)
	if err != nil {
		response.Error(w, err)
		return
	}

	middleware.ObserveBlogMutation("create")
	h.auditService.Record(r.Context(), newAuditEntry(r, models.AuditEventBlogCreated, actorID(r), models.ResourceTypeBlog, &blog.ID))

	response.Created(w, blog)
}

// UpdateBlog handles PUT /api/admin/blogs/{id}
func (h *AdminHandler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	id, err := blogID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	var req service.UpdateBlogRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, err)
		return
	}

	blog, err := h.blogService.Update(r.Context(), id, req)
	if err != nil {
		response.Error(w, err)
		return
	}

	middleware.ObserveBlogMutation("update")
	h.auditService.Record(r.Context(), newAuditEntry(r, models.AuditEventBlogUpdated, actorID(r), models.ResourceTypeBlog, &blog.ID))

	response.OK(w, blog)
}

// DeleteBlog handles DELETE /api/admin/blogs/{id}
func (h *AdminHandler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	id, err := blogID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	if err := h.blogService.Delete(r.Context(), id); err != nil {
		response.Error(w, err)
		return
	}

	middleware.ObserveBlogMutation("delete")
	h.auditService.Record(r.Context(), newAuditEntry(r, models.AuditEventBlogDeleted, actorID(r), models.ResourceTypeBlog, &id))

	response.NoContent(w)
}

// ListAudit handles GET /api/admin/audit
func (h *AdminHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(w, apierrors.NewValidationError("limit", "must be a number"))
			return
		}
		limit = n
	}

	logs, err := h.auditService.List(r.Context(), limit)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, logs)
}
