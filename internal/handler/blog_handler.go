package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/UditanshuPandey/Portfolio-Website/internal/models"
	apierrors "github.com/UditanshuPandey/Portfolio-Website/internal/pkg/errors"
	"github.com/UditanshuPandey/Portfolio-Website/internal/pkg/response"
	"github.com/UditanshuPandey/Portfolio-Website/internal/service"
)

// BlogHandler serves the public, read-only blog endpoints.
type BlogHandler struct {
	blogService service.BlogService
}

// NewBlogHandler creates a new public blog handler.
func NewBlogHandler(blogService service.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// Routes returns a chi router with public blog routes.
func (h *BlogHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/categories", h.Categories)
	r.Get("/tags", h.Tags)
	r.Get("/slug/{slug}", h.GetBySlug)
	r.Get("/{id}", h.Get)

	return r
}

// List handles GET /api/blogs
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.BlogFilter{
		Category: q.Get("category"),
		Tag:      q.Get("tag"),
		Search:   q.Get("search"),
	}

	if raw := q.Get("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(w, apierrors.NewValidationError("featured", "must be true or false"))
			return
		}
		filter.Featured = &featured
	}

	blogs, err := h.blogService.ListPublished(r.Context(), filter)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, blogs)
}

// Get handles GET /api/blogs/{id}
func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := blogID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	blog, err := h.blogService.GetPublished(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, blog)
}

// GetBySlug handles GET /api/blogs/slug/{slug}
func (h *BlogHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	blog, err := h.blogService.GetPublishedBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, blog)
}

// Categories handles GET /api/blogs/categories
func (h *BlogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.blogService.Categories(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, categories)
}

// Tags handles GET /api/blogs/tags
func (h *BlogHandler) Tags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.blogService.Tags(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, tags)
}
