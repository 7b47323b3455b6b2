package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/UditanshuPandey/Portfolio-Website/internal/models"
	apierrors "github.com/UditanshuPandey/Portfolio-Website/internal/pkg/errors"
	"github.com/UditanshuPandey/Portfolio-Website/internal/repository"
)

// BlogService defines the interface for blog operations.
// The public methods never return drafts.
type BlogService interface {
	// Public read path
	ListPublished(ctx context.Context, filter models.BlogFilter) ([]*models.Blog, error)
	GetPublished(ctx context.Context, id int) (*models.Blog, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.Blog, error)
	Categories(ctx context.Context) ([]string, error)
	Tags(ctx context.Context) ([]string, error)

	// Admin path
	ListAll(ctx context.Context) ([]*models.Blog, error)
	Get(ctx context.Context, id int) (*models.Blog, error)
	Create(ctx context.Context, req CreateBlogRequest) (*models.Blog, error)
	Update(ctx context.Context, id int, req UpdateBlogRequest) (*models.Blog, error)
	Delete(ctx context.Context, id int) error
}

// CreateBlogRequest is the request for creating a blog.
type CreateBlogRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Slug        string    `json:"slug" validate:"required,max=200,slug"`
	Content     string    `json:"content" validate:"required"`
	Excerpt     string    `json:"excerpt" validate:"required,max=1000"`
	Category    string    `json:"category" validate:"required,max=100"`
	Tags        []string  `json:"tags" validate:"omitempty,max=50,dive,required,max=50"`
	PublishedAt time.Time `json:"publishedAt" validate:"required"`
	ReadTime    int       `json:"readTime" validate:"required,min=1,max=1440"`
	Featured    bool      `json:"featured"`
	IsDraft     bool      `json:"isDraft"`
}

// UpdateBlogRequest is the request for a partial blog update.
// Absent fields are left unchanged.
type UpdateBlogRequest struct {
	Title       *string    `json:"title" validate:"omitnil,min=1,max=200"`
	Slug        *string    `json:"slug" validate:"omitnil,min=1,max=200,slug"`
	Content     *string    `json:"content" validate:"omitnil,min=1"`
	Excerpt     *string    `json:"excerpt" validate:"omitnil,min=1,max=1000"`
	Category    *string    `json:"category" validate:"omitnil,min=1,max=100"`
	Tags        *[]string  `json:"tags" validate:"omitempty,max=50,dive,required,max=50"`
	PublishedAt *time.Time `json:"publishedAt"`
	ReadTime    *int       `json:"readTime" validate:"omitnil,min=1,max=1440"`
	Featured    *bool      `json:"featured"`
	IsDraft     *bool      `json:"isDraft"`
}

func (r UpdateBlogRequest) patch() models.BlogPatch {
	return models.BlogPatch{
		Title:       r.Title,
		Slug:        r.Slug,
		Content:     r.Content,
		Excerpt:     r.Excerpt,
		Category:    r.Category,
		Tags:        r.Tags,
		PublishedAt: r.PublishedAt,
		ReadTime:    r.ReadTime,
		Featured:    r.Featured,
		IsDraft:     r.IsDraft,
	}
}

type blogService struct {
	blogs    repository.BlogRepository
	validate *validator.Validate
}

// NewBlogService creates a new blog service.
func NewBlogService(blogs repository.BlogRepository) BlogService {
	return &blogService{
		blogs:    blogs,
		validate: NewValidator(),
	}
}

// ListPublished returns published blogs matching filter, newest first.
func (s *blogService) ListPublished(ctx context.Context, filter models.BlogFilter) ([]*models.Blog, error) {
	blogs, err := s.blogs.ListBlogs(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}

	return slices.DeleteFunc(blogs, func(b *models.Blog) bool {
		return !matches(b, filter)
	}), nil
}

func matches(b *models.Blog, f models.BlogFilter) bool {
	if f.Category != "" && b.Category != f.Category {
		return false
	}
	if f.Tag != "" && !b.HasTag(f.Tag) {
		return false
	}
	if f.Featured != nil && b.Featured != *f.Featured {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(b.Title), q) &&
			!strings.Contains(strings.ToLower(b.Excerpt), q) {
			return false
		}
	}
	return true
}

// GetPublished returns a published blog by id. Drafts are reported as missing.
func (s *blogService) GetPublished(ctx context.Context, id int) (*models.Blog, error) {
	blog, err := s.blogs.GetBlog(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get blog: %w", err)
	}
	if blog == nil || blog.IsDraft {
		return nil, apierrors.NewNotFoundError("Blog")
	}
	return blog, nil
}

// GetPublishedBySlug returns a published blog by slug. Drafts are reported as missing.
func (s *blogService) GetPublishedBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	blog, err := s.blogs.GetBlogBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get blog: %w", err)
	}
	if blog == nil || blog.IsDraft {
		return nil, apierrors.NewNotFoundError("Blog")
	}
	return blog, nil
}

// Categories returns the distinct categories of published blogs, sorted.
func (s *blogService) Categories(ctx context.Context) ([]string, error) {
	blogs, err := s.blogs.ListBlogs(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}

	categories := make([]string, 0, len(blogs))
	for _, b := range blogs {
		categories = append(categories, b.Category)
	}
	slices.Sort(categories)
	return slices.Compact(categories), nil
}

// Tags returns the distinct tags of published blogs, sorted.
func (s *blogService) Tags(ctx context.Context) ([]string, error) {
	blogs, err := s.blogs.ListBlogs(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}

	tags := []string{}
	for _, b := range blogs {
		tags = append(tags, b.Tags...)
	}
	slices.Sort(tags)
	return slices.Compact(tags), nil
}

// ListAll returns every blog, drafts included, newest first.
func (s *blogService) ListAll(ctx context.Context) ([]*models.Blog, error) {
	blogs, err := s.blogs.ListBlogs(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	return blogs, nil
}

// Get returns a blog by id, drafts included.
func (s *blogService) Get(ctx context.Context, id int) (*models.Blog, error) {
	blog, err := s.blogs.GetBlog(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get blog: %w", err)
	}
	if blog == nil {
		return nil, apierrors.NewNotFoundError("Blog")
	}
	return blog, nil
}

// Create validates req and stores a new blog.
func (s *blogService) Create(ctx context.Context, req CreateBlogRequest) (*models.Blog, error) {
	if err := ValidateStruct(s.validate, req); err != nil {
		return nil, withBlogMessage(err)
	}

	blog := &models.Blog{
		Title:       req.Title,
		Slug:        req.Slug,
		Content:     req.Content,
		Excerpt:     req.Excerpt,
		Category:    req.Category,
		Tags:        req.Tags,
		PublishedAt: req.PublishedAt,
		ReadTime:    req.ReadTime,
		Featured:    req.Featured,
		IsDraft:     req.IsDraft,
	}
	if err := s.blogs.CreateBlog(ctx, blog); err != nil {
		if errors.Is(err, repository.ErrSlugTaken) {
			return nil, slugConflict()
		}
		return nil, fmt.Errorf("failed to create blog: %w", err)
	}

	return blog, nil
}

// Update validates req and merges it into the stored blog.
func (s *blogService) Update(ctx context.Context, id int, req UpdateBlogRequest) (*models.Blog, error) {
	if err := ValidateStruct(s.validate, req); err != nil {
		return nil, withBlogMessage(err)
	}

	blog, err := s.blogs.UpdateBlog(ctx, id, req.patch())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBlogNotFound):
			return nil, apierrors.NewNotFoundError("Blog")
		case errors.Is(err, repository.ErrSlugTaken):
			return nil, slugConflict()
		default:
			return nil, fmt.Errorf("failed to update blog: %w", err)
		}
	}

	return blog, nil
}

// Delete removes a blog.
func (s *blogService) Delete(ctx context.Context, id int) error {
	deleted, err := s.blogs.DeleteBlog(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}
	if !deleted {
		return apierrors.NewNotFoundError("Blog")
	}
	return nil
}

func slugConflict() *apierrors.APIError {
	return apierrors.NewConflictError("A blog with this slug already exists").
		WithDetails(map[string]string{"slug": "already exists"})
}

func withBlogMessage(err error) error {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		return apiErr.WithMessage("Invalid blog data")
	}
	return err
}
