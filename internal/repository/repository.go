// Package repository provides the in-memory entity store for users,
// sessions, blogs and audit entries.
package repository

import (
	"context"
	"errors"

	"github.com/UditanshuPandey/Portfolio-Website/internal/models"
)

var (
	// ErrUsernameTaken is returned when creating a user whose username exists.
	ErrUsernameTaken = errors.New("repository: username already exists")
	// ErrSlugTaken is returned when a blog slug is already used by another blog.
	ErrSlugTaken = errors.New("repository: slug already exists")
	// ErrBlogNotFound is returned when updating a blog that does not exist.
	ErrBlogNotFound = errors.New("repository: blog not found")
)

// UserRepository defines the interface for user data operations.
// Lookups return nil, nil when no user matches.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// SessionRepository defines the interface for session rows.
type SessionRepository interface {
	CreateSession(ctx context.Context, session *models.Session) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	// DeleteSession reports whether a session was removed.
	DeleteSession(ctx context.Context, id string) (bool, error)
}

// BlogRepository defines the interface for blog data operations.
type BlogRepository interface {
	CreateBlog(ctx context.Context, blog *models.Blog) error
	GetBlog(ctx context.Context, id int) (*models.Blog, error)
	GetBlogBySlug(ctx context.Context, slug string) (*models.Blog, error)
	ListBlogs(ctx context.Context, includeDrafts bool) ([]*models.Blog, error)
	UpdateBlog(ctx context.Context, id int, patch models.BlogPatch) (*models.Blog, error)
	// DeleteBlog reports whether a blog was removed.
	DeleteBlog(ctx context.Context, id int) (bool, error)
}

// AuditRepository defines the interface for audit log operations.
type AuditRepository interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
	// ListAuditLogs returns at most limit entries, newest first.
	ListAuditLogs(ctx context.Context, limit int) ([]*models.AuditLog, error)
}
