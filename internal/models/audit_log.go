package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditEvent represents the type of audit event.
type AuditEvent string

const (
	// Auth events
	AuditEventAuthLogin       AuditEvent = "auth.login"
	AuditEventAuthLoginFailed AuditEvent = "auth.login_failed"
	AuditEventAuthLogout      AuditEvent = "auth.logout"

	// Blog events
	AuditEventBlogCreated AuditEvent = "blog.created"
	AuditEventBlogUpdated AuditEvent = "blog.updated"
	AuditEventBlogDeleted AuditEvent = "blog.deleted"
)

// ResourceType represents the type of resource being acted upon.
type ResourceType string

const (
	ResourceTypeUser    ResourceType = "user"
	ResourceTypeSession ResourceType = "session"
	ResourceTypeBlog    ResourceType = "blog"
)

// AuditLog represents an audit log entry.
type AuditLog struct {
	ID           uuid.UUID         `json:"id"`
	Event        AuditEvent        `json:"event"`
	ActorID      *int              `json:"actorId,omitempty"`
	ResourceType *ResourceType     `json:"resourceType,omitempty"`
	ResourceID   *int              `json:"resourceId,omitempty"`
	IPAddress    string            `json:"ipAddress,omitempty"`
	UserAgent    string            `json:"userAgent,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
}
