package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UditanshuPandey/Portfolio-Website/internal/models"
	"github.com/UditanshuPandey/Portfolio-Website/internal/repository"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

// AuditService records and lists admin activity.
type AuditService interface {
	// Record stores the entry. Failures are logged, never returned.
	Record(ctx context.Context, entry *models.AuditLog)
	List(ctx context.Context, limit int) ([]*models.AuditLog, error)
}

type auditService struct {
	repo   repository.AuditRepository
	logger *slog.Logger
}

// NewAuditService creates a new audit service.
func NewAuditService(repo repository.AuditRepository, logger *slog.Logger) AuditService {
	if logger == nil {
		logger = slog.Default()
	}
	return &auditService{repo: repo, logger: logger}
}

// Record stores an audit entry.
func (s *auditService) Record(ctx context.Context, entry *models.AuditLog) {
	if err := s.repo.CreateAuditLog(ctx, entry); err != nil {
		s.logger.ErrorContext(ctx, "failed to record audit entry",
			slog.String("event", string(entry.Event)),
			slog.String("error", err.Error()),
		)
	}
}

// List returns recent entries, newest first. limit is clamped to
// [1, 200] and defaults to 50.
func (s *auditService) List(ctx context.Context, limit int) ([]*models.AuditLog, error) {
	switch {
	case limit <= 0:
		limit = defaultAuditLimit
	case limit > maxAuditLimit:
		limit = maxAuditLimit
	}

	logs, err := s.repo.ListAuditLogs(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return logs, nil
}
