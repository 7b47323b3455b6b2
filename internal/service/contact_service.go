package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/UditanshuPandey/Portfolio-Website/internal/models"
	apierrors "github.com/UditanshuPandey/Portfolio-Website/internal/pkg/errors"
	"github.com/UditanshuPandey/Portfolio-Website/internal/pkg/ulid"
)

// ContactService accepts contact form submissions. Messages are validated
// and logged; nothing is stored or delivered.
type ContactService interface {
	Submit(ctx context.Context, req ContactRequest) (*models.ContactMessage, error)
}

// ContactRequest is the contact form payload.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=300"`
	Message string `json:"message" validate:"required,max=5000"`
}

type contactService struct {
	logger   *slog.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewContactService creates a new contact service.
func NewContactService(logger *slog.Logger) ContactService {
	if logger == nil {
		logger = slog.Default()
	}
	return &contactService{
		logger:   logger,
		validate: NewValidator(),
		now:      time.Now,
	}
}

// Submit validates the submission and logs it under a fresh reference id.
func (s *contactService) Submit(ctx context.Context, req ContactRequest) (*models.ContactMessage, error) {
	if err := ValidateStruct(s.validate, req); err != nil {
		var apiErr *apierrors.APIError
		if errors.As(err, &apiErr) {
			return nil, apiErr.WithMessage("Invalid form data")
		}
		return nil, err
	}

	received := s.now().UTC()
	msg := &models.ContactMessage{
		Reference:  ulid.NewFromTime(received),
		Name:       req.Name,
		Email:      req.Email,
		Subject:    req.Subject,
		Message:    req.Message,
		ReceivedAt: received,
	}

	s.logger.InfoContext(ctx, "contact form submission",
		slog.String("reference", msg.Reference),
		slog.String("name", msg.Name),
		slog.String("email", msg.Email),
		slog.String("subject", msg.Subject),
		slog.Int("message_length", len(msg.Message)),
		slog.Time("received_at", msg.ReceivedAt),
	)

	return msg, nil
}
