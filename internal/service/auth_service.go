// Package service provides business logic implementations.
package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/UditanshuPandey/Portfolio-Website/internal/models"
	apierrors "github.com/UditanshuPandey/Portfolio-Website/internal/pkg/errors"
	"github.com/UditanshuPandey/Portfolio-Website/internal/pkg/password"
	"github.com/UditanshuPandey/Portfolio-Website/internal/repository"
)

// sessionTokenBytes is the size of the random session identifier (256 bits).
const sessionTokenBytes = 32

// DefaultSessionExpiry is how long a session stays valid after login.
const DefaultSessionExpiry = 24 * time.Hour

var (
	// ErrSessionNotFound is returned when a session id is unknown or expired.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionUserMissing is returned when a live session points at a user
	// that no longer exists.
	ErrSessionUserMissing = errors.New("session user not found")
)

// AuthService defines the interface for session authentication.
type AuthService interface {
	// Login checks credentials and opens a session.
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	// CreateSession opens a session for userID with a fixed expiry.
	CreateSession(ctx context.Context, userID int) (*models.Session, error)
	// ValidateSession resolves a session id to its user. Expired sessions
	// are deleted on access.
	ValidateSession(ctx context.Context, sessionID string) (*models.User, error)
	// Logout deletes the session. Unknown ids are not an error.
	Logout(ctx context.Context, sessionID string) error
	// CreateUser registers a user from a plain password or a precomputed hash.
	CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error)
}

// LoginRequest is the request for opening a session.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Session *models.Session
	User    models.PublicUser
}

// CreateUserRequest is the request for registering a user.
// PasswordHash takes precedence over Password when both are set.
type CreateUserRequest struct {
	Username     string
	Password     string
	PasswordHash string
}

// AuthServiceOption configures an AuthService.
type AuthServiceOption func(*authService)

// WithClock overrides the time source used for session expiry.
func WithClock(now func() time.Time) AuthServiceOption {
	return func(s *authService) { s.now = now }
}

// WithPasswordParams overrides the argon2id parameters for new hashes.
func WithPasswordParams(p password.Params) AuthServiceOption {
	return func(s *authService) { s.hashParams = p }
}

type authService struct {
	users         repository.UserRepository
	sessions      repository.SessionRepository
	sessionExpiry time.Duration
	logger        *slog.Logger

	now        func() time.Time
	hashParams password.Params
	// verified for unknown usernames so the response time does not reveal
	// whether an account exists
	dummyHash string
}

// NewAuthService creates a new auth service.
func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	sessionExpiry time.Duration,
	logger *slog.Logger,
	opts ...AuthServiceOption,
) (AuthService, error) {
	if sessionExpiry <= 0 {
		sessionExpiry = DefaultSessionExpiry
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &authService{
		users:         users,
		sessions:      sessions,
		sessionExpiry: sessionExpiry,
		logger:        logger,
		now:           time.Now,
		hashParams:    password.DefaultParams,
	}
	for _, opt := range opts {
		opt(s)
	}

	dummy, err := password.HashWithParams("not-a-real-password", s.hashParams)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare password verifier: %w", err)
	}
	s.dummyHash = dummy

	return s, nil
}

// Login checks the credentials and creates a session on success.
func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	hash := s.dummyHash
	if user != nil {
		hash = user.PasswordHash
	}

	ok, err := password.Verify(req.Password, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if user == nil || !ok {
		s.logger.Warn("login failed", slog.String("username", req.Username))
		return nil, apierrors.ErrInvalidCredentials
	}

	session, err := s.CreateSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Session: session, User: user.Public()}, nil
}

// CreateSession opens a session that expires sessionExpiry from now.
func (s *authService) CreateSession(ctx context.Context, userID int) (*models.Session, error) {
	id, err := newSessionID()
	if err != nil {
		return nil, err
	}

	now := s.now()
	session := &models.Session{
		ID:        id,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionExpiry),
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// ValidateSession resolves the session to its user.
func (s *authService) ValidateSession(ctx context.Context, sessionID string) (*models.User, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}

	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if session.Expired(s.now()) {
		if _, err := s.sessions.DeleteSession(ctx, sessionID); err != nil {
			return nil, fmt.Errorf("failed to delete expired session: %w", err)
		}
		return nil, ErrSessionNotFound
	}

	user, err := s.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrSessionUserMissing
	}

	return user, nil
}

// Logout removes the session.
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if _, err := s.sessions.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// CreateUser registers a user.
func (s *authService) CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	if req.Username == "" {
		return nil, apierrors.NewValidationError("username", "is required")
	}

	hash := req.PasswordHash
	if hash == "" {
		if req.Password == "" {
			return nil, apierrors.NewValidationError("password", "is required")
		}
		var err error
		hash, err = password.HashWithParams(req.Password, s.hashParams)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
	} else if _, err := password.Verify("", hash); err != nil {
		return nil, fmt.Errorf("invalid password hash for %q: %w", req.Username, err)
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, apierrors.NewConflictError("Username already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func newSessionID() (string, error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
