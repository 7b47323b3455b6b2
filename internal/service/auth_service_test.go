package service

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UditanshuPandey/Portfolio-Website/internal/models"
	apierrors "github.com/UditanshuPandey/Portfolio-Website/internal/pkg/errors"
	"github.com/UditanshuPandey/Portfolio-Website/internal/pkg/password"
	"github.com/UditanshuPandey/Portfolio-Website/internal/repository"
)

var testHashParams = password.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestAuthService(t *testing.T) (AuthService, *repository.MemoryStore, *fakeClock) {
	t.Helper()

	store := repository.NewMemoryStore()
	clock := &fakeClock{now: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)}

	svc, err := NewAuthService(store, store, DefaultSessionExpiry, discardLogger(),
		WithClock(clock.Now),
		WithPasswordParams(testHashParams),
	)
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), CreateUserRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	return svc, store, clock
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "valid credentials", username: "admin", password: "admin123"},
		{name: "wrong password", username: "admin", password: "admin124", wantErr: apierrors.ErrInvalidCredentials},
		{name: "unknown user", username: "root", password: "admin123", wantErr: apierrors.ErrInvalidCredentials},
		{name: "empty password", username: "admin", password: "", wantErr: apierrors.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, clock := newTestAuthService(t)

			result, err := svc.Login(ctx, LoginRequest{Username: tt.username, Password: tt.password})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, result)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, models.PublicUser{ID: 1, Username: "admin"}, result.User)
			assert.Equal(t, clock.Now().Add(24*time.Hour), result.Session.ExpiresAt)

			stored, err := store.GetSession(ctx, result.Session.ID)
			require.NoError(t, err)
			require.NotNil(t, stored)
			assert.Equal(t, 1, stored.UserID)
		})
	}
}

func TestAuthService_SessionTokens(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuthService(t)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		sess, err := svc.CreateSession(ctx, 1)
		require.NoError(t, err)

		raw, err := base64.RawURLEncoding.DecodeString(sess.ID)
		require.NoError(t, err)
		assert.Len(t, raw, 32)

		assert.False(t, seen[sess.ID])
		seen[sess.ID] = true
	}
}

func TestAuthService_ValidateSession(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves the logged in user", func(t *testing.T) {
		svc, _, _ := newTestAuthService(t)

		result, err := svc.Login(ctx, LoginRequest{Username: "admin", Password: "admin123"})
		require.NoError(t, err)

		user, err := svc.ValidateSession(ctx, result.Session.ID)
		require.NoError(t, err)
		assert.Equal(t, result.User, user.Public())
	})

	t.Run("still valid at the expiry instant", func(t *testing.T) {
		svc, _, clock := newTestAuthService(t)

		sess, err := svc.CreateSession(ctx, 1)
		require.NoError(t, err)

		clock.Advance(24 * time.Hour)
		_, err = svc.ValidateSession(ctx, sess.ID)
		assert.NoError(t, err)
	})

	t.Run("expired sessions are purged on access", func(t *testing.T) {
		svc, store, clock := newTestAuthService(t)

		sess, err := svc.CreateSession(ctx, 1)
		require.NoError(t, err)

		clock.Advance(24*time.Hour + time.Second)

		_, err = svc.ValidateSession(ctx, sess.ID)
		assert.ErrorIs(t, err, ErrSessionNotFound)

		stored, err := store.GetSession(ctx, sess.ID)
		require.NoError(t, err)
		assert.Nil(t, stored)

		_, err = svc.ValidateSession(ctx, sess.ID)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("unknown and empty ids", func(t *testing.T) {
		svc, _, _ := newTestAuthService(t)

		_, err := svc.ValidateSession(ctx, "nope")
		assert.ErrorIs(t, err, ErrSessionNotFound)

		_, err = svc.ValidateSession(ctx, "")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("dangling user reference", func(t *testing.T) {
		svc, _, _ := newTestAuthService(t)

		sess, err := svc.CreateSession(ctx, 404)
		require.NoError(t, err)

		_, err = svc.ValidateSession(ctx, sess.ID)
		assert.ErrorIs(t, err, ErrSessionUserMissing)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuthService(t)

	result, err := svc.Login(ctx, LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, result.Session.ID))
	_, err = svc.ValidateSession(ctx, result.Session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// idempotent
	assert.NoError(t, svc.Logout(ctx, result.Session.ID))
	assert.NoError(t, svc.Logout(ctx, "never-existed"))
}

func TestAuthService_CreateUser(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestAuthService(t)

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, CreateUserRequest{Username: "admin", Password: "x"})
		assert.ErrorIs(t, err, apierrors.ErrConflict)
	})

	t.Run("precomputed hash", func(t *testing.T) {
		hash, err := password.HashWithParams("s3cret", testHashParams)
		require.NoError(t, err)

		user, err := svc.CreateUser(ctx, CreateUserRequest{Username: "editor", PasswordHash: hash})
		require.NoError(t, err)
		assert.Equal(t, 2, user.ID)

		stored, err := store.GetUserByUsername(ctx, "editor")
		require.NoError(t, err)
		assert.Equal(t, hash, stored.PasswordHash)

		_, err = svc.Login(ctx, LoginRequest{Username: "editor", Password: "s3cret"})
		assert.NoError(t, err)
	})

	t.Run("malformed hash", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, CreateUserRequest{Username: "broken", PasswordHash: "plaintext"})
		assert.ErrorIs(t, err, password.ErrInvalidHash)
	})

	t.Run("missing password", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, CreateUserRequest{Username: "nopass"})
		apiErr := apierrors.AsAPIError(err)
		assert.Equal(t, "validation_error", apiErr.Code)
	})
}
