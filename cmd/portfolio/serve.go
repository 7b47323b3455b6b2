package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/UditanshuPandey/Portfolio-Website/internal/config"
	"github.com/UditanshuPandey/Portfolio-Website/internal/database"
	"github.com/UditanshuPandey/Portfolio-Website/internal/handler"
	"github.com/UditanshuPandey/Portfolio-Website/internal/middleware"
	"github.com/UditanshuPandey/Portfolio-Website/internal/repository"
	"github.com/UditanshuPandey/Portfolio-Website/internal/seed"
	"github.com/UditanshuPandey/Portfolio-Website/internal/service"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the API server with a freshly seeded in-memory store.

All users, sessions and posts live in memory and are lost on restart.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	logger, err := newLogger(os.Stdout, cfg.Log)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return serve(ctx, cfg, logger)
}

// buildHandler wires the store, services and router for cfg. The returned
// cleanup releases external connections.
func buildHandler(ctx context.Context, cfg *config.Config, logger *slog.Logger) (http.Handler, func(), error) {
	store := repository.NewMemoryStore()

	authService, err := service.NewAuthService(store, store, cfg.Auth.SessionExpiry, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create auth service: %w", err)
	}
	blogService := service.NewBlogService(store)
	auditService := service.NewAuditService(store, logger)
	contactService := service.NewContactService(logger)

	fixtures, err := seed.Load(cfg.Seed.File)
	if err != nil {
		return nil, nil, err
	}
	admin := seed.Admin{
		Username:     cfg.Auth.AdminUsername,
		Password:     cfg.Auth.AdminPassword,
		PasswordHash: cfg.Auth.AdminPasswordHash,
	}
	if err := seed.Run(ctx, authService, blogService, admin, fixtures, logger); err != nil {
		return nil, nil, err
	}

	deps := handler.Dependencies{
		Logger:         logger,
		AuthService:    authService,
		BlogService:    blogService,
		ContactService: contactService,
		AuditService:   auditService,
		Cookies: middleware.NewSessionCookies(middleware.SessionCookieConfig{
			Name:   cfg.Auth.CookieName,
			Secret: cfg.Auth.SessionSecret,
			MaxAge: cfg.Auth.SessionExpiry,
			Secure: cfg.Server.IsProduction(),
		}),
		RateLimit: middleware.RateLimitConfig{
			RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
			BurstSize:         cfg.RateLimit.BurstSize,
		},
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequestTimeout: cfg.Server.RequestTimeout,
		Compress:       cfg.Server.Compress,
	}

	cleanup := func() {}

	if cfg.Redis.Enabled {
		redis, err := database.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("connected to redis", slog.String("addr", cfg.Redis.Addr()))

		deps.RateLimiter = redis
		deps.Ready = redis.Ping
		cleanup = func() {
			if err := redis.Close(); err != nil {
				logger.Warn("failed to close redis", slog.String("error", err.Error()))
			}
		}
	} else {
		logger.Info("redis disabled, rate limiting is off")
	}

	return handler.NewRouter(deps), cleanup, nil
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting portfolio API",
		slog.String("environment", cfg.Server.Environment),
		slog.Int("port", cfg.Server.Port),
	)

	h, cleanup, err := buildHandler(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped gracefully")
	return nil
}
