package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	{
		wd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(t.TempDir()))
		t.Cleanup(func() { _ = os.Chdir(wd) })
	}

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:5000", cfg.Server.Addr())
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "dev", cfg.Server.Environment)
	assert.False(t, cfg.Server.IsProduction())
	assert.True(t, cfg.Server.Compress)

	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionExpiry)
	assert.Equal(t, "session_id", cfg.Auth.CookieName)
	assert.Equal(t, "admin", cfg.Auth.AdminUsername)
	assert.Equal(t, "admin123", cfg.Auth.AdminPassword)

	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, 10, cfg.RateLimit.RequestsPerMinute)
	assert.Equal(t, []string{"http://localhost:*"}, cfg.CORS.AllowedOrigins)
	assert.Empty(t, cfg.Seed.File)
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portfolio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 8080
  environment: staging
auth:
  session_expiry: 2h
redis:
  enabled: true
  host: cache
cors:
  allowed_origins:
    - https://example.dev
`), 0o600))

	t.Setenv("PORTFOLIO_AUTH_ADMIN_USERNAME", "uditanshu")
	t.Setenv("PORTFOLIO_REDIS_PORT", "6380")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "staging", cfg.Server.Environment)
	assert.Equal(t, 2*time.Hour, cfg.Auth.SessionExpiry)
	assert.Equal(t, "uditanshu", cfg.Auth.AdminUsername)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr())
	assert.Equal(t, []string{"https://example.dev"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: 5000, Environment: "dev"},
			Auth: AuthConfig{
				SessionExpiry: 24 * time.Hour,
				CookieName:    "session_id",
				SessionSecret: DefaultSessionSecret,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: "server.port"},
		{name: "zero expiry", mutate: func(c *Config) { c.Auth.SessionExpiry = 0 }, wantErr: "session_expiry"},
		{name: "empty cookie name", mutate: func(c *Config) { c.Auth.CookieName = "" }, wantErr: "cookie_name"},
		{name: "default secret in prod", mutate: func(c *Config) { c.Server.Environment = "prod" }, wantErr: "session_secret"},
		{
			name: "custom secret in prod",
			mutate: func(c *Config) {
				c.Server.Environment = "prod"
				c.Auth.SessionSecret = "a-real-secret"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
