// Package seed loads the admin account and sample posts into a fresh store.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/UditanshuPandey/Portfolio-Website/internal/service"
)

//go:embed default.yaml
var defaultFixtures []byte

// Fixtures is the content of a seed file.
type Fixtures struct {
	Blogs []BlogFixture `yaml:"blogs"`
}

// BlogFixture describes one seeded post.
type BlogFixture struct {
	Title       string    `yaml:"title"`
	Slug        string    `yaml:"slug"`
	Content     string    `yaml:"content"`
	Excerpt     string    `yaml:"excerpt"`
	Category    string    `yaml:"category"`
	Tags        []string  `yaml:"tags"`
	PublishedAt time.Time `yaml:"published_at"`
	ReadTime    int       `yaml:"read_time"`
	Featured    bool      `yaml:"featured"`
	Draft       bool      `yaml:"draft"`
}

// Admin is the account created at startup.
type Admin struct {
	Username     string
	Password     string
	PasswordHash string
}

// Load reads fixtures from path, or the built-in fixtures when path is empty.
func Load(path string) (*Fixtures, error) {
	if path == "" {
		return Decode(bytes.NewReader(defaultFixtures))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses fixtures, rejecting unknown keys.
func Decode(r io.Reader) (*Fixtures, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var fx Fixtures
	if err := dec.Decode(&fx); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode seed fixtures: %w", err)
	}
	return &fx, nil
}

// Run creates the admin account and the fixture posts. Posts go through the
// blog service so they are validated like any admin submission.
func Run(ctx context.Context, auth service.AuthService, blogs service.BlogService, admin Admin, fx *Fixtures, logger *slog.Logger) error {
	user, err := auth.CreateUser(ctx, service.CreateUserRequest{
		Username:     admin.Username,
		Password:     admin.Password,
		PasswordHash: admin.PasswordHash,
	})
	if err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	logger.Info("seeded admin user", slog.String("username", user.Username), slog.Int("id", user.ID))

	for _, b := range fx.Blogs {
		created, err := blogs.Create(ctx, service.CreateBlogRequest{
			Title:       b.Title,
			Slug:        b.Slug,
			Content:     b.Content,
			Excerpt:     b.Excerpt,
			Category:    b.Category,
			Tags:        b.Tags,
			PublishedAt: b.PublishedAt.UTC(),
			ReadTime:    b.ReadTime,
			Featured:    b.Featured,
			IsDraft:     b.Draft,
		})
		if err != nil {
			return fmt.Errorf("failed to seed blog %q: %w", b.Slug, err)
		}
		logger.Debug("seeded blog", slog.String("slug", created.Slug), slog.Int("id", created.ID))
	}

	logger.Info("seeded blogs", slog.Int("count", len(fx.Blogs)))
	return nil
}
