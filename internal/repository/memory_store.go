package repository

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/UditanshuPandey/Portfolio-Website/internal/models"
)

// DefaultAuditCapacity bounds the number of audit entries kept in memory.
const DefaultAuditCapacity = 1000

// MemoryStore keeps every entity in process memory. A single RWMutex guards
// all maps and id counters, so id assignment, uniqueness checks and inserts
// happen atomically. Rows are copied on the way in and out.
type MemoryStore struct {
	mu sync.RWMutex

	users         map[int]*models.User
	usernames     map[string]int
	sessions      map[string]*models.Session
	blogs         map[int]*models.Blog
	slugs         map[string]int
	audit         []*models.AuditLog
	auditCapacity int

	nextUserID int
	nextBlogID int
}

var (
	_ UserRepository    = (*MemoryStore)(nil)
	_ SessionRepository = (*MemoryStore)(nil)
	_ BlogRepository    = (*MemoryStore)(nil)
	_ AuditRepository   = (*MemoryStore)(nil)
)

// NewMemoryStore creates an empty store. Ids start at 1.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[int]*models.User),
		usernames:     make(map[string]int),
		sessions:      make(map[string]*models.Session),
		blogs:         make(map[int]*models.Blog),
		slugs:         make(map[string]int),
		auditCapacity: DefaultAuditCapacity,
		nextUserID:    1,
		nextBlogID:    1,
	}
}

// CreateUser assigns the next user id and stores a copy of user.
// user.ID is set on success.
func (s *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usernames[user.Username]; exists {
		return ErrUsernameTaken
	}

	row := *user
	row.ID = s.nextUserID
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	s.nextUserID++

	s.users[row.ID] = &row
	s.usernames[row.Username] = row.ID

	*user = row
	return nil
}

// GetUserByID retrieves a user by id.
func (s *MemoryStore) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

// GetUserByUsername retrieves a user by username.
func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usernames[username]
	if !ok {
		return nil, nil
	}
	c := *s.users[id]
	return &c, nil
}

// CreateSession stores a copy of session keyed by its id.
func (s *MemoryStore) CreateSession(ctx context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := *session
	s.sessions[row.ID] = &row
	return nil
}

// GetSession retrieves a session by id. Expiry is not checked here.
func (s *MemoryStore) GetSession(ctx context.Context, id string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	c := *sess
	return &c, nil
}

// DeleteSession removes a session.
func (s *MemoryStore) DeleteSession(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok, nil
}

// CreateBlog assigns the next blog id and stores a normalized copy of blog.
// blog is updated in place with the stored values.
func (s *MemoryStore) CreateBlog(ctx context.Context, blog *models.Blog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.slugs[blog.Slug]; exists {
		return ErrSlugTaken
	}

	row := blog.Clone()
	row.ID = s.nextBlogID
	s.nextBlogID++

	s.blogs[row.ID] = row
	s.slugs[row.Slug] = row.ID

	*blog = *row.Clone()
	return nil
}

// GetBlog retrieves a blog by id, drafts included.
func (s *MemoryStore) GetBlog(ctx context.Context, id int) (*models.Blog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.blogs[id]
	if !ok {
		return nil, nil
	}
	return b.Clone(), nil
}

// GetBlogBySlug retrieves a blog by slug, drafts included.
func (s *MemoryStore) GetBlogBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.slugs[slug]
	if !ok {
		return nil, nil
	}
	return s.blogs[id].Clone(), nil
}

// ListBlogs returns blogs newest first. Equal publish times are ordered by
// descending id so the most recently created post wins.
func (s *MemoryStore) ListBlogs(ctx context.Context, includeDrafts bool) ([]*models.Blog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blogs := make([]*models.Blog, 0, len(s.blogs))
	for _, b := range s.blogs {
		if b.IsDraft && !includeDrafts {
			continue
		}
		blogs = append(blogs, b.Clone())
	}

	slices.SortFunc(blogs, compareBlogs)
	return blogs, nil
}

func compareBlogs(a, b *models.Blog) int {
	if c := b.PublishedAt.Compare(a.PublishedAt); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}

// UpdateBlog merges patch into the stored blog. The merge is validated
// against slug uniqueness before anything is written.
func (s *MemoryStore) UpdateBlog(ctx context.Context, id int, patch models.BlogPatch) (*models.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.blogs[id]
	if !ok {
		return nil, ErrBlogNotFound
	}

	if patch.Slug != nil {
		if owner, taken := s.slugs[*patch.Slug]; taken && owner != id {
			return nil, ErrSlugTaken
		}
	}

	updated := existing.Clone()
	patch.Apply(updated)
	updated.ID = id

	if updated.Slug != existing.Slug {
		delete(s.slugs, existing.Slug)
		s.slugs[updated.Slug] = id
	}
	s.blogs[id] = updated

	return updated.Clone(), nil
}

// DeleteBlog removes a blog and frees its slug. Ids are never reused.
func (s *MemoryStore) DeleteBlog(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.blogs[id]
	if !ok {
		return false, nil
	}
	delete(s.slugs, b.Slug)
	delete(s.blogs, id)
	return true, nil
}

// CreateAuditLog appends an audit entry, dropping the oldest entries once
// the capacity is reached.
func (s *MemoryStore) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	row := *log
	s.audit = append(s.audit, &row)
	if over := len(s.audit) - s.auditCapacity; over > 0 {
		s.audit = slices.Delete(s.audit, 0, over)
	}
	return nil
}

// ListAuditLogs returns the newest audit entries first.
func (s *MemoryStore) ListAuditLogs(ctx context.Context, limit int) ([]*models.AuditLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.audit) {
		limit = len(s.audit)
	}

	logs := make([]*models.AuditLog, 0, limit)
	for i := len(s.audit) - 1; i >= 0 && len(logs) < limit; i-- {
		c := *s.audit[i]
		logs = append(logs, &c)
	}
	return logs, nil
}
