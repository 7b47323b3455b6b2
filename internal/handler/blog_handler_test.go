package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UditanshuPandey/Portfolio-Website/internal/models"
	apierrors "github.com/UditanshuPandey/Portfolio-Website/internal/pkg/errors"
	"github.com/UditanshuPandey/Portfolio-Website/internal/service"
)

// mockBlogService is a mock implementation of BlogService for testing.
type mockBlogService struct {
	listPublishedFunc      func(ctx context.Context, filter models.BlogFilter) ([]*models.Blog, error)
	getPublishedFunc       func(ctx context.Context, id int) (*models.Blog, error)
	getPublishedBySlugFunc func(ctx context.Context, slug string) (*models.Blog, error)
	categoriesFunc         func(ctx context.Context) ([]string, error)
	tagsFunc               func(ctx context.Context) ([]string, error)
	listAllFunc            func(ctx context.Context) ([]*models.Blog, error)
	getFunc                func(ctx context.Context, id int) (*models.Blog, error)
	createFunc             func(ctx context.Context, req service.CreateBlogRequest) (*models.Blog, error)
	updateFunc             func(ctx context.Context, id int, req service.UpdateBlogRequest) (*models.Blog, error)
	deleteFunc             func(ctx context.Context, id int) error
}

func (m *mockBlogService) ListPublished(ctx context.Context, filter models.BlogFilter) ([]*models.Blog, error) {
	if m.listPublishedFunc != nil {
		return m.listPublishedFunc(ctx, filter)
	}
	return []*models.Blog{}, nil
}

func (m *mockBlogService) GetPublished(ctx context.Context, id int) (*models.Blog, error) {
	if m.getPublishedFunc != nil {
		return m.getPublishedFunc(ctx, id)
	}
	return nil, apierrors.NewNotFoundError("Blog")
}

func (m *mockBlogService) GetPublishedBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	if m.getPublishedBySlugFunc != nil {
		return m.getPublishedBySlugFunc(ctx, slug)
	}
	return nil, apierrors.NewNotFoundError("Blog")
}

func (m *mockBlogService) Categories(ctx context.Context) ([]string, error) {
	if m.categoriesFunc != nil {
		return m.categoriesFunc(ctx)
	}
	return []string{}, nil
}

func (m *mockBlogService) Tags(ctx context.Context) ([]string, error) {
	if m.tagsFunc != nil {
		return m.tagsFunc(ctx)
	}
	return []string{}, nil
}

func (m *mockBlogService) ListAll(ctx context.Context) ([]*models.Blog, error) {
	if m.listAllFunc != nil {
		return m.listAllFunc(ctx)
	}
	return []*models.Blog{}, nil
}

func (m *mockBlogService) Get(ctx context.Context, id int) (*models.Blog, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, apierrors.NewNotFoundError("Blog")
}

func (m *mockBlogService) Create(ctx context.Context, req service.CreateBlogRequest) (*models.Blog, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockBlogService) Update(ctx context.Context, id int, req service.UpdateBlogRequest) (*models.Blog, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, req)
	}
	return nil, nil
}

func (m *mockBlogService) Delete(ctx context.Context, id int) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func sampleBlog(id int, slug string) *models.Blog {
	return &models.Blog{
		ID:          id,
		Title:       "Sample " + slug,
		Slug:        slug,
		Content:     "content",
		Excerpt:     "excerpt",
		Category:    "Technical",
		Tags:        []string{},
		PublishedAt: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		ReadTime:    15,
	}
}

func TestBlogHandler_List(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		mockService    *mockBlogService
		expectedStatus int
		checkResponse  func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:  "passes filters through",
			query: "?category=Academic&tag=GATE&search=journey&featured=true",
			mockService: &mockBlogService{
				listPublishedFunc: func(ctx context.Context, filter models.BlogFilter) ([]*models.Blog, error) {
					assert.Equal(t, "Academic", filter.Category)
					assert.Equal(t, "GATE", filter.Tag)
					assert.Equal(t, "journey", filter.Search)
					require.NotNil(t, filter.Featured)
					assert.True(t, *filter.Featured)
					return []*models.Blog{sampleBlog(2, "gate-2025-journey")}, nil
				},
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var blogs []models.Blog
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&blogs))
				require.Len(t, blogs, 1)
				assert.Equal(t, "gate-2025-journey", blogs[0].Slug)
			},
		},
		{
			name:           "empty list is an empty array",
			mockService:    &mockBlogService{},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, `[]`, rec.Body.String())
			},
		},
		{
			name:           "bad featured flag",
			query:          "?featured=maybe",
			mockService:    &mockBlogService{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "store failure",
			mockService: &mockBlogService{
				listPublishedFunc: func(ctx context.Context, filter models.BlogFilter) ([]*models.Blog, error) {
					return nil, errors.New("boom")
				},
			},
			expectedStatus: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.NotContains(t, rec.Body.String(), "boom")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewBlogHandler(tt.mockService)

			req := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
			rec := httptest.NewRecorder()
			h.Routes().ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.checkResponse != nil {
				tt.checkResponse(t, rec)
			}
		})
	}
}

func TestBlogHandler_Get(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		mockService    *mockBlogService
		expectedStatus int
	}{
		{
			name: "found",
			path: "/3",
			mockService: &mockBlogService{
				getPublishedFunc: func(ctx context.Context, id int) (*models.Blog, error) {
					assert.Equal(t, 3, id)
					return sampleBlog(3, "conversational-ai-llama-langchain"), nil
				},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "non numeric id",
			path:           "/abc",
			mockService:    &mockBlogService{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing or draft",
			path:           "/99",
			mockService:    &mockBlogService{},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "by slug",
			path: "/slug/understanding-rag",
			mockService: &mockBlogService{
				getPublishedBySlugFunc: func(ctx context.Context, slug string) (*models.Blog, error) {
					assert.Equal(t, "understanding-rag", slug)
					return sampleBlog(1, slug), nil
				},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown slug",
			path:           "/slug/nope",
			mockService:    &mockBlogService{},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "categories",
			path: "/categories",
			mockService: &mockBlogService{
				categoriesFunc: func(ctx context.Context) ([]string, error) {
					return []string{"AI/ML", "Academic"}, nil
				},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "tags",
			path: "/tags",
			mockService: &mockBlogService{
				tagsFunc: func(ctx context.Context) ([]string, error) {
					return []string{"GATE"}, nil
				},
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewBlogHandler(tt.mockService)

			rec := httptest.NewRecorder()
			h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}
