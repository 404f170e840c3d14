package post

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"microblog/internal/auth"
	"microblog/internal/templates"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPostService is a mock implementation of PostServiceInterface
type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(authorID int, title, content string) (*Post, error) {
	args := m.Called(authorID, title, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Post), args.Error(1)
}

func (m *MockPostService) ListAll() ([]*PostWithAuthor, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*PostWithAuthor), args.Error(1)
}

// setupTestRouter creates a test router with mocked service
func setupTestRouter(service PostServiceInterface) (*gin.Engine, *PostController) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.SetHTMLTemplate(templates.Load())

	controller := NewPostController(service)

	return router, controller
}

// Helper to add authenticated user to context
func addAuthenticatedUser(c *gin.Context, userID int) {
	c.Set(auth.UserIDKey, userID)
}

func TestIndex_ListsPosts(t *testing.T) {
	mockService := new(MockPostService)
	router, controller := setupTestRouter(mockService)
	router.GET("/", controller.Index)

	mockService.On("ListAll").Return([]*PostWithAuthor{
		{Post: Post{ID: 2, Title: "Hi", Content: "World", CreatedAt: time.Now()}, AuthorName: "alice"},
		{Post: Post{ID: 1, Title: "Older", Content: "post", CreatedAt: time.Now().Add(-time.Hour)}, AuthorName: "bob"},
	}, nil)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Hi")
	assert.Contains(t, body, "by alice")
	assert.Contains(t, body, "Older")
	// Newest-first: "Hi" renders before "Older"
	assert.Less(t, strings.Index(body, "Hi"), strings.Index(body, "Older"))

	mockService.AssertExpectations(t)
}

func TestIndex_Empty(t *testing.T) {
	mockService := new(MockPostService)
	router, controller := setupTestRouter(mockService)
	router.GET("/", controller.Index)

	mockService.On("ListAll").Return([]*PostWithAuthor{}, nil)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No posts yet")
}

func TestIndex_StorageError(t *testing.T) {
	mockService := new(MockPostService)
	router, controller := setupTestRouter(mockService)
	router.GET("/", controller.Index)

	mockService.On("ListAll").Return(nil, errors.New("connection refused"))

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestShowCreate_RendersForm(t *testing.T) {
	mockService := new(MockPostService)
	router, controller := setupTestRouter(mockService)
	router.GET("/blog/create", func(c *gin.Context) {
		addAuthenticatedUser(c, 1)
		controller.ShowCreate(c)
	})

	req := httptest.NewRequest("GET", "/blog/create", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="title"`)
	assert.Contains(t, w.Body.String(), `name="content"`)
}

func TestCreate_Success(t *testing.T) {
	mockService := new(MockPostService)
	router, controller := setupTestRouter(mockService)
	router.POST("/blog/create", func(c *gin.Context) {
		addAuthenticatedUser(c, 1)
		controller.Create(c)
	})

	mockService.On("CreatePost", 1, "Hi", "World").
		Return(&Post{ID: 42, UserID: 1, Title: "Hi", Content: "World"}, nil)

	form := url.Values{"title": {"Hi"}, "content": {"World"}}
	req := httptest.NewRequest("POST", "/blog/create", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	mockService.AssertExpectations(t)
}

func TestCreate_EmptyFields_Rerenders(t *testing.T) {
	mockService := new(MockPostService)
	router, controller := setupTestRouter(mockService)
	router.POST("/blog/create", func(c *gin.Context) {
		addAuthenticatedUser(c, 1)
		controller.Create(c)
	})

	form := url.Values{"title": {""}, "content": {"World"}}
	req := httptest.NewRequest("POST", "/blog/create", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Title is required")
	// The content the user typed survives the re-render
	assert.Contains(t, w.Body.String(), "World")

	// No record was persisted
	mockService.AssertNotCalled(t, "CreatePost")
}

func TestCreate_NoUserInContext_Redirects(t *testing.T) {
	mockService := new(MockPostService)
	router, controller := setupTestRouter(mockService)
	router.POST("/blog/create", controller.Create)

	form := url.Values{"title": {"Hi"}, "content": {"World"}}
	req := httptest.NewRequest("POST", "/blog/create", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	mockService.AssertNotCalled(t, "CreatePost")
}
