package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"reviewhub/internal/dto"
	"reviewhub/internal/models"
	"reviewhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCategoryService mocks the service.CategoryService interface
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(search string, page, pageSize int) ([]models.Category, int64, error) {
	args := m.Called(search, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Category), args.Get(1).(int64), args.Error(2)
}

func (m *MockCategoryService) Create(req *dto.CreateCategoryRequest) (*models.Category, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryService) Delete(slug string) error {
	args := m.Called(slug)
	return args.Error(0)
}

func newCategoryRouter(mockCategories *MockCategoryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewCategoryHandler(mockCategories)
	router.GET("/categories", h.List)
	router.POST("/categories", h.Create)
	router.DELETE("/categories/:slug", h.Delete)
	return router
}

func TestCategoryListEndpoint(t *testing.T) {
	mockCategories := new(MockCategoryService)
	router := newCategoryRouter(mockCategories)

	mockCategories.On("List", "", 1, 20).
		Return([]models.Category{{ID: 1, Name: "Books", Slug: "books"}}, int64(1), nil)

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.PaginatedResponse[models.Category]
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "books", resp.Data[0].Slug)
}

func TestCategoryCreateEndpoint(t *testing.T) {
	mockCategories := new(MockCategoryService)
	router := newCategoryRouter(mockCategories)

	mockCategories.On("Create", mock.AnythingOfType("*dto.CreateCategoryRequest")).
		Return(&models.Category{ID: 1, Name: "Books", Slug: "books"}, nil)

	w := postJSON(router, "/categories", gin.H{"name": "Books", "slug": "books"})

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCategoryCreateEndpoint_DuplicateSlug(t *testing.T) {
	mockCategories := new(MockCategoryService)
	router := newCategoryRouter(mockCategories)

	mockCategories.On("Create", mock.AnythingOfType("*dto.CreateCategoryRequest")).
		Return(nil, service.ErrSlugInUse)

	w := postJSON(router, "/categories", gin.H{"name": "Books", "slug": "books"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoryCreateEndpoint_MissingSlug(t *testing.T) {
	mockCategories := new(MockCategoryService)
	router := newCategoryRouter(mockCategories)

	w := postJSON(router, "/categories", gin.H{"name": "Books"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockCategories.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCategoryDeleteEndpoint_NotFound(t *testing.T) {
	mockCategories := new(MockCategoryService)
	router := newCategoryRouter(mockCategories)

	mockCategories.On("Delete", "ghost").Return(service.ErrCategoryNotFound)

	req := httptest.NewRequest(http.MethodDelete, "/categories/ghost", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoryDeleteEndpoint(t *testing.T) {
	mockCategories := new(MockCategoryService)
	router := newCategoryRouter(mockCategories)

	mockCategories.On("Delete", "books").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/categories/books", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
