package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"reviewhub/internal/dto"
	"reviewhub/internal/repository"
	"reviewhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockTitleService mocks the service.TitleService interface
type MockTitleService struct {
	mock.Mock
}

func (m *MockTitleService) List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]dto.TitleResponse, int64, error) {
	args := m.Called(ctx, filter, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]dto.TitleResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockTitleService) Get(ctx context.Context, id int64) (*dto.TitleResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TitleResponse), args.Error(1)
}

func (m *MockTitleService) Create(ctx context.Context, req *dto.CreateTitleRequest) (*dto.TitleResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TitleResponse), args.Error(1)
}

func (m *MockTitleService) Update(ctx context.Context, id int64, req *dto.UpdateTitleRequest) (*dto.TitleResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TitleResponse), args.Error(1)
}

func (m *MockTitleService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTitleRouter(mockTitles *MockTitleService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewTitleHandler(mockTitles)
	router.GET("/titles", h.List)
	router.POST("/titles", h.Create)
	router.GET("/titles/:title_id", h.Get)
	router.PATCH("/titles/:title_id", h.Update)
	router.DELETE("/titles/:title_id", h.Delete)
	return router
}

func TestTitleListEndpoint_ParsesFilters(t *testing.T) {
	mockTitles := new(MockTitleService)
	router := newTitleRouter(mockTitles)

	year := 1965
	expected := repository.TitleFilter{
		Name:         "dune",
		Year:         &year,
		CategorySlug: "books",
		GenreSlug:    "sci-fi",
	}
	mockTitles.On("List", mock.Anything, expected, 1, 20).
		Return([]dto.TitleResponse{{ID: 1, Name: "Dune", Year: 1965, Rating: 7.5}}, int64(1), nil)

	req := httptest.NewRequest(http.MethodGet, "/titles?name=dune&year=1965&category=books&genre=sci-fi", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.PaginatedResponse[dto.TitleResponse]
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 7.5, resp.Data[0].Rating)
}

func TestTitleListEndpoint_BadYearFilter(t *testing.T) {
	mockTitles := new(MockTitleService)
	router := newTitleRouter(mockTitles)

	req := httptest.NewRequest(http.MethodGet, "/titles?year=nineteen", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockTitles.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTitleCreateEndpoint_UnknownCategorySlug(t *testing.T) {
	mockTitles := new(MockTitleService)
	router := newTitleRouter(mockTitles)

	mockTitles.On("Create", mock.Anything, mock.AnythingOfType("*dto.CreateTitleRequest")).
		Return(nil, service.ErrCategoryNotFound)

	w := postJSON(router, "/titles", gin.H{
		"name":     "Dune",
		"year":     1965,
		"category": "nope",
		"genre":    []string{"sci-fi"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTitleCreateEndpoint_YearZero(t *testing.T) {
	mockTitles := new(MockTitleService)
	router := newTitleRouter(mockTitles)

	// year 0 is a present value, not a missing field
	mockTitles.On("Create", mock.Anything, mock.AnythingOfType("*dto.CreateTitleRequest")).
		Return(&dto.TitleResponse{ID: 2, Name: "Metamorphoses", Year: 0}, nil)

	w := postJSON(router, "/titles", gin.H{
		"name":  "Metamorphoses",
		"year":  0,
		"genre": []string{"myth"},
	})

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestTitleCreateEndpoint_MissingYear(t *testing.T) {
	mockTitles := new(MockTitleService)
	router := newTitleRouter(mockTitles)

	w := postJSON(router, "/titles", gin.H{"name": "Dune", "genre": []string{"sci-fi"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockTitles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTitleCreateEndpoint_MissingGenre(t *testing.T) {
	mockTitles := new(MockTitleService)
	router := newTitleRouter(mockTitles)

	w := postJSON(router, "/titles", gin.H{"name": "Dune", "year": 1965})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockTitles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTitleGetEndpoint_NotFound(t *testing.T) {
	mockTitles := new(MockTitleService)
	router := newTitleRouter(mockTitles)

	mockTitles.On("Get", mock.Anything, int64(99)).Return(nil, service.ErrTitleNotFound)

	req := httptest.NewRequest(http.MethodGet, "/titles/99", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTitleDeleteEndpoint(t *testing.T) {
	mockTitles := new(MockTitleService)
	router := newTitleRouter(mockTitles)

	mockTitles.On("Delete", mock.Anything, int64(5)).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/titles/5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
