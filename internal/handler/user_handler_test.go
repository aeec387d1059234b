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

// MockUserService mocks the service.UserService interface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(search string, limit, offset int) ([]models.User, int64, error) {
	args := m.Called(search, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserService) Create(req *dto.CreateUserRequest) (*models.User, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateByUsername(username string, req *dto.UpdateUserRequest) (*models.User, error) {
	args := m.Called(username, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) DeleteByUsername(username string) error {
	args := m.Called(username)
	return args.Error(0)
}

func (m *MockUserService) UpdateSelf(userID string, req *dto.UpdateUserRequest) (*models.User, error) {
	args := m.Called(userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newUserRouter(mockUsers *MockUserService, current *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if current != nil {
		router.Use(func(c *gin.Context) {
			c.Set("currentUser", current)
		})
	}
	h := NewUserHandler(mockUsers)
	router.GET("/users", h.List)
	router.POST("/users", h.Create)
	router.GET("/users/me", h.Me)
	router.PATCH("/users/me", h.UpdateMe)
	router.GET("/users/:username", h.Get)
	router.PATCH("/users/:username", h.Update)
	router.DELETE("/users/:username", h.Delete)
	return router
}

func TestUserListEndpoint(t *testing.T) {
	mockUsers := new(MockUserService)
	router := newUserRouter(mockUsers, nil)

	mockUsers.On("List", "read", 20, 0).
		Return([]models.User{{Username: "reader", Email: "r@example.com"}}, int64(1), nil)

	req := httptest.NewRequest(http.MethodGet, "/users?search=read", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.ListResponse[models.User]
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Len(t, resp.Results, 1)
	assert.Equal(t, "reader", resp.Results[0].Username)
}

func TestUserCreateEndpoint_BadRole(t *testing.T) {
	mockUsers := new(MockUserService)
	router := newUserRouter(mockUsers, nil)

	w := postJSON(router, "/users", gin.H{
		"username": "newuser",
		"email":    "new@example.com",
		"role":     "supreme-leader",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUsers.AssertNotCalled(t, "Create", mock.Anything)
}

func TestUserGetEndpoint_NotFound(t *testing.T) {
	mockUsers := new(MockUserService)
	router := newUserRouter(mockUsers, nil)

	mockUsers.On("GetByUsername", "ghost").Return(nil, service.ErrUserNotFound)

	req := httptest.NewRequest(http.MethodGet, "/users/ghost", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMeEndpoint_HidesSecrets(t *testing.T) {
	mockUsers := new(MockUserService)
	current := &models.User{
		ID:               "user-1",
		Username:         "reader",
		Email:            "r@example.com",
		Role:             models.RoleUser,
		ConfirmationCode: "super-secret",
	}
	router := newUserRouter(mockUsers, current)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "reader")
	assert.NotContains(t, w.Body.String(), "super-secret")
	assert.NotContains(t, w.Body.String(), "user-1")
}

func TestUpdateMeEndpoint(t *testing.T) {
	mockUsers := new(MockUserService)
	current := &models.User{ID: "user-1", Username: "reader", Role: models.RoleUser}
	router := newUserRouter(mockUsers, current)

	mockUsers.On("UpdateSelf", "user-1", mock.AnythingOfType("*dto.UpdateUserRequest")).
		Return(&models.User{ID: "user-1", Username: "reader", Bio: "hello", Role: models.RoleUser}, nil)

	w := patchJSON(router, "/users/me", gin.H{"bio": "hello"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hello")
}

func TestUserDeleteEndpoint(t *testing.T) {
	mockUsers := new(MockUserService)
	router := newUserRouter(mockUsers, nil)

	mockUsers.On("DeleteByUsername", "someone").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/users/someone", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
