package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"reviewhub/internal/models"
	"reviewhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthService) IssueToken(username, confirmationCode string) (string, error) {
	args := m.Called(username, confirmationCode)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Save(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsernameAndEmail(username, email string) (*models.User, error) {
	args := m.Called(username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(search string, limit, offset int) ([]models.User, int64, error) {
	args := m.Called(search, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func newProtectedRouter(mockAuth *MockAuthService, mockUsers *MockUserRepository, adminOnly bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	chain := []gin.HandlerFunc{Authenticate(mockAuth, mockUsers)}
	if adminOnly {
		chain = append(chain, RequireAdmin())
	}
	group := router.Group("/protected", chain...)
	group.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": CurrentUser(c).Username})
	})
	return router
}

func doGet(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	router := newProtectedRouter(new(MockAuthService), new(MockUserRepository), false)

	w := doGet(router, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	router := newProtectedRouter(new(MockAuthService), new(MockUserRepository), false)

	w := doGet(router, "Token abc")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	mockAuth := new(MockAuthService)
	router := newProtectedRouter(mockAuth, new(MockUserRepository), false)

	mockAuth.On("ValidateToken", "bad-token").Return(nil, service.ErrInvalidToken)

	w := doGet(router, "Bearer bad-token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_DeletedUser(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockUsers := new(MockUserRepository)
	router := newProtectedRouter(mockAuth, mockUsers, false)

	mockAuth.On("ValidateToken", "stale-token").
		Return(&service.Claims{UserID: "gone-1", Username: "gone"}, nil)
	mockUsers.On("FindByID", "gone-1").Return(nil, gorm.ErrRecordNotFound)

	w := doGet(router, "Bearer stale-token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_LoadsCurrentUser(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockUsers := new(MockUserRepository)
	router := newProtectedRouter(mockAuth, mockUsers, false)

	mockAuth.On("ValidateToken", "good-token").
		Return(&service.Claims{UserID: "user-1", Username: "reader"}, nil)
	mockUsers.On("FindByID", "user-1").
		Return(&models.User{ID: "user-1", Username: "reader", Role: models.RoleUser}, nil)

	w := doGet(router, "Bearer good-token")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "reader")
}

func TestRequireAdmin_RegularUserForbidden(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockUsers := new(MockUserRepository)
	router := newProtectedRouter(mockAuth, mockUsers, true)

	mockAuth.On("ValidateToken", "user-token").
		Return(&service.Claims{UserID: "user-1", Username: "reader"}, nil)
	mockUsers.On("FindByID", "user-1").
		Return(&models.User{ID: "user-1", Username: "reader", Role: models.RoleUser}, nil)

	w := doGet(router, "Bearer user-token")

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdmin_ModeratorForbidden(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockUsers := new(MockUserRepository)
	router := newProtectedRouter(mockAuth, mockUsers, true)

	mockAuth.On("ValidateToken", "mod-token").
		Return(&service.Claims{UserID: "mod-1", Username: "mod"}, nil)
	mockUsers.On("FindByID", "mod-1").
		Return(&models.User{ID: "mod-1", Username: "mod", Role: models.RoleModerator}, nil)

	w := doGet(router, "Bearer mod-token")

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdmin_SuperuserAllowed(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockUsers := new(MockUserRepository)
	router := newProtectedRouter(mockAuth, mockUsers, true)

	// superusers pass the admin gate regardless of stored role
	mockAuth.On("ValidateToken", "root-token").
		Return(&service.Claims{UserID: "root-1", Username: "root"}, nil)
	mockUsers.On("FindByID", "root-1").
		Return(&models.User{ID: "root-1", Username: "root", Role: models.RoleUser, IsSuperuser: true}, nil)

	w := doGet(router, "Bearer root-token")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit_BurstExhaustion(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimit(1, 2))
	router.GET("/limited", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])
	assert.Equal(t, http.StatusTooManyRequests, codes[2])
}
