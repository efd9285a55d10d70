// File: internal/user/handler_test.go
package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bloodlink_backend/internal/common"
	"bloodlink_backend/internal/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserService is a testify mock of the user Service, for handler tests.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, req RegisterRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockUserService) GetProfile(ctx context.Context, uid string) (*Profile, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, uid string, req UpdateProfileRequest) error {
	args := m.Called(ctx, uid, req)
	return args.Error(0)
}

func setupRouter(svc Service, uid string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewHandler(svc, logger.NewDefaultLogger())
	handler.RegisterRoutes(router.Group("/api"), func(c *gin.Context) {
		c.Set(common.UserIDKey, uid)
		c.Next()
	})
	return router
}

func TestHandlerRegister(t *testing.T) {
	t.Run("valid body registers and returns the uid", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("Register", mock.Anything, RegisterRequest{
			Email: "donor@example.com", Password: "secret123", Name: "Dana",
			Role: common.RoleDonor, BloodType: "O+",
		}).Return("uid-1", nil)

		router := setupRouter(svc, "")
		body := `{"email":"donor@example.com","password":"secret123","name":"Dana","role":"donor","bloodType":"O+"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "uid-1", resp["uid"])
		svc.AssertExpectations(t)
	})

	t.Run("missing required fields yield 400", func(t *testing.T) {
		svc := new(MockUserService)
		router := setupRouter(svc, "")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(`{"email":"x@example.com"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("invalid role yields 400", func(t *testing.T) {
		svc := new(MockUserService)
		router := setupRouter(svc, "")

		body := `{"email":"x@example.com","password":"secret123","name":"X","role":"admin"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandlerGetProfile(t *testing.T) {
	t.Run("returns the caller's profile", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("GetProfile", mock.Anything, "uid-1").Return(&Profile{
			ID: "uid-1", Name: "Dana", Email: "donor@example.com",
			Role: common.RoleDonor, BloodType: "O+",
		}, nil)

		router := setupRouter(svc, "uid-1")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "donor", resp["role"])
		assert.Equal(t, "O+", resp["bloodType"])
		_, hasDonationDate := resp["lastDonationDate"]
		assert.False(t, hasDonationDate, "unset lastDonationDate is omitted")
	})

	t.Run("missing profile yields 404", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("GetProfile", mock.Anything, "ghost").
			Return(nil, common.ErrNotFound.WithDetails("User profile not found."))

		router := setupRouter(svc, "ghost")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandlerUpdateProfile(t *testing.T) {
	svc := new(MockUserService)
	name := "Renamed"
	svc.On("UpdateProfile", mock.Anything, "uid-1", UpdateProfileRequest{Name: &name}).Return(nil)

	router := setupRouter(svc, "uid-1")
	w := httptest.NewRecorder()
	// email and role in the body are simply not bound; they cannot be changed
	// through this endpoint.
	body := `{"name":"Renamed","email":"evil@example.com","role":"recipient"}`
	req := httptest.NewRequest(http.MethodPut, "/api/profile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Profile updated!")
	svc.AssertExpectations(t)
}
