// File: internal/middleware/auth_test.go
package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bloodlink_backend/internal/common"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubVerifier struct {
	token *firebaseauth.Token
	err   error
}

func (s *stubVerifier) VerifyIDToken(ctx context.Context, idToken string) (*firebaseauth.Token, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.token, nil
}

func setupAuthRouter(verifier TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(verifier, zap.NewNop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"uid":   common.GetUserIDFromContext(c),
			"email": common.GetUserEmailFromContext(c),
		})
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("missing header yields 401", func(t *testing.T) {
		router := setupAuthRouter(&stubVerifier{})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header yields 401", func(t *testing.T) {
		router := setupAuthRouter(&stubVerifier{})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejected token yields 401 with a generic message", func(t *testing.T) {
		router := setupAuthRouter(&stubVerifier{err: errors.New("token expired at 1724348800")})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.NotContains(t, w.Body.String(), "expired at", "verification detail must not leak")
	})

	t.Run("verified token populates the caller identity", func(t *testing.T) {
		router := setupAuthRouter(&stubVerifier{token: &firebaseauth.Token{
			UID:    "uid-1",
			Claims: map[string]interface{}{"email": "donor@example.com"},
		}})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"uid":"uid-1"`)
		assert.Contains(t, w.Body.String(), `"email":"donor@example.com"`)
	})

	t.Run("bearer prefix is case-insensitive", func(t *testing.T) {
		router := setupAuthRouter(&stubVerifier{token: &firebaseauth.Token{UID: "uid-1"}})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "bearer good-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
