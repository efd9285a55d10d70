// File: internal/middleware/auth.go
package middleware

import (
	"context"
	"strings"

	"bloodlink_backend/internal/common"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenVerifier verifies a bearer credential and yields the caller identity.
// Satisfied by firebase.Service.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebaseauth.Token, error)
}

// AuthMiddleware creates a Gin middleware that gates protected routes behind
// Firebase ID token verification. The failure message is deliberately generic.
func AuthMiddleware(verifier TokenVerifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(common.AuthorizationHeader)
		if authHeader == "" {
			logger.Debug("Authorization header missing")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header is required."))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], common.AuthorizationTypeBearer) {
			logger.Debug("Authorization header format invalid")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header format must be 'Bearer <token>'."))
			return
		}

		token, err := verifier.VerifyIDToken(c.Request.Context(), parts[1])
		if err != nil {
			logger.Warn("Token verification failed", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Unauthorized. Please log in."))
			return
		}

		c.Set(common.UserIDKey, token.UID)
		if email, ok := token.Claims["email"].(string); ok {
			c.Set(common.UserEmailKey, email)
		}
		c.Set(common.UserClaimsKey, token.Claims)

		logger.Debug("User authenticated successfully", zap.String("uid", token.UID))

		c.Next()
	}
}
