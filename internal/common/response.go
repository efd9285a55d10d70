// File: internal/common/response.go
package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RespondWithError sends a JSON error response.
func RespondWithError(c *gin.Context, err error) {
	apiErr, ok := IsAPIError(err)
	if !ok {
		if l, exists := c.Get("logger"); exists {
			if logger, ok := l.(*zap.Logger); ok {
				logger.Error("Unhandled internal error being wrapped", zap.Error(err))
			}
		}
		// Wrap it as a generic internal server error. The underlying error is
		// deliberately not echoed back to the client.
		apiErr = ErrInternalServer
	}

	c.AbortWithStatusJSON(apiErr.StatusCode, apiErr)
}

// RespondMessage sends a flat {"message": ...} body, the shape the mobile
// client expects for mutation acknowledgements.
func RespondMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}

// RespondOK sends a 200 response with the given payload.
func RespondOK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}
