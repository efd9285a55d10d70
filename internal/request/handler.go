// File: internal/request/handler.go
package request

import (
	"errors"
	"net/http"

	"bloodlink_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for donation-request handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new donation-request handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for donation-request operations. All of
// them require authentication.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	requestGroup := router.Group("/requests")
	requestGroup.Use(authMW)
	{
		requestGroup.POST("", h.create)
		requestGroup.GET("", h.listActive)
		requestGroup.GET("/my-requests", h.listMine)
		requestGroup.POST("/:id/respond", h.respond)
		requestGroup.DELETE("/:id", h.cancel)
		requestGroup.POST("/:id/complete", h.complete)
	}
}

func (h *Handler) create(c *gin.Context) {
	uid := common.GetUserIDFromContext(c)

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Create request: invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Missing required fields for request."))
		return
	}

	id, err := h.service.Create(c.Request.Context(), uid, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Request created successfully",
		"id":      id,
	})
}

func (h *Handler) listActive(c *gin.Context) {
	bloodType := c.Query("bloodType")

	requests, err := h.service.ListActive(c.Request.Context(), bloodType)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, requests)
}

func (h *Handler) listMine(c *gin.Context) {
	uid := common.GetUserIDFromContext(c)

	requests, err := h.service.ListMine(c.Request.Context(), uid)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, requests)
}

func (h *Handler) respond(c *gin.Context) {
	uid := common.GetUserIDFromContext(c)
	requestID := c.Param("id")

	if err := h.service.Respond(c.Request.Context(), uid, requestID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondMessage(c, http.StatusOK, "Response recorded. Awaiting recipient confirmation.")
}

func (h *Handler) cancel(c *gin.Context) {
	uid := common.GetUserIDFromContext(c)
	requestID := c.Param("id")

	if err := h.service.Cancel(c.Request.Context(), uid, requestID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondMessage(c, http.StatusOK, "Request cancelled successfully.")
}

func (h *Handler) complete(c *gin.Context) {
	uid := common.GetUserIDFromContext(c)
	requestID := c.Param("id")

	if err := h.service.Complete(c.Request.Context(), uid, requestID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondMessage(c, http.StatusOK, "Donation completed successfully.")
}
