// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"bloodlink_backend/internal/config"
	"bloodlink_backend/internal/firebase"
	"bloodlink_backend/internal/jobs"
	"bloodlink_backend/internal/middleware"
	"bloodlink_backend/internal/request"
	"bloodlink_backend/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	// Handlers
	userHandler    *user.Handler
	requestHandler *request.Handler

	// Jobs
	requestExpiryJob *jobs.RequestExpiryJob

	// Middleware instances
	authMW gin.HandlerFunc
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	userHandler *user.Handler,
	requestHandler *request.Handler,
	requestExpiryJob *jobs.RequestExpiryJob,
	firebaseService *firebase.Service,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	// CORS Middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	authMW := middleware.AuthMiddleware(firebaseService, logger.Named("AuthMiddleware"))

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "BloodLink API is healthy!"})
	})

	api := router.Group("/api")
	userHandler.RegisterRoutes(api, authMW)
	requestHandler.RegisterRoutes(api, authMW)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:       httpServer,
		router:           router,
		cfg:              cfg,
		logger:           logger,
		userHandler:      userHandler,
		requestHandler:   requestHandler,
		requestExpiryJob: requestExpiryJob,
		authMW:           authMW,
	}, nil
}

func (s *Server) Start() error {
	if s.requestExpiryJob != nil {
		if err := s.requestExpiryJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start request expiry job", zap.Error(err))
		}
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.requestExpiryJob != nil {
		s.requestExpiryJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
