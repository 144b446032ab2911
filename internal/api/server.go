package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jihun/brolly/internal/api/handler"
	"github.com/jihun/brolly/internal/api/middleware"
	"github.com/jihun/brolly/internal/core/repository"
	"github.com/jihun/brolly/internal/core/service"
	"github.com/jihun/brolly/pkg/config"
)

type Server struct {
	router *gin.Engine
	srv    *http.Server
	config *config.Config
}

// NewServer creates a new API server
func NewServer(
	cfg *config.Config,
	authService *service.AuthService,
	rentalService *service.RentalService,
	userRepo repository.UserRepository,
	exportRepo repository.ExportRepository,
) *Server {
	// Set Gin mode
	if !cfg.IsDevMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandlerMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	rentalHandler := handler.NewRentalHandler(rentalService)
	memberHandler := handler.NewMemberHandler(userRepo)
	exportHandler := handler.NewExportHandler(exportRepo)

	// Public routes (no auth required)
	auth := router.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/authorize", authHandler.Authorize)
		auth.POST("/token", authHandler.Token)
	}

	// Protected routes (auth required)
	authMiddleware := middleware.AuthMiddleware(authService)

	// Members
	members := router.Group("/members")
	members.Use(authMiddleware)
	{
		members.GET("/me", memberHandler.Me)
	}

	// Rental
	rental := router.Group("/rental")
	rental.Use(authMiddleware)
	{
		rental.GET("", rentalHandler.GetCurrent)
		rental.POST("/checkout", rentalHandler.Checkout)
		rental.POST("/return", rentalHandler.Return)
	}

	// Administrative backup
	router.GET("/export", authMiddleware, middleware.AdminMiddleware(), exportHandler.Export)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	server := &Server{
		router: router,
		config: cfg,
	}

	return server
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.APIHost, s.config.APIPort)

	s.srv = &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Start with or without SSL
	if s.config.SSLCert != "" && s.config.SSLKey != "" {
		fmt.Printf("Starting HTTPS server on %s\n", addr)
		return s.srv.ListenAndServeTLS(s.config.SSLCert, s.config.SSLKey)
	}

	fmt.Printf("Starting HTTP server on %s\n", addr)
	return s.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}
