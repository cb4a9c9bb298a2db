package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/anycommerce/storefront/internal/api/handlers"
	"github.com/anycommerce/storefront/internal/logging"
	"github.com/anycommerce/storefront/internal/version"
	"github.com/gin-gonic/gin"
)

// Represents the mock JSON API server
type Server struct {
	handler    *handlers.CommandHandler
	httpServer *http.Server
	bindAddr   string
	bindPort   int
	endpoint   string
}

// NewServer creates a new mock API server instance
func NewServer(config *Config) *Server {
	// Set Gin to release mode for production
	gin.SetMode(gin.ReleaseMode)

	return &Server{
		handler:  handlers.NewCommandHandler(config.Carts, config.Catalog),
		bindAddr: config.BindAddr,
		bindPort: config.BindPort,
		endpoint: config.Endpoint,
	}
}

// Start starts the mock API server
func (s *Server) Start() error {
	logging.Info("Starting HTTP API server on %s:%d", s.bindAddr, s.bindPort)

	// Create Gin router
	router := gin.New()

	// Configure Gin logging only if not already configured by CLI tools
	if !logging.IsConfiguredByCLI() {
		gin.DefaultWriter = logging.NewLevelWriter("INFO", "gin")
		gin.DefaultErrorWriter = logging.NewLevelWriter("ERROR", "gin")
	}

	// Add middleware
	router.Use(s.loggingMiddleware())
	router.Use(s.corsMiddleware())
	router.Use(gin.Recovery())

	// Setup routes
	s.setupRoutes(router)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.bindAddr, s.bindPort),
		Handler: router,
		// Timeouts for production
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Test binding first to catch errors immediately
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to bind to %s: %w", s.httpServer.Addr, err)
	}
	listener.Close() // Close the test listener

	// Start server in goroutine now that we know binding works
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error("HTTP server failed: %v", err)
		}
	}()

	logging.Success("HTTP API server started successfully")
	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down HTTP API server...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

var startTime = time.Now() // Track server start time for uptime calculation

// handleHealth delegates to handlers.HandleHealth
func (s *Server) handleHealth(c *gin.Context) {
	handler := handlers.HandleHealth(version.MockapidVersion, startTime)
	handler(c)
}

// handleBatch delegates to the command handler's batch endpoint
func (s *Server) handleBatch(c *gin.Context) {
	handler := handlers.HandleBatch(s.handler)
	handler(c)
}
