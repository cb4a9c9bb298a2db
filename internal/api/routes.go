package api

import (
	"github.com/gin-gonic/gin"
)

// Configures all API routes
func (s *Server) setupRoutes(router *gin.Engine) {
	// Health check endpoint for client reachability probes
	router.GET("/health", s.handleHealth)

	// The JSON API endpoint: one POST carries a whole batch of commands
	router.POST(s.endpoint, s.handleBatch)
}
