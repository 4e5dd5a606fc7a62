package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterHealthRoutes registers liveness and run status endpoints.
func RegisterHealthRoutes(r *gin.Engine, s *Server) {
	r.GET("/api/health", handleHealth)
	r.GET("/api/status", s.handleStatus)
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleStatus returns the state, recent logs and last result of the run manager
func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.manager.GetStatus())
}
