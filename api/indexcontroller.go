package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterIndexRoutes registers the published-slug registry endpoint.
func RegisterIndexRoutes(r *gin.Engine, s *Server) {
	r.POST("/api/index", s.handleRegisterSlugs)
}

// RegisterSlugsRequest lists slugs or keywords of newly published content
type RegisterSlugsRequest struct {
	Slugs []string `json:"slugs" binding:"required"`
}

func (s *Server) handleRegisterSlugs(c *gin.Context) {
	if s.index == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "published-slug registry is not configured"})
		return
	}

	var req RegisterSlugsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Slugs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slugs must not be empty"})
		return
	}

	added, err := s.index.Register(c.Request.Context(), req.Slugs...)
	if err != nil {
		s.respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"registered": added})
}
