package api

import (
	"errors"
	"io"
	"net/http"

	"topicbot/config"
	"topicbot/types"

	"github.com/gin-gonic/gin"
)

// RegisterDiscoverRoutes registers discovery endpoints.
func RegisterDiscoverRoutes(r *gin.Engine, s *Server) {
	g := r.Group("/api")
	g.POST("/discover", s.handleDiscover)
	g.POST("/discover/sync", s.handleDiscoverSync)
	g.GET("/dump", s.handleDump)
}

// bindCount reads an optional {"count": N} body.
// Chunked bodies report a length of -1 and are read as well.
func bindCount(c *gin.Context) (int, bool) {
	req := types.DiscoverRequest{Count: config.DefaultCount}
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return 0, false
		}
	}
	if req.Count < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "count must be at least 1"})
		return 0, false
	}
	return req.Count, true
}

// handleDiscover starts a run in the background and returns 202 Accepted immediately.
func (s *Server) handleDiscover(c *gin.Context) {
	count, ok := bindCount(c)
	if !ok {
		return
	}
	runID, err := s.manager.Start(s.runCtx, count)
	if err != nil {
		s.respondWithError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "started", "run_id": runID})
}

// handleDiscoverSync runs discovery inside the request and returns the result
func (s *Server) handleDiscoverSync(c *gin.Context) {
	count, ok := bindCount(c)
	if !ok {
		return
	}
	res, err := s.manager.Discover(c.Request.Context(), count)
	if err != nil {
		s.respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// handleDump returns the highest scored entries without selecting or recording
func (s *Server) handleDump(c *gin.Context) {
	limit, ok := intQuery(c, "limit", config.DumpLimit)
	if !ok {
		return
	}
	all, err := s.manager.Pipeline().Dump(c.Request.Context())
	if err != nil {
		s.respondWithError(c, err)
		return
	}
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	c.JSON(http.StatusOK, gin.H{"count": len(all), "topics": all})
}
