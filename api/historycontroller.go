package api

import (
	"net/http"
	"time"

	"topicbot/deduplication"
	"topicbot/types"

	"github.com/gin-gonic/gin"
)

// RegisterHistoryRoutes registers history endpoints.
func RegisterHistoryRoutes(r *gin.Engine, s *Server) {
	r.GET("/api/history", s.handleHistory)
}

// handleHistory lists recorded topics, optionally only those of the last ?days=N
func (s *Server) handleHistory(c *gin.Context) {
	days, ok := intQuery(c, "days", 0)
	if !ok {
		return
	}

	records, err := s.history.Load(c.Request.Context())
	if err != nil {
		s.respondWithError(c, err)
		return
	}

	if days > 0 {
		cutoff := time.Now().Add(-time.Duration(days) * 24 * time.Hour)
		recent := make([]types.HistoryRecord, 0, len(records))
		for _, r := range records {
			if t, ok := deduplication.ParseHistoryDate(r.Date); ok && !t.Before(cutoff) {
				recent = append(recent, r)
			}
		}
		records = recent
	}

	c.JSON(http.StatusOK, types.HistoryDocument{Generated: records})
}
