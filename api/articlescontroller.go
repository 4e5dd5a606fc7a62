package api

import (
	"net/http"

	"topicbot/config"
	"topicbot/orchestrator"

	"github.com/gin-gonic/gin"
)

// RegisterArticleRoutes registers source article routes.
func RegisterArticleRoutes(r *gin.Engine, s *Server) {
	r.GET("/api/articles/top", s.handleTopArticles)
}

// handleTopArticles picks source articles for summarization.
// ?lang=auto alternates by date; ?text=true extracts the article body.
func (s *Server) handleTopArticles(c *gin.Context) {
	count, ok := intQuery(c, "count", config.DefaultArticleCount)
	if !ok {
		return
	}
	lang := c.DefaultQuery("lang", orchestrator.LangAuto)
	withText := c.Query("text") == "true"

	articles, err := s.manager.Pipeline().TopArticles(c.Request.Context(), count, lang, withText)
	if err != nil {
		s.respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lang": lang, "articles": articles})
}
