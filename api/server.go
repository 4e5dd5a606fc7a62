package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"topicbot/deduplication"
	"topicbot/history"
	"topicbot/orchestrator"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SlugRegistrar records published slugs
type SlugRegistrar interface {
	Register(ctx context.Context, values ...string) ([]string, error)
}

// Server holds what the route handlers need
type Server struct {
	manager *orchestrator.Manager
	history history.Store
	index   SlugRegistrar

	// runCtx outlives requests and bounds background runs
	runCtx context.Context
	logger zerolog.Logger
}

// NewServer creates a server. index may be nil when no registry is configured.
func NewServer(runCtx context.Context, manager *orchestrator.Manager, store history.Store, index *deduplication.RedisIndex, logger zerolog.Logger) *Server {
	s := &Server{
		manager: manager,
		history: store,
		runCtx:  runCtx,
		logger:  logger.With().Str("component", "api").Logger(),
	}
	if index != nil {
		s.index = index
	}
	return s
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(s *Server) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	RegisterHealthRoutes(r, s)
	RegisterDiscoverRoutes(r, s)
	RegisterHistoryRoutes(r, s)
	RegisterIndexRoutes(r, s)
	RegisterArticleRoutes(r, s)
	return r
}

// respondWithError maps pipeline errors to status codes
func (s *Server) respondWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, orchestrator.ErrNoTopics):
		status = http.StatusNotFound
	case errors.Is(err, orchestrator.ErrBusy):
		status = http.StatusConflict
	case errors.Is(err, context.Canceled):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// intQuery reads a non-negative integer query parameter
func intQuery(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " parameter"})
		return 0, false
	}
	return v, true
}
