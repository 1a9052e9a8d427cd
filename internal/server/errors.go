package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agenthands/pokedex/internal/catalog"
	"github.com/agenthands/pokedex/internal/persona"
)

// retryAfterSeconds is advertised while the catalog is still loading.
const retryAfterSeconds = 5

// fail maps a service error onto a JSON error response. msg is used for
// unexpected failures.
func (s *Server) fail(c *gin.Context, err error, msg string) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, persona.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat session not found"})
	case errors.Is(err, catalog.ErrNotLoaded):
		c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Catalog is still loading"})
	case errors.Is(err, catalog.ErrLoadFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Catalog failed to load"})
	case errors.Is(err, persona.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message content is empty"})
	case errors.Is(err, context.Canceled):
		// Client went away; nobody reads the body.
		c.Status(499)
	default:
		s.logger.Error(msg,
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": msg})
	}
}
