package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agenthands/pokedex/internal/catalog"
)

func (s *Server) Health(c *gin.Context) {
	status := gin.H{
		"loaded":  s.catalog.Loaded(),
		"loading": s.catalog.Loading(),
		"items":   s.catalog.Len(),
	}
	if at := s.catalog.LoadedAt(); !at.IsZero() {
		status["loaded_at"] = at.Format(time.RFC3339)
	}
	if err := s.catalog.LastLoadError(); err != nil {
		status["last_error"] = err.Error()
	}
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"catalog":        status,
		"chat_available": s.responder.Available(),
	})
}

func (s *Server) Browse(c *gin.Context) {
	state := catalog.ParseQuery(c.Request.URL.Query())

	res, err := s.catalog.Browse(state)
	if err != nil {
		s.fail(c, err, "Failed to browse catalog")
		return
	}

	resp := newBrowseResponse(res)
	c.Header("Content-Location", c.Request.URL.Path+"?"+resp.Query)
	c.JSON(http.StatusOK, resp)
}

func (s *Server) Suggest(c *gin.Context) {
	var q SuggestQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
		return
	}
	if q.Limit == 0 {
		q.Limit = catalog.DefaultSuggestLimit
	}

	items, err := s.catalog.Suggest(q.Term, q.Limit)
	if err != nil {
		s.fail(c, err, "Failed to suggest")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": newItemViews(items)})
}

func (s *Server) Detail(c *gin.Context) {
	d, err := s.catalog.Detail(c.Request.Context(), c.Param("name"))
	if err != nil {
		s.fail(c, err, "Failed to fetch pokemon")
		return
	}
	c.JSON(http.StatusOK, newDetailView(d))
}

func (s *Server) Evolution(c *gin.Context) {
	stages, err := s.catalog.Evolution(c.Request.Context(), c.Param("name"))
	if err != nil {
		s.fail(c, err, "Failed to fetch evolution chain")
		return
	}
	c.JSON(http.StatusOK, gin.H{"evolutions": stages})
}

func (s *Server) Ability(c *gin.Context) {
	info, err := s.catalog.Ability(c.Request.Context(), strings.ToLower(c.Param("name")))
	if err != nil {
		s.fail(c, err, "Failed to fetch ability")
		return
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) Move(c *gin.Context) {
	info, err := s.catalog.Move(c.Request.Context(), strings.ToLower(c.Param("name")))
	if err != nil {
		s.fail(c, err, "Failed to fetch move")
		return
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) Showcase(c *gin.Context) {
	sc, err := s.catalog.Showcase(c.Request.Context())
	if err != nil {
		s.fail(c, err, "Failed to build showcase")
		return
	}
	c.JSON(http.StatusOK, newShowcaseResponse(sc))
}

func (s *Server) Regions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"regions": catalog.SearchRegions(c.Query("search"))})
}

func (s *Server) Region(c *gin.Context) {
	r, ok := catalog.RegionByKey(c.Param("key"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.JSON(http.StatusOK, r)
}

// Refresh starts a full reload in the background. The current collection
// keeps serving until the reload replaces it.
func (s *Server) Refresh(c *gin.Context) {
	if s.catalog.Loading() {
		c.JSON(http.StatusConflict, gin.H{"error": "Catalog load already in progress"})
		return
	}

	s.background.Add(1)
	go func() {
		defer s.background.Done()
		if err := s.catalog.Load(s.baseCtx); err != nil {
			if errors.Is(err, catalog.ErrLoadInProgress) {
				return
			}
			s.logger.Error("Catalog refresh failed", zap.Error(err))
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"status": "refreshing"})
}
