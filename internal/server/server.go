package server

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agenthands/pokedex/internal/catalog"
	"github.com/agenthands/pokedex/internal/persona"
)

// Catalog is the read and reload surface the handlers use.
type Catalog interface {
	Load(ctx context.Context) error
	Loading() bool
	Loaded() bool
	LoadedAt() time.Time
	Len() int
	LastLoadError() error
	Browse(state catalog.QueryState) (catalog.Result, error)
	Suggest(term string, limit int) ([]catalog.Item, error)
	Detail(ctx context.Context, name string) (catalog.Detail, error)
	Evolution(ctx context.Context, name string) ([]catalog.Evolution, error)
	Ability(ctx context.Context, name string) (catalog.AbilityInfo, error)
	Move(ctx context.Context, name string) (catalog.MoveInfo, error)
	Showcase(ctx context.Context) (catalog.Showcase, error)
}

type Server struct {
	catalog   Catalog
	responder *persona.Responder
	sessions  *persona.Sessions
	logger    *zap.Logger

	// baseCtx outlives single requests; background reloads run under it.
	baseCtx    context.Context
	background sync.WaitGroup
}

// New wires the handlers. baseCtx bounds work started by a request that
// continues after the response, such as a catalog reload.
func New(baseCtx context.Context, cat Catalog, responder *persona.Responder, sessions *persona.Sessions, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		catalog:   cat,
		responder: responder,
		sessions:  sessions,
		logger:    logger,
		baseCtx:   baseCtx,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), AccessLog(s.logger), Recovery(s.logger), MaxBodySize(maxBodyBytes))

	r.GET("/health", s.Health)

	api := r.Group("/api")
	{
		api.GET("/pokemon", s.Browse)
		api.GET("/pokemon/suggest", s.Suggest)
		api.GET("/pokemon/:name", s.Detail)
		api.GET("/pokemon/:name/evolution", s.Evolution)
		api.POST("/pokemon/:name/chat", s.Chat)
		api.POST("/pokemon/:name/chat/sessions", s.StartSession)

		api.GET("/chat/sessions/:id", s.GetSession)
		api.POST("/chat/sessions/:id/messages", s.AppendMessage)
		api.DELETE("/chat/sessions/:id", s.EndSession)

		api.GET("/abilities/:name", s.Ability)
		api.GET("/moves/:name", s.Move)
		api.GET("/showcase", s.Showcase)
		api.GET("/regions", s.Regions)
		api.GET("/regions/:key", s.Region)

		api.POST("/catalog/refresh", s.Refresh)
	}

	return r
}

// Wait blocks until background work started by handlers has finished.
func (s *Server) Wait() {
	s.background.Wait()
}
