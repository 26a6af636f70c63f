// Package api exposes the pipeline over HTTP: document ingestion and index
// administration, a synchronous chat endpoint, and a server-sent-events
// streaming variant.
package api

import (
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/cache"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/config"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/container"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/graph"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/graph/nodes"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/retrieval"

	"github.com/gin-gonic/gin"
)

// Server represents the HTTP server.
type Server struct {
	cfg       *config.Config
	retrieval retrieval.Service
	engine    *graph.Engine
	cache     *cache.Cache
}

// NewServer creates a new API server bound to the given retrieval backend
// and configuration. The agent graph is built once, up front, from cont.
func NewServer(cfg *config.Config, retrievalSvc retrieval.Service, cont *container.Container) *Server {
	return &Server{
		cfg:       cfg,
		retrieval: retrievalSvc,
		engine:    nodes.Build(cont.LLMFactory(), cont.Factory(), retrievalSvc, cfg),
		cache:     cache.New(cfg.CacheTTL(), cfg.CacheMaxSize),
	}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()

	router.GET("/health", s.Health)

	apiGroup := router.Group("/api")
	apiGroup.POST("/ingest", s.Ingest)
	apiGroup.DELETE("/index", s.ClearIndex)
	apiGroup.GET("/index/stats", s.IndexStats)
	apiGroup.GET("/documents", s.ListDocuments)
	apiGroup.POST("/chat", s.Chat)
	apiGroup.POST("/chat/stream", s.ChatStream)

	return router
}
