package api

import (
	"net/http"

	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/cache"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/graph"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/tracing"

	"github.com/gin-gonic/gin"
)

// Chat handles POST /api/chat.
func (s *Server) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key := cache.Key(req.Question)
	if cached, ok := s.cache.Get(key); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	resp, err := s.runPipeline(c, req.Question)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.cache.Set(key, resp)
	c.JSON(http.StatusOK, resp)
}

// ChatStream handles POST /api/chat/stream, emitting a "status" event
// immediately, then a final "result" or "error" event once the pipeline
// finishes.
func (s *Server) ChatStream(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.SSEvent("status", gin.H{"message": "processing"})
	c.Writer.Flush()

	key := cache.Key(req.Question)
	if cached, ok := s.cache.Get(key); ok {
		c.SSEvent("result", cached)
		c.Writer.Flush()
		return
	}

	resp, err := s.runPipeline(c, req.Question)
	if err != nil {
		c.SSEvent("error", gin.H{"message": err.Error()})
		c.Writer.Flush()
		return
	}

	s.cache.Set(key, resp)
	c.SSEvent("result", resp)
	c.Writer.Flush()
}

// runPipeline drives one question through the agent graph and converts the
// resulting state into a wire response.
func (s *Server) runPipeline(c *gin.Context, question string) (*QueryResponse, error) {
	traceID := tracing.NewTraceID()
	logger := tracing.New(traceID)

	st := &graph.State{TraceID: traceID, Question: question}
	if err := s.engine.Run(c.Request.Context(), logger, st); err != nil {
		return nil, err
	}

	return buildQueryResponse(st), nil
}
