package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/config"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/container"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/llm"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/retrieval"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testServer builds a Server wired to an in-memory retrieval store and a
// stub LLM that hands out responses in the order given.
func testServer(t *testing.T, store retrieval.Service, responses ...string) *Server {
	t.Helper()
	cfg := config.Default()
	cont := container.New(cfg)
	cont.OverrideLLM(&llm.StubFactory{LLM: llm.NewStub(responses...)})
	return NewServer(cfg, store, cont)
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
