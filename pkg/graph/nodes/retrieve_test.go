package nodes

import (
	"context"
	"testing"

	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/config"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/graph"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/prompt"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/retrieval"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/tracing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *tracing.Logger {
	return tracing.New(tracing.NewTraceID())
}

func TestRetrieve_EmptyIndexReturnsNoDocumentsMessage(t *testing.T) {
	store := retrieval.NewMemoryStore()
	cfg := config.Default()
	s := &graph.State{Question: "hola"}

	delta, err := Retrieve(store, cfg)(context.Background(), newTestLogger(), s)
	require.NoError(t, err)

	assert.True(t, delta.NoDocuments)
	assert.Equal(t, prompt.DomainNone, delta.Domain)
	assert.Equal(t, NoDocumentsMessage, delta.Answer)
	assert.Equal(t, graph.AuditPass, delta.AuditResult)
	assert.Empty(t, delta.Context)
}

func TestRetrieve_NonEmptyIndexReturnsDocsAndResetsRevisionCount(t *testing.T) {
	store := retrieval.NewMemoryStore()
	_, err := store.IngestDocument(context.Background(), "El plazo de entrega es de 30 dias.", "pliego.pdf")
	require.NoError(t, err)

	cfg := config.Default()
	s := &graph.State{Question: "plazo de entrega", RevisionCount: 3}

	delta, err := Retrieve(store, cfg)(context.Background(), newTestLogger(), s)
	require.NoError(t, err)

	assert.False(t, delta.NoDocuments)
	assert.NotEmpty(t, delta.Context)
	assert.True(t, delta.SetRevisionCount)
	assert.Equal(t, 0, delta.RevisionCount)
}
