package nodes

import (
	"context"
	"errors"
	"testing"

	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/config"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/graph"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/llm"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/prompt"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/retrieval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequencedFactory hands out a distinct stub per ForTemperature call, in the
// order the calls are made. Safe for node tests that only ever call a
// factory from a single goroutine (refine, quant, risk_sentinel); unsafe for
// concurrent callers, which is why grade_and_route's tests use roleFactory
// instead.
type sequencedFactory struct {
	responses []string
	idx       int
}

func (f *sequencedFactory) ForTemperature(float32) (llm.LLM, error) {
	r := f.responses[f.idx%len(f.responses)]
	f.idx++
	return llm.NewStub(r), nil
}

// roleFactory hands out a fixed stub per temperature rather than per call
// order, so grader and router can be scripted independently even though
// GradeAndRoute invokes both concurrently via errgroup: call order between
// the two goroutines is not guaranteed, but each one always asks for its own
// configured temperature.
type roleFactory struct {
	byTemperature map[float32]string
}

func (f *roleFactory) ForTemperature(temp float32) (llm.LLM, error) {
	return llm.NewStub(f.byTemperature[temp]), nil
}

// distinctTemperatures returns a config where grader and router never share
// a temperature, so a roleFactory can tell their calls apart.
func distinctTemperatures() *config.Config {
	cfg := config.Default()
	cfg.GraderTemperature = 0.0
	cfg.RouterTemperature = 0.9
	return cfg
}

func TestGradeAndRoute_FiltersRelevantDocsAndClassifiesDomain(t *testing.T) {
	docs := []retrieval.Document{{Content: "doc uno"}, {Content: "doc dos"}}
	cfg := distinctTemperatures()
	factory := &roleFactory{byTemperature: map[float32]string{
		cfg.GraderTemperature: "1:relevant\n2:not_relevant",
		cfg.RouterTemperature: "legal",
	}}

	s := &graph.State{Question: "clausula de rescision", Context: docs}
	delta, err := GradeAndRoute(factory, cfg)(context.Background(), newTestLogger(), s)
	require.NoError(t, err)

	assert.Len(t, delta.FilteredContext, 1)
	assert.Equal(t, prompt.DomainLegal, delta.Domain)
}

func TestGradeAndRoute_NoRelevantDocsFallsBackToTopN(t *testing.T) {
	docs := []retrieval.Document{{Content: "a"}, {Content: "b"}, {Content: "c"}, {Content: "d"}}
	cfg := distinctTemperatures()
	factory := &roleFactory{byTemperature: map[float32]string{
		cfg.GraderTemperature: "1:not_relevant\n2:not_relevant\n3:not_relevant\n4:not_relevant",
		cfg.RouterTemperature: "general",
	}}

	s := &graph.State{Question: "algo", Context: docs}
	delta, err := GradeAndRoute(factory, cfg)(context.Background(), newTestLogger(), s)
	require.NoError(t, err)

	assert.Len(t, delta.FilteredContext, cfg.SafetyNetFallbackDocs)
}

func TestGradeAndRoute_DataHeavyQuestionTriggersSafetyNet(t *testing.T) {
	docs := []retrieval.Document{{Content: "a"}, {Content: "b"}, {Content: "c"}}
	cfg := distinctTemperatures()
	cfg.SafetyNetMinDocs = 2
	factory := &roleFactory{byTemperature: map[float32]string{
		cfg.GraderTemperature: "1:relevant\n2:not_relevant\n3:not_relevant",
		cfg.RouterTemperature: "timeline",
	}}

	s := &graph.State{Question: "cual es el plazo de entrega", Context: docs}
	delta, err := GradeAndRoute(factory, cfg)(context.Background(), newTestLogger(), s)
	require.NoError(t, err)

	assert.Len(t, delta.FilteredContext, cfg.SafetyNetFallbackDocs)
}

func TestGradeAndRoute_RouterErrorFallsBackToGeneral(t *testing.T) {
	docs := []retrieval.Document{{Content: "a"}}
	factory := &errFactory{}
	cfg := config.Default()

	s := &graph.State{Question: "q", Context: docs}
	delta, err := GradeAndRoute(factory, cfg)(context.Background(), newTestLogger(), s)
	require.NoError(t, err)

	assert.Equal(t, prompt.DomainGeneral, delta.Domain)
	// Fallback keeps min(SafetyNetFallbackDocs, len(docs)) = 1 document.
	assert.Len(t, delta.FilteredContext, len(docs))
}

// errFactory always fails to construct an LLM.
type errFactory struct{}

func (errFactory) ForTemperature(float32) (llm.LLM, error) {
	return nil, errors.New("boom")
}
