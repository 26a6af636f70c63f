package nodes

import (
	"context"
	"testing"

	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/config"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/container"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/graph"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/llm"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/prompt"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/retrieval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFactory(stub *llm.Stub) *container.AgentFactory {
	c := container.New(config.Default())
	c.OverrideLLM(&llm.StubFactory{LLM: stub})
	return c.Factory()
}

func TestSpecialist_GeneratesViaRegisteredDomain(t *testing.T) {
	factory := newTestFactory(llm.NewStub("respuesta legal"))
	s := &graph.State{
		Question:        "cual es la garantia",
		Domain:          prompt.DomainLegal,
		FilteredContext: []retrieval.Document{{Content: "clausula de garantia de 12 meses"}},
	}

	delta, err := Specialist(factory)(context.Background(), newTestLogger(), s)
	require.NoError(t, err)
	assert.Equal(t, "respuesta legal", delta.Answer)
}

func TestSpecialist_QuantitativeDomainCoercesToGeneral(t *testing.T) {
	factory := newTestFactory(llm.NewStub("respuesta general"))
	s := &graph.State{
		Question:        "cuanto cuesta",
		Domain:          prompt.DomainQuantitative,
		FilteredContext: []retrieval.Document{{Content: "algo"}},
	}

	delta, err := Specialist(factory)(context.Background(), newTestLogger(), s)
	require.NoError(t, err)
	assert.Equal(t, "respuesta general", delta.Answer)
}

func TestSpecialist_LLMErrorProducesFixedFormatMessage(t *testing.T) {
	stub := llm.NewStub()
	stub.Err = assertGenerateErr
	factory := newTestFactory(stub)
	s := &graph.State{
		Question:        "q",
		Domain:          prompt.DomainGeneral,
		FilteredContext: []retrieval.Document{{Content: "algo"}},
	}

	delta, err := Specialist(factory)(context.Background(), newTestLogger(), s)
	require.NoError(t, err)
	assert.Contains(t, delta.Answer, "Error en el agente especializado:")
}

type generateError string

func (e generateError) Error() string { return string(e) }

var assertGenerateErr = generateError("llm unavailable")
