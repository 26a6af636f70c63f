package nodes

import (
	"context"
	"testing"

	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/agent/quant"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/config"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/graph"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/llm"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuant_SkippedWhenDomainNotQuantitative(t *testing.T) {
	factory := &sequencedFactory{responses: []string{"ignored"}}
	cfg := config.Default()
	s := &graph.State{Domain: prompt.DomainLegal}

	delta, err := Quant(factory, cfg)(context.Background(), newTestLogger(), s)
	require.NoError(t, err)
	assert.False(t, delta.SetQuant)
	assert.False(t, delta.SetAnswer)
}

func TestQuant_RunsPipelineAndSetsAnswerToInsights(t *testing.T) {
	extractJSON := `{"data_found":true,"data_type":"comparison","categories":["A","B"],"values":["10","20"],"unit":"USD","data_quality":"clean","notes":""}`
	factory := &sequencedFactory{responses: []string{extractJSON, "bar", "Los montos varian entre A y B."}}
	cfg := config.Default()
	s := &graph.State{Domain: prompt.DomainQuantitative, Question: "compara los montos"}

	delta, err := Quant(factory, cfg)(context.Background(), newTestLogger(), s)
	require.NoError(t, err)
	assert.True(t, delta.SetQuant)
	assert.Equal(t, quant.ChartBar, delta.QuantChartType)
	assert.Equal(t, "Los montos varian entre A y B.", delta.Answer)
}

func TestQuant_LLMFactoryErrorDegradesGracefully(t *testing.T) {
	factory := errFactory{}
	cfg := config.Default()
	s := &graph.State{Domain: prompt.DomainQuantitative, Question: "q"}

	delta, err := Quant(factory, cfg)(context.Background(), newTestLogger(), s)
	require.NoError(t, err)
	assert.Equal(t, quant.ChartNone, delta.QuantChartType)
	assert.Equal(t, quantErrorMessage, delta.Answer)
}

var _ llm.Factory = errFactory{}
