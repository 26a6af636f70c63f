package nodes

import (
	"context"
	"testing"

	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/agent/risk"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/config"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskSentinel_ShortAnswerAutoApprovesAndPasses(t *testing.T) {
	factory := &sequencedFactory{responses: []string{"ignored"}}
	cfg := config.Default()
	s := &graph.State{Answer: "no"}

	delta, err := RiskSentinel(factory, cfg)(context.Background(), newTestLogger(), s)
	require.NoError(t, err)
	assert.Equal(t, risk.RiskLow, delta.RiskLevel)
	assert.Equal(t, graph.AuditPass, delta.AuditResult)
}

func TestRiskSentinel_RejectedComplianceReportsAuditFail(t *testing.T) {
	rejectedJSON := `{"risk_level":"critical","compliance_status":"rejected","risk_issues":["dato faltante"]}`
	factory := &sequencedFactory{responses: []string{rejectedJSON}}
	cfg := config.Default()
	s := &graph.State{Answer: "Esta es una respuesta larga y detallada que no coincide con ningun atajo determinista configurado."}

	delta, err := RiskSentinel(factory, cfg)(context.Background(), newTestLogger(), s)
	require.NoError(t, err)
	assert.Equal(t, risk.ComplianceRejected, delta.Compliance)
	assert.Equal(t, graph.AuditFail, delta.AuditResult)
	assert.False(t, delta.GatePassed)
}

func TestRiskSentinel_LLMFactoryErrorDegradesToMediumApproved(t *testing.T) {
	cfg := config.Default()
	s := &graph.State{Answer: "Esta es una respuesta larga y detallada que no coincide con ningun atajo determinista configurado."}

	delta, err := RiskSentinel(errFactory{}, cfg)(context.Background(), newTestLogger(), s)
	require.NoError(t, err)
	assert.Equal(t, risk.RiskMedium, delta.RiskLevel)
	assert.Equal(t, risk.ComplianceApproved, delta.Compliance)
	assert.Equal(t, graph.AuditPass, delta.AuditResult)
	assert.True(t, delta.GatePassed)
}
