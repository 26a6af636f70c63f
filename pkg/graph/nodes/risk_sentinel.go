package nodes

import (
	"context"
	"fmt"

	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/agent/risk"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/config"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/graph"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/llm"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/tracing"
)

// RiskSentinel builds the risk_sentinel node: audits the current answer
// against the evidence context. risk.Audit never returns an error — a
// failed audit LLM call already degrades to a safe fallback internally.
func RiskSentinel(llmFactory llm.Factory, cfg *config.Config) graph.NodeFunc {
	riskCfg := risk.Config{ContextMaxChars: cfg.ContextMaxChars, AnswerMaxChars: cfg.AnswerMaxChars}

	return func(ctx context.Context, logger *tracing.Logger, s *graph.State) (graph.Delta, error) {
		model, err := llmFactory.ForTemperature(cfg.RiskTemperature)
		if err != nil {
			logger.Error("risk_sentinel", err)
			return graph.Delta{
				SetRisk:       true,
				RiskLevel:     risk.RiskMedium,
				Compliance:    risk.ComplianceApproved,
				RiskIssues:    []string{fmt.Sprintf("Error en auditoria: %v", err)},
				GatePassed:    true,
				SetAuditResult: true,
				AuditResult:   graph.AuditPass,
			}, nil
		}

		docs := docsForGeneration(s)
		assessment := risk.Audit(ctx, model, riskCfg, s.Answer, docs)

		logger.NodeExit("risk_sentinel", fmt.Sprintf("risk=%s compliance=%s gate=%t", assessment.RiskLevel, assessment.Compliance, assessment.GatePassed))

		return graph.Delta{
			SetRisk:        true,
			RiskLevel:      assessment.RiskLevel,
			Compliance:     assessment.Compliance,
			RiskIssues:     assessment.RiskIssues,
			GatePassed:     assessment.GatePassed,
			SetAuditResult: true,
			AuditResult:    graph.AuditResult(assessment.AuditResult),
		}, nil
	}
}
