package nodes

import (
	"context"
	"fmt"
	"strings"

	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/config"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/graph"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/llm"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/prompt"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/tracing"
)

// Refine builds the refine node: regenerates the answer from the domain,
// the filtered context, the question and the previous answer; the audit's
// risk issues are not passed to the prompt. On any failure only revision_count advances — never the
// answer — which guarantees the refine↔risk_sentinel loop still terminates
// against max_audit_revisions even when the LLM call itself is failing.
func Refine(llmFactory llm.Factory, cfg *config.Config) graph.NodeFunc {
	return func(ctx context.Context, logger *tracing.Logger, s *graph.State) (graph.Delta, error) {
		nextRevision := s.RevisionCount + 1

		model, err := llmFactory.ForTemperature(cfg.RefineTemperature)
		if err != nil {
			logger.Error("refine", err)
			return graph.Delta{SetRevisionCount: true, RevisionCount: nextRevision}, nil
		}

		docs := docsForGeneration(s)
		parts := make([]string, 0, len(docs))
		for _, d := range docs {
			parts = append(parts, d.Content)
		}
		contextText := strings.Join(parts, "\n\n---\n\n")

		domain := s.Domain
		if domain == prompt.DomainNone || domain == "" {
			domain = prompt.DomainGeneral
		}

		refinePrompt := prompt.BuildRefinePrompt(domain, contextText, s.Question, s.Answer)
		resp, err := model.Generate(ctx, []llm.Message{{Role: llm.RoleUser, Content: refinePrompt}})
		if err != nil {
			logger.Error("refine", err)
			return graph.Delta{SetRevisionCount: true, RevisionCount: nextRevision}, nil
		}

		logger.NodeExit("refine", fmt.Sprintf("revision #%d complete - %d chars", nextRevision, len(resp.Content)))
		return graph.Delta{
			SetAnswer:        true,
			Answer:           resp.Content,
			SetRevisionCount: true,
			RevisionCount:    nextRevision,
		}, nil
	}
}
