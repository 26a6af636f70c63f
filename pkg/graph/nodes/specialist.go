package nodes

import (
	"context"
	"errors"
	"fmt"

	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/apperrors"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/container"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/graph"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/prompt"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/retrieval"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/tracing"
)

// docsForGeneration prioritizes the graded filtered context over the raw
// retrieved context.
func docsForGeneration(s *graph.State) []retrieval.Document {
	if len(s.FilteredContext) > 0 {
		return s.FilteredContext
	}
	return s.Context
}

// Specialist builds the specialist node: dispatches to the domain-specific
// agent built by factory. Generation failures degrade to a fixed-format
// error answer instead of aborting the run, since a failed specialist still
// has to pass through risk_sentinel.
func Specialist(factory *container.AgentFactory) graph.NodeFunc {
	return func(ctx context.Context, logger *tracing.Logger, s *graph.State) (graph.Delta, error) {
		domain := s.Domain
		if domain == prompt.DomainQuantitative || domain == prompt.DomainNone || !domain.IsValid() {
			domain = prompt.DomainGeneral
		}

		agent, err := factory.Create(domain)
		if err != nil {
			logger.Error(fmt.Sprintf("specialist_%s", domain), err)
			return graph.Delta{SetAnswer: true, Answer: fmt.Sprintf("Error en el agente (%T): %.200s", err, err.Error())}, nil
		}

		docs := docsForGeneration(s)
		answer, err := agent.Generate(ctx, s.Question, docs)
		if err != nil {
			logger.Error(fmt.Sprintf("specialist_%s", domain), err)
			var procErr *apperrors.AgentProcessingError
			if errors.As(err, &procErr) {
				return graph.Delta{SetAnswer: true, Answer: fmt.Sprintf("Error en el agente especializado: %.300s", err.Error())}, nil
			}
			return graph.Delta{SetAnswer: true, Answer: fmt.Sprintf("Error en el agente (%T): %.200s", err, err.Error())}, nil
		}

		logger.NodeExit(fmt.Sprintf("specialist_%s", domain), fmt.Sprintf("generated %d chars", len(answer)))
		return graph.Delta{SetAnswer: true, Answer: answer}, nil
	}
}
