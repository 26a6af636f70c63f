// Package nodes wires the concrete graph.NodeFunc implementations — one per
// pipeline stage — against the retrieval, specialist, quant, and risk
// packages via the DI container.
package nodes

import (
	"context"

	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/config"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/graph"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/prompt"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/retrieval"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/tracing"
)

// NoDocumentsMessage is returned verbatim as the answer when the index is
// empty, instructing the user to upload PDFs before asking again.
const NoDocumentsMessage = `No hay documentos cargados en el sistema.

Para poder responder tu pregunta, por favor:

1. **Sube uno o más documentos PDF** usando el área de carga en la interfaz
2. Espera a que se procesen los documentos
3. Vuelve a hacer tu pregunta

Una vez que hayas cargado los documentos de licitación, podré analizar y responder preguntas específicas sobre su contenido.`

// Retrieve builds the retrieve node: similarity search over svc at
// cfg.RetrievalK, short-circuiting to the fixed no-documents answer when the
// index has nothing relevant. A retrieval error degrades to an empty
// context rather than aborting the run.
func Retrieve(svc retrieval.Service, cfg *config.Config) graph.NodeFunc {
	return func(ctx context.Context, logger *tracing.Logger, s *graph.State) (graph.Delta, error) {
		logger.PipelineStart(s.Question)

		docs, err := svc.SimilaritySearch(ctx, s.Question, cfg.RetrievalK)
		if err != nil {
			logger.Error("retrieve", err)
			return graph.Delta{
				SetContext:      true,
				Context:         nil,
				SetRevisionCount: true,
				RevisionCount:   0,
			}, nil
		}

		if len(docs) == 0 {
			logger.RoutingDecision("retrieve", graph.End, "no documents found - returning predefined message")
			return graph.Delta{
				SetContext:         true,
				Context:            []retrieval.Document{},
				SetFilteredContext: true,
				FilteredContext:    []retrieval.Document{},
				SetDomain:          true,
				Domain:             prompt.DomainNone,
				SetAnswer:          true,
				Answer:             NoDocumentsMessage,
				SetAuditResult:     true,
				AuditResult:        graph.AuditPass,
				SetRevisionCount:   true,
				RevisionCount:      0,
				SetNoDocuments:     true,
				NoDocuments:        true,
			}, nil
		}

		return graph.Delta{
			SetContext:       true,
			Context:          docs,
			SetRevisionCount: true,
			RevisionCount:    0,
		}, nil
	}
}
