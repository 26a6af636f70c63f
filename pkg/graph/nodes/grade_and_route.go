package nodes

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/config"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/graph"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/llm"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/prompt"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/retrieval"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/tracing"
	"golang.org/x/sync/errgroup"
)

// dataHeavyKeywords triggers the grader's safety net: a question mentioning
// any of these is assumed to need tabular/numeric evidence even if the
// grader marked too few documents relevant.
var dataHeavyKeywords = []string{
	"fecha", "cronograma", "plazo", "calendario", "hito", "presupuesto",
	"monto", "garantia", "pago", "financier", "tabla", "porcentaje", "%",
	"usd", "ars", "cantidad", "cuanto", "cuando", "timeline", "schedule",
}

func isDataHeavyQuestion(question string) bool {
	q := strings.ToLower(question)
	for _, kw := range dataHeavyKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// GradeAndRoute builds the grade_and_route node: grading and domain routing
// run as sibling goroutines, joined with errgroup, since neither depends on
// the other's output.
func GradeAndRoute(llmFactory llm.Factory, cfg *config.Config) graph.NodeFunc {
	return func(ctx context.Context, logger *tracing.Logger, s *graph.State) (graph.Delta, error) {
		var filtered []retrieval.Document
		var domain prompt.Domain

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			filtered = gradeDocuments(gctx, logger, llmFactory, cfg, s.Question, s.Context)
			return nil
		})
		g.Go(func() error {
			domain = routeQuestion(gctx, logger, llmFactory, cfg, s.Question)
			return nil
		})
		_ = g.Wait() // both goroutines self-recover; Wait never actually errors

		logger.NodeExit("grade_and_route", fmt.Sprintf("domain=%s docs=%d", domain, len(filtered)))
		return graph.Delta{
			SetFilteredContext: true,
			FilteredContext:    filtered,
			SetDomain:          true,
			Domain:             domain,
		}, nil
	}
}

func gradeDocuments(ctx context.Context, logger *tracing.Logger, llmFactory llm.Factory, cfg *config.Config, question string, docs []retrieval.Document) []retrieval.Document {
	fallback := func() []retrieval.Document {
		if len(docs) < cfg.SafetyNetFallbackDocs {
			return docs
		}
		return docs[:cfg.SafetyNetFallbackDocs]
	}

	model, err := llmFactory.ForTemperature(cfg.GraderTemperature)
	if err != nil {
		logger.Error("grade_documents", err)
		return fallback()
	}

	blocks := make([]string, 0, len(docs))
	for i, d := range docs {
		content := d.Content
		if len(content) > cfg.GraderDocTruncation {
			content = content[:cfg.GraderDocTruncation]
		}
		blocks = append(blocks, fmt.Sprintf("[Documento %d]\n%s", i+1, content))
	}
	documentsBlock := strings.Join(blocks, "\n\n---\n\n")
	graderPrompt := prompt.BuildGraderPrompt(len(docs), documentsBlock, question)

	resp, err := model.Generate(ctx, []llm.Message{{Role: llm.RoleUser, Content: graderPrompt}})
	if err != nil {
		logger.Error("grade_documents", err)
		return fallback()
	}

	gradesText := strings.ToLower(strings.TrimSpace(resp.Content))
	var relevant []retrieval.Document
	for _, line := range strings.Split(gradesText, "\n") {
		line = strings.TrimSpace(line)
		idx := strings.Index(line, ":")
		if line == "" || idx < 0 {
			continue
		}
		docIdx, err := strconv.Atoi(strings.TrimSpace(line[:idx]))
		if err != nil {
			continue
		}
		docIdx--
		grade := strings.TrimSpace(line[idx+1:])
		isRelevant := strings.Contains(grade, "relevant") && !strings.Contains(grade, "not_relevant")
		if docIdx >= 0 && docIdx < len(docs) && isRelevant {
			relevant = append(relevant, docs[docIdx])
		}
	}

	isDataHeavy := isDataHeavyQuestion(question)
	switch {
	case len(relevant) == 0:
		return fallback()
	case len(relevant) < cfg.SafetyNetMinDocs && isDataHeavy:
		return fallback()
	default:
		return relevant
	}
}

func routeQuestion(ctx context.Context, logger *tracing.Logger, llmFactory llm.Factory, cfg *config.Config, question string) prompt.Domain {
	model, err := llmFactory.ForTemperature(cfg.RouterTemperature)
	if err != nil {
		logger.Error("router", err)
		return prompt.DomainGeneral
	}

	resp, err := model.Generate(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt.BuildRouterPrompt(question)}})
	if err != nil {
		logger.Error("router", err)
		return prompt.DomainGeneral
	}

	return prompt.Normalize(strings.TrimSpace(resp.Content))
}
