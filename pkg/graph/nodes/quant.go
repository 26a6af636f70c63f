package nodes

import (
	"context"
	"fmt"

	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/agent/quant"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/config"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/graph"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/llm"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/prompt"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/tracing"
)

const quantErrorMessage = "Error al procesar analisis cuantitativo."

// Quant builds the quant node: runs only when the router classified the
// question as quantitative, and is a no-op Delta otherwise so it can sit
// unconditionally between the router branch and risk_sentinel.
func Quant(llmFactory llm.Factory, cfg *config.Config) graph.NodeFunc {
	return func(ctx context.Context, logger *tracing.Logger, s *graph.State) (graph.Delta, error) {
		if s.Domain != prompt.DomainQuantitative {
			return graph.Delta{}, nil
		}

		extractLLM, err1 := llmFactory.ForTemperature(cfg.QuantExtractTemperature)
		strategyLLM, err2 := llmFactory.ForTemperature(cfg.QuantStrategyTemperature)
		insightLLM, err3 := llmFactory.ForTemperature(cfg.QuantInsightTemperature)
		if err := firstErr(err1, err2, err3); err != nil {
			logger.Error("quant", err)
			return quantErrorDelta(), nil
		}

		docs := docsForGeneration(s)
		result, err := quant.Analyze(ctx, extractLLM, strategyLLM, insightLLM, s.Question, docs)
		if err != nil {
			logger.Error("quant", err)
			return quantErrorDelta(), nil
		}

		logger.NodeExit("quant", fmt.Sprintf("chart_type=%s quality=%s", result.ChartType, result.DataQuality))
		return graph.Delta{
			SetQuant:      true,
			QuantChart:    result.ChartBase64,
			QuantChartType: result.ChartType,
			QuantInsights: result.Insights,
			QuantDataQuality: result.DataQuality,
			SetAnswer:     true,
			Answer:        result.Insights,
		}, nil
	}
}

func quantErrorDelta() graph.Delta {
	return graph.Delta{
		SetQuant:         true,
		QuantChart:       "",
		QuantChartType:   quant.ChartNone,
		QuantInsights:    quantErrorMessage,
		QuantDataQuality: quant.QualityIncomplete,
		SetAnswer:        true,
		Answer:           quantErrorMessage,
	}
}

func firstErr(errs ...error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}
