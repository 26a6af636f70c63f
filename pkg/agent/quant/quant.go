// Package quant implements the three-stage quantitative analysis pipeline:
// extract structured numbers, pick a chart strategy, render deterministically,
// then generate a short textual insight.
package quant

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/llm"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/retrieval"
)

// DataType is the closed set of shapes the extractor may report.
type DataType string

const (
	DataTypeComparison  DataType = "comparison"
	DataTypeTimeline    DataType = "timeline"
	DataTypeDistribution DataType = "distribution"
	DataTypeSingleValue DataType = "single_value"
	DataTypeTable       DataType = "table"
	DataTypeNone        DataType = "none"
)

// ChartType is the closed set of rendering strategies.
type ChartType string

const (
	ChartBar   ChartType = "bar"
	ChartLine  ChartType = "line"
	ChartPie   ChartType = "pie"
	ChartTable ChartType = "table"
	ChartNone  ChartType = "none"
)

// DataQuality reports how much massaging the extracted numbers needed.
type DataQuality string

const (
	QualityClean      DataQuality = "clean"
	QualitySanitized  DataQuality = "sanitized"
	QualityIncomplete DataQuality = "incomplete"
)

// extraction is the raw JSON shape the extract-stage prompt emits.
type extraction struct {
	DataFound   bool     `json:"data_found"`
	DataType    DataType `json:"data_type"`
	Categories  []string `json:"categories"`
	Values      []string `json:"values"` // kept as strings; may carry thousand separators
	Unit        string   `json:"unit"`
	DataQuality DataQuality `json:"data_quality"`
	Notes       string   `json:"notes"`
}

// Result is the pipeline's output tuple.
type Result struct {
	ChartBase64 string // "" if no chart was rendered
	ChartType   ChartType
	Insights    string
	DataQuality DataQuality
}

const extractPrompt = `Extrae datos numéricos del siguiente contexto relevantes para la pregunta. Responde SOLO en JSON:
{
  "data_found": true/false,
  "data_type": "comparison|timeline|distribution|single_value|table|none",
  "categories": ["..."],
  "values": ["..."],
  "unit": "USD|%|unidades|...",
  "data_quality": "clean|sanitized|incomplete",
  "notes": "observaciones breves"
}

CONTEXTO:
%s

PREGUNTA:
%s`

const strategyPrompt = `Dado que los datos son de tipo "%s" con categorias %v, elige UNA estrategia de grafico entre: bar, line, pie, table, none.
Responde solo con la palabra.`

const insightPromptTemplate = `Analiza estos datos y genera un analisis de 2 a 4 oraciones.
Categorias: %v
Valores: %v
Unidad: %s

PREGUNTA:
%s`

// Analyze runs the four stages in sequence.
func Analyze(ctx context.Context, extractLLM, strategyLLM, insightLLM llm.LLM, question string, docs []retrieval.Document) (Result, error) {
	contextText := flattenDocs(docs)

	ex := extract(ctx, extractLLM, contextText, question)

	chartType := strategy(ctx, strategyLLM, ex)

	chartB64 := ""
	if chartType == ChartBar || chartType == ChartLine || chartType == ChartPie {
		values, lengthOK := coerceValues(ex.Values)
		if lengthOK && len(values) == len(ex.Categories) && len(values) > 0 {
			if b64, err := renderWithRetry(chartType, ex.Categories, values); err == nil {
				chartB64 = b64
			}
			// Rendering failure after retries leaves chart_base64 empty but
			// keeps the chosen chart_type, per the render-once-retry-bounded
			// contract: a transient render error does not downgrade the
			// strategy decision.
		}
	}

	insights := insight(ctx, insightLLM, ex, question)

	quality := ex.DataQuality
	if quality != QualityClean && quality != QualitySanitized && quality != QualityIncomplete {
		quality = QualityIncomplete
	}

	return Result{
		ChartBase64: chartB64,
		ChartType:   chartType,
		Insights:    insights,
		DataQuality: quality,
	}, nil
}

func flattenDocs(docs []retrieval.Document) string {
	parts := make([]string, 0, len(docs))
	for _, d := range docs {
		parts = append(parts, d.Content)
	}
	return strings.Join(parts, "\n\n---\n\n")
}

func extract(ctx context.Context, model llm.LLM, contextText, question string) extraction {
	resp, err := model.Generate(ctx, []llm.Message{
		{Role: llm.RoleUser, Content: fmt.Sprintf(extractPrompt, contextText, question)},
	})
	if err != nil {
		return extraction{DataFound: false, DataType: DataTypeNone, DataQuality: QualityIncomplete}
	}

	var ex extraction
	if !llm.ExtractJSON(resp.Content, &ex) {
		return extraction{DataFound: false, DataType: DataTypeNone, DataQuality: QualityIncomplete}
	}
	return ex
}

func strategy(ctx context.Context, model llm.LLM, ex extraction) ChartType {
	if !ex.DataFound {
		return ChartNone
	}

	resp, err := model.Generate(ctx, []llm.Message{
		{Role: llm.RoleUser, Content: fmt.Sprintf(strategyPrompt, ex.DataType, ex.Categories)},
	})

	var picked ChartType
	if err == nil {
		picked = ChartType(strings.ToLower(strings.TrimSpace(resp.Content)))
	}

	switch picked {
	case ChartBar, ChartLine, ChartPie, ChartTable, ChartNone:
		return picked
	default:
		return fallbackStrategy(ex.DataType)
	}
}

func fallbackStrategy(dt DataType) ChartType {
	switch dt {
	case DataTypeComparison:
		return ChartBar
	case DataTypeTimeline:
		return ChartLine
	case DataTypeDistribution:
		return ChartPie
	default:
		return ChartBar
	}
}

func insight(ctx context.Context, model llm.LLM, ex extraction, question string) string {
	resp, err := model.Generate(ctx, []llm.Message{
		{Role: llm.RoleUser, Content: fmt.Sprintf(insightPromptTemplate, ex.Categories, ex.Values, ex.Unit, question)},
	})
	if err == nil && strings.TrimSpace(resp.Content) != "" {
		return resp.Content
	}
	return fallbackInsight(ex)
}

func fallbackInsight(ex extraction) string {
	if !ex.DataFound || len(ex.Categories) == 0 {
		return "No se encontraron datos numéricos suficientes para generar un análisis cuantitativo."
	}
	var b strings.Builder
	b.WriteString("Resumen de los datos extraídos: ")
	for i, cat := range ex.Categories {
		if i > 0 {
			b.WriteString(", ")
		}
		val := ""
		if i < len(ex.Values) {
			val = ex.Values[i]
		}
		fmt.Fprintf(&b, "%s: %s %s", cat, val, ex.Unit)
	}
	b.WriteString(".")
	return b.String()
}

// coerceValues parses string values tolerating thousand separators
// ("1.234,56" or "1,234.56"); returns ok=false on any coercion failure.
func coerceValues(raw []string) ([]float64, bool) {
	out := make([]float64, 0, len(raw))
	for _, v := range raw {
		cleaned := strings.TrimSpace(v)
		cleaned = strings.TrimSuffix(cleaned, "%")
		cleaned = strings.ReplaceAll(cleaned, " ", "")

		// Normalize thousand/decimal separators: if both '.' and ',' are
		// present, the last one is the decimal separator. If only one kind
		// is present and it repeats, it is a thousand separator; a single
		// comma alone is read as the decimal separator.
		lastDot := strings.LastIndex(cleaned, ".")
		lastComma := strings.LastIndex(cleaned, ",")
		if lastDot >= 0 && lastComma >= 0 {
			if lastComma > lastDot {
				cleaned = strings.ReplaceAll(cleaned, ".", "")
				cleaned = strings.Replace(cleaned, ",", ".", 1)
			} else {
				cleaned = strings.ReplaceAll(cleaned, ",", "")
			}
		} else if lastComma >= 0 {
			if strings.Count(cleaned, ",") > 1 {
				cleaned = strings.ReplaceAll(cleaned, ",", "")
			} else {
				cleaned = strings.Replace(cleaned, ",", ".", 1)
			}
		} else if strings.Count(cleaned, ".") > 1 {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
		}

		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return nil, false
		}
		out = append(out, f)
	}
	return out, true
}
