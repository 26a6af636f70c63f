package quant

import (
	"context"
	"testing"

	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/llm"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/retrieval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_FullPipelineProducesBarChart(t *testing.T) {
	extractResp := `{"data_found":true,"data_type":"comparison","categories":["Anticipo","Saldo"],"values":["30","70"],"unit":"%","data_quality":"clean","notes":""}`
	extractLLM := llm.NewStub(extractResp)
	strategyLLM := llm.NewStub("bar")
	insightLLM := llm.NewStub("El anticipo representa el 30% y el saldo el 70%.")

	docs := []retrieval.Document{{Content: "Presupuesto: anticipo 30%, saldo 70%"}}
	res, err := Analyze(context.Background(), extractLLM, strategyLLM, insightLLM, "¿cuáles son los porcentajes?", docs)
	require.NoError(t, err)

	assert.Equal(t, ChartBar, res.ChartType)
	assert.NotEmpty(t, res.ChartBase64)
	assert.Equal(t, "El anticipo representa el 30% y el saldo el 70%.", res.Insights)
	assert.Equal(t, QualityClean, res.DataQuality)
}

func TestAnalyze_ExtractParseFailureForcesDataNotFound(t *testing.T) {
	extractLLM := llm.NewStub("not json at all")
	strategyLLM := llm.NewStub("bar")
	insightLLM := llm.NewStub("")

	res, err := Analyze(context.Background(), extractLLM, strategyLLM, insightLLM, "q", nil)
	require.NoError(t, err)
	assert.Equal(t, ChartNone, res.ChartType)
	assert.Equal(t, QualityIncomplete, res.DataQuality)
}

func TestStrategy_InvalidOutputFallsBackByDataType(t *testing.T) {
	cases := []struct {
		dataType DataType
		want     ChartType
	}{
		{DataTypeComparison, ChartBar},
		{DataTypeTimeline, ChartLine},
		{DataTypeDistribution, ChartPie},
		{DataTypeTable, ChartBar},
	}
	for _, c := range cases {
		stub := llm.NewStub("not-a-valid-chart-type")
		got := strategy(context.Background(), stub, extraction{DataFound: true, DataType: c.dataType})
		assert.Equal(t, c.want, got, c.dataType)
	}
}

func TestStrategy_DataNotFoundForcesNone(t *testing.T) {
	stub := llm.NewStub("bar")
	got := strategy(context.Background(), stub, extraction{DataFound: false, DataType: DataTypeComparison})
	assert.Equal(t, ChartNone, got)
}

func TestCoerceValues_TolerantOfThousandSeparators(t *testing.T) {
	vals, ok := coerceValues([]string{"1.234,56", "1,234.56", "5000"})
	require.True(t, ok)
	assert.InDelta(t, 1234.56, vals[0], 0.001)
	assert.InDelta(t, 1234.56, vals[1], 0.001)
	assert.InDelta(t, 5000, vals[2], 0.001)
}

func TestCoerceValues_FailureOnGarbage(t *testing.T) {
	_, ok := coerceValues([]string{"not-a-number"})
	assert.False(t, ok)
}

func TestAnalyze_MismatchedLengthsSkipsRendering(t *testing.T) {
	extractResp := `{"data_found":true,"data_type":"comparison","categories":["A","B","C"],"values":["1","2"],"unit":"","data_quality":"clean"}`
	extractLLM := llm.NewStub(extractResp)
	strategyLLM := llm.NewStub("bar")
	insightLLM := llm.NewStub("insight")

	res, err := Analyze(context.Background(), extractLLM, strategyLLM, insightLLM, "q", nil)
	require.NoError(t, err)
	assert.Empty(t, res.ChartBase64)
	assert.Equal(t, ChartBar, res.ChartType)
}

func TestRender_PieAndLineProduceNonEmptyPNG(t *testing.T) {
	b64, err := Render(ChartPie, []string{"a", "b"}, []float64{30, 70})
	require.NoError(t, err)
	assert.NotEmpty(t, b64)

	b64, err = Render(ChartLine, []string{"a", "b", "c"}, []float64{1, 5, 2})
	require.NoError(t, err)
	assert.NotEmpty(t, b64)
}
