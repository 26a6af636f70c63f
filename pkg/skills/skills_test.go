package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTechStackMapper_DetectsKnownKeywords(t *testing.T) {
	summary, ok := TechStackMapper("El sistema debe correr sobre Kubernetes con una REST API y PostgreSQL.")
	assert.True(t, ok)
	assert.Contains(t, summary, "Kubernetes")
	assert.Contains(t, summary, "PostgreSQL")
}

func TestTechStackMapper_NoMatchReturnsFalse(t *testing.T) {
	_, ok := TechStackMapper("no technology mentioned here at all")
	assert.False(t, ok)
}

func TestFinancialTableParser_ExtractsMoneyLines(t *testing.T) {
	table, ok := FinancialTableParser("Anticipo: USD 1,500,000\nOtra linea sin datos\nSaldo: 30%")
	assert.True(t, ok)
	assert.Contains(t, table, "USD 1,500,000")
	assert.Contains(t, table, "30%")
}

func TestFinancialTableParser_NoMatchReturnsFalse(t *testing.T) {
	_, ok := FinancialTableParser("no numbers here")
	assert.False(t, ok)
}

func TestCalculateRiskScore_EmptyYieldsGo(t *testing.T) {
	a := CalculateRiskScore(nil)
	assert.Equal(t, RecommendationGo, a.Recommendation)
}

func TestCalculateRiskScore_KillSwitchForcesNoGo(t *testing.T) {
	a := CalculateRiskScore([]RiskFactorInput{
		{Description: "inhabilitacion legal", Category: CategoryLegal, Severity: SeverityCritical, Probability: 0.9},
	})
	assert.Equal(t, RecommendationNoGo, a.Recommendation)
	assert.True(t, a.KillSwitchActivated)
}

func TestCalculateRiskScore_LowAggregateYieldsGo(t *testing.T) {
	a := CalculateRiskScore([]RiskFactorInput{
		{Category: CategoryTimeline, Severity: SeverityLow, Probability: 0.3},
	})
	assert.Equal(t, RecommendationGo, a.Recommendation)
}

func TestCalculateRiskScore_ModerateAggregateYieldsReview(t *testing.T) {
	a := CalculateRiskScore([]RiskFactorInput{
		{Category: CategoryFinancial, Severity: SeverityHigh, Probability: 0.8},
		{Category: CategoryTechnical, Severity: SeverityMedium, Probability: 0.6},
	})
	assert.Equal(t, RecommendationReview, a.Recommendation)
}
