package skills

// Severity is the coerced severity of one risk factor.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// RiskCategory is the coerced category of one risk factor.
type RiskCategory string

const (
	CategoryFinancial   RiskCategory = "financial"
	CategoryLegal       RiskCategory = "legal"
	CategoryTechnical   RiskCategory = "technical"
	CategoryTimeline    RiskCategory = "timeline"
	CategoryRequirements RiskCategory = "requirements"
	CategoryReputation  RiskCategory = "reputation"
)

// Recommendation is the scorer's final gating verdict.
type Recommendation string

const (
	RecommendationGo     Recommendation = "GO"
	RecommendationReview Recommendation = "REVIEW"
	RecommendationNoGo   Recommendation = "NO_GO"
)

var severityWeight = map[Severity]float64{
	SeverityLow:      5,
	SeverityMedium:   15,
	SeverityHigh:     30,
	SeverityCritical: 50,
}

// RiskFactorInput is one risk factor reported by the audit LLM call, already
// coerced to the closed severity/category sets.
type RiskFactorInput struct {
	Description string
	Category    RiskCategory
	Severity    Severity
	Probability float64 // 0.0..1.0
}

// RiskAssessment is the deterministic scorer's output.
type RiskAssessment struct {
	TotalScore          float64
	Recommendation      Recommendation
	RecommendationReason string
	KillSwitchActivated bool
}

// CalculateRiskScore reduces a list of risk factors to a single 0-100 score
// and a GO/REVIEW/NO_GO recommendation. Any single CRITICAL factor with
// probability >= 0.75 trips the kill switch straight to NO_GO regardless of
// the aggregate score.
func CalculateRiskScore(factors []RiskFactorInput) RiskAssessment {
	if len(factors) == 0 {
		return RiskAssessment{TotalScore: 0, Recommendation: RecommendationGo, RecommendationReason: "no risk factors reported"}
	}

	var total float64
	killSwitch := false
	for _, f := range factors {
		w, ok := severityWeight[f.Severity]
		if !ok {
			w = severityWeight[SeverityMedium]
		}
		prob := f.Probability
		if prob <= 0 {
			prob = 0.5
		}
		total += w * prob

		if f.Severity == SeverityCritical && f.Probability >= 0.75 {
			killSwitch = true
		}
	}
	if total > 100 {
		total = 100
	}

	if killSwitch {
		return RiskAssessment{
			TotalScore:           total,
			Recommendation:       RecommendationNoGo,
			RecommendationReason: "critical risk factor with high probability",
			KillSwitchActivated:  true,
		}
	}

	switch {
	case total < 30:
		return RiskAssessment{TotalScore: total, Recommendation: RecommendationGo, RecommendationReason: "aggregate score below go threshold"}
	case total < 65:
		return RiskAssessment{TotalScore: total, Recommendation: RecommendationReview, RecommendationReason: "aggregate score requires manual review"}
	default:
		return RiskAssessment{TotalScore: total, Recommendation: RecommendationNoGo, RecommendationReason: "aggregate score exceeds no-go threshold"}
	}
}
