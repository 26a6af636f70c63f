// Package risk implements the compliance/risk audit stage: a single LLM
// call guarded by deterministic short-circuits, followed by a deterministic
// post-scorer that can override the LLM's verdict outright.
package risk

import (
	"context"
	"fmt"
	"strings"

	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/llm"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/retrieval"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/skills"
)

// RiskLevel is the closed set the sentinel may emit.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Compliance is the closed set of compliance verdicts.
type Compliance string

const (
	ComplianceApproved Compliance = "approved"
	CompliancePending  Compliance = "pending"
	ComplianceRejected Compliance = "rejected"
)

const noDocumentsMarker = "no hay documentos"

// issuePlaceholderPrefix marks a template placeholder the audit prompt
// sometimes echoes back verbatim instead of a real issue description.
const issuePlaceholderPrefix = "Lista SOLO"

const maxContextDocs = 5

const auditPromptTemplate = `Audita la siguiente respuesta contra el contexto del documento y reporta riesgos de cumplimiento.
Responde SOLO en JSON:
{
  "risk_level": "low|medium|high|critical",
  "compliance_status": "approved|pending|rejected",
  "risk_issues": ["..."],
  "risk_factors": [{"description": "...", "category": "financial|legal|technical|timeline|requirements|reputation", "severity": "LOW|MEDIUM|HIGH|CRITICAL", "probability": 0.0}]
}

CONTEXTO:
%s

RESPUESTA:
%s`

// Assessment is the sentinel's output, merged directly into pipeline state.
type Assessment struct {
	RiskLevel     RiskLevel
	Compliance    Compliance
	RiskIssues    []string
	GatePassed    bool
	AuditResult   string // "pass" | "fail"
}

// rawAudit is the shape the audit LLM call is expected to emit.
type rawAudit struct {
	RiskLevel        string          `json:"risk_level"`
	ComplianceStatus string          `json:"compliance_status"`
	RiskIssues       []string        `json:"risk_issues"`
	RiskFactors      []rawRiskFactor `json:"risk_factors"`
}

type rawRiskFactor struct {
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Severity    string  `json:"severity"`
	Probability float64 `json:"probability"`
}

// Config bounds how much context/answer text reaches the audit prompt.
type Config struct {
	ContextMaxChars int
	AnswerMaxChars  int
}

// Audit runs the risk sentinel for one (answer, context) pair.
func Audit(ctx context.Context, model llm.LLM, cfg Config, answer string, docs []retrieval.Document) Assessment {
	if shortCircuit(answer) {
		return Assessment{RiskLevel: RiskLow, Compliance: ComplianceApproved, RiskIssues: nil, GatePassed: true, AuditResult: "pass"}
	}

	cappedAnswer := capString(answer, cfg.AnswerMaxChars)
	contextText := capString(flattenCapped(docs, maxContextDocs), cfg.ContextMaxChars)

	resp, err := model.Generate(ctx, []llm.Message{
		{Role: llm.RoleUser, Content: fmt.Sprintf(auditPromptTemplate, contextText, cappedAnswer)},
	})
	if err != nil {
		return fallbackAssessment()
	}

	var raw rawAudit
	if !llm.ExtractJSON(resp.Content, &raw) {
		return fallbackAssessment()
	}

	level := RiskLevel(strings.ToLower(strings.TrimSpace(raw.RiskLevel)))
	compliance := Compliance(strings.ToLower(strings.TrimSpace(raw.ComplianceStatus)))
	issues := filterIssues(raw.RiskIssues)
	gatePassed := compliance != ComplianceRejected

	if len(raw.RiskFactors) > 0 {
		level, compliance, gatePassed = applyPostScorer(raw.RiskFactors)
	}

	level = validateRiskLevel(level)
	compliance = validateCompliance(compliance)

	auditResult := "pass"
	if compliance == ComplianceRejected {
		auditResult = "fail"
		gatePassed = false
	}

	return Assessment{
		RiskLevel:   level,
		Compliance:  compliance,
		RiskIssues:  issues,
		GatePassed:  gatePassed,
		AuditResult: auditResult,
	}
}

func shortCircuit(answer string) bool {
	if len(answer) < 50 {
		return true
	}
	lower := strings.ToLower(answer)
	if strings.Contains(lower, "error") {
		return true
	}
	if strings.Contains(lower, noDocumentsMarker) {
		return true
	}
	return false
}

func fallbackAssessment() Assessment {
	return Assessment{RiskLevel: RiskMedium, Compliance: ComplianceApproved, RiskIssues: nil, GatePassed: true, AuditResult: "pass"}
}

// applyPostScorer coerces the LLM-reported risk factors into typed inputs,
// runs the deterministic scorer, and maps its recommendation onto
// (risk_level, compliance, gate_passed) — overriding whatever the LLM said.
func applyPostScorer(factors []rawRiskFactor) (RiskLevel, Compliance, bool) {
	inputs := make([]skills.RiskFactorInput, 0, len(factors))
	for _, f := range factors {
		inputs = append(inputs, skills.RiskFactorInput{
			Description: f.Description,
			Category:    coerceCategory(f.Category),
			Severity:    coerceSeverity(f.Severity),
			Probability: f.Probability,
		})
	}

	assessment := skills.CalculateRiskScore(inputs)

	var level RiskLevel
	var compliance Compliance
	var gatePassed bool

	switch assessment.Recommendation {
	case skills.RecommendationGo:
		level, compliance, gatePassed = RiskLow, ComplianceApproved, true
	case skills.RecommendationReview:
		level, compliance, gatePassed = RiskMedium, CompliancePending, true
	default: // NO_GO
		level, compliance, gatePassed = RiskCritical, ComplianceRejected, false
	}

	if assessment.TotalScore < 70 {
		level = RiskHigh
	}
	if assessment.TotalScore < 40 {
		level = RiskCritical
	}

	return level, compliance, gatePassed
}

func coerceSeverity(raw string) skills.Severity {
	switch skills.Severity(strings.ToUpper(strings.TrimSpace(raw))) {
	case skills.SeverityLow:
		return skills.SeverityLow
	case skills.SeverityHigh:
		return skills.SeverityHigh
	case skills.SeverityCritical:
		return skills.SeverityCritical
	default:
		return skills.SeverityMedium
	}
}

func coerceCategory(raw string) skills.RiskCategory {
	switch skills.RiskCategory(strings.ToLower(strings.TrimSpace(raw))) {
	case skills.CategoryFinancial, skills.CategoryLegal, skills.CategoryTechnical,
		skills.CategoryTimeline, skills.CategoryRequirements, skills.CategoryReputation:
		return skills.RiskCategory(strings.ToLower(strings.TrimSpace(raw)))
	default:
		return skills.CategoryTechnical
	}
}

func validateRiskLevel(level RiskLevel) RiskLevel {
	switch level {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return level
	default:
		return RiskMedium
	}
}

func validateCompliance(c Compliance) Compliance {
	switch c {
	case ComplianceApproved, CompliancePending, ComplianceRejected:
		return c
	default:
		return ComplianceApproved
	}
}

// filterIssues drops empty strings and unresolved template placeholders.
func filterIssues(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, issuePlaceholderPrefix) {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

func capString(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max]
}

func flattenCapped(docs []retrieval.Document, maxDocs int) string {
	if len(docs) > maxDocs {
		docs = docs[:maxDocs]
	}
	parts := make([]string, 0, len(docs))
	for _, d := range docs {
		parts = append(parts, d.Content)
	}
	return strings.Join(parts, "\n\n---\n\n")
}
