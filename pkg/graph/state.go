// Package graph implements the typed state machine that drives one question
// through retrieval, routing, generation, and auditing.
package graph

import (
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/agent/quant"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/agent/risk"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/prompt"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/retrieval"
)

// AuditResult is the closed set audit_result may take.
type AuditResult string

const (
	AuditPass AuditResult = "pass"
	AuditFail AuditResult = "fail"
	AuditNA   AuditResult = "N/A"
)

// State is the single mutable value that flows through the graph. A node
// never mutates State directly — it returns a Delta that the engine merges
// in by last-writer-wins per field.
type State struct {
	TraceID  string
	Question string

	Context         []retrieval.Document
	FilteredContext []retrieval.Document
	Domain          prompt.Domain

	Answer       string
	AuditResult  AuditResult
	RevisionCount int

	QuantChart       string
	QuantChartType   quant.ChartType
	QuantInsights    string
	QuantDataQuality quant.DataQuality
	QuantRan         bool

	RiskLevel   risk.RiskLevel
	Compliance  risk.Compliance
	RiskIssues  []string
	GatePassed  bool
	RiskSet     bool

	NoDocuments bool
}

// Delta is a partial update a node returns. Every field group carries a
// Set* flag, and Merge applies a group only when its flag is set, so a
// deliberate zero value is distinguished from "field not touched".
type Delta struct {
	Context         []retrieval.Document
	SetContext      bool
	FilteredContext []retrieval.Document
	SetFilteredContext bool
	Domain          prompt.Domain
	SetDomain       bool

	Answer    string
	SetAnswer bool

	AuditResult    AuditResult
	SetAuditResult bool

	RevisionCount    int
	SetRevisionCount bool

	QuantChart       string
	QuantChartType   quant.ChartType
	QuantInsights    string
	QuantDataQuality quant.DataQuality
	SetQuant         bool

	RiskLevel  risk.RiskLevel
	Compliance risk.Compliance
	RiskIssues []string
	GatePassed bool
	SetRisk    bool

	NoDocuments    bool
	SetNoDocuments bool
}

// Merge applies d onto s by last-writer-wins per key, in place.
func (s *State) Merge(d Delta) {
	if d.SetContext {
		s.Context = d.Context
	}
	if d.SetFilteredContext {
		s.FilteredContext = d.FilteredContext
	}
	if d.SetDomain {
		s.Domain = d.Domain
	}
	if d.SetAnswer {
		s.Answer = d.Answer
	}
	if d.SetAuditResult {
		s.AuditResult = d.AuditResult
	}
	if d.SetRevisionCount {
		s.RevisionCount = d.RevisionCount
	}
	if d.SetQuant {
		s.QuantChart = d.QuantChart
		s.QuantChartType = d.QuantChartType
		s.QuantInsights = d.QuantInsights
		s.QuantDataQuality = d.QuantDataQuality
		s.QuantRan = true
	}
	if d.SetRisk {
		s.RiskLevel = d.RiskLevel
		s.Compliance = d.Compliance
		s.RiskIssues = d.RiskIssues
		s.GatePassed = d.GatePassed
		s.RiskSet = true
	}
	if d.SetNoDocuments {
		s.NoDocuments = d.NoDocuments
	}
}
