package api

import (
	"fmt"

	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/agent/quant"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/graph"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/prompt"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/retrieval"
)

// buildQueryResponse converts a finished State into the wire response.
func buildQueryResponse(s *graph.State) *QueryResponse {
	return &QueryResponse{
		Answer:        s.Answer,
		Sources:       sourcesOf(s.FilteredContext),
		AgentMetadata: buildAgentMetadata(s),
	}
}

// sourcesOf returns the unique source filenames of docs, preserving the
// order in which each source first appears.
func sourcesOf(docs []retrieval.Document) []string {
	seen := make(map[string]bool, len(docs))
	sources := make([]string, 0, len(docs))
	for _, d := range docs {
		src := d.Source()
		if src == "" || seen[src] {
			continue
		}
		seen[src] = true
		sources = append(sources, src)
	}
	return sources
}

func buildAgentMetadata(s *graph.State) AgentMetadata {
	meta := AgentMetadata{
		Domain:             string(s.Domain),
		SpecialistUsed:     specialistUsed(s.Domain),
		DocumentsRetrieved: len(s.Context),
		DocumentsFiltered:  len(s.FilteredContext),
		RevisionCount:      s.RevisionCount,
		AuditResult:        string(s.AuditResult),
	}

	if s.QuantRan {
		meta.QuantAnalysis = &QuantAnalysis{
			ChartBase64: nonEmptyPtr(s.QuantChart),
			ChartType:   chartTypePtr(s.QuantChartType),
			Insights:    s.QuantInsights,
			DataQuality: string(s.QuantDataQuality),
		}
	}

	if s.RiskSet {
		meta.RiskAssessment = &RiskAssessment{
			RiskLevel:        string(s.RiskLevel),
			ComplianceStatus: string(s.Compliance),
			Issues:           s.RiskIssues,
			GatePassed:       s.GatePassed,
		}
	}

	return meta
}

func specialistUsed(domain prompt.Domain) string {
	if domain == prompt.DomainQuantitative {
		return "quant"
	}
	return fmt.Sprintf("specialist_%s", domain)
}

func nonEmptyPtr(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func chartTypePtr(ct quant.ChartType) *string {
	if ct == "" {
		return nil
	}
	v := string(ct)
	return &v
}
