package nodes

import (
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/config"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/container"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/graph"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/llm"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/retrieval"
)

const (
	nodeRetrieve      = "retrieve"
	nodeGradeAndRoute = "grade_and_route"
	nodeSpecialist    = "specialist"
	nodeQuant         = "quant"
	nodeRiskSentinel  = "risk_sentinel"
	nodeRefine        = "refine"
)

// Build wires the full graph per the canonical shape: retrieve short-circuits
// to END on an empty index; otherwise grade_and_route fans the question to
// either the specialist or the quantitative analyzer, both of which feed
// risk_sentinel; a rejected audit loops back through refine until
// max_audit_revisions is exhausted.
func Build(llmFactory llm.Factory, agentFactory *container.AgentFactory, svc retrieval.Service, cfg *config.Config) *graph.Engine {
	e := graph.NewEngine()

	e.AddNode(nodeRetrieve, Retrieve(svc, cfg))
	e.AddNode(nodeGradeAndRoute, GradeAndRoute(llmFactory, cfg))
	e.AddNode(nodeSpecialist, Specialist(agentFactory))
	e.AddNode(nodeQuant, Quant(llmFactory, cfg))
	e.AddNode(nodeRiskSentinel, RiskSentinel(llmFactory, cfg))
	e.AddNode(nodeRefine, Refine(llmFactory, cfg))

	e.SetEntry(nodeRetrieve)

	e.AddConditionalEdge(nodeRetrieve, graph.RouteAfterRetrieve, map[string]string{
		"continue": nodeGradeAndRoute,
		"end":      graph.End,
	})
	e.AddConditionalEdge(nodeGradeAndRoute, graph.RouteAfterRouter, map[string]string{
		"quant":      nodeQuant,
		"specialist": nodeSpecialist,
	})
	e.AddEdge(nodeSpecialist, nodeRiskSentinel)
	e.AddEdge(nodeQuant, nodeRiskSentinel)
	e.AddConditionalEdge(nodeRiskSentinel, graph.RouteAfterAudit(cfg.MaxAuditRevisions), map[string]string{
		"refine": nodeRefine,
		"end":    graph.End,
	})
	e.AddEdge(nodeRefine, nodeRiskSentinel)

	return e
}
