package graph

import "github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/prompt"

// branch names used by conditional edges; arbitrary strings, only meaningful
// as keys into the branch map passed to Engine.AddConditionalEdge.
const (
	branchContinue = "continue"
	branchEnd      = "end"
	branchQuant    = "quant"
	branchSpecialist = "specialist"
	branchRefine   = "refine"
)

// RouteAfterRetrieve selects End iff retrieve found no documents.
func RouteAfterRetrieve(s *State) string {
	if s.NoDocuments {
		return branchEnd
	}
	return branchContinue
}

// RouteAfterRouter selects the quant branch iff the router classified the
// question as quantitative.
func RouteAfterRouter(s *State) string {
	if s.Domain == prompt.DomainQuantitative {
		return branchQuant
	}
	return branchSpecialist
}

// RouteAfterAudit reruns refine iff the audit failed and the revision
// budget has not been exhausted; otherwise terminates. It never rewrites
// audit_result itself — exhausting the budget still reports "fail".
func RouteAfterAudit(maxAuditRevisions int) Selector {
	return func(s *State) string {
		if s.AuditResult == AuditFail && s.RevisionCount < maxAuditRevisions {
			return branchRefine
		}
		return branchEnd
	}
}
