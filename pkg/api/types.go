package api

// ChatRequest is the body for POST /api/chat and /api/chat/stream.
type ChatRequest struct {
	Question string `json:"question" binding:"required,min=1,max=2000"`
}

// QueryResponse is the wire shape returned by a completed pipeline run.
type QueryResponse struct {
	Answer        string        `json:"answer"`
	Sources       []string      `json:"sources"`
	AgentMetadata AgentMetadata `json:"agent_metadata"`
}

// AgentMetadata reports how the pipeline arrived at the answer.
type AgentMetadata struct {
	Domain             string          `json:"domain"`
	SpecialistUsed     string          `json:"specialist_used"`
	DocumentsRetrieved int             `json:"documents_retrieved"`
	DocumentsFiltered  int             `json:"documents_filtered"`
	RevisionCount      int             `json:"revision_count"`
	AuditResult        string          `json:"audit_result"`
	QuantAnalysis      *QuantAnalysis  `json:"quant_analysis"`
	RiskAssessment     *RiskAssessment `json:"risk_assessment"`
}

// QuantAnalysis mirrors quant.Result for the wire.
type QuantAnalysis struct {
	ChartBase64 *string `json:"chart_base64"`
	ChartType   *string `json:"chart_type"`
	Insights    string  `json:"insights"`
	DataQuality string  `json:"data_quality"`
}

// RiskAssessment mirrors risk.Assessment for the wire.
type RiskAssessment struct {
	RiskLevel        string   `json:"risk_level"`
	ComplianceStatus string   `json:"compliance_status"`
	Issues           []string `json:"issues"`
	GatePassed       bool     `json:"gate_passed"`
}

// IngestResponse is returned by POST /api/ingest on success.
type IngestResponse struct {
	Status          string `json:"status"`
	Filename        string `json:"filename"`
	ChunksProcessed int    `json:"chunks_processed"`
}

// StatusResponse is the generic {status, message} shape returned by the
// clear-index endpoint; error paths return {"error": ...} instead.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// DocumentsResponse is returned by GET /api/documents.
type DocumentsResponse struct {
	Status    string             `json:"status"`
	Documents []DocumentListItem `json:"documents"`
}

// DocumentListItem describes one indexed file.
type DocumentListItem struct {
	Name   string `json:"name"`
	Chunks int    `json:"chunks"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Env    string `json:"env"`
}
