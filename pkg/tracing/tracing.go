// Package tracing generates short per-request trace identifiers and a
// structured logger pre-bound to one, mirroring the node enter/exit/routing
// log shape used throughout the pipeline.
package tracing

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
)

// NewTraceID returns an 8-character lowercase hex token.
func NewTraceID() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand.Read does not fail on supported platforms; a zeroed
		// buffer still yields a valid, merely predictable, trace id.
		return hex.EncodeToString(buf)
	}
	return hex.EncodeToString(buf)
}

// Logger wraps slog with a trace_id field pre-attached and the pipeline's
// node enter/exit/routing-decision conventions.
type Logger struct {
	base *slog.Logger
}

// New returns a Logger scoped to traceID.
func New(traceID string) *Logger {
	return &Logger{base: slog.Default().With("trace_id", traceID)}
}

// PipelineStart logs the start of a request.
func (l *Logger) PipelineStart(question string) {
	l.base.Info("pipeline start", "question", question)
}

// NodeEnter logs entry into a graph node.
func (l *Logger) NodeEnter(node string) {
	l.base.Debug("node enter", "node", node)
}

// NodeExit logs a node's completion summary.
func (l *Logger) NodeExit(node, summary string) {
	l.base.Debug("node exit", "node", node, "summary", summary)
}

// RoutingDecision logs an edge traversal decision.
func (l *Logger) RoutingDecision(from, to, reason string) {
	l.base.Debug("routing decision", "from", from, "to", to, "reason", reason)
}

// Error logs a node-local error without propagating it.
func (l *Logger) Error(node string, err error) {
	l.base.Error("node error", "node", node, "error", err)
}
