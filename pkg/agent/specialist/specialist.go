// Package specialist implements the one-agent-per-domain generation
// contract: flatten context, build a two-message prompt, invoke the LLM.
package specialist

import (
	"context"
	"fmt"
	"strings"

	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/apperrors"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/llm"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/prompt"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/retrieval"
)

// contextSeparator joins flattened document chunks.
const contextSeparator = "\n\n---\n\n"

// maxContextChars caps the flattened context sent to the LLM; beyond this a
// trailing truncation marker is appended.
const maxContextChars = 12000

const truncationMarker = "\n\n[...contexto truncado...]"

// Agent is the domain-scoped generation contract every specialist
// implements.
type Agent interface {
	Domain() prompt.Domain
	Generate(ctx context.Context, question string, docs []retrieval.Document) (string, error)
}

// Sidecar is a deterministic helper invoked before prompt construction. Its
// failure must never block the answer — callers swallow ok=false silently.
type Sidecar func(contextText string, docs []retrieval.Document) (augmentation string, ok bool)

// Base implements the shared four-step generation flow; domain structs
// embed it and only supply the domain tag, the LLM, and optional sidecars.
type Base struct {
	domain   prompt.Domain
	model    llm.LLM
	sidecars []Sidecar
}

// NewBase constructs the shared flow for domain, using model for generation
// and running sidecars (in order) to augment the user message.
func NewBase(domain prompt.Domain, model llm.LLM, sidecars ...Sidecar) *Base {
	return &Base{domain: domain, model: model, sidecars: sidecars}
}

// Domain implements Agent.
func (b *Base) Domain() prompt.Domain { return b.domain }

// Generate implements Agent.
func (b *Base) Generate(ctx context.Context, question string, docs []retrieval.Document) (string, error) {
	contextText := flatten(docs)

	if strings.TrimSpace(contextText) == "" {
		return prompt.NoInfoMessage(b.domain), nil
	}

	userMessage := "Contexto del documento:\n" + contextText + "\n\nPregunta: " + question

	for _, sidecar := range b.sidecars {
		if augmentation, ok := sidecar(contextText, docs); ok {
			userMessage += "\n\n--- Información adicional ---\n" + augmentation
		}
	}

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: prompt.FullPrompt(b.domain, true)},
		{Role: llm.RoleUser, Content: userMessage},
	}

	resp, err := b.model.Generate(ctx, messages)
	if err != nil {
		return "", &apperrors.AgentProcessingError{Node: fmt.Sprintf("specialist_%s", b.domain), Err: err}
	}
	return resp.Content, nil
}

func flatten(docs []retrieval.Document) string {
	parts := make([]string, 0, len(docs))
	for _, d := range docs {
		parts = append(parts, d.Content)
	}
	text := strings.Join(parts, contextSeparator)
	if len(text) > maxContextChars {
		text = text[:maxContextChars] + truncationMarker
	}
	return text
}
