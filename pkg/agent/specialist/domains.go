package specialist

import (
	"fmt"
	"sort"

	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/llm"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/prompt"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/retrieval"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/skills"
)

// maxFinancialPages caps the distinct (source, page) pairs the financial
// table parser is invoked against per request.
const maxFinancialPages = 5

// NewLegal returns the legal specialist.
func NewLegal(model llm.LLM) Agent { return NewBase(prompt.DomainLegal, model) }

// NewGeneral returns the general-purpose fallback specialist.
func NewGeneral(model llm.LLM) Agent { return NewBase(prompt.DomainGeneral, model) }

// NewTimeline returns the timeline specialist.
func NewTimeline(model llm.LLM) Agent { return NewBase(prompt.DomainTimeline, model) }

// NewRequirements returns the requirements specialist.
func NewRequirements(model llm.LLM) Agent { return NewBase(prompt.DomainRequirements, model) }

// NewTechnical returns the technical specialist, which augments its prompt
// with a tech-stack summary when one can be detected. The sidecar failure
// path (no keywords found) never blocks generation.
func NewTechnical(model llm.LLM) Agent {
	sidecar := func(contextText string, _ []retrieval.Document) (string, bool) {
		return skills.TechStackMapper(contextText)
	}
	return NewBase(prompt.DomainTechnical, model, sidecar)
}

// NewFinancial returns the financial specialist, which augments its prompt
// with Markdown tables extracted from up to maxFinancialPages distinct
// (source, page) document pairs. Extraction failures are swallowed.
func NewFinancial(model llm.LLM) Agent {
	sidecar := func(contextText string, docs []retrieval.Document) (string, bool) {
		pages := distinctSourcePages(docs)
		if len(pages) == 0 {
			return skills.FinancialTableParser(contextText)
		}
		// Restrict the parser to content from the capped page set by
		// re-flattening only those documents.
		capped := make(map[string]bool, len(pages))
		for _, p := range pages {
			capped[p] = true
		}
		var limited []string
		for _, d := range docs {
			key := fmt.Sprintf("%s#%d", d.Source(), d.Page())
			if capped[key] {
				limited = append(limited, d.Content)
			}
		}
		return skills.FinancialTableParser(joinLines(limited))
	}
	return NewBase(prompt.DomainFinancial, model, sidecar)
}

func joinLines(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "\n"
		}
		out += p
	}
	return out
}

// distinctSourcePages returns up to maxFinancialPages distinct (source,
// page) pairs present in docs — the first ones seen, sorted as strings —
// used by callers that want to cap how many pages the financial sidecar
// inspects.
func distinctSourcePages(docs []retrieval.Document) []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range docs {
		key := fmt.Sprintf("%s#%d", d.Source(), d.Page())
		if !seen[key] {
			seen[key] = true
			out = append(out, key)
		}
		if len(out) >= maxFinancialPages {
			break
		}
	}
	sort.Strings(out)
	return out
}
