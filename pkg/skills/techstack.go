// Package skills holds the deterministic sidecars the specialist and risk
// sentinel nodes may consult: a tech-stack mapper, a financial table
// parser, and a risk-score calculator. None of them ever block the answer —
// callers are expected to swallow their errors, mirroring the MCP tool
// executor's "return error as content, never propagate" convention.
package skills

import (
	"regexp"
	"sort"
	"strings"
)

var techKeywords = map[string]*regexp.Regexp{
	"Kubernetes":  regexp.MustCompile(`(?i)\bkubernetes\b|\bk8s\b`),
	"PostgreSQL":  regexp.MustCompile(`(?i)\bpostgres(ql)?\b`),
	"REST API":    regexp.MustCompile(`(?i)\brest(ful)?\s*api\b`),
	"gRPC":        regexp.MustCompile(`(?i)\bgrpc\b`),
	"Java":        regexp.MustCompile(`(?i)\bjava\b`),
	"Python":      regexp.MustCompile(`(?i)\bpython\b`),
	"Go":          regexp.MustCompile(`(?i)\bgolang\b|\blenguaje go\b`),
	"Cloud/AWS":   regexp.MustCompile(`(?i)\baws\b|\bamazon web services\b`),
	"Cloud/Azure": regexp.MustCompile(`(?i)\bazure\b`),
	"On-premise":  regexp.MustCompile(`(?i)\bon[- ]premise\b|\bonsite\b`),
}

// TechStackMapper extracts a best-effort summary of technology keywords
// mentioned in text. Returns ("", false) when nothing is detected so callers
// can skip the augmentation without an error path.
func TechStackMapper(text string) (string, bool) {
	var found []string
	for name, re := range techKeywords {
		if re.MatchString(text) {
			found = append(found, name)
		}
	}
	if len(found) == 0 {
		return "", false
	}
	sort.Strings(found)
	return "Tecnologías detectadas: " + strings.Join(found, ", "), true
}
