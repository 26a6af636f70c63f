package llm

import (
	"encoding/json"
	"strings"
)

// ExtractJSON accepts free-form model output, strips a leading ```json or
// ``` fence (and a trailing fence), and attempts to unmarshal the remainder
// into v. It never panics; a malformed payload simply returns false so the
// caller can fall back to its own defaults.
func ExtractJSON(raw string, v interface{}) bool {
	payload, ok := ExtractJSONRaw(raw)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return false
	}
	return true
}

// ExtractJSONRaw performs the fence-stripping step alone, returning the
// candidate JSON text without attempting to parse it.
func ExtractJSONRaw(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimPrefix(s, "json")
		s = strings.TrimPrefix(s, "JSON")
		s = strings.TrimSpace(s)
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	if s == "" {
		return "", false
	}
	return s, true
}
