package config

import (
	"errors"
	"fmt"
)

// Validator validates a loaded Config against the ranges recognized
// configuration options must satisfy.
type Validator struct {
	cfg *Config
}

// NewValidator creates a validator for the given configuration.
func NewValidator(cfg *Config) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateAll walks every validated field and joins every violation found,
// rather than stopping at the first one, so a caller sees the full list of
// problems in one pass.
func (v *Validator) ValidateAll() error {
	c := v.cfg
	var errs []error

	if c.RetrievalK < 1 || c.RetrievalK > 50 {
		errs = append(errs, rangeErr("retrieval_k", c.RetrievalK, 1, 50))
	}
	if c.GraderDocTruncation < 200 || c.GraderDocTruncation > 10000 {
		errs = append(errs, rangeErr("grader_doc_truncation", c.GraderDocTruncation, 200, 10000))
	}
	if c.SafetyNetMinDocs < 1 {
		errs = append(errs, NewValidationError("config", "", "safety_net_min_docs", fmt.Errorf("must be at least 1, got %d", c.SafetyNetMinDocs)))
	}
	if c.SafetyNetFallbackDocs < 1 {
		errs = append(errs, NewValidationError("config", "", "safety_net_fallback_docs", fmt.Errorf("must be at least 1, got %d", c.SafetyNetFallbackDocs)))
	}
	if c.MaxAuditRevisions < 0 || c.MaxAuditRevisions > 10 {
		errs = append(errs, rangeErr("max_audit_revisions", c.MaxAuditRevisions, 0, 10))
	}
	if c.ContextMaxChars < 1 {
		errs = append(errs, NewValidationError("config", "", "context_max_chars", fmt.Errorf("must be positive, got %d", c.ContextMaxChars)))
	}
	if c.AnswerMaxChars < 1 {
		errs = append(errs, NewValidationError("config", "", "answer_max_chars", fmt.Errorf("must be positive, got %d", c.AnswerMaxChars)))
	}

	temps := []struct {
		name string
		val  float32
	}{
		{"router_temperature", c.RouterTemperature},
		{"grader_temperature", c.GraderTemperature},
		{"refine_temperature", c.RefineTemperature},
		{"quant_extract_temperature", c.QuantExtractTemperature},
		{"quant_strategy_temperature", c.QuantStrategyTemperature},
		{"quant_insight_temperature", c.QuantInsightTemperature},
		{"risk_temperature", c.RiskTemperature},
		{"specialist_temperature", c.SpecialistTemperature},
	}
	for _, t := range temps {
		if t.val < 0.0 || t.val > 1.0 {
			errs = append(errs, NewValidationError("config", "", t.name, fmt.Errorf("must be between 0.0 and 1.0, got %v", t.val)))
		}
	}

	if c.CacheTTLSeconds < 0 {
		errs = append(errs, NewValidationError("config", "", "cache_ttl_seconds", fmt.Errorf("must be non-negative, got %d", c.CacheTTLSeconds)))
	}
	if c.CacheMaxSize < 1 {
		errs = append(errs, NewValidationError("config", "", "cache_max_size", fmt.Errorf("must be at least 1, got %d", c.CacheMaxSize)))
	}

	return errors.Join(errs...)
}

func rangeErr(field string, got, lo, hi int) error {
	return NewValidationError("config", "", field, fmt.Errorf("must be between %d and %d, got %d", lo, hi, got))
}
