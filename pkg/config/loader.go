package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Initialize loads rfpagent.yaml from configDir (if present), expands
// environment variables, merges it onto the built-in defaults, validates
// the result, and returns a ready-to-use Config.
//
// Steps performed:
//  1. Start from Default()
//  2. Load rfpagent.yaml from configDir, if present (absence is not an error)
//  3. Expand ${VAR}/$VAR references
//  4. Parse YAML and merge onto the defaults (YAML overrides defaults)
//  5. Validate
func Initialize(_ context.Context, configDir string) (*Config, error) {
	log := slog.With("config_dir", configDir)
	log.Info("initializing configuration")

	cfg := Default()

	path := configDir + "/rfpagent.yaml"
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, NewLoadError("rfpagent.yaml", err)
		}
		log.Info("no rfpagent.yaml found, using defaults")
	} else {
		data = ExpandEnv(data)

		var fromFile Config
		if err := yaml.Unmarshal(data, &fromFile); err != nil {
			return nil, NewLoadError("rfpagent.yaml", fmt.Errorf("%w: %v", ErrInvalidYAML, err))
		}
		if err := mergeOverride(cfg, &fromFile); err != nil {
			return nil, NewLoadError("rfpagent.yaml", fmt.Errorf("merge defaults: %w", err))
		}
	}

	if err := NewValidator(cfg).ValidateAll(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	log.Info("configuration initialized",
		"retrieval_k", cfg.RetrievalK,
		"max_audit_revisions", cfg.MaxAuditRevisions,
		"cache_max_size", cfg.CacheMaxSize)

	return cfg, nil
}
