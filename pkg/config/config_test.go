package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_PassesValidation(t *testing.T) {
	cfg := Default()
	err := NewValidator(cfg).ValidateAll()
	assert.NoError(t, err)
}

func TestDefault_CacheTTLConvertsToDuration(t *testing.T) {
	cfg := Default()
	assert.Equal(t, cfg.CacheTTLSeconds, int(cfg.CacheTTL().Seconds()))
}

func TestValidator_RejectsOutOfRangeRetrievalK(t *testing.T) {
	cfg := Default()
	cfg.RetrievalK = 0
	err := NewValidator(cfg).ValidateAll()
	assert.Error(t, err)
}

func TestValidator_RejectsOutOfRangeTemperature(t *testing.T) {
	cfg := Default()
	cfg.RiskTemperature = 1.5
	err := NewValidator(cfg).ValidateAll()
	assert.Error(t, err)
}

func TestValidator_RejectsZeroCacheMaxSize(t *testing.T) {
	cfg := Default()
	cfg.CacheMaxSize = 0
	err := NewValidator(cfg).ValidateAll()
	assert.Error(t, err)
}

func TestValidator_AggregatesMultipleViolations(t *testing.T) {
	cfg := Default()
	cfg.RetrievalK = 0
	cfg.RiskTemperature = 1.5
	cfg.CacheMaxSize = 0

	err := NewValidator(cfg).ValidateAll()
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "retrieval_k")
	assert.Contains(t, msg, "risk_temperature")
	assert.Contains(t, msg, "cache_max_size")
}
