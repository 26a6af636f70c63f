package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnv_SubstitutesBracedAndBareVars(t *testing.T) {
	t.Setenv("FOO", "bar")
	out := ExpandEnv([]byte("value: ${FOO}-$FOO"))
	assert.Equal(t, "value: bar-bar", string(out))
}

func TestExpandEnv_MissingVarBecomesEmpty(t *testing.T) {
	out := ExpandEnv([]byte("value: ${DEFINITELY_UNSET_VAR}"))
	assert.Equal(t, "value: ", string(out))
}
