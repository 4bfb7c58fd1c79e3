package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DuplicateError, cfg.Parser.DuplicatePolicy)
	assert.Equal(t, TolerateAny, cfg.Parser.TrailingTolerance)
	assert.Equal(t, uint32(8), cfg.Image.DefaultAlignment)
	assert.Equal(t, "./partitions", cfg.Extract.OutputDir)
	require.NoError(t, cfg.validate())
}

func TestValidateRejectsUnknownPolicies(t *testing.T) {
	cfg := Default()
	cfg.Parser.DuplicatePolicy = "maybe"
	assert.Error(t, cfg.validate())

	cfg = Default()
	cfg.Parser.TrailingTolerance = "sometimes"
	assert.Error(t, cfg.validate())
}
