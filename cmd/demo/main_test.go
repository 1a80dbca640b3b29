package main

import (
	"os"
	"path/filepath"
	"testing"

	"supply-demand/internal/market"
	"supply-demand/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsDefaults(t *testing.T) {
	engine, m, clock, err := settings("", "")
	require.NoError(t, err)
	assert.Equal(t, market.ReferenceBase, engine.Reference)
	assert.Equal(t, report.ModeSimple, m)
	assert.Equal(t, market.DefaultStep, clock.Step)
}

func TestSettingsFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
controls:
  reference: policy
report:
  mode: pro
animation:
  step: 0.1
`), 0o644))

	engine, m, clock, err := settings(path, "")
	require.NoError(t, err)
	assert.Equal(t, market.ReferencePolicy, engine.Reference)
	assert.Equal(t, report.ModePro, m)
	assert.Equal(t, 0.1, clock.Step)

	_, m, _, err = settings(path, "simple")
	require.NoError(t, err)
	assert.Equal(t, report.ModeSimple, m)

	_, _, _, err = settings(path, "expert")
	assert.Error(t, err)
}
