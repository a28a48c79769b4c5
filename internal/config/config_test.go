package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTagCountWithinMask(t *testing.T) {
	cfg := Default()
	assert.LessOrEqual(t, len(cfg.Tags), MaxTags)
	assert.NotEmpty(t, cfg.Layouts)
	assert.Equal(t, cfg.Layouts[0].Symbol, "[]=")
}

func TestLoadOverridesMissingFileIsNotError(t *testing.T) {
	cfg := Default()
	orig := cfg.WindowGap
	err := LoadOverrides(&cfg, filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, orig, cfg.WindowGap)
}

func TestLoadOverridesPatchesOnlySetScalars(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gowm.toml")
	require.NoError(t, os.WriteFile(path, []byte("window_gap = 12\nshow_bar = false\n"), 0644))

	cfg := Default()
	originalMFact := cfg.MasterFactor
	require.NoError(t, LoadOverrides(&cfg, path))

	assert.Equal(t, 12, cfg.WindowGap)
	assert.False(t, cfg.ShowBar)
	assert.Equal(t, originalMFact, cfg.MasterFactor)
}
