package framework

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "maudtest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRunConfig(t *testing.T) {
	path := writeConfig(t, `
run: ["^arith/"]
exclude: ["*/slow*"]
debug: true
`)
	cfg, err := LoadRunConfig(path)
	require.NoError(t, err)
	assert.Equal(t, RunConfig{Run: []string{"^arith/"}, Exclude: []string{"*/slow*"}, Debug: true}, cfg)

	f, err := cfg.Filters()
	require.NoError(t, err)
	assert.True(t, f.AsFilter(id("arith", "add")))
	assert.False(t, f.AsFilter(id("arith", "slow_add")))
	assert.False(t, f.AsFilter(id("params", "single")))
}

func TestLoadRunConfigEmptyPathAndEmptyFile(t *testing.T) {
	cfg, err := LoadRunConfig("")
	require.NoError(t, err)
	assert.Equal(t, RunConfig{}, cfg)

	cfg, err = LoadRunConfig(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, RunConfig{}, cfg)
}

func TestLoadRunConfigErrors(t *testing.T) {
	_, err := LoadRunConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadRunConfig(writeConfig(t, "rnu: [x]\n"))
	assert.Error(t, err)

	cfg, err := LoadRunConfig(writeConfig(t, "skip: ['(']\n"))
	require.NoError(t, err)
	_, err = cfg.Filters()
	assert.Error(t, err)
}
