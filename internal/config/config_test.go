package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dimscale/core/coherence"
	errs "dimscale/core/errors"
	"dimscale/core/numeric"
)

// TestDefault checks that the defaults validate and resolve
func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	p, err := cfg.Policy()
	require.NoError(t, err)
	assert.Equal(t, coherence.Strict, p)

	s, err := cfg.Storage()
	require.NoError(t, err)
	assert.Equal(t, numeric.Float, s)
	assert.Equal(t, numeric.Exact, cfg.Mode())

	_, err = cfg.Checker()
	require.NoError(t, err)
}

// TestSaveLoad round-trips a configuration through YAML and JSON files
func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()

	cfg := Default()
	cfg.Arithmetic.Policy = string(coherence.SmallestWins)
	cfg.Arithmetic.Storage = "int"
	cfg.Arithmetic.Lossy = true
	cfg.Scope = ScopeConfig{File: "scopes.hcl", Name: "precision"}

	for _, name := range []string{"dimscale.yaml", "dimscale.json", "nested/dir/dimscale.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, cfg.Save(path))

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
			assert.Equal(t, numeric.Lossy, loaded.Mode())
		})
	}
}

// TestLoadMissing returns the defaults when no file exists
func TestLoadMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

// TestLoadPartial keeps defaults for fields the file leaves out
func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("arithmetic:\n  policy: largest-wins\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "largest-wins", cfg.Arithmetic.Policy)
	assert.Equal(t, "float", cfg.Arithmetic.Storage)
	assert.Equal(t, "1.0", cfg.Version)
}

// TestLoadInvalid rejects malformed and out-of-range settings
func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown policy", "c.yaml", "arithmetic:\n  policy: sideways\n"},
		{"unknown storage", "c.yaml", "arithmetic:\n  storage: complex128\n"},
		{"scope without name", "c.yaml", "scope:\n  file: scopes.hcl\n"},
		{"bad log level", "c.json", `{"logging": {"level": "loud"}}`},
		{"empty version", "c.json", `{"version": ""}`},
		{"malformed json", "c.json", `{"arithmetic": `},
		{"malformed yaml", "c.yaml", "arithmetic: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := Load(path)
			require.Error(t, err)
			assert.True(t, errs.IsType(err, errs.TypeConfig), "got %v", err)
		})
	}
}

// TestGlobal checks the process-wide configuration accessors
func TestGlobal(t *testing.T) {
	orig := Get()
	t.Cleanup(func() { Set(orig) })

	cfg := Default()
	cfg.Arithmetic.Policy = string(coherence.LeftHandWins)
	Set(cfg)
	assert.Same(t, cfg, Get())
}
