package hcl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dimscale/core/dimension"
	errs "dimscale/core/errors"
	"dimscale/core/scale"
)

const scopesFile = `
scope "precision" {
  length = "mm"
  mass   = "g"
  time   = "ms"
}

scope "astro" {
  length = "Gm"
  time   = "d"
  angle  = "arcsec"
}
`

// TestParse loads scopes and their axis preferences
func TestParse(t *testing.T) {
	scopes, err := NewLoader(nil).Parse([]byte(scopesFile), "scopes.hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{"astro", "precision"}, Names(scopes))

	p := scopes["precision"]
	assert.Equal(t, "precision", p.Name)
	assert.Equal(t, scale.Must(scale.Pow10(-3)), p.Preferred(dimension.Length))
	assert.Equal(t, scale.Must(scale.Pow10(-3)), p.Preferred(dimension.Mass))
	assert.Equal(t, scale.Unity, p.Preferred(dimension.Current))

	a := scopes["astro"]
	assert.Equal(t, scale.Must(scale.Pow10(9)), a.Preferred(dimension.Length))
	assert.Equal(t, scale.Must(scale.Of(7, 3, 2, 0, 0)), a.Preferred(dimension.Time))
	assert.Equal(t, scale.Must(scale.Of(-6, -4, -3, 0, 1)), a.Preferred(dimension.Angle))
}

// TestParseErrors reports file positions for invalid scope files
func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		contains string
	}{
		{"syntax", `scope "x" {`, "scopes.hcl:1"},
		{"unknown axis", "scope \"x\" {\n  speed = \"m\"\n}", "scopes.hcl:2"},
		{"unknown block", `preset "x" {}`, "scopes.hcl:1"},
		{"missing label", `scope {}`, "scopes.hcl:1"},
		{"number value", "scope \"x\" {\n  length = 3\n}", "must be a unit string, got number"},
		{"null value", "scope \"x\" {\n  length = null\n}", "length is null"},
		{"unknown unit", "scope \"x\" {\n  length = \"furlong\"\n}", "scopes.hcl:2: length"},
		{"wrong axis", "scope \"x\" {\n  length = \"kg\"\n}", "kg measures [M:1], not length"},
		{"factor unit", "scope \"x\" {\n  length = \"in\"\n}", "not a storage unit"},
		{"duplicate", "scope \"x\" {}\nscope \"x\" {}", "scopes.hcl:2: scope \"x\" declared twice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader(nil).Parse([]byte(tt.src), "scopes.hcl")
			require.Error(t, err)
			assert.True(t, errs.IsType(err, errs.TypeParsing), "got %v", err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

// TestLoadFile reads scopes from disk
func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scopes.hcl")
	require.NoError(t, os.WriteFile(path, []byte(scopesFile), 0644))

	scopes, err := NewLoader(nil).LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, scopes, 2)

	_, err = NewLoader(nil).LoadFile(filepath.Join(t.TempDir(), "absent.hcl"))
	assert.True(t, errs.IsType(err, errs.TypeConfig))
}

// TestSelect picks a scope by name
func TestSelect(t *testing.T) {
	scopes, err := NewLoader(nil).Parse([]byte(scopesFile), "scopes.hcl")
	require.NoError(t, err)

	s, err := Select(scopes, "")
	require.NoError(t, err)
	assert.Equal(t, "si", s.Name)

	s, err = Select(scopes, "astro")
	require.NoError(t, err)
	assert.Equal(t, "astro", s.Name)

	_, err = Select(scopes, "nautical")
	assert.True(t, errs.IsType(err, errs.TypeNotFound))
}
