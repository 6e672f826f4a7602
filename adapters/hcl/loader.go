// Package hcl loads scale preference scopes from HCL files.
//
// A scope file declares one block per scope; each attribute names a base axis
// and a unit literal whose scale becomes that axis' preference:
//
//	scope "precision" {
//	  length = "mm"
//	  mass   = "g"
//	  time   = "ms"
//	}
//
// Axes left out keep the SI base preference (unity).
package hcl

import (
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"go.uber.org/zap"

	"dimscale/core/dimension"
	errs "dimscale/core/errors"
	"dimscale/core/preferences"
	"dimscale/core/units"
	"dimscale/internal/logging"
)

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "scope", LabelNames: []string{"name"}},
	},
}

var scopeSchema = func() *hcl.BodySchema {
	s := &hcl.BodySchema{}
	for _, a := range dimension.Axes {
		s.Attributes = append(s.Attributes, hcl.AttributeSchema{Name: a.String()})
	}
	return s
}()

// Loader parses scope files
type Loader struct {
	catalog *units.Catalog
}

// NewLoader creates a loader resolving literals in the given catalog; nil means the default catalog
func NewLoader(catalog *units.Catalog) *Loader {
	if catalog == nil {
		catalog = units.Default()
	}
	return &Loader{catalog: catalog}
}

// LoadFile reads and parses a scope file
func (l *Loader) LoadFile(path string) (map[string]preferences.Scope, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.TypeConfig, "failed to read scope file", err).WithContext("file", path)
	}
	return l.Parse(src, path)
}

// Parse parses scope declarations from src
func (l *Loader) Parse(src []byte, filename string) (map[string]preferences.Scope, error) {
	// hclparse caches files by name, so each call gets its own parser
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diagError(filename, diags)
	}

	content, diags := file.Body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, diagError(filename, diags)
	}

	scopes := make(map[string]preferences.Scope, len(content.Blocks))
	for _, block := range content.Blocks {
		name := block.Labels[0]
		if _, dup := scopes[name]; dup {
			return nil, errs.Parsing(fmt.Sprintf("%s:%d: scope %q declared twice",
				filename, block.DefRange.Start.Line, name), nil)
		}
		scope, err := l.parseScope(name, block, filename)
		if err != nil {
			return nil, err
		}
		scopes[name] = scope
	}

	logging.Debug("loaded scope file",
		zap.String("file", filename),
		zap.Strings("scopes", Names(scopes)),
	)
	return scopes, nil
}

func (l *Loader) parseScope(name string, block *hcl.Block, filename string) (preferences.Scope, error) {
	content, diags := block.Body.Content(scopeSchema)
	if diags.HasErrors() {
		return preferences.Scope{}, diagError(filename, diags)
	}

	scope := preferences.Scope{Name: name}
	for _, axis := range dimension.Axes {
		attr, ok := content.Attributes[axis.String()]
		if !ok {
			continue
		}
		text, err := stringValue(attr, filename)
		if err != nil {
			return preferences.Scope{}, err
		}
		lit, err := l.catalog.Lookup(text)
		if err != nil {
			return preferences.Scope{}, errs.Wrapf(errs.TypeParsing, err, "%s:%d: %s", filename, attr.Range.Start.Line, axis)
		}
		if lit.Dimension != dimension.MustOf(axis, 1) {
			return preferences.Scope{}, errs.Newf(errs.TypeParsing, "%s:%d: %s measures %s, not %s",
				filename, attr.Range.Start.Line, text, lit.Dimension, axis)
		}
		scope, err = scope.PreferUnit(lit)
		if err != nil {
			return preferences.Scope{}, errs.Wrapf(errs.TypeParsing, err, "%s:%d", filename, attr.Range.Start.Line)
		}
	}
	return scope, nil
}

// Names returns the scope names, sorted
func Names(scopes map[string]preferences.Scope) []string {
	names := make([]string, 0, len(scopes))
	for n := range scopes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Select returns the named scope, or the default scope when name is empty
func Select(scopes map[string]preferences.Scope, name string) (preferences.Scope, error) {
	if name == "" {
		return preferences.Default(), nil
	}
	s, ok := scopes[name]
	if !ok {
		return preferences.Scope{}, errs.NotFound("scope", name)
	}
	return s, nil
}

func diagError(filename string, diags hcl.Diagnostics) error {
	for _, diag := range diags {
		if diag.Severity != hcl.DiagError {
			continue
		}
		line := 0
		if diag.Subject != nil {
			line = diag.Subject.Start.Line
		}
		return errs.Parsing(fmt.Sprintf("%s:%d: %s: %s", filename, line, diag.Summary, diag.Detail), diags)
	}
	return errs.Parsing(filename+": invalid scope file", diags)
}
