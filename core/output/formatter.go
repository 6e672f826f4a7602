// Package output renders engine results for humans and machines.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	errs "dimscale/core/errors"
	"dimscale/core/numeric"
	"dimscale/core/quantity"
	"dimscale/core/units"
)

// Format represents output format type
type Format string

const (
	// FormatText is one human-readable line per result
	FormatText Format = "text"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// ParseFormat maps a format name to a Format
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", errs.Newf(errs.TypeInput, "unknown output format %q", name)
	}
}

// Result is one rendered value with the signatures that type it
type Result struct {
	// Value is the stored number, formatted without losing digits
	Value string `json:"value"`

	// Unit is the catalog symbol the value is measured in, when one matches
	Unit string `json:"unit,omitempty"`

	// Dimension is the dimension signature, e.g. [L:1]
	Dimension string `json:"dimension"`

	// Scale is the scale signature, e.g. 10^-3
	Scale string `json:"scale"`

	// Storage is the numeric storage of Value
	Storage string `json:"storage"`

	// Offset is the affine zero point, for affine quantities
	Offset string `json:"offset,omitempty"`
}

// FromQuantity describes q, naming its unit when the catalog has a symbol for it
func FromQuantity(q quantity.Quantity, c *units.Catalog) Result {
	r := Result{
		Value:     q.Value().String(),
		Dimension: q.Dimension().String(),
		Scale:     q.Scale().String(),
		Storage:   q.Storage().String(),
	}
	if off, ok := q.Affine(); ok {
		r.Offset = off.String()
	} else if sym, ok := c.SymbolFor(q.Signature()); ok {
		r.Unit = sym
	}
	return r
}

// InUnit describes v measured in the unit of a literal
func InUnit(v numeric.Value, l units.Literal) Result {
	r := Result{
		Value:     v.String(),
		Unit:      l.Text,
		Dimension: l.Dimension.String(),
		Scale:     l.Scale.String(),
		Storage:   v.Storage().String(),
	}
	if off, ok := l.Affine(); ok {
		r.Offset = off.String()
	}
	return r
}

// Number describes a bare dimensionless number
func Number(v numeric.Value) Result {
	return Result{
		Value:     v.String(),
		Dimension: "[1]",
		Scale:     "1",
		Storage:   v.Storage().String(),
	}
}

// String renders "value unit", or value with raw signatures when no unit matched
func (r Result) String() string {
	switch {
	case r.Unit != "":
		return r.Value + " " + r.Unit
	case r.Dimension == "[1]" && r.Scale == "1" && r.Offset == "":
		return r.Value
	case r.Offset != "":
		return fmt.Sprintf("%s %s %s %s", r.Value, r.Dimension, r.Scale, r.Offset)
	default:
		return fmt.Sprintf("%s %s %s", r.Value, r.Dimension, r.Scale)
	}
}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes the results
	Render(w io.Writer, results ...Result) error
}

// For returns the formatter of a format
func For(f Format) (Formatter, error) {
	switch f {
	case FormatText:
		return textFormatter{}, nil
	case FormatJSON:
		return jsonFormatter{}, nil
	default:
		return nil, errs.Newf(errs.TypeInput, "unknown output format %q", f)
	}
}

type textFormatter struct{}

func (textFormatter) Format() Format { return FormatText }

func (textFormatter) Render(w io.Writer, results ...Result) error {
	for _, r := range results {
		if _, err := fmt.Fprintln(w, r); err != nil {
			return err
		}
	}
	return nil
}

type jsonFormatter struct{}

func (jsonFormatter) Format() Format { return FormatJSON }

// Render writes a single result as an object and several as an array
func (jsonFormatter) Render(w io.Writer, results ...Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(results) == 1 {
		return enc.Encode(results[0])
	}
	if results == nil {
		results = []Result{}
	}
	return enc.Encode(results)
}
