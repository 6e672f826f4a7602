package units

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"dimscale/core/dimension"
	errs "dimscale/core/errors"
	"dimscale/core/numeric"
	"dimscale/core/quantity"
	"dimscale/core/scale"
)

// Prefix is an SI decimal prefix
type Prefix struct {
	Symbol   string
	Name     string
	Exponent int
}

// Prefixes lists the SI prefixes from quecto to quetta
var Prefixes = []Prefix{
	{"q", "quecto", -30}, {"r", "ronto", -27}, {"y", "yocto", -24}, {"z", "zepto", -21},
	{"a", "atto", -18}, {"f", "femto", -15}, {"p", "pico", -12}, {"n", "nano", -9},
	{"µ", "micro", -6}, {"u", "micro", -6}, {"m", "milli", -3}, {"c", "centi", -2},
	{"d", "deci", -1}, {"da", "deca", 1}, {"h", "hecto", 2}, {"k", "kilo", 3},
	{"M", "mega", 6}, {"G", "giga", 9}, {"T", "tera", 12}, {"P", "peta", 15},
	{"E", "exa", 18}, {"Z", "zetta", 21}, {"Y", "yotta", 24}, {"R", "ronna", 27},
	{"Q", "quetta", 30},
}

// byLength tries longer prefixes first so "da" wins over "d"
var byLength = func() []Prefix {
	ps := make([]Prefix, len(Prefixes))
	copy(ps, Prefixes)
	sort.SliceStable(ps, func(i, j int) bool { return len(ps[i].Symbol) > len(ps[j].Symbol) })
	return ps
}()

// Literal is a resolved unit literal: a unit with an optional prefix applied
type Literal struct {
	Text      string
	Unit      Unit
	Prefix    *Prefix
	Dimension dimension.Signature
	Scale     scale.Signature
}

// Signature returns the literal's dimension and scale
func (l Literal) Signature() quantity.Signature {
	return quantity.Signature{Dimension: l.Dimension, Scale: l.Scale}
}

// Factor returns the value multiplier applied on declaration
func (l Literal) Factor() decimal.Decimal {
	return l.Unit.Factor
}

// Affine returns the literal's affine offset, if any
func (l Literal) Affine() (quantity.AffineOffset, bool) {
	if l.Unit.Affine == nil {
		return quantity.AffineOffset{}, false
	}
	return *l.Unit.Affine, true
}

// String renders e.g. "mm = metre [L:1] @ 10^-3"
func (l Literal) String() string {
	name := l.Unit.Name
	if l.Prefix != nil {
		name = l.Prefix.Name + name
	}
	s := fmt.Sprintf("%s = %s %s @ %s", l.Text, name, l.Dimension, l.Scale)
	if !l.Unit.Factor.Equal(decimal.NewFromInt(1)) {
		s += " × " + l.Unit.Factor.String()
	}
	if off, ok := l.Affine(); ok {
		s += " offset " + off.String()
	}
	return s
}

// Lookup resolves a literal. An exact symbol match wins; otherwise the longest
// matching prefix is stripped from a prefixable unit.
func (c *Catalog) Lookup(text string) (Literal, error) {
	text = strings.TrimSpace(text)
	if u, ok := c.Unit(text); ok {
		return Literal{Text: text, Unit: u, Dimension: u.Dimension, Scale: u.Scale}, nil
	}
	for i := range byLength {
		p := byLength[i]
		rest, ok := strings.CutPrefix(text, p.Symbol)
		if !ok || rest == "" {
			continue
		}
		u, ok := c.Unit(rest)
		if !ok || !u.Prefixable {
			continue
		}
		ps, err := scale.Pow10(p.Exponent)
		if err != nil {
			return Literal{}, err
		}
		sc, err := u.Scale.Mul(ps)
		if err != nil {
			return Literal{}, errs.Wrapf(errs.TypeOverflow, err, "unit %s", text)
		}
		return Literal{Text: text, Unit: u, Prefix: &p, Dimension: u.Dimension, Scale: sc}, nil
	}
	return Literal{}, errs.NotFound("unit", text)
}

// Declare builds a quantity of value v in the literal's unit. The conversion
// factor of non-storage units is applied to the value; affine units yield an
// affine quantity.
func (l Literal) Declare(v numeric.Value, mode numeric.Mode) (quantity.Quantity, error) {
	if !l.Unit.Factor.Equal(decimal.NewFromInt(1)) {
		var err error
		v, err = v.MulDecimal(l.Unit.Factor, mode)
		if err != nil {
			return quantity.Quantity{}, err
		}
	}
	if off, ok := l.Affine(); ok {
		return quantity.NewAffine(v, l.Dimension, l.Scale, off)
	}
	return quantity.New(v, l.Dimension, l.Scale), nil
}

// Lookup resolves a literal in the default catalog
func Lookup(text string) (Literal, error) {
	return Default().Lookup(text)
}

// New declares a quantity of v in the unit named by text, using the default catalog
func New(v numeric.Value, text string, mode numeric.Mode) (quantity.Quantity, error) {
	l, err := Lookup(text)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return l.Declare(v, mode)
}

// Parse declares a quantity from value text in the given storage
func Parse(value, text string, storage numeric.Storage, mode numeric.Mode) (quantity.Quantity, error) {
	v, err := numeric.Parse(value, storage)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return New(v, text, mode)
}

// Express returns the value of q measured in the literal's unit. Affine targets
// place the result on their own zero point; the conversion factor of non-storage
// units is divided out.
func (l Literal) Express(q quantity.Quantity, mode numeric.Mode) (numeric.Value, error) {
	if q.Dimension() != l.Dimension {
		return numeric.Value{}, errs.DimensionMismatch("express in "+l.Text, q.Dimension(), l.Dimension)
	}
	var (
		out quantity.Quantity
		err error
	)
	if off, ok := l.Affine(); ok {
		out, err = quantity.ConvertAffine(q, l.Scale, off, mode)
	} else {
		out, err = quantity.Rescale(q, l.Scale, mode)
	}
	if err != nil {
		return numeric.Value{}, err
	}
	v := out.Value()
	if !l.Unit.Factor.Equal(decimal.NewFromInt(1)) {
		return v.MulRatio(decimal.NewFromInt(1), l.Unit.Factor, mode)
	}
	return v, nil
}

// SymbolFor finds a storage unit literal whose signature is exactly sig, trying
// bare symbols before prefixed ones.
func (c *Catalog) SymbolFor(sig quantity.Signature) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, u := range c.units {
		if u.Dimension == sig.Dimension && u.Scale == sig.Scale && u.Affine == nil && u.System == SystemMetric {
			return u.Symbols[0], true
		}
	}
	for _, u := range c.units {
		if u.Dimension != sig.Dimension || !u.Prefixable {
			continue
		}
		for _, p := range Prefixes {
			ps, err := scale.Pow10(p.Exponent)
			if err != nil {
				continue
			}
			sc, err := u.Scale.Mul(ps)
			if err == nil && sc == sig.Scale {
				return p.Symbol + u.Symbols[0], true
			}
		}
	}
	return "", false
}

// Format renders q with a catalog symbol when one matches its signature, and
// with the raw signature otherwise.
func (c *Catalog) Format(q quantity.Quantity) string {
	if !q.IsAffine() {
		if sym, ok := c.SymbolFor(q.Signature()); ok {
			return q.Value().String() + " " + sym
		}
	}
	return q.String()
}
