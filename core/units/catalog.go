// Package units resolves unit literals such as "mm", "kg" or "degF" to the
// dimension and scale signatures a quantity is declared with.
//
// Units are identified purely by their symbols; a literal is a symbol with an
// optional SI prefix. Metric units store exactly at their scale. Imperial units
// carry a decimal conversion factor that is applied to the value when a quantity
// is declared, because their ratio to SI is not a product of basis powers.
package units

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"dimscale/core/dimension"
	errs "dimscale/core/errors"
	"dimscale/core/quantity"
	"dimscale/core/scale"
)

// System groups units by their origin
type System string

const (
	SystemMetric   System = "metric"
	SystemImperial System = "imperial"
)

// Unit is a catalog entry
type Unit struct {
	Name       string
	Symbols    []string
	Dimension  dimension.Signature
	Scale      scale.Signature
	Factor     decimal.Decimal // value multiplier on declaration; one for storage units
	Affine     *quantity.AffineOffset
	System     System
	Prefixable bool
}

// Validate checks the entry's invariants
func (u Unit) Validate() error {
	if u.Name == "" || len(u.Symbols) == 0 {
		return errs.Input("unit needs a name and at least one symbol")
	}
	if u.Factor.Sign() <= 0 {
		return errs.Newf(errs.TypeInput, "unit %s: conversion factor must be positive", u.Name)
	}
	if u.Affine != nil && !quantity.AffineAllowed(u.Dimension) {
		return errs.AffineCombinationInvalid("unit " + u.Name + " declares an offset on " + u.Dimension.String())
	}
	if u.Affine != nil && u.Prefixable {
		return errs.Newf(errs.TypeInput, "unit %s: affine units cannot take prefixes", u.Name)
	}
	return nil
}

// Catalog holds units by symbol
type Catalog struct {
	mu      sync.RWMutex
	units   []Unit
	symbols map[string]int
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{symbols: make(map[string]int)}
}

// Register adds a unit. Symbols must be unique across the catalog.
func (c *Catalog) Register(u Unit) error {
	if u.Factor.IsZero() {
		u.Factor = decimal.NewFromInt(1)
	}
	if err := u.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, s := range u.Symbols {
		if _, exists := c.symbols[s]; exists {
			return errs.Newf(errs.TypeInput, "unit symbol already registered: %s", s)
		}
	}
	c.units = append(c.units, u)
	for _, s := range u.Symbols {
		c.symbols[s] = len(c.units) - 1
	}
	return nil
}

// MustRegister adds a unit and panics on failure
func (c *Catalog) MustRegister(u Unit) {
	if err := c.Register(u); err != nil {
		panic(err)
	}
}

// Unit returns the entry registered under an exact symbol
func (c *Catalog) Unit(symbol string) (Unit, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.symbols[symbol]
	if !ok {
		return Unit{}, false
	}
	return c.units[i], true
}

// Units returns all entries in registration order
func (c *Catalog) Units() []Unit {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Unit, len(c.units))
	copy(out, c.units)
	return out
}

// Symbols returns every registered symbol, sorted
func (c *Catalog) Symbols() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.symbols))
	for s := range c.symbols {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = NewCatalog()
		for _, u := range builtin() {
			defaultCatalog.MustRegister(u)
		}
	})
	return defaultCatalog
}

func builtin() []Unit {
	var (
		mass  = dimension.MustOf(dimension.Mass, 1)
		lng   = dimension.MustOf(dimension.Length, 1)
		tm    = dimension.MustOf(dimension.Time, 1)
		cur   = dimension.MustOf(dimension.Current, 1)
		temp  = dimension.MustOf(dimension.Temperature, 1)
		amt   = dimension.MustOf(dimension.Amount, 1)
		lum   = dimension.MustOf(dimension.Luminosity, 1)
		angle = dimension.MustOf(dimension.Angle, 1)
	)

	rankine := scale.Must(scale.Of(0, -2, 1, 0, 0)) // 5/9
	celsius := quantity.AffineOffset{Offset: decimal.RequireFromString("273.15"), Reference: scale.Unity}
	fahrenheit := quantity.AffineOffset{Offset: decimal.RequireFromString("459.67"), Reference: rankine}

	metric := func(name string, dim dimension.Signature, sc scale.Signature, prefixable bool, symbols ...string) Unit {
		return Unit{Name: name, Symbols: symbols, Dimension: dim, Scale: sc, System: SystemMetric, Prefixable: prefixable}
	}
	imperial := func(name string, dim dimension.Signature, factor string, sc scale.Signature, symbols ...string) Unit {
		return Unit{
			Name:      name,
			Symbols:   symbols,
			Dimension: dim,
			Scale:     sc,
			Factor:    decimal.RequireFromString(factor),
			System:    SystemImperial,
		}
	}

	return []Unit{
		// Base units; the kilogram is the unity mass scale, so the gram is 10^-3.
		metric("gram", mass, scale.Must(scale.Pow10(-3)), true, "g"),
		metric("metre", lng, scale.Unity, true, "m"),
		metric("second", tm, scale.Unity, true, "s"),
		metric("ampere", cur, scale.Unity, true, "A"),
		metric("kelvin", temp, scale.Unity, true, "K"),
		metric("mole", amt, scale.Unity, true, "mol"),
		metric("candela", lum, scale.Unity, true, "cd"),
		metric("radian", angle, scale.Unity, true, "rad"),

		metric("minute", tm, scale.Must(scale.Of(2, 1, 1, 0, 0)), false, "min"),
		metric("hour", tm, scale.Must(scale.Of(4, 2, 2, 0, 0)), false, "h"),
		metric("day", tm, scale.Must(scale.Of(7, 3, 2, 0, 0)), false, "d"),

		metric("hertz", dimension.Must(0, 0, -1), scale.Unity, true, "Hz"),
		metric("newton", dimension.Must(1, 1, -2), scale.Unity, true, "N"),
		metric("pascal", dimension.Must(1, -1, -2), scale.Unity, true, "Pa"),
		metric("joule", dimension.Must(1, 2, -2), scale.Unity, true, "J"),
		metric("watt", dimension.Must(1, 2, -3), scale.Unity, true, "W"),
		metric("coulomb", dimension.Must(0, 0, 1, 1), scale.Unity, true, "C"),
		metric("volt", dimension.Must(1, 2, -3, -1), scale.Unity, true, "V"),

		metric("degree", angle, scale.Must(scale.Of(-2, -2, -1, 0, 1)), false, "deg", "°"),
		metric("turn", angle, scale.Must(scale.Of(1, 0, 0, 0, 1)), false, "turn", "rev"),
		metric("arcminute", angle, scale.Must(scale.Of(-4, -3, -2, 0, 1)), false, "arcmin"),
		metric("arcsecond", angle, scale.Must(scale.Of(-6, -4, -3, 0, 1)), false, "arcsec"),

		{Name: "degree Celsius", Symbols: []string{"degC", "°C"}, Dimension: temp, Scale: scale.Unity, Affine: &celsius, System: SystemMetric},
		{Name: "degree Rankine", Symbols: []string{"degR", "°R"}, Dimension: temp, Scale: rankine, System: SystemImperial},
		{Name: "degree Fahrenheit", Symbols: []string{"degF", "°F"}, Dimension: temp, Scale: rankine, Affine: &fahrenheit, System: SystemImperial},

		imperial("inch", lng, "2.54", scale.Must(scale.Pow10(-2)), "in"),
		imperial("foot", lng, "3.048", scale.Must(scale.Pow10(-1)), "ft"),
		imperial("yard", lng, "9.144", scale.Must(scale.Pow10(-1)), "yd"),
		imperial("mile", lng, "1.609344", scale.Must(scale.Pow10(3)), "mi"),
		imperial("pound", mass, "0.45359237", scale.Unity, "lb"),
		imperial("ounce", mass, "2.8349523125", scale.Must(scale.Pow10(-2)), "oz"),
	}
}
