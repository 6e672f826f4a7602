// Package preferences holds scope-level scale preferences: one preferred scale
// per dimension axis, used to pick a storage scale for literals and to lift
// derived units.
package preferences

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"dimscale/core/dimension"
	errs "dimscale/core/errors"
	"dimscale/core/numeric"
	"dimscale/core/quantity"
	"dimscale/core/scale"
	"dimscale/core/units"
	"dimscale/internal/logging"
)

// Scope is a named set of per-axis preferred scales
type Scope struct {
	Name string
	Axes [dimension.NumAxes]scale.Signature
}

// Default returns the SI base scope: every axis at unity (kg, m, s, A, K, mol, cd, rad)
func Default() Scope {
	return Scope{Name: "si"}
}

// Prefer returns a copy of s with axis a set to sc
func (s Scope) Prefer(a dimension.Axis, sc scale.Signature) Scope {
	s.Axes[a] = sc
	return s
}

// PreferUnit sets the preferred scale of the axis a pure unit literal measures,
// e.g. "mm" sets the length axis to 10^-3. Units with a conversion factor or an
// offset are rejected because their scale alone does not describe them.
func (s Scope) PreferUnit(l units.Literal) (Scope, error) {
	axis, ok := pureAxis(l.Dimension)
	if !ok {
		return s, errs.Newf(errs.TypeDimensionMismatch, "scope %s: %s is not a base axis unit", s.Name, l.Text)
	}
	if _, affine := l.Affine(); affine || !l.Factor().Equal(one) {
		return s, errs.Newf(errs.TypeInput, "scope %s: %s is not a storage unit", s.Name, l.Text)
	}
	return s.Prefer(axis, l.Scale), nil
}

// Preferred returns the preferred scale of one axis
func (s Scope) Preferred(a dimension.Axis) scale.Signature {
	return s.Axes[a]
}

// Lift derives the preferred scale of a dimension as the sum over axes of the
// axis exponent times the axis preference.
func (s Scope) Lift(dim dimension.Signature) (scale.Signature, error) {
	out := scale.Unity
	for _, a := range dimension.Axes {
		e := dim.Exponent(a)
		if e == 0 {
			continue
		}
		p, err := s.Axes[a].Pow(e)
		if err != nil {
			return scale.Signature{}, err
		}
		out, err = out.Mul(p)
		if err != nil {
			return scale.Signature{}, err
		}
	}
	return out, nil
}

// Declare builds a quantity from a literal and stores it at the lifted scale of
// the literal's dimension. Affine literals are linearized first.
func (s Scope) Declare(v numeric.Value, l units.Literal, mode numeric.Mode) (quantity.Quantity, error) {
	q, err := l.Declare(v, mode)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return s.Store(q, mode)
}

// Store rescales q to the lifted scale of its dimension
func (s Scope) Store(q quantity.Quantity, mode numeric.Mode) (quantity.Quantity, error) {
	target, err := s.Lift(q.Dimension())
	if err != nil {
		return quantity.Quantity{}, err
	}
	if target == q.Scale() && !q.IsAffine() {
		return q, nil
	}
	logging.Debug("storing at preferred scale",
		zap.String("scope", s.Name),
		zap.Stringer("from", q.Scale()),
		zap.Stringer("to", target),
	)
	return quantity.Rescale(q, target, mode)
}

var one = decimal.NewFromInt(1)

func pureAxis(dim dimension.Signature) (dimension.Axis, bool) {
	for _, a := range dimension.Axes {
		if dim.IsPureAxis(a) {
			return a, true
		}
	}
	return 0, false
}
