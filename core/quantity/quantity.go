// Package quantity defines the immutable Quantity value object: a number tagged with a
// dimension signature, a scale signature and, for affine units, a zero-point offset.
package quantity

import (
	"fmt"

	"dimscale/core/conversion"
	"dimscale/core/dimension"
	errs "dimscale/core/errors"
	"dimscale/core/numeric"
	"dimscale/core/scale"
)

// Quantity is a value with its dimension and scale. It is never mutated after construction.
type Quantity struct {
	value     numeric.Value
	dim       dimension.Signature
	scale     scale.Signature
	affine    AffineOffset
	hasAffine bool
}

// New creates a linear quantity
func New(v numeric.Value, dim dimension.Signature, sc scale.Signature) Quantity {
	return Quantity{value: v, dim: dim, scale: sc}
}

// NewAffine creates a quantity on an affine scale. Only the primitive affine axis
// (pure temperature) may carry an offset.
func NewAffine(v numeric.Value, dim dimension.Signature, sc scale.Signature, off AffineOffset) (Quantity, error) {
	if !AffineAllowed(dim) {
		return Quantity{}, errs.Newf(errs.TypeAffineCombinationInvalid,
			"quantity: dimension %s cannot carry an affine offset", dim)
	}
	return Quantity{value: v, dim: dim, scale: sc, affine: off, hasAffine: true}, nil
}

// Float is shorthand for a float64 linear quantity
func Float(f float64, dim dimension.Signature, sc scale.Signature) Quantity {
	return New(numeric.FromFloat(f), dim, sc)
}

// Int is shorthand for an int64 linear quantity
func Int(i int64, dim dimension.Signature, sc scale.Signature) Quantity {
	return New(numeric.FromInt(i), dim, sc)
}

// Value returns the stored number, expressed in the quantity's scale
func (q Quantity) Value() numeric.Value { return q.value }

// Dimension returns the dimension signature
func (q Quantity) Dimension() dimension.Signature { return q.dim }

// Scale returns the scale signature
func (q Quantity) Scale() scale.Signature { return q.scale }

// Storage returns the numeric storage of the value
func (q Quantity) Storage() numeric.Storage { return q.value.Storage() }

// Affine returns the affine offset and whether the quantity has one
func (q Quantity) Affine() (AffineOffset, bool) { return q.affine, q.hasAffine }

// IsAffine reports whether the quantity carries an affine offset
func (q Quantity) IsAffine() bool { return q.hasAffine }

// WithValue returns a quantity with the same signatures and a different value
func (q Quantity) WithValue(v numeric.Value) Quantity {
	q.value = v
	return q
}

// SameSignature reports whether dimension, scale and affine offset all match exactly
func (q Quantity) SameSignature(o Quantity) bool {
	return q.dim == o.dim && q.scale == o.scale && q.hasAffine == o.hasAffine &&
		(!q.hasAffine || q.affine.Equal(o.affine))
}

// Equal reports exact equality of value and signatures
func (q Quantity) Equal(o Quantity) bool {
	return q.SameSignature(o) && q.value.Equal(o.value)
}

// Cmp compares two quantities with identical signatures. Quantities at different
// scales must be rescaled first.
func (q Quantity) Cmp(o Quantity) (int, error) {
	if q.dim != o.dim {
		return 0, errs.DimensionMismatch("compare", q.dim, o.dim)
	}
	if q.scale != o.scale {
		return 0, errs.ScaleIncoherence("compare", q.scale, o.scale)
	}
	if q.hasAffine != o.hasAffine || (q.hasAffine && !q.affine.Equal(o.affine)) {
		return 0, errs.AffineCombinationInvalid("compare")
	}
	return q.value.Cmp(o.value)
}

// Neg negates a linear quantity
func (q Quantity) Neg() (Quantity, error) {
	if q.hasAffine {
		return Quantity{}, errs.AffineCombinationInvalid("negate")
	}
	v, err := q.value.Neg()
	if err != nil {
		return Quantity{}, err
	}
	return q.WithValue(v), nil
}

// String renders value, dimension and scale, e.g. "1000 [L:1] 10^-3"
func (q Quantity) String() string {
	s := fmt.Sprintf("%s %s %s", q.value, q.dim, q.scale)
	if q.hasAffine {
		s += " " + q.affine.String()
	}
	return s
}

// Rescale converts q to the target scale. Affine quantities are linearized first,
// so the result is always linear.
func Rescale(q Quantity, target scale.Signature, mode numeric.Mode) (Quantity, error) {
	if q.hasAffine {
		lin, err := Linearize(q, mode)
		if err != nil {
			return Quantity{}, err
		}
		q = lin
	}
	v, err := conversion.Apply(q.value, q.scale, target, mode)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{value: v, dim: q.dim, scale: target}, nil
}

// RescaleKeepingOffset converts q to the target scale without leaving its affine
// family: the offset stays expressed in its reference scale.
func RescaleKeepingOffset(q Quantity, target scale.Signature, mode numeric.Mode) (Quantity, error) {
	v, err := conversion.Apply(q.value, q.scale, target, mode)
	if err != nil {
		return Quantity{}, err
	}
	q.value = v
	q.scale = target
	return q, nil
}

// Convert rescales q into the dimension and scale of a target signature, failing
// with DIMENSION_MISMATCH when the dimensions differ.
func Convert(q Quantity, dim dimension.Signature, target scale.Signature, mode numeric.Mode) (Quantity, error) {
	if q.dim != dim {
		return Quantity{}, errs.DimensionMismatch("convert", q.dim, dim)
	}
	return Rescale(q, target, mode)
}

// Signature is the pair of signatures that types a quantity, without its value
type Signature struct {
	Dimension dimension.Signature
	Scale     scale.Signature
}

// String renders the pair as "[L:1] 10^-3"
func (s Signature) String() string {
	return s.Dimension.String() + " " + s.Scale.String()
}

// Signature returns the dimension and scale of q
func (q Quantity) Signature() Signature {
	return Signature{Dimension: q.dim, Scale: q.scale}
}
