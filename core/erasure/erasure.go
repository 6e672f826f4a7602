// Package erasure collapses quantities to bare numbers at the boundary to plain numerics.
//
// Only dimensionless and pure-angle quantities erase completely: they are first
// rescaled to their canonical reference (unity, or the radian) so the residual
// scale is folded into the number. A compound signature with a non-zero angle
// axis erases only its angle: the π component of the scale is folded into the
// value and the angle axis is dropped, leaving a non-angular compound quantity.
package erasure

import (
	"dimscale/core/conversion"
	"dimscale/core/dimension"
	errs "dimscale/core/errors"
	"dimscale/core/numeric"
	"dimscale/core/quantity"
	"dimscale/core/scale"
)

// Erasable reports whether q can be erased to a bare number
func Erasable(dim dimension.Signature) bool {
	return dim.IsDimensionless() || dim.IsPureAngle()
}

// Reference returns the canonical scale a signature is rescaled to before erasure.
// Both unity and the radian are the unit scale.
func Reference(dim dimension.Signature) (scale.Signature, error) {
	if !Erasable(dim) {
		return scale.Signature{}, errs.Newf(errs.TypeDimensionMismatch, "erase: %s is neither dimensionless nor an angle", dim)
	}
	return scale.Unity, nil
}

// Erase returns the bare number of a dimensionless or pure-angle quantity,
// rescaled to its canonical reference.
func Erase(q quantity.Quantity, mode numeric.Mode) (numeric.Value, error) {
	ref, err := Reference(q.Dimension())
	if err != nil {
		return numeric.Value{}, err
	}
	return conversion.Apply(q.Value(), q.Scale(), ref, mode)
}

// EraseFloat erases q and returns the result as float64. Integer and decimal
// values are converted to float before the factor is applied, so nothing is
// truncated on the way.
func EraseFloat(q quantity.Quantity) (float64, error) {
	ref, err := Reference(q.Dimension())
	if err != nil {
		return 0, err
	}
	return q.Value().Float64() * conversion.Factor(q.Scale(), ref), nil
}

// EraseAngle removes the angle axis from a compound signature. The π component of
// the scale is converted to its radian equivalent and folded into the value; every
// other axis and the rest of the scale are kept. Pure angles erase to a
// dimensionless quantity at unity.
func EraseAngle(q quantity.Quantity, mode numeric.Mode) (quantity.Quantity, error) {
	dim := q.Dimension()
	if !dim.HasAngle() {
		return q, nil
	}
	if dim.IsPureAngle() {
		v, err := Erase(q, mode)
		if err != nil {
			return quantity.Quantity{}, err
		}
		return quantity.New(v, dimension.Dimensionless, scale.Unity), nil
	}
	residual, err := dim.With(dimension.Angle, 0)
	if err != nil {
		return quantity.Quantity{}, err
	}
	rest := q.Scale().WithoutPi()
	v, err := conversion.Apply(q.Value(), q.Scale(), rest, mode)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return quantity.New(v, residual, rest), nil
}
