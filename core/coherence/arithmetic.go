package coherence

import (
	"dimscale/core/conversion"
	"dimscale/core/dimension"
	errs "dimscale/core/errors"
	"dimscale/core/numeric"
	"dimscale/core/quantity"
	"dimscale/core/scale"
)

// ResolveAdd derives the signature of a + b (and a - b) under the checker's policy
func (c *Checker) ResolveAdd(a, b quantity.Signature) (quantity.Signature, error) {
	if a.Dimension != b.Dimension {
		return quantity.Signature{}, errs.DimensionMismatch("add", a.Dimension, b.Dimension)
	}
	sc, err := c.reconcile("add", a.Scale, b.Scale)
	if err != nil {
		return quantity.Signature{}, err
	}
	return quantity.Signature{Dimension: a.Dimension, Scale: sc}, nil
}

// ResolveMul derives the signature of a * b
func ResolveMul(a, b quantity.Signature) (quantity.Signature, error) {
	dim, err := a.Dimension.Mul(b.Dimension)
	if err != nil {
		return quantity.Signature{}, err
	}
	sc, err := a.Scale.Mul(b.Scale)
	if err != nil {
		return quantity.Signature{}, err
	}
	return quantity.Signature{Dimension: dim, Scale: sc}, nil
}

// ResolveDiv derives the signature of a / b
func ResolveDiv(a, b quantity.Signature) (quantity.Signature, error) {
	dim, err := a.Dimension.Div(b.Dimension)
	if err != nil {
		return quantity.Signature{}, err
	}
	sc, err := a.Scale.Div(b.Scale)
	if err != nil {
		return quantity.Signature{}, err
	}
	return quantity.Signature{Dimension: dim, Scale: sc}, nil
}

// ResolvePow derives the signature of a^n
func ResolvePow(a quantity.Signature, n int) (quantity.Signature, error) {
	dim, err := a.Dimension.Pow(n)
	if err != nil {
		return quantity.Signature{}, err
	}
	sc, err := a.Scale.Pow(n)
	if err != nil {
		return quantity.Signature{}, err
	}
	return quantity.Signature{Dimension: dim, Scale: sc}, nil
}

// ResolveRoot derives the signature of a^(1/n). The dimension must divide exactly.
// A scale without an exact root in the basis resolves to the canonical scale, into
// which the value is converted before the root is taken.
func ResolveRoot(a quantity.Signature, n int) (quantity.Signature, error) {
	dim, err := a.Dimension.Root(n)
	if err != nil {
		return quantity.Signature{}, err
	}
	sc, err := a.Scale.Root(n)
	if err != nil {
		if !errs.IsType(err, errs.TypePrecisionLoss) {
			return quantity.Signature{}, err
		}
		sc = scale.Unity
	}
	return quantity.Signature{Dimension: dim, Scale: sc}, nil
}

// Add returns a + b. Dimensions must match; scales are reconciled by the policy.
// Adding a linear quantity to an affine one yields an affine quantity of the
// same family; adding two affine quantities is invalid.
func (c *Checker) Add(a, b quantity.Quantity) (quantity.Quantity, error) {
	if a.Dimension() != b.Dimension() {
		return quantity.Quantity{}, errs.DimensionMismatch("add", a.Dimension(), b.Dimension())
	}
	switch {
	case a.IsAffine() && b.IsAffine():
		return quantity.Quantity{}, errs.AffineCombinationInvalid("add")
	case a.IsAffine() || b.IsAffine():
		return c.shiftAffine("add", a, b, false)
	}
	target, err := c.reconcile("add", a.Scale(), b.Scale())
	if err != nil {
		return quantity.Quantity{}, err
	}
	av, bv, err := c.alignValues(a, b, target)
	if err != nil {
		return quantity.Quantity{}, err
	}
	sum, err := av.Add(bv)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return quantity.New(sum, a.Dimension(), target), nil
}

// Sub returns a - b. Two affine quantities of the same family give a linear
// difference; affine minus linear stays affine; linear minus affine is invalid.
func (c *Checker) Sub(a, b quantity.Quantity) (quantity.Quantity, error) {
	if a.Dimension() != b.Dimension() {
		return quantity.Quantity{}, errs.DimensionMismatch("subtract", a.Dimension(), b.Dimension())
	}
	switch {
	case a.IsAffine() && b.IsAffine():
		aOff, _ := a.Affine()
		bOff, _ := b.Affine()
		if !aOff.Equal(bOff) {
			return quantity.Quantity{}, errs.AffineCombinationInvalid("subtract across affine families")
		}
	case a.IsAffine():
		return c.shiftAffine("subtract", a, b, true)
	case b.IsAffine():
		return quantity.Quantity{}, errs.AffineCombinationInvalid("subtract affine from linear")
	}
	target, err := c.reconcile("subtract", a.Scale(), b.Scale())
	if err != nil {
		return quantity.Quantity{}, err
	}
	av, bv, err := c.alignValues(a, b, target)
	if err != nil {
		return quantity.Quantity{}, err
	}
	diff, err := av.Sub(bv)
	if err != nil {
		return quantity.Quantity{}, err
	}
	// Same-family offsets cancel, so the difference is linear.
	return quantity.New(diff, a.Dimension(), target), nil
}

// shiftAffine adds (or subtracts) a linear quantity to an affine one. The affine
// operand keeps its offset, which stays in its reference scale.
func (c *Checker) shiftAffine(op string, a, b quantity.Quantity, subtract bool) (quantity.Quantity, error) {
	target, err := c.reconcile(op, a.Scale(), b.Scale())
	if err != nil {
		return quantity.Quantity{}, err
	}
	point, delta := a, b
	if b.IsAffine() {
		point, delta = b, a
	}
	p, err := quantity.RescaleKeepingOffset(point, target, c.mode)
	if err != nil {
		return quantity.Quantity{}, err
	}
	d, err := conversion.Apply(delta.Value(), delta.Scale(), target, c.mode)
	if err != nil {
		return quantity.Quantity{}, err
	}
	var v numeric.Value
	if subtract {
		v, err = p.Value().Sub(d)
	} else {
		v, err = p.Value().Add(d)
	}
	if err != nil {
		return quantity.Quantity{}, err
	}
	return p.WithValue(v), nil
}

func (c *Checker) alignValues(a, b quantity.Quantity, target scale.Signature) (numeric.Value, numeric.Value, error) {
	if a.Storage() != b.Storage() {
		return numeric.Value{}, numeric.Value{}, errs.Newf(errs.TypeStorageMismatch,
			"%s operand with %s operand", a.Storage(), b.Storage())
	}
	av, err := conversion.Apply(a.Value(), a.Scale(), target, c.mode)
	if err != nil {
		return numeric.Value{}, numeric.Value{}, err
	}
	bv, err := conversion.Apply(b.Value(), b.Scale(), target, c.mode)
	if err != nil {
		return numeric.Value{}, numeric.Value{}, err
	}
	return av, bv, nil
}

// Mul returns a * b. Signatures combine axis-wise; affine operands are rejected
// because affine transforms do not distribute over multiplication.
func (c *Checker) Mul(a, b quantity.Quantity) (quantity.Quantity, error) {
	if a.IsAffine() || b.IsAffine() {
		return quantity.Quantity{}, errs.AffineCombinationInvalid("multiply")
	}
	sig, err := ResolveMul(a.Signature(), b.Signature())
	if err != nil {
		return quantity.Quantity{}, err
	}
	v, err := a.Value().Mul(b.Value())
	if err != nil {
		return quantity.Quantity{}, err
	}
	return quantity.New(v, sig.Dimension, sig.Scale), nil
}

// Div returns a / b
func (c *Checker) Div(a, b quantity.Quantity) (quantity.Quantity, error) {
	if a.IsAffine() || b.IsAffine() {
		return quantity.Quantity{}, errs.AffineCombinationInvalid("divide")
	}
	sig, err := ResolveDiv(a.Signature(), b.Signature())
	if err != nil {
		return quantity.Quantity{}, err
	}
	v, err := a.Value().Div(b.Value(), c.mode)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return quantity.New(v, sig.Dimension, sig.Scale), nil
}

// ScaleBy multiplies a by a bare dimensionless number
func (c *Checker) ScaleBy(a quantity.Quantity, k numeric.Value) (quantity.Quantity, error) {
	if a.IsAffine() {
		return quantity.Quantity{}, errs.AffineCombinationInvalid("multiply by scalar")
	}
	v, err := a.Value().Mul(k)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return a.WithValue(v), nil
}

// Pow returns a^n
func (c *Checker) Pow(a quantity.Quantity, n int) (quantity.Quantity, error) {
	if a.IsAffine() {
		return quantity.Quantity{}, errs.AffineCombinationInvalid("power")
	}
	sig, err := ResolvePow(a.Signature(), n)
	if err != nil {
		return quantity.Quantity{}, err
	}
	v, err := a.Value().Pow(n)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return quantity.New(v, sig.Dimension, sig.Scale), nil
}

// Root returns a^(1/n). It fails when the dimension has no integer n-th root.
func (c *Checker) Root(a quantity.Quantity, n int) (quantity.Quantity, error) {
	if a.IsAffine() {
		return quantity.Quantity{}, errs.AffineCombinationInvalid("root")
	}
	sig, err := ResolveRoot(a.Signature(), n)
	if err != nil {
		return quantity.Quantity{}, err
	}
	// The radicand is expressed at sig.Scale^n so that the root lands on sig.Scale.
	base, err := sig.Scale.Pow(n)
	if err != nil {
		return quantity.Quantity{}, err
	}
	v, err := conversion.Apply(a.Value(), a.Scale(), base, c.mode)
	if err != nil {
		return quantity.Quantity{}, err
	}
	r, err := v.Root(n, c.mode)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return quantity.New(r, sig.Dimension, sig.Scale), nil
}

// Require checks that q matches a dimension pattern before it is used
func Require(p dimension.Pattern, what string, q quantity.Quantity) error {
	return p.Require(what, q.Dimension())
}
