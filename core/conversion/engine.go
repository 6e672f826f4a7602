// Package conversion computes exact conversion factors between scale signatures.
//
// A factor is never produced by a general power function. The exponent delta
// between two signatures is folded over the basis and each non-zero entry is
// read from a precomputed table, so a float conversion costs at most one
// multiplication per basis element and integer conversions use an exact
// rational ratio.
package conversion

import (
	"github.com/shopspring/decimal"

	"dimscale/core/dimension"
	errs "dimscale/core/errors"
	"dimscale/core/numeric"
	"dimscale/core/scale"
)

// Ratio is an exact conversion factor Num/Den; both are positive integers
type Ratio struct {
	Num decimal.Decimal
	Den decimal.Decimal
}

// IsOne reports whether the ratio is exactly 1
func (r Ratio) IsOne() bool {
	return r.Num.Equal(r.Den)
}

// String renders the ratio as num/den
func (r Ratio) String() string {
	if r.Den.Equal(decimal.NewFromInt(1)) {
		return r.Num.String()
	}
	return r.Num.String() + "/" + r.Den.String()
}

// Factor returns the float factor that converts a value stored at scale from into
// scale to. It multiplies one table entry per non-zero basis delta.
func Factor(from, to scale.Signature) float64 {
	delta := from.Delta(to)
	f := 1.0
	for b, e := range delta {
		if e != 0 {
			f *= floatEntry(scale.Basis(b), e)
		}
	}
	return f
}

// ExactRatio returns the conversion factor from -> to as an exact ratio.
// It fails with PRECISION_LOSS when the delta has a π component.
func ExactRatio(from, to scale.Signature) (Ratio, error) {
	delta := from.Delta(to)
	if delta[scale.Pi] != 0 {
		return Ratio{}, errs.Newf(errs.TypePrecisionLoss,
			"conversion: %s to %s involves π^%d, which has no exact ratio", from, to, delta[scale.Pi])
	}
	num := decimal.NewFromInt(1)
	den := decimal.NewFromInt(1)
	for b := scale.Two; b < scale.Pi; b++ {
		switch e := delta[b]; {
		case e > 0:
			num = num.Mul(exactEntry(b, e))
		case e < 0:
			den = den.Mul(exactEntry(b, -e))
		}
	}
	return Ratio{Num: num, Den: den}, nil
}

// Apply converts v from scale from to scale to. Float storage multiplies by Factor;
// integer and decimal storage multiply by the exact ratio and fail with
// PRECISION_LOSS when the result is not exact, unless mode is Lossy.
func Apply(v numeric.Value, from, to scale.Signature, mode numeric.Mode) (numeric.Value, error) {
	if from == to {
		return v, nil
	}
	if v.Storage() == numeric.Float {
		return v.MulFactor(Factor(from, to), mode)
	}

	// The π part of the delta has no exact form; the rational part is applied exactly
	// and the π part only with Lossy.
	piDelta := from.Delta(to)[scale.Pi]
	rationalFrom := from
	if piDelta != 0 {
		if mode != numeric.Lossy && !v.IsZero() {
			return numeric.Value{}, errs.Newf(errs.TypePrecisionLoss,
				"conversion: %s to %s scales %s storage by π^%d", from, to, v.Storage(), piDelta)
		}
		rationalFrom = from.WithoutPi()
		to = to.WithoutPi()
	}
	ratio, err := ExactRatio(rationalFrom, to)
	if err != nil {
		return numeric.Value{}, err
	}
	out, err := v.MulRatio(ratio.Num, ratio.Den, mode)
	if err != nil {
		return numeric.Value{}, errs.Wrapf(errs.TypeOf(err), err, "conversion %s -> %s", from, to)
	}
	if piDelta != 0 {
		return out.MulFactor(floatEntry(scale.Pi, piDelta), mode)
	}
	return out, nil
}

// Convert is Apply with the dimension check: both sides must carry the same dimension.
func Convert(v numeric.Value, fromDim dimension.Signature, from scale.Signature,
	toDim dimension.Signature, to scale.Signature, mode numeric.Mode) (numeric.Value, error) {
	if fromDim != toDim {
		return numeric.Value{}, errs.DimensionMismatch("convert", fromDim, toDim)
	}
	return Apply(v, from, to, mode)
}

// Compare orders two scales by the absolute multiple of the base unit they denote.
// It returns -1 if a is smaller, 0 if equal, 1 if larger.
func Compare(a, b scale.Signature) int {
	if a == b {
		return 0
	}
	if Factor(a, b) > 1 {
		return 1
	}
	return -1
}

// Larger returns whichever of a and b denotes the larger multiple
func Larger(a, b scale.Signature) scale.Signature {
	if Compare(a, b) >= 0 {
		return a
	}
	return b
}

// Smaller returns whichever of a and b denotes the smaller multiple
func Smaller(a, b scale.Signature) scale.Signature {
	if Compare(a, b) <= 0 {
		return a
	}
	return b
}
