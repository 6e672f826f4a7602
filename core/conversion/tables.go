package conversion

import (
	"math"

	"github.com/shopspring/decimal"

	"dimscale/core/scale"
	"dimscale/internal/logging"
)

// span bounds the exponent of any folded delta between two bounded signatures.
// The 2 and 5 slots absorb their share of the 10 slot when deltas are folded,
// so a single entry can reach twice the signature range.
const span = 2 * (scale.MaxExponent - scale.MinExponent)

var basisValues = [scale.NumBasis]int64{2, 3, 5, 10, 0}

// highPrecision is the number of decimal places kept for inexact table entries
// before their single rounding to float64. The smallest entry, π^-120, is near
// 1e-60, which still leaves well over a hundred significant digits.
const highPrecision = 200

var (
	one      = decimal.NewFromInt(1)
	piDigits = decimal.RequireFromString("3.14159265358979323846264338327950288419716939937510" +
		"58209749445923078164062862089986280348253421170679" +
		"82148086513282306647093844609550582231725359408128")
)

// Process-wide read-only tables, filled once by init and never written again.
var (
	// floatTable[b][e+span] is basis b raised to e as a correctly rounded float64
	floatTable [scale.NumBasis][2*span + 1]float64

	// exactTable[b][e] is basis b raised to e >= 0 as an exact integer decimal.
	// There is no entry for π.
	exactTable [scale.NumBasis - 1][span + 1]decimal.Decimal
)

func init() {
	for b := scale.Two; b < scale.Pi; b++ {
		base := decimal.NewFromInt(basisValues[b])
		exactTable[b][0] = decimal.NewFromInt(1)
		for e := 1; e <= span; e++ {
			exactTable[b][e] = exactTable[b][e-1].Mul(base)
		}
		for e := 0; e <= span; e++ {
			positive := exactTable[b][e]
			floatTable[b][span+e] = positive.InexactFloat64()
			floatTable[b][span-e] = reciprocal(b, e, positive)
		}
	}

	// π has no exact form. Its powers are carried in decimal far beyond float64
	// precision and rounded to float64 once per entry.
	floatTable[scale.Pi][span] = 1
	up := decimal.NewFromInt(1)
	for e := 1; e <= span; e++ {
		up = up.Mul(piDigits).Truncate(highPrecision)
		floatTable[scale.Pi][span+e] = up.InexactFloat64()
		floatTable[scale.Pi][span-e] = one.DivRound(up, highPrecision).InexactFloat64()
	}

	logging.Debug("conversion tables initialized")
}

// reciprocal returns 1/b^e rounded once. Negative powers of 2, 5 and 10 terminate,
// so they are read from their exact decimal form; 3^-e is divided in decimal first.
func reciprocal(b scale.Basis, e int, positive decimal.Decimal) float64 {
	if e == 0 {
		return 1
	}
	switch b {
	case scale.Two:
		return math.Ldexp(1, -e)
	case scale.Ten:
		return decimal.New(1, int32(-e)).InexactFloat64()
	case scale.Five:
		// 5^-e = 2^e / 10^e
		return exactTable[scale.Two][e].Mul(decimal.New(1, int32(-e))).InexactFloat64()
	default:
		return one.DivRound(positive, highPrecision).InexactFloat64()
	}
}

func floatEntry(b scale.Basis, e int) float64 {
	return floatTable[b][e+span]
}

func exactEntry(b scale.Basis, e int) decimal.Decimal {
	return exactTable[b][e]
}
