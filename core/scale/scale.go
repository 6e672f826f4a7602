// Package scale implements scale signatures: exact multiplicative ratios between a
// storage unit and its dimension's canonical base unit, factored over the basis
// {2, 3, 5, 10, π}.
//
// Because 10 = 2·5, the same ratio could be spelled several ways. Every
// constructor and combination therefore normalises: the common same-signed part
// of the 2 and 5 exponents is moved into the 10 slot. Two signatures denote the
// same ratio if and only if they compare equal with ==.
package scale

import (
	"fmt"
	"strings"

	errs "dimscale/core/errors"
)

// Basis identifies one element of the scale basis
type Basis int

const (
	Two Basis = iota
	Three
	Five
	Ten
	Pi
)

// NumBasis is the number of basis elements
const NumBasis = 5

// Exponent bounds for every basis element.
const (
	MinExponent = -30
	MaxExponent = 30
)

var basisNames = [NumBasis]string{"2", "3", "5", "10", "π"}

// Bases lists the basis in canonical order
var Bases = [NumBasis]Basis{Two, Three, Five, Ten, Pi}

// String returns the basis constant as text
func (b Basis) String() string {
	if b < 0 || int(b) >= NumBasis {
		return fmt.Sprintf("basis(%d)", int(b))
	}
	return basisNames[b]
}

// Signature is a normalised scale signature. The zero value is Unity.
type Signature struct {
	exps [NumBasis]int8
}

// Unity is the canonical base-unit scale
var Unity = Signature{}

// Of builds a signature from raw exponents of 2, 3, 5, 10 and π, normalising the result.
func Of(p2, p3, p5, p10, pi int) (Signature, error) {
	return normalize([NumBasis]int{p2, p3, p5, p10, pi})
}

// Must is like Of but panics on error. Intended for package-level tables.
func Must(s Signature, err error) Signature {
	if err != nil {
		panic(err)
	}
	return s
}

// Pow2 returns 2^n
func Pow2(n int) (Signature, error) { return Of(n, 0, 0, 0, 0) }

// Pow3 returns 3^n
func Pow3(n int) (Signature, error) { return Of(0, n, 0, 0, 0) }

// Pow5 returns 5^n
func Pow5(n int) (Signature, error) { return Of(0, 0, n, 0, 0) }

// Pow10 returns 10^n
func Pow10(n int) (Signature, error) { return Of(0, 0, 0, n, 0) }

// PowPi returns π^n
func PowPi(n int) (Signature, error) { return Of(0, 0, 0, 0, n) }

// Exponent returns the normalised exponent of a basis element
func (s Signature) Exponent(b Basis) int {
	return int(s.exps[b])
}

// Exponents returns the normalised exponents in basis order
func (s Signature) Exponents() [NumBasis]int {
	var out [NumBasis]int
	for i, e := range s.exps {
		out[i] = int(e)
	}
	return out
}

// PrimeExponents returns the exponents of 2, 3, 5 and π with the 10 slot expanded.
func (s Signature) PrimeExponents() (p2, p3, p5, pi int) {
	return int(s.exps[Two]) + int(s.exps[Ten]),
		int(s.exps[Three]),
		int(s.exps[Five]) + int(s.exps[Ten]),
		int(s.exps[Pi])
}

// IsUnity reports whether s is the canonical base scale
func (s Signature) IsUnity() bool {
	return s == Unity
}

// HasPi reports whether the π component is nonzero
func (s Signature) HasPi() bool {
	return s.exps[Pi] != 0
}

// WithoutPi returns s with the π component removed
func (s Signature) WithoutPi() Signature {
	s.exps[Pi] = 0
	return s
}

// Mul adds exponents
func (s Signature) Mul(o Signature) (Signature, error) {
	var raw [NumBasis]int
	for i := range raw {
		raw[i] = int(s.exps[i]) + int(o.exps[i])
	}
	return normalize(raw)
}

// Div subtracts exponents
func (s Signature) Div(o Signature) (Signature, error) {
	var raw [NumBasis]int
	for i := range raw {
		raw[i] = int(s.exps[i]) - int(o.exps[i])
	}
	return normalize(raw)
}

// Pow multiplies every exponent by n
func (s Signature) Pow(n int) (Signature, error) {
	var raw [NumBasis]int
	for i := range raw {
		raw[i] = int(s.exps[i]) * n
	}
	return normalize(raw)
}

// Root divides the prime exponents by n. It fails when the ratio has no exact n-th
// root inside the basis.
func (s Signature) Root(n int) (Signature, error) {
	if n == 0 {
		return Signature{}, errs.Input("scale: zeroth root")
	}
	p2, p3, p5, pi := s.PrimeExponents()
	for _, e := range [...]int{p2, p3, p5, pi} {
		if e%n != 0 {
			return Signature{}, errs.Newf(errs.TypePrecisionLoss, "scale: %s has no exact %d-th root", s, n)
		}
	}
	return normalize([NumBasis]int{p2 / n, p3 / n, p5 / n, 0, pi / n})
}

// Delta returns the raw per-basis exponent difference s - o after normalisation.
// It may exceed the signature bounds, which is why it is not a Signature.
func (s Signature) Delta(o Signature) [NumBasis]int {
	p2a, p3a, p5a, pia := s.PrimeExponents()
	p2b, p3b, p5b, pib := o.PrimeExponents()
	return fold(p2a-p2b, p3a-p3b, p5a-p5b, pia-pib)
}

// String renders the signature as a product of basis powers, e.g. 10^-3 or 2^-1·3^-2·10^-1·π
func (s Signature) String() string {
	var parts []string
	for i, e := range s.exps {
		switch {
		case e == 0:
		case e == 1:
			parts = append(parts, basisNames[i])
		default:
			parts = append(parts, fmt.Sprintf("%s^%d", basisNames[i], e))
		}
	}
	if len(parts) == 0 {
		return "1"
	}
	return strings.Join(parts, "·")
}

// fold moves the common same-signed part of the 2 and 5 exponents into the 10 slot.
func fold(p2, p3, p5, pi int) [NumBasis]int {
	ten := 0
	switch {
	case p2 > 0 && p5 > 0:
		ten = min(p2, p5)
	case p2 < 0 && p5 < 0:
		ten = max(p2, p5)
	}
	return [NumBasis]int{p2 - ten, p3, p5 - ten, ten, pi}
}

func normalize(raw [NumBasis]int) (Signature, error) {
	folded := fold(raw[Two]+raw[Ten], raw[Three], raw[Five]+raw[Ten], raw[Pi])
	var s Signature
	for i, e := range folded {
		if e < MinExponent || e > MaxExponent {
			return Signature{}, errs.Newf(errs.TypeOverflow, "scale: %s exponent %d outside [%d, %d]",
				Basis(i), e, MinExponent, MaxExponent)
		}
		s.exps[i] = int8(e)
	}
	return s, nil
}
