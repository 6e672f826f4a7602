// Package dimension implements dimension signatures: integer exponent vectors over
// the seven SI base dimensions plus angle.
package dimension

import (
	"fmt"
	"strings"

	errs "dimscale/core/errors"
)

// Axis identifies one base dimension
type Axis int

const (
	Mass Axis = iota
	Length
	Time
	Current
	Temperature
	Amount
	Luminosity
	Angle
)

// NumAxes is the number of base dimensions
const NumAxes = 8

// Exponent bounds for every axis of a concrete signature.
const (
	MinExponent = -32
	MaxExponent = 32
)

var axisSymbols = [NumAxes]string{"M", "L", "T", "I", "Θ", "N", "J", "A"}

var axisNames = [NumAxes]string{
	"mass", "length", "time", "current", "temperature", "amount", "luminosity", "angle",
}

// Axes lists all axes in canonical order
var Axes = [NumAxes]Axis{Mass, Length, Time, Current, Temperature, Amount, Luminosity, Angle}

// Symbol returns the short symbol of the axis
func (a Axis) Symbol() string {
	if a < 0 || int(a) >= NumAxes {
		return "?"
	}
	return axisSymbols[a]
}

// String returns the axis name
func (a Axis) String() string {
	if a < 0 || int(a) >= NumAxes {
		return fmt.Sprintf("axis(%d)", int(a))
	}
	return axisNames[a]
}

// Signature is a concrete dimension signature. The zero value is dimensionless.
type Signature struct {
	exps [NumAxes]int8
}

// Dimensionless is the all-zero signature
var Dimensionless = Signature{}

// New builds a signature from exponents in axis order. Missing trailing axes are zero.
func New(exps ...int) (Signature, error) {
	if len(exps) > NumAxes {
		return Signature{}, errs.Newf(errs.TypeInput, "dimension: %d exponents given, at most %d axes", len(exps), NumAxes)
	}
	var s Signature
	for i, e := range exps {
		if err := checkBound(Axis(i), e); err != nil {
			return Signature{}, err
		}
		s.exps[i] = int8(e)
	}
	return s, nil
}

// Must is like New but panics on error. Intended for package-level tables.
func Must(exps ...int) Signature {
	s, err := New(exps...)
	if err != nil {
		panic(err)
	}
	return s
}

// Of returns the signature with a single axis raised to exp, failing with
// OVERFLOW outside the exponent range
func Of(axis Axis, exp int) (Signature, error) {
	if err := checkBound(axis, exp); err != nil {
		return Signature{}, err
	}
	var s Signature
	s.exps[axis] = int8(exp)
	return s, nil
}

// MustOf is like Of but panics on error. Intended for package-level tables.
func MustOf(axis Axis, exp int) Signature {
	s, err := Of(axis, exp)
	if err != nil {
		panic(err)
	}
	return s
}

// Exponent returns the exponent of an axis
func (s Signature) Exponent(a Axis) int {
	return int(s.exps[a])
}

// Exponents returns a copy of all exponents in axis order
func (s Signature) Exponents() [NumAxes]int {
	var out [NumAxes]int
	for i, e := range s.exps {
		out[i] = int(e)
	}
	return out
}

// With returns a copy of s with one axis replaced
func (s Signature) With(a Axis, exp int) (Signature, error) {
	if err := checkBound(a, exp); err != nil {
		return Signature{}, err
	}
	s.exps[a] = int8(exp)
	return s, nil
}

// Mul adds exponents axis-wise
func (s Signature) Mul(o Signature) (Signature, error) {
	var out Signature
	for i := range s.exps {
		e := int(s.exps[i]) + int(o.exps[i])
		if err := checkBound(Axis(i), e); err != nil {
			return Signature{}, err
		}
		out.exps[i] = int8(e)
	}
	return out, nil
}

// Div subtracts exponents axis-wise
func (s Signature) Div(o Signature) (Signature, error) {
	var out Signature
	for i := range s.exps {
		e := int(s.exps[i]) - int(o.exps[i])
		if err := checkBound(Axis(i), e); err != nil {
			return Signature{}, err
		}
		out.exps[i] = int8(e)
	}
	return out, nil
}

// Pow multiplies every exponent by n
func (s Signature) Pow(n int) (Signature, error) {
	var out Signature
	for i := range s.exps {
		e := int(s.exps[i]) * n
		if err := checkBound(Axis(i), e); err != nil {
			return Signature{}, err
		}
		out.exps[i] = int8(e)
	}
	return out, nil
}

// Root divides every exponent by n. It fails when an exponent is not divisible,
// since the result would not be an integer signature.
func (s Signature) Root(n int) (Signature, error) {
	if n == 0 {
		return Signature{}, errs.Input("dimension: zeroth root")
	}
	var out Signature
	for i, e := range s.exps {
		if int(e)%n != 0 {
			return Signature{}, errs.Newf(errs.TypeDimensionMismatch,
				"dimension: %s^(1/%d) leaves a fractional %s exponent", s, n, Axis(i))
		}
		out.exps[i] = int8(int(e) / n)
	}
	return out, nil
}

// IsDimensionless reports whether every axis is zero
func (s Signature) IsDimensionless() bool {
	return s == Dimensionless
}

// IsPureAxis reports whether s is exactly the given axis to the first power
func (s Signature) IsPureAxis(a Axis) bool {
	return s == MustOf(a, 1)
}

// IsPureAngle reports whether s is exactly angle^1
func (s Signature) IsPureAngle() bool {
	return s.IsPureAxis(Angle)
}

// HasAngle reports whether the angle axis is nonzero
func (s Signature) HasAngle() bool {
	return s.exps[Angle] != 0
}

// String renders the signature as [M:1,L:2,T:-2]; dimensionless renders as [1]
func (s Signature) String() string {
	var parts []string
	for i, e := range s.exps {
		if e != 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", axisSymbols[i], e))
		}
	}
	if len(parts) == 0 {
		return "[1]"
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func checkBound(a Axis, e int) error {
	if e < MinExponent || e > MaxExponent {
		return errs.Newf(errs.TypeOverflow, "dimension: %s exponent %d outside [%d, %d]", a, e, MinExponent, MaxExponent)
	}
	return nil
}
