package dimension

import (
	"fmt"
	"strings"

	errs "dimscale/core/errors"
)

// Pattern is a dimension signature whose axes may be left unbound.
// Unbound axes only exist here; a Signature is always fully concrete.
type Pattern struct {
	exps  [NumAxes]int8
	bound [NumAxes]bool
}

// Atomic patterns, one per axis, with every other axis bound to zero.
var (
	MassPattern        = Exactly(MustOf(Mass, 1))
	LengthPattern      = Exactly(MustOf(Length, 1))
	TimePattern        = Exactly(MustOf(Time, 1))
	CurrentPattern     = Exactly(MustOf(Current, 1))
	TemperaturePattern = Exactly(MustOf(Temperature, 1))
	AmountPattern      = Exactly(MustOf(Amount, 1))
	LuminosityPattern  = Exactly(MustOf(Luminosity, 1))
	AnglePattern       = Exactly(MustOf(Angle, 1))
	ScalarPattern      = Exactly(Dimensionless)
)

// Any matches every signature
var Any = Pattern{}

// Exactly returns a pattern with every axis bound to s
func Exactly(s Signature) Pattern {
	p := Pattern{exps: s.exps}
	for i := range p.bound {
		p.bound[i] = true
	}
	return p
}

// Wildcard returns a copy of p with the given axes unbound
func (p Pattern) Wildcard(axes ...Axis) Pattern {
	for _, a := range axes {
		p.bound[a] = false
		p.exps[a] = 0
	}
	return p
}

// IsBound reports whether an axis must match exactly
func (p Pattern) IsBound(a Axis) bool {
	return p.bound[a]
}

// Exponent returns the bound exponent of an axis and whether it is bound
func (p Pattern) Exponent(a Axis) (int, bool) {
	return int(p.exps[a]), p.bound[a]
}

// Matches reports whether every bound axis of p equals the axis of s
func (p Pattern) Matches(s Signature) bool {
	for i := range p.exps {
		if p.bound[i] && p.exps[i] != s.exps[i] {
			return false
		}
	}
	return true
}

// Concrete returns the signature of a fully bound pattern
func (p Pattern) Concrete() (Signature, bool) {
	for _, b := range p.bound {
		if !b {
			return Signature{}, false
		}
	}
	return Signature{exps: p.exps}, true
}

// Mul combines patterns; an axis unbound on either side stays unbound
func (p Pattern) Mul(o Pattern) (Pattern, error) {
	return p.combine(o, func(a, b int) int { return a + b })
}

// Div combines patterns by subtracting bound exponents
func (p Pattern) Div(o Pattern) (Pattern, error) {
	return p.combine(o, func(a, b int) int { return a - b })
}

// Pow multiplies every bound exponent by n
func (p Pattern) Pow(n int) (Pattern, error) {
	out := p
	for i := range p.exps {
		if !p.bound[i] {
			continue
		}
		e := int(p.exps[i]) * n
		if err := checkBound(Axis(i), e); err != nil {
			return Pattern{}, err
		}
		out.exps[i] = int8(e)
	}
	return out, nil
}

// MustPattern panics on error; for package-level declarations of derived patterns.
func MustPattern(p Pattern, err error) Pattern {
	if err != nil {
		panic(err)
	}
	return p
}

func (p Pattern) combine(o Pattern, op func(a, b int) int) (Pattern, error) {
	var out Pattern
	for i := range p.exps {
		if !p.bound[i] || !o.bound[i] {
			continue
		}
		e := op(int(p.exps[i]), int(o.exps[i]))
		if err := checkBound(Axis(i), e); err != nil {
			return Pattern{}, err
		}
		out.exps[i] = int8(e)
		out.bound[i] = true
	}
	return out, nil
}

// Require fails with DIMENSION_MISMATCH when s does not match p
func (p Pattern) Require(what string, s Signature) error {
	if p.Matches(s) {
		return nil
	}
	return errs.DimensionMismatch(what, s, p)
}

// String renders bound axes as exponents and unbound axes as "_"
func (p Pattern) String() string {
	parts := make([]string, 0, NumAxes)
	for i := range p.exps {
		if !p.bound[i] {
			parts = append(parts, axisSymbols[i]+":_")
			continue
		}
		if p.exps[i] != 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", axisSymbols[i], p.exps[i]))
		}
	}
	if len(parts) == 0 {
		return "[1]"
	}
	return "[" + strings.Join(parts, ",") + "]"
}
