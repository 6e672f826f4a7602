// Package generic resolves operations that are generic over dimension but
// polymorphic over scale.
//
// An Operation is declared once with one dimension pattern per parameter, an
// optional result pattern and a body expression. Each call checks the actual
// arguments against the parameter patterns and derives the result signature
// from the arguments' own signatures, never from the declaration:
//
//	area := generic.Define("area",
//		[]dimension.Pattern{dimension.LengthPattern, dimension.LengthPattern},
//		generic.Area,
//		generic.Mul(generic.Arg(0), generic.Arg(1)))
//
//	area.Call(checker, oneMeter, twoHundredMillimeters) // 200 m·mm, scale 10^-3
package generic

import (
	"fmt"

	"dimscale/core/coherence"
	"dimscale/core/dimension"
	errs "dimscale/core/errors"
	"dimscale/core/quantity"
)

// Common derived patterns.
var (
	Area            = dimension.MustPattern(dimension.LengthPattern.Pow(2))
	Volume          = dimension.MustPattern(dimension.LengthPattern.Pow(3))
	Velocity        = dimension.MustPattern(dimension.LengthPattern.Div(dimension.TimePattern))
	Acceleration    = dimension.MustPattern(Velocity.Div(dimension.TimePattern))
	Force           = dimension.MustPattern(dimension.MassPattern.Mul(Acceleration))
	Energy          = dimension.MustPattern(Force.Mul(dimension.LengthPattern))
	Power           = dimension.MustPattern(Energy.Div(dimension.TimePattern))
	Frequency       = dimension.MustPattern(dimension.ScalarPattern.Div(dimension.TimePattern))
	AngularVelocity = dimension.MustPattern(dimension.AnglePattern.Div(dimension.TimePattern))
)

// Operation is a declared dimension-generic operation
type Operation struct {
	name   string
	params []dimension.Pattern
	result dimension.Pattern
	body   Expr
}

// Define declares an operation. The body may only reference declared parameters;
// the result pattern may be dimension.Any.
func Define(name string, params []dimension.Pattern, result dimension.Pattern, body Expr) (*Operation, error) {
	if body == nil {
		return nil, errs.Newf(errs.TypeInput, "operation %s: nil body", name)
	}
	if n := body.arity(); n > len(params) {
		return nil, errs.Newf(errs.TypeInput, "operation %s: body references argument %d of %d", name, n-1, len(params))
	}
	ps := make([]dimension.Pattern, len(params))
	copy(ps, params)
	return &Operation{name: name, params: ps, result: result, body: body}, nil
}

// MustDefine is like Define but panics; for package-level declarations
func MustDefine(name string, params []dimension.Pattern, result dimension.Pattern, body Expr) *Operation {
	op, err := Define(name, params, result, body)
	if err != nil {
		panic(err)
	}
	return op
}

// Name returns the operation name
func (o *Operation) Name() string { return o.name }

// Params returns a copy of the parameter patterns
func (o *Operation) Params() []dimension.Pattern {
	ps := make([]dimension.Pattern, len(o.params))
	copy(ps, o.params)
	return ps
}

// String renders the declaration, e.g. "area([L:1], [L:1]) -> [L:2] = ($0 * $1)"
func (o *Operation) String() string {
	return fmt.Sprintf("%s%v -> %s = %s", o.name, o.params, o.result, o.body)
}

// Match checks every argument signature against its parameter pattern
func (o *Operation) Match(args []quantity.Signature) error {
	if len(args) != len(o.params) {
		return errs.Newf(errs.TypeInput, "%s: %d arguments given, %d expected", o.name, len(args), len(o.params))
	}
	for i, p := range o.params {
		if !p.Matches(args[i].Dimension) {
			return errs.DimensionMismatch(fmt.Sprintf("%s argument %d", o.name, i), args[i].Dimension, p)
		}
	}
	return nil
}

// Resolve derives the result signature for the given argument signatures
func (o *Operation) Resolve(c *coherence.Checker, args ...quantity.Signature) (quantity.Signature, error) {
	if err := o.Match(args); err != nil {
		return quantity.Signature{}, err
	}
	sig, err := o.body.resolve(c, args)
	if err != nil {
		return quantity.Signature{}, err
	}
	if !o.result.Matches(sig.Dimension) {
		return quantity.Signature{}, errs.DimensionMismatch(o.name+" result", sig.Dimension, o.result)
	}
	return sig, nil
}

// Call checks the arguments and evaluates the body
func (o *Operation) Call(c *coherence.Checker, args ...quantity.Quantity) (quantity.Quantity, error) {
	sigs := make([]quantity.Signature, len(args))
	for i, a := range args {
		sigs[i] = a.Signature()
	}
	want, err := o.Resolve(c, sigs...)
	if err != nil {
		return quantity.Quantity{}, err
	}
	out, err := o.body.eval(c, args)
	if err != nil {
		return quantity.Quantity{}, err
	}
	if out.Signature() != want {
		return quantity.Quantity{}, errs.Newf(errs.TypeDimensionMismatch,
			"%s: evaluated signature %s differs from resolved %s", o.name, out.Signature(), want)
	}
	return out, nil
}
