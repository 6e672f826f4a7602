package generic

import (
	"fmt"

	"dimscale/core/coherence"
	errs "dimscale/core/errors"
	"dimscale/core/quantity"
)

// Expr is the body of a generic operation: an expression over the operation's
// arguments. The same tree both evaluates quantities and derives result signatures,
// so the two can never disagree.
type Expr interface {
	// resolve derives the result signature from argument signatures alone
	resolve(c *coherence.Checker, args []quantity.Signature) (quantity.Signature, error)

	// eval computes the result from argument quantities
	eval(c *coherence.Checker, args []quantity.Quantity) (quantity.Quantity, error)

	// arity returns the highest argument index referenced, plus one
	arity() int

	String() string
}

// Arg refers to the i-th argument of the operation
func Arg(i int) Expr { return argExpr(i) }

// Mul multiplies two expressions
func Mul(a, b Expr) Expr { return binary{op: opMul, a: a, b: b} }

// Div divides two expressions
func Div(a, b Expr) Expr { return binary{op: opDiv, a: a, b: b} }

// Add adds two expressions under the checker's policy
func Add(a, b Expr) Expr { return binary{op: opAdd, a: a, b: b} }

// Sub subtracts two expressions under the checker's policy
func Sub(a, b Expr) Expr { return binary{op: opSub, a: a, b: b} }

// Pow raises an expression to an integer power
func Pow(a Expr, n int) Expr { return power{a: a, n: n} }

// Root takes the n-th root of an expression
func Root(a Expr, n int) Expr { return power{a: a, n: n, root: true} }

type argExpr int

func (e argExpr) resolve(_ *coherence.Checker, args []quantity.Signature) (quantity.Signature, error) {
	if int(e) >= len(args) {
		return quantity.Signature{}, errs.Newf(errs.TypeInput, "argument %d not supplied", int(e))
	}
	return args[e], nil
}

func (e argExpr) eval(_ *coherence.Checker, args []quantity.Quantity) (quantity.Quantity, error) {
	if int(e) >= len(args) {
		return quantity.Quantity{}, errs.Newf(errs.TypeInput, "argument %d not supplied", int(e))
	}
	return args[e], nil
}

func (e argExpr) arity() int { return int(e) + 1 }

func (e argExpr) String() string { return fmt.Sprintf("$%d", int(e)) }

type binaryOp int

const (
	opMul binaryOp = iota
	opDiv
	opAdd
	opSub
)

var binarySymbols = map[binaryOp]string{opMul: "*", opDiv: "/", opAdd: "+", opSub: "-"}

type binary struct {
	op   binaryOp
	a, b Expr
}

func (e binary) resolve(c *coherence.Checker, args []quantity.Signature) (quantity.Signature, error) {
	a, err := e.a.resolve(c, args)
	if err != nil {
		return quantity.Signature{}, err
	}
	b, err := e.b.resolve(c, args)
	if err != nil {
		return quantity.Signature{}, err
	}
	switch e.op {
	case opMul:
		return coherence.ResolveMul(a, b)
	case opDiv:
		return coherence.ResolveDiv(a, b)
	default:
		return c.ResolveAdd(a, b)
	}
}

func (e binary) eval(c *coherence.Checker, args []quantity.Quantity) (quantity.Quantity, error) {
	a, err := e.a.eval(c, args)
	if err != nil {
		return quantity.Quantity{}, err
	}
	b, err := e.b.eval(c, args)
	if err != nil {
		return quantity.Quantity{}, err
	}
	switch e.op {
	case opMul:
		return c.Mul(a, b)
	case opDiv:
		return c.Div(a, b)
	case opAdd:
		return c.Add(a, b)
	default:
		return c.Sub(a, b)
	}
}

func (e binary) arity() int { return max(e.a.arity(), e.b.arity()) }

func (e binary) String() string {
	return "(" + e.a.String() + " " + binarySymbols[e.op] + " " + e.b.String() + ")"
}

type power struct {
	a    Expr
	n    int
	root bool
}

func (e power) resolve(c *coherence.Checker, args []quantity.Signature) (quantity.Signature, error) {
	a, err := e.a.resolve(c, args)
	if err != nil {
		return quantity.Signature{}, err
	}
	if e.root {
		return coherence.ResolveRoot(a, e.n)
	}
	return coherence.ResolvePow(a, e.n)
}

func (e power) eval(c *coherence.Checker, args []quantity.Quantity) (quantity.Quantity, error) {
	a, err := e.a.eval(c, args)
	if err != nil {
		return quantity.Quantity{}, err
	}
	if e.root {
		return c.Root(a, e.n)
	}
	return c.Pow(a, e.n)
}

func (e power) arity() int { return e.a.arity() }

func (e power) String() string {
	if e.root {
		return fmt.Sprintf("%s^(1/%d)", e.a, e.n)
	}
	return fmt.Sprintf("%s^%d", e.a, e.n)
}
