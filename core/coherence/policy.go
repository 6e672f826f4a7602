// Package coherence validates arithmetic between quantities and derives the
// signature of every result.
//
// Multiplication, division and powers always combine signatures axis-wise.
// Addition and subtraction require equal dimensions; whether unequal scales are
// an error or are reconciled by an implicit conversion depends on the Policy the
// Checker was built with. Strict is the default.
package coherence

import (
	"go.uber.org/zap"

	"dimscale/core/conversion"
	errs "dimscale/core/errors"
	"dimscale/core/numeric"
	"dimscale/core/scale"
	"dimscale/internal/logging"
)

// Policy decides the result scale of add and subtract on unequal scales
type Policy string

const (
	// Strict requires equal scales; callers rescale explicitly
	Strict Policy = "strict"

	// LeftHandWins converts the right operand to the left operand's scale
	LeftHandWins Policy = "left-hand-wins"

	// LargestWins converts to whichever scale denotes the larger multiple
	LargestWins Policy = "largest-wins"

	// SmallestWins converts to whichever scale denotes the smaller multiple
	SmallestWins Policy = "smallest-wins"
)

// Policies lists all policies
var Policies = []Policy{Strict, LeftHandWins, LargestWins, SmallestWins}

// ParsePolicy maps a policy name to a Policy
func ParsePolicy(name string) (Policy, error) {
	for _, p := range Policies {
		if string(p) == name {
			return p, nil
		}
	}
	return Strict, errs.Newf(errs.TypeInput, "unknown coherence policy %q", name)
}

// Checker applies a policy and a precision mode to arithmetic. It holds no mutable
// state and may be shared between goroutines.
type Checker struct {
	policy Policy
	mode   numeric.Mode
}

// Option configures a Checker
type Option func(*Checker)

// WithPolicy sets the add/subtract reconciliation policy
func WithPolicy(p Policy) Option {
	return func(c *Checker) {
		c.policy = p
	}
}

// WithMode sets whether inexact integer/decimal results fail or truncate
func WithMode(m numeric.Mode) Option {
	return func(c *Checker) {
		c.mode = m
	}
}

// NewChecker creates a checker; the default is Strict and Exact
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		policy: Strict,
		mode:   numeric.Exact,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Policy returns the active policy
func (c *Checker) Policy() Policy {
	return c.policy
}

// Mode returns the active precision mode
func (c *Checker) Mode() numeric.Mode {
	return c.mode
}

// reconcile picks the common scale for an add or subtract
func (c *Checker) reconcile(op string, left, right scale.Signature) (scale.Signature, error) {
	if left == right {
		return left, nil
	}
	var target scale.Signature
	switch c.policy {
	case LeftHandWins:
		target = left
	case LargestWins:
		target = conversion.Larger(left, right)
	case SmallestWins:
		target = conversion.Smaller(left, right)
	default:
		return scale.Signature{}, errs.ScaleIncoherence(op, left, right)
	}
	logging.Debug("implicit rescale",
		zap.String("op", op),
		zap.String("policy", string(c.policy)),
		zap.Stringer("left", left),
		zap.Stringer("right", right),
		zap.Stringer("target", target),
	)
	return target, nil
}
