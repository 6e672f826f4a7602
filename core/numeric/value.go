// Package numeric holds the storage-tagged numeric values carried by quantities.
// Integer and decimal storage never round silently: every operation that cannot be
// carried out exactly fails with PRECISION_LOSS unless the caller passes Lossy.
package numeric

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	errs "dimscale/core/errors"
)

// Storage identifies the numeric representation of a value
type Storage uint8

const (
	Float Storage = iota
	Int
	Decimal
)

// String returns the storage name
func (s Storage) String() string {
	switch s {
	case Float:
		return "float64"
	case Int:
		return "int64"
	case Decimal:
		return "decimal"
	default:
		return "unknown"
	}
}

// ParseStorage maps a storage name to a Storage
func ParseStorage(name string) (Storage, error) {
	switch name {
	case "float", "float64", "f64":
		return Float, nil
	case "int", "int64", "i64":
		return Int, nil
	case "decimal":
		return Decimal, nil
	default:
		return Float, errs.Newf(errs.TypeInput, "unknown storage %q", name)
	}
}

// Mode selects whether inexact integer or decimal results are an error or truncated
type Mode uint8

const (
	// Exact fails with PRECISION_LOSS when a result cannot be represented exactly
	Exact Mode = iota

	// Lossy truncates toward zero instead of failing
	Lossy
)

// Value is an immutable number in one of the supported storages
type Value struct {
	storage Storage
	f       float64
	i       int64
	d       decimal.Decimal
}

// FromFloat creates a float64-backed value
func FromFloat(f float64) Value {
	return Value{storage: Float, f: f}
}

// FromInt creates an int64-backed value
func FromInt(i int64) Value {
	return Value{storage: Int, i: i}
}

// FromDecimal creates a decimal-backed value
func FromDecimal(d decimal.Decimal) Value {
	return Value{storage: Decimal, d: d}
}

// Zero returns zero in the given storage
func Zero(s Storage) Value {
	switch s {
	case Int:
		return FromInt(0)
	case Decimal:
		return FromDecimal(decimal.Zero)
	default:
		return FromFloat(0)
	}
}

// Parse reads text into the given storage
func Parse(text string, s Storage) (Value, error) {
	switch s {
	case Int:
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Value{}, errs.Wrap(errs.TypeInput, "invalid integer "+strconv.Quote(text), err)
		}
		return FromInt(i), nil
	case Decimal:
		d, err := decimal.NewFromString(text)
		if err != nil {
			return Value{}, errs.Wrap(errs.TypeInput, "invalid decimal "+strconv.Quote(text), err)
		}
		return FromDecimal(d), nil
	default:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, errs.Wrap(errs.TypeInput, "invalid float "+strconv.Quote(text), err)
		}
		return FromFloat(f), nil
	}
}

// Storage returns the storage of the value
func (v Value) Storage() Storage {
	return v.storage
}

// Float64 returns the value as float64, rounding integer and decimal storage
func (v Value) Float64() float64 {
	switch v.storage {
	case Int:
		return float64(v.i)
	case Decimal:
		return v.d.InexactFloat64()
	default:
		return v.f
	}
}

// Int64 returns the integer value and whether the storage is Int
func (v Value) Int64() (int64, bool) {
	return v.i, v.storage == Int
}

// Decimal returns the value as a decimal. Float storage converts via its shortest representation.
func (v Value) Decimal() decimal.Decimal {
	switch v.storage {
	case Int:
		return decimal.NewFromInt(v.i)
	case Float:
		return decimal.NewFromFloat(v.f)
	default:
		return v.d
	}
}

// IsZero reports whether the value is zero
func (v Value) IsZero() bool {
	switch v.storage {
	case Int:
		return v.i == 0
	case Decimal:
		return v.d.IsZero()
	default:
		return v.f == 0
	}
}

// String formats the value without losing digits
func (v Value) String() string {
	switch v.storage {
	case Int:
		return strconv.FormatInt(v.i, 10)
	case Decimal:
		return v.d.String()
	default:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	}
}

// Equal reports exact equality of storage and value
func (v Value) Equal(o Value) bool {
	if v.storage != o.storage {
		return false
	}
	switch v.storage {
	case Int:
		return v.i == o.i
	case Decimal:
		return v.d.Equal(o.d)
	default:
		return v.f == o.f
	}
}

// Cmp compares two values of the same storage
func (v Value) Cmp(o Value) (int, error) {
	if err := sameStorage("compare", v, o); err != nil {
		return 0, err
	}
	switch v.storage {
	case Int:
		switch {
		case v.i < o.i:
			return -1, nil
		case v.i > o.i:
			return 1, nil
		}
		return 0, nil
	case Decimal:
		return v.d.Cmp(o.d), nil
	default:
		switch {
		case v.f < o.f:
			return -1, nil
		case v.f > o.f:
			return 1, nil
		}
		return 0, nil
	}
}

// Neg negates the value
func (v Value) Neg() (Value, error) {
	switch v.storage {
	case Int:
		if v.i == math.MinInt64 {
			return Value{}, errs.Overflow("int64 negation overflows")
		}
		return FromInt(-v.i), nil
	case Decimal:
		return FromDecimal(v.d.Neg()), nil
	default:
		return FromFloat(-v.f), nil
	}
}

// Add returns v + o
func (v Value) Add(o Value) (Value, error) {
	if err := sameStorage("add", v, o); err != nil {
		return Value{}, err
	}
	switch v.storage {
	case Int:
		s := v.i + o.i
		if (s > v.i) != (o.i > 0) {
			return Value{}, errs.Overflow("int64 addition overflows")
		}
		return FromInt(s), nil
	case Decimal:
		return FromDecimal(v.d.Add(o.d)), nil
	default:
		return FromFloat(v.f + o.f), nil
	}
}

// Sub returns v - o
func (v Value) Sub(o Value) (Value, error) {
	n, err := o.Neg()
	if err != nil {
		return Value{}, err
	}
	return v.Add(n)
}

// Mul returns v * o
func (v Value) Mul(o Value) (Value, error) {
	if err := sameStorage("multiply", v, o); err != nil {
		return Value{}, err
	}
	switch v.storage {
	case Int:
		p, ok := mulInt(v.i, o.i)
		if !ok {
			return Value{}, errs.Overflow("int64 multiplication overflows")
		}
		return FromInt(p), nil
	case Decimal:
		return FromDecimal(v.d.Mul(o.d)), nil
	default:
		return FromFloat(v.f * o.f), nil
	}
}

// Div returns v / o. Integer and decimal division must be exact unless mode is Lossy.
func (v Value) Div(o Value, mode Mode) (Value, error) {
	if err := sameStorage("divide", v, o); err != nil {
		return Value{}, err
	}
	switch v.storage {
	case Int:
		if o.i == 0 {
			return Value{}, errs.Input("integer division by zero")
		}
		if v.i == math.MinInt64 && o.i == -1 {
			return Value{}, errs.Overflow("int64 division overflows")
		}
		if v.i%o.i != 0 && mode != Lossy {
			return Value{}, errs.PrecisionLoss("integer division " + v.String() + "/" + o.String() + " is not exact")
		}
		return FromInt(v.i / o.i), nil
	case Decimal:
		if o.d.IsZero() {
			return Value{}, errs.Input("decimal division by zero")
		}
		return divDecimal(v.d, o.d, mode)
	default:
		return FromFloat(v.f / o.f), nil
	}
}

// Pow raises v to an integer power by repeated squaring
func (v Value) Pow(n int) (Value, error) {
	if n < 0 {
		p, err := v.Pow(-n)
		if err != nil {
			return Value{}, err
		}
		one := oneOf(v.storage)
		return one.Div(p, Exact)
	}
	result := oneOf(v.storage)
	base := v
	for n > 0 {
		var err error
		if n&1 == 1 {
			if result, err = result.Mul(base); err != nil {
				return Value{}, err
			}
		}
		n >>= 1
		if n > 0 {
			if base, err = base.Mul(base); err != nil {
				return Value{}, err
			}
		}
	}
	return result, nil
}

// Root returns the n-th root of v. Integer and decimal roots must be exact unless mode is Lossy.
func (v Value) Root(n int, mode Mode) (Value, error) {
	if n <= 0 {
		return Value{}, errs.Input("root degree must be positive")
	}
	if n%2 == 0 && v.Float64() < 0 {
		return Value{}, errs.Input("even root of a negative value")
	}
	f := v.Float64()
	var r float64
	switch n {
	case 1:
		return v, nil
	case 2:
		r = math.Sqrt(f)
	case 3:
		r = math.Cbrt(f)
	default:
		r = math.Copysign(math.Pow(math.Abs(f), 1/float64(n)), f)
	}
	switch v.storage {
	case Int:
		candidate := int64(math.Round(r))
		back, err := FromInt(candidate).Pow(n)
		if err == nil && back.i == v.i {
			return FromInt(candidate), nil
		}
		if mode != Lossy {
			return Value{}, errs.PrecisionLoss("integer " + v.String() + " has no exact root of degree " + strconv.Itoa(n))
		}
		return FromInt(int64(math.Trunc(r))), nil
	case Decimal:
		candidate := FromDecimal(decimal.NewFromFloat(r))
		back, err := candidate.Pow(n)
		if err == nil && back.d.Equal(v.d) {
			return candidate, nil
		}
		if mode != Lossy {
			return Value{}, errs.PrecisionLoss("decimal " + v.String() + " has no exact root of degree " + strconv.Itoa(n))
		}
		return candidate, nil
	default:
		return FromFloat(r), nil
	}
}

// MulRatio multiplies by the exact ratio num/den. Both are positive decimals;
// scale ratios pass integers, unit conversion factors such as 2.54 need not be.
func (v Value) MulRatio(num, den decimal.Decimal, mode Mode) (Value, error) {
	switch v.storage {
	case Int:
		scaled := decimal.NewFromInt(v.i).Mul(num)
		q, rem := scaled.QuoRem(den, 0)
		if !rem.IsZero() && mode != Lossy {
			return Value{}, errs.PrecisionLoss(v.String() + " × " + num.String() + "/" + den.String() + " is not an integer")
		}
		return intFromDecimal(q)
	case Decimal:
		return divDecimal(v.d.Mul(num), den, mode)
	default:
		return FromFloat(v.f * num.InexactFloat64() / den.InexactFloat64()), nil
	}
}

// MulFactor multiplies by a floating factor. Float storage multiplies directly;
// integer and decimal storage succeed without Lossy only when the product is exact.
func (v Value) MulFactor(f float64, mode Mode) (Value, error) {
	switch v.storage {
	case Int:
		p := float64(v.i) * f
		if mode != Lossy && (p != math.Trunc(p) || math.Abs(float64(v.i)) > 1<<53) {
			return Value{}, errs.PrecisionLoss(v.String() + " × " + strconv.FormatFloat(f, 'g', -1, 64) + " is not an exact integer")
		}
		return intFromFloat(math.Trunc(p))
	case Decimal:
		if v.d.IsZero() {
			return v, nil
		}
		if mode != Lossy {
			return Value{}, errs.PrecisionLoss("decimal " + v.String() + " × irrational factor is not exact")
		}
		return FromDecimal(v.d.Mul(decimal.NewFromFloat(f))), nil
	default:
		return FromFloat(v.f * f), nil
	}
}

// MulDecimal multiplies by an exactly known decimal factor, such as an imperial conversion factor.
func (v Value) MulDecimal(d decimal.Decimal, mode Mode) (Value, error) {
	switch v.storage {
	case Int:
		p := decimal.NewFromInt(v.i).Mul(d)
		if !p.IsInteger() && mode != Lossy {
			return Value{}, errs.PrecisionLoss(v.String() + " × " + d.String() + " is not an integer")
		}
		return intFromDecimal(p.Truncate(0))
	case Decimal:
		return FromDecimal(v.d.Mul(d)), nil
	default:
		return FromFloat(v.f * d.InexactFloat64()), nil
	}
}

// AddDecimal adds an exactly known decimal offset, such as an affine zero point.
func (v Value) AddDecimal(d decimal.Decimal, mode Mode) (Value, error) {
	switch v.storage {
	case Int:
		s := decimal.NewFromInt(v.i).Add(d)
		if !s.IsInteger() && mode != Lossy {
			return Value{}, errs.PrecisionLoss(v.String() + " + " + d.String() + " is not an integer")
		}
		return intFromDecimal(s.Truncate(0))
	case Decimal:
		return FromDecimal(v.d.Add(d)), nil
	default:
		return FromFloat(v.f + d.InexactFloat64()), nil
	}
}

func oneOf(s Storage) Value {
	switch s {
	case Int:
		return FromInt(1)
	case Decimal:
		return FromDecimal(decimal.NewFromInt(1))
	default:
		return FromFloat(1)
	}
}

func sameStorage(op string, a, b Value) error {
	if a.storage != b.storage {
		return errs.Newf(errs.TypeStorageMismatch, "%s: %s operand with %s operand", op, a.storage, b.storage)
	}
	return nil
}

// decimalPrecision bounds the fractional digits of a decimal quotient. Every ratio
// of the scale basis without a factor of 3 terminates well within it.
const decimalPrecision = 64

func divDecimal(a, b decimal.Decimal, mode Mode) (Value, error) {
	q, rem := a.QuoRem(b, decimalPrecision)
	if !rem.IsZero() && mode != Lossy {
		return Value{}, errs.PrecisionLoss("decimal " + a.String() + "/" + b.String() + " does not terminate")
	}
	return FromDecimal(q), nil
}

var (
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
	minInt64 = decimal.NewFromInt(math.MinInt64)
)

func intFromDecimal(d decimal.Decimal) (Value, error) {
	if d.GreaterThan(maxInt64) || d.LessThan(minInt64) {
		return Value{}, errs.Overflow("result " + d.String() + " exceeds int64")
	}
	return FromInt(d.IntPart()), nil
}

func intFromFloat(f float64) (Value, error) {
	if f >= math.MaxInt64 || f < math.MinInt64 || math.IsNaN(f) {
		return Value{}, errs.Overflow("result " + strconv.FormatFloat(f, 'g', -1, 64) + " exceeds int64")
	}
	return FromInt(int64(f)), nil
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	if p/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	return p, true
}
