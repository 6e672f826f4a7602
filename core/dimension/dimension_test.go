package dimension

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "dimscale/core/errors"
)

// boundedFuzzer generates signatures small enough that a product or quotient of
// two stays inside the exponent bounds
func boundedFuzzer(seed int64) *fuzz.Fuzzer {
	return fuzz.NewWithSeed(seed).NilChance(0).Funcs(
		func(s *Signature, c fuzz.Continue) {
			for i := range s.exps {
				s.exps[i] = int8(c.Intn(17) - 8)
			}
		},
	)
}

// TestString checks the canonical rendering
func TestString(t *testing.T) {
	tests := []struct {
		name string
		sig  Signature
		want string
	}{
		{"dimensionless", Dimensionless, "[1]"},
		{"length", MustOf(Length, 1), "[L:1]"},
		{"energy", Must(1, 2, -2), "[M:1,L:2,T:-2]"},
		{"angular velocity", Must(0, 0, -1, 0, 0, 0, 0, 1), "[T:-1,A:1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sig.String())
		})
	}
}

// TestNewBounds checks construction limits
func TestNewBounds(t *testing.T) {
	_, err := New(MaxExponent)
	require.NoError(t, err)

	_, err = New(MaxExponent + 1)
	assert.True(t, errs.IsType(err, errs.TypeOverflow))

	_, err = New(0, 0, 0, 0, 0, 0, 0, 0, 1)
	assert.True(t, errs.IsType(err, errs.TypeInput))
}

// TestCombination checks that products and quotients combine axis-wise
func TestCombination(t *testing.T) {
	f := boundedFuzzer(1)
	for i := 0; i < 500; i++ {
		var a, b Signature
		f.Fuzz(&a)
		f.Fuzz(&b)

		prod, err := a.Mul(b)
		require.NoError(t, err)
		quot, err := a.Div(b)
		require.NoError(t, err)

		for _, axis := range Axes {
			assert.Equal(t, a.Exponent(axis)+b.Exponent(axis), prod.Exponent(axis))
			assert.Equal(t, a.Exponent(axis)-b.Exponent(axis), quot.Exponent(axis))
		}

		back, err := prod.Div(b)
		require.NoError(t, err)
		assert.Equal(t, a, back)
	}
}

// TestPowRoot checks that a root undoes a power
func TestPowRoot(t *testing.T) {
	f := boundedFuzzer(2)
	for i := 0; i < 200; i++ {
		var a Signature
		f.Fuzz(&a)
		for _, n := range []int{1, 2, 3} {
			p, err := a.Pow(n)
			require.NoError(t, err)
			r, err := p.Root(n)
			require.NoError(t, err)
			assert.Equal(t, a, r)
		}
	}
}

// TestRootFractional checks that a non-divisible root is a dimension error
func TestRootFractional(t *testing.T) {
	_, err := MustOf(Length, 3).Root(2)
	assert.True(t, errs.IsType(err, errs.TypeDimensionMismatch))

	_, err = MustOf(Length, 2).Root(0)
	assert.True(t, errs.IsType(err, errs.TypeInput))
}

// TestOverflow checks that combination past the bounds fails
func TestOverflow(t *testing.T) {
	big := MustOf(Time, 20)
	_, err := big.Mul(big)
	assert.True(t, errs.IsType(err, errs.TypeOverflow))

	_, err = big.Pow(2)
	assert.True(t, errs.IsType(err, errs.TypeOverflow))
}

// TestOfBounds checks that single-axis construction never wraps around
func TestOfBounds(t *testing.T) {
	tests := []struct {
		name string
		exp  int
		ok   bool
	}{
		{"upper bound", MaxExponent, true},
		{"lower bound", MinExponent, true},
		{"just above", MaxExponent + 1, false},
		{"just below", MinExponent - 1, false},
		{"past int8", 200, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Of(Length, tt.exp)
			if !tt.ok {
				assert.True(t, errs.IsType(err, errs.TypeOverflow), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.exp, s.Exponent(Length))
		})
	}

	assert.Panics(t, func() { MustOf(Length, 33) })
}

// TestPredicates checks classification helpers
func TestPredicates(t *testing.T) {
	angle := MustOf(Angle, 1)
	angVel := Must(0, 0, -1, 0, 0, 0, 0, 1)

	assert.True(t, Dimensionless.IsDimensionless())
	assert.True(t, angle.IsPureAngle())
	assert.False(t, angVel.IsPureAngle())
	assert.True(t, angVel.HasAngle())
	assert.True(t, MustOf(Temperature, 1).IsPureAxis(Temperature))
	assert.False(t, MustOf(Temperature, 2).IsPureAxis(Temperature))
}
