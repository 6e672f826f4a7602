package conversion

import (
	"math"
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"dimscale/core/dimension"
	errs "dimscale/core/errors"
	"dimscale/core/numeric"
	"dimscale/core/scale"
)

var (
	milli   = scale.Must(scale.Pow10(-3))
	kilo    = scale.Must(scale.Pow10(3))
	minute  = scale.Must(scale.Of(2, 1, 1, 0, 0))
	hour    = scale.Must(scale.Of(4, 2, 2, 0, 0))
	degree  = scale.Must(scale.Of(-2, -2, -1, 0, 1))
	rankine = scale.Must(scale.Of(0, -2, 1, 0, 0))
)

// TestFactor checks float factors against known ratios
func TestFactor(t *testing.T) {
	tests := []struct {
		name     string
		from, to scale.Signature
		want     float64
	}{
		{"identity", milli, milli, 1},
		{"metre to millimetre", scale.Unity, milli, 1000},
		{"millimetre to metre", milli, scale.Unity, 0.001},
		{"kilometre to millimetre", kilo, milli, 1e6},
		{"hour to minute", hour, minute, 60},
		{"minute to second", minute, scale.Unity, 60},
		{"degree to radian", degree, scale.Unity, math.Pi / 180},
		{"rankine to kelvin", rankine, scale.Unity, 5.0 / 9.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InEpsilon(t, tt.want, Factor(tt.from, tt.to), 1e-14)
		})
	}
}

// TestExactRatio checks integer ratios and the π rejection
func TestExactRatio(t *testing.T) {
	r, err := ExactRatio(hour, scale.Unity)
	require.NoError(t, err)
	assert.Equal(t, "3600", r.String())

	r, err = ExactRatio(rankine, scale.Unity)
	require.NoError(t, err)
	assert.Equal(t, "5/9", r.String())

	r, err = ExactRatio(milli, milli)
	require.NoError(t, err)
	assert.True(t, r.IsOne())

	_, err = ExactRatio(degree, scale.Unity)
	assert.True(t, errs.IsType(err, errs.TypePrecisionLoss))
}

// TestExtremeDelta checks the table covers the widest possible delta
func TestExtremeDelta(t *testing.T) {
	top := scale.Must(scale.Of(scale.MaxExponent, 0, 0, scale.MaxExponent, 0))
	bottom := scale.Must(scale.Of(scale.MinExponent, 0, 0, scale.MinExponent, 0))

	r, err := ExactRatio(top, bottom)
	require.NoError(t, err)
	// 2^60·5^30 over 2^-60·5^-30 is 2^120·5^60, which folds to 2^60·10^60
	want := decimal.NewFromInt(1 << 60).Mul(decimal.New(1, 60))
	assert.True(t, want.Equal(r.Num), "got %s", r.Num)
	assert.True(t, r.Den.Equal(decimal.NewFromInt(1)))

	assert.InEpsilon(t, math.Pow(2, 60)*1e60, Factor(top, bottom), 1e-12)
}

// TestApply checks conversion per storage
func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		v        numeric.Value
		from, to scale.Signature
		mode     numeric.Mode
		want     string
		errType  errs.Type
	}{
		{"int metre to millimetre", numeric.FromInt(1), scale.Unity, milli, numeric.Exact, "1000", ""},
		{"int exact down", numeric.FromInt(2000), milli, scale.Unity, numeric.Exact, "2", ""},
		{"int inexact down", numeric.FromInt(1500), milli, scale.Unity, numeric.Exact, "", errs.TypePrecisionLoss},
		{"int lossy down", numeric.FromInt(1500), milli, scale.Unity, numeric.Lossy, "1", ""},
		{"int hours", numeric.FromInt(2), hour, scale.Unity, numeric.Exact, "7200", ""},
		{"decimal down", numeric.FromDecimal(decimal.NewFromInt(1500)), milli, scale.Unity, numeric.Exact, "1.5", ""},
		{"decimal thirds", numeric.FromDecimal(decimal.NewFromInt(1)), scale.Unity, minute, numeric.Exact, "", errs.TypePrecisionLoss},
		{"int degrees exact", numeric.FromInt(180), degree, scale.Unity, numeric.Exact, "", errs.TypePrecisionLoss},
		{"int degrees lossy", numeric.FromInt(180), degree, scale.Unity, numeric.Lossy, "3", ""},
		{"zero degrees exact", numeric.FromInt(0), degree, scale.Unity, numeric.Exact, "0", ""},
		{"int overflow", numeric.FromInt(math.MaxInt64), scale.Unity, milli, numeric.Exact, "", errs.TypeOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.v, tt.from, tt.to, tt.mode)
			if tt.errType != "" {
				assert.True(t, errs.IsType(err, tt.errType), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
			assert.Equal(t, tt.v.Storage(), got.Storage())
		})
	}
}

// TestApplyFloat checks floating conversion including π
func TestApplyFloat(t *testing.T) {
	got, err := Apply(numeric.FromFloat(1), scale.Unity, milli, numeric.Exact)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, got.Float64())

	got, err = Apply(numeric.FromFloat(180), degree, scale.Unity, numeric.Exact)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, got.Float64(), 1e-12)
}

// TestRoundTrip checks that converting there and back is exact for integers
func TestRoundTrip(t *testing.T) {
	scales := []scale.Signature{scale.Unity, milli, kilo, minute, hour, rankine}
	start := numeric.FromInt(7)
	for _, a := range scales {
		for _, b := range scales {
			there, err := Apply(start, a, b, numeric.Exact)
			if err != nil {
				// Only the legs toward a finer scale are exact for integers
				assert.True(t, errs.IsType(err, errs.TypePrecisionLoss), "%s -> %s: %v", a, b, err)
				continue
			}
			back, err := Apply(there, b, a, numeric.Exact)
			require.NoError(t, err, "%s -> %s -> %s", a, b, a)
			assert.True(t, start.Equal(back), "%s -> %s -> %s: %s", a, b, a, back)
		}
	}

	for _, a := range scales {
		for _, b := range scales {
			there, err := Apply(numeric.FromFloat(3.25), a, b, numeric.Exact)
			require.NoError(t, err)
			back, err := Apply(there, b, a, numeric.Exact)
			require.NoError(t, err)
			assert.InEpsilon(t, 3.25, back.Float64(), 1e-12)
		}
	}
}

// TestConvertDimension checks that conversion never crosses dimensions
func TestConvertDimension(t *testing.T) {
	_, err := Convert(numeric.FromInt(1),
		dimension.MustOf(dimension.Length, 1), scale.Unity,
		dimension.MustOf(dimension.Time, 1), scale.Unity, numeric.Exact)
	assert.True(t, errs.IsType(err, errs.TypeDimensionMismatch))
}

// TestCompare checks scale ordering
func TestCompare(t *testing.T) {
	assert.Equal(t, 1, Compare(scale.Unity, milli))
	assert.Equal(t, -1, Compare(milli, kilo))
	assert.Equal(t, 0, Compare(hour, hour))
	assert.Equal(t, hour, Larger(minute, hour))
	assert.Equal(t, milli, Smaller(scale.Unity, milli))
	assert.Equal(t, degree, Smaller(degree, scale.Unity))
}

// TestConcurrentReads checks that the tables are safe to read from many goroutines
func TestConcurrentReads(t *testing.T) {
	var g errgroup.Group
	for i := 0; i < 32; i++ {
		g.Go(func() error {
			for j := 0; j < 200; j++ {
				if _, err := Apply(numeric.FromInt(int64(j)), hour, scale.Unity, numeric.Exact); err != nil {
					return err
				}
				if f := Factor(scale.Unity, milli); f != 1000 {
					return errs.Newf(errs.TypeInput, "factor %g", f)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

// referencePow raises x to e in 1024-bit binary floating point and rounds once
func referencePow(x *big.Float, e int) float64 {
	p := new(big.Float).SetPrec(1024).SetInt64(1)
	n := e
	if n < 0 {
		n = -n
	}
	for i := 0; i < n; i++ {
		p.Mul(p, x)
	}
	if e < 0 {
		p.Quo(new(big.Float).SetPrec(1024).SetInt64(1), p)
	}
	f, _ := p.Float64()
	return f
}

// TestInexactEntriesRoundedOnce compares π and 3^-e entries with a high precision reference
func TestInexactEntriesRoundedOnce(t *testing.T) {
	pi, ok := new(big.Float).SetPrec(1024).SetString(
		"3.14159265358979323846264338327950288419716939937510" +
			"58209749445923078164062862089986280348253421170679" +
			"82148086513282306647093844609550582231725359408128")
	require.True(t, ok)
	three := new(big.Float).SetPrec(1024).SetInt64(3)

	for _, e := range []int{1, -1, 30, -30, 60, -60, 119, -119, span, -span} {
		assert.Equal(t, referencePow(pi, e), floatEntry(scale.Pi, e), "π^%d", e)
	}
	assert.Equal(t, math.Pi, floatEntry(scale.Pi, 1))

	for _, e := range []int{-1, -20, -40, -60, -span} {
		assert.Equal(t, referencePow(three, e), floatEntry(scale.Three, e), "3^%d", e)
	}
}
