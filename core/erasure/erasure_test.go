package erasure

import (
	"math"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dimscale/core/coherence"
	"dimscale/core/conversion"
	"dimscale/core/dimension"
	errs "dimscale/core/errors"
	"dimscale/core/numeric"
	"dimscale/core/quantity"
	"dimscale/core/scale"
)

var (
	length = dimension.MustOf(dimension.Length, 1)
	angle  = dimension.MustOf(dimension.Angle, 1)
	milli  = scale.Must(scale.Pow10(-3))
	degree = scale.Must(scale.Of(-2, -2, -1, 0, 1))
	turn   = scale.Must(scale.Of(1, 0, 0, 0, 1))
)

// TestEraseRatio erases 1 m / 1 mm to 1000
func TestEraseRatio(t *testing.T) {
	c := coherence.NewChecker()
	ratio, err := c.Div(quantity.Float(1, length, scale.Unity), quantity.Float(1, length, milli))
	require.NoError(t, err)
	require.True(t, ratio.Dimension().IsDimensionless())

	v, err := EraseFloat(ratio)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, v)

	iratio, err := c.Div(quantity.Int(1, length, scale.Unity), quantity.Int(1, length, milli))
	require.NoError(t, err)
	iv, err := Erase(iratio, numeric.Exact)
	require.NoError(t, err)
	assert.Equal(t, "1000", iv.String())
}

// TestEraseFloatKeepsFraction checks that integer storage is not truncated
func TestEraseFloatKeepsFraction(t *testing.T) {
	tests := []struct {
		name string
		q    quantity.Quantity
		want float64
	}{
		{"one milli", quantity.Int(1, dimension.Dimensionless, milli), 0.001},
		{"1500 milli", quantity.Int(1500, dimension.Dimensionless, milli), 1.5},
		{"one degree", quantity.Int(1, angle, degree), math.Pi / 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := EraseFloat(tt.q)
			require.NoError(t, err)
			assert.InEpsilon(t, tt.want, v, 1e-14)
		})
	}

	_, err := Erase(quantity.Int(1, dimension.Dimensionless, milli), numeric.Exact)
	assert.True(t, errs.IsType(err, errs.TypePrecisionLoss))

	_, err = EraseFloat(quantity.Int(1, length, milli))
	assert.True(t, errs.IsType(err, errs.TypeDimensionMismatch))
}

// TestEraseProperty checks erase(q) == q.value * F for dimensionless q
func TestEraseProperty(t *testing.T) {
	f := fuzz.NewWithSeed(5).NilChance(0).Funcs(
		func(s *scale.Signature, c fuzz.Continue) {
			*s = scale.Must(scale.Of(c.Intn(9)-4, c.Intn(5)-2, c.Intn(9)-4, c.Intn(13)-6, c.Intn(3)-1))
		},
	)
	for i := 0; i < 500; i++ {
		var sc scale.Signature
		f.Fuzz(&sc)
		q := quantity.Float(2.5, dimension.Dimensionless, sc)
		v, err := EraseFloat(q)
		require.NoError(t, err)
		assert.InEpsilon(t, 2.5*conversion.Factor(sc, scale.Unity), v, 1e-12, "%s", sc)
	}
}

// TestEraseAngles converts pure angles to radians
func TestEraseAngles(t *testing.T) {
	tests := []struct {
		name string
		q    quantity.Quantity
		want float64
	}{
		{"radian", quantity.Float(1, angle, scale.Unity), 1},
		{"half turn in degrees", quantity.Float(180, angle, degree), math.Pi},
		{"turn", quantity.Float(1, angle, turn), 2 * math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := EraseFloat(tt.q)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, v, 1e-12)
		})
	}

	_, err := Erase(quantity.Int(180, angle, degree), numeric.Exact)
	assert.True(t, errs.IsType(err, errs.TypePrecisionLoss))
}

// TestEraseRejects checks that dimensioned quantities cannot be erased
func TestEraseRejects(t *testing.T) {
	_, err := Erase(quantity.Float(1, length, scale.Unity), numeric.Exact)
	assert.True(t, errs.IsType(err, errs.TypeDimensionMismatch))

	_, err = Reference(dimension.MustOf(dimension.Angle, 2))
	assert.True(t, errs.IsType(err, errs.TypeDimensionMismatch))

	ref, err := Reference(angle)
	require.NoError(t, err)
	assert.True(t, ref.IsUnity())
}

// TestEraseAngleCompound drops the angle axis of an angular velocity
func TestEraseAngleCompound(t *testing.T) {
	perSecond := dimension.Must(0, 0, -1, 0, 0, 0, 0, 1)
	rpmScale := scale.Must(turn.Div(scale.Must(scale.Of(2, 1, 1, 0, 0))))

	q := quantity.Float(60, perSecond, rpmScale)
	got, err := EraseAngle(q, numeric.Exact)
	require.NoError(t, err)

	assert.Equal(t, dimension.Must(0, 0, -1), got.Dimension())
	assert.False(t, got.Scale().HasPi())

	hz, err := quantity.Rescale(got, scale.Unity, numeric.Exact)
	require.NoError(t, err)
	assert.InDelta(t, 2*math.Pi, hz.Value().Float64(), 1e-12)

	same, err := EraseAngle(quantity.Float(1, length, milli), numeric.Exact)
	require.NoError(t, err)
	assert.Equal(t, milli, same.Scale())

	pure, err := EraseAngle(quantity.Float(180, angle, degree), numeric.Exact)
	require.NoError(t, err)
	assert.True(t, pure.Dimension().IsDimensionless())
	assert.InDelta(t, math.Pi, pure.Value().Float64(), 1e-12)
}
