package preferences

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dimscale/core/dimension"
	errs "dimscale/core/errors"
	"dimscale/core/numeric"
	"dimscale/core/quantity"
	"dimscale/core/scale"
	"dimscale/core/units"
)

func lit(t *testing.T, text string) units.Literal {
	t.Helper()
	l, err := units.Lookup(text)
	require.NoError(t, err)
	return l
}

func precision(t *testing.T) Scope {
	t.Helper()
	s := Scope{Name: "precision"}
	var err error
	for _, text := range []string{"mm", "g", "ms"} {
		s, err = s.PreferUnit(lit(t, text))
		require.NoError(t, err)
	}
	return s
}

// TestLift derives preferred scales of compound dimensions from the axes
func TestLift(t *testing.T) {
	s := precision(t)

	tests := []struct {
		name string
		dim  dimension.Signature
		want scale.Signature
	}{
		{"dimensionless", dimension.Dimensionless, scale.Unity},
		{"length", dimension.MustOf(dimension.Length, 1), scale.Must(scale.Pow10(-3))},
		{"area", dimension.MustOf(dimension.Length, 2), scale.Must(scale.Pow10(-6))},
		{"velocity", dimension.Must(0, 1, -1), scale.Unity},
		{"force", dimension.Must(1, 1, -2), scale.Unity},
		{"frequency", dimension.Must(0, 0, -1), scale.Must(scale.Pow10(3))},
		{"current keeps unity", dimension.MustOf(dimension.Current, 1), scale.Unity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Lift(tt.dim)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	big := Default().Prefer(dimension.Length, scale.Must(scale.Pow10(30)))
	_, err := big.Lift(dimension.MustOf(dimension.Length, 2))
	assert.True(t, errs.IsType(err, errs.TypeOverflow))
}

// TestPreferUnit accepts only pure base axis storage units
func TestPreferUnit(t *testing.T) {
	s := Default()

	got, err := s.PreferUnit(lit(t, "km"))
	require.NoError(t, err)
	assert.Equal(t, scale.Must(scale.Pow10(3)), got.Preferred(dimension.Length))
	assert.Equal(t, scale.Unity, s.Preferred(dimension.Length), "receiver is not modified")

	got, err = s.PreferUnit(lit(t, "degR"))
	require.NoError(t, err)
	assert.Equal(t, scale.Must(scale.Of(0, -2, 1, 0, 0)), got.Preferred(dimension.Temperature))

	tests := []struct {
		text    string
		errType errs.Type
	}{
		{"N", errs.TypeDimensionMismatch},
		{"Hz", errs.TypeDimensionMismatch},
		{"in", errs.TypeInput},
		{"degC", errs.TypeInput},
		{"degF", errs.TypeInput},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			_, err := s.PreferUnit(lit(t, tt.text))
			assert.True(t, errs.IsType(err, tt.errType), "got %v", err)
		})
	}
}

// TestDeclare stores literals at the scope's preferred scale
func TestDeclare(t *testing.T) {
	s := precision(t)

	q, err := s.Declare(numeric.FromInt(1), lit(t, "km"), numeric.Exact)
	require.NoError(t, err)
	assert.Equal(t, "1000000", q.Value().String())
	assert.Equal(t, scale.Must(scale.Pow10(-3)), q.Scale())

	q, err = s.Declare(numeric.FromDecimal(decimal.RequireFromString("2.5")), lit(t, "kN"), numeric.Exact)
	require.NoError(t, err)
	assert.Equal(t, "2500", q.Value().String())
	assert.True(t, q.Scale().IsUnity())

	q, err = Default().Declare(numeric.FromDecimal(decimal.RequireFromString("20")), lit(t, "degC"), numeric.Exact)
	require.NoError(t, err)
	assert.False(t, q.IsAffine())
	assert.Equal(t, "293.15", q.Value().String())

	_, err = s.Declare(numeric.FromInt(1), lit(t, "s"), numeric.Exact)
	require.NoError(t, err)

	_, err = s.Declare(numeric.FromInt(1), lit(t, "µm"), numeric.Exact)
	assert.True(t, errs.IsType(err, errs.TypePrecisionLoss))

	q, err = s.Declare(numeric.FromInt(1500), lit(t, "µm"), numeric.Lossy)
	require.NoError(t, err)
	assert.Equal(t, "1", q.Value().String())
}

// TestStoreUnchanged returns quantities already at the preferred scale as is
func TestStoreUnchanged(t *testing.T) {
	q := quantity.Int(7, dimension.MustOf(dimension.Length, 1), scale.Must(scale.Pow10(-3)))
	got, err := precision(t).Store(q, numeric.Exact)
	require.NoError(t, err)
	assert.True(t, q.Equal(got))
}
