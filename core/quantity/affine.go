package quantity

import (
	"github.com/shopspring/decimal"

	"dimscale/core/conversion"
	"dimscale/core/dimension"
	errs "dimscale/core/errors"
	"dimscale/core/numeric"
	"dimscale/core/scale"
)

// AffineAxis is the only axis whose pure signature may carry an affine offset
const AffineAxis = dimension.Temperature

// AffineOffset is the zero point of an affine unit. A value v stored at scale S
// denotes the linear value v + Offset, where Offset is expressed in Reference
// and converted into S.
type AffineOffset struct {
	Offset    decimal.Decimal
	Reference scale.Signature
}

// NewOffset builds an offset from decimal text such as "273.15"
func NewOffset(offset string, reference scale.Signature) (AffineOffset, error) {
	d, err := decimal.NewFromString(offset)
	if err != nil {
		return AffineOffset{}, errs.Wrap(errs.TypeInput, "invalid affine offset "+offset, err)
	}
	return AffineOffset{Offset: d, Reference: reference}, nil
}

// Equal reports whether two offsets define the same affine family
func (a AffineOffset) Equal(o AffineOffset) bool {
	return a.Offset.Equal(o.Offset) && a.Reference == o.Reference
}

// String renders the offset as "+273.15@1"
func (a AffineOffset) String() string {
	sign := "+"
	if a.Offset.IsNegative() {
		sign = ""
	}
	return sign + a.Offset.String() + "@" + a.Reference.String()
}

// AffineAllowed reports whether a dimension may carry an affine offset
func AffineAllowed(dim dimension.Signature) bool {
	return dim.IsPureAxis(AffineAxis)
}

// offsetIn expresses the offset at scale sc for a value of the given storage.
// Integer and decimal values follow mode, so an offset that does not terminate
// at sc is PRECISION_LOSS unless Lossy; float values are rounded anyway.
func (a AffineOffset) offsetIn(sc scale.Signature, storage numeric.Storage, mode numeric.Mode) (decimal.Decimal, error) {
	if storage == numeric.Float {
		mode = numeric.Lossy
	}
	v, err := conversion.Apply(numeric.FromDecimal(a.Offset), a.Reference, sc, mode)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return v.Decimal(), nil
}

// Linearize returns the linear (absolute) form of an affine quantity at the same
// scale. Linear quantities are returned unchanged.
func Linearize(q Quantity, mode numeric.Mode) (Quantity, error) {
	if !q.hasAffine {
		return q, nil
	}
	off, err := q.affine.offsetIn(q.scale, q.value.Storage(), mode)
	if err != nil {
		return Quantity{}, err
	}
	v, err := q.value.AddDecimal(off, mode)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{value: v, dim: q.dim, scale: q.scale}, nil
}

// ToAffine expresses a linear quantity on the affine scale defined by off, keeping its scale.
func ToAffine(q Quantity, off AffineOffset, mode numeric.Mode) (Quantity, error) {
	if q.hasAffine {
		return Quantity{}, errs.AffineCombinationInvalid("to affine")
	}
	if !AffineAllowed(q.dim) {
		return Quantity{}, errs.Newf(errs.TypeAffineCombinationInvalid,
			"quantity: dimension %s cannot carry an affine offset", q.dim)
	}
	d, err := off.offsetIn(q.scale, q.value.Storage(), mode)
	if err != nil {
		return Quantity{}, err
	}
	v, err := q.value.AddDecimal(d.Neg(), mode)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{value: v, dim: q.dim, scale: q.scale, affine: off, hasAffine: true}, nil
}

// ConvertAffine moves q onto another affine family at the target scale, e.g.
// fahrenheit to celsius: linearize, rescale, then apply the target offset.
func ConvertAffine(q Quantity, target scale.Signature, off AffineOffset, mode numeric.Mode) (Quantity, error) {
	lin, err := Rescale(q, target, mode)
	if err != nil {
		return Quantity{}, err
	}
	return ToAffine(lin, off, mode)
}
