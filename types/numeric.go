package types

import (
	"math"
	"strconv"

	"github.com/cockroachdb/errors"
)

var _ Value = NewNumericValue(0)

type NumericValue float64

// NewNumericValue returns a floating point numeric value.
func NewNumericValue(x float64) NumericValue {
	return NumericValue(x)
}

func (v NumericValue) V() any {
	return float64(v)
}

func (v NumericValue) Type() Type {
	return TypeNumeric
}

func (v NumericValue) String() string {
	f := float64(v)
	abs := math.Abs(f)
	fmt := byte('f')
	if abs != 0 {
		if abs < 1e-6 || abs >= 1e15 {
			fmt = 'e'
		}
	}

	return strconv.FormatFloat(f, fmt, -1, 64)
}

func (v NumericValue) MarshalJSON() ([]byte, error) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, errors.Errorf("cannot encode %v as json", f)
	}

	return []byte(v.String()), nil
}

func (v NumericValue) CastAs(target Type) (Value, error) {
	switch target {
	case TypeNumeric:
		return v, nil
	case TypeInteger:
		f := math.Trunc(float64(v))
		if math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
			return nil, errors.New("integer out of range")
		}
		return NewIntegerValue(int64(f)), nil
	case TypeBoolean:
		return NewBooleanValue(v != 0), nil
	case TypeText:
		return NewTextValue(v.String()), nil
	}

	return nil, errors.Errorf("cannot cast %s as %s", v.Type(), target)
}
