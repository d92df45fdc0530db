package types

import (
	"strconv"

	"github.com/cockroachdb/errors"
)

var _ Value = NewBooleanValue(false)

type BooleanValue bool

// NewBooleanValue returns a logical value.
func NewBooleanValue(x bool) BooleanValue {
	return BooleanValue(x)
}

func (v BooleanValue) V() any {
	return bool(v)
}

func (v BooleanValue) Type() Type {
	return TypeBoolean
}

func (v BooleanValue) String() string {
	return strconv.FormatBool(bool(v))
}

func (v BooleanValue) MarshalJSON() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v BooleanValue) CastAs(target Type) (Value, error) {
	switch target {
	case TypeBoolean:
		return v, nil
	case TypeInteger:
		if v {
			return NewIntegerValue(1), nil
		}
		return NewIntegerValue(0), nil
	case TypeText:
		if v {
			return NewTextValue("T"), nil
		}
		return NewTextValue("F"), nil
	}

	return nil, errors.Errorf("cannot cast %s as %s", v.Type(), target)
}
