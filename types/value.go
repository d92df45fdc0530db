package types

import (
	"time"

	"github.com/cockroachdb/errors"
)

func AsString(v Value) string {
	tv, ok := v.(TextValue)
	if !ok {
		return v.V().(string)
	}

	return string(tv)
}

func AsFloat64(v Value) float64 {
	switch x := v.(type) {
	case NumericValue:
		return float64(x)
	case IntegerValue:
		return float64(x)
	}

	return v.V().(float64)
}

func AsInt64(v Value) int64 {
	iv, ok := v.(IntegerValue)
	if !ok {
		return v.V().(int64)
	}

	return int64(iv)
}

func AsBool(v Value) bool {
	return v.V().(bool)
}

func AsTime(v Value) time.Time {
	dv, ok := v.(DateValue)
	if !ok {
		return v.V().(time.Time)
	}

	return time.Time(dv)
}

func IsNull(v Value) bool {
	return v == nil || v.Type() == TypeNull
}

// NewValue turns a Go value into a Value.
func NewValue(x any) (Value, error) {
	switch v := x.(type) {
	case nil:
		return NewNullValue(), nil
	case Value:
		return v, nil
	case string:
		return NewTextValue(v), nil
	case float64:
		return NewNumericValue(v), nil
	case float32:
		return NewNumericValue(float64(v)), nil
	case int:
		return NewIntegerValue(int64(v)), nil
	case int32:
		return NewIntegerValue(int64(v)), nil
	case int64:
		return NewIntegerValue(v), nil
	case bool:
		return NewBooleanValue(v), nil
	case time.Time:
		return NewDateValue(v), nil
	}

	return nil, errors.Errorf("unsupported value type %T", x)
}

// Equal reports whether a and b have the same type and content.
func Equal(a, b Value) bool {
	if IsNull(a) || IsNull(b) {
		return IsNull(a) && IsNull(b)
	}
	if a.Type() != b.Type() {
		return false
	}
	if a.Type() == TypeDate {
		return AsTime(a).Equal(AsTime(b))
	}

	return a.V() == b.V()
}
