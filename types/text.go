package types

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-json-experiment/json"
)

var _ Value = NewTextValue("")

type TextValue string

// NewTextValue returns a character value.
func NewTextValue(x string) TextValue {
	return TextValue(x)
}

func (v TextValue) V() any {
	return string(v)
}

func (v TextValue) Type() Type {
	return TypeText
}

func (v TextValue) String() string {
	return string(v)
}

func (v TextValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(v))
}

func (v TextValue) CastAs(target Type) (Value, error) {
	s := strings.TrimSpace(string(v))

	switch target {
	case TypeText:
		return v, nil
	case TypeNumeric:
		if s == "" {
			return NewNumericValue(0), nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot cast %q as numeric", s)
		}
		return NewNumericValue(f), nil
	case TypeInteger:
		if s == "" {
			return NewIntegerValue(0), nil
		}
		i, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			return NewIntegerValue(i), nil
		}

		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return nil, errors.Wrapf(err, "cannot cast %q as integer", s)
		}
		iv, err := NewNumericValue(f).CastAs(TypeInteger)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot cast %q as integer", s)
		}
		return iv, nil
	case TypeBoolean:
		switch strings.ToLower(s) {
		case "1", "t", "true", "y", "yes", "on":
			return NewBooleanValue(true), nil
		case "0", "f", "false", "n", "no", "off", "", "?":
			return NewBooleanValue(false), nil
		}

		return nil, errors.Errorf("cannot cast %q as boolean", s)
	case TypeDate:
		if s == "" {
			return NewNullValue(), nil
		}
		t, err := ParseDate(s)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot cast %q as date", s)
		}
		return NewDateValue(t), nil
	}

	return nil, errors.Errorf("cannot cast %s as %s", v.Type(), target)
}
