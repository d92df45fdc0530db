// Package types defines the values held by table cells.
//
// Every column of a table has one declared Type, resolved from the schema
// when a table is opened. A cell holds a Value of that type, or NULL.
package types

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Type represents the declared type of a field.
type Type uint8

// List of supported types.
const (
	// TypeNull denotes the absence of value.
	TypeNull Type = iota
	TypeText
	TypeNumeric
	TypeInteger
	TypeBoolean
	TypeDate
)

func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeText:
		return "text"
	case TypeNumeric:
		return "numeric"
	case TypeInteger:
		return "integer"
	case TypeBoolean:
		return "boolean"
	case TypeDate:
		return "date"
	}

	panic(fmt.Sprintf("unsupported type %#v", t))
}

// Code returns the single letter used by dBase-like formats for this type.
func (t Type) Code() byte {
	switch t {
	case TypeText:
		return 'C'
	case TypeNumeric:
		return 'N'
	case TypeInteger:
		return 'I'
	case TypeBoolean:
		return 'L'
	case TypeDate:
		return 'D'
	}

	return '0'
}

// Zero returns the blank value of a freshly appended record.
func (t Type) Zero() Value {
	switch t {
	case TypeText:
		return NewTextValue("")
	case TypeNumeric:
		return NewNumericValue(0)
	case TypeInteger:
		return NewIntegerValue(0)
	case TypeBoolean:
		return NewBooleanValue(false)
	}

	// blank dates are null, as in dBase files.
	return NewNullValue()
}

// IsNumber returns true if t is either an integer or a numeric.
func (t Type) IsNumber() bool {
	return t == TypeInteger || t == TypeNumeric
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(b []byte) error {
	tp, err := ParseType(string(b))
	if err != nil {
		return err
	}

	*t = tp
	return nil
}

// ParseType parses either a type name or a dBase type letter.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "null":
		return TypeNull, nil
	case "text", "character", "c":
		return TypeText, nil
	case "numeric", "float", "n", "f":
		return TypeNumeric, nil
	case "integer", "int", "i":
		return TypeInteger, nil
	case "boolean", "logical", "bool", "l":
		return TypeBoolean, nil
	case "date", "d":
		return TypeDate, nil
	}

	return TypeNull, errors.Errorf("unknown type %q", s)
}

// A Value is the content of one cell.
type Value interface {
	Type() Type
	// V returns the underlying Go value.
	V() any
	String() string
	MarshalJSON() ([]byte, error)
	CastAs(target Type) (Value, error)
}
