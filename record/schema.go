package record

import (
	"strings"

	"github.com/chaisql/dbfgrid/types"
	"github.com/cockroachdb/errors"
)

// A Field describes one column of a table.
type Field struct {
	Name     string     `json:"name"`
	Type     types.Type `json:"type"`
	Length   int        `json:"length"`
	Decimals int        `json:"decimals"`
}

// Schema is the ordered list of fields of a table.
// It is fixed for the lifetime of an open table.
type Schema struct {
	Fields []Field `json:"fields"`
}

// NewSchema creates a schema and validates it.
func NewSchema(fields ...Field) (Schema, error) {
	s := Schema{Fields: fields}
	return s, s.Validate()
}

// Validate makes sure every field has a name, a known type and that
// names are unique.
func (s Schema) Validate() error {
	seen := make(map[string]struct{}, len(s.Fields))

	for i, f := range s.Fields {
		if f.Name == "" {
			return errors.Errorf("field %d has no name", i)
		}
		if f.Type == types.TypeNull || f.Type > types.TypeDate {
			return errors.Errorf("field %q has an invalid type", f.Name)
		}

		k := strings.ToUpper(f.Name)
		if _, ok := seen[k]; ok {
			return errors.Errorf("duplicate field %q", f.Name)
		}
		seen[k] = struct{}{}
	}

	return nil
}

// Len returns the number of fields.
func (s Schema) Len() int {
	return len(s.Fields)
}

// IndexOf returns the position of the field with the given name, or -1.
// Field names are case insensitive.
func (s Schema) IndexOf(name string) int {
	for i, f := range s.Fields {
		if strings.EqualFold(f.Name, name) {
			return i
		}
	}

	return -1
}

func (s Schema) FieldName(i int) string {
	if i < 0 || i >= len(s.Fields) {
		return ""
	}

	return s.Fields[i].Name
}

func (s Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}

	return names
}

// Blank returns a live record with the blank value of every field.
func (s Schema) Blank(index int) Record {
	r := Record{
		Index:  index,
		Values: make([]types.Value, len(s.Fields)),
	}
	for i, f := range s.Fields {
		r.Values[i] = f.Type.Zero()
	}

	return r
}

// Convert casts v to the type of the i-th field.
func (s Schema) Convert(i int, v types.Value) (types.Value, error) {
	if i < 0 || i >= len(s.Fields) {
		return nil, errors.Errorf("field %d out of range", i)
	}
	if types.IsNull(v) {
		return types.NewNullValue(), nil
	}

	f := s.Fields[i]
	cv, err := v.CastAs(f.Type)
	if err != nil {
		return nil, errors.Wrapf(err, "field %q", f.Name)
	}

	if f.Type == types.TypeText && f.Length > 0 {
		if str := types.AsString(cv); len(str) > f.Length {
			return nil, errors.Errorf("field %q: %d characters exceed length %d", f.Name, len(str), f.Length)
		}
	}

	return cv, nil
}
