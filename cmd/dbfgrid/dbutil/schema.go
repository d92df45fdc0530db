package dbutil

import (
	"strconv"
	"strings"

	"github.com/chaisql/dbfgrid/record"
	"github.com/chaisql/dbfgrid/types"
	"github.com/cockroachdb/errors"
)

// ParseField parses a field definition of the form name:type[:length[.decimals]].
// Types can be given by name or by their dBase letter.
func ParseField(def string) (record.Field, error) {
	parts := strings.Split(def, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return record.Field{}, errors.Errorf("invalid field %q, expected name:type[:length[.decimals]]", def)
	}

	f := record.Field{Name: strings.TrimSpace(parts[0])}

	tp, err := types.ParseType(strings.TrimSpace(parts[1]))
	if err != nil {
		return record.Field{}, errors.Wrapf(err, "field %q", f.Name)
	}
	f.Type = tp

	if len(parts) == 3 {
		length, decimals, _ := strings.Cut(parts[2], ".")
		f.Length, err = strconv.Atoi(length)
		if err != nil || f.Length <= 0 {
			return record.Field{}, errors.Errorf("field %q: invalid length %q", f.Name, length)
		}

		if decimals != "" {
			f.Decimals, err = strconv.Atoi(decimals)
			if err != nil || f.Decimals < 0 || f.Decimals >= f.Length {
				return record.Field{}, errors.Errorf("field %q: invalid decimals %q", f.Name, decimals)
			}
		}
	}

	return f, nil
}

// ParseSchema parses a list of field definitions.
func ParseSchema(defs []string) (record.Schema, error) {
	if len(defs) == 0 {
		return record.Schema{}, errors.New("a table needs at least one field")
	}

	fields := make([]record.Field, len(defs))
	for i, def := range defs {
		f, err := ParseField(def)
		if err != nil {
			return record.Schema{}, err
		}
		fields[i] = f
	}

	return record.NewSchema(fields...)
}

// FormatField returns the definition of f, as understood by ParseField.
func FormatField(f record.Field) string {
	var sb strings.Builder

	sb.WriteString(f.Name)
	sb.WriteByte(':')
	sb.WriteString(f.Type.String())
	if f.Length > 0 {
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(f.Length))
		if f.Decimals > 0 {
			sb.WriteByte('.')
			sb.WriteString(strconv.Itoa(f.Decimals))
		}
	}

	return sb.String()
}
