package dbutil

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/chaisql/dbfgrid/record"
	"github.com/chaisql/dbfgrid/types"
	"github.com/cockroachdb/errors"
)

// An Assignment sets a column to a value.
type Assignment struct {
	Column int
	Value  types.Value
}

// ParseAssignments parses a list of name=value pairs against a schema.
// Values are passed as text and converted by the store. An empty value
// or NULL sets the field to null.
func ParseAssignments(schema record.Schema, pairs []string) ([]Assignment, error) {
	as := make([]Assignment, 0, len(pairs))

	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok {
			return nil, errors.Errorf("invalid assignment %q, expected name=value", p)
		}

		name = strings.TrimSpace(name)
		col := schema.IndexOf(name)
		if col < 0 {
			return nil, unknownField(schema, name)
		}

		var v types.Value = types.NewTextValue(value)
		if value == "" || strings.EqualFold(value, "null") {
			v = types.NewNullValue()
		}

		as = append(as, Assignment{Column: col, Value: v})
	}

	return as, nil
}

func shouldSuggest(field, in string) bool {
	// the input should be at least half the field name to get a suggestion.
	d := levenshtein.ComputeDistance(strings.ToUpper(field), strings.ToUpper(in))
	return d <= len(field)/2
}

// Suggestions returns the fields whose name is close to in.
func Suggestions(schema record.Schema, in string) []string {
	var names []string
	for _, f := range schema.Fields {
		if shouldSuggest(f.Name, in) {
			names = append(names, f.Name)
		}
	}

	return names
}

func unknownField(schema record.Schema, name string) error {
	err := errors.Errorf("unknown field %q", name)

	if s := Suggestions(schema, name); len(s) > 0 {
		return errors.WithHintf(err, "did you mean: %s", strings.Join(s, ", "))
	}

	return err
}

// FieldIndex returns the column of the named field, with suggestions
// when it doesn't exist.
func FieldIndex(schema record.Schema, name string) (int, error) {
	col := schema.IndexOf(name)
	if col < 0 {
		return -1, unknownField(schema, name)
	}

	return col, nil
}
