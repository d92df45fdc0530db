// Package record defines the physical records exchanged between a store and
// the table cache.
package record

import (
	"strings"

	"github.com/chaisql/dbfgrid/types"
	"golang.org/x/exp/slices"
)

// A Record is a snapshot of one physical row of a store.
type Record struct {
	// Index is the physical position of the record in the store.
	Index   int
	Deleted bool
	Values  []types.Value
}

// Len returns the number of values.
func (r Record) Len() int {
	return len(r.Values)
}

// Value returns the i-th value, or NULL if i is out of range.
func (r Record) Value(i int) types.Value {
	if i < 0 || i >= len(r.Values) || r.Values[i] == nil {
		return types.NewNullValue()
	}

	return r.Values[i]
}

// SetValue replaces the i-th value. It does nothing if i is out of range.
func (r *Record) SetValue(i int, v types.Value) {
	if i < 0 || i >= len(r.Values) {
		return
	}

	r.Values[i] = v
}

// Clone returns a copy of r that shares nothing mutable with it.
func (r Record) Clone() Record {
	c := r
	c.Values = slices.Clone(r.Values)
	return c
}

func (r Record) String() string {
	var sb strings.Builder

	if r.Deleted {
		sb.WriteByte('*')
	}
	sb.WriteByte('{')
	for i := range r.Values {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(r.Value(i).String())
	}
	sb.WriteByte('}')

	return sb.String()
}
