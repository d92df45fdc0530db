package dbfgrid

import (
	"github.com/chaisql/dbfgrid/types"
	"github.com/cockroachdb/errors"
)

// HeaderRole identifies the kind of header data.
type HeaderRole uint8

const (
	// DisplayRole is the text shown in a header.
	DisplayRole HeaderRole = iota
	// EditRole is the text shown when editing a header.
	EditRole
	// ToolTipRole is the help text of a header.
	ToolTipRole
)

// SetHeaderData overrides the header of a column for the given role.
// Headers are discarded when the table is closed.
func (m *Model) SetHeaderData(column int, role HeaderRole, v any) error {
	if column < 0 || column >= m.ColumnCount() {
		return errors.Wrapf(ErrOutOfRange, "column %d", column)
	}

	if m.headers == nil {
		m.headers = make(map[int]map[HeaderRole]any)
	}
	if m.headers[column] == nil {
		m.headers[column] = make(map[HeaderRole]any)
	}

	m.headers[column][role] = v
	return nil
}

// HeaderData returns the header of a column for the given role, or nil.
// The display header falls back to the edit header, then to the field name.
func (m *Model) HeaderData(column int, role HeaderRole) any {
	v, ok := m.headers[column][role]
	if !ok && role == DisplayRole {
		v, ok = m.headers[column][EditRole]
	}
	if ok {
		return v
	}

	if role != DisplayRole {
		return nil
	}
	if column >= 0 && column < m.ColumnCount() {
		return m.schema.FieldName(column)
	}

	return column + 1
}

// RowHeader returns the header of a row, numbered from 1.
func (m *Model) RowHeader(row int) int {
	return row + 1
}

// Flags describes how a cell can be interacted with.
type Flags uint8

const (
	Selectable Flags = 1 << iota
	Enabled
	Editable
	// Tristate is set on boolean cells, which can be true, false or null.
	Tristate
)

// Has reports whether all the flags of f2 are set in f.
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

// Flags returns the flags of a cell.
func (m *Model) Flags(row, column int) Flags {
	f := Selectable | Enabled

	v, err := m.Value(row, column)
	if err != nil {
		return f
	}

	if m.schema.Fields[column].Type == types.TypeBoolean || v.Type() == types.TypeBoolean {
		f |= Tristate
	}
	if !m.readOnly {
		f |= Editable
	}

	return f
}
