package dbfgrid

import (
	"github.com/chaisql/dbfgrid/internal/cache"
	"github.com/cockroachdb/errors"
)

var (
	// ErrNotOpen is returned when calling a method that requires an open table.
	ErrNotOpen = errors.New("table is not open")

	// ErrReadOnly is returned when attempting to modify a table opened read-only.
	ErrReadOnly = errors.New("table is read-only")

	// ErrOutOfRange is returned when a row or a column is beyond the loaded rows.
	ErrOutOfRange = cache.ErrOutOfRange

	// ErrInvalidPosition is returned when inserting rows anywhere but at the end of the table.
	ErrInvalidPosition = errors.New("rows can be inserted only at the end of the table")

	// ErrInvalidRange is returned when a range of rows is empty or outside of the loaded rows.
	ErrInvalidRange = cache.ErrInvalidRange

	// ErrSeekFailed is returned when the store cannot move to a record.
	ErrSeekFailed = errors.New("seek failed")

	// ErrWriteFailed is returned when the store rejects a write.
	ErrWriteFailed = errors.New("write failed")

	// ErrAppendFailed is returned when the store cannot append a record.
	ErrAppendFailed = errors.New("append failed")

	// ErrStoreClosed is returned when the store was closed during an operation.
	ErrStoreClosed = errors.New("store closed")
)

// storeError builds an error of the given kind from the last store error.
// The result matches both kind and the store cause with errors.Is.
func (m *Model) storeError(kind error, format string, args ...any) error {
	if !m.store.IsOpen() {
		kind = ErrStoreClosed
	}

	cause := m.store.Err()
	if cause == nil {
		return errors.Wrapf(kind, format, args...)
	}

	err := errors.Wrapf(cause, format, args...)
	return errors.Mark(errors.Wrap(err, kind.Error()), kind)
}
