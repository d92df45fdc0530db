// Package store defines the physical record storage consumed by tables.
//
// A Store exposes a file of fixed-schema records addressed by their physical
// index, with a single cursor. Records are never physically removed: deletion
// only flags them. Implementations are not safe for concurrent use.
package store

import (
	"time"

	"github.com/chaisql/dbfgrid/record"
	"github.com/chaisql/dbfgrid/types"
	"github.com/cockroachdb/errors"
)

// Common errors returned by Store implementations through Err.
var (
	// ErrNotOpen is returned when calling a method that requires an open store.
	ErrNotOpen = errors.New("store is not open")

	// ErrReadOnly is returned when attempting to write to a store opened read-only.
	ErrReadOnly = errors.New("store is read-only")

	// ErrOutOfBounds is returned when a physical index or a column doesn't exist.
	ErrOutOfBounds = errors.New("index out of bounds")

	// ErrTypeMismatch is returned when a value cannot be stored in a field.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrCorrupted is returned when stored data cannot be decoded.
	ErrCorrupted = errors.New("corrupted store")

	// ErrIO is returned when the underlying storage fails.
	ErrIO = errors.New("i/o error")
)

// Mode is the mode a store is opened with.
type Mode uint8

const (
	ReadOnly Mode = iota + 1
	ReadWrite
)

func (m Mode) String() string {
	switch m {
	case ReadOnly:
		return "read-only"
	case ReadWrite:
		return "read-write"
	}

	return "unknown"
}

// BeforeFirst is the cursor position of a freshly opened store.
const BeforeFirst = -1

// Store is a physical record store with sequential cursor semantics.
//
// Methods returning a bool report failure with false; the reason is then
// available through Err until the next call.
type Store interface {
	Open(path string, mode Mode) error
	Close() error
	IsOpen() bool

	// Schema returns the fields of the store. It doesn't change while the store is open.
	Schema() record.Schema
	// PhysicalCount returns the number of records, including deleted ones.
	PhysicalCount() int

	// Seek moves the cursor to the given physical index. BeforeFirst is valid.
	Seek(index int) bool
	// At returns the cursor position.
	At() int
	// Next moves the cursor forward. It returns false, without moving,
	// when the cursor is on the last record.
	Next() bool
	// Record returns a snapshot of the record under the cursor.
	Record() record.Record

	// Append adds a blank record at the end of the store.
	Append() bool
	// MarkDeleted flags the record at the given physical index as deleted.
	MarkDeleted(index int) bool
	// SetValue writes the value of a column of the record under the cursor.
	// The value is converted to the type of the field.
	SetValue(column int, v types.Value) bool

	LastUpdate() time.Time
	Err() error
}
