// Package memstore implements an in-memory store.
//
// Data survives Close and Open cycles of the same Store value, which makes it
// suitable for tests and for throwaway tables. It also allows injecting
// failures into the write path.
package memstore

import (
	"time"

	"github.com/RoaringBitmap/roaring"
	"github.com/chaisql/dbfgrid/record"
	"github.com/chaisql/dbfgrid/store"
	"github.com/chaisql/dbfgrid/types"
	"github.com/cockroachdb/errors"
)

var _ store.Store = (*Store)(nil)

// ErrInjected is the cause of failures triggered by the Fail* methods.
var ErrInjected = errors.Mark(errors.New("injected failure"), store.ErrIO)

// Store is an in-memory store.
type Store struct {
	schema  record.Schema
	rows    [][]types.Value
	deleted *roaring.Bitmap
	updated time.Time

	open bool
	mode store.Mode
	pos  int
	err  error

	appendBudget int
	failDelete   map[int]struct{}
	failSeek     bool
	failWrites   bool
}

// New creates a closed store with the given schema and no records.
func New(schema record.Schema) *Store {
	return &Store{
		schema:       schema,
		deleted:      roaring.New(),
		updated:      today(),
		pos:          store.BeforeFirst,
		appendBudget: -1,
		failDelete:   make(map[int]struct{}),
	}
}

// Add appends a record regardless of the mode and returns its physical index.
// Missing values are blank, extra values are ignored.
func (s *Store) Add(deleted bool, values ...types.Value) int {
	r := s.schema.Blank(len(s.rows))
	copy(r.Values, values)

	s.rows = append(s.rows, r.Values)
	if deleted {
		s.deleted.Add(uint32(r.Index))
	}

	return r.Index
}

// DeletedCount returns the number of records flagged as deleted.
func (s *Store) DeletedCount() int {
	return int(s.deleted.GetCardinality())
}

// FailAppendAfter makes Append fail once n more records were appended.
// A negative n disables the failure.
func (s *Store) FailAppendAfter(n int) {
	s.appendBudget = n
}

// FailDeleteAt makes MarkDeleted fail for the given physical index.
func (s *Store) FailDeleteAt(index int) {
	s.failDelete[index] = struct{}{}
}

// FailSeek makes every Seek fail while on is true.
func (s *Store) FailSeek(on bool) {
	s.failSeek = on
}

// FailWrites makes every SetValue fail while on is true.
func (s *Store) FailWrites(on bool) {
	s.failWrites = on
}

func (s *Store) Open(path string, mode store.Mode) error {
	if mode != store.ReadOnly && mode != store.ReadWrite {
		return errors.Errorf("invalid mode %d", mode)
	}

	s.open = true
	s.mode = mode
	s.pos = store.BeforeFirst
	s.err = nil
	return nil
}

func (s *Store) Close() error {
	s.open = false
	s.pos = store.BeforeFirst
	return nil
}

func (s *Store) IsOpen() bool {
	return s.open
}

func (s *Store) Schema() record.Schema {
	return s.schema
}

func (s *Store) PhysicalCount() int {
	if !s.open {
		return 0
	}

	return len(s.rows)
}

func (s *Store) Seek(index int) bool {
	if !s.check(false) {
		return false
	}
	if s.failSeek {
		s.err = errors.WithStack(ErrInjected)
		return false
	}
	if index < store.BeforeFirst || index >= len(s.rows) {
		s.err = errors.Wrapf(store.ErrOutOfBounds, "seek %d", index)
		return false
	}

	s.pos = index
	return true
}

func (s *Store) At() int {
	return s.pos
}

func (s *Store) Next() bool {
	if !s.check(false) {
		return false
	}
	if s.pos+1 >= len(s.rows) {
		return false
	}

	s.pos++
	return true
}

func (s *Store) Record() record.Record {
	if !s.open || s.pos < 0 || s.pos >= len(s.rows) {
		return record.Record{Index: s.pos}
	}

	r := record.Record{
		Index:   s.pos,
		Deleted: s.deleted.Contains(uint32(s.pos)),
		Values:  s.rows[s.pos],
	}
	return r.Clone()
}

func (s *Store) Append() bool {
	if !s.check(true) {
		return false
	}
	if s.appendBudget == 0 {
		s.err = errors.WithStack(ErrInjected)
		return false
	}
	if s.appendBudget > 0 {
		s.appendBudget--
	}

	s.rows = append(s.rows, s.schema.Blank(len(s.rows)).Values)
	s.touch()
	return true
}

func (s *Store) MarkDeleted(index int) bool {
	if !s.check(true) {
		return false
	}
	if index < 0 || index >= len(s.rows) {
		s.err = errors.Wrapf(store.ErrOutOfBounds, "delete %d", index)
		return false
	}
	if _, ok := s.failDelete[index]; ok {
		s.err = errors.WithStack(ErrInjected)
		return false
	}

	s.deleted.Add(uint32(index))
	s.touch()
	return true
}

func (s *Store) SetValue(column int, v types.Value) bool {
	if !s.check(true) {
		return false
	}
	if s.pos < 0 || s.pos >= len(s.rows) || column < 0 || column >= s.schema.Len() {
		s.err = errors.Wrapf(store.ErrOutOfBounds, "set column %d of record %d", column, s.pos)
		return false
	}
	if s.failWrites {
		s.err = errors.WithStack(ErrInjected)
		return false
	}

	cv, err := s.schema.Convert(column, v)
	if err != nil {
		s.err = errors.Mark(err, store.ErrTypeMismatch)
		return false
	}

	s.rows[s.pos][column] = cv
	s.touch()
	return true
}

func (s *Store) LastUpdate() time.Time {
	return s.updated
}

func (s *Store) Err() error {
	return s.err
}

// check resets the last error and makes sure the store can serve the call.
func (s *Store) check(write bool) bool {
	s.err = nil

	if !s.open {
		s.err = errors.WithStack(store.ErrNotOpen)
		return false
	}
	if write && s.mode == store.ReadOnly {
		s.err = errors.WithStack(store.ErrReadOnly)
		return false
	}

	return true
}

func (s *Store) touch() {
	s.updated = today()
}

func today() time.Time {
	return time.Time(types.NewDateValue(time.Now()))
}
