// Package pebblestore implements a persistent store on top of Pebble.
//
// A table is a Pebble database holding one metadata key and one key per
// physical record, addressed by its index. Every write is committed
// synchronously in a single batch, alongside the updated metadata.
package pebblestore

import (
	"time"

	"github.com/chaisql/dbfgrid/record"
	"github.com/chaisql/dbfgrid/store"
	"github.com/chaisql/dbfgrid/types"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/google/uuid"
)

var _ store.Store = (*Store)(nil)

// Options configures how the Pebble database is opened.
type Options struct {
	// FS is the filesystem used by Pebble. Defaults to the OS filesystem.
	FS vfs.FS
}

func (o Options) pebbleOptions(mode store.Mode) *pebble.Options {
	opts := pebble.Options{
		FS:       o.FS,
		ReadOnly: mode == store.ReadOnly,
	}
	if opts.FS == nil {
		opts.FS = vfs.Default
	}

	return &opts
}

// Store is a Pebble backed store.
type Store struct {
	opts Options

	db   *pebble.DB
	mode store.Mode
	meta *meta

	pos int
	cur record.Record
	err error
}

// New returns a closed store. Use Open to load an existing table.
func New(opts Options) *Store {
	return &Store{
		opts: opts,
		pos:  store.BeforeFirst,
	}
}

// Create creates a new empty table at path and opens it in read-write mode.
// It fails if a table already exists there.
func Create(path string, schema record.Schema, opts Options) (*Store, error) {
	err := schema.Validate()
	if err != nil {
		return nil, err
	}

	popts := opts.pebbleOptions(store.ReadWrite)
	popts.ErrorIfExists = true
	db, err := pebble.Open(path, popts)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "cannot create %q", path), store.ErrIO)
	}

	m := newMeta(schema)
	data, err := encodeMeta(&m)
	if err == nil {
		err = db.Set([]byte(metaKey), data, pebble.Sync)
	}
	if err != nil {
		_ = db.Close()
		return nil, errors.Mark(errors.Wrap(err, "cannot write metadata"), store.ErrIO)
	}

	s := New(opts)
	s.db = db
	s.mode = store.ReadWrite
	s.meta = &m
	return s, nil
}

// Open opens an existing table. If the store is already open, it is closed first.
func (s *Store) Open(path string, mode store.Mode) error {
	if mode != store.ReadOnly && mode != store.ReadWrite {
		return errors.Errorf("invalid mode %d", mode)
	}

	if s.db != nil {
		err := s.Close()
		if err != nil {
			return err
		}
	}

	popts := s.opts.pebbleOptions(mode)
	popts.ErrorIfNotExists = true
	db, err := pebble.Open(path, popts)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "cannot open %q", path), store.ErrIO)
	}

	m, err := readMeta(db)
	if err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	s.mode = mode
	s.meta = m
	s.pos = store.BeforeFirst
	s.cur = record.Record{}
	s.err = nil
	return nil
}

func readMeta(db *pebble.DB) (*meta, error) {
	data, closer, err := db.Get([]byte(metaKey))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, errors.Mark(errors.New("missing metadata"), store.ErrCorrupted)
		}

		return nil, errors.Mark(errors.Wrap(err, "cannot read metadata"), store.ErrIO)
	}
	defer closer.Close()

	return decodeMeta(data)
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}

	err := s.db.Close()
	s.db = nil
	s.meta = nil
	s.pos = store.BeforeFirst
	s.cur = record.Record{}
	if err != nil {
		return errors.Mark(errors.Wrap(err, "cannot close store"), store.ErrIO)
	}

	return nil
}

func (s *Store) IsOpen() bool {
	return s.db != nil
}

// ID returns the unique identifier of the table, generated on creation.
func (s *Store) ID() uuid.UUID {
	if s.meta == nil {
		return uuid.Nil
	}

	return s.meta.ID
}

func (s *Store) Schema() record.Schema {
	if s.meta == nil {
		return record.Schema{}
	}

	return s.meta.schema()
}

func (s *Store) PhysicalCount() int {
	if s.meta == nil {
		return 0
	}

	return s.meta.Count
}

func (s *Store) Seek(index int) bool {
	if !s.check(false) {
		return false
	}
	if index < store.BeforeFirst || index >= s.meta.Count {
		s.err = errors.Wrapf(store.ErrOutOfBounds, "seek %d", index)
		return false
	}

	if index == store.BeforeFirst {
		s.pos = index
		s.cur = record.Record{Index: index}
		return true
	}

	return s.load(index)
}

func (s *Store) At() int {
	return s.pos
}

func (s *Store) Next() bool {
	if !s.check(false) {
		return false
	}
	if s.pos+1 >= s.meta.Count {
		return false
	}

	return s.load(s.pos + 1)
}

func (s *Store) Record() record.Record {
	return s.cur.Clone()
}

// load reads the record at index and moves the cursor on it.
func (s *Store) load(index int) bool {
	data, closer, err := s.db.Get(recordKey(index))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			s.err = errors.Mark(errors.Errorf("missing record %d", index), store.ErrCorrupted)
		} else {
			s.err = errors.Mark(errors.Wrapf(err, "cannot read record %d", index), store.ErrIO)
		}
		return false
	}
	defer closer.Close()

	r, err := decodeRecord(s.meta.schema(), index, data)
	if err != nil {
		s.err = err
		return false
	}

	s.pos = index
	s.cur = r
	return true
}

func (s *Store) Append() bool {
	if !s.check(true) {
		return false
	}

	r := s.meta.schema().Blank(s.meta.Count)
	m := *s.meta
	m.Count++
	m.touch()

	return s.write(r, &m)
}

func (s *Store) MarkDeleted(index int) bool {
	if !s.check(true) {
		return false
	}
	if index < 0 || index >= s.meta.Count {
		s.err = errors.Wrapf(store.ErrOutOfBounds, "delete %d", index)
		return false
	}

	pos, cur := s.pos, s.cur
	if !s.load(index) {
		return false
	}
	r := s.cur
	s.pos, s.cur = pos, cur

	r.Deleted = true
	m := *s.meta
	m.touch()
	if !s.write(r, &m) {
		return false
	}

	if s.pos == index {
		s.cur = r
	}
	return true
}

func (s *Store) SetValue(column int, v types.Value) bool {
	if !s.check(true) {
		return false
	}
	if s.pos < 0 || s.pos >= s.meta.Count || column < 0 || column >= len(s.meta.Fields) {
		s.err = errors.Wrapf(store.ErrOutOfBounds, "set column %d of record %d", column, s.pos)
		return false
	}

	cv, err := s.meta.schema().Convert(column, v)
	if err != nil {
		s.err = errors.Mark(err, store.ErrTypeMismatch)
		return false
	}

	r := s.cur.Clone()
	r.SetValue(column, cv)
	m := *s.meta
	m.touch()
	if !s.write(r, &m) {
		return false
	}

	s.cur = r
	return true
}

// write commits a record and the metadata in one batch.
func (s *Store) write(r record.Record, m *meta) bool {
	data, err := encodeRecord(r)
	if err != nil {
		s.err = errors.Mark(err, store.ErrTypeMismatch)
		return false
	}
	md, err := encodeMeta(m)
	if err != nil {
		s.err = errors.Mark(err, store.ErrCorrupted)
		return false
	}

	b := s.db.NewBatch()
	err = b.Set(recordKey(r.Index), data, nil)
	if err == nil {
		err = b.Set([]byte(metaKey), md, nil)
	}
	if err == nil {
		err = b.Commit(pebble.Sync)
	}
	closeErr := b.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		s.err = errors.Mark(errors.Wrapf(err, "cannot write record %d", r.Index), store.ErrIO)
		return false
	}

	s.meta = m
	return true
}

func (s *Store) LastUpdate() time.Time {
	if s.meta == nil {
		return time.Time{}
	}

	return s.meta.lastUpdate()
}

func (s *Store) Err() error {
	return s.err
}

func (s *Store) check(write bool) bool {
	s.err = nil

	if s.db == nil {
		s.err = errors.WithStack(store.ErrNotOpen)
		return false
	}
	if write && s.mode == store.ReadOnly {
		s.err = errors.WithStack(store.ErrReadOnly)
		return false
	}

	return true
}
