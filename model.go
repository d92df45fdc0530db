package dbfgrid

import (
	"time"

	"github.com/chaisql/dbfgrid/internal/cache"
	"github.com/chaisql/dbfgrid/record"
	"github.com/chaisql/dbfgrid/store"
	"github.com/chaisql/dbfgrid/types"
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// State describes how much of the table is loaded.
type State uint8

const (
	// Idle means no table is open.
	Idle State = iota
	// HasMore means some records were not loaded yet.
	HasMore
	// Exhausted means every record was loaded.
	Exhausted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case HasMore:
		return "has more"
	case Exhausted:
		return "exhausted"
	}

	return "unknown"
}

// Model exposes the live records of a store as rows.
//
// Rows are loaded incrementally with FetchMore. At any time, the number of
// loaded rows plus the number of deleted records seen so far never exceeds
// the number of physical records of the store, and both are equal once
// everything is loaded.
//
// A Model is not safe for concurrent use.
type Model struct {
	store    store.Store
	log      logrus.FieldLogger
	observer Observer
	batch    int

	path     string
	schema   record.Schema
	readOnly bool
	rows     *cache.Cache
	headers  map[int]map[HeaderRole]any
}

// New creates a Model reading from st. st is owned by the Model.
func New(st store.Store, opts *Options) *Model {
	o := opts.withDefaults()

	return &Model{
		store:    st,
		log:      o.Logger,
		observer: o.Observer,
		batch:    o.BatchSize,
		rows:     cache.New(o.BatchSize),
	}
}

// SetObserver replaces the observer notified of row changes.
// A nil observer disables notifications.
func (m *Model) SetObserver(o Observer) {
	if o == nil {
		o = NopObserver{}
	}

	m.observer = o
}

// Open opens the table at path and loads the first batch of rows.
// Any previously opened table is closed first.
// A failure to load the first batch is logged and can be retried with FetchMore.
func (m *Model) Open(path string, readOnly bool) error {
	m.reset()

	if m.store.IsOpen() {
		if err := m.store.Close(); err != nil {
			m.log.WithError(err).Warn("cannot close the previous table")
		}
	}

	mode := store.ReadWrite
	if readOnly {
		mode = store.ReadOnly
	}

	err := m.store.Open(path, mode)
	if err != nil {
		return errors.Wrapf(err, "cannot open %q", path)
	}

	m.path = path
	m.schema = m.store.Schema()
	m.readOnly = readOnly

	log := m.log.WithFields(logrus.Fields{
		"path":      path,
		"records":   m.store.PhysicalCount(),
		"read_only": readOnly,
	})
	log.Debug("table opened")

	if m.CanFetchMore() {
		if _, err := m.FetchMore(); err != nil {
			log.WithError(err).Warn("cannot load the first rows")
		}
	}

	return nil
}

// Reopen closes and opens the current table again, in the same mode.
func (m *Model) Reopen() error {
	if m.path == "" {
		return errors.WithStack(ErrNotOpen)
	}

	return m.Open(m.path, m.readOnly)
}

// Close discards every loaded row and closes the store.
func (m *Model) Close() error {
	m.reset()

	if !m.store.IsOpen() {
		return nil
	}

	err := m.store.Close()
	if err != nil {
		return errors.Wrap(err, "cannot close table")
	}

	m.log.Debug("table closed")
	return nil
}

func (m *Model) reset() {
	m.rows.Reset()
	m.path = ""
	m.headers = nil
	m.schema = record.Schema{}
	m.readOnly = false
}

func (m *Model) IsOpen() bool {
	return m.store.IsOpen()
}

func (m *Model) ReadOnly() bool {
	return m.readOnly
}

// LastUpdate returns the date of the last modification of the table.
func (m *Model) LastUpdate() time.Time {
	return m.store.LastUpdate()
}

// Err returns the error of the last store operation, if any.
func (m *Model) Err() error {
	return m.store.Err()
}

// RowCount returns the number of loaded rows.
func (m *Model) RowCount() int {
	return m.rows.Len()
}

// DeletedCount returns the number of deleted records seen while loading
// rows, including removed rows.
func (m *Model) DeletedCount() int {
	return m.rows.Deleted()
}

// PhysicalCount returns the number of records of the store, including
// deleted ones and those not loaded yet.
func (m *Model) PhysicalCount() int {
	if !m.IsOpen() {
		return 0
	}

	return m.store.PhysicalCount()
}

func (m *Model) ColumnCount() int {
	return m.schema.Len()
}

// FieldIndex returns the column of the named field, or -1.
func (m *Model) FieldIndex(name string) int {
	return m.schema.IndexOf(name)
}

func (m *Model) Schema() record.Schema {
	return m.schema
}

// State reports whether a table is open and fully loaded.
func (m *Model) State() State {
	switch {
	case !m.IsOpen():
		return Idle
	case m.CanFetchMore():
		return HasMore
	default:
		return Exhausted
	}
}

// Value returns the value of a cell of a loaded row.
func (m *Model) Value(row, column int) (types.Value, error) {
	if err := m.checkOpen(); err != nil {
		return nil, err
	}
	if column < 0 || column >= m.ColumnCount() {
		return nil, errors.Wrapf(ErrOutOfRange, "column %d", column)
	}

	return m.rows.Value(row, column)
}

// Record returns a copy of a loaded row.
func (m *Model) Record(row int) (record.Record, error) {
	if err := m.checkOpen(); err != nil {
		return record.Record{}, err
	}

	return m.rows.Get(row)
}

func (m *Model) checkOpen() error {
	if !m.IsOpen() {
		return errors.WithStack(ErrNotOpen)
	}

	return nil
}

func (m *Model) checkWritable() error {
	if err := m.checkOpen(); err != nil {
		return err
	}
	if m.readOnly {
		return errors.WithStack(ErrReadOnly)
	}

	return nil
}
