package dbfgrid_test

import (
	"testing"

	"github.com/chaisql/dbfgrid"
	"github.com/chaisql/dbfgrid/internal/testutil"
	"github.com/chaisql/dbfgrid/internal/testutil/assert"
	"github.com/chaisql/dbfgrid/record"
	"github.com/chaisql/dbfgrid/store"
	"github.com/chaisql/dbfgrid/store/memstore"
	"github.com/chaisql/dbfgrid/store/pebblestore"
	"github.com/chaisql/dbfgrid/types"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/stretchr/testify/require"
)

// open creates a model over a memstore with n records and opens it.
func open(t *testing.T, opts *dbfgrid.Options, n int, deleted ...int) (*dbfgrid.Model, *memstore.Store) {
	t.Helper()

	s := testutil.NewMemStore(t, n, deleted...)
	m := dbfgrid.New(s, opts)
	require.NoError(t, m.Open("", false))
	t.Cleanup(func() {
		m.Close()
	})

	return m, s
}

func fetchAll(t *testing.T, m *dbfgrid.Model) {
	t.Helper()

	for m.CanFetchMore() {
		seen := m.RowCount() + m.DeletedCount()
		_, err := m.FetchMore()
		require.NoError(t, err)
		require.Greater(t, m.RowCount()+m.DeletedCount(), seen)
		requireInvariants(t, m)
	}
}

// requireInvariants checks the loaded rows are live records in strictly
// increasing physical order, and that no more records were seen than exist.
func requireInvariants(t *testing.T, m *dbfgrid.Model) {
	t.Helper()

	require.LessOrEqual(t, m.RowCount()+m.DeletedCount(), m.PhysicalCount())
	if !m.CanFetchMore() {
		require.Equal(t, m.PhysicalCount(), m.RowCount()+m.DeletedCount())
	}

	prev := -1
	for i := 0; i < m.RowCount(); i++ {
		r, err := m.Record(i)
		require.NoError(t, err)
		require.False(t, r.Deleted)
		require.Greater(t, r.Index, prev, "row %d", i)
		prev = r.Index
	}
}

func rows(t *testing.T, m *dbfgrid.Model) []record.Record {
	t.Helper()

	rs := make([]record.Record, m.RowCount())
	for i := range rs {
		r, err := m.Record(i)
		require.NoError(t, err)
		rs[i] = r
	}
	return rs
}

func indexes(t *testing.T, m *dbfgrid.Model) []int {
	t.Helper()

	var idx []int
	for _, r := range rows(t, m) {
		idx = append(idx, r.Index)
	}
	return idx
}

func TestOpen(t *testing.T) {
	t.Run("Loads the first batch", func(t *testing.T) {
		m, _ := open(t, &dbfgrid.Options{BatchSize: 10}, 25)

		require.True(t, m.IsOpen())
		require.False(t, m.ReadOnly())
		require.Equal(t, 10, m.RowCount())
		require.Equal(t, 3, m.ColumnCount())
		require.Equal(t, dbfgrid.HasMore, m.State())
		require.Equal(t, []string{"ID", "NAME", "ACTIVE"}, m.Schema().Names())
	})

	t.Run("Empty table", func(t *testing.T) {
		m, _ := open(t, nil, 0)

		require.Equal(t, 0, m.RowCount())
		require.False(t, m.CanFetchMore())
		require.Equal(t, dbfgrid.Exhausted, m.State())

		n, err := m.FetchMore()
		require.NoError(t, err)
		require.Equal(t, 0, n)
	})

	t.Run("Failed first batch", func(t *testing.T) {
		s := testutil.NewMemStore(t, 5)
		s.FailSeek(true)

		m := dbfgrid.New(s, nil)
		require.NoError(t, m.Open("", false))
		require.Equal(t, 0, m.RowCount())
		require.True(t, m.CanFetchMore())

		s.FailSeek(false)
		n, err := m.FetchMore()
		require.NoError(t, err)
		require.Equal(t, 5, n)
	})

	t.Run("Read-only", func(t *testing.T) {
		s := testutil.NewMemStore(t, 5)
		m := dbfgrid.New(s, nil)
		require.NoError(t, m.Open("", true))
		require.True(t, m.ReadOnly())

		assert.ErrorIs(t, m.InsertRowsAtEnd(1), dbfgrid.ErrReadOnly)
		assert.ErrorIs(t, m.RemoveRow(0), dbfgrid.ErrReadOnly)
		assert.ErrorIs(t, m.SetValue(0, 0, types.NewIntegerValue(1)), dbfgrid.ErrReadOnly)
		require.Equal(t, 5, m.RowCount())
		require.Equal(t, 0, s.DeletedCount())
	})

	t.Run("Store error", func(t *testing.T) {
		m := dbfgrid.New(pebblestore.New(pebblestore.Options{FS: vfs.NewMem()}), nil)

		err := m.Open("missing", false)
		assert.ErrorIs(t, err, store.ErrIO)
		require.False(t, m.IsOpen())
		require.Equal(t, dbfgrid.Idle, m.State())
	})
}

func TestClose(t *testing.T) {
	rec := new(testutil.Recorder)
	m, s := open(t, &dbfgrid.Options{BatchSize: 4, Observer: rec}, 10, 1)
	require.NoError(t, m.SetHeaderData(0, dbfgrid.DisplayRole, "Id"))

	require.NoError(t, m.Close())
	require.False(t, m.IsOpen())
	require.False(t, s.IsOpen())
	require.Equal(t, dbfgrid.Idle, m.State())
	require.Equal(t, 0, m.RowCount())
	require.Equal(t, 0, m.ColumnCount())
	require.False(t, m.CanFetchMore())

	_, err := m.FetchMore()
	assert.ErrorIs(t, err, dbfgrid.ErrNotOpen)
	assert.ErrorIs(t, m.InsertRowsAtEnd(1), dbfgrid.ErrNotOpen)
	assert.ErrorIs(t, m.RemoveRow(0), dbfgrid.ErrNotOpen)
	assert.ErrorIs(t, m.SetValue(0, 0, types.NewIntegerValue(1)), dbfgrid.ErrNotOpen)
	assert.ErrorIs(t, m.Reopen(), dbfgrid.ErrNotOpen)
	_, err = m.Value(0, 0)
	assert.ErrorIs(t, err, dbfgrid.ErrNotOpen)
	_, err = m.Record(0)
	assert.ErrorIs(t, err, dbfgrid.ErrNotOpen)

	// closing twice is fine
	require.NoError(t, m.Close())

	rec.Reset()
	require.NoError(t, m.Open("", false))
	require.Equal(t, 4, m.RowCount())
	require.Equal(t, []int{0, 2, 3, 4}, indexes(t, m))
	require.Equal(t, "ID", m.HeaderData(0, dbfgrid.DisplayRole))
	require.Equal(t, []testutil.Event{testutil.Appended(0, 4)}, rec.Events)
}

func TestReopen(t *testing.T) {
	m, _ := open(t, &dbfgrid.Options{BatchSize: 3}, 10)
	fetchAll(t, m)
	require.NoError(t, m.RemoveRows(0, 2))
	require.Equal(t, 8, m.RowCount())

	require.NoError(t, m.Reopen())
	require.Equal(t, 3, m.RowCount())
	fetchAll(t, m)
	require.Equal(t, testutil.Range(2, 10), indexes(t, m))
}

func TestValue(t *testing.T) {
	m, _ := open(t, nil, 3, 1)

	v, err := m.Value(1, 1)
	require.NoError(t, err)
	require.Equal(t, types.NewTextValue("record-2"), v)

	_, err = m.Value(2, 0)
	assert.ErrorIs(t, err, dbfgrid.ErrOutOfRange)
	_, err = m.Value(0, 3)
	assert.ErrorIs(t, err, dbfgrid.ErrOutOfRange)
	_, err = m.Value(0, -1)
	assert.ErrorIs(t, err, dbfgrid.ErrOutOfRange)

	_, err = m.Record(2)
	assert.ErrorIs(t, err, dbfgrid.ErrOutOfRange)

	require.Equal(t, 1, m.FieldIndex("name"))
	require.Equal(t, -1, m.FieldIndex("missing"))
}
