package dbfgrid_test

import (
	"path/filepath"
	"testing"

	"github.com/chaisql/dbfgrid"
	"github.com/chaisql/dbfgrid/internal/testutil"
	"github.com/chaisql/dbfgrid/internal/testutil/assert"
	"github.com/chaisql/dbfgrid/record"
	"github.com/chaisql/dbfgrid/store"
	"github.com/chaisql/dbfgrid/types"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestPebble(t *testing.T) {
	s, path := testutil.NewMemPebble(t, 40, 0, 5, 6, 7, 39)
	m := dbfgrid.New(s, &dbfgrid.Options{BatchSize: 10})
	require.NoError(t, m.Open(path, false))
	defer m.Close()

	require.Equal(t, 10, m.RowCount())
	require.Equal(t, 4, m.DeletedCount())
	fetchAll(t, m)
	require.Equal(t, 35, m.RowCount())

	if diff := cmp.Diff(testutil.Visible(t, s), rows(t, m)); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, m.RemoveRows(0, 3))
	require.NoError(t, m.SetValue(0, 1, types.NewTextValue("renamed")))
	require.NoError(t, m.InsertRowsAtEnd(2))
	require.NoError(t, m.SetValue(m.RowCount()-1, 0, types.NewTextValue("1000")))

	var want []record.Record
	want = append(want, rows(t, m)...)

	require.NoError(t, m.Reopen())
	fetchAll(t, m)
	if diff := cmp.Diff(want, rows(t, m)); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	v, err := m.Value(m.RowCount()-1, 0)
	require.NoError(t, err)
	require.Equal(t, types.NewIntegerValue(1000), v)
}

func TestOpenCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table")

	_, err := dbfgrid.Open(path, false, nil)
	assert.ErrorIs(t, err, store.ErrIO)

	m, err := dbfgrid.Create(path, testutil.Schema(t), nil)
	require.NoError(t, err)
	require.Equal(t, dbfgrid.Exhausted, m.State())
	require.NoError(t, m.InsertRowsAtEnd(3))
	require.NoError(t, m.SetValue(1, 1, types.NewTextValue("b")))
	require.NoError(t, m.Close())

	m, err = dbfgrid.Open(path, true, &dbfgrid.Options{BatchSize: 2})
	require.NoError(t, err)
	defer m.Close()

	require.True(t, m.ReadOnly())
	require.Equal(t, 2, m.RowCount())
	fetchAll(t, m)
	require.Equal(t, 3, m.RowCount())

	v, err := m.Value(1, 1)
	require.NoError(t, err)
	require.Equal(t, types.NewTextValue("b"), v)
	require.False(t, m.LastUpdate().IsZero())
	assert.ErrorIs(t, m.InsertRowsAtEnd(1), dbfgrid.ErrReadOnly)
}
