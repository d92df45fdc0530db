package testutil

import (
	"encoding/binary"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/chaisql/dbfgrid/record"
	"github.com/chaisql/dbfgrid/store"
	"github.com/chaisql/dbfgrid/store/memstore"
	"github.com/chaisql/dbfgrid/store/pebblestore"
	"github.com/chaisql/dbfgrid/types"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/stretchr/testify/require"
)

// Schema returns the schema used by generated stores:
// ID (integer), NAME (text) and ACTIVE (boolean).
func Schema(t testing.TB) record.Schema {
	t.Helper()

	schema, err := record.NewSchema(
		record.Field{Name: "ID", Type: types.TypeInteger},
		record.Field{Name: "NAME", Type: types.TypeText, Length: 32},
		record.Field{Name: "ACTIVE", Type: types.TypeBoolean},
	)
	require.NoError(t, err)
	return schema
}

// Values returns the values of the generated record at physical index i.
func Values(i int) []types.Value {
	return []types.Value{
		types.NewIntegerValue(int64(i)),
		types.NewTextValue(fmt.Sprintf("record-%d", i)),
		types.NewBooleanValue(i%2 == 0),
	}
}

// NewMemStore returns a closed memstore with n generated records.
// Records whose physical index is listed in deleted are flagged as deleted.
func NewMemStore(t testing.TB, n int, deleted ...int) *memstore.Store {
	t.Helper()

	del := make(map[int]bool, len(deleted))
	for _, i := range deleted {
		require.Less(t, i, n)
		del[i] = true
	}

	s := memstore.New(Schema(t))
	for i := 0; i < n; i++ {
		s.Add(del[i], Values(i)...)
	}

	return s
}

// Range returns the integers of [begin, end).
func Range(begin, end int) []int {
	r := make([]int, 0, end-begin)
	for i := begin; i < end; i++ {
		r = append(r, i)
	}
	return r
}

// NewMemPebble creates a pebble table on an in-memory filesystem and fills it
// like NewMemStore. It returns the closed store and the path of the table.
func NewMemPebble(t testing.TB, n int, deleted ...int) (*pebblestore.Store, string) {
	t.Helper()

	opts := pebblestore.Options{FS: vfs.NewMem()}
	return FillPebble(t, opts, "table", n, deleted...), "table"
}

// NewPebble does the same as NewMemPebble, in a temporary directory.
func NewPebble(t testing.TB, n int, deleted ...int) (*pebblestore.Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "table")
	return FillPebble(t, pebblestore.Options{}, path, n, deleted...), path
}

// FillPebble creates a pebble table at path and fills it like NewMemStore.
// It returns the closed store.
func FillPebble(t testing.TB, opts pebblestore.Options, path string, n int, deleted ...int) *pebblestore.Store {
	t.Helper()

	s, err := pebblestore.Create(path, Schema(t), opts)
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		require.True(t, s.Append(), "%+v", s.Err())
		require.True(t, s.Seek(i), "%+v", s.Err())
		for col, v := range Values(i) {
			require.True(t, s.SetValue(col, v), "%+v", s.Err())
		}
	}
	for _, i := range deleted {
		require.True(t, s.MarkDeleted(i), "%+v", s.Err())
	}
	require.NoError(t, s.Close())

	t.Cleanup(func() {
		s.Close()
	})
	return s
}

// CorruptPebbleRecord overwrites the record at index of a closed pebble table
// with bytes that cannot be decoded.
func CorruptPebbleRecord(t testing.TB, opts pebblestore.Options, path string, index int) {
	t.Helper()

	if opts.FS == nil {
		opts.FS = vfs.Default
	}
	db, err := pebble.Open(path, &pebble.Options{FS: opts.FS})
	require.NoError(t, err)

	// records are stored under 'r' followed by their big endian index.
	key := make([]byte, 9)
	key[0] = 'r'
	binary.BigEndian.PutUint64(key[1:], uint64(index))

	require.NoError(t, db.Set(key, []byte("?garbage"), pebble.Sync))
	require.NoError(t, db.Close())
}

// Visible returns the records of s that are not deleted, in physical order.
// s must be open.
func Visible(t testing.TB, s store.Store) []record.Record {
	t.Helper()

	require.True(t, s.Seek(store.BeforeFirst), "%+v", s.Err())

	var rs []record.Record
	for s.Next() {
		if r := s.Record(); !r.Deleted {
			rs = append(rs, r)
		}
	}
	require.NoError(t, s.Err())
	return rs
}
