package cache_test

import (
	"testing"

	"github.com/chaisql/dbfgrid/internal/cache"
	"github.com/chaisql/dbfgrid/internal/testutil/assert"
	"github.com/chaisql/dbfgrid/record"
	"github.com/chaisql/dbfgrid/store"
	"github.com/chaisql/dbfgrid/types"
	"github.com/stretchr/testify/require"
)

func rec(index int, name string) record.Record {
	return record.Record{Index: index, Values: []types.Value{types.NewTextValue(name)}}
}

func indexes(c *cache.Cache) []int {
	var idx []int
	for _, r := range c.Records() {
		idx = append(idx, r.Index)
	}
	return idx
}

func TestAppendGet(t *testing.T) {
	c := cache.New(0)
	require.Equal(t, 0, c.Len())
	require.Equal(t, store.BeforeFirst, c.Cursor())

	c.Append(rec(0, "a"), rec(2, "c"))
	c.Append(rec(5, "f"))
	require.Equal(t, 3, c.Len())
	require.Equal(t, []int{0, 2, 5}, indexes(c))

	r, err := c.Get(1)
	require.NoError(t, err)
	require.Equal(t, 2, r.Index)

	_, err = c.Get(3)
	assert.ErrorIs(t, err, cache.ErrOutOfRange)
	_, err = c.Get(-1)
	assert.ErrorIs(t, err, cache.ErrOutOfRange)

	idx, err := c.PhysicalIndex(2)
	require.NoError(t, err)
	require.Equal(t, 5, idx)

	t.Run("Copies", func(t *testing.T) {
		r, err := c.Get(0)
		require.NoError(t, err)
		r.SetValue(0, types.NewTextValue("changed"))

		v, err := c.Value(0, 0)
		require.NoError(t, err)
		require.Equal(t, types.NewTextValue("a"), v)
	})
}

func TestAppendContract(t *testing.T) {
	c := cache.New(0)
	c.Append(rec(3, "d"))

	require.Panics(t, func() { c.Append(rec(3, "d")) })
	require.Panics(t, func() { c.Append(rec(1, "b")) })
	require.Panics(t, func() { c.Append(rec(5, "f"), rec(4, "e")) })
	require.Panics(t, func() {
		r := rec(9, "j")
		r.Deleted = true
		c.Append(r)
	})

	// nothing was appended by the failed calls
	require.Equal(t, []int{3}, indexes(c))
}

func TestRemoveRange(t *testing.T) {
	newCache := func() *cache.Cache {
		c := cache.New(0)
		for i := 0; i < 5; i++ {
			c.Append(rec(i*2, "x"))
		}
		return c
	}

	tests := []struct {
		name       string
		begin, end int
		removed    int
		left       []int
		fails      bool
	}{
		{"middle", 1, 2, 2, []int{0, 6, 8}, false},
		{"single", 4, 4, 1, []int{0, 2, 4, 6}, false},
		{"all", 0, 4, 5, nil, false},
		{"clamped", -3, 1, 2, []int{4, 6, 8}, false},
		{"clamped end", 3, 10, 2, []int{0, 2, 4}, false},
		{"reversed", 2, 1, 0, nil, true},
		{"after end", 5, 6, 0, nil, true},
		{"before start", -3, -1, 0, nil, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := newCache()
			n, err := c.RemoveRange(test.begin, test.end)
			if test.fails {
				assert.ErrorIs(t, err, cache.ErrInvalidRange)
				require.Equal(t, 5, c.Len())
				require.Equal(t, 0, c.Deleted())
				return
			}

			require.NoError(t, err)
			require.Equal(t, test.removed, n)
			require.Equal(t, test.removed, c.Deleted())
			require.Equal(t, test.left, indexes(c))
		})
	}
}

func TestUpdateValue(t *testing.T) {
	c := cache.New(0)
	c.Append(rec(0, "a"))

	require.NoError(t, c.UpdateValue(0, 0, types.NewTextValue("b")))
	r, err := c.Get(0)
	require.NoError(t, err)
	require.Equal(t, types.NewTextValue("b"), r.Value(0))
	require.Equal(t, 0, r.Index)
	require.False(t, r.Deleted)

	assert.ErrorIs(t, c.UpdateValue(1, 0, types.NewTextValue("b")), cache.ErrOutOfRange)
	assert.ErrorIs(t, c.UpdateValue(0, 1, types.NewTextValue("b")), cache.ErrOutOfRange)
}

func TestReset(t *testing.T) {
	c := cache.New(0)
	c.Append(rec(0, "a"), rec(1, "b"))
	c.AddDeleted(3)
	c.SetCursor(4)

	c.Reset()
	require.Equal(t, 0, c.Len())
	require.Equal(t, 0, c.Deleted())
	require.Equal(t, store.BeforeFirst, c.Cursor())

	require.Panics(t, func() { c.AddDeleted(-1) })
}
