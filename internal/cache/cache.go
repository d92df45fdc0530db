// Package cache implements the in-memory sequence of visible records of a
// table.
//
// The cache only ever holds live records, in strictly increasing physical
// order. Alongside them it tracks how many deleted physical records were
// encountered, and the physical position where loading must resume.
package cache

import (
	"github.com/chaisql/dbfgrid/record"
	"github.com/chaisql/dbfgrid/store"
	"github.com/chaisql/dbfgrid/types"
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/slices"
)

var (
	// ErrOutOfRange is returned when accessing a row beyond the loaded rows.
	ErrOutOfRange = errors.New("row out of range")

	// ErrInvalidRange is returned when a range of rows is empty or doesn't
	// intersect the loaded rows.
	ErrInvalidRange = errors.New("invalid row range")
)

// Cache holds the loaded, visible records of a table.
// It is not safe for concurrent use.
type Cache struct {
	records []record.Record
	deleted int
	cursor  int
}

// New creates an empty cache.
func New(capacity int) *Cache {
	return &Cache{
		records: make([]record.Record, 0, capacity),
		cursor:  store.BeforeFirst,
	}
}

// Len returns the number of visible rows.
func (c *Cache) Len() int {
	return len(c.records)
}

// Deleted returns the number of deleted physical records known so far.
func (c *Cache) Deleted() int {
	return c.deleted
}

// AddDeleted increments the number of known deleted records.
func (c *Cache) AddDeleted(n int) {
	if n < 0 {
		panic(errors.AssertionFailedf("negative deleted count %d", n))
	}

	c.deleted += n
}

// Cursor returns the last physical position visited while loading.
func (c *Cache) Cursor() int {
	return c.cursor
}

func (c *Cache) SetCursor(pos int) {
	c.cursor = pos
}

// Get returns a copy of the record at row i.
func (c *Cache) Get(i int) (record.Record, error) {
	if i < 0 || i >= len(c.records) {
		return record.Record{}, errors.Wrapf(ErrOutOfRange, "row %d", i)
	}

	return c.records[i].Clone(), nil
}

// Value returns one value of row i without copying the record.
func (c *Cache) Value(i, column int) (types.Value, error) {
	if i < 0 || i >= len(c.records) {
		return nil, errors.Wrapf(ErrOutOfRange, "row %d", i)
	}

	return c.records[i].Value(column), nil
}

// PhysicalIndex returns the physical index of row i.
func (c *Cache) PhysicalIndex(i int) (int, error) {
	if i < 0 || i >= len(c.records) {
		return 0, errors.Wrapf(ErrOutOfRange, "row %d", i)
	}

	return c.records[i].Index, nil
}

// Append adds records at the end of the cache. Records must be live and
// sorted by strictly increasing physical index, all greater than the index
// of the current last row. Breaking that contract panics.
func (c *Cache) Append(records ...record.Record) {
	last := -1
	if n := len(c.records); n > 0 {
		last = c.records[n-1].Index
	}

	for _, r := range records {
		if r.Deleted {
			panic(errors.AssertionFailedf("cannot cache deleted record %d", r.Index))
		}
		if r.Index <= last {
			panic(errors.AssertionFailedf("record %d appended after record %d", r.Index, last))
		}
		last = r.Index
	}

	c.records = slices.Grow(c.records, len(records))
	for _, r := range records {
		c.records = append(c.records, r.Clone())
	}
}

// RemoveRange removes rows begin to end, both included, and counts them as
// deleted. The range is clamped to the loaded rows.
// It returns the number of removed rows.
func (c *Cache) RemoveRange(begin, end int) (int, error) {
	if begin > end || end < 0 || begin >= len(c.records) {
		return 0, errors.Wrapf(ErrInvalidRange, "[%d, %d]", begin, end)
	}

	begin = max(begin, 0)
	end = min(end, len(c.records)-1)

	c.records = slices.Delete(c.records, begin, end+1)
	n := end - begin + 1
	c.deleted += n
	return n, nil
}

// UpdateValue replaces one value of row i.
func (c *Cache) UpdateValue(i, column int, v types.Value) error {
	if i < 0 || i >= len(c.records) {
		return errors.Wrapf(ErrOutOfRange, "row %d", i)
	}
	if column < 0 || column >= c.records[i].Len() {
		return errors.Wrapf(ErrOutOfRange, "column %d", column)
	}

	c.records[i].SetValue(column, v)
	return nil
}

// Records returns a copy of all the visible records.
func (c *Cache) Records() []record.Record {
	rs := make([]record.Record, len(c.records))
	for i := range c.records {
		rs[i] = c.records[i].Clone()
	}

	return rs
}

// Reset empties the cache and rewinds the cursor.
func (c *Cache) Reset() {
	clear(c.records)
	c.records = c.records[:0]
	c.deleted = 0
	c.cursor = store.BeforeFirst
}
