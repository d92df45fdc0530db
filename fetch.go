package dbfgrid

import (
	"github.com/chaisql/dbfgrid/record"
	"github.com/sirupsen/logrus"
)

// pending returns the number of physical records not seen yet.
func (m *Model) pending() int {
	return m.store.PhysicalCount() - m.rows.Len() - m.rows.Deleted()
}

// CanFetchMore reports whether some records of the store were not loaded yet.
func (m *Model) CanFetchMore() bool {
	if !m.IsOpen() {
		return false
	}

	return m.pending() > 0
}

// FetchMore loads the next batch of rows and returns how many were added.
// Deleted records met along the way are skipped and don't count toward the
// batch size.
// If the store fails during the batch, nothing is loaded and the batch can
// be retried.
func (m *Model) FetchMore() (int, error) {
	if err := m.checkOpen(); err != nil {
		return 0, err
	}

	cursor := m.rows.Cursor()
	if !m.store.Seek(cursor) {
		return 0, m.storeError(ErrSeekFailed, "cannot resume at record %d", cursor)
	}

	want := min(m.batch, m.pending())
	if want <= 0 {
		return 0, nil
	}

	batch := make([]record.Record, 0, want)
	var deleted int
	for len(batch) < want && m.store.Next() {
		r := m.store.Record()
		if r.Deleted {
			deleted++
			continue
		}

		batch = append(batch, r)
	}
	if m.store.Err() != nil {
		return 0, m.storeError(ErrSeekFailed, "cannot read after record %d", m.store.At())
	}

	begin := m.rows.Len()
	m.rows.SetCursor(m.store.At())
	m.rows.AddDeleted(deleted)
	m.rows.Append(batch...)

	m.log.WithFields(logrus.Fields{
		"appended": len(batch),
		"deleted":  deleted,
		"cursor":   m.rows.Cursor(),
	}).Debug("rows fetched")

	if len(batch) > 0 {
		m.observer.RowsAppended(begin, begin+len(batch))
	}

	return len(batch), nil
}
