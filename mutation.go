package dbfgrid

import (
	"github.com/chaisql/dbfgrid/record"
	"github.com/chaisql/dbfgrid/types"
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// InsertRows appends count blank records to the store. row must be equal
// to RowCount.
//
// The new records only become rows immediately if every record of the store
// was already loaded. Otherwise they are loaded by later fetches, in physical
// order.
// If the store fails midway, the records appended so far are kept.
func (m *Model) InsertRows(row, count int) error {
	if err := m.checkWritable(); err != nil {
		return err
	}

	begin := m.rows.Len()
	if row != begin {
		m.log.WithFields(logrus.Fields{
			"row":  row,
			"rows": begin,
		}).Warn("rows can be inserted only at the end of the table")
		return errors.Wrapf(ErrInvalidPosition, "row %d", row)
	}
	if count <= 0 {
		return errors.Wrapf(ErrInvalidRange, "count %d", count)
	}

	added := make([]record.Record, 0, min(count, m.batch))
	var err error
	for i := 0; i < count; i++ {
		if !m.store.Append() {
			err = m.storeError(ErrAppendFailed, "cannot append row %d", begin+i)
			break
		}
		if !m.store.Seek(m.store.PhysicalCount() - 1) {
			err = m.storeError(ErrAppendFailed, "cannot read appended row %d", begin+i)
			break
		}

		added = append(added, m.store.Record())
	}

	if err != nil {
		m.log.WithError(err).WithField("appended", len(added)).Warn("rows partially inserted")
	}

	if len(added) > 0 && begin+len(added)+m.rows.Deleted() == m.store.PhysicalCount() {
		m.rows.Append(added...)
		m.rows.SetCursor(added[len(added)-1].Index)
		m.observer.RowsAppended(begin, begin+len(added))
	}

	return err
}

// InsertRowsAtEnd appends count blank records to the store.
func (m *Model) InsertRowsAtEnd(count int) error {
	return m.InsertRows(m.rows.Len(), count)
}

func (m *Model) InsertRow(row int) error {
	return m.InsertRows(row, 1)
}

// RemoveRows marks count rows starting at row as deleted. The range is
// clamped to the loaded rows.
//
// Rows are deleted in order and the first store failure stops the removal.
// Rows deleted before the failure are removed and stay deleted.
func (m *Model) RemoveRows(row, count int) error {
	if err := m.checkWritable(); err != nil {
		return err
	}

	n := m.rows.Len()
	if count <= 0 || row >= n || (row < 0 && row+count <= 0) {
		return errors.Wrapf(ErrInvalidRange, "row %d, count %d", row, count)
	}

	// number of rows from begin, kept small enough not to overflow.
	begin, span := row, count
	if row < 0 {
		begin, span = 0, row+count
	}
	end := n - 1
	if span <= n-begin {
		end = begin + span - 1
	}

	last := begin - 1
	var err error
	for i := begin; i <= end; i++ {
		idx, perr := m.rows.PhysicalIndex(i)
		if perr != nil {
			return perr
		}
		if !m.store.MarkDeleted(idx) {
			err = m.storeError(ErrWriteFailed, "cannot delete row %d", i)
			break
		}

		last = i
	}

	if err != nil {
		m.log.WithError(err).WithField("deleted", last-begin+1).Warn("rows partially removed")
	}

	if last < begin {
		return err
	}

	if _, rerr := m.rows.RemoveRange(begin, last); rerr != nil {
		return rerr
	}
	m.observer.RowsRemoved(begin, last+1)

	return err
}

func (m *Model) RemoveRow(row int) error {
	return m.RemoveRows(row, 1)
}

// SetValue writes a value to the store and, if it succeeds, updates the
// loaded row with the value the store holds, after conversion to the type
// of the field.
func (m *Model) SetValue(row, column int, v types.Value) error {
	if err := m.checkWritable(); err != nil {
		return err
	}
	if column < 0 || column >= m.ColumnCount() {
		return errors.Wrapf(ErrOutOfRange, "column %d", column)
	}

	idx, err := m.rows.PhysicalIndex(row)
	if err != nil {
		return err
	}

	if !m.store.Seek(idx) {
		return m.storeError(ErrSeekFailed, "cannot seek to row %d", row)
	}
	if !m.store.SetValue(column, v) {
		return m.storeError(ErrWriteFailed, "cannot write row %d, column %d", row, column)
	}

	err = m.rows.UpdateValue(row, column, m.store.Record().Value(column))
	if err != nil {
		return err
	}

	m.observer.CellChanged(row, column)
	return nil
}
