/*
Package dbfgrid presents a table of soft-deleted records as a lazily loaded,
randomly indexable sequence of rows, suitable for browsing and editing large
tables interactively.

Stores

Records live in a Store, which exposes them by physical index with a single
cursor. Deleting a record only flags it: its physical index is never reused.
The store package defines the contract; memstore implements it in memory and
pebblestore on top of Pebble.

Rows

A Model only shows live records, called rows. Rows are numbered contiguously
from 0 in physical order, and loaded in batches:

	m := dbfgrid.New(pebblestore.New(pebblestore.Options{}), nil)
	err := m.Open("/path/to/table", false)
	if err != nil {
		return err
	}
	defer m.Close()

	for m.CanFetchMore() {
		_, err := m.FetchMore()
		if err != nil {
			return err
		}
	}

Open loads the first batch. Subsequent batches are only loaded on demand,
typically when a view scrolls near the last loaded row.

Mutations

Rows can only be inserted at the end of the table and removed by range.
Every mutation is written to the store first, and only mirrored into the
loaded rows if the store accepted it. Rows appended while some records
were not loaded yet remain hidden until a fetch reaches them.
*/
package dbfgrid
