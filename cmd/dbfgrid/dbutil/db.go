package dbutil

import (
	"context"

	"github.com/chaisql/dbfgrid"
	"github.com/chaisql/dbfgrid/store"
	"github.com/chaisql/dbfgrid/store/pebblestore"
	"github.com/cockroachdb/errors"
)

// OpenTable is a helper function that takes raw unvalidated parameters and opens a table.
func OpenTable(path string, readOnly bool, opts *dbfgrid.Options) (*dbfgrid.Model, error) {
	if path == "" {
		return nil, errors.New("missing table path")
	}

	return dbfgrid.Open(path, readOnly, opts)
}

// OpenStore opens the underlying store of a table, without loading any row.
func OpenStore(path string) (*pebblestore.Store, error) {
	if path == "" {
		return nil, errors.New("missing table path")
	}

	s := pebblestore.New(pebblestore.Options{})
	err := s.Open(path, store.ReadOnly)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// LoadAll fetches every remaining row of m. The context is checked between
// batches.
func LoadAll(ctx context.Context, m *dbfgrid.Model) error {
	for m.CanFetchMore() {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := m.FetchMore(); err != nil {
			return err
		}
	}

	return nil
}
