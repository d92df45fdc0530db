package dbfgrid

import (
	"github.com/chaisql/dbfgrid/record"
	"github.com/chaisql/dbfgrid/store/pebblestore"
)

// Open opens the table stored at path with Pebble and loads its first rows.
func Open(path string, readOnly bool, opts *Options) (*Model, error) {
	m := New(pebblestore.New(pebblestore.Options{}), opts)

	err := m.Open(path, readOnly)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// Create creates an empty table at path with Pebble and opens it in
// read-write mode.
func Create(path string, schema record.Schema, opts *Options) (*Model, error) {
	s, err := pebblestore.Create(path, schema, pebblestore.Options{})
	if err != nil {
		return nil, err
	}
	err = s.Close()
	if err != nil {
		return nil, err
	}

	return Open(path, false, opts)
}
