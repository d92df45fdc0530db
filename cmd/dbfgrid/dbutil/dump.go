package dbutil

import (
	"bufio"
	"context"
	"encoding/csv"
	"io"

	"github.com/chaisql/dbfgrid"
	"github.com/chaisql/dbfgrid/record"
	"github.com/chaisql/dbfgrid/types"
	"github.com/cockroachdb/errors"
	"github.com/go-json-experiment/json/jsontext"
	"golang.org/x/sync/errgroup"
)

// Format of a dump.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat returns the format with the given name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatCSV, FormatJSON:
		return f, nil
	}

	return "", errors.Errorf("unknown format %q, expected csv or json", s)
}

// DumpOptions configures Dump.
type DumpOptions struct {
	Format Format
	// WithIndex also dumps the physical index of each row, to
	// relate rows to records of the store.
	WithIndex bool
}

// Dump writes every row of m to w. Rows are loaded batch by batch while
// being written. CSV dumps start with a header line of field names,
// JSON dumps write one object per line.
func Dump(ctx context.Context, m *dbfgrid.Model, w io.Writer, opts DumpOptions) error {
	enc, err := newEncoder(m.Schema(), w, opts)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	ch := make(chan record.Record, 64)

	// the loader is the only goroutine using the model.
	g.Go(func() error {
		defer close(ch)

		sent := 0
		for {
			for ; sent < m.RowCount(); sent++ {
				r, err := m.Record(sent)
				if err != nil {
					return err
				}

				select {
				case ch <- r:
				case <-ctx.Done():
					return ctx.Err()
				}
			}

			if !m.CanFetchMore() {
				return nil
			}
			if _, err := m.FetchMore(); err != nil {
				return err
			}
		}
	})

	g.Go(func() error {
		if err := enc.header(); err != nil {
			return err
		}

		for r := range ch {
			if err := enc.encode(r); err != nil {
				return err
			}
		}

		return enc.flush()
	})

	return g.Wait()
}

type encoder interface {
	header() error
	encode(r record.Record) error
	flush() error
}

func newEncoder(schema record.Schema, w io.Writer, opts DumpOptions) (encoder, error) {
	switch opts.Format {
	case FormatCSV, "":
		return &csvEncoder{schema: schema, w: csv.NewWriter(w), withIndex: opts.WithIndex}, nil
	case FormatJSON:
		bw := bufio.NewWriter(w)
		return &jsonEncoder{schema: schema, w: bw, enc: jsontext.NewEncoder(bw), withIndex: opts.WithIndex}, nil
	}

	return nil, errors.Errorf("unknown format %q", opts.Format)
}

type csvEncoder struct {
	schema    record.Schema
	w         *csv.Writer
	withIndex bool
	line      []string
}

func (e *csvEncoder) header() error {
	names := e.schema.Names()
	if e.withIndex {
		names = append([]string{"#"}, names...)
	}

	return e.w.Write(names)
}

func (e *csvEncoder) encode(r record.Record) error {
	e.line = e.line[:0]
	if e.withIndex {
		e.line = append(e.line, types.NewIntegerValue(int64(r.Index)).String())
	}

	for i := range e.schema.Fields {
		v := r.Value(i)
		if types.IsNull(v) {
			e.line = append(e.line, "")
			continue
		}
		e.line = append(e.line, v.String())
	}

	return e.w.Write(e.line)
}

func (e *csvEncoder) flush() error {
	e.w.Flush()
	return e.w.Error()
}

type jsonEncoder struct {
	schema    record.Schema
	w         *bufio.Writer
	enc       *jsontext.Encoder
	withIndex bool
}

func (e *jsonEncoder) header() error {
	return nil
}

// encode writes r as an object on its own line.
func (e *jsonEncoder) encode(r record.Record) error {
	err := e.enc.WriteToken(jsontext.ObjectStart)
	if err != nil {
		return err
	}

	if e.withIndex {
		err = e.enc.WriteToken(jsontext.String("#"))
		if err == nil {
			err = e.enc.WriteToken(jsontext.Int(int64(r.Index)))
		}
		if err != nil {
			return err
		}
	}

	for i, f := range e.schema.Fields {
		err = e.enc.WriteToken(jsontext.String(f.Name))
		if err != nil {
			return err
		}

		v, err := r.Value(i).MarshalJSON()
		if err != nil {
			return errors.Wrapf(err, "row %d, field %q", r.Index, f.Name)
		}
		err = e.enc.WriteValue(v)
		if err != nil {
			return errors.Wrapf(err, "row %d, field %q", r.Index, f.Name)
		}
	}

	return e.enc.WriteToken(jsontext.ObjectEnd)
}

func (e *jsonEncoder) flush() error {
	return e.w.Flush()
}
