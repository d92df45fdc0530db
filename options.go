package dbfgrid

import (
	"io"

	"github.com/sirupsen/logrus"
)

// DefaultBatchSize is the maximum number of rows loaded by FetchMore.
const DefaultBatchSize = 255

// Options of a Model.
type Options struct {
	// BatchSize is the maximum number of rows loaded per fetch.
	// Defaults to DefaultBatchSize.
	BatchSize int

	// Logger receives debug information about fetches and warnings
	// about rejected or partially applied mutations.
	// Defaults to a logger that discards everything.
	Logger logrus.FieldLogger

	// Observer is notified of changes to the rows.
	Observer Observer
}

func (o *Options) withDefaults() Options {
	var opts Options
	if o != nil {
		opts = *o
	}

	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}

	if opts.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Logger = l
	}

	if opts.Observer == nil {
		opts.Observer = NopObserver{}
	}

	return opts
}
