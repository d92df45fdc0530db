package commands

import (
	"fmt"
	"strconv"

	"github.com/chaisql/dbfgrid/cmd/dbfgrid/dbutil"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
)

// NewDeleteCommand returns a cli.Command for "dbfgrid delete".
func NewDeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete rows of a table",
		UsageText: `dbfgrid delete [--count n] path row`,
		Description: `The delete command marks rows as deleted, starting at the given row.
Rows are numbered from 0, deleted records excluded:

$ dbfgrid delete --count 3 items 10`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "number of rows to delete",
				Value:   1,
			},
		},
		Action: func(c *cli.Context) (err error) {
			path, err := tablePath(c)
			if err != nil {
				return err
			}

			row, err := strconv.Atoi(c.Args().Get(1))
			if err != nil {
				return errors.Wrap(err, "invalid row")
			}
			if row < 0 {
				return errors.Errorf("invalid row %d", row)
			}
			count := c.Int("count")

			m, err := dbutil.OpenTable(path, false, modelOptions(c))
			if err != nil {
				return err
			}
			defer func() {
				err = multierr.Append(err, m.Close())
			}()

			// make sure every targeted row is loaded.
			for m.RowCount()-row < count && m.CanFetchMore() {
				if _, err := m.FetchMore(); err != nil {
					return err
				}
			}

			before := m.RowCount()
			err = m.RemoveRows(row, count)
			fmt.Fprintf(c.App.Writer, "deleted %d row(s)\n", before-m.RowCount())
			return err
		},
	}
}
