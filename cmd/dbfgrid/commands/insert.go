package commands

import (
	"fmt"

	"github.com/chaisql/dbfgrid/cmd/dbfgrid/dbutil"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
)

// NewInsertCommand returns a cli.Command for "dbfgrid insert".
func NewInsertCommand() *cli.Command {
	return &cli.Command{
		Name:      "insert",
		Usage:     "Append a row to a table",
		UsageText: `dbfgrid insert path [name=value]...`,
		Description: `The insert command appends a blank row at the end of a table,
then sets the given fields:

$ dbfgrid insert items name=chair price=12.5 sold=2024-01-31`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "number of rows to append",
				Value:   1,
			},
		},
		Action: func(c *cli.Context) (err error) {
			path, err := tablePath(c)
			if err != nil {
				return err
			}

			m, err := dbutil.OpenTable(path, false, modelOptions(c))
			if err != nil {
				return err
			}
			defer func() {
				err = multierr.Append(err, m.Close())
			}()

			as, err := dbutil.ParseAssignments(m.Schema(), c.Args().Tail())
			if err != nil {
				return err
			}

			// new rows are only visible once every record is loaded.
			err = dbutil.LoadAll(c.Context, m)
			if err != nil {
				return err
			}

			begin := m.RowCount()
			err = m.InsertRowsAtEnd(c.Int("count"))
			if err != nil {
				return err
			}

			for row := begin; row < m.RowCount(); row++ {
				for _, a := range as {
					err = m.SetValue(row, a.Column, a.Value)
					if err != nil {
						return err
					}
				}
			}

			fmt.Fprintf(c.App.Writer, "inserted %d row(s), table has %d row(s)\n", m.RowCount()-begin, m.RowCount())
			return nil
		},
	}
}
