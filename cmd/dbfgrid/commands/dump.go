package commands

import (
	"io"
	"os"

	"github.com/chaisql/dbfgrid/cmd/dbfgrid/dbutil"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
)

// NewDumpCommand returns a cli.Command for "dbfgrid dump".
func NewDumpCommand() *cli.Command {
	return &cli.Command{
		Name:      "dump",
		Usage:     "Dump the rows of a table",
		UsageText: `dbfgrid dump [options] path`,
		Description: `The dump command writes every row of a table, skipping deleted records.

By default, rows are written as CSV to the standard output:

$ dbfgrid dump items
name,price,sold
chair,12.5,2024-01-31
...

Rows can also be written as JSON objects, one per line, to a file:

$ dbfgrid dump --format json -o items.json items`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "name of the file to output to. Defaults to STDOUT.",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "csv or json",
				Value: string(dbutil.FormatCSV),
			},
			&cli.BoolFlag{
				Name:  "index",
				Usage: "include the physical index of each row",
			},
		},
		Action: func(c *cli.Context) (err error) {
			path, err := tablePath(c)
			if err != nil {
				return err
			}

			format, err := dbutil.ParseFormat(c.String("format"))
			if err != nil {
				return err
			}

			m, err := dbutil.OpenTable(path, true, modelOptions(c))
			if err != nil {
				return err
			}
			defer func() {
				err = multierr.Append(err, m.Close())
			}()

			var w io.Writer = c.App.Writer
			if f := c.String("output"); f != "" {
				file, err := os.Create(f)
				if err != nil {
					return err
				}
				defer func() {
					err = multierr.Append(err, file.Close())
				}()

				w = file
			}

			return dbutil.Dump(c.Context, m, w, dbutil.DumpOptions{
				Format:    format,
				WithIndex: c.Bool("index"),
			})
		},
	}
}
