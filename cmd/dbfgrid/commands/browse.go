package commands

import (
	"github.com/chaisql/dbfgrid/cmd/dbfgrid/browse"
	"github.com/chaisql/dbfgrid/cmd/dbfgrid/dbutil"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
)

// NewBrowseCommand returns a cli.Command for "dbfgrid browse".
func NewBrowseCommand() *cli.Command {
	return &cli.Command{
		Name:      "browse",
		Usage:     "Browse and edit a table interactively",
		UsageText: `dbfgrid browse [--read-only] path`,
		Description: `The browse command opens a table in the terminal.
Rows are loaded in batches while scrolling down.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "read-only",
				Usage: "open the table in read-only mode",
			},
		},
		Action: func(c *cli.Context) (err error) {
			path, err := tablePath(c)
			if err != nil {
				return err
			}

			m, err := dbutil.OpenTable(path, c.Bool("read-only"), modelOptions(c))
			if err != nil {
				return err
			}
			defer func() {
				err = multierr.Append(err, m.Close())
			}()

			return browse.Run(c.Context, m)
		},
	}
}
