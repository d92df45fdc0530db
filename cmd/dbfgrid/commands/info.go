package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/chaisql/dbfgrid/cmd/dbfgrid/dbutil"
	"github.com/chaisql/dbfgrid/types"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
)

// NewInfoCommand returns a cli.Command for "dbfgrid info".
func NewInfoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "Show the header of a table",
		UsageText: `dbfgrid info path`,
		Action: func(c *cli.Context) (err error) {
			path, err := tablePath(c)
			if err != nil {
				return err
			}

			s, err := dbutil.OpenStore(path)
			if err != nil {
				return err
			}
			defer func() {
				err = multierr.Append(err, s.Close())
			}()

			var deleted int
			for s.Next() {
				if s.Record().Deleted {
					deleted++
				}
			}
			if err := s.Err(); err != nil {
				return err
			}

			w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "id:\t%s\n", s.ID())
			fmt.Fprintf(w, "records:\t%d\n", s.PhysicalCount())
			fmt.Fprintf(w, "deleted:\t%d\n", deleted)
			fmt.Fprintf(w, "last update:\t%s\n", types.NewDateValue(s.LastUpdate()))
			fmt.Fprintf(w, "fields:\t\n")
			for i, f := range s.Schema().Fields {
				fmt.Fprintf(w, "  %d\t%s\t%c\t%s\n", i, f.Name, f.Type.Code(), dbutil.FormatField(f))
			}

			return w.Flush()
		},
	}
}
