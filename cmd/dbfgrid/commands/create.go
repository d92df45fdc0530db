package commands

import (
	"fmt"

	"github.com/chaisql/dbfgrid/cmd/dbfgrid/dbutil"
	"github.com/chaisql/dbfgrid/store/pebblestore"
	"github.com/urfave/cli/v2"
)

// NewCreateCommand returns a cli.Command for "dbfgrid create".
func NewCreateCommand() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Create an empty table",
		UsageText: `dbfgrid create -f name:type[:length[.decimals]]... path`,
		Description: `The create command creates an empty table with the given fields.

Types are text (C), numeric (N), integer (I), boolean (L) and date (D):

$ dbfgrid create -f name:C:30 -f price:N:10.2 -f sold:D items`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:     "field",
				Aliases:  []string{"f"},
				Usage:    "field definition, in order",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			path, err := tablePath(c)
			if err != nil {
				return err
			}

			schema, err := dbutil.ParseSchema(c.StringSlice("field"))
			if err != nil {
				return err
			}

			s, err := pebblestore.Create(path, schema, pebblestore.Options{})
			if err != nil {
				return err
			}

			fmt.Fprintf(c.App.Writer, "created table %s (%s)\n", path, s.ID())
			return s.Close()
		},
	}
}
