package commands

import (
	"fmt"
	"strconv"

	"github.com/chaisql/dbfgrid/cmd/dbfgrid/dbutil"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
)

// NewSetCommand returns a cli.Command for "dbfgrid set".
func NewSetCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Change values of a row",
		UsageText: `dbfgrid set path row name=value...`,
		Description: `The set command writes values to the fields of a row.
Values are converted to the type of their field:

$ dbfgrid set items 4 price=13 sold=2024-02-01

An empty value or NULL clears a field.`,
		Action: func(c *cli.Context) (err error) {
			path, err := tablePath(c)
			if err != nil {
				return err
			}

			args := c.Args().Slice()
			if len(args) < 3 {
				return cli.Exit(c.Command.UsageText, 1)
			}

			row, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.Wrap(err, "invalid row")
			}

			m, err := dbutil.OpenTable(path, false, modelOptions(c))
			if err != nil {
				return err
			}
			defer func() {
				err = multierr.Append(err, m.Close())
			}()

			as, err := dbutil.ParseAssignments(m.Schema(), args[2:])
			if err != nil {
				return err
			}

			for m.RowCount() <= row && m.CanFetchMore() {
				if _, err := m.FetchMore(); err != nil {
					return err
				}
			}

			for _, a := range as {
				err = m.SetValue(row, a.Column, a.Value)
				if err != nil {
					return errors.Wrapf(err, "field %q", m.Schema().FieldName(a.Column))
				}
			}

			r, err := m.Record(row)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "row %d: %s\n", row, r)
			return nil
		},
	}
}
