package commands

import (
	"fmt"
	"runtime/debug"

	"github.com/urfave/cli/v2"
)

// NewVersionCommand returns a cli.Command for "dbfgrid version".
func NewVersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Shows the dbfgrid version",
		Action: func(c *cli.Context) error {
			info, ok := debug.ReadBuildInfo()
			if !ok {
				fmt.Fprintln(c.App.Writer, "version not available")
				return nil
			}

			version := info.Main.Version
			if version == "" {
				version = "(devel)"
			}
			fmt.Fprintf(c.App.Writer, "dbfgrid %v\n", version)
			return nil
		},
	}
}
