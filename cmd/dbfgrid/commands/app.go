package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/chaisql/dbfgrid"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// NewApp creates the dbfgrid CLI app.
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "dbfgrid"
	app.Usage = "Browse and edit tables of soft-deleted records"
	app.EnableBashCompletion = true

	app.Flags = []cli.Flag{
		&cli.IntFlag{
			Name:    "batch-size",
			Aliases: []string{"b"},
			Usage:   "maximum number of rows loaded at once",
			Value:   dbfgrid.DefaultBatchSize,
			EnvVars: []string{"DBFGRID_BATCH_SIZE"},
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "log debug information to stderr",
		},
	}

	app.Commands = []*cli.Command{
		NewCreateCommand(),
		NewInfoCommand(),
		NewDumpCommand(),
		NewInsertCommand(),
		NewDeleteCommand(),
		NewSetCommand(),
		NewBrowseCommand(),
		NewVersionCommand(),
	}

	// inject cancelable context to all commands
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		defer cancel()
		<-ch
	}()

	for i := range app.Commands {
		action := app.Commands[i].Action
		app.Commands[i].Action = func(c *cli.Context) error {
			c.Context = ctx
			return action(c)
		}
	}

	app.After = func(c *cli.Context) error {
		cancel()
		return nil
	}

	return app
}

// modelOptions builds the options of a model from the global flags.
func modelOptions(c *cli.Context) *dbfgrid.Options {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.WarnLevel)
	if c.Bool("verbose") {
		logger.SetLevel(logrus.DebugLevel)
	}

	return &dbfgrid.Options{
		BatchSize: c.Int("batch-size"),
		Logger:    logger,
	}
}

// tablePath returns the first argument or an error showing the usage.
func tablePath(c *cli.Context) (string, error) {
	path := c.Args().First()
	if path == "" {
		return "", cli.Exit(c.Command.UsageText, 1)
	}

	return path, nil
}
