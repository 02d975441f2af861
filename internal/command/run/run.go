package run

import (
	"github.com/keshon/cfgbak/internal/backup"
	"github.com/keshon/cfgbak/internal/cli"
	"github.com/keshon/cfgbak/internal/config"
	"github.com/keshon/cfgbak/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string  { return "run" }
func (c *Command) Brief() string { return "Run one full backup cycle" }
func (c *Command) Usage() string { return "run" }
func (c *Command) Help() string {
	return `Execute one complete backup cycle:
privacy check, download, change detection, snapshot write, retention pruning.

The run is blocked unless the configured GitHub repository is private.`
}
func (c *Command) Aliases() []string { return []string{"backup"} }

func (c *Command) Run(ctx *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	return backup.New(cfg).Run()
}

func init() {
	cli.RegisterCommand(
		cli.ApplyMiddlewares(
			&Command{},
			middleware.WithDebugArgsPrint(),
			middleware.WithStoreIntegrityCheck(),
		),
	)
}
