package prune

import (
	"fmt"
	"strconv"

	"github.com/juju/clock"

	"github.com/keshon/cfgbak/internal/cli"
	"github.com/keshon/cfgbak/internal/config"
	"github.com/keshon/cfgbak/internal/fs"
	"github.com/keshon/cfgbak/internal/middleware"
	"github.com/keshon/cfgbak/internal/store"
)

type Command struct{}

func (c *Command) Name() string  { return "prune" }
func (c *Command) Brief() string { return "Delete old snapshots beyond the retention limit" }
func (c *Command) Usage() string { return "prune [max]" }
func (c *Command) Help() string {
	return `Delete the oldest snapshots, keeping the most recent ones.

The limit comes from MAX_BACKUPS (default 100) or from an explicit
argument: prune 10 keeps the 10 newest snapshots.`
}
func (c *Command) Aliases() []string { return nil }

func (c *Command) Run(ctx *cli.Context) error {
	max := config.MaxBackups()
	if len(ctx.Args) > 0 {
		n, err := strconv.Atoi(ctx.Args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid retention limit %q", ctx.Args[0])
		}
		max = n
	}

	s := store.New(config.BackupDir(), fs.NewOSFS(), clock.WallClock)
	deleted, err := s.Prune(max)
	if err != nil {
		return err
	}
	fmt.Printf("Deleted %d snapshot(s), keeping up to %d.\n", deleted, max)
	return nil
}

func init() {
	cli.RegisterCommand(
		cli.ApplyMiddlewares(
			&Command{},
			middleware.WithDebugArgsPrint(),
		),
	)
}
