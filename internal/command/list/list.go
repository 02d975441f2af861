package list

import (
	"fmt"

	"github.com/juju/clock"

	"github.com/keshon/cfgbak/internal/cli"
	"github.com/keshon/cfgbak/internal/config"
	"github.com/keshon/cfgbak/internal/fs"
	"github.com/keshon/cfgbak/internal/middleware"
	"github.com/keshon/cfgbak/internal/store"
)

type Command struct{}

func (c *Command) Name() string      { return "list" }
func (c *Command) Brief() string     { return "List stored snapshots, newest first" }
func (c *Command) Usage() string     { return "list" }
func (c *Command) Help() string      { return "Print every stored snapshot with its modification time and size." }
func (c *Command) Aliases() []string { return []string{"ls"} }

func (c *Command) Run(ctx *cli.Context) error {
	s := store.New(config.BackupDir(), fs.NewOSFS(), clock.WallClock)

	entries, err := s.List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No backups found.")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s  %10d  %s\n", e.ModTime.Format("2006-01-02 15:04:05"), e.Size, e.Name)
	}
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
