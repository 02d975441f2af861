package check

import (
	"fmt"
	"os"

	"github.com/keshon/cfgbak/internal/cli"
	"github.com/keshon/cfgbak/internal/config"
	"github.com/keshon/cfgbak/internal/fs"
	"github.com/keshon/cfgbak/internal/gate"
	"github.com/keshon/cfgbak/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string  { return "check" }
func (c *Command) Brief() string { return "Verify the repository privacy precondition" }
func (c *Command) Usage() string { return "check" }
func (c *Command) Help() string {
	return `Query the repository-hosting API and report whether backups may run.

Requires GITHUB_TOKEN and GITHUB_REPOSITORY (owner/repo). Exits non-zero
when the repository is public, unreachable, or the credentials are missing.`
}
func (c *Command) Aliases() []string { return nil }

func (c *Command) Run(ctx *cli.Context) error {
	g := gate.New(
		os.Getenv("GITHUB_TOKEN"),
		os.Getenv("GITHUB_REPOSITORY"),
		config.BackupDir(),
		fs.NewOSFS(),
	)
	if err := g.Evaluate(); err != nil {
		return err
	}
	fmt.Println("Privacy check passed: repository is private.")
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
