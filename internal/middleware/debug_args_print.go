package middleware

import (
	"log/slog"
	"os"

	"github.com/keshon/cfgbak/internal/cli"
)

// WithDebugArgsPrint logs the raw command arguments when BACKUP_DEBUG is set
func WithDebugArgsPrint() cli.Middleware {
	return func(cmd cli.Command) cli.Command {
		return &cli.WrappedCommand{
			Command: cmd,
			Wrap: func(ctx *cli.Context) error {
				if os.Getenv("BACKUP_DEBUG") != "" {
					slog.Debug("command args", "command", cmd.Name(), "args", ctx.Args)
				}
				return cmd.Run(ctx)
			},
		}
	}
}
