package middleware

import (
	"encoding/json"
	"log/slog"
	"path/filepath"

	"github.com/keshon/cfgbak/internal/cli"
	"github.com/keshon/cfgbak/internal/config"
	"github.com/keshon/cfgbak/internal/fs"
)

// WithStoreIntegrityCheck warns when the latest pointer file is not valid
// JSON before the command runs. A corrupt baseline is not fatal: change
// detection treats it as changed and the next run replaces it.
func WithStoreIntegrityCheck() cli.Middleware {
	return func(cmd cli.Command) cli.Command {
		return &cli.WrappedCommand{
			Command: cmd,
			Wrap: func(ctx *cli.Context) error {
				fsys := fs.NewOSFS()
				path := filepath.Join(config.BackupDir(), config.LatestFile)
				if data, err := fsys.ReadFile(path); err == nil {
					var v any
					if err := json.Unmarshal(data, &v); err != nil {
						slog.Warn("latest backup file is corrupt, next run will save unconditionally",
							"file", path, "error", err)
					}
				}
				return cmd.Run(ctx)
			},
		}
	}
}
