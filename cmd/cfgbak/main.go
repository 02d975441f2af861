package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/keshon/cfgbak/internal/cli"
	_ "github.com/keshon/cfgbak/internal/command/check"
	_ "github.com/keshon/cfgbak/internal/command/list"
	_ "github.com/keshon/cfgbak/internal/command/prune"
	_ "github.com/keshon/cfgbak/internal/command/run"
)

func main() {
	level := slog.LevelInfo
	if os.Getenv("BACKUP_DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	if len(os.Args) < 2 {
		fmt.Println("Usage: cfgbak <command> [args...]")
		fmt.Println("Available commands:")
		for _, cmd := range cli.AllCommands() {
			fmt.Printf("  %s: %s\n", cmd.Name(), cmd.Brief())
		}
		os.Exit(0)
	}

	cli.RunCLI(os.Args[1:])
}
