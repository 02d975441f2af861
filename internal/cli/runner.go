package cli

import (
	"fmt"
	"log/slog"
	"os"
)

// RunCLI resolves and executes a command. Errors returned by a command are
// logged and turned into a non-zero exit; nothing panics outward.
func RunCLI(args []string) {
	if len(args) == 0 {
		slog.Error("no command provided")
		os.Exit(1)
	}

	cmd, ok := GetCommand(args[0])
	if !ok {
		slog.Error("unknown command", "command", args[0])
		os.Exit(1)
	}

	ctx := &Context{
		Args: args[1:],
	}

	if err := run(cmd, ctx); err != nil {
		slog.Error("command failed", "command", cmd.Name(), "error", err)
		os.Exit(1)
	}
}

// run executes a command, converting a panic into an error so the process
// always exits through the normal path.
func run(cmd Command, ctx *Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = &panicError{value: r}
		}
	}()
	return cmd.Run(ctx)
}

type panicError struct{ value any }

func (e *panicError) Error() string {
	return fmt.Sprintf("unexpected panic: %v", e.value)
}
