package cli

// Middleware decorates a Command with behavior that runs before it, such as
// the pre-run store integrity warning or debug argument logging.
type Middleware func(Command) Command

// WrappedCommand delegates everything to the inner command except Run,
// which goes through Wrap when set.
type WrappedCommand struct {
	Command
	Wrap func(ctx *Context) error
}

func (w *WrappedCommand) Run(ctx *Context) error {
	if w.Wrap != nil {
		return w.Wrap(ctx)
	}
	return w.Command.Run(ctx)
}

// ApplyMiddlewares wraps a command with any number of middlewares.
// The last middleware applied runs first.
func ApplyMiddlewares(cmd Command, mws ...Middleware) Command {
	for _, mw := range mws {
		cmd = mw(cmd)
	}
	return cmd
}
