package cli_test

import (
	"errors"
	"testing"

	"github.com/keshon/cfgbak/internal/cli"
)

type fakeCommand struct {
	name    string
	aliases []string
	run     func(ctx *cli.Context) error
}

func (c *fakeCommand) Name() string    { return c.name }
func (c *fakeCommand) Brief() string   { return "fake" }
func (c *fakeCommand) Help() string    { return "fake" }
func (c *fakeCommand) Usage() string   { return c.name }
func (c *fakeCommand) Aliases() []string {
	return c.aliases
}
func (c *fakeCommand) Run(ctx *cli.Context) error {
	if c.run != nil {
		return c.run(ctx)
	}
	return nil
}

func TestRegistryAliases(t *testing.T) {
	cmd := &fakeCommand{name: "snap", aliases: []string{"sn"}}
	cli.RegisterCommand(cmd)

	got, ok := cli.GetCommand("snap")
	if !ok || got != cli.Command(cmd) {
		t.Fatal("command not found by name")
	}
	got, ok = cli.GetCommand("sn")
	if !ok || got != cli.Command(cmd) {
		t.Fatal("command not found by alias")
	}

	// aliases must not duplicate the command in the listing
	count := 0
	for _, c := range cli.AllCommands() {
		if c == cli.Command(cmd) {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected command listed once, got %d", count)
	}
}

func TestMiddlewareWrapOrder(t *testing.T) {
	var trace []string

	cmd := &fakeCommand{name: "traced", run: func(ctx *cli.Context) error {
		trace = append(trace, "cmd")
		return nil
	}}

	mw := func(tag string) cli.Middleware {
		return func(inner cli.Command) cli.Command {
			return &cli.WrappedCommand{
				Command: inner,
				Wrap: func(ctx *cli.Context) error {
					trace = append(trace, tag)
					return inner.Run(ctx)
				},
			}
		}
	}

	wrapped := cli.ApplyMiddlewares(cmd, mw("a"), mw("b"))
	if err := wrapped.Run(&cli.Context{}); err != nil {
		t.Fatal(err)
	}
	// last applied runs first
	if len(trace) != 3 || trace[0] != "b" || trace[1] != "a" || trace[2] != "cmd" {
		t.Fatalf("unexpected middleware order: %v", trace)
	}
}

func TestWrappedCommandErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	cmd := &fakeCommand{name: "failing", run: func(ctx *cli.Context) error { return boom }}

	wrapped := cli.ApplyMiddlewares(cmd, func(inner cli.Command) cli.Command {
		return &cli.WrappedCommand{
			Command: inner,
			Wrap: func(ctx *cli.Context) error {
				return inner.Run(ctx)
			},
		}
	})

	if err := wrapped.Run(&cli.Context{}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
