package commands

import (
	"context"
	"flag"
	"fmt"

	"taskman/internal/exitcode"
	"taskman/internal/tui"
)

func init() {
	Register(&UICmd{})
}

// UICmd starts the interactive UI. It is also what runs with no arguments.
type UICmd struct{}

func (c *UICmd) Name() string       { return "ui" }
func (c *UICmd) Aliases() []string  { return nil }
func (c *UICmd) Synopsis() string   { return "Start the interactive UI" }
func (c *UICmd) Usage() string      { return "taskman ui" }
func (c *UICmd) NeedsBackend() bool { return true }
func (c *UICmd) NeedsSession() bool { return false }
func (c *UICmd) Interactive() bool  { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, env *Env, args []string) int {
	env.Logger.Info("ui started", "server", env.Config.BaseURL)
	if err := tui.Run(ctx, env.Client); err != nil {
		fmt.Fprintf(env.ErrOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
