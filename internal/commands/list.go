package commands

import (
	"context"
	"flag"

	"taskman/internal/exitcode"
	"taskman/internal/output"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
type ListCmd struct{}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List tasks" }
func (c *ListCmd) Usage() string      { return "taskman list" }
func (c *ListCmd) NeedsBackend() bool { return true }
func (c *ListCmd) NeedsSession() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, env *Env, args []string) int {
	res := env.Client.ListTasks(ctx, env.username())
	if !res.Success {
		return fail(env.ErrOut, res.Kind, res.Error)
	}

	if len(res.Data) == 0 && env.Config.Quiet {
		return exitcode.Success
	}
	output.FormatTasks(env.Out, res.Data)
	return exitcode.Success
}
