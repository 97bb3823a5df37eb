package commands

import (
	"context"
	"flag"
	"fmt"

	"taskman/internal/exitcode"
)

func init() {
	Register(&DoneCmd{})
	Register(&ReopenCmd{})
}

// DoneCmd implements the done command. An already completed task is left
// alone, since the complete endpoint may toggle.
type DoneCmd struct{}

func (c *DoneCmd) Name() string       { return "done" }
func (c *DoneCmd) Aliases() []string  { return nil }
func (c *DoneCmd) Synopsis() string   { return "Mark a task completed" }
func (c *DoneCmd) Usage() string      { return "taskman done <n>" }
func (c *DoneCmd) NeedsBackend() bool { return true }
func (c *DoneCmd) NeedsSession() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, env *Env, args []string) int {
	task, _, code := resolveTaskArg(ctx, env, args)
	if code != exitcode.Success {
		return code
	}
	if task.Completed {
		if !env.Config.Quiet {
			fmt.Fprintln(env.Out, "already completed")
		}
		return exitcode.Success
	}

	res := env.Client.CompleteTask(ctx, task.ID)
	if !res.Success {
		return fail(env.ErrOut, res.Kind, res.Error)
	}
	return env.ok()
}

// ReopenCmd marks a completed task pending again. The complete endpoint
// only moves forward, so this goes through a full update.
type ReopenCmd struct{}

func (c *ReopenCmd) Name() string       { return "reopen" }
func (c *ReopenCmd) Aliases() []string  { return []string{"undone"} }
func (c *ReopenCmd) Synopsis() string   { return "Mark a task pending" }
func (c *ReopenCmd) Usage() string      { return "taskman reopen <n>" }
func (c *ReopenCmd) NeedsBackend() bool { return true }
func (c *ReopenCmd) NeedsSession() bool { return true }

func (c *ReopenCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ReopenCmd) Run(ctx context.Context, env *Env, args []string) int {
	task, _, code := resolveTaskArg(ctx, env, args)
	if code != exitcode.Success {
		return code
	}
	if !task.Completed {
		if !env.Config.Quiet {
			fmt.Fprintln(env.Out, "already pending")
		}
		return exitcode.Success
	}

	res := env.Client.UpdateTask(ctx, task.ID, task.Title, false)
	if !res.Success {
		return fail(env.ErrOut, res.Kind, res.Error)
	}
	return env.ok()
}
