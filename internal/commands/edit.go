package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"taskman/internal/exitcode"
	"taskman/internal/validate"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. The completed flag is kept.
type EditCmd struct{}

func (c *EditCmd) Name() string       { return "edit" }
func (c *EditCmd) Aliases() []string  { return []string{"rename"} }
func (c *EditCmd) Synopsis() string   { return "Change a task's title" }
func (c *EditCmd) Usage() string      { return "taskman edit <n> <title...>" }
func (c *EditCmd) NeedsBackend() bool { return true }
func (c *EditCmd) NeedsSession() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *EditCmd) Run(ctx context.Context, env *Env, args []string) int {
	// Validate the new title before touching the network.
	if len(args) < 2 {
		if len(args) == 0 {
			fmt.Fprintln(env.ErrOut, "error: task number required")
		} else {
			fmt.Fprintln(env.ErrOut, "error: title required")
		}
		return exitcode.UserError
	}
	title := strings.TrimSpace(strings.Join(args[1:], " "))
	if err := validate.Title(title); err != nil {
		return failErr(env.ErrOut, err)
	}

	task, _, code := resolveTaskArg(ctx, env, args[:1])
	if code != exitcode.Success {
		return code
	}

	res := env.Client.UpdateTask(ctx, task.ID, title, task.Completed)
	if !res.Success {
		return fail(env.ErrOut, res.Kind, res.Error)
	}
	return env.ok()
}
