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
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string       { return "add" }
func (c *AddCmd) Aliases() []string  { return []string{"create"} }
func (c *AddCmd) Synopsis() string   { return "Create a task" }
func (c *AddCmd) Usage() string      { return "taskman add <title...>" }
func (c *AddCmd) NeedsBackend() bool { return true }
func (c *AddCmd) NeedsSession() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(env.ErrOut, "error: title required")
		return exitcode.UserError
	}

	title := strings.TrimSpace(strings.Join(args, " "))
	if err := validate.Title(title); err != nil {
		return failErr(env.ErrOut, err)
	}

	res := env.Client.CreateTask(ctx, title, env.username())
	if !res.Success {
		return fail(env.ErrOut, res.Kind, res.Error)
	}
	env.Logger.Debug("task created", "id", res.Data.ID)
	return env.ok()
}
