package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"strings"

	"taskman/internal/exitcode"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	yes bool
}

// SetYes skips the confirmation prompt (for testing).
func (c *RmCmd) SetYes(yes bool) {
	c.yes = yes
}

func (c *RmCmd) Name() string       { return "rm" }
func (c *RmCmd) Aliases() []string  { return []string{"delete"} }
func (c *RmCmd) Synopsis() string   { return "Delete a task" }
func (c *RmCmd) Usage() string      { return "taskman rm [--yes] <n>" }
func (c *RmCmd) NeedsBackend() bool { return true }
func (c *RmCmd) NeedsSession() bool { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "")
	fs.BoolVar(&c.yes, "y", false, "")
}

func (c *RmCmd) Run(ctx context.Context, env *Env, args []string) int {
	task, _, code := resolveTaskArg(ctx, env, args)
	if code != exitcode.Success {
		return code
	}

	if !c.yes && !confirm(env, fmt.Sprintf("delete %q? [y/N] ", task.Title)) {
		if !env.Config.Quiet {
			fmt.Fprintln(env.Out, "cancelled")
		}
		return exitcode.Success
	}

	res := env.Client.DeleteTask(ctx, task.ID)
	if !res.Success {
		return fail(env.ErrOut, res.Kind, res.Error)
	}
	return env.ok()
}

// confirm prompts on ErrOut and reads one line from In. Anything but y/yes is a no.
func confirm(env *Env, prompt string) bool {
	if env.In == nil {
		return false
	}
	fmt.Fprint(env.ErrOut, prompt)
	line, err := bufio.NewReader(env.In).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
