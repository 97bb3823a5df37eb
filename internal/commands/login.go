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
	Register(&LoginCmd{})
}

// LoginCmd implements the login command. With --remember the server address
// in use is written to config.toml.
type LoginCmd struct {
	remember bool
}

func (c *LoginCmd) Name() string       { return "login" }
func (c *LoginCmd) Aliases() []string  { return nil }
func (c *LoginCmd) Synopsis() string   { return "Log in as a user" }
func (c *LoginCmd) Usage() string      { return "taskman login [--remember] <username>" }
func (c *LoginCmd) NeedsBackend() bool { return true }
func (c *LoginCmd) NeedsSession() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.remember, "remember", false, "save the server address to config.toml")
}

func (c *LoginCmd) Run(ctx context.Context, env *Env, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(env.ErrOut, "error: exactly one username required")
		return exitcode.UserError
	}

	username := strings.TrimSpace(args[0])
	if err := validate.Username(username); err != nil {
		return failErr(env.ErrOut, err)
	}

	res := env.Client.Login(ctx, username)
	if !res.Success {
		return fail(env.ErrOut, res.Kind, res.Error)
	}

	if err := env.Session.Save(username); err != nil {
		fmt.Fprintf(env.ErrOut, "error: failed to save session: %v\n", err)
		return exitcode.SessionError
	}
	env.Logger.Debug("session saved", "username", username)

	if c.remember {
		if err := env.Config.Save(); err != nil {
			fmt.Fprintf(env.ErrOut, "error: failed to save config: %v\n", err)
			return exitcode.SessionError
		}
		env.Logger.Debug("server saved", "server", env.Config.BaseURL)
	}
	return env.ok()
}
