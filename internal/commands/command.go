// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"taskman/internal/api"
	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/service"
	"taskman/internal/session"
)

// Env is what a command runs against.
type Env struct {
	Config  *config.Config
	Session *session.Store

	// Client is nil if NeedsBackend returns false.
	Client *api.Client

	Logger *slog.Logger

	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsBackend returns true if the command talks to the task service.
	NeedsBackend() bool

	// NeedsSession returns true if the command requires a logged-in user.
	// The dispatcher refuses to run it otherwise.
	NeedsSession() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command with the positional arguments left after
	// flag parsing and returns the exit code.
	Run(ctx context.Context, env *Env, args []string) int
}

// Interactive is implemented by commands that take over the terminal.
// Their debug logs go to the log file instead of stderr.
type Interactive interface {
	Interactive() bool
}

// fail prints a failed result and returns the matching exit code.
func fail(errOut io.Writer, kind service.ErrorKind, msg string) int {
	fmt.Fprintf(errOut, "error: %s\n", msg)
	return exitcode.ForKind(kind)
}

// failErr is fail for an error value.
func failErr(errOut io.Writer, err error) int {
	return fail(errOut, service.KindOf(err), service.Message(err))
}

// username returns the session username. The dispatcher guarantees one
// exists for commands that need a session.
func (e *Env) username() string {
	name, _ := e.Session.Username()
	return name
}

func (e *Env) ok() int {
	if !e.Config.Quiet {
		fmt.Fprintln(e.Out, "ok")
	}
	return exitcode.Success
}
