// Package exitcode defines exit codes for the CLI.
package exitcode

import "taskman/internal/service"

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, failed validation, out of range).
	UserError = 1

	// SessionError indicates a missing session or a config error.
	SessionError = 2

	// BackendError indicates a network, server or response error.
	BackendError = 3
)

// ForKind maps a failure kind to an exit code.
func ForKind(kind service.ErrorKind) int {
	if kind == service.KindValidation {
		return UserError
	}
	return BackendError
}
