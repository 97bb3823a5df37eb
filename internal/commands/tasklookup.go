package commands

import (
	"context"
	"fmt"

	"taskman/internal/api"
	"taskman/internal/exitcode"
	"taskman/internal/service"
)

// findTaskByNumber resolves a 1-based number against the user's current list,
// in the order the service returns it.
func findTaskByNumber(ctx context.Context, client *api.Client, username string, num int) (service.Task, error) {
	res := client.ListTasks(ctx, username)
	if !res.Success {
		return service.Task{}, &service.Error{Kind: res.Kind, Message: res.Error}
	}
	if num < 1 || num > len(res.Data) {
		return service.Task{}, service.Validation(fmt.Sprintf("task number out of range: %d", num))
	}
	return res.Data[num-1], nil
}

// resolveTaskArg parses the task number at the front of args and looks it up.
// On failure it prints the error and returns a non-zero exit code.
func resolveTaskArg(ctx context.Context, env *Env, args []string) (service.Task, []string, int) {
	num, rest, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(env.ErrOut, "error: %v\n", err)
		return service.Task{}, nil, exitcode.UserError
	}
	task, err := findTaskByNumber(ctx, env.Client, env.username(), num)
	if err != nil {
		return service.Task{}, nil, failErr(env.ErrOut, err)
	}
	return task, rest, exitcode.Success
}
