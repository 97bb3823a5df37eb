// Package api is the boundary the views consume. Every operation returns a
// Result; no error value crosses it.
package api

import (
	"context"
	"log/slog"
	"strings"

	"taskman/internal/logging"
	"taskman/internal/service"
	"taskman/internal/session"
)

// Result is the uniform outcome of an operation. When Success is false,
// Error holds user-facing text and Kind says where the failure came from.
type Result[T any] struct {
	Success bool
	Data    T
	Error   string
	Kind    service.ErrorKind
}

func ok[T any](v T) Result[T] {
	return Result[T]{Success: true, Data: v}
}

func fail[T any](zero T, err error) Result[T] {
	return Result[T]{Data: zero, Error: service.Message(err), Kind: service.KindOf(err)}
}

// Client wraps a service.Service with pre-flight checks and result normalization.
type Client struct {
	svc     service.Service
	session *session.Store
	logger  *slog.Logger
}

// New returns a Client. The session store is consulted by UpdateTask.
func New(svc service.Service, store *session.Store, logger *slog.Logger) *Client {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Client{svc: svc, session: store, logger: logger.With("component", "api")}
}

// Session returns the store this client reads the username from.
func (c *Client) Session() *session.Store {
	return c.session
}

// Login establishes username with the service. Data is the confirmation message.
func (c *Client) Login(ctx context.Context, username string) Result[string] {
	if strings.TrimSpace(username) == "" {
		return fail("", service.Validation("Username is required"))
	}
	msg, err := c.svc.Login(ctx, username)
	if err != nil {
		return failed(c, "login", "", err)
	}
	return ok(msg)
}

// ListTasks fetches the tasks of username. On failure Data is an empty, non-nil slice.
func (c *Client) ListTasks(ctx context.Context, username string) Result[[]service.Task] {
	empty := []service.Task{}
	if strings.TrimSpace(username) == "" {
		return fail(empty, service.Validation("Username is required"))
	}
	tasks, err := c.svc.ListTasks(ctx, username)
	if err != nil {
		return failed(c, "list", empty, err)
	}
	if tasks == nil {
		tasks = empty
	}
	return ok(tasks)
}

// CreateTask creates a task. Title and username must be non-empty; that is
// checked before any request is sent.
func (c *Client) CreateTask(ctx context.Context, title, username string) Result[service.Task] {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(username) == "" {
		return fail(service.Task{}, service.Validation("Title and username are required"))
	}
	task, err := c.svc.CreateTask(ctx, strings.TrimSpace(title), username)
	if err != nil {
		return failed(c, "create", service.Task{}, err)
	}
	return ok(task)
}

// UpdateTask replaces a task's title and completed flag. The username sent is
// read from the session store at call time.
func (c *Client) UpdateTask(ctx context.Context, id, title string, completed bool) Result[service.Task] {
	username, found := "", false
	if c.session != nil {
		username, found = c.session.Username()
	}
	if !found {
		return fail(service.Task{}, service.Validation("Not logged in"))
	}
	if strings.TrimSpace(id) == "" {
		return fail(service.Task{}, service.Validation("Task ID is required"))
	}
	if strings.TrimSpace(title) == "" {
		return fail(service.Task{}, service.Validation("Task title is required"))
	}
	task, err := c.svc.UpdateTask(ctx, id, strings.TrimSpace(title), completed, username)
	if err != nil {
		return failed(c, "update", service.Task{}, err)
	}
	return ok(task)
}

// CompleteTask marks a task completed via the dedicated endpoint.
func (c *Client) CompleteTask(ctx context.Context, id string) Result[service.Task] {
	if strings.TrimSpace(id) == "" {
		return fail(service.Task{}, service.Validation("Task ID is required"))
	}
	task, err := c.svc.CompleteTask(ctx, id)
	if err != nil {
		return failed(c, "complete", service.Task{}, err)
	}
	return ok(task)
}

// DeleteTask removes a task. Data is the confirmation message.
func (c *Client) DeleteTask(ctx context.Context, id string) Result[string] {
	if strings.TrimSpace(id) == "" {
		return fail("", service.Validation("Task ID is required"))
	}
	msg, err := c.svc.DeleteTask(ctx, id)
	if err != nil {
		return failed(c, "delete", "", err)
	}
	return ok(msg)
}

// failed logs a rejected operation and converts err into a Result.
func failed[T any](c *Client, op string, zero T, err error) Result[T] {
	r := fail(zero, err)
	c.logger.Info("operation failed", "op", op, "kind", r.Kind.String(), "error", r.Error)
	return r
}
