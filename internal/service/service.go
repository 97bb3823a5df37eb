// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// All task service HTTP calls go through this interface.
// Errors returned by implementations are *Error values.
type Service interface {
	// Login registers username with the service. No credential is involved.
	// Returns the server's confirmation message.
	Login(ctx context.Context, username string) (string, error)

	// ListTasks returns all tasks owned by username, in server order.
	ListTasks(ctx context.Context, username string) ([]Task, error)

	// CreateTask creates a task and returns it with its server-assigned ID.
	CreateTask(ctx context.Context, title, username string) (Task, error)

	// UpdateTask replaces the mutable fields of a task.
	UpdateTask(ctx context.Context, id, title string, completed bool, username string) (Task, error)

	// CompleteTask marks a task as completed via the dedicated endpoint.
	CompleteTask(ctx context.Context, id string) (Task, error)

	// DeleteTask deletes a task. Returns the server's confirmation message.
	DeleteTask(ctx context.Context, id string) (string, error)
}
