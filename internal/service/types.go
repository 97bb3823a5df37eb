// Package service defines the backend-agnostic interface for task operations.
package service

// Task represents a single task item.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Username  string `json:"username"`
}

// Status returns the display label for the task's completion state.
func (t Task) Status() string {
	if t.Completed {
		return "Completed"
	}
	return "Pending"
}
