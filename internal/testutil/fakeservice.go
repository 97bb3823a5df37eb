// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"taskman/internal/service"
)

// ErrNotFound is returned when a task does not exist.
var ErrNotFound = &service.Error{Kind: service.KindServer, Status: 404, Message: "Task not found"}

// ErrUnreachable simulates a transport failure.
var ErrUnreachable = &service.Error{Kind: service.KindNetwork, Message: "No response from server. Please check your connection."}

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu    sync.RWMutex
	tasks []service.Task
	users map[string]bool
	calls map[string]int

	// Error injection for testing
	LoginErr    error
	ListErr     error
	CreateErr   error
	UpdateErr   error
	CompleteErr error
	DeleteErr   error
}

// NewFakeService creates a new empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		users: make(map[string]bool),
		calls: make(map[string]int),
	}
}

// AddTask adds a task owned by username and returns its ID.
func (f *FakeService) AddTask(id, title, username string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id == "" {
		id = uuid.NewString()
	}
	f.tasks = append(f.tasks, service.Task{ID: id, Title: title, Username: username})
	return id
}

// Task returns the stored task with id.
func (f *FakeService) Task(id string) (service.Task, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// HasUser reports whether username has logged in.
func (f *FakeService) HasUser(username string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.users[username]
}

// Calls returns how many times the named operation was invoked
// ("Login", "ListTasks", ...). Calls that fail by injection count too.
func (f *FakeService) Calls(op string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.calls[op]
}

// TotalCalls returns the number of calls across all operations.
func (f *FakeService) TotalCalls() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *FakeService) record(op string) {
	f.mu.Lock()
	f.calls[op]++
	f.mu.Unlock()
}

// Login implements service.Service.
func (f *FakeService) Login(ctx context.Context, username string) (string, error) {
	f.record("Login")
	if f.LoginErr != nil {
		return "", f.LoginErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[username] = true
	return "Login successful", nil
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, username string) ([]service.Task, error) {
	f.record("ListTasks")
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := []service.Task{}
	for _, t := range f.tasks {
		if t.Username == username {
			result = append(result, t)
		}
	}
	return result, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, title, username string) (service.Task, error) {
	f.record("CreateTask")
	if f.CreateErr != nil {
		return service.Task{}, f.CreateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	task := service.Task{ID: uuid.NewString(), Title: title, Username: username}
	f.tasks = append(f.tasks, task)
	return task, nil
}

// UpdateTask implements service.Service. Ownership is kept from the stored task.
func (f *FakeService) UpdateTask(ctx context.Context, id, title string, completed bool, username string) (service.Task, error) {
	f.record("UpdateTask")
	if f.UpdateErr != nil {
		return service.Task{}, f.UpdateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if strings.TrimSpace(title) == "" {
		return service.Task{}, &service.Error{Kind: service.KindServer, Status: 400, Message: "Title cannot be empty"}
	}
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i].Title = strings.TrimSpace(title)
			f.tasks[i].Completed = completed
			return f.tasks[i], nil
		}
	}
	return service.Task{}, ErrNotFound
}

// CompleteTask implements service.Service. Completing is idempotent.
func (f *FakeService) CompleteTask(ctx context.Context, id string) (service.Task, error) {
	f.record("CompleteTask")
	if f.CompleteErr != nil {
		return service.Task{}, f.CompleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i].Completed = true
			return f.tasks[i], nil
		}
	}
	return service.Task{}, ErrNotFound
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) (string, error) {
	f.record("DeleteTask")
	if f.DeleteErr != nil {
		return "", f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return "Task deleted", nil
		}
	}
	return "", ErrNotFound
}
