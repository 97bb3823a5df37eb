package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"taskman/internal/service"
)

// TaskServer is an in-memory HTTP task service speaking the same JSON wire
// format as the real one. Errors are {"detail": "..."} with a non-2xx status.
type TaskServer struct {
	*httptest.Server

	mu       sync.Mutex
	tasks    []service.Task
	users    []string
	requests []*http.Request

	// FailNext, when non-zero, makes the next request fail with that status.
	FailNext int

	// ToggleComplete makes PUT /tasks/complete/{id} flip the flag instead of
	// setting it, as the reference backend does.
	ToggleComplete bool
}

// NewTaskServer starts a TaskServer and registers its shutdown with t.Cleanup.
func NewTaskServer(t *testing.T) *TaskServer {
	t.Helper()
	s := &TaskServer{}

	r := mux.NewRouter()
	r.Use(s.recordAndInject)
	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/tasks", s.handleCreate).Methods(http.MethodPost)
	// Registered before /tasks/{id} so "complete" is never taken as an ID.
	r.HandleFunc("/tasks/complete/{id}", s.handleComplete).Methods(http.MethodPut)
	r.HandleFunc("/tasks/{username}", s.handleList).Methods(http.MethodGet)
	r.HandleFunc("/tasks/{id}", s.handleUpdate).Methods(http.MethodPut)
	r.HandleFunc("/tasks/{id}", s.handleDelete).Methods(http.MethodDelete)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// Seed adds a task directly and returns its ID.
func (s *TaskServer) Seed(title, username string, completed bool) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.tasks = append(s.tasks, service.Task{ID: id, Title: title, Completed: completed, Username: username})
	return id
}

// Tasks returns a copy of the stored tasks.
func (s *TaskServer) Tasks() []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]service.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Users returns the usernames that have logged in.
func (s *TaskServer) Users() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.users...)
}

// Requests returns the requests received so far.
func (s *TaskServer) Requests() []*http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*http.Request(nil), s.requests...)
}

func (s *TaskServer) recordAndInject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Clone(r.Context()))
		fail := s.FailNext
		s.FailNext = 0
		s.mu.Unlock()

		if fail != 0 {
			writeDetail(w, fail, "Injected failure")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *TaskServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Username == "" {
		writeValidation(w, "Field required")
		return
	}
	s.mu.Lock()
	known := false
	for _, u := range s.users {
		if u == body.Username {
			known = true
		}
	}
	if !known {
		s.users = append(s.users, body.Username)
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Login successful"})
}

func (s *TaskServer) handleList(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	s.mu.Lock()
	tasks := []service.Task{}
	for _, t := range s.tasks {
		if t.Username == username {
			tasks = append(tasks, t)
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "tasks": tasks})
}

func (s *TaskServer) handleCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title    string `json:"title"`
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Title == "" || body.Username == "" {
		writeValidation(w, "Field required")
		return
	}
	task := service.Task{ID: uuid.NewString(), Title: body.Title, Username: body.Username}
	s.mu.Lock()
	s.tasks = append(s.tasks, task)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "task": task})
}

func (s *TaskServer) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var body service.Task
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeValidation(w, "Invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.ID != id {
			continue
		}
		if strings.TrimSpace(body.Title) == "" {
			writeDetail(w, http.StatusBadRequest, "Title cannot be empty")
			return
		}
		// Ownership stays with the stored task.
		s.tasks[i] = service.Task{ID: id, Title: strings.TrimSpace(body.Title), Completed: body.Completed, Username: t.Username}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "task": s.tasks[i]})
		return
	}
	writeDetail(w, http.StatusNotFound, "Task not found")
}

func (s *TaskServer) handleComplete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks[i].Completed = !s.ToggleComplete || !t.Completed
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "task": s.tasks[i]})
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "Task not found")
}

func (s *TaskServer) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Task deleted"})
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "Task not found")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]any{"detail": detail})
}

// writeValidation mimics a request-validation failure, where detail is a list.
func writeValidation(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"detail": []map[string]any{{"loc": []string{"body"}, "msg": msg, "type": "value_error"}},
	})
}
