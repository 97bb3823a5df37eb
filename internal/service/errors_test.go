package service_test

import (
	"errors"
	"fmt"
	"testing"

	"taskman/internal/service"
)

func TestError_KindAndMessage(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &service.Error{Kind: service.KindServer, Status: 404, Message: "Task not found"})

	if got := service.KindOf(err); got != service.KindServer {
		t.Errorf("expected KindServer, got %v", got)
	}
	if got := service.Message(err); got != "Task not found" {
		t.Errorf("expected detail message, got %q", got)
	}
	if !errors.Is(err, service.ErrNotFound) {
		t.Error("expected errors.Is to match ErrNotFound")
	}
}

func TestError_IsDistinguishesStatus(t *testing.T) {
	err := &service.Error{Kind: service.KindServer, Status: 400, Message: "Title cannot be empty"}
	if errors.Is(err, service.ErrNotFound) {
		t.Error("400 should not match ErrNotFound")
	}
}

func TestKindOf_PlainError(t *testing.T) {
	if got := service.KindOf(errors.New("boom")); got != service.KindUnknown {
		t.Errorf("expected KindUnknown, got %v", got)
	}
	if got := service.Message(errors.New("boom")); got != "boom" {
		t.Errorf("expected raw message, got %q", got)
	}
}

func TestErrorKind_String(t *testing.T) {
	tests := map[service.ErrorKind]string{
		service.KindValidation: "ValidationError",
		service.KindNetwork:    "NetworkError",
		service.KindServer:     "ServerError",
		service.KindUnknown:    "UnknownError",
	}
	for kind, want := range tests {
		if kind.String() != want {
			t.Errorf("expected %q, got %q", want, kind.String())
		}
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := &service.Error{Kind: service.KindNetwork, Message: "No response from server.", Err: cause}
	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable via errors.Is")
	}
}

func TestTask_Status(t *testing.T) {
	if (service.Task{Completed: true}).Status() != "Completed" {
		t.Error("expected Completed label")
	}
	if (service.Task{}).Status() != "Pending" {
		t.Error("expected Pending label")
	}
}
