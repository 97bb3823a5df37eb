package service

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed operation.
type ErrorKind int

const (
	// KindUnknown covers call setup and response parsing failures.
	KindUnknown ErrorKind = iota

	// KindValidation is a client-side, pre-flight rejection. No request was sent.
	KindValidation

	// KindNetwork means no response was received (unreachable, timed out).
	KindNetwork

	// KindServer means the service answered with a non-success response.
	KindServer
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindNetwork:
		return "NetworkError"
	case KindServer:
		return "ServerError"
	default:
		return "UnknownError"
	}
}

// Error is the error type returned by Service implementations.
type Error struct {
	Kind    ErrorKind
	Status  int    // HTTP status for KindServer, 0 otherwise
	Message string // user-facing text
	Err     error  // underlying cause, if any
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error with the same Kind, so sentinels such as
// ErrNotFound work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Status != 0 && t.Status != e.Status {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// ErrNotFound matches server errors with status 404.
var ErrNotFound = &Error{Kind: KindServer, Status: 404}

// Validation returns a KindValidation error with the given message.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// KindOf returns the kind of err. Errors that are not *Error are KindUnknown.
func KindOf(err error) ErrorKind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}

// Message returns the user-facing text for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var se *Error
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return err.Error()
}
