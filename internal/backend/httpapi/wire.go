package httpapi

import (
	"encoding/json"
	"strings"

	"taskman/internal/service"
)

type loginRequest struct {
	Username string `json:"username"`
}

type createRequest struct {
	Title    string `json:"title"`
	Username string `json:"username"`
}

type updateRequest struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Username  string `json:"username"`
}

// envelope is the success body shared by every endpoint.
type envelope struct {
	Success *bool          `json:"success"`
	Message string         `json:"message"`
	Task    *service.Task  `json:"task"`
	Tasks   []service.Task `json:"tasks"`
}

func (e *envelope) requireTask() (service.Task, error) {
	if e.Task == nil {
		return service.Task{}, &service.Error{Kind: service.KindUnknown, Message: msgBadResponse}
	}
	return *e.Task, nil
}

// errorBody is the error shape. detail is either a string or, for request
// validation failures, a list of {msg} objects.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type validationItem struct {
	Msg string `json:"msg"`
}

// detailMessage extracts the detail text from an error body, or returns fallback.
func detailMessage(body []byte, fallback string) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Detail) == 0 {
		return fallback
	}

	var s string
	if err := json.Unmarshal(eb.Detail, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			return fallback
		}
		return s
	}

	var items []validationItem
	if err := json.Unmarshal(eb.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if strings.TrimSpace(it.Msg) != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}
	return fallback
}
