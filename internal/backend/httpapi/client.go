// Package httpapi implements the service.Service interface over the task service's JSON HTTP API.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"taskman/internal/config"
	"taskman/internal/logging"
	"taskman/internal/service"
)

const (
	// APITimeout is the default timeout for API calls.
	APITimeout = config.DefaultTimeout

	// RequestIDHeader carries a per-call ID for correlating client and server logs.
	RequestIDHeader = "X-Request-ID"

	// maxBodySize caps how much of a response body is read.
	maxBodySize = 4 << 20

	msgNoResponse   = "No response from server. Please check your connection."
	msgTimedOut     = "Request timed out. Please try again."
	msgServerFault  = "An error occurred"
	msgRequestSetup = "Error setting up request"
	msgBadResponse  = "Unexpected response from server"
)

// Client implements service.Service over HTTP.
type Client struct {
	http    *http.Client
	baseURL string
	timeout time.Duration
	logger  *slog.Logger
}

// New creates a client for cfg.BaseURL. When cfg.APIToken is set, every
// request carries it as a bearer token.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	httpClient := &http.Client{}
	if cfg.APIToken != "" {
		tokenSource := oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.APIToken,
			TokenType:   "Bearer",
		})
		httpClient = oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, httpClient), tokenSource)
	}

	c := NewWithHTTPClient(cfg.BaseURL, httpClient, logger)
	if cfg.Timeout > 0 {
		c.timeout = cfg.Timeout
	}
	return c, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: APITimeout,
		logger:  logger.With("component", "httpapi"),
	}
}

// SetTimeout overrides the per-call timeout.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.timeout = d
	}
}

// Login implements service.Service.
func (c *Client) Login(ctx context.Context, username string) (string, error) {
	var resp envelope
	if err := c.do(ctx, http.MethodPost, "/login", loginRequest{Username: username}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ListTasks implements service.Service.
func (c *Client) ListTasks(ctx context.Context, username string) ([]service.Task, error) {
	var resp envelope
	if err := c.do(ctx, http.MethodGet, "/tasks/"+url.PathEscape(username), nil, &resp); err != nil {
		return nil, err
	}
	tasks := make([]service.Task, 0, len(resp.Tasks))
	tasks = append(tasks, resp.Tasks...)
	return tasks, nil
}

// CreateTask implements service.Service.
func (c *Client) CreateTask(ctx context.Context, title, username string) (service.Task, error) {
	var resp envelope
	if err := c.do(ctx, http.MethodPost, "/tasks", createRequest{Title: title, Username: username}, &resp); err != nil {
		return service.Task{}, err
	}
	return resp.requireTask()
}

// UpdateTask implements service.Service.
func (c *Client) UpdateTask(ctx context.Context, id, title string, completed bool, username string) (service.Task, error) {
	body := updateRequest{ID: id, Title: title, Completed: completed, Username: username}
	var resp envelope
	if err := c.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(id), body, &resp); err != nil {
		return service.Task{}, err
	}
	return resp.requireTask()
}

// CompleteTask implements service.Service.
func (c *Client) CompleteTask(ctx context.Context, id string) (service.Task, error) {
	var resp envelope
	if err := c.do(ctx, http.MethodPut, "/tasks/complete/"+url.PathEscape(id), nil, &resp); err != nil {
		return service.Task{}, err
	}
	return resp.requireTask()
}

// DeleteTask implements service.Service.
func (c *Client) DeleteTask(ctx context.Context, id string) (string, error) {
	var resp envelope
	if err := c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// do sends one JSON request and decodes the success envelope into out.
func (c *Client) do(ctx context.Context, method, path string, body any, out *envelope) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	requestID := uuid.NewString()
	log := c.logger.With("method", method, "path", path, "request_id", requestID)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			log.Error("request encode failed", "error", err)
			return &service.Error{Kind: service.KindUnknown, Message: msgRequestSetup, Err: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		log.Error("request setup failed", "error", err)
		return &service.Error{Kind: service.KindUnknown, Message: msgRequestSetup, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debug("request", "body", body)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		wrapped := wrapError(err)
		log.Warn("request failed", "error", err, "duration", time.Since(start))
		return wrapped
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		log.Warn("response read failed", "status", resp.StatusCode, "error", err)
		return wrapError(err)
	}
	log.Debug("response", "status", resp.StatusCode, "duration", time.Since(start), "bytes", len(data))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := &service.Error{
			Kind:    service.KindServer,
			Status:  resp.StatusCode,
			Message: detailMessage(data, msgServerFault),
		}
		log.Warn("server rejected request", "status", resp.StatusCode, "detail", serr.Message)
		return serr
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Warn("response decode failed", "status", resp.StatusCode, "error", err)
		return &service.Error{Kind: service.KindUnknown, Message: msgBadResponse, Err: err}
	}
	if out.Success != nil && !*out.Success {
		// 2xx carrying success=false is still a rejection.
		return &service.Error{
			Kind:    service.KindServer,
			Status:  resp.StatusCode,
			Message: detailMessage(data, msgServerFault),
		}
	}
	return nil
}

// wrapError maps transport failures to NetworkError.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &service.Error{Kind: service.KindNetwork, Message: msgTimedOut, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &service.Error{Kind: service.KindNetwork, Message: msgTimedOut, Err: err}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return &service.Error{Kind: service.KindNetwork, Message: msgNoResponse, Err: err}
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, context.Canceled) {
		return &service.Error{Kind: service.KindNetwork, Message: msgNoResponse, Err: err}
	}
	return &service.Error{Kind: service.KindUnknown, Message: msgBadResponse, Err: err}
}
