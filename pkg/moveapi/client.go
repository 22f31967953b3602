// Package moveapi is the HTTP client for the Moovey backend JSON endpoints.
package moveapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	HeaderCSRF        = "X-CSRF-TOKEN"
	HeaderRequestedBy = "X-Requested-With"

	defaultTimeout   = 30 * time.Second
	defaultPageLimit = 20
	maxErrorBody     = 512
)

// Config configures a Client.
type Config struct {
	BaseURL       string
	CSRFToken     string
	SessionCookie string
	Timeout       time.Duration
	// PageLimit caps how many pages ListTasks follows.
	PageLimit  int
	HTTPClient *http.Client
}

// Client is the HTTP wrapper for the Moovey backend.
type Client struct {
	baseURL       string
	csrfToken     string
	sessionCookie string
	pageLimit     int
	httpClient    *http.Client
}

// NewClient creates a new backend client.
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	pageLimit := cfg.PageLimit
	if pageLimit <= 0 {
		pageLimit = defaultPageLimit
	}
	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		csrfToken:     cfg.CSRFToken,
		sessionCookie: cfg.SessionCookie,
		pageLimit:     pageLimit,
		httpClient:    httpClient,
	}
}

// ListTasks fetches GET /api/tasks, following Laravel-style pagination when
// the response is a page object. A bare JSON array is taken as the full list.
func (c *Client) ListTasks(ctx context.Context) ([]json.RawMessage, error) {
	var all []json.RawMessage
	for page := 1; page <= c.pageLimit; page++ {
		raw, err := c.do(ctx, "list tasks", http.MethodGet, fmt.Sprintf("/api/tasks?page=%d", page), nil)
		if err != nil {
			return nil, err
		}

		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			var items []json.RawMessage
			if err := json.Unmarshal(trimmed, &items); err != nil {
				return nil, fmt.Errorf("failed to decode tasks list: %w", err)
			}
			return append(all, items...), nil
		}

		var p pageResp
		if err := json.Unmarshal(trimmed, &p); err != nil {
			return nil, fmt.Errorf("failed to decode tasks page %d: %w", page, err)
		}
		if p.Data != nil {
			all = append(all, p.Data...)
		} else {
			all = append(all, p.Tasks...)
		}
		if p.LastPage == 0 || p.CurrentPage >= p.LastPage {
			break
		}
	}
	return all, nil
}

// CompleteTask marks a task completed via PATCH /api/tasks/{id}/complete.
func (c *Client) CompleteTask(ctx context.Context, taskID string) error {
	return c.mutate(ctx, "complete task", http.MethodPatch, "/api/tasks/"+url.PathEscape(taskID)+"/complete", nil, nil)
}

// ListPriorityTasks fetches GET /api/priority-tasks.
func (c *Client) ListPriorityTasks(ctx context.Context) ([]json.RawMessage, error) {
	const op = "list priority tasks"
	raw, err := c.do(ctx, op, http.MethodGet, "/api/priority-tasks", nil)
	if err != nil {
		return nil, err
	}

	var resp priorityResp
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode priority tasks: %w", err)
	}
	if !resp.ok() {
		return nil, &APIError{Op: op, Status: http.StatusOK, Message: resp.Message}
	}
	return resp.PriorityTasks, nil
}

// AddPriorityTask adds a task to the priority set.
func (c *Client) AddPriorityTask(ctx context.Context, taskID string) error {
	return c.mutate(ctx, "add priority task", http.MethodPost, "/api/priority-tasks", AddPriorityTaskRequest{TaskID: taskID}, nil)
}

// RemovePriorityTask removes a task from the priority set.
func (c *Client) RemovePriorityTask(ctx context.Context, taskID string) error {
	return c.mutate(ctx, "remove priority task", http.MethodDelete, "/api/priority-tasks/"+url.PathEscape(taskID), nil, nil)
}

// GetMoveDetails fetches GET /api/move-details.
func (c *Client) GetMoveDetails(ctx context.Context) (MoveDetails, error) {
	raw, err := c.do(ctx, "get move details", http.MethodGet, "/api/move-details", nil)
	if err != nil {
		return MoveDetails{}, err
	}

	var resp moveDetailsResp
	if err := json.Unmarshal(raw, &resp); err != nil {
		return MoveDetails{}, fmt.Errorf("failed to decode move details: %w", err)
	}

	out := MoveDetails{
		CustomTasks: make(map[string][]json.RawMessage),
		Fields:      make(map[string]json.RawMessage),
	}
	for k, v := range resp.Data {
		if k == "customTasks" {
			// An empty PHP array arrives as [] rather than {}.
			if t := bytes.TrimSpace(v); len(t) > 0 && t[0] == '{' {
				if err := json.Unmarshal(t, &out.CustomTasks); err != nil {
					return MoveDetails{}, fmt.Errorf("failed to decode custom tasks: %w", err)
				}
			}
			continue
		}
		out.Fields[k] = v
	}
	return out, nil
}

// CreateCustomTask creates a custom task and returns the stored record.
func (c *Client) CreateCustomTask(ctx context.Context, req CreateCustomTaskRequest) (json.RawMessage, error) {
	var resp createCustomTaskResp
	if err := c.mutate(ctx, "create custom task", http.MethodPost, "/api/move-details/custom-tasks", req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Task) == 0 || string(resp.Task) == "null" {
		return nil, &APIError{Op: "create custom task", Status: http.StatusOK, Message: "response carried no task"}
	}
	return resp.Task, nil
}

// ToggleCustomTask sets the completion state of a custom task.
func (c *Client) ToggleCustomTask(ctx context.Context, taskID string, req ToggleCustomTaskRequest) error {
	return c.mutate(ctx, "toggle custom task", http.MethodPatch, "/api/move-details/custom-tasks/"+url.PathEscape(taskID)+"/toggle", req, nil)
}

// DeleteCustomTask deletes a custom task.
func (c *Client) DeleteCustomTask(ctx context.Context, taskID string, sectionID int) error {
	return c.mutate(ctx, "delete custom task", http.MethodDelete, "/api/move-details/custom-tasks/"+url.PathEscape(taskID), deleteCustomTaskRequest{SectionID: sectionID}, nil)
}

// UpdateMoveDetails persists personal move detail fields.
func (c *Client) UpdateMoveDetails(ctx context.Context, fields map[string]any) error {
	return c.mutate(ctx, "update move details", http.MethodPatch, "/api/move-details", fields, nil)
}

// mutate sends a mutating request and requires success:true in the body.
// When out is non-nil the body is also decoded into it.
func (c *Client) mutate(ctx context.Context, op, method, path string, body any, out any) error {
	raw, err := c.do(ctx, op, method, path, body)
	if err != nil {
		return err
	}

	var status statusResp
	if err := json.Unmarshal(raw, &status); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", op, err)
	}
	if !status.ok() {
		return &APIError{Op: op, Status: http.StatusOK, Message: status.Message}
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", op, err)
		}
	}
	return nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestedBy, "XMLHttpRequest")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set(HeaderCSRF, c.csrfToken)
	}
	if c.sessionCookie != "" {
		req.Header.Set("Cookie", c.sessionCookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Op: op, Status: resp.StatusCode, Message: errorMessage(raw)}
	}
	return raw, nil
}

func errorMessage(raw []byte) string {
	var status statusResp
	if err := json.Unmarshal(raw, &status); err == nil && status.Message != "" {
		return status.Message
	}
	msg := strings.TrimSpace(string(raw))
	if len(msg) > maxErrorBody {
		cut := maxErrorBody
		for cut > 0 && !utf8.RuneStart(msg[cut]) {
			cut--
		}
		msg = msg[:cut]
	}
	return msg
}
