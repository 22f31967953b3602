package moveapi

import (
	"encoding/json"
	"fmt"
)

// APIError is an application-level refusal: a non-2xx status or a 2xx body
// with success:false.
type APIError struct {
	Op      string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("moveapi %s: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("moveapi %s: status %d: %s", e.Op, e.Status, e.Message)
}

// Rejected marks the error as a server rejection rather than a transport failure.
func (e *APIError) Rejected() bool { return true }

// statusResp is the {success, message} envelope of mutating endpoints.
type statusResp struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

func (r statusResp) ok() bool {
	return r.Success != nil && *r.Success
}

type pageResp struct {
	Data        []json.RawMessage `json:"data"`
	Tasks       []json.RawMessage `json:"tasks"`
	CurrentPage int               `json:"current_page"`
	LastPage    int               `json:"last_page"`
}

type priorityResp struct {
	statusResp
	PriorityTasks []json.RawMessage `json:"priority_tasks"`
}

type createCustomTaskResp struct {
	statusResp
	Task json.RawMessage `json:"task"`
}

type moveDetailsResp struct {
	Data map[string]json.RawMessage `json:"data"`
}

// AddPriorityTaskRequest is the body of POST /api/priority-tasks.
type AddPriorityTaskRequest struct {
	TaskID string `json:"task_id"`
}

// CreateCustomTaskRequest is the body of POST /api/move-details/custom-tasks.
type CreateCustomTaskRequest struct {
	SectionID   int    `json:"section_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ToggleCustomTaskRequest is the body of PATCH .../custom-tasks/{id}/toggle.
type ToggleCustomTaskRequest struct {
	SectionID int  `json:"section_id"`
	Completed bool `json:"completed"`
}

type deleteCustomTaskRequest struct {
	SectionID int `json:"section_id"`
}

// MoveDetails is GET /api/move-details split into custom tasks grouped by
// section key and the remaining personal detail fields.
type MoveDetails struct {
	CustomTasks map[string][]json.RawMessage
	Fields      map[string]json.RawMessage
}
