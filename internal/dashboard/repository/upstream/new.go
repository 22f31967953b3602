// Package upstream implements the dashboard repository on top of the Moovey
// backend API.
package upstream

import (
	"context"
	"encoding/json"

	"moving-progress/internal/dashboard/repository"
	"moving-progress/pkg/log"
	"moving-progress/pkg/moveapi"
)

// Client is the subset of moveapi.Client the repository needs.
type Client interface {
	ListTasks(ctx context.Context) ([]json.RawMessage, error)
	CompleteTask(ctx context.Context, taskID string) error
	ListPriorityTasks(ctx context.Context) ([]json.RawMessage, error)
	AddPriorityTask(ctx context.Context, taskID string) error
	RemovePriorityTask(ctx context.Context, taskID string) error
	GetMoveDetails(ctx context.Context) (moveapi.MoveDetails, error)
	CreateCustomTask(ctx context.Context, req moveapi.CreateCustomTaskRequest) (json.RawMessage, error)
	ToggleCustomTask(ctx context.Context, taskID string, req moveapi.ToggleCustomTaskRequest) error
	DeleteCustomTask(ctx context.Context, taskID string, sectionID int) error
	UpdateMoveDetails(ctx context.Context, fields map[string]any) error
}

type implRepository struct {
	client Client
	l      log.Logger
}

// New creates a repository backed by the upstream API.
func New(client Client, l log.Logger) repository.Repository {
	return &implRepository{
		client: client,
		l:      l,
	}
}
