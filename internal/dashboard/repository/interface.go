package repository

import (
	"context"

	"moving-progress/internal/dashboard"
	"moving-progress/internal/model"
)

// Repository is the composed interface for the dashboard data source.
type Repository interface {
	TaskRepository
	PriorityRepository
	MoveDetailsRepository
}

// TaskRepository covers the generic task list.
type TaskRepository interface {
	ListTasks(ctx context.Context) (dashboard.TaskLists, error)
	CompleteTask(ctx context.Context, taskID string) error
}

// PriorityRepository covers the priority set.
type PriorityRepository interface {
	ListPriorityTasks(ctx context.Context) ([]model.PriorityTask, error)
	AddPriorityTask(ctx context.Context, taskID string) error
	RemovePriorityTask(ctx context.Context, taskID string) error
}

// MoveDetailsRepository covers move details and the custom tasks stored in them.
type MoveDetailsRepository interface {
	GetMoveDetails(ctx context.Context) (dashboard.MoveDetailsData, error)
	CreateCustomTask(ctx context.Context, opt CreateCustomTaskOptions) (model.Task, error)
	ToggleCustomTask(ctx context.Context, opt ToggleCustomTaskOptions) error
	DeleteCustomTask(ctx context.Context, opt DeleteCustomTaskOptions) error
	UpdateMoveDetails(ctx context.Context, fields map[string]any) error
}
