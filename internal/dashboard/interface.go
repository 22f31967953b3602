package dashboard

import (
	"context"

	"moving-progress/internal/journal"
	"moving-progress/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Loading and reads
	Load(ctx context.Context, input LoadInput) (LoadOutput, error)
	Snapshot(ctx context.Context) (Snapshot, error)
	SectionProgress(ctx context.Context, sectionID int) (model.SectionProgress, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error)
	ListPriority(ctx context.Context) ([]model.PriorityTask, error)
	ListMutations(ctx context.Context, filter MutationFilter) ([]journal.Entry, error)

	// Priority list
	AddToPriority(ctx context.Context, taskID string) (AddToPriorityOutput, error)
	AddManyToPriority(ctx context.Context, taskIDs []string) (AddManyToPriorityOutput, error)
	RemoveFromPriority(ctx context.Context, taskID string) error
	CompletePriorityTask(ctx context.Context, taskID string, confirm Confirmer) error

	// Custom tasks and move details
	CreateCustomTask(ctx context.Context, input CreateCustomTaskInput) (model.Task, error)
	ToggleCustomTask(ctx context.Context, sectionID int, taskID string) (model.Task, error)
	DeleteCustomTask(ctx context.Context, sectionID int, taskID string) error
	UpdateMoveDetails(ctx context.Context, fields map[string]any) (model.MoveDetails, error)
}

// Confirmer is the blocking confirmation step before a task is completed.
type Confirmer interface {
	Confirm(ctx context.Context, task model.PriorityTask) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, task model.PriorityTask) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, task model.PriorityTask) (bool, error) {
	return f(ctx, task)
}

// Confirmed answers yes without asking, for callers that already collected
// the confirmation (an explicit request flag, a --yes switch).
var Confirmed Confirmer = ConfirmFunc(func(context.Context, model.PriorityTask) (bool, error) {
	return true, nil
})

// MutationLog is the read side of the mutation journal.
type MutationLog interface {
	List(ctx context.Context, opts journal.ListOptions) ([]journal.Entry, error)
}
