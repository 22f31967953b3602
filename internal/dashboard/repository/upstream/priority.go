package upstream

import (
	"context"

	"moving-progress/internal/model"
	"moving-progress/internal/tasksource"
)

func (r *implRepository) ListPriorityTasks(ctx context.Context) ([]model.PriorityTask, error) {
	records, err := r.client.ListPriorityTasks(ctx)
	if err != nil {
		r.l.Errorf(ctx, "upstream.ListPriorityTasks: %v", err)
		return nil, err
	}

	items, rep := tasksource.NormalizePriority(records)
	r.report(ctx, "priority tasks", rep)
	return items, nil
}

func (r *implRepository) AddPriorityTask(ctx context.Context, taskID string) error {
	return r.client.AddPriorityTask(ctx, taskID)
}

func (r *implRepository) RemovePriorityTask(ctx context.Context, taskID string) error {
	return r.client.RemovePriorityTask(ctx, taskID)
}
