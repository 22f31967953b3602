package upstream

import (
	"context"

	"moving-progress/internal/dashboard"
	"moving-progress/internal/tasksource"
)

func (r *implRepository) ListTasks(ctx context.Context) (dashboard.TaskLists, error) {
	records, err := r.client.ListTasks(ctx)
	if err != nil {
		r.l.Errorf(ctx, "upstream.ListTasks: %v", err)
		return dashboard.TaskLists{}, err
	}

	academy, cta, rep := tasksource.Split(records)
	r.report(ctx, "tasks", rep)
	return dashboard.TaskLists{Academy: academy, CTA: cta}, nil
}

func (r *implRepository) CompleteTask(ctx context.Context, taskID string) error {
	return r.client.CompleteTask(ctx, taskID)
}

func (r *implRepository) report(ctx context.Context, what string, rep tasksource.Report) {
	if rep.Skipped == 0 && rep.Defaulted == 0 && rep.Filtered == 0 {
		return
	}
	r.l.Warnf(ctx, "upstream: %s normalized with issues total=%d skipped=%d defaulted=%d filtered=%d",
		what, rep.Total, rep.Skipped, rep.Defaulted, rep.Filtered)
}
