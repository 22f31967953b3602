package upstream

import (
	"context"
	"encoding/json"

	"moving-progress/internal/dashboard"
	"moving-progress/internal/dashboard/repository"
	"moving-progress/internal/model"
	"moving-progress/internal/tasksource"
	"moving-progress/pkg/moveapi"
)

func (r *implRepository) GetMoveDetails(ctx context.Context) (dashboard.MoveDetailsData, error) {
	details, err := r.client.GetMoveDetails(ctx)
	if err != nil {
		r.l.Errorf(ctx, "upstream.GetMoveDetails: %v", err)
		return dashboard.MoveDetailsData{}, err
	}

	custom, rep := tasksource.NormalizeCustomSections(details.CustomTasks)
	r.report(ctx, "custom tasks", rep)

	fields := make(model.MoveDetails, len(details.Fields))
	for k, raw := range details.Fields {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			r.l.Warnf(ctx, "upstream.GetMoveDetails: skip field %s: %v", k, err)
			continue
		}
		fields[k] = v
	}

	return dashboard.MoveDetailsData{CustomTasks: custom, Fields: fields}, nil
}

func (r *implRepository) CreateCustomTask(ctx context.Context, opt repository.CreateCustomTaskOptions) (model.Task, error) {
	raw, err := r.client.CreateCustomTask(ctx, moveapi.CreateCustomTaskRequest{
		SectionID:   opt.SectionID,
		Title:       opt.Title,
		Description: opt.Description,
	})
	if err != nil {
		return model.Task{}, err
	}

	task, err := tasksource.FromCustom(raw, opt.SectionID, 0)
	if err != nil {
		r.l.Errorf(ctx, "upstream.CreateCustomTask: created record unreadable: %v", err)
		return model.Task{}, err
	}
	return task, nil
}

func (r *implRepository) ToggleCustomTask(ctx context.Context, opt repository.ToggleCustomTaskOptions) error {
	return r.client.ToggleCustomTask(ctx, opt.TaskID, moveapi.ToggleCustomTaskRequest{
		SectionID: opt.SectionID,
		Completed: opt.Completed,
	})
}

func (r *implRepository) DeleteCustomTask(ctx context.Context, opt repository.DeleteCustomTaskOptions) error {
	return r.client.DeleteCustomTask(ctx, opt.TaskID, opt.SectionID)
}

func (r *implRepository) UpdateMoveDetails(ctx context.Context, fields map[string]any) error {
	return r.client.UpdateMoveDetails(ctx, fields)
}
