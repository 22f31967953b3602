package usecase

import (
	"context"
	"fmt"
	"strings"

	"moving-progress/internal/dashboard"
	"moving-progress/internal/model"
	"moving-progress/internal/optimistic"
)

// AddToPriority inserts a known task into the priority list optimistically.
// Unknown, duplicate and completed ids are no-ops reported through Reason.
func (uc *implUseCase) AddToPriority(ctx context.Context, taskID string) (dashboard.AddToPriorityOutput, error) {
	taskID = strings.TrimSpace(taskID)

	var (
		entry  model.PriorityTask
		reason string
	)
	cmd := optimistic.Command{
		Name: "add priority task",
		Key:  taskKey(taskID),
		Apply: func() {
			uc.mu.Lock()
			defer uc.mu.Unlock()
			reason = uc.checkAddLocked(taskID)
			if reason != "" {
				return
			}
			t, _ := uc.findTaskLocked(taskID)
			entry = model.PriorityTask{Task: t, AddedAt: uc.now()}
			uc.state.priority = append(uc.state.priority, entry)
		},
		Call: func(ctx context.Context) error {
			if reason != "" {
				return fmt.Errorf("%w: %s", optimistic.ErrNotApplied, reason)
			}
			return uc.repo.AddPriorityTask(ctx, taskID)
		},
		Revert: func() {
			uc.mu.Lock()
			defer uc.mu.Unlock()
			if i := uc.priorityIndexLocked(taskID); i >= 0 {
				uc.state.priority = removeAt(uc.state.priority, i)
			}
		},
		Commit: func() {
			uc.cache.Delete(dashboard.CacheKeyPriorityTasks)
		},
	}

	// No-ops never enter the coordinator.
	uc.mu.RLock()
	pre := uc.checkAddLocked(taskID)
	uc.mu.RUnlock()
	if pre == dashboard.SkipFull {
		return dashboard.AddToPriorityOutput{Reason: pre}, dashboard.ErrPriorityFull
	}
	if pre != "" {
		uc.l.Debugf(ctx, "uc.AddToPriority %s: skipped: %s", taskID, pre)
		return dashboard.AddToPriorityOutput{Reason: pre}, nil
	}

	_, err := uc.coord.Execute(ctx, cmd)
	// The list can change between the pre-check and Apply.
	if reason == dashboard.SkipFull {
		return dashboard.AddToPriorityOutput{Reason: reason}, dashboard.ErrPriorityFull
	}
	if reason != "" {
		uc.l.Debugf(ctx, "uc.AddToPriority %s: skipped: %s", taskID, reason)
		return dashboard.AddToPriorityOutput{Reason: reason}, nil
	}
	if err != nil {
		uc.l.Errorf(ctx, "uc.AddToPriority %s: %v", taskID, err)
		return dashboard.AddToPriorityOutput{}, err
	}
	return dashboard.AddToPriorityOutput{Task: entry, Added: true}, nil
}

// checkAddLocked returns the reason taskID cannot be added, or "".
func (uc *implUseCase) checkAddLocked(taskID string) string {
	t, ok := uc.findTaskLocked(taskID)
	switch {
	case taskID == "" || !ok:
		return dashboard.SkipUnknownTask
	case uc.priorityIndexLocked(taskID) >= 0:
		return dashboard.SkipDuplicate
	case t.Completed:
		return dashboard.SkipCompleted
	case len(uc.state.priority) >= uc.maxSize:
		return dashboard.SkipFull
	}
	return ""
}

// AddManyToPriority adds ids in order. A full list or a failed add skips the
// id and moves on.
func (uc *implUseCase) AddManyToPriority(ctx context.Context, taskIDs []string) (dashboard.AddManyToPriorityOutput, error) {
	if len(taskIDs) == 0 {
		return dashboard.AddManyToPriorityOutput{}, dashboard.ErrEmptyTaskIDs
	}

	var out dashboard.AddManyToPriorityOutput
	for _, id := range taskIDs {
		res, err := uc.AddToPriority(ctx, id)
		switch {
		case err == nil && res.Added:
			out.Added = append(out.Added, res.Task)
		case err == nil:
			out.Skipped = append(out.Skipped, dashboard.SkippedTask{TaskID: id, Reason: res.Reason})
		case res.Reason != "":
			out.Skipped = append(out.Skipped, dashboard.SkippedTask{TaskID: id, Reason: res.Reason})
		default:
			out.Skipped = append(out.Skipped, dashboard.SkippedTask{TaskID: id, Reason: err.Error()})
		}
	}
	return out, nil
}

// RemoveFromPriority removes an entry optimistically. A failed request puts
// the entry back at its previous position.
func (uc *implUseCase) RemoveFromPriority(ctx context.Context, taskID string) error {
	uc.mu.RLock()
	exists := uc.priorityIndexLocked(taskID) >= 0
	uc.mu.RUnlock()
	if !exists {
		return dashboard.ErrTaskNotFound
	}

	var (
		prev    model.PriorityTask
		prevIdx = -1
	)
	_, err := uc.coord.Execute(ctx, optimistic.Command{
		Name: "remove priority task",
		Key:  taskKey(taskID),
		Apply: func() {
			uc.mu.Lock()
			defer uc.mu.Unlock()
			prevIdx = uc.priorityIndexLocked(taskID)
			if prevIdx < 0 {
				return
			}
			prev = uc.state.priority[prevIdx]
			uc.state.priority = removeAt(uc.state.priority, prevIdx)
		},
		Call: func(ctx context.Context) error {
			if prevIdx < 0 {
				return errGone
			}
			return uc.repo.RemovePriorityTask(ctx, taskID)
		},
		Revert: func() {
			if prevIdx < 0 {
				return
			}
			uc.mu.Lock()
			defer uc.mu.Unlock()
			// A reload during the request may already have put it back.
			if uc.priorityIndexLocked(taskID) >= 0 {
				return
			}
			uc.state.priority = insertAt(uc.state.priority, prevIdx, prev)
		},
		Commit: func() {
			uc.cache.Delete(dashboard.CacheKeyPriorityTasks)
		},
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.RemoveFromPriority %s: %v", taskID, err)
		return err
	}
	return nil
}

// CompletePriorityTask asks confirm first, then completes the task on the
// server. Local state only changes after the server confirms.
func (uc *implUseCase) CompletePriorityTask(ctx context.Context, taskID string, confirm dashboard.Confirmer) error {
	uc.mu.RLock()
	idx := uc.priorityIndexLocked(taskID)
	var entry model.PriorityTask
	if idx >= 0 {
		entry = uc.state.priority[idx]
	}
	uc.mu.RUnlock()
	if idx < 0 {
		return dashboard.ErrTaskNotFound
	}

	if confirm == nil {
		return dashboard.ErrNotConfirmed
	}
	ok, err := confirm.Confirm(ctx, entry)
	if err != nil {
		uc.l.Warnf(ctx, "uc.CompletePriorityTask %s: confirmation failed: %v", taskID, err)
		return err
	}
	if !ok {
		return dashboard.ErrNotConfirmed
	}

	_, err = uc.coord.Execute(ctx, optimistic.Command{
		Name: "complete priority task",
		Key:  taskKey(taskID),
		Call: func(ctx context.Context) error {
			return uc.repo.CompleteTask(ctx, taskID)
		},
		Commit: func() {
			uc.mu.Lock()
			if i := uc.priorityIndexLocked(taskID); i >= 0 {
				uc.state.priority = removeAt(uc.state.priority, i)
			}
			uc.markCompletedLocked(taskID, uc.timestamp())
			uc.mu.Unlock()

			uc.cache.Delete(dashboard.CacheKeyPriorityTasks)
			uc.cache.Delete(dashboard.CacheKeyTasks)
		},
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.CompletePriorityTask %s: %v", taskID, err)
		return err
	}
	return nil
}
