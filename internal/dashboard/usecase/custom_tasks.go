package usecase

import (
	"context"
	"strings"

	"moving-progress/internal/dashboard"
	repo "moving-progress/internal/dashboard/repository"
	"moving-progress/internal/model"
	"moving-progress/internal/optimistic"
	"moving-progress/internal/stage"
)

// CreateCustomTask validates locally, then waits for the server record before
// inserting anything. The server assigns the id.
func (uc *implUseCase) CreateCustomTask(ctx context.Context, input dashboard.CreateCustomTaskInput) (model.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return model.Task{}, dashboard.ErrEmptyTitle
	}
	if !stage.Valid(input.SectionID) {
		return model.Task{}, dashboard.ErrInvalidSection
	}

	var created model.Task
	_, err := uc.coord.Execute(ctx, optimistic.Command{
		Name: "create custom task",
		Key:  createKey(input.SectionID),
		Call: func(ctx context.Context) error {
			t, err := uc.repo.CreateCustomTask(ctx, repo.CreateCustomTaskOptions{
				SectionID:   input.SectionID,
				Title:       title,
				Description: strings.TrimSpace(input.Description),
			})
			if err != nil {
				return err
			}
			created = t
			return nil
		},
		Commit: func() {
			uc.mu.Lock()
			list := uc.state.custom[input.SectionID]
			if i := uc.customIndexLocked(input.SectionID, created.ID); i >= 0 {
				list[i] = created
			} else {
				uc.state.custom[input.SectionID] = append(list, created)
			}
			uc.mu.Unlock()

			uc.cache.Delete(dashboard.CacheKeyMoveDetails)
		},
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.CreateCustomTask section=%d: %v", input.SectionID, err)
		return model.Task{}, err
	}
	return created, nil
}

// ToggleCustomTask flips completion optimistically. A failed request restores
// the exact previous completed flag and date.
func (uc *implUseCase) ToggleCustomTask(ctx context.Context, sectionID int, taskID string) (model.Task, error) {
	if !stage.Valid(sectionID) {
		return model.Task{}, dashboard.ErrInvalidSection
	}
	uc.mu.RLock()
	exists := uc.customIndexLocked(sectionID, taskID) >= 0
	uc.mu.RUnlock()
	if !exists {
		return model.Task{}, dashboard.ErrTaskNotFound
	}

	var (
		prev    model.Task
		current model.Task
		found   bool
	)
	_, err := uc.coord.Execute(ctx, optimistic.Command{
		Name: "toggle custom task",
		Key:  customKey(taskID),
		Apply: func() {
			uc.mu.Lock()
			defer uc.mu.Unlock()
			i := uc.customIndexLocked(sectionID, taskID)
			if i < 0 {
				return
			}
			found = true
			list := uc.state.custom[sectionID]
			prev = list[i]
			list[i].Completed = !prev.Completed
			if list[i].Completed {
				list[i].CompletedDate = uc.timestamp()
			} else {
				list[i].CompletedDate = ""
			}
			current = list[i]
		},
		Call: func(ctx context.Context) error {
			if !found {
				return errGone
			}
			return uc.repo.ToggleCustomTask(ctx, repo.ToggleCustomTaskOptions{
				SectionID: sectionID,
				TaskID:    taskID,
				Completed: current.Completed,
			})
		},
		Revert: func() {
			if !found {
				return
			}
			uc.mu.Lock()
			defer uc.mu.Unlock()
			if i := uc.customIndexLocked(sectionID, taskID); i >= 0 {
				list := uc.state.custom[sectionID]
				list[i].Completed = prev.Completed
				list[i].CompletedDate = prev.CompletedDate
			}
		},
		Commit: func() {
			uc.cache.Delete(dashboard.CacheKeyMoveDetails)
		},
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.ToggleCustomTask section=%d task=%s: %v", sectionID, taskID, err)
		return model.Task{}, err
	}
	return current, nil
}

// DeleteCustomTask removes a custom task optimistically and puts it back at
// its previous position when the request fails.
func (uc *implUseCase) DeleteCustomTask(ctx context.Context, sectionID int, taskID string) error {
	if !stage.Valid(sectionID) {
		return dashboard.ErrInvalidSection
	}
	uc.mu.RLock()
	exists := uc.customIndexLocked(sectionID, taskID) >= 0
	uc.mu.RUnlock()
	if !exists {
		return dashboard.ErrTaskNotFound
	}

	var (
		prev    model.Task
		prevIdx = -1
	)
	_, err := uc.coord.Execute(ctx, optimistic.Command{
		Name: "delete custom task",
		Key:  customKey(taskID),
		Apply: func() {
			uc.mu.Lock()
			defer uc.mu.Unlock()
			prevIdx = uc.customIndexLocked(sectionID, taskID)
			if prevIdx < 0 {
				return
			}
			prev = uc.state.custom[sectionID][prevIdx]
			uc.state.custom[sectionID] = removeAt(uc.state.custom[sectionID], prevIdx)
		},
		Call: func(ctx context.Context) error {
			if prevIdx < 0 {
				return errGone
			}
			return uc.repo.DeleteCustomTask(ctx, repo.DeleteCustomTaskOptions{
				SectionID: sectionID,
				TaskID:    taskID,
			})
		},
		Revert: func() {
			if prevIdx < 0 {
				return
			}
			uc.mu.Lock()
			defer uc.mu.Unlock()
			// A reload during the request may already have put it back.
			if uc.customIndexLocked(sectionID, taskID) >= 0 {
				return
			}
			uc.state.custom[sectionID] = insertAt(uc.state.custom[sectionID], prevIdx, prev)
		},
		Commit: func() {
			uc.cache.Delete(dashboard.CacheKeyMoveDetails)
		},
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.DeleteCustomTask section=%d task=%s: %v", sectionID, taskID, err)
		return err
	}
	return nil
}
