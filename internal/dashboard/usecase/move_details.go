package usecase

import (
	"context"
	"maps"

	"moving-progress/internal/dashboard"
	"moving-progress/internal/model"
	"moving-progress/internal/optimistic"
)

// customTasksField is owned by the custom task endpoints.
const customTasksField = "customTasks"

// UpdateMoveDetails persists fields, then merges them into the local details.
func (uc *implUseCase) UpdateMoveDetails(ctx context.Context, fields map[string]any) (model.MoveDetails, error) {
	if len(fields) == 0 {
		return nil, dashboard.ErrEmptyMoveDetails
	}
	if _, ok := fields[customTasksField]; ok {
		return nil, dashboard.ErrReservedField
	}

	_, err := uc.coord.Execute(ctx, optimistic.Command{
		Name: "update move details",
		Key:  moveDetailsKey,
		Call: func(ctx context.Context) error {
			return uc.repo.UpdateMoveDetails(ctx, fields)
		},
		Commit: func() {
			uc.mu.Lock()
			maps.Copy(uc.state.details, fields)
			uc.mu.Unlock()

			uc.cache.Delete(dashboard.CacheKeyMoveDetails)
		},
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.UpdateMoveDetails: %v", err)
		return nil, err
	}

	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return cloneDetails(uc.state.details), nil
}
