package usecase

import (
	"context"
	"fmt"

	"moving-progress/internal/dashboard"
	"moving-progress/internal/model"
)

// Load runs the staged initial load. Each stage reads through the cache
// unless input.Refresh is set. A cache hit for a stage that is already in
// memory leaves the local state alone, since it may hold newer optimistic
// changes. Stages loaded before a failure stay loaded.
func (uc *implUseCase) Load(ctx context.Context, input dashboard.LoadInput) (dashboard.LoadOutput, error) {
	var out dashboard.LoadOutput

	stages := []struct {
		key string
		run func(ctx context.Context, refresh bool) (dashboard.StageResult, error)
	}{
		{dashboard.CacheKeyMoveDetails, uc.loadMoveDetails},
		{dashboard.CacheKeyTasks, uc.loadTasks},
		{dashboard.CacheKeyPriorityTasks, uc.loadPriority},
	}

	for _, s := range stages {
		res, err := s.run(ctx, input.Refresh)
		if err != nil {
			uc.l.Errorf(ctx, "uc.Load %s: %v", s.key, err)
			return out, fmt.Errorf("%w: %s: %w", dashboard.ErrLoadFailed, s.key, err)
		}
		out.Stages = append(out.Stages, res)
	}

	uc.mu.Lock()
	uc.state.loadedAt = uc.now()
	out.LoadedAt = uc.state.loadedAt
	uc.mu.Unlock()

	return out, nil
}

func (uc *implUseCase) loadMoveDetails(ctx context.Context, refresh bool) (dashboard.StageResult, error) {
	res := dashboard.StageResult{Name: dashboard.CacheKeyMoveDetails}

	if !refresh {
		if v, ok := uc.cache.Get(dashboard.CacheKeyMoveDetails); ok {
			if data, ok := v.(dashboard.MoveDetailsData); ok {
				res.FromCache = true
				res.Count = countCustom(data.CustomTasks)
				uc.installMoveDetails(data, false)
				return res, nil
			}
		}
	}

	data, err := uc.repo.GetMoveDetails(ctx)
	if err != nil {
		return res, err
	}
	uc.cache.Set(dashboard.CacheKeyMoveDetails, data)
	uc.installMoveDetails(data, true)
	res.Count = countCustom(data.CustomTasks)
	return res, nil
}

func (uc *implUseCase) installMoveDetails(data dashboard.MoveDetailsData, fresh bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if !fresh && uc.state.loaded[dashboard.CacheKeyMoveDetails] {
		return
	}
	uc.state.custom = cloneCustom(data.CustomTasks)
	uc.state.details = cloneDetails(data.Fields)
	uc.state.loaded[dashboard.CacheKeyMoveDetails] = true
}

func (uc *implUseCase) loadTasks(ctx context.Context, refresh bool) (dashboard.StageResult, error) {
	res := dashboard.StageResult{Name: dashboard.CacheKeyTasks}

	if !refresh {
		if v, ok := uc.cache.Get(dashboard.CacheKeyTasks); ok {
			if lists, ok := v.(dashboard.TaskLists); ok {
				res.FromCache = true
				res.Count = len(lists.Academy) + len(lists.CTA)
				uc.installTasks(lists, false)
				return res, nil
			}
		}
	}

	lists, err := uc.repo.ListTasks(ctx)
	if err != nil {
		return res, err
	}
	uc.cache.Set(dashboard.CacheKeyTasks, lists)
	uc.installTasks(lists, true)
	res.Count = len(lists.Academy) + len(lists.CTA)
	return res, nil
}

func (uc *implUseCase) installTasks(lists dashboard.TaskLists, fresh bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if !fresh && uc.state.loaded[dashboard.CacheKeyTasks] {
		return
	}
	uc.state.academy = cloneTasks(lists.Academy)
	uc.state.cta = cloneTasks(lists.CTA)
	uc.state.loaded[dashboard.CacheKeyTasks] = true
}

func (uc *implUseCase) loadPriority(ctx context.Context, refresh bool) (dashboard.StageResult, error) {
	res := dashboard.StageResult{Name: dashboard.CacheKeyPriorityTasks}

	if !refresh {
		if v, ok := uc.cache.Get(dashboard.CacheKeyPriorityTasks); ok {
			if items, ok := v.([]model.PriorityTask); ok {
				res.FromCache = true
				res.Count = len(items)
				uc.installPriority(items, false)
				return res, nil
			}
		}
	}

	items, err := uc.repo.ListPriorityTasks(ctx)
	if err != nil {
		return res, err
	}
	uc.cache.Set(dashboard.CacheKeyPriorityTasks, items)
	uc.installPriority(items, true)
	res.Count = len(items)
	return res, nil
}

// installPriority replaces the priority list. Entries that reference a known
// task take that task's current fields.
func (uc *implUseCase) installPriority(items []model.PriorityTask, fresh bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if !fresh && uc.state.loaded[dashboard.CacheKeyPriorityTasks] {
		return
	}
	list := make([]model.PriorityTask, len(items))
	for i, item := range items {
		if t, ok := uc.findTaskLocked(item.Task.ID); ok {
			item.Task = t
		}
		list[i] = item
	}
	uc.state.priority = list
	uc.state.loaded[dashboard.CacheKeyPriorityTasks] = true
}
