package usecase

import (
	"context"

	"moving-progress/internal/dashboard"
	"moving-progress/internal/journal"
	"moving-progress/internal/model"
	"moving-progress/internal/progress"
	"moving-progress/internal/stage"
)

// Snapshot returns a consistent copy of the dashboard with derived progress.
func (uc *implUseCase) Snapshot(ctx context.Context) (dashboard.Snapshot, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	if len(uc.state.loaded) == 0 {
		return dashboard.Snapshot{}, dashboard.ErrNotLoaded
	}

	sections := stage.All()
	summary := progress.Compute(stage.IDs(), uc.state.custom, uc.state.academy)

	views := make([]dashboard.SectionView, len(sections))
	for i, s := range sections {
		var academy []model.Task
		for _, t := range uc.state.academy {
			if progress.InSection(t, s.ID) {
				academy = append(academy, t)
			}
		}
		views[i] = dashboard.SectionView{
			Section:  s,
			Progress: summary.Sections[i],
			Custom:   cloneTasks(uc.state.custom[s.ID]),
			Academy:  cloneTasks(academy),
		}
	}

	return dashboard.Snapshot{
		Sections:    views,
		Overall:     summary.Overall,
		Priority:    clonePriority(uc.state.priority),
		Available:   uc.availableLocked(),
		MoveDetails: cloneDetails(uc.state.details),
		LoadedAt:    uc.state.loadedAt,
	}, nil
}

// availableLocked lists academy and CTA tasks that can still be prioritized.
func (uc *implUseCase) availableLocked() []model.Task {
	inPriority := make(map[string]bool, len(uc.state.priority))
	for _, p := range uc.state.priority {
		inPriority[p.Task.ID] = true
	}

	out := make([]model.Task, 0, len(uc.state.academy)+len(uc.state.cta))
	for _, list := range [][]model.Task{uc.state.academy, uc.state.cta} {
		for _, t := range list {
			if t.Completed || inPriority[t.ID] {
				continue
			}
			out = append(out, t)
		}
	}
	return out
}

func (uc *implUseCase) SectionProgress(ctx context.Context, sectionID int) (model.SectionProgress, error) {
	if !stage.Valid(sectionID) {
		return model.SectionProgress{}, dashboard.ErrInvalidSection
	}

	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return progress.Section(sectionID, uc.state.custom, uc.state.academy), nil
}

// ListTasks filters every known task. Lesson tasks match a section filter
// through the unassigned fallback; CTA tasks only by their own section.
func (uc *implUseCase) ListTasks(ctx context.Context, filter dashboard.TaskFilter) ([]model.Task, error) {
	if filter.SectionID != nil && !stage.Valid(*filter.SectionID) {
		return nil, dashboard.ErrInvalidSection
	}

	uc.mu.RLock()
	defer uc.mu.RUnlock()

	var all []model.Task
	for _, id := range stage.IDs() {
		all = append(all, uc.state.custom[id]...)
	}
	all = append(all, uc.state.academy...)
	all = append(all, uc.state.cta...)

	out := make([]model.Task, 0, len(all))
	for _, t := range all {
		if filter.Source != "" && t.Source != filter.Source {
			continue
		}
		if filter.Category != model.CategoryUnknown && t.Category != filter.Category {
			continue
		}
		if !filter.IncludeCompleted && t.Completed {
			continue
		}
		if filter.SectionID != nil && !matchesSection(t, *filter.SectionID) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func matchesSection(t model.Task, sectionID int) bool {
	if t.Source == model.SourceLesson {
		return progress.InSection(t, sectionID)
	}
	return t.SectionID != nil && *t.SectionID == sectionID
}

func (uc *implUseCase) ListPriority(ctx context.Context) ([]model.PriorityTask, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return clonePriority(uc.state.priority), nil
}

func (uc *implUseCase) ListMutations(ctx context.Context, filter dashboard.MutationFilter) ([]journal.Entry, error) {
	if uc.journal == nil {
		return nil, dashboard.ErrJournalUnavailable
	}
	entries, err := uc.journal.List(ctx, journal.ListOptions{Limit: filter.Limit, State: filter.State})
	if err != nil {
		uc.l.Errorf(ctx, "uc.ListMutations: %v", err)
		return nil, err
	}
	return entries, nil
}
