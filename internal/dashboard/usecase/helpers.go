package usecase

import (
	"fmt"
	"maps"
	"strconv"
	"time"

	"moving-progress/internal/dashboard"
	"moving-progress/internal/model"
	"moving-progress/internal/optimistic"
)

// errGone is the Call result when Apply found the target already gone. The
// coordinator records it as aborted and runs neither Commit nor Revert.
var errGone = fmt.Errorf("%w: %w", optimistic.ErrNotApplied, dashboard.ErrTaskNotFound)

func taskKey(id string) string   { return "task:" + id }
func customKey(id string) string { return "custom:" + id }

func createKey(sectionID int) string {
	return "custom-create:" + strconv.Itoa(sectionID)
}

const moveDetailsKey = "move-details"

func (uc *implUseCase) timestamp() string {
	return uc.now().UTC().Format(time.RFC3339)
}

// findTaskLocked looks an academy or CTA task up by id. Caller holds uc.mu.
func (uc *implUseCase) findTaskLocked(id string) (model.Task, bool) {
	for _, t := range uc.state.academy {
		if t.ID == id {
			return t, true
		}
	}
	for _, t := range uc.state.cta {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// markCompletedLocked sets the completion pair on the academy or CTA task
// with id. Caller holds uc.mu.
func (uc *implUseCase) markCompletedLocked(id, date string) {
	for _, list := range [][]model.Task{uc.state.academy, uc.state.cta} {
		for i := range list {
			if list[i].ID == id {
				list[i].Completed = true
				list[i].CompletedDate = date
			}
		}
	}
}

func (uc *implUseCase) priorityIndexLocked(id string) int {
	for i, p := range uc.state.priority {
		if p.Task.ID == id {
			return i
		}
	}
	return -1
}

func (uc *implUseCase) customIndexLocked(sectionID int, id string) int {
	for i, t := range uc.state.custom[sectionID] {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func insertAt[T any](list []T, idx int, v T) []T {
	if idx < 0 || idx > len(list) {
		idx = len(list)
	}
	list = append(list, v)
	copy(list[idx+1:], list[idx:])
	list[idx] = v
	return list
}

func removeAt[T any](list []T, idx int) []T {
	return append(list[:idx:idx], list[idx+1:]...)
}

func cloneTasks(in []model.Task) []model.Task {
	if in == nil {
		return []model.Task{}
	}
	out := make([]model.Task, len(in))
	copy(out, in)
	return out
}

func cloneCustom(in map[int][]model.Task) map[int][]model.Task {
	out := make(map[int][]model.Task, len(in))
	for k, v := range in {
		out[k] = cloneTasks(v)
	}
	return out
}

func cloneDetails(in model.MoveDetails) model.MoveDetails {
	out := make(model.MoveDetails, len(in))
	maps.Copy(out, in)
	return out
}

func clonePriority(in []model.PriorityTask) []model.PriorityTask {
	out := make([]model.PriorityTask, len(in))
	copy(out, in)
	return out
}

func countCustom(in map[int][]model.Task) int {
	n := 0
	for _, v := range in {
		n += len(v)
	}
	return n
}
