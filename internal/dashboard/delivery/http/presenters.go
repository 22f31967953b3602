package http

import (
	"strings"
	"time"

	"moving-progress/internal/dashboard"
	"moving-progress/internal/journal"
	"moving-progress/internal/model"
	"moving-progress/pkg/response"
)

// --- Request DTOs ---

type snapshotReq struct {
	Refresh bool `form:"refresh"`
}

type listTasksReq struct {
	Category         string `form:"category"`
	SectionID        *int   `form:"section_id"`
	Source           string `form:"source"`
	IncludeCompleted bool   `form:"include_completed"`
}

func (r listTasksReq) validate() error {
	if r.Category != "" && model.ParseCategory(r.Category) == model.CategoryUnknown {
		return errInvalidCategory
	}
	switch model.Source(strings.ToLower(r.Source)) {
	case "", model.SourceCustom, model.SourceLesson, model.SourceCTA:
		return nil
	}
	return errInvalidSource
}

func (r listTasksReq) toInput() dashboard.TaskFilter {
	return dashboard.TaskFilter{
		Category:         model.ParseCategory(r.Category),
		SectionID:        r.SectionID,
		Source:           model.Source(strings.ToLower(r.Source)),
		IncludeCompleted: r.IncludeCompleted,
	}
}

type addPriorityReq struct {
	TaskIDs []string `json:"task_ids" binding:"required,min=1,max=50"`
}

type completeReq struct {
	Confirm bool `json:"confirm"`
}

type createCustomTaskReq struct {
	SectionID   int    `json:"-"`
	Title       string `json:"title"       binding:"max=255"`
	Description string `json:"description" binding:"max=1000"`
}

func (r createCustomTaskReq) toInput() dashboard.CreateCustomTaskInput {
	return dashboard.CreateCustomTaskInput{
		SectionID:   r.SectionID,
		Title:       r.Title,
		Description: r.Description,
	}
}

type customTaskURI struct {
	SectionID int
	TaskID    string
}

type listMutationsReq struct {
	Limit int    `form:"limit"`
	State string `form:"state" binding:"omitempty,oneof=committed rolled_back aborted"`
}

func (r listMutationsReq) toInput() dashboard.MutationFilter {
	return dashboard.MutationFilter{Limit: r.Limit, State: r.State}
}

// --- Response DTOs ---

type taskResp struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Category      string `json:"category,omitempty"`
	Completed     bool   `json:"completed"`
	CompletedDate string `json:"completed_date,omitempty"`
	Source        string `json:"source"`
	SectionID     *int   `json:"section_id,omitempty"`
}

func newTaskResp(t model.Task) taskResp {
	return taskResp{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Category:      string(t.Category),
		Completed:     t.Completed,
		CompletedDate: t.CompletedDate,
		Source:        string(t.Source),
		SectionID:     t.SectionID,
	}
}

func newTaskResps(tasks []model.Task) []taskResp {
	out := make([]taskResp, len(tasks))
	for i, t := range tasks {
		out[i] = newTaskResp(t)
	}
	return out
}

type priorityTaskResp struct {
	Task    taskResp           `json:"task"`
	AddedAt *response.DateTime `json:"added_at,omitempty"`
}

func newPriorityTaskResp(p model.PriorityTask) priorityTaskResp {
	resp := priorityTaskResp{Task: newTaskResp(p.Task)}
	if !p.AddedAt.IsZero() {
		at := response.DateTime(p.AddedAt)
		resp.AddedAt = &at
	}
	return resp
}

func newPriorityResps(items []model.PriorityTask) []priorityTaskResp {
	out := make([]priorityTaskResp, len(items))
	for i, p := range items {
		out[i] = newPriorityTaskResp(p)
	}
	return out
}

type progressResp struct {
	SectionID  int `json:"section_id"`
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

func newProgressResp(p model.SectionProgress) progressResp {
	return progressResp{
		SectionID:  p.SectionID,
		Completed:  p.Completed,
		Total:      p.Total,
		Percentage: p.Percentage,
	}
}

type sectionResp struct {
	ID          int          `json:"id"`
	Label       string       `json:"label"`
	ShortLabel  string       `json:"short_label"`
	Icon        string       `json:"icon"`
	Description string       `json:"description"`
	Progress    progressResp `json:"progress"`
	CustomTasks []taskResp   `json:"custom_tasks"`
	Academy     []taskResp   `json:"academy_tasks"`
}

type snapshotResp struct {
	Sections    []sectionResp      `json:"sections"`
	Overall     int                `json:"overall"`
	Priority    []priorityTaskResp `json:"priority"`
	Available   []taskResp         `json:"available"`
	MoveDetails map[string]any     `json:"move_details"`
	LoadedAt    time.Time          `json:"loaded_at"`
}

func (h *handler) newSnapshotResp(s dashboard.Snapshot) snapshotResp {
	sections := make([]sectionResp, len(s.Sections))
	for i, v := range s.Sections {
		sections[i] = sectionResp{
			ID:          v.Section.ID,
			Label:       v.Section.Label,
			ShortLabel:  v.Section.ShortLabel,
			Icon:        v.Section.Icon,
			Description: v.Section.Description,
			Progress:    newProgressResp(v.Progress),
			CustomTasks: newTaskResps(v.Custom),
			Academy:     newTaskResps(v.Academy),
		}
	}
	return snapshotResp{
		Sections:    sections,
		Overall:     s.Overall,
		Priority:    newPriorityResps(s.Priority),
		Available:   newTaskResps(s.Available),
		MoveDetails: s.MoveDetails,
		LoadedAt:    s.LoadedAt,
	}
}

type stageResp struct {
	Name      string `json:"name"`
	FromCache bool   `json:"from_cache"`
	Count     int    `json:"count"`
}

type loadResp struct {
	Stages   []stageResp `json:"stages"`
	LoadedAt time.Time   `json:"loaded_at"`
}

func (h *handler) newLoadResp(out dashboard.LoadOutput) loadResp {
	stages := make([]stageResp, len(out.Stages))
	for i, s := range out.Stages {
		stages[i] = stageResp{Name: s.Name, FromCache: s.FromCache, Count: s.Count}
	}
	return loadResp{Stages: stages, LoadedAt: out.LoadedAt}
}

type listTasksResp struct {
	Tasks []taskResp `json:"tasks"`
	Total int        `json:"total"`
}

type skippedResp struct {
	TaskID string `json:"task_id"`
	Reason string `json:"reason"`
}

type addPriorityResp struct {
	Added   []priorityTaskResp `json:"added"`
	Skipped []skippedResp      `json:"skipped"`
}

func (h *handler) newAddPriorityResp(out dashboard.AddManyToPriorityOutput) addPriorityResp {
	skipped := make([]skippedResp, len(out.Skipped))
	for i, s := range out.Skipped {
		skipped[i] = skippedResp{TaskID: s.TaskID, Reason: s.Reason}
	}
	return addPriorityResp{
		Added:   newPriorityResps(out.Added),
		Skipped: skipped,
	}
}

type mutationResp struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Key         string    `json:"key"`
	State       string    `json:"state"`
	FailureKind string    `json:"failure_kind,omitempty"`
	Error       string    `json:"error,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	DurationMS  int64     `json:"duration_ms"`
}

func (h *handler) newMutationResps(entries []journal.Entry) []mutationResp {
	out := make([]mutationResp, len(entries))
	for i, e := range entries {
		out[i] = mutationResp{
			ID:          e.ID,
			Name:        e.Name,
			Key:         e.Key,
			State:       e.State,
			FailureKind: e.FailureKind,
			Error:       e.Error,
			StartedAt:   e.StartedAt,
			DurationMS:  e.DurationMS,
		}
	}
	return out
}
