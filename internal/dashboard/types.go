package dashboard

import (
	"time"

	"moving-progress/internal/model"
)

// Cache keys for the three load stages.
const (
	CacheKeyMoveDetails   = "move-details"
	CacheKeyTasks         = "tasks"
	CacheKeyPriorityTasks = "priority-tasks"
)

// --- Loaded data ---

// MoveDetailsData is the move-details stage: custom tasks by section plus the
// personal fields.
type MoveDetailsData struct {
	CustomTasks map[int][]model.Task
	Fields      model.MoveDetails
}

// TaskLists is the tasks stage split by source.
type TaskLists struct {
	Academy []model.Task
	CTA     []model.Task
}

// --- UseCase Inputs ---

type LoadInput struct {
	Refresh bool
}

type TaskFilter struct {
	Category         model.Category
	SectionID        *int
	Source           model.Source
	IncludeCompleted bool
}

type CreateCustomTaskInput struct {
	SectionID   int
	Title       string
	Description string
}

type MutationFilter struct {
	Limit int
	State string
}

// --- UseCase Outputs ---

type StageResult struct {
	Name      string
	FromCache bool
	Count     int
}

type LoadOutput struct {
	Stages   []StageResult
	LoadedAt time.Time
}

// SectionView is one stage with its tasks and progress.
type SectionView struct {
	Section  model.Section
	Progress model.SectionProgress
	Custom   []model.Task
	Academy  []model.Task
}

type Snapshot struct {
	Sections    []SectionView
	Overall     int
	Priority    []model.PriorityTask
	Available   []model.Task
	MoveDetails model.MoveDetails
	LoadedAt    time.Time
}

// Skip reasons reported by AddToPriority.
const (
	SkipUnknownTask = "unknown task"
	SkipDuplicate   = "already in priority list"
	SkipCompleted   = "task already completed"
	SkipFull        = "priority list full"
)

type AddToPriorityOutput struct {
	Task   model.PriorityTask
	Added  bool
	Reason string
}

type SkippedTask struct {
	TaskID string
	Reason string
}

type AddManyToPriorityOutput struct {
	Added   []model.PriorityTask
	Skipped []SkippedTask
}
