package usecase_test

import (
	"context"
	"errors"
	"testing"

	"moving-progress/internal/dashboard"
	"moving-progress/internal/model"
	"moving-progress/internal/optimistic"
)

func TestLoadUsesCache(t *testing.T) {
	f := newFixture(10)
	ctx := context.Background()

	out, err := f.uc.Load(ctx, dashboard.LoadInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Stages) != 3 || out.Stages[0].Name != dashboard.CacheKeyMoveDetails || out.Stages[2].Name != dashboard.CacheKeyPriorityTasks {
		t.Fatalf("unexpected stages %+v", out.Stages)
	}
	if out.LoadedAt != fixedNow {
		t.Errorf("unexpected loaded at %v", out.LoadedAt)
	}

	out, err = f.uc.Load(ctx, dashboard.LoadInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range out.Stages {
		if !s.FromCache {
			t.Errorf("stage %s should come from cache", s.Name)
		}
	}
	if f.repo.count("ListTasks") != 1 {
		t.Errorf("expected one upstream call, got %d", f.repo.count("ListTasks"))
	}

	if _, err := f.uc.Load(ctx, dashboard.LoadInput{Refresh: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.repo.count("ListTasks") != 2 {
		t.Errorf("refresh must bypass the cache")
	}
}

func TestLoadStageFailureKeepsEarlierStages(t *testing.T) {
	f := newFixture(10)
	f.repo.setFail("ListTasks", errNetwork)

	_, err := f.uc.Load(context.Background(), dashboard.LoadInput{})
	if !errors.Is(err, dashboard.ErrLoadFailed) || !errors.Is(err, errNetwork) {
		t.Fatalf("expected wrapped load failure, got %v", err)
	}
	if f.repo.count("ListPriorityTasks") != 0 {
		t.Errorf("later stages must not run after a failure")
	}

	if _, ok := customTask(f.uc, 2, "c-9"); !ok {
		t.Errorf("move details loaded before the failure should stay")
	}
}

func TestSnapshotNotLoaded(t *testing.T) {
	f := newFixture(10)
	if _, err := f.uc.Snapshot(context.Background()); !errors.Is(err, dashboard.ErrNotLoaded) {
		t.Errorf("expected ErrNotLoaded, got %v", err)
	}
}

func TestSnapshot(t *testing.T) {
	f := loadedFixture(10)

	snap, err := f.uc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Sections) != 9 {
		t.Fatalf("expected 9 sections, got %d", len(snap.Sections))
	}

	// Section 1: untagged lesson 7, not completed.
	if p := snap.Sections[0].Progress; p.Total != 1 || p.Percentage != 0 {
		t.Errorf("unexpected section 1 progress %+v", p)
	}
	// Section 2: c-8 done, c-9 open, lesson 8 done.
	if p := snap.Sections[1].Progress; p.Completed != 2 || p.Total != 3 || p.Percentage != 67 {
		t.Errorf("unexpected section 2 progress %+v", p)
	}
	if snap.Overall != 7 {
		t.Errorf("expected overall round(67/9)=7, got %d", snap.Overall)
	}

	// Priority holds 43 with fields resolved from the CTA list.
	if len(snap.Priority) != 1 || snap.Priority[0].Task.Title != "Get quotes" {
		t.Errorf("unexpected priority %+v", snap.Priority)
	}

	// Available: 7 and 42; 8 is completed and 43 is prioritized.
	if len(snap.Available) != 2 || snap.Available[0].ID != "7" || snap.Available[1].ID != "42" {
		t.Errorf("unexpected available %+v", snap.Available)
	}
	if snap.MoveDetails["moving_date"] != "2025-06-01" {
		t.Errorf("unexpected move details %v", snap.MoveDetails)
	}
}

func TestSectionProgress(t *testing.T) {
	f := loadedFixture(10)
	ctx := context.Background()

	p, err := f.uc.SectionProgress(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Completed != 2 || p.Total != 3 {
		t.Errorf("unexpected progress %+v", p)
	}

	if _, err := f.uc.SectionProgress(ctx, 0); !errors.Is(err, dashboard.ErrInvalidSection) {
		t.Errorf("expected ErrInvalidSection, got %v", err)
	}
}

func TestListTasks(t *testing.T) {
	f := loadedFixture(10)

	tests := []struct {
		name   string
		filter dashboard.TaskFilter
		want   []string
	}{
		{"open tasks", dashboard.TaskFilter{}, []string{"c-9", "7", "42", "43"}},
		{"include completed", dashboard.TaskFilter{IncludeCompleted: true}, []string{"c-8", "c-9", "7", "8", "42", "43"}},
		{"section 1 uses fallback", dashboard.TaskFilter{SectionID: model.IntPtr(1)}, []string{"7"}},
		{"cta only", dashboard.TaskFilter{Source: model.SourceCTA}, []string{"42", "43"}},
		{"category", dashboard.TaskFilter{Category: model.CategoryInMove}, []string{"42"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.uc.ListTasks(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d tasks, want %v", len(got), tt.want)
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("task %d = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestAddToPriorityIdempotent(t *testing.T) {
	f := loadedFixture(10)
	ctx := context.Background()

	out, err := f.uc.AddToPriority(ctx, "42")
	if err != nil || !out.Added {
		t.Fatalf("expected add, got %+v err=%v", out, err)
	}
	out, err = f.uc.AddToPriority(ctx, "42")
	if err != nil || out.Added || out.Reason != dashboard.SkipDuplicate {
		t.Fatalf("expected duplicate no-op, got %+v err=%v", out, err)
	}

	count := 0
	for _, id := range priorityIDs(f.uc) {
		if id == "42" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one entry for 42, got %d", count)
	}
	if f.repo.count("AddPriorityTask") != 1 {
		t.Errorf("duplicate add must not reach the server")
	}
	if _, ok := f.cache.Get(dashboard.CacheKeyPriorityTasks); ok {
		t.Errorf("committed add must invalidate the priority cache")
	}
}

func TestAddToPriorityNoOps(t *testing.T) {
	f := loadedFixture(10)
	ctx := context.Background()

	tests := []struct {
		id     string
		reason string
	}{
		{"does-not-exist", dashboard.SkipUnknownTask},
		{"", dashboard.SkipUnknownTask},
		{"8", dashboard.SkipCompleted},
		{"43", dashboard.SkipDuplicate},
	}
	for _, tt := range tests {
		out, err := f.uc.AddToPriority(ctx, tt.id)
		if err != nil {
			t.Errorf("%q: unexpected error %v", tt.id, err)
		}
		if out.Added || out.Reason != tt.reason {
			t.Errorf("%q: got %+v, want reason %q", tt.id, out, tt.reason)
		}
	}
	if f.repo.count("AddPriorityTask") != 0 {
		t.Errorf("no-ops must not reach the server")
	}
}

func TestAddToPriorityNetworkFailureRollsBack(t *testing.T) {
	f := loadedFixture(10)
	f.repo.setFail("AddPriorityTask", errNetwork)

	_, err := f.uc.AddToPriority(context.Background(), "42")
	if !errors.Is(err, optimistic.ErrRolledBack) {
		t.Fatalf("expected rollback, got %v", err)
	}
	for _, id := range priorityIDs(f.uc) {
		if id == "42" {
			t.Fatalf("42 must not stay in the priority list after a failed add")
		}
	}
}

func TestAddToPriorityFull(t *testing.T) {
	f := loadedFixture(1)

	out, err := f.uc.AddToPriority(context.Background(), "42")
	if !errors.Is(err, dashboard.ErrPriorityFull) || out.Reason != dashboard.SkipFull {
		t.Errorf("expected ErrPriorityFull, got %+v err=%v", out, err)
	}
}

func TestAddManyToPriority(t *testing.T) {
	f := loadedFixture(2)

	out, err := f.uc.AddManyToPriority(context.Background(), []string{"42", "42", "nope", "7"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Added) != 1 || out.Added[0].Task.ID != "42" {
		t.Errorf("unexpected added %+v", out.Added)
	}
	want := []string{dashboard.SkipDuplicate, dashboard.SkipUnknownTask, dashboard.SkipFull}
	if len(out.Skipped) != len(want) {
		t.Fatalf("unexpected skipped %+v", out.Skipped)
	}
	for i, reason := range want {
		if out.Skipped[i].Reason != reason {
			t.Errorf("skipped[%d] = %q, want %q", i, out.Skipped[i].Reason, reason)
		}
	}

	if _, err := f.uc.AddManyToPriority(context.Background(), nil); !errors.Is(err, dashboard.ErrEmptyTaskIDs) {
		t.Errorf("expected ErrEmptyTaskIDs, got %v", err)
	}
}

func TestRemoveFromPriorityRollbackRestoresPosition(t *testing.T) {
	f := loadedFixture(10)
	ctx := context.Background()

	for _, id := range []string{"42", "7"} {
		if _, err := f.uc.AddToPriority(ctx, id); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}
	before, _ := f.uc.ListPriority(ctx)

	f.repo.setFail("RemovePriorityTask", rejection{})
	if err := f.uc.RemoveFromPriority(ctx, "42"); !errors.Is(err, optimistic.ErrRolledBack) {
		t.Fatalf("expected rollback, got %v", err)
	}

	after, _ := f.uc.ListPriority(ctx)
	if len(after) != len(before) {
		t.Fatalf("expected %d entries, got %d", len(before), len(after))
	}
	for i := range before {
		if after[i].Task.ID != before[i].Task.ID || after[i].AddedAt != before[i].AddedAt || after[i].Task.Title != before[i].Task.Title {
			t.Errorf("entry %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestRemoveFromPriority(t *testing.T) {
	f := loadedFixture(10)
	ctx := context.Background()

	if err := f.uc.RemoveFromPriority(ctx, "43"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids := priorityIDs(f.uc); len(ids) != 0 {
		t.Errorf("expected empty list, got %v", ids)
	}
	if err := f.uc.RemoveFromPriority(ctx, "43"); !errors.Is(err, dashboard.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestCompletePriorityTask(t *testing.T) {
	ctx := context.Background()

	t.Run("declined", func(t *testing.T) {
		f := loadedFixture(10)
		declined := dashboard.ConfirmFunc(func(context.Context, model.PriorityTask) (bool, error) { return false, nil })

		if err := f.uc.CompletePriorityTask(ctx, "43", declined); !errors.Is(err, dashboard.ErrNotConfirmed) {
			t.Fatalf("expected ErrNotConfirmed, got %v", err)
		}
		if f.repo.count("CompleteTask") != 0 {
			t.Errorf("nothing may be sent without confirmation")
		}
	})

	t.Run("confirmed", func(t *testing.T) {
		f := loadedFixture(10)
		var asked model.PriorityTask
		confirm := dashboard.ConfirmFunc(func(_ context.Context, p model.PriorityTask) (bool, error) {
			asked = p
			return true, nil
		})

		if err := f.uc.CompletePriorityTask(ctx, "43", confirm); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if asked.Task.ID != "43" {
			t.Errorf("confirmer saw %+v", asked)
		}
		if ids := priorityIDs(f.uc); len(ids) != 0 {
			t.Errorf("completed task must leave the list, got %v", ids)
		}
		tasks, _ := f.uc.ListTasks(ctx, dashboard.TaskFilter{Source: model.SourceCTA, IncludeCompleted: true})
		for _, tk := range tasks {
			if tk.ID == "43" && (!tk.Completed || tk.CompletedDate == "") {
				t.Errorf("underlying task not marked completed: %+v", tk)
			}
		}
		if _, ok := f.cache.Get(dashboard.CacheKeyTasks); ok {
			t.Errorf("completion must invalidate the tasks cache")
		}
	})

	t.Run("server failure", func(t *testing.T) {
		f := loadedFixture(10)
		f.repo.setFail("CompleteTask", rejection{})

		if err := f.uc.CompletePriorityTask(ctx, "43", dashboard.Confirmed); !errors.Is(err, optimistic.ErrRolledBack) {
			t.Fatalf("expected rollback, got %v", err)
		}
		if ids := priorityIDs(f.uc); len(ids) != 1 || ids[0] != "43" {
			t.Errorf("task must stay in the list, got %v", ids)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		f := loadedFixture(10)
		if err := f.uc.CompletePriorityTask(ctx, "42", dashboard.Confirmed); !errors.Is(err, dashboard.ErrTaskNotFound) {
			t.Errorf("expected ErrTaskNotFound, got %v", err)
		}
	})
}

func TestToggleCustomTask(t *testing.T) {
	f := loadedFixture(10)

	got, err := f.uc.ToggleCustomTask(context.Background(), 2, "c-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Completed || got.CompletedDate != "2025-05-01T09:30:00Z" {
		t.Errorf("unexpected toggled task %+v", got)
	}
	if _, ok := f.cache.Get(dashboard.CacheKeyMoveDetails); ok {
		t.Errorf("toggle must invalidate move details")
	}
}

func TestToggleCustomTaskRollback(t *testing.T) {
	tests := []struct {
		name string
		id   string
		err  error
	}{
		{"rejected open task", "c-9", rejection{}},
		{"network failure on completed task", "c-8", errNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := loadedFixture(10)
			f.repo.setFail("ToggleCustomTask", tt.err)
			before, _ := customTask(f.uc, 2, tt.id)

			// Twice, so a double failure cannot drift.
			for range 2 {
				if _, err := f.uc.ToggleCustomTask(context.Background(), 2, tt.id); !errors.Is(err, optimistic.ErrRolledBack) {
					t.Fatalf("expected rollback, got %v", err)
				}
				after, _ := customTask(f.uc, 2, tt.id)
				if after.Completed != before.Completed || after.CompletedDate != before.CompletedDate {
					t.Fatalf("state drifted: %+v -> %+v", before, after)
				}
			}
		})
	}
}

func TestToggleCustomTaskValidation(t *testing.T) {
	f := loadedFixture(10)
	ctx := context.Background()

	if _, err := f.uc.ToggleCustomTask(ctx, 10, "c-9"); !errors.Is(err, dashboard.ErrInvalidSection) {
		t.Errorf("expected ErrInvalidSection, got %v", err)
	}
	if _, err := f.uc.ToggleCustomTask(ctx, 3, "c-9"); !errors.Is(err, dashboard.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestCreateCustomTask(t *testing.T) {
	ctx := context.Background()

	t.Run("validation sends nothing", func(t *testing.T) {
		f := loadedFixture(10)
		if _, err := f.uc.CreateCustomTask(ctx, dashboard.CreateCustomTaskInput{SectionID: 2, Title: "   "}); !errors.Is(err, dashboard.ErrEmptyTitle) {
			t.Errorf("expected ErrEmptyTitle, got %v", err)
		}
		if _, err := f.uc.CreateCustomTask(ctx, dashboard.CreateCustomTaskInput{SectionID: 0, Title: "x"}); !errors.Is(err, dashboard.ErrInvalidSection) {
			t.Errorf("expected ErrInvalidSection, got %v", err)
		}
		if f.repo.count("CreateCustomTask") != 0 {
			t.Errorf("invalid input must not reach the server")
		}
	})

	t.Run("inserts server record", func(t *testing.T) {
		f := loadedFixture(10)
		f.repo.created = model.Task{ID: "501", Source: model.SourceCustom}

		got, err := f.uc.CreateCustomTask(ctx, dashboard.CreateCustomTaskInput{SectionID: 2, Title: "  Pack kitchen "})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != "501" || got.Title != "Pack kitchen" {
			t.Errorf("unexpected task %+v", got)
		}
		if _, ok := customTask(f.uc, 2, "501"); !ok {
			t.Errorf("created task missing from section 2")
		}
	})

	t.Run("failure inserts nothing", func(t *testing.T) {
		f := loadedFixture(10)
		f.repo.setFail("CreateCustomTask", rejection{})

		if _, err := f.uc.CreateCustomTask(ctx, dashboard.CreateCustomTaskInput{SectionID: 3, Title: "Anything"}); !errors.Is(err, optimistic.ErrRolledBack) {
			t.Fatalf("expected failure, got %v", err)
		}
		p, _ := f.uc.SectionProgress(ctx, 3)
		if p.Total != 0 {
			t.Errorf("section 3 should stay empty, got %+v", p)
		}
	})
}

func TestDeleteCustomTask(t *testing.T) {
	ctx := context.Background()

	t.Run("rollback restores position", func(t *testing.T) {
		f := loadedFixture(10)
		f.repo.setFail("DeleteCustomTask", errNetwork)

		if err := f.uc.DeleteCustomTask(ctx, 2, "c-8"); !errors.Is(err, optimistic.ErrRolledBack) {
			t.Fatalf("expected rollback, got %v", err)
		}
		snap, _ := f.uc.Snapshot(ctx)
		custom := snap.Sections[1].Custom
		if len(custom) != 2 || custom[0].ID != "c-8" || custom[1].ID != "c-9" {
			t.Errorf("unexpected order after rollback %+v", custom)
		}
	})

	t.Run("commit", func(t *testing.T) {
		f := loadedFixture(10)
		if err := f.uc.DeleteCustomTask(ctx, 2, "c-8"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := customTask(f.uc, 2, "c-8"); ok {
			t.Errorf("deleted task still present")
		}
	})
}

func TestUpdateMoveDetails(t *testing.T) {
	f := loadedFixture(10)
	ctx := context.Background()

	details, err := f.uc.UpdateMoveDetails(ctx, map[string]any{"moving_date": "2025-07-01", "rooms": 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if details["moving_date"] != "2025-07-01" || details["rooms"] != 3 {
		t.Errorf("unexpected details %v", details)
	}

	if _, err := f.uc.UpdateMoveDetails(ctx, nil); !errors.Is(err, dashboard.ErrEmptyMoveDetails) {
		t.Errorf("expected ErrEmptyMoveDetails, got %v", err)
	}
	if _, err := f.uc.UpdateMoveDetails(ctx, map[string]any{"customTasks": nil}); !errors.Is(err, dashboard.ErrReservedField) {
		t.Errorf("expected ErrReservedField, got %v", err)
	}

	f.repo.setFail("UpdateMoveDetails", rejection{})
	if _, err := f.uc.UpdateMoveDetails(ctx, map[string]any{"moving_date": "2030-01-01"}); err == nil {
		t.Fatalf("expected failure")
	}
	snap, _ := f.uc.Snapshot(ctx)
	if snap.MoveDetails["moving_date"] != "2025-07-01" {
		t.Errorf("failed update must not change local details, got %v", snap.MoveDetails)
	}
}

func TestListMutationsDisabled(t *testing.T) {
	f := newFixture(10)
	if _, err := f.uc.ListMutations(context.Background(), dashboard.MutationFilter{}); !errors.Is(err, dashboard.ErrJournalUnavailable) {
		t.Errorf("expected ErrJournalUnavailable, got %v", err)
	}
}
