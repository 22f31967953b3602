package usecase_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"moving-progress/internal/dashboard"
	"moving-progress/internal/dashboard/repository"
	"moving-progress/internal/dashboard/usecase"
	"moving-progress/internal/model"
	"moving-progress/internal/optimistic"
	"moving-progress/pkg/ttlcache"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

type rejection struct{}

func (rejection) Error() string  { return "success:false" }
func (rejection) Rejected() bool { return true }

var errNetwork = errors.New("connection refused")

// mockRepo serves canned data and fails the operations named in fail.
type mockRepo struct {
	mu     sync.Mutex
	calls  map[string]int
	fail   map[string]error
	onCall map[string]func()

	details  dashboard.MoveDetailsData
	lists    dashboard.TaskLists
	priority []model.PriorityTask
	created  model.Task
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		calls:  make(map[string]int),
		fail:   make(map[string]error),
		onCall: make(map[string]func()),
		details: dashboard.MoveDetailsData{
			CustomTasks: map[int][]model.Task{
				2: {
					{ID: "c-8", Title: "Pack books", Source: model.SourceCustom, SectionID: model.IntPtr(2), Completed: true, CompletedDate: "2025-01-01T00:00:00Z"},
					{ID: "c-9", Title: "Call bank", Source: model.SourceCustom, SectionID: model.IntPtr(2)},
				},
			},
			Fields: model.MoveDetails{"moving_date": "2025-06-01"},
		},
		lists: dashboard.TaskLists{
			Academy: []model.Task{
				{ID: "7", Title: "Watch budgeting lesson", Source: model.SourceLesson, Category: model.CategoryPreMove},
				{ID: "8", Title: "Read packing guide", Source: model.SourceLesson, SectionID: model.IntPtr(2), Completed: true},
			},
			CTA: []model.Task{
				{ID: "42", Title: "Book van", Source: model.SourceCTA, Category: model.CategoryInMove},
				{ID: "43", Title: "Get quotes", Source: model.SourceCTA},
			},
		},
		priority: []model.PriorityTask{
			{Task: model.Task{ID: "43"}},
		},
	}
}

func (m *mockRepo) hit(op string) error {
	m.mu.Lock()
	m.calls[op]++
	fn := m.onCall[op]
	err := m.fail[op]
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
	return err
}

func (m *mockRepo) count(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

// during runs fn inside op, while the mutation is still in flight.
func (m *mockRepo) during(op string, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onCall[op] = fn
}

func (m *mockRepo) setFail(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail[op] = err
}

func (m *mockRepo) ListTasks(ctx context.Context) (dashboard.TaskLists, error) {
	if err := m.hit("ListTasks"); err != nil {
		return dashboard.TaskLists{}, err
	}
	return m.lists, nil
}

func (m *mockRepo) CompleteTask(ctx context.Context, taskID string) error {
	return m.hit("CompleteTask")
}

func (m *mockRepo) ListPriorityTasks(ctx context.Context) ([]model.PriorityTask, error) {
	if err := m.hit("ListPriorityTasks"); err != nil {
		return nil, err
	}
	return m.priority, nil
}

func (m *mockRepo) AddPriorityTask(ctx context.Context, taskID string) error {
	return m.hit("AddPriorityTask")
}

func (m *mockRepo) RemovePriorityTask(ctx context.Context, taskID string) error {
	return m.hit("RemovePriorityTask")
}

func (m *mockRepo) GetMoveDetails(ctx context.Context) (dashboard.MoveDetailsData, error) {
	if err := m.hit("GetMoveDetails"); err != nil {
		return dashboard.MoveDetailsData{}, err
	}
	return m.details, nil
}

func (m *mockRepo) CreateCustomTask(ctx context.Context, opt repository.CreateCustomTaskOptions) (model.Task, error) {
	if err := m.hit("CreateCustomTask"); err != nil {
		return model.Task{}, err
	}
	t := m.created
	t.Title = opt.Title
	t.SectionID = model.IntPtr(opt.SectionID)
	return t, nil
}

func (m *mockRepo) ToggleCustomTask(ctx context.Context, opt repository.ToggleCustomTaskOptions) error {
	return m.hit("ToggleCustomTask")
}

func (m *mockRepo) DeleteCustomTask(ctx context.Context, opt repository.DeleteCustomTaskOptions) error {
	return m.hit("DeleteCustomTask")
}

func (m *mockRepo) UpdateMoveDetails(ctx context.Context, fields map[string]any) error {
	return m.hit("UpdateMoveDetails")
}

type fixture struct {
	uc    dashboard.UseCase
	repo  *mockRepo
	cache *ttlcache.Cache
	rec   *outcomeLog
}

// outcomeLog keeps every outcome the coordinator records.
type outcomeLog struct {
	mu  sync.Mutex
	out []optimistic.Outcome
}

func (r *outcomeLog) Record(ctx context.Context, o optimistic.Outcome) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.out = append(r.out, o)
	return nil
}

func (r *outcomeLog) states(name string) []optimistic.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	var states []optimistic.State
	for _, o := range r.out {
		if o.Name == name {
			states = append(states, o.State)
		}
	}
	return states
}

var fixedNow = time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)

func newFixture(maxSize int) fixture {
	repo := newMockRepo()
	l := &mockLogger{}
	cache := ttlcache.New(ttlcache.Options{})
	rec := &outcomeLog{}
	coord := optimistic.New(l, optimistic.Config{Timeout: time.Second, Recorder: rec})
	uc := usecase.New(l, repo, cache, coord, usecase.Config{
		PriorityMaxSize: maxSize,
		Now:             func() time.Time { return fixedNow },
	})
	return fixture{uc: uc, repo: repo, cache: cache, rec: rec}
}

func loadedFixture(maxSize int) fixture {
	f := newFixture(maxSize)
	if _, err := f.uc.Load(context.Background(), dashboard.LoadInput{}); err != nil {
		panic(err)
	}
	return f
}

func priorityIDs(uc dashboard.UseCase) []string {
	items, _ := uc.ListPriority(context.Background())
	ids := make([]string, len(items))
	for i, p := range items {
		ids[i] = p.Task.ID
	}
	return ids
}

func customTask(uc dashboard.UseCase, sectionID int, id string) (model.Task, bool) {
	snap, err := uc.Snapshot(context.Background())
	if err != nil {
		return model.Task{}, false
	}
	for _, v := range snap.Sections {
		if v.Section.ID != sectionID {
			continue
		}
		for _, t := range v.Custom {
			if t.ID == id {
				return t, true
			}
		}
	}
	return model.Task{}, false
}
