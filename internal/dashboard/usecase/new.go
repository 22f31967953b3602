package usecase

import (
	"sync"
	"time"

	"moving-progress/internal/dashboard"
	"moving-progress/internal/dashboard/repository"
	"moving-progress/internal/model"
	"moving-progress/internal/optimistic"
	"moving-progress/pkg/log"
	"moving-progress/pkg/ttlcache"
)

const DefaultPriorityMaxSize = 10

// Config holds use case tunables.
type Config struct {
	PriorityMaxSize int
	// Journal backs ListMutations; nil disables it.
	Journal dashboard.MutationLog
	Now     func() time.Time
}

// board is the in-memory dashboard state.
type board struct {
	custom   map[int][]model.Task
	academy  []model.Task
	cta      []model.Task
	priority []model.PriorityTask
	details  model.MoveDetails

	loaded   map[string]bool
	loadedAt time.Time
}

// implUseCase is the private implementation of dashboard.UseCase.
type implUseCase struct {
	l       log.Logger
	repo    repository.Repository
	cache   *ttlcache.Cache
	coord   *optimistic.Coordinator
	journal dashboard.MutationLog
	maxSize int
	now     func() time.Time

	mu    sync.RWMutex
	state board
}

// New creates a new dashboard UseCase implementation.
func New(l log.Logger, repo repository.Repository, cache *ttlcache.Cache, coord *optimistic.Coordinator, cfg Config) *implUseCase {
	if cfg.PriorityMaxSize <= 0 {
		cfg.PriorityMaxSize = DefaultPriorityMaxSize
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &implUseCase{
		l:       l,
		repo:    repo,
		cache:   cache,
		coord:   coord,
		journal: cfg.Journal,
		maxSize: cfg.PriorityMaxSize,
		now:     cfg.Now,
		state: board{
			custom:  make(map[int][]model.Task),
			details: make(model.MoveDetails),
			loaded:  make(map[string]bool),
		},
	}
}
