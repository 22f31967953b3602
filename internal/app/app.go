// Package app builds the dashboard component graph from configuration. It is
// shared by the API server and the movectl command.
package app

import (
	"context"
	"fmt"

	"moving-progress/config"
	"moving-progress/internal/dashboard"
	"moving-progress/internal/dashboard/repository/upstream"
	"moving-progress/internal/dashboard/usecase"
	"moving-progress/internal/journal"
	"moving-progress/internal/optimistic"
	"moving-progress/pkg/log"
	"moving-progress/pkg/moveapi"
	"moving-progress/pkg/ttlcache"
)

// App is the wired dashboard with the resources that need closing.
type App struct {
	UseCase dashboard.UseCase
	Cache   *ttlcache.Cache
	Journal *journal.Journal // nil when disabled
}

// New wires journal, backend client, repository, cache, coordinator and
// usecase. The caller owns Close.
func New(cfg *config.Config, l log.Logger) (*App, error) {
	a := &App{}

	var recorder optimistic.Recorder
	var mutationLog dashboard.MutationLog
	if cfg.Journal.Enabled {
		j, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			return nil, fmt.Errorf("open journal: %w", err)
		}
		if err := j.Migrate(); err != nil {
			j.Close()
			return nil, fmt.Errorf("migrate journal: %w", err)
		}
		a.Journal = j
		recorder = j
		mutationLog = j
	}

	client := moveapi.NewClient(moveapi.Config{
		BaseURL:       cfg.Upstream.BaseURL,
		CSRFToken:     cfg.Upstream.CSRFToken,
		SessionCookie: cfg.Upstream.SessionCookie,
		Timeout:       cfg.Upstream.Timeout,
		PageLimit:     cfg.Upstream.PageLimit,
	})
	repo := upstream.New(client, l)

	a.Cache = ttlcache.New(ttlcache.Options{
		DefaultTTL:   cfg.Cache.DefaultTTL,
		MaxEntries:   cfg.Cache.MaxEntries,
		LowWatermark: cfg.Cache.LowWatermark,
	})

	coord := optimistic.New(l, optimistic.Config{
		Timeout:  cfg.Mutation.Timeout,
		Recorder: recorder,
	})

	a.UseCase = usecase.New(l, repo, a.Cache, coord, usecase.Config{
		PriorityMaxSize: cfg.Priority.MaxSize,
		Journal:         mutationLog,
	})

	return a, nil
}

// Ping checks the journal; it always succeeds when the journal is disabled.
func (a *App) Ping(ctx context.Context) error {
	if a.Journal == nil {
		return nil
	}
	return a.Journal.Ping(ctx)
}

// Close releases the cache sweeper and the journal.
func (a *App) Close() error {
	a.Cache.Close()
	if a.Journal != nil {
		return a.Journal.Close()
	}
	return nil
}
