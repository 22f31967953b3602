package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"moving-progress/config"
	"moving-progress/internal/dashboard"
	"moving-progress/pkg/log"
)

func testConfig(baseURL, journalPath string) *config.Config {
	return &config.Config{
		Upstream: config.UpstreamConfig{BaseURL: baseURL, Timeout: time.Second, PageLimit: 2},
		Cache:    config.CacheConfig{DefaultTTL: time.Minute, MaxEntries: 10, LowWatermark: 8},
		Mutation: config.MutationConfig{Timeout: time.Second},
		Priority: config.PriorityConfig{MaxSize: 10},
		Journal:  config.JournalConfig{Enabled: journalPath != "", Path: journalPath},
	}
}

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tasks", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"title":"Book removals","category":"pre-move","section_id":2}]`))
	})
	mux.HandleFunc("/api/priority-tasks", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.Write([]byte(`{"success":false,"message":"nope"}`))
			return
		}
		w.Write([]byte(`{"success":true,"priority_tasks":[]}`))
	})
	mux.HandleFunc("/api/move-details", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"customTasks":[]}}`))
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func TestNew_WiresJournal(t *testing.T) {
	ts := newBackend(t)
	a, err := New(testConfig(ts.URL, filepath.Join(t.TempDir(), "journal.db")), log.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close()

	ctx := context.Background()
	if err := a.Ping(ctx); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
	if _, err := a.UseCase.Load(ctx, dashboard.LoadInput{}); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	_, err = a.UseCase.AddToPriority(ctx, "1")
	if err == nil {
		t.Fatalf("expected the rejected add to fail")
	}

	entries, err := a.UseCase.ListMutations(ctx, dashboard.MutationFilter{})
	if err != nil {
		t.Fatalf("ListMutations failed: %v", err)
	}
	if len(entries) != 1 || entries[0].State != "rolled_back" {
		t.Errorf("expected one rolled back entry, got %+v", entries)
	}
}

func TestNew_JournalDisabled(t *testing.T) {
	ts := newBackend(t)
	a, err := New(testConfig(ts.URL, ""), log.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close()

	if a.Journal != nil {
		t.Errorf("journal should be nil when disabled")
	}
	if err := a.Ping(context.Background()); err != nil {
		t.Errorf("Ping should succeed without a journal: %v", err)
	}
	_, err = a.UseCase.ListMutations(context.Background(), dashboard.MutationFilter{})
	if !errors.Is(err, dashboard.ErrJournalUnavailable) {
		t.Errorf("expected ErrJournalUnavailable, got %v", err)
	}
}
