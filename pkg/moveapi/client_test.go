package moveapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"moving-progress/pkg/moveapi"
)

func newTestClient(t *testing.T, mux *http.ServeMux) *moveapi.Client {
	t.Helper()
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return moveapi.NewClient(moveapi.Config{
		BaseURL:       ts.URL + "/",
		CSRFToken:     "csrf-123",
		SessionCookie: "moovey_session=abc",
	})
}

func TestListTasksPaginated(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tasks", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Cookie") != "moovey_session=abc" {
			t.Errorf("missing session cookie")
		}
		if r.Header.Get(moveapi.HeaderCSRF) != "" {
			t.Errorf("GET requests should not carry the csrf token")
		}
		switch r.URL.Query().Get("page") {
		case "1":
			w.Write([]byte(`{"data":[{"id":1},{"id":2}],"current_page":1,"last_page":2}`))
		case "2":
			w.Write([]byte(`{"data":[{"id":3}],"current_page":2,"last_page":2}`))
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	})

	c := newTestClient(t, mux)
	tasks, err := c.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 3 {
		t.Errorf("expected 3 tasks across pages, got %d", len(tasks))
	}
}

func TestListTasksBareArray(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tasks", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(` [{"id":1},{"id":"x"}]`))
	})

	c := newTestClient(t, mux)
	tasks, err := c.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("expected 2 tasks, got %d", len(tasks))
	}
}

func TestListTasksPageLimit(t *testing.T) {
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tasks", func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"data":[{"id":1}],"current_page":1,"last_page":100}`))
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()
	c := moveapi.NewClient(moveapi.Config{BaseURL: ts.URL, PageLimit: 3})

	tasks, err := c.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 || len(tasks) != 3 {
		t.Errorf("expected 3 pages fetched, calls=%d tasks=%d", calls, len(tasks))
	}
}

func TestMutationsCarryCSRF(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/priority-tasks", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			if r.Header.Get(moveapi.HeaderCSRF) != "csrf-123" {
				t.Errorf("missing csrf token")
			}
			var body moveapi.AddPriorityTaskRequest
			json.NewDecoder(r.Body).Decode(&body)
			if body.TaskID != "42" {
				t.Errorf("unexpected task_id %q", body.TaskID)
			}
			w.Write([]byte(`{"success":true}`))
		case http.MethodGet:
			w.Write([]byte(`{"success":true,"priority_tasks":[{"id":1,"task_id":42}]}`))
		}
	})
	mux.HandleFunc("/api/priority-tasks/42", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		w.Write([]byte(`{"success":true}`))
	})
	mux.HandleFunc("/api/tasks/42/complete", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH, got %s", r.Method)
		}
		w.Write([]byte(`{"success":true}`))
	})

	c := newTestClient(t, mux)
	ctx := context.Background()

	if err := c.AddPriorityTask(ctx, "42"); err != nil {
		t.Errorf("AddPriorityTask: %v", err)
	}
	if err := c.RemovePriorityTask(ctx, "42"); err != nil {
		t.Errorf("RemovePriorityTask: %v", err)
	}
	if err := c.CompleteTask(ctx, "42"); err != nil {
		t.Errorf("CompleteTask: %v", err)
	}
	items, err := c.ListPriorityTasks(ctx)
	if err != nil || len(items) != 1 {
		t.Errorf("ListPriorityTasks: items=%d err=%v", len(items), err)
	}
}

func TestApplicationFailures(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/priority-tasks", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Write([]byte(`{"success":false,"message":"no session"}`))
			return
		}
		w.Write([]byte(`{"success":false,"message":"already prioritised"}`))
	})
	mux.HandleFunc("/api/priority-tasks/1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(419)
		w.Write([]byte(`{"message":"CSRF token mismatch."}`))
	})
	mux.HandleFunc("/api/tasks/1/complete", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	c := newTestClient(t, mux)
	ctx := context.Background()

	tests := []struct {
		name    string
		call    func() error
		status  int
		message string
	}{
		{"success false", func() error { return c.AddPriorityTask(ctx, "1") }, 200, "already prioritised"},
		{"non-2xx", func() error { return c.RemovePriorityTask(ctx, "1") }, 419, "CSRF token mismatch."},
		{"missing success", func() error { return c.CompleteTask(ctx, "1") }, 200, ""},
		{"list success false", func() error { _, err := c.ListPriorityTasks(ctx); return err }, 200, "no session"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			var apiErr *moveapi.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %v", err)
			}
			if apiErr.Status != tt.status || apiErr.Message != tt.message {
				t.Errorf("unexpected error %+v", apiErr)
			}
			if !apiErr.Rejected() {
				t.Errorf("APIError must report Rejected")
			}
		})
	}
}

func TestErrorBodyTruncatedOnRuneBoundary(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/priority-tasks/1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("x" + strings.Repeat("é", 600)))
	})

	c := newTestClient(t, mux)
	err := c.RemovePriorityTask(context.Background(), "1")
	var apiErr *moveapi.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if !utf8.ValidString(apiErr.Message) {
		t.Errorf("message is not valid UTF-8: %q", apiErr.Message)
	}
	if n := len(apiErr.Message); n == 0 || n > 512 {
		t.Errorf("message length = %d, want 1..512", n)
	}
}

func TestNetworkFailure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c := moveapi.NewClient(moveapi.Config{BaseURL: url})
	err := c.AddPriorityTask(context.Background(), "1")
	if err == nil {
		t.Fatalf("expected error")
	}
	var apiErr *moveapi.APIError
	if errors.As(err, &apiErr) {
		t.Errorf("transport failures must not be APIError")
	}
}

func TestMoveDetailsAndCustomTasks(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/move-details", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"data":{"customTasks":{"2":[{"id":"c-9","title":"Call bank"}]},"moving_date":"2025-06-01"}}`))
		case http.MethodPatch:
			var fields map[string]any
			json.NewDecoder(r.Body).Decode(&fields)
			if fields["moving_date"] != "2025-07-01" {
				t.Errorf("unexpected fields %v", fields)
			}
			w.Write([]byte(`{"success":true}`))
		}
	})
	mux.HandleFunc("/api/move-details/custom-tasks", func(w http.ResponseWriter, r *http.Request) {
		var req moveapi.CreateCustomTaskRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.SectionID != 2 || req.Title != "Book van" {
			t.Errorf("unexpected create body %+v", req)
		}
		w.Write([]byte(`{"success":true,"task":{"id":"c-10","title":"Book van","completed":false}}`))
	})
	mux.HandleFunc("/api/move-details/custom-tasks/c-9/toggle", func(w http.ResponseWriter, r *http.Request) {
		var req moveapi.ToggleCustomTaskRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.SectionID != 2 || !req.Completed {
			t.Errorf("unexpected toggle body %+v", req)
		}
		w.Write([]byte(`{"success":true}`))
	})
	mux.HandleFunc("/api/move-details/custom-tasks/c-9", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]int
		json.NewDecoder(r.Body).Decode(&body)
		if r.Method != http.MethodDelete || body["section_id"] != 2 {
			t.Errorf("unexpected delete %s %v", r.Method, body)
		}
		w.Write([]byte(`{"success":true}`))
	})

	c := newTestClient(t, mux)
	ctx := context.Background()

	details, err := c.GetMoveDetails(ctx)
	if err != nil {
		t.Fatalf("GetMoveDetails: %v", err)
	}
	if len(details.CustomTasks["2"]) != 1 {
		t.Errorf("unexpected custom tasks %v", details.CustomTasks)
	}
	if _, ok := details.Fields["moving_date"]; !ok {
		t.Errorf("expected moving_date field")
	}
	if _, ok := details.Fields["customTasks"]; ok {
		t.Errorf("customTasks must not leak into fields")
	}

	task, err := c.CreateCustomTask(ctx, moveapi.CreateCustomTaskRequest{SectionID: 2, Title: "Book van"})
	if err != nil {
		t.Fatalf("CreateCustomTask: %v", err)
	}
	if len(task) == 0 {
		t.Errorf("expected task payload")
	}

	if err := c.ToggleCustomTask(ctx, "c-9", moveapi.ToggleCustomTaskRequest{SectionID: 2, Completed: true}); err != nil {
		t.Errorf("ToggleCustomTask: %v", err)
	}
	if err := c.DeleteCustomTask(ctx, "c-9", 2); err != nil {
		t.Errorf("DeleteCustomTask: %v", err)
	}
	if err := c.UpdateMoveDetails(ctx, map[string]any{"moving_date": "2025-07-01"}); err != nil {
		t.Errorf("UpdateMoveDetails: %v", err)
	}
}

func TestMoveDetailsEmptyCustomTasksArray(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/move-details", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"customTasks":[]}}`))
	})

	c := newTestClient(t, mux)
	details, err := c.GetMoveDetails(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(details.CustomTasks) != 0 {
		t.Errorf("expected no custom tasks, got %v", details.CustomTasks)
	}
}
