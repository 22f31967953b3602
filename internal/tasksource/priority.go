package tasksource

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"moving-progress/internal/model"
)

var addedAtKeys = []string{"added_at", "created_at", "createdAt"}

// NormalizePriority turns priority-set entries into PriorityTask values.
// An entry either embeds the task under "task" or references it by
// "task_id"; bare entries use their own fields. Entries that resolve to the
// same task id are kept once, first one wins.
func NormalizePriority(records []json.RawMessage) ([]model.PriorityTask, Report) {
	rep := Report{Total: len(records)}
	out := make([]model.PriorityTask, 0, len(records))
	seen := make(map[string]bool, len(records))

	for i, raw := range records {
		entry, err := decodeRecord(raw)
		if err != nil {
			rep.Skipped++
			continue
		}

		rec := entry
		if nested, ok := entry["task"].(map[string]any); ok {
			rec = record(nested)
		}

		src := model.SourceLesson
		if s, tagged := rec.source(); tagged && s != string(model.SourceLesson) {
			src = model.SourceCTA
		}

		t, defaulted := build(rec, src, fallbackID(src, i))
		if ref, ok := entry.taskRef(); ok {
			t.ID = ref
			defaulted = false
		}
		if defaulted {
			rep.Defaulted++
		}
		if seen[t.ID] {
			rep.Filtered++
			continue
		}
		seen[t.ID] = true

		out = append(out, model.PriorityTask{Task: t, AddedAt: entry.addedAt()})
	}
	return out, rep
}

func (r record) taskRef() (string, bool) {
	switch v := r["task_id"].(type) {
	case json.Number:
		return v.String(), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return s, true
		}
	}
	return "", false
}

func (r record) addedAt() time.Time {
	s := r.str(addedAtKeys...)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
