package tasksource

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"moving-progress/internal/stage"
)

// record is one raw task object as sent by the backend.
type record map[string]any

var (
	sectionKeys    = []string{"section_id", "sectionId", "section"}
	completionKeys = []string{"completed_at", "completedAt", "completed_date", "completedDate"}
	titleKeys      = []string{"title", "name", "lesson_title"}
	descKeys       = []string{"description", "summary"}
)

func decodeRecord(raw json.RawMessage) (record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var rec record
	if err := dec.Decode(&rec); err != nil {
		return nil, ErrMalformedRecord
	}
	if rec == nil {
		return nil, ErrMalformedRecord
	}
	return rec, nil
}

func (r record) id() (string, bool) {
	switch v := r["id"].(type) {
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

func (r record) str(keys ...string) string {
	for _, k := range keys {
		if s, ok := r[k].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}

// source returns the source tag exactly as sent and whether one was present.
// Tags are matched case-sensitively, so "Lesson" is not a lesson.
func (r record) source() (string, bool) {
	s, _ := r["source"].(string)
	return s, s != ""
}

func (r record) completionDate() string {
	for _, k := range completionKeys {
		switch v := r[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case json.Number:
			return v.String()
		}
	}
	return ""
}

// completed applies the any-of rule: explicit flag, status "completed", or a
// completion timestamp. Sources fill different subsets of the three.
func (r record) completed() bool {
	if truthy(r["completed"]) {
		return true
	}
	if strings.EqualFold(strings.TrimSpace(r.str("status")), "completed") {
		return true
	}
	return r.completionDate() != ""
}

func (r record) sectionID() *int {
	for _, k := range sectionKeys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		if id := ParseSectionID(v); id != nil {
			return id
		}
	}
	return nil
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case json.Number:
		n, err := t.Int64()
		return err == nil && n != 0
	case float64:
		return t != 0
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		return s == "true" || s == "1"
	}
	return false
}

// ParseSectionID accepts a number, a numeric string or an object with an "id"
// and returns nil when the value is absent, unparsable or out of stage range.
func ParseSectionID(v any) *int {
	var n int
	switch t := v.(type) {
	case json.Number:
		i, err := t.Int64()
		if err != nil {
			f, ferr := t.Float64()
			if ferr != nil || f != float64(int64(f)) {
				return nil
			}
			i = int64(f)
		}
		n = int(i)
	case float64:
		if t != float64(int64(t)) {
			return nil
		}
		n = int(t)
	case int:
		n = t
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return nil
		}
		n = i
	case map[string]any:
		return ParseSectionID(t["id"])
	default:
		return nil
	}

	if !stage.Valid(n) {
		return nil
	}
	return &n
}
