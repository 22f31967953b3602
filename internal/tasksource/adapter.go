// Package tasksource turns the backend's heterogeneous task payloads into
// model.Task values. A bad record never blocks the rest of a list.
package tasksource

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"moving-progress/internal/model"
)

const untitled = "Untitled task"

// Report counts what happened to the records of one normalization pass.
type Report struct {
	Total     int
	Skipped   int // not JSON objects
	Defaulted int // had no id and got a fallback one
	Filtered  int // tagged with a source owned by another collection
}

func (r *Report) add(o Report) {
	r.Total += o.Total
	r.Skipped += o.Skipped
	r.Defaulted += o.Defaulted
	r.Filtered += o.Filtered
}

func build(rec record, src model.Source, fallbackID string) (model.Task, bool) {
	id, ok := rec.id()
	if !ok {
		id = fallbackID
	}

	title := rec.str(titleKeys...)
	if title == "" {
		title = untitled
	}

	t := model.Task{
		ID:          id,
		Title:       title,
		Description: rec.str(descKeys...),
		Category:    model.ParseCategory(rec.str("category")),
		Completed:   rec.completed(),
		Source:      src,
		SectionID:   rec.sectionID(),
	}
	if t.Completed {
		t.CompletedDate = rec.completionDate()
	}
	return t, !ok
}

// IsCompleted reports whether raw carries any completion signal. Malformed
// records are not completed.
func IsCompleted(raw json.RawMessage) bool {
	rec, err := decodeRecord(raw)
	if err != nil {
		return false
	}
	return rec.completed()
}

// FromCustom normalizes a user-authored task listed under sectionID.
func FromCustom(raw json.RawMessage, sectionID, index int) (model.Task, error) {
	rec, err := decodeRecord(raw)
	if err != nil {
		return model.Task{}, err
	}
	t, _ := build(rec, model.SourceCustom, customFallbackID(sectionID, index))
	t.SectionID = model.IntPtr(sectionID)
	return t, nil
}

// FromAcademy normalizes a lesson-derived task. Records whose source is set to
// anything but "lesson" return ErrFilteredSource.
func FromAcademy(raw json.RawMessage, index int) (model.Task, error) {
	rec, err := decodeRecord(raw)
	if err != nil {
		return model.Task{}, err
	}
	if src, ok := rec.source(); ok && src != string(model.SourceLesson) {
		return model.Task{}, ErrFilteredSource
	}
	t, _ := build(rec, model.SourceLesson, fallbackID(model.SourceLesson, index))
	return t, nil
}

// FromCTA normalizes a system-suggested task.
func FromCTA(raw json.RawMessage, index int) (model.Task, error) {
	rec, err := decodeRecord(raw)
	if err != nil {
		return model.Task{}, err
	}
	t, _ := build(rec, model.SourceCTA, fallbackID(model.SourceCTA, index))
	return t, nil
}

// NormalizeAcademy keeps lesson tasks (source absent or "lesson") only.
func NormalizeAcademy(records []json.RawMessage) ([]model.Task, Report) {
	academy, _, rep := split(records, false)
	return academy, rep
}

// NormalizeCTA treats every object record as a CTA task.
func NormalizeCTA(records []json.RawMessage) ([]model.Task, Report) {
	rep := Report{Total: len(records)}
	tasks := make([]model.Task, 0, len(records))
	for i, raw := range records {
		rec, err := decodeRecord(raw)
		if err != nil {
			rep.Skipped++
			continue
		}
		t, defaulted := build(rec, model.SourceCTA, fallbackID(model.SourceCTA, i))
		if defaulted {
			rep.Defaulted++
		}
		tasks = append(tasks, t)
	}
	return tasks, rep
}

// Split sorts a generic task list into academy tasks (source absent or
// "lesson") and CTA tasks (any other source except "custom", which arrives
// through move details instead).
func Split(records []json.RawMessage) (academy, cta []model.Task, rep Report) {
	return split(records, true)
}

func split(records []json.RawMessage, keepCTA bool) (academy, cta []model.Task, rep Report) {
	rep.Total = len(records)
	academy = make([]model.Task, 0, len(records))
	cta = make([]model.Task, 0)

	for i, raw := range records {
		rec, err := decodeRecord(raw)
		if err != nil {
			rep.Skipped++
			continue
		}

		src, tagged := rec.source()
		switch {
		case !tagged || src == string(model.SourceLesson):
			t, defaulted := build(rec, model.SourceLesson, fallbackID(model.SourceLesson, i))
			if defaulted {
				rep.Defaulted++
			}
			academy = append(academy, t)
		case src == string(model.SourceCustom) || !keepCTA:
			rep.Filtered++
		default:
			t, defaulted := build(rec, model.SourceCTA, fallbackID(model.SourceCTA, i))
			if defaulted {
				rep.Defaulted++
			}
			cta = append(cta, t)
		}
	}
	return academy, cta, rep
}

// NormalizeCustomSections normalizes custom tasks grouped by section key.
// Groups whose key is not a valid section are skipped whole.
func NormalizeCustomSections(groups map[string][]json.RawMessage) (map[int][]model.Task, Report) {
	out := make(map[int][]model.Task, len(groups))
	var rep Report

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		records := groups[key]
		sectionID := ParseSectionID(key)
		if sectionID == nil {
			rep.add(Report{Total: len(records), Skipped: len(records)})
			continue
		}

		var group Report
		group.Total = len(records)
		tasks := make([]model.Task, 0, len(records))
		for i, raw := range records {
			rec, err := decodeRecord(raw)
			if err != nil {
				group.Skipped++
				continue
			}
			t, defaulted := build(rec, model.SourceCustom, customFallbackID(*sectionID, i))
			if defaulted {
				group.Defaulted++
			}
			t.SectionID = model.IntPtr(*sectionID)
			tasks = append(tasks, t)
		}
		out[*sectionID] = append(out[*sectionID], tasks...)
		rep.add(group)
	}
	return out, rep
}

func fallbackID(src model.Source, index int) string {
	return fmt.Sprintf("%s-fallback-%d", src, index)
}

func customFallbackID(sectionID, index int) string {
	return string(model.SourceCustom) + "-fallback-" + strconv.Itoa(sectionID) + "-" + strconv.Itoa(index)
}
