// Package progress derives section and overall completion from task state.
// Every function here is pure.
package progress

import (
	"math"

	"moving-progress/internal/model"
)

// UnassignedSectionFallback is the section that academy tasks without a
// section count toward. It applies to display and progress only, never to
// what is persisted.
const UnassignedSectionFallback = 1

// Summary is the per-section progress plus the headline number.
type Summary struct {
	Sections []model.SectionProgress `json:"sections"`
	Overall  int                     `json:"overall"`
}

// EffectiveSection returns the section a task counts toward.
func EffectiveSection(t model.Task) int {
	if t.SectionID == nil {
		return UnassignedSectionFallback
	}
	return *t.SectionID
}

// InSection reports whether t counts toward sectionID.
func InSection(t model.Task, sectionID int) bool {
	return EffectiveSection(t) == sectionID
}

// Section computes the progress of one section from the custom tasks keyed
// by section and the flat academy task list.
func Section(sectionID int, custom map[int][]model.Task, academy []model.Task) model.SectionProgress {
	sp := model.SectionProgress{SectionID: sectionID}

	for _, t := range custom[sectionID] {
		sp.Total++
		if t.Completed {
			sp.Completed++
		}
	}
	for _, t := range academy {
		if !InSection(t, sectionID) {
			continue
		}
		sp.Total++
		if t.Completed {
			sp.Completed++
		}
	}

	sp.Percentage = Percentage(sp.Completed, sp.Total)
	return sp
}

// Percentage is round(100*completed/total), 0 when total is 0, clamped to [0,100].
func Percentage(completed, total int) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	if completed >= total {
		return 100
	}
	return int(math.Round(float64(completed) * 100 / float64(total)))
}

// Overall averages the section percentages. Empty sections count as 0.
func Overall(sections []model.SectionProgress) int {
	if len(sections) == 0 {
		return 0
	}
	sum := 0
	for _, s := range sections {
		sum += s.Percentage
	}
	return clamp(int(math.Round(float64(sum) / float64(len(sections)))))
}

// Compute builds the section list and the overall value from the same inputs.
func Compute(sectionIDs []int, custom map[int][]model.Task, academy []model.Task) Summary {
	sections := make([]model.SectionProgress, len(sectionIDs))
	for i, id := range sectionIDs {
		sections[i] = Section(id, custom, academy)
	}
	return Summary{
		Sections: sections,
		Overall:  Overall(sections),
	}
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
