package model

import (
	"strings"
	"time"
)

// Category is the move-lifecycle phase a task belongs to.
type Category string

const (
	CategoryPreMove  Category = "pre-move"
	CategoryInMove   Category = "in-move"
	CategoryPostMove Category = "post-move"
	CategoryUnknown  Category = ""
)

// ParseCategory matches s case-insensitively, accepting "_" or spaces as separators.
func ParseCategory(s string) Category {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", "-", " ", "-").Replace(norm)
	switch norm {
	case string(CategoryPreMove), "premove":
		return CategoryPreMove
	case string(CategoryInMove), "inmove", "moving-day":
		return CategoryInMove
	case string(CategoryPostMove), "postmove":
		return CategoryPostMove
	default:
		return CategoryUnknown
	}
}

// Matches reports whether the display category names this category.
func (c Category) Matches(display string) bool {
	if c == CategoryUnknown {
		return false
	}
	return ParseCategory(display) == c
}

// Source says where a task came from.
type Source string

const (
	SourceLesson Source = "lesson"
	SourceCustom Source = "custom"
	SourceCTA    Source = "cta"
)

// Task is the normalized shape shared by custom, lesson and CTA tasks.
type Task struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	Category      Category `json:"category,omitempty"`
	Completed     bool     `json:"completed"`
	CompletedDate string   `json:"completed_date,omitempty"`
	Source        Source   `json:"source"`
	// SectionID is nil when the task is not assigned to a move stage.
	SectionID *int `json:"section_id,omitempty"`
}

// HasSection reports whether the task carries an explicit section.
func (t Task) HasSection() bool {
	return t.SectionID != nil
}

// PriorityTask is a task placed on the dashboard priority list.
type PriorityTask struct {
	Task    Task      `json:"task"`
	AddedAt time.Time `json:"added_at"`
}

// MoveDetails holds the personal move fields edited on the move-details page.
type MoveDetails map[string]any

// IntPtr is a small helper for building optional section ids.
func IntPtr(v int) *int {
	return &v
}
