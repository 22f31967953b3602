package model_test

import (
	"testing"

	"moving-progress/internal/model"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want model.Category
	}{
		{"pre-move", model.CategoryPreMove},
		{"Pre-Move", model.CategoryPreMove},
		{"PRE_MOVE", model.CategoryPreMove},
		{" in move ", model.CategoryInMove},
		{"post-move", model.CategoryPostMove},
		{"postmove", model.CategoryPostMove},
		{"", model.CategoryUnknown},
		{"garden", model.CategoryUnknown},
	}

	for _, tt := range tests {
		if got := model.ParseCategory(tt.in); got != tt.want {
			t.Errorf("ParseCategory(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCategoryMatches(t *testing.T) {
	if !model.CategoryPreMove.Matches("Pre-move") {
		t.Errorf("expected case-insensitive match")
	}
	if model.CategoryPreMove.Matches("post-move") {
		t.Errorf("unexpected match across categories")
	}
	if model.CategoryUnknown.Matches("") {
		t.Errorf("unknown category must not match anything")
	}
}
