// Package stage holds the closed, ordered set of move stages.
package stage

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"moving-progress/internal/model"
)

//go:embed stages.yaml
var stagesYAML []byte

var catalog = mustParse(stagesYAML)

type catalogFile struct {
	Stages []model.Section `yaml:"stages"`
}

// Parse decodes a stage catalog. Stage ids must be 1..N in order.
func Parse(data []byte) ([]model.Section, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode stage catalog: %w", err)
	}
	if len(f.Stages) == 0 {
		return nil, fmt.Errorf("stage catalog is empty")
	}
	for i, s := range f.Stages {
		if s.ID != i+1 {
			return nil, fmt.Errorf("stage %d: expected id %d, got %d", i, i+1, s.ID)
		}
		if s.Label == "" {
			return nil, fmt.Errorf("stage %d: label is required", s.ID)
		}
	}
	return f.Stages, nil
}

func mustParse(data []byte) []model.Section {
	sections, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return sections
}

// All returns the stages ordered by id.
func All() []model.Section {
	out := make([]model.Section, len(catalog))
	copy(out, catalog)
	return out
}

// IDs returns 1..Count().
func IDs() []int {
	ids := make([]int, len(catalog))
	for i, s := range catalog {
		ids[i] = s.ID
	}
	return ids
}

// Count is the number of move stages.
func Count() int {
	return len(catalog)
}

// Valid reports whether id names a stage.
func Valid(id int) bool {
	return id >= 1 && id <= len(catalog)
}

// Get returns the stage with the given id.
func Get(id int) (model.Section, bool) {
	if !Valid(id) {
		return model.Section{}, false
	}
	return catalog[id-1], true
}
