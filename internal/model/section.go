package model

// Section is one of the fixed move stages.
type Section struct {
	ID          int    `json:"id"          yaml:"id"`
	Label       string `json:"label"       yaml:"label"`
	ShortLabel  string `json:"short_label" yaml:"short_label"`
	Icon        string `json:"icon"        yaml:"icon"`
	Description string `json:"description" yaml:"description"`
}

// SectionProgress is derived from the tasks assigned to a section; never stored.
type SectionProgress struct {
	SectionID  int `json:"section_id"`
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}
