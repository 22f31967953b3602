package repository

// CreateCustomTaskOptions holds parameters for creating a custom task.
type CreateCustomTaskOptions struct {
	SectionID   int
	Title       string
	Description string
}

// ToggleCustomTaskOptions sets the completion state of a custom task.
type ToggleCustomTaskOptions struct {
	SectionID int
	TaskID    string
	Completed bool
}

// DeleteCustomTaskOptions identifies the custom task to delete.
type DeleteCustomTaskOptions struct {
	SectionID int
	TaskID    string
}
