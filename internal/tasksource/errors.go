package tasksource

import "errors"

var (
	ErrMalformedRecord = errors.New("task record is not a JSON object")
	ErrFilteredSource  = errors.New("task record belongs to another source")
)
