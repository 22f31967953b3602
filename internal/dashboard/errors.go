package dashboard

import "errors"

var (
	ErrNotLoaded          = errors.New("dashboard has not been loaded yet")
	ErrLoadFailed         = errors.New("failed to load dashboard data")
	ErrEmptyTitle         = errors.New("task title must not be empty")
	ErrInvalidSection     = errors.New("invalid section")
	ErrTaskNotFound       = errors.New("task not found")
	ErrPriorityFull       = errors.New("priority list is full")
	ErrNotConfirmed       = errors.New("completion was not confirmed")
	ErrEmptyMoveDetails   = errors.New("no move detail fields given")
	ErrReservedField      = errors.New("move detail field is reserved")
	ErrEmptyTaskIDs       = errors.New("no task ids given")
	ErrJournalUnavailable = errors.New("mutation journal is disabled")
)
