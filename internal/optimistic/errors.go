package optimistic

import "errors"

var (
	ErrRolledBack     = errors.New("mutation rolled back")
	ErrAborted        = errors.New("mutation aborted before it started")
	ErrInvalidCommand = errors.New("mutation command has no call")
	// ErrNotApplied is returned by a Call when Apply found nothing to change.
	// The command is recorded as aborted and neither Commit nor Revert runs.
	ErrNotApplied = errors.New("mutation not applied")
)
