package optimistic

import (
	"context"
	"time"
)

// State is where a mutation ended up.
type State string

const (
	StatePending    State = "pending"
	StateCommitted  State = "committed"
	StateRolledBack State = "rolled_back"
	// StateAborted means the command never reached the server: the caller
	// gave up while waiting for an earlier mutation on the same key, or Apply
	// found nothing to change (ErrNotApplied).
	StateAborted State = "aborted"
)

// FailureKind tells rollback triggers apart in logs and in the journal.
type FailureKind string

const (
	FailureNone        FailureKind = ""
	FailureNetwork     FailureKind = "network"
	FailureApplication FailureKind = "application"
	FailureTimeout     FailureKind = "timeout"
)

// Command is one optimistic mutation.
//
// Apply changes local state before the request, Call performs the request,
// Revert undoes Apply when Call fails and Commit runs after Call succeeds.
// Only Call is required; a command without Apply/Revert is a plain
// wait-for-server mutation that still gets serialization, timeout and logging.
type Command struct {
	Name   string
	Key    string
	Apply  func()
	Call   func(ctx context.Context) error
	Revert func()
	Commit func()
}

// Outcome describes a finished mutation.
type Outcome struct {
	MutationID string
	Name       string
	Key        string
	State      State
	Failure    FailureKind
	Err        error
	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration is how long the mutation took end to end.
func (o Outcome) Duration() time.Duration {
	return o.FinishedAt.Sub(o.StartedAt)
}

// Recorder persists outcomes, e.g. the mutation journal.
type Recorder interface {
	Record(ctx context.Context, o Outcome) error
}

// Rejecter is implemented by errors that represent an application-level
// refusal (non-2xx, success:false) rather than a transport failure.
type Rejecter interface {
	Rejected() bool
}
