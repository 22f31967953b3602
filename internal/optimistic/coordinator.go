// Package optimistic runs mutations that change local state first and undo
// the change when the server does not confirm it.
package optimistic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"moving-progress/pkg/log"
)

const DefaultTimeout = 15 * time.Second

// Config configures a Coordinator.
type Config struct {
	Timeout  time.Duration
	Recorder Recorder
	Now      func() time.Time
}

// Coordinator serializes mutations per key and applies the
// commit/rollback contract uniformly.
type Coordinator struct {
	l        log.Logger
	timeout  time.Duration
	recorder Recorder
	now      func() time.Time
	locks    *keyedLocks
}

// New creates a Coordinator.
func New(l log.Logger, cfg Config) *Coordinator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Coordinator{
		l:        l,
		timeout:  cfg.Timeout,
		recorder: cfg.Recorder,
		now:      cfg.Now,
		locks:    newKeyedLocks(),
	}
}

// Execute runs cmd. While it runs no other command with the same key can
// start, so an old rollback never overwrites a newer optimistic state.
// The returned error wraps ErrRolledBack (and the cause) when the server did
// not confirm, or ErrAborted when ctx ended before the command could start or
// Call reported ErrNotApplied.
func (c *Coordinator) Execute(ctx context.Context, cmd Command) (Outcome, error) {
	out := Outcome{
		MutationID: uuid.NewString(),
		Name:       cmd.Name,
		Key:        cmd.Key,
		StartedAt:  c.now(),
	}
	if cmd.Call == nil {
		return out, ErrInvalidCommand
	}

	release, err := c.locks.acquire(ctx, cmd.Key)
	if err != nil {
		out.State = StateAborted
		out.Failure = Classify(err)
		out.Err = err
		out.FinishedAt = c.now()
		c.l.Warnf(ctx, "optimistic.Execute %s key=%s: aborted while waiting: %v", cmd.Name, cmd.Key, err)
		c.record(ctx, out)
		return out, fmt.Errorf("%w: %s: %w", ErrAborted, cmd.Name, err)
	}

	out.State = StatePending
	if cmd.Apply != nil {
		cmd.Apply()
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	callErr := cmd.Call(callCtx)
	cancel()

	switch {
	case callErr == nil:
		if cmd.Commit != nil {
			cmd.Commit()
		}
		out.State = StateCommitted
	case errors.Is(callErr, ErrNotApplied):
		out.State = StateAborted
		out.Err = callErr
	default:
		if cmd.Revert != nil {
			cmd.Revert()
		}
		out.State = StateRolledBack
		out.Failure = Classify(callErr)
		out.Err = callErr
	}
	release()
	out.FinishedAt = c.now()

	switch {
	case out.State == StateAborted:
		c.l.Debugf(ctx, "optimistic.Execute %s key=%s: nothing to apply: %v", cmd.Name, cmd.Key, callErr)
		c.record(ctx, out)
		return out, fmt.Errorf("%w: %s: %w", ErrAborted, cmd.Name, callErr)
	case out.Failure == FailureNone:
		c.l.Debugf(ctx, "optimistic.Execute %s key=%s: committed in %s", cmd.Name, cmd.Key, out.Duration())
	case out.Failure == FailureApplication:
		c.l.Warnf(ctx, "optimistic.Execute %s key=%s: rejected by server, rolled back: %v", cmd.Name, cmd.Key, callErr)
	case out.Failure == FailureTimeout:
		c.l.Warnf(ctx, "optimistic.Execute %s key=%s: no answer within %s, rolled back", cmd.Name, cmd.Key, c.timeout)
	default:
		c.l.Warnf(ctx, "optimistic.Execute %s key=%s: network failure, rolled back: %v", cmd.Name, cmd.Key, callErr)
	}

	c.record(ctx, out)
	if out.State == StateRolledBack {
		return out, fmt.Errorf("%w: %s: %w", ErrRolledBack, cmd.Name, callErr)
	}
	return out, nil
}

func (c *Coordinator) record(ctx context.Context, out Outcome) {
	if c.recorder == nil {
		return
	}
	if err := c.recorder.Record(context.WithoutCancel(ctx), out); err != nil {
		c.l.Errorf(ctx, "optimistic.record %s: %v", out.MutationID, err)
	}
}

// Classify maps a call error to a failure kind.
func Classify(err error) FailureKind {
	if err == nil {
		return FailureNone
	}
	var r Rejecter
	if errors.As(err, &r) && r.Rejected() {
		return FailureApplication
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}
	return FailureNetwork
}
