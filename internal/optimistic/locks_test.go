package optimistic

import (
	"context"
	"testing"
)

func TestKeyedLocksForgetReleasedKeys(t *testing.T) {
	k := newKeyedLocks()

	release, err := k.acquire(context.Background(), "task:1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k.size() != 1 {
		t.Errorf("expected 1 tracked key, got %d", k.size())
	}

	release()
	if k.size() != 0 {
		t.Errorf("expected released key to be dropped, got %d", k.size())
	}
}

func TestKeyedLocksCanceledWaiter(t *testing.T) {
	k := newKeyedLocks()

	release, _ := k.acquire(context.Background(), "task:1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := k.acquire(ctx, "task:1"); err == nil {
		t.Fatalf("expected error for canceled waiter")
	}

	release()
	if k.size() != 0 {
		t.Errorf("expected no tracked keys, got %d", k.size())
	}
}
