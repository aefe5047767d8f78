package runlock

import (
	"errors"
	"path/filepath"
	"testing"

	"umatl/internal/services"
)

func TestAcquireAndRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locks", "run.lock")

	lock, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release returned error: %v", err)
	}

	// Released locks must be reacquirable.
	lock, err = Acquire(path)
	if err != nil {
		t.Fatalf("reacquire failed: %v", err)
	}
	defer lock.Release()
}

func TestAcquireHeldLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.lock")

	first, err := Acquire(path)
	if err != nil {
		t.Fatal(err)
	}
	defer first.Release()

	if _, err := Acquire(path); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration for a held lock, got %v", err)
	}
}

func TestReleaseNil(t *testing.T) {
	var lock *Lock
	if err := lock.Release(); err != nil {
		t.Fatalf("nil release must be a no-op: %v", err)
	}
}
