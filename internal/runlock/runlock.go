// Package runlock serializes pipeline runs with a file lock so two
// invocations never translate into the same output tree at once.
package runlock

import (
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"umatl/internal/services"
)

// Lock holds an acquired run lock until Release is called.
type Lock struct {
	flock *flock.Flock
}

// Acquire takes the lock at path without blocking. A held lock means another
// run is in progress and surfaces as ErrConfiguration so callers abort cleanly.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, services.Wrap(services.ErrIO, "runlock", "acquire", path, err)
	}
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "runlock", "acquire", path, err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrConfiguration, "runlock", "acquire", "another run is already in progress", nil)
	}
	return &Lock{flock: lock}, nil
}

// Release gives the lock back. Safe to call on a nil lock.
func (l *Lock) Release() error {
	if l == nil || l.flock == nil {
		return nil
	}
	return l.flock.Unlock()
}
