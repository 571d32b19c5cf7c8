package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process holds the store's lock.
var ErrLocked = errors.New("palindrome store is locked by another process")

// Lockfile is an advisory lock next to a store, held by its single writer.
type Lockfile struct {
	*flock.Flock
}

// LockPath returns the lock file used for the store at path.
func LockPath(path string) string { return path + ".lock" }

// Lock takes the writer lock for the store at path without waiting.
func Lock(path string) (*Lockfile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	lf := &Lockfile{flock.New(LockPath(path))}
	locked, err := lf.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", lf.Path(), err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrLocked, lf.Path())
	}
	return lf, nil
}
