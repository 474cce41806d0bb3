// Package runlock guards against concurrent apply runs.
package runlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/Nomadcxx/anirename/internal/paths"
)

// ErrHeld indicates another anirename process holds the lock
var ErrHeld = errors.New("another anirename instance is already running")

// Lock is a held run lock
type Lock struct {
	fl *flock.Flock
}

// Acquire takes the run lock at path without blocking. An empty path
// resolves to the default lock file under the config dir.
func Acquire(path string) (*Lock, error) {
	if path == "" {
		p, err := paths.LockPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrHeld
	}
	return &Lock{fl: fl}, nil
}

// Path returns the lock file path
func (l *Lock) Path() string {
	return l.fl.Path()
}

// Release drops the lock
func (l *Lock) Release() error {
	return l.fl.Unlock()
}
