// Package lock keeps a single serving process per lock file.
package lock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const retryDelay = 100 * time.Millisecond

var ErrAlreadyRunning = errors.New("another instance holds the lock")

type Instance struct {
	lock *flock.Flock
}

// Acquire takes the exclusive lock at path, retrying until wait elapses. A
// zero wait tries once.
func Acquire(ctx context.Context, path string, wait time.Duration) (*Instance, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	fileLock := flock.New(path)

	var (
		locked bool
		err    error
	)
	if wait <= 0 {
		locked, err = fileLock.TryLock()
	} else {
		waitCtx, cancel := context.WithTimeout(ctx, wait)
		defer cancel()
		locked, err = fileLock.TryLockContext(waitCtx, retryDelay)
		if errors.Is(err, context.DeadlineExceeded) {
			err = nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyRunning, path)
	}

	return &Instance{lock: fileLock}, nil
}

func (i *Instance) Path() string {
	return i.lock.Path()
}

func (i *Instance) Release() error {
	if err := i.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock %s: %w", i.lock.Path(), err)
	}
	return nil
}
