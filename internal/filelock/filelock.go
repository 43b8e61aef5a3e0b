// Package filelock guards export files against concurrent writers with
// an advisory flock and writes them atomically via temp-file rename.
package filelock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Lock is an exclusive advisory lock on a path.
type Lock struct {
	fl   *flock.Flock
	path string
}

// New creates a lock for the given path. The lock file is created on
// first acquisition.
func New(path string) *Lock {
	return &Lock{fl: flock.New(path), path: path}
}

// TryAcquire attempts the lock without blocking and reports whether it
// was obtained.
func (l *Lock) TryAcquire() (bool, error) {
	ok, err := l.fl.TryLock()
	if err != nil {
		return false, fmt.Errorf("try lock %s: %w", l.path, err)
	}
	return ok, nil
}

// Release gives the lock up.
func (l *Lock) Release() error {
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("release lock %s: %w", l.path, err)
	}
	return nil
}

// AtomicWrite writes data to path through a temp file in the same
// directory followed by a rename, so readers never observe a partial
// file. Parent directories are created as needed. On failure the
// previous contents of path, if any, are untouched.
func AtomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".export-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	// Rename is atomic within one filesystem, which the shared parent
	// directory guarantees.
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename into place %s: %w", path, err)
	}
	tmp = nil

	return nil
}

// LockAndWrite guards path with the lock at path+".lock" and performs
// an atomic write. The lock is taken without blocking: when another
// process holds it the write is refused with a clear error rather than
// queued behind an unknown writer.
func LockAndWrite(path string, data []byte) error {
	lock := New(path + ".lock")
	ok, err := lock.TryAcquire()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: lock held by another process", path)
	}
	defer lock.Release() //nolint:errcheck

	return AtomicWrite(path, data)
}
