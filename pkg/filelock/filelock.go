// Package filelock guards small generated files with an advisory lock and
// replaces them atomically.
package filelock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockSuffix is appended to a target path to name its lock file.
const LockSuffix = ".lock"

// FileLock wraps a flock lock file.
type FileLock struct {
	flock *flock.Flock
	path  string
}

// New creates a lock backed by the file at path. Nothing is created until Lock.
func New(path string) *FileLock {
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// Lock blocks until the exclusive lock is held.
func (fl *FileLock) Lock() error {
	if err := fl.flock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", fl.path, err)
	}
	return nil
}

// Unlock releases the lock.
func (fl *FileLock) Unlock() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}

// AtomicWrite writes data to a temp file next to path and renames it into
// place, so readers see either the old content or the new, never a mix.
// The target directory must already exist.
func AtomicWrite(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tempFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	defer func() {
		if err != nil {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err = tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err = tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err = os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}
	return nil
}

// LockAndWrite holds path+LockSuffix while writing path atomically. The lock
// file stays in place after release so every writer locks the same inode.
func LockAndWrite(path string, data []byte) (err error) {
	lock := New(path + LockSuffix)
	if err := lock.Lock(); err != nil {
		return err
	}
	defer func() {
		if unlockErr := lock.Unlock(); err == nil {
			err = unlockErr
		}
	}()

	return AtomicWrite(path, data)
}
