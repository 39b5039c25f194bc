// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFile is the lock file name inside StateDir.
const LockFile = "import.lock"

// ErrImportInProgress is returned when another import holds the vault lock.
var ErrImportInProgress = errors.New("another import is already running in this vault")

// Lock is a held vault import lock.
type Lock struct {
	fl *flock.Flock
}

// AcquireLock takes the import lock for the vault rooted at root without
// blocking. It fails with ErrImportInProgress when the lock is held.
func AcquireLock(root string) (*Lock, error) {
	dir := filepath.Join(root, StateDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}
	fl := flock.New(filepath.Join(dir, LockFile))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}
	if !locked {
		return nil, ErrImportInProgress
	}
	return &Lock{fl: fl}, nil
}

// Release drops the lock.
func (l *Lock) Release() error {
	return l.fl.Unlock()
}
