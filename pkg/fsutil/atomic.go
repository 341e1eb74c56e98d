// Package fsutil provides atomic file output for pepdigest.
// Reports and generated configuration are staged in a temp file next to the
// target and renamed into place, so readers never see a partial file.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the permission mode for newly created files.
const DefaultFileMode os.FileMode = 0644

// ErrClosed is returned when writing to an AtomicFile after Commit or Abort.
var ErrClosed = errors.New("atomic file already closed")

// AtomicFile stages writes in a temp file in the target's directory.
// Nothing appears at the target path until Commit succeeds.
type AtomicFile struct {
	path string
	mode os.FileMode
	tmp  *os.File
	done bool
}

// CreateAtomic opens a staged file for path. A zero mode means DefaultFileMode.
func CreateAtomic(path string, mode os.FileMode) (*AtomicFile, error) {
	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	return &AtomicFile{path: path, mode: mode, tmp: tmp}, nil
}

// Path returns the target path.
func (f *AtomicFile) Path() string {
	return f.path
}

// Write appends p to the staged content.
func (f *AtomicFile) Write(p []byte) (int, error) {
	if f.done {
		return 0, ErrClosed
	}
	n, err := f.tmp.Write(p)
	if err != nil {
		return n, fmt.Errorf("write temp file: %w", err)
	}
	return n, nil
}

// Commit syncs the staged content and renames it over the target.
// On failure the temp file is removed and the target is left untouched.
func (f *AtomicFile) Commit() error {
	if f.done {
		return ErrClosed
	}
	f.done = true
	tmpPath := f.tmp.Name()

	if err := f.tmp.Sync(); err != nil {
		_ = f.tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, f.mode); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// Abort discards the staged content. It is a no-op after Commit, so it is
// safe to defer.
func (f *AtomicFile) Abort() {
	if f.done {
		return
	}
	f.done = true
	_ = f.tmp.Close()
	_ = os.Remove(f.tmp.Name())
}

// WriteAtomic writes content to path through an AtomicFile.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("write atomic: %w", ctx.Err())
	default:
	}

	f, err := CreateAtomic(path, mode)
	if err != nil {
		return err
	}
	defer f.Abort()

	if _, err := f.Write(content); err != nil {
		return err
	}
	return f.Commit()
}
