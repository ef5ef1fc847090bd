package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/coder/quartz"

	"github.com/lox/fishbowl/internal/game"
)

// File stores the snapshot as a JSON document at a fixed path.
type File struct {
	path  string
	clock quartz.Clock
}

// NewFile returns a store writing to path. Parent directories are created on
// first save.
func NewFile(path string, clock quartz.Clock) *File {
	return &File{path: path, clock: clock}
}

// Path returns the snapshot location.
func (f *File) Path() string {
	return f.path
}

func (f *File) Save(state game.State) error {
	data, err := Encode(state, f.clock.Now())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("failed to create save directory: %w", err)
	}
	return writeFileAtomic(f.path, data, 0o644)
}

func (f *File) Load() (game.State, bool, error) {
	snap, ok, err := f.Snapshot()
	if !ok || err != nil {
		return game.State{}, false, err
	}
	return snap.State, true, nil
}

// Snapshot returns the stored envelope, including when it was written.
func (f *File) Snapshot() (Snapshot, bool, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("failed to read snapshot: %w", err)
	}
	snap, err := Decode(data)
	if err != nil {
		return Snapshot{}, false, err
	}
	return snap, true, nil
}

func (f *File) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove snapshot: %w", err)
	}
	return nil
}

// writeFileAtomic writes to a temp file in the same directory and renames it
// over filename, so readers see either the old or the new snapshot in full.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	committed = true
	return nil
}
