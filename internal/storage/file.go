package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// File stores each key as <dir>/<key>.json.
type File struct {
	dir string
}

// NewFile returns a file backend rooted at dir. The directory is created
// on first write.
func NewFile(dir string) *File {
	return &File{dir: dir}
}

// Get reads the file for key. A missing file is not an error.
func (store *File) Get(_ context.Context, key string) ([]byte, bool, error) {
	rawData, err := os.ReadFile(store.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read settings file: %w", err)
	}
	return rawData, true, nil
}

// Set replaces the file for key.
func (store *File) Set(_ context.Context, key string, value []byte) error {
	if err := os.MkdirAll(store.dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	target := store.path(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}

// Close is a no-op.
func (store *File) Close() error { return nil }

func (store *File) path(key string) string {
	return filepath.Join(store.dir, key+".json")
}
