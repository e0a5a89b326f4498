package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Store holds deliverable attachments as opaque blobs keyed by path.
// The core persists only the returned path; blob bytes never enter the
// database.
type Store interface {
	// Put streams a blob to the given path and returns the stored path.
	Put(ctx context.Context, path string, r io.Reader) (string, error)
}

// DirStore implements Store on a local directory. Production deployments
// swap in an object-storage-backed implementation behind the same interface.
type DirStore struct {
	Root string
}

func NewDirStore(root string) *DirStore {
	return &DirStore{Root: root}
}

func (s *DirStore) Put(ctx context.Context, path string, r io.Reader) (string, error) {
	full := filepath.Join(s.Root, filepath.Clean(path))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return "", fmt.Errorf("creating attachment directory: %w", err)
	}
	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("creating attachment file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("writing attachment: %w", err)
	}
	return path, nil
}
