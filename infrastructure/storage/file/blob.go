// ABOUTME: File-backed blob store for the raw feed body
// ABOUTME: Writes go through a temp file and rename so readers never see partial data

package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// BlobStore implements interfaces.BlobStore with a single file
type BlobStore struct {
	path string
}

// NewBlobStore creates a store for the file at path. The directory is created on first write.
func NewBlobStore(path string) *BlobStore {
	return &BlobStore{path: path}
}

// Path returns the file location
func (s *BlobStore) Path() string {
	return s.path
}

// Read returns the file contents
func (s *BlobStore) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(s.path)
}

// Write atomically replaces the file contents
func (s *BlobStore) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}

// Remove deletes the file. A missing file is not an error.
func (s *BlobStore) Remove() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
