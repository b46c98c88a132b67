// Package yamlfile stores documents as YAML files in a data directory
package yamlfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mcoot/mixplugin-go/internal/storage"
)

// Backend persists one document to one file
type Backend struct {
	path string
}

// Ensure Backend implements the interface
var _ storage.Backend = (*Backend)(nil)

// New creates a backend for the file name inside dir, creating dir if needed
func New(dir, name string) (*Backend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Backend{path: filepath.Join(dir, name)}, nil
}

// Path returns the file the backend writes to
func (b *Backend) Path() string {
	return b.path
}

// Load reads the file. A missing file is an empty document.
func (b *Backend) Load(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Save writes to a temporary file in the same directory and renames it over
// the target, so a crash mid-write leaves the previous file intact
func (b *Backend) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(b.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		cleanup()
		return err
	}
	return nil
}
