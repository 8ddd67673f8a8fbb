package db

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBackend keeps every collection in <dir>/<name>.json.
type FileBackend struct {
	dir string
}

func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

func (b *FileBackend) Dir() string {
	return b.dir
}

func (b *FileBackend) path(name string) string {
	return filepath.Join(b.dir, name+".json")
}

func (b *FileBackend) Read(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(b.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotExist
	}
	return data, err
}

// Write stages the document in a temp file next to the target and renames it
// into place, so readers only ever see complete files.
func (b *FileBackend) Write(_ context.Context, name string, data []byte) (err error) {
	tmp, err := os.CreateTemp(b.dir, name+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), b.path(name))
}
