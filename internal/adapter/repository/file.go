package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"resume-builder/internal/usecase"
)

// FileStore keeps each key in its own JSON file under Dir. Writes go to a
// temp file that is renamed into place.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *FileStore) Load(ctx context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, usecase.ErrKeyNotFound
	}
	return b, err
}

func (s *FileStore) Save(ctx context.Context, key string, value []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	return usecase.FileSink{Dir: s.dir}.Deliver(ctx, filepath.Base(p), value)
}
