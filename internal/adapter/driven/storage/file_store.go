package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/diillson/loa-audit-dashboard-go/internal/domain/entity"
	"github.com/diillson/loa-audit-dashboard-go/internal/shared/types"
)

// FileStore persists the dataset as <dir>/<key>.json.
type FileStore struct {
	path string
}

// NewFileStore creates a store rooted at dir. An empty dir means the user
// config directory, falling back to the working directory.
func NewFileStore(dir, key string) *FileStore {
	if dir == "" {
		if base, err := os.UserConfigDir(); err == nil {
			dir = filepath.Join(base, "loa-audit")
		} else {
			dir = "."
		}
	}
	return &FileStore{path: filepath.Join(dir, key+".json")}
}

func (s *FileStore) Load(_ context.Context) ([]entity.LedgerLine, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []entity.LedgerLine{}, nil
		}
		return nil, fmt.Errorf("error reading dataset %s: %w", s.path, err)
	}

	lines, ok := decodeStored(data)
	if !ok {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error removing corrupt dataset %s: %w", s.path, err)
		}
		return lines, types.ErrDatasetDiscarded
	}
	return lines, nil
}

// Save grava num arquivo temporário e renomeia, para nunca deixar meio dataset no disco.
func (s *FileStore) Save(_ context.Context, _ string, lines []entity.LedgerLine) error {
	data, err := entity.MarshalLines(lines)
	if err != nil {
		return fmt.Errorf("error encoding dataset: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing dataset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error writing dataset: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("error replacing dataset %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error removing dataset %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) Location() string { return s.path }
