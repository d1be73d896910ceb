// Package storage holds the persistence backends for the imported dataset.
// Every backend stores the whole dataset as one JSON document under a single key.
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/diillson/loa-audit-dashboard-go/internal/domain/entity"
	"github.com/diillson/loa-audit-dashboard-go/internal/domain/repository"
	"github.com/diillson/loa-audit-dashboard-go/internal/shared/types"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendS3     = "s3"
	BackendMemory = "memory"
)

// NewLedgerRepository builds the backend selected in cfg.
func NewLedgerRepository(ctx context.Context, cfg types.StorageConfig) (repository.LedgerRepository, error) {
	key := cfg.Key
	if key == "" {
		key = types.DefaultStorageKey
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendFile:
		return NewFileStore(cfg.Path, key), nil
	case BackendSQLite:
		path := cfg.Path
		if path == "" {
			path = "loa_audit.db"
		}
		return NewSQLiteStore(path, key)
	case BackendS3:
		return NewS3Store(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3Profile, key)
	case BackendMemory:
		return NewMemoryStore(key), nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnsupportedStorage, cfg.Backend)
	}
}

// decodeStored converte o payload persistido. ok=false indica payload corrompido.
func decodeStored(data []byte) ([]entity.LedgerLine, bool) {
	lines, err := entity.UnmarshalLines(data)
	if err != nil {
		return []entity.LedgerLine{}, false
	}
	return lines, true
}
