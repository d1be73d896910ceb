package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/diillson/loa-audit-dashboard-go/internal/domain/entity"
	"github.com/diillson/loa-audit-dashboard-go/internal/shared/types"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the dataset in a key/value table of a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
	key  string
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(dbPath, key string) (*SQLiteStore, error) {
	if err := RunMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	return &SQLiteStore{db: db, path: dbPath, key: key}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) ([]entity.LedgerLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return []entity.LedgerLine{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	lines, ok := decodeStored([]byte(value))
	if !ok {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, s.key); err != nil {
			return nil, fmt.Errorf("discard corrupt dataset: %w", err)
		}
		return lines, types.ErrDatasetDiscarded
	}
	return lines, nil
}

func (s *SQLiteStore) Save(ctx context.Context, batchID string, lines []entity.LedgerLine) error {
	data, err := entity.MarshalLines(lines)
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv_store (key, value, batch_id, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, batch_id = excluded.batch_id, updated_at = excluded.updated_at`,
		s.key, string(data), batchID, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, s.key); err != nil {
		return fmt.Errorf("clear dataset: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Location() string { return "sqlite://" + s.path + "#" + s.key }

// BatchID returns the id of the stored batch, or "" when nothing is stored.
func (s *SQLiteStore) BatchID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT batch_id FROM kv_store WHERE key = ?`, s.key).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return id.String, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
