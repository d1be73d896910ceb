package storage

import (
	"context"
	"sync"

	"github.com/diillson/loa-audit-dashboard-go/internal/domain/entity"
	"github.com/diillson/loa-audit-dashboard-go/internal/shared/types"
)

// MemoryStore keeps the encoded dataset in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	key     string
	payload []byte
	batchID string
}

func NewMemoryStore(key string) *MemoryStore {
	return &MemoryStore{key: key}
}

func (s *MemoryStore) Load(_ context.Context) ([]entity.LedgerLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.payload == nil {
		return []entity.LedgerLine{}, nil
	}
	lines, ok := decodeStored(s.payload)
	if !ok {
		s.payload = nil
		s.batchID = ""
		return lines, types.ErrDatasetDiscarded
	}
	return lines, nil
}

func (s *MemoryStore) Save(_ context.Context, batchID string, lines []entity.LedgerLine) error {
	data, err := entity.MarshalLines(lines)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.payload = data
	s.batchID = batchID
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.payload = nil
	s.batchID = ""
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Location() string { return "memory://" + s.key }

// BatchID returns the id of the last saved batch.
func (s *MemoryStore) BatchID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batchID
}

// SetRaw replaces the stored payload with arbitrary bytes.
func (s *MemoryStore) SetRaw(data []byte) {
	s.mu.Lock()
	s.payload = append([]byte(nil), data...)
	s.mu.Unlock()
}
