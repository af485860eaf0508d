package kvstore

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/easyworldradio/workspace7/internal/domain/repository"
)

// MemoryStore is an in-process RecordStore. It backs tests and the
// `memory` backend; nothing survives a restart.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Load(ctx context.Context, key string, dest any) (bool, error) {
	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	// corrupt entry degrades to the empty default
	return decodeRecord(raw, dest), nil
}

func (s *MemoryStore) Save(ctx context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[key] = b
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

// SaveRaw stores bytes without marshaling. Tests use it to plant
// malformed documents.
func (s *MemoryStore) SaveRaw(key string, raw []byte) {
	s.mu.Lock()
	s.data[key] = raw
	s.mu.Unlock()
}

var _ repository.RecordStore = (*MemoryStore)(nil)
