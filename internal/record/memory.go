package record

import (
	"context"
	"sync"
)

// MemoryStore is the in-process Store used by tests.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, profileID, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.records[profileID+"/"+key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *MemoryStore) Put(_ context.Context, profileID, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.records[profileID+"/"+key] = stored
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, profileID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, profileID+"/"+key)
	return nil
}
