package checkpoint

import (
	"context"
	"sync"

	"github.com/elisa-a-v/courtlistener/internal/domain"
)

// MemoryStore is an in-process Store for tests and local dry runs. It is
// safe for concurrent use but, like the Redis store, provides no job-level
// locking.
type MemoryStore struct {
	mu          sync.Mutex
	checkpoints map[string]Checkpoint
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{checkpoints: make(map[string]Checkpoint)}
}

// Load returns a copy of the stored checkpoint, or a zero value when absent.
func (s *MemoryStore) Load(_ context.Context, recordType domain.RecordType) (*Checkpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.checkpoints[Key(recordType)]
	return &cp, nil
}

// Save stores a copy of the checkpoint.
func (s *MemoryStore) Save(_ context.Context, recordType domain.RecordType, cp *Checkpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkpoints[Key(recordType)] = *cp
	return nil
}

// Delete removes the checkpoint.
func (s *MemoryStore) Delete(_ context.Context, recordType domain.RecordType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.checkpoints, Key(recordType))
	return nil
}

// Exists reports whether a checkpoint record is present. Test helper.
func (s *MemoryStore) Exists(recordType domain.RecordType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.checkpoints[Key(recordType)]
	return ok
}
