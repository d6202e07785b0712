package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryStore keeps workflow contexts in process memory. Suitable for
// development and single-instance deployments; contexts are stored as JSON
// so the two store implementations behave identically.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore builds an in-memory store with the given session TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, wc *WorkflowContext) error {
	payload, err := json.Marshal(wc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[wc.ID] = memoryEntry{payload: payload, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Load(_ context.Context, id string) (*WorkflowContext, error) {
	s.mu.Lock()
	entry, ok := s.entries[id]
	if ok && s.now().After(entry.expiresAt) {
		delete(s.entries, id)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, ErrNotFound
	}

	wc := &WorkflowContext{}
	if err := json.Unmarshal(entry.payload, wc); err != nil {
		return nil, err
	}
	return wc, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}
