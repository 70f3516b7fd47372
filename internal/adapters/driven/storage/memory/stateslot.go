package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/docket/internal/core/domain"
	"github.com/custodia-labs/docket/internal/core/ports/driven"
)

// Ensure StateSlot implements the interface.
var _ driven.StateSlot = (*StateSlot)(nil)

// StateSlot is an in-memory implementation of driven.StateSlot.
// It also counts writes so tests can observe persistence traffic.
type StateSlot struct {
	mu     sync.RWMutex
	values map[string][]byte
	writes int
}

// NewStateSlot creates an empty in-memory slot.
func NewStateSlot() *StateSlot {
	return &StateSlot{
		values: make(map[string][]byte),
	}
}

// Read returns the value stored under key.
func (s *StateSlot) Read(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Write stores value under key.
func (s *StateSlot) Write(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
	s.writes++
	return nil
}

// Delete removes key.
func (s *StateSlot) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Close is a no-op for the memory slot.
func (s *StateSlot) Close() error {
	return nil
}

// Writes returns the number of writes performed.
func (s *StateSlot) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}
