package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/docket/internal/core/domain"
	"github.com/custodia-labs/docket/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
// Records keep insertion order; index maps IDs to positions.
type DocumentStore struct {
	mu        sync.RWMutex
	documents []domain.Document
	index     map[string]int
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		index: make(map[string]int),
	}
}

// Append adds a document at the end of the sequence.
func (s *DocumentStore) Append(_ context.Context, doc domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.index[doc.ID]; exists {
		return domain.ErrAlreadyExists
	}
	s.index[doc.ID] = len(s.documents)
	s.documents = append(s.documents, doc)
	return nil
}

// Get retrieves a document by ID.
func (s *DocumentStore) Get(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	doc := s.documents[i]
	return &doc, nil
}

// Delete removes a document and reports whether it existed.
func (s *DocumentStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return false, nil
	}
	s.documents = append(s.documents[:i:i], s.documents[i+1:]...)
	s.reindex()
	return true, nil
}

// List returns a copy of all documents in order.
func (s *DocumentStore) List(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Document{}, s.documents...), nil
}

// Reset replaces the whole sequence.
func (s *DocumentStore) Reset(_ context.Context, docs []domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = append([]domain.Document{}, docs...)
	s.reindex()
	return nil
}

// reindex rebuilds the ID index (caller must hold lock).
func (s *DocumentStore) reindex() {
	s.index = make(map[string]int, len(s.documents))
	for i := range s.documents {
		s.index[s.documents[i].ID] = i
	}
}
