package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/docket/internal/core/domain"
	"github.com/custodia-labs/docket/internal/core/ports/driven"
)

// Ensure InvoiceStore implements the interface.
var _ driven.InvoiceStore = (*InvoiceStore)(nil)

// InvoiceStore is an in-memory implementation of driven.InvoiceStore.
type InvoiceStore struct {
	mu       sync.RWMutex
	invoices []domain.Invoice
	index    map[string]int
}

// NewInvoiceStore creates a new in-memory invoice store.
func NewInvoiceStore() *InvoiceStore {
	return &InvoiceStore{
		index: make(map[string]int),
	}
}

// Append adds an invoice at the end of the sequence.
func (s *InvoiceStore) Append(_ context.Context, inv domain.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.index[inv.ID]; exists {
		return domain.ErrAlreadyExists
	}
	s.index[inv.ID] = len(s.invoices)
	s.invoices = append(s.invoices, inv.Clone())
	return nil
}

// Get retrieves an invoice by ID.
func (s *InvoiceStore) Get(_ context.Context, id string) (*domain.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	inv := s.invoices[i].Clone()
	return &inv, nil
}

// Replace swaps the invoice with the same ID in place.
func (s *InvoiceStore) Replace(_ context.Context, inv domain.Invoice) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[inv.ID]
	if !ok {
		return false, nil
	}
	s.invoices[i] = inv.Clone()
	return true, nil
}

// Delete removes an invoice and reports whether it existed.
func (s *InvoiceStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return false, nil
	}
	s.invoices = append(s.invoices[:i:i], s.invoices[i+1:]...)
	s.reindex()
	return true, nil
}

// List returns a copy of all invoices in order.
func (s *InvoiceStore) List(_ context.Context) ([]domain.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Invoice, len(s.invoices))
	for i := range s.invoices {
		out[i] = s.invoices[i].Clone()
	}
	return out, nil
}

// Reset replaces the whole sequence.
func (s *InvoiceStore) Reset(_ context.Context, invoices []domain.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices = make([]domain.Invoice, len(invoices))
	for i := range invoices {
		s.invoices[i] = invoices[i].Clone()
	}
	s.reindex()
	return nil
}

// reindex rebuilds the ID index (caller must hold lock).
func (s *InvoiceStore) reindex() {
	s.index = make(map[string]int, len(s.invoices))
	for i := range s.invoices {
		s.index[s.invoices[i].ID] = i
	}
}
