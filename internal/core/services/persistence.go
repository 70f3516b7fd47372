package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/custodia-labs/docket/internal/core/domain"
	"github.com/custodia-labs/docket/internal/core/ports/driven"
	"github.com/custodia-labs/docket/internal/logger"
)

const (
	// StateKey is the slot key holding the persisted snapshot.
	StateKey = "persist:root"

	// SchemaVersion is the snapshot layout version written by Encode.
	SchemaVersion = 1
)

// Snapshot is the persisted form of both record stores.
type Snapshot struct {
	Version   int               `json:"version"`
	Documents []domain.Document `json:"documents"`
	Invoices  []domain.Invoice  `json:"invoices"`
}

// Encode serializes a snapshot. Nil sequences are written as empty arrays.
func Encode(s Snapshot) ([]byte, error) {
	if s.Version == 0 {
		s.Version = SchemaVersion
	}
	if s.Documents == nil {
		s.Documents = []domain.Document{}
	}
	if s.Invoices == nil {
		s.Invoices = []domain.Invoice{}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot written by Encode.
func Decode(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Version < 1 || s.Version > SchemaVersion {
		return Snapshot{}, fmt.Errorf("unsupported snapshot version %d", s.Version)
	}
	if s.Documents == nil {
		s.Documents = []domain.Document{}
	}
	if s.Invoices == nil {
		s.Invoices = []domain.Invoice{}
	}
	return s, nil
}

// Persistence mirrors the record stores into a durable slot.
//
// Commit holds one lock across mutation, snapshot and write, so writes
// reach the slot in commit order and a stale snapshot can never replace
// a newer one.
type Persistence struct {
	mu        sync.Mutex
	slot      driven.StateSlot
	documents driven.DocumentStore
	invoices  driven.InvoiceStore
	notifier  driven.Notifier

	revision   uint64
	restoreErr error
}

// NewPersistence creates a persistence adapter over the given stores.
// The notifier may be nil.
func NewPersistence(
	slot driven.StateSlot,
	documents driven.DocumentStore,
	invoices driven.InvoiceStore,
	notifier driven.Notifier,
) *Persistence {
	return &Persistence{
		slot:      slot,
		documents: documents,
		invoices:  invoices,
		notifier:  notifier,
	}
}

// Restore loads the persisted snapshot into the stores.
// A missing key starts empty. An unreadable snapshot also starts empty;
// the failure is recorded in LastRestoreError and reported to the
// notifier, and Restore itself returns nil.
func (p *Persistence) Restore(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.restoreErr = nil
	snapshot := Snapshot{Version: SchemaVersion}

	data, err := p.slot.Read(ctx, StateKey)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		logger.Debug("no persisted state under %s, starting empty", StateKey)
	case err != nil:
		p.discard(err)
	default:
		decoded, decodeErr := Decode(data)
		if decodeErr != nil {
			p.discard(decodeErr)
		} else {
			snapshot = decoded
		}
	}

	if err := p.reset(ctx, snapshot); err != nil {
		return fmt.Errorf("restore state: %w", err)
	}
	logger.Debug("restored %d documents and %d invoices", len(snapshot.Documents), len(snapshot.Invoices))
	return nil
}

// discard records a restore failure (caller must hold lock).
func (p *Persistence) discard(cause error) {
	failure := &domain.PersistenceReadError{Key: StateKey, Err: cause}
	p.restoreErr = failure
	logger.Warn("discarding persisted state: %v", failure)
	notify(p.notifier, domain.Failure("Saved data could not be read; starting with empty records", failure))
}

// LastRestoreError returns the failure recorded by the last Restore, or nil.
func (p *Persistence) LastRestoreError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.restoreErr
}

// Commit applies mutate and writes the resulting snapshot.
// When mutate fails nothing is written. When the write fails the stores
// are put back to their state before mutate.
func (p *Persistence) Commit(ctx context.Context, mutate func(ctx context.Context) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	prev, err := p.snapshot(ctx)
	if err != nil {
		return err
	}
	if err := mutate(ctx); err != nil {
		return err
	}

	if err := p.write(ctx); err != nil {
		if rbErr := p.reset(ctx, prev); rbErr != nil {
			logger.Error("rolling back failed commit: %v", rbErr)
		}
		return err
	}

	p.revision++
	return nil
}

// write encodes the current stores into the slot (caller must hold lock).
func (p *Persistence) write(ctx context.Context) error {
	snapshot, err := p.snapshot(ctx)
	if err != nil {
		return err
	}
	data, err := Encode(snapshot)
	if err != nil {
		return err
	}
	if err := p.slot.Write(ctx, StateKey, data); err != nil {
		return fmt.Errorf("write %s: %w", StateKey, err)
	}
	logger.Debug("committed revision %d (%d bytes)", p.revision+1, len(data))
	return nil
}

// reset replaces the store contents with s (caller must hold lock).
func (p *Persistence) reset(ctx context.Context, s Snapshot) error {
	if err := p.documents.Reset(ctx, s.Documents); err != nil {
		return fmt.Errorf("reset documents: %w", err)
	}
	if err := p.invoices.Reset(ctx, s.Invoices); err != nil {
		return fmt.Errorf("reset invoices: %w", err)
	}
	return nil
}

// Snapshot returns the current state of both stores.
func (p *Persistence) Snapshot(ctx context.Context) (Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot(ctx)
}

func (p *Persistence) snapshot(ctx context.Context) (Snapshot, error) {
	docs, err := p.documents.List(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot documents: %w", err)
	}
	invoices, err := p.invoices.List(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot invoices: %w", err)
	}
	return Snapshot{Version: SchemaVersion, Documents: docs, Invoices: invoices}, nil
}

// Revision returns the number of commits written since creation.
func (p *Persistence) Revision() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.revision
}

// commit runs mutate through p, or directly when no persistence is configured.
func commit(ctx context.Context, p *Persistence, mutate func(ctx context.Context) error) error {
	if p == nil {
		return mutate(ctx)
	}
	return p.Commit(ctx, mutate)
}
