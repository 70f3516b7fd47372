package driven

import (
	"context"

	"github.com/custodia-labs/docket/internal/core/domain"
)

// DocumentStore holds document records in insertion order.
type DocumentStore interface {
	// Append adds a document at the end of the sequence.
	Append(ctx context.Context, doc domain.Document) error

	// Get retrieves a document by ID.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// Delete removes a document and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)

	// List returns a copy of all documents in order.
	List(ctx context.Context) ([]domain.Document, error)

	// Reset replaces the whole sequence, used when restoring state
	// and when rolling back a commit whose write failed.
	Reset(ctx context.Context, docs []domain.Document) error
}
