package driven

import (
	"context"

	"github.com/custodia-labs/docket/internal/core/domain"
)

// InvoiceStore holds invoice records in insertion order.
type InvoiceStore interface {
	// Append adds an invoice at the end of the sequence.
	Append(ctx context.Context, inv domain.Invoice) error

	// Get retrieves an invoice by ID.
	Get(ctx context.Context, id string) (*domain.Invoice, error)

	// Replace swaps the invoice with the same ID in place and reports
	// whether a record matched.
	Replace(ctx context.Context, inv domain.Invoice) (bool, error)

	// Delete removes an invoice and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)

	// List returns a copy of all invoices in order.
	List(ctx context.Context) ([]domain.Invoice, error)

	// Reset replaces the whole sequence, used when restoring state
	// and when rolling back a commit whose write failed.
	Reset(ctx context.Context, invoices []domain.Invoice) error
}
