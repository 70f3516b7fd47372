package driving

import (
	"context"

	"github.com/custodia-labs/docket/internal/core/domain"
	"github.com/custodia-labs/docket/internal/core/ports/driven"
)

// InvoiceService manages invoices.
type InvoiceService interface {
	// Create validates the form, freezes its total and stores the invoice.
	// The pad may be nil.
	Create(ctx context.Context, form domain.InvoiceForm, pad driven.SignaturePad) (*domain.Invoice, error)

	// Update replaces the invoice with the same ID; unknown IDs are ignored.
	Update(ctx context.Context, inv domain.Invoice) error

	// Remove deletes an invoice; unknown IDs are ignored.
	Remove(ctx context.Context, id string) error

	// List returns all invoices in creation order.
	List(ctx context.Context) ([]domain.Invoice, error)

	// Get retrieves an invoice by ID.
	Get(ctx context.Context, id string) (*domain.Invoice, error)

	// Summary returns record counts.
	Summary(ctx context.Context) (domain.Summary, error)
}
