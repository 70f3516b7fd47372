package driving

import (
	"context"

	"github.com/custodia-labs/docket/internal/core/domain"
)

// ExportService renders and exports invoices.
type ExportService interface {
	// Layout renders an invoice without exporting it.
	Layout(ctx context.Context, invoiceID string) (*domain.LayoutDocument, error)

	// ExportPDF rasterizes the invoice into a PDF artifact.
	ExportPDF(ctx context.Context, invoiceID string) (*domain.ExportRun, error)

	// Print opens the printable document and triggers the print dialog.
	Print(ctx context.Context, invoiceID string) (*domain.ExportRun, error)
}
