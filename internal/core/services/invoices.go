package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docket/internal/core/domain"
	"github.com/custodia-labs/docket/internal/core/identity"
	"github.com/custodia-labs/docket/internal/core/ports/driven"
	"github.com/custodia-labs/docket/internal/core/ports/driving"
	"github.com/custodia-labs/docket/internal/logger"
)

// Ensure InvoiceService implements the interface.
var _ driving.InvoiceService = (*InvoiceService)(nil)

// Notification messages for invoice operations.
const (
	msgInvoiceCreated = "Invoice created successfully!"
	msgInvoiceUpdated = "Invoice updated successfully!"
	msgInvoiceDeleted = "Invoice deleted successfully!"
)

// InvoiceService manages invoices.
type InvoiceService struct {
	invoiceStore driven.InvoiceStore
	docStore     driven.DocumentStore
	persistence  *Persistence
	notifier     driven.Notifier
	opts         options
}

// NewInvoiceService creates a new invoice service.
// The document store is only used for the summary and may be nil,
// as may persistence and notifier.
func NewInvoiceService(
	invoiceStore driven.InvoiceStore,
	docStore driven.DocumentStore,
	persistence *Persistence,
	notifier driven.Notifier,
	opts ...Option,
) *InvoiceService {
	return &InvoiceService{
		invoiceStore: invoiceStore,
		docStore:     docStore,
		persistence:  persistence,
		notifier:     notifier,
		opts:         newOptions(opts),
	}
}

// Create validates the form and stores a new invoice.
// The total is frozen at full precision and the issue date is the
// submission time. A successful submission clears the pad.
func (s *InvoiceService) Create(
	ctx context.Context,
	form domain.InvoiceForm,
	pad driven.SignaturePad,
) (*domain.Invoice, error) {
	inv := form.Invoice()
	if err := ValidateInvoice(inv); err != nil {
		notify(s.notifier, domain.Failure(err.Error(), err))
		return nil, err
	}

	if pad != nil {
		sig, err := pad.Image()
		if err != nil {
			err = fmt.Errorf("capture signature: %w", err)
			notify(s.notifier, domain.Failure("Failed to read signature", err))
			return nil, err
		}
		inv.Signature = sig
	}

	inv.ID = s.opts.newID()
	inv.IssueDate = identity.Format(s.opts.now())
	inv.Total = domain.SumItems(inv.Items)

	err := commit(ctx, s.persistence, func(ctx context.Context) error {
		return s.invoiceStore.Append(ctx, inv)
	})
	if err != nil {
		err = fmt.Errorf("store invoice %s: %w", inv.InvoiceNumber, err)
		notify(s.notifier, domain.Failure("Failed to create invoice", err))
		return nil, err
	}

	if pad != nil {
		pad.Clear()
	}
	logger.Debug("created invoice %s (%s) total %v", inv.ID, inv.InvoiceNumber, inv.Total)
	notify(s.notifier, domain.Success(msgInvoiceCreated))
	return &inv, nil
}

// Update replaces the invoice with the same ID. Unknown IDs are ignored.
// The replacement is validated and its total recomputed from its items.
func (s *InvoiceService) Update(ctx context.Context, inv domain.Invoice) error {
	if err := ValidateInvoice(inv); err != nil {
		notify(s.notifier, domain.Failure(err.Error(), err))
		return err
	}
	record := inv.Clone()
	record.Total = domain.SumItems(record.Items)

	var replaced bool
	err := commit(ctx, s.persistence, func(ctx context.Context) error {
		var err error
		replaced, err = s.invoiceStore.Replace(ctx, record)
		return err
	})
	if err != nil {
		return fmt.Errorf("update invoice %s: %w", inv.ID, err)
	}
	if !replaced {
		logger.Debug("update of unknown invoice %s ignored", inv.ID)
		return nil
	}
	notify(s.notifier, domain.Success(msgInvoiceUpdated))
	return nil
}

// Remove deletes an invoice by ID. Unknown IDs are ignored.
func (s *InvoiceService) Remove(ctx context.Context, id string) error {
	var removed bool
	err := commit(ctx, s.persistence, func(ctx context.Context) error {
		var err error
		removed, err = s.invoiceStore.Delete(ctx, id)
		return err
	})
	if err != nil {
		return fmt.Errorf("remove invoice %s: %w", id, err)
	}
	if removed {
		notify(s.notifier, domain.Success(msgInvoiceDeleted))
	}
	return nil
}

// List returns all invoices in creation order.
func (s *InvoiceService) List(ctx context.Context) ([]domain.Invoice, error) {
	return s.invoiceStore.List(ctx)
}

// Get retrieves an invoice by ID.
func (s *InvoiceService) Get(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.invoiceStore.Get(ctx, id)
}

// Summary returns the number of stored documents and invoices.
func (s *InvoiceService) Summary(ctx context.Context) (domain.Summary, error) {
	invoices, err := s.invoiceStore.List(ctx)
	if err != nil {
		return domain.Summary{}, err
	}
	summary := domain.Summary{Invoices: len(invoices)}
	if s.docStore != nil {
		docs, err := s.docStore.List(ctx)
		if err != nil {
			return domain.Summary{}, err
		}
		summary.Documents = len(docs)
	}
	return summary, nil
}
