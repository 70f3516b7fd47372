package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineItem_LineTotal(t *testing.T) {
	assert.InDelta(t, 19.98, LineItem{Description: "Widget", Quantity: 2, Price: 9.99}.LineTotal(), 1e-9)
	assert.Equal(t, 0.0, LineItem{Quantity: 5, Price: 0}.LineTotal())
}

func TestSumItems(t *testing.T) {
	items := []LineItem{
		{Description: "Widget", Quantity: 2, Price: 9.99},
		{Description: "Service", Quantity: 1, Price: 50.00},
	}
	assert.InDelta(t, 69.98, SumItems(items), 1e-9)
	assert.Equal(t, 0.0, SumItems(nil))
}

func TestDefaultInvoiceNumber(t *testing.T) {
	now := time.UnixMilli(1717171234567)
	assert.Equal(t, "INV-234567", DefaultInvoiceNumber(now))
}

func TestNewInvoiceForm(t *testing.T) {
	now := time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)
	form := NewInvoiceForm(now)

	require.Len(t, form.Items, 1)
	assert.Equal(t, LineItem{Description: "", Quantity: 1, Price: 0}, form.Items[0])
	assert.Equal(t, "2024-02-14", form.IssueDate)
	assert.Equal(t, DefaultInvoiceNumber(now), form.InvoiceNumber)
}

func TestInvoiceForm_RoundTrip(t *testing.T) {
	form := InvoiceForm{
		CompanyName:    "Acme",
		CompanyAddress: "1 Road",
		CustomerName:   "Bob",
		Email:          "bob@example.com",
		InvoiceNumber:  "INV-1",
		Items:          []LineItem{{Description: "A", Quantity: 1, Price: 2}},
		Notes:          "n",
		Terms:          "t",
	}

	inv := form.Invoice()
	assert.Equal(t, form, inv.Form())

	// The invoice owns its own item slice.
	inv.Items[0].Price = 99
	assert.Equal(t, 2.0, form.Items[0].Price)
}

func TestInvoice_Clone(t *testing.T) {
	inv := Invoice{ID: "inv-1", Items: []LineItem{{Description: "A", Quantity: 1, Price: 1}}}
	clone := inv.Clone()
	clone.Items[0].Description = "changed"
	assert.Equal(t, "A", inv.Items[0].Description)
}

func TestInvoice_PDFFileName(t *testing.T) {
	inv := Invoice{CustomerName: "Jane Doe", InvoiceNumber: "INV-123456"}
	assert.Equal(t, "invoice-Jane Doe-INV-123456.pdf", inv.PDFFileName())

	inv = Invoice{CustomerName: "A/B", InvoiceNumber: `2024\01`}
	assert.Equal(t, "invoice-A-B-2024-01.pdf", inv.PDFFileName())
}
