package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// InvoiceNumberPrefix starts every generated invoice number.
const InvoiceNumberPrefix = "INV-"

// FormDateLayout is the layout of the date suggested on a blank form.
const FormDateLayout = "2006-01-02"

// LineItem is one billed line of an invoice.
type LineItem struct {
	// Description is free text and must not be empty.
	Description string `json:"description" toml:"description"`

	// Quantity is the number of units, at least 1.
	Quantity int `json:"quantity" toml:"quantity"`

	// Price is the unit price, non-negative.
	Price float64 `json:"price" toml:"price"`
}

// LineTotal returns quantity × price.
func (l LineItem) LineTotal() float64 {
	return float64(l.Quantity) * l.Price
}

// Invoice is a submitted invoice.
// Total is computed once from Items and stored for display.
type Invoice struct {
	ID             string     `json:"id"`
	CompanyName    string     `json:"companyName"`
	CompanyAddress string     `json:"companyAddress"`
	CompanyLogo    string     `json:"companyLogo,omitempty"`
	CustomerName   string     `json:"customerName"`
	Email          string     `json:"email"`
	InvoiceNumber  string     `json:"invoiceNumber"`
	IssueDate      string     `json:"issueDate"`
	Items          []LineItem `json:"items"`
	Notes          string     `json:"notes"`
	Terms          string     `json:"terms"`
	Signature      string     `json:"signature"`
	Total          float64    `json:"total"`
}

// Clone returns a deep copy of the invoice.
func (inv Invoice) Clone() Invoice {
	out := inv
	out.Items = append([]LineItem(nil), inv.Items...)
	return out
}

// SumItems returns the full-precision sum of all line totals.
func SumItems(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.LineTotal()
	}
	return total
}

// InvoiceForm is the user-editable state submitted to create an invoice.
type InvoiceForm struct {
	CompanyName    string     `toml:"company_name"`
	CompanyAddress string     `toml:"company_address"`
	CompanyLogo    string     `toml:"company_logo,omitempty"`
	CustomerName   string     `toml:"customer_name"`
	Email          string     `toml:"email"`
	InvoiceNumber  string     `toml:"invoice_number"`
	IssueDate      string     `toml:"issue_date"`
	Items          []LineItem `toml:"items"`
	Notes          string     `toml:"notes"`
	Terms          string     `toml:"terms"`
}

// NewInvoiceForm returns a blank form with one empty line item, a
// time-based invoice number and an issue date suggested 30 days ahead.
func NewInvoiceForm(now time.Time) InvoiceForm {
	return InvoiceForm{
		InvoiceNumber: DefaultInvoiceNumber(now),
		IssueDate:     now.AddDate(0, 0, 30).Format(FormDateLayout),
		Items:         []LineItem{{Description: "", Quantity: 1, Price: 0}},
	}
}

// DefaultInvoiceNumber builds "INV-" plus the last six digits of the
// millisecond epoch of now.
func DefaultInvoiceNumber(now time.Time) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ms) > 6 {
		ms = ms[len(ms)-6:]
	}
	return InvoiceNumberPrefix + ms
}

// Invoice converts the form into an invoice record without identity,
// issue date, signature or total.
func (f InvoiceForm) Invoice() Invoice {
	return Invoice{
		CompanyName:    f.CompanyName,
		CompanyAddress: f.CompanyAddress,
		CompanyLogo:    f.CompanyLogo,
		CustomerName:   f.CustomerName,
		Email:          f.Email,
		InvoiceNumber:  f.InvoiceNumber,
		IssueDate:      f.IssueDate,
		Items:          append([]LineItem(nil), f.Items...),
		Notes:          f.Notes,
		Terms:          f.Terms,
	}
}

// Form returns the editable fields of an invoice.
func (inv Invoice) Form() InvoiceForm {
	return InvoiceForm{
		CompanyName:    inv.CompanyName,
		CompanyAddress: inv.CompanyAddress,
		CompanyLogo:    inv.CompanyLogo,
		CustomerName:   inv.CustomerName,
		Email:          inv.Email,
		InvoiceNumber:  inv.InvoiceNumber,
		IssueDate:      inv.IssueDate,
		Items:          append([]LineItem(nil), inv.Items...),
		Notes:          inv.Notes,
		Terms:          inv.Terms,
	}
}

// PDFFileName returns the deterministic export file name.
// Path separators in the customer name or number are replaced with "-".
func (inv Invoice) PDFFileName() string {
	name := fmt.Sprintf("invoice-%s-%s.pdf", inv.CustomerName, inv.InvoiceNumber)
	return fileNameReplacer.Replace(name)
}

var fileNameReplacer = strings.NewReplacer("/", "-", "\\", "-", "\x00", "")

// Summary holds record counts for the dashboard.
type Summary struct {
	Documents int
	Invoices  int
}
