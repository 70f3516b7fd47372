package services

import (
	"fmt"
	"math"
	"net/mail"
	"strings"

	"github.com/custodia-labs/docket/internal/core/domain"
)

// ValidateInvoice checks the user-supplied fields of an invoice.
// The first violation is returned as *domain.InvalidInvoiceError.
func ValidateInvoice(inv domain.Invoice) error {
	required := []struct {
		field string
		value string
	}{
		{"companyName", inv.CompanyName},
		{"companyAddress", inv.CompanyAddress},
		{"customerName", inv.CustomerName},
		{"email", inv.Email},
		{"invoiceNumber", inv.InvoiceNumber},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return invalid(r.field, "is required")
		}
		if r.field == "email" {
			if _, err := mail.ParseAddress(r.value); err != nil {
				return invalid(r.field, "is not a valid address")
			}
		}
	}

	if inv.CompanyLogo != "" && !strings.HasPrefix(inv.CompanyLogo, "data:"+domain.MimePrefixImage) {
		return invalid("companyLogo", "must be an image data URI")
	}

	if len(inv.Items) == 0 {
		return invalid("items", "must not be empty")
	}
	for i, item := range inv.Items {
		switch {
		case strings.TrimSpace(item.Description) == "":
			return invalid(fmt.Sprintf("items[%d].description", i), "is required")
		case item.Quantity < 1:
			return invalid(fmt.Sprintf("items[%d].quantity", i), "must be at least 1")
		case math.IsNaN(item.Price) || math.IsInf(item.Price, 0):
			return invalid(fmt.Sprintf("items[%d].price", i), "must be a finite number")
		case item.Price < 0:
			return invalid(fmt.Sprintf("items[%d].price", i), "must not be negative")
		}
	}
	return nil
}

func invalid(field, reason string) error {
	return &domain.InvalidInvoiceError{Field: field, Reason: reason}
}
