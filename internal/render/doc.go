// Package render projects invoices into positioned layout documents.
//
// Render is pure: it reads an invoice and returns a domain.LayoutDocument
// in CSS pixels. The layout is consumed by the rasterizer for PDF export
// and projected into HTML (screen preview and print) or Markdown
// (terminal preview) by the functions in this package.
package render
