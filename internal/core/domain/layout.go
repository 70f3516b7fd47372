package domain

import "math"

// Rect is an axis-aligned box in layout pixels.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Size is a width and height pair in layout pixels.
type Size struct {
	W, H float64
}

// Align is the horizontal alignment of a text element.
type Align string

// Text alignments.
const (
	AlignLeft  Align = "left"
	AlignRight Align = "right"
)

// ElementKind is the type of a positioned primitive.
type ElementKind string

// Element kinds.
const (
	ElementText  ElementKind = "text"
	ElementImage ElementKind = "image"
	ElementRule  ElementKind = "rule"
)

// Element is a positioned primitive, painted in slice order.
type Element struct {
	Kind ElementKind
	Rect Rect

	// Text elements.
	Text     string
	FontSize float64
	Bold     bool
	Align    Align
	Color    string

	// Image elements hold a data URI.
	Src string
}

// HeaderBlock carries company identity and invoice identification.
type HeaderBlock struct {
	Rect          Rect
	CompanyName   string
	Logo          string
	AddressLines  []string
	InvoiceNumber string
	IssueDate     string
}

// BillToBlock carries the customer.
type BillToBlock struct {
	Rect         Rect
	Heading      string
	CustomerName string
	Email        string
}

// ItemRow is one formatted row of the items table.
type ItemRow struct {
	Description string
	Quantity    string
	UnitPrice   string
	LineTotal   string
}

// ItemsTable is the formatted items table with its total row.
type ItemsTable struct {
	Rect       Rect
	Columns    []string
	Rows       []ItemRow
	TotalLabel string
	Total      string
}

// RemarksBlock holds optional notes and terms side by side.
type RemarksBlock struct {
	Rect  Rect
	Notes string
	Terms string
}

// SignatureBlock holds the captured signature image.
type SignatureBlock struct {
	Rect    Rect
	Heading string
	Image   string
}

// WatermarkLayer is the tiled background text derived from the company name.
type WatermarkLayer struct {
	Text     string
	Tile     Size
	Angle    float64
	Opacity  float64
	FontSize float64
	Fill     string

	// Tiles are the placements covering the page, row by row.
	Tiles []Rect
}

// Covers reports whether the tiles cover the box with no gaps.
// Tiles are expected on a regular grid anchored at the origin.
func (w WatermarkLayer) Covers(box Rect) bool {
	if w.Tile.W <= 0 || w.Tile.H <= 0 {
		return false
	}
	cols := int(math.Ceil(box.Right() / w.Tile.W))
	rows := int(math.Ceil(box.Bottom() / w.Tile.H))
	seen := make(map[[2]int]bool, len(w.Tiles))
	for _, t := range w.Tiles {
		if t.W < w.Tile.W || t.H < w.Tile.H {
			continue
		}
		seen[[2]int{int(math.Round(t.X / w.Tile.W)), int(math.Round(t.Y / w.Tile.H))}] = true
	}
	for r := int(box.Y / w.Tile.H); r < rows; r++ {
		for c := int(box.X / w.Tile.W); c < cols; c++ {
			if !seen[[2]int{c, r}] {
				return false
			}
		}
	}
	return true
}

// LayoutDocument is the renderer's read-only projection of an invoice.
type LayoutDocument struct {
	// InvoiceID identifies the source record.
	InvoiceID string

	// FileName is the PDF name derived from the invoice.
	FileName string

	// Page is the nominal page size; Height is the content height.
	Page    Size
	Padding float64
	Height  float64

	Header    HeaderBlock
	BillTo    BillToBlock
	Items     ItemsTable
	Remarks   *RemarksBlock
	Signature *SignatureBlock
	Watermark *WatermarkLayer

	// Elements are the positioned primitives for rasterization.
	Elements []Element
}

// Bounds returns the content box from the origin.
func (l LayoutDocument) Bounds() Rect {
	return Rect{W: l.Page.W, H: l.Height}
}
