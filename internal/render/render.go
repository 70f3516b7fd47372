package render

import (
	"bytes"
	"image"
	_ "image/gif"  // register GIF for logo sizing
	_ "image/jpeg" // register JPEG for logo sizing
	_ "image/png"  // register PNG for logo sizing
	"math"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP for logo sizing
	_ "golang.org/x/image/webp" // register WebP for logo sizing

	"github.com/custodia-labs/docket/internal/core/domain"
	"github.com/custodia-labs/docket/internal/core/identity"
	"github.com/custodia-labs/docket/internal/datauri"
)

// A4 at 96 dpi in CSS pixels.
var PageA4 = domain.Size{W: 794, H: 1123}

// IssueDateLayout is the display layout of the issue date.
const IssueDateLayout = "Jan 02, 2006"

// Block headings and labels.
const (
	HeadingBillTo    = "Bill To:"
	HeadingNotes     = "Notes"
	HeadingTerms     = "Terms & Conditions"
	HeadingSignature = "Signature"
	LabelTotal       = "Total:"
	LabelIssueDate   = "Issue Date: "
)

// Columns of the items table.
var Columns = []string{"Description", "Quantity", "Price", "Total"}

// Colours.
const (
	colorHeading = "#111827"
	colorMuted   = "#4b5563"
	colorBody    = "#1f2937"
	colorAccent  = "#2563eb"
	colorRule    = "#e5e7eb"
)

const (
	blockGap       = 32.0
	headingGap     = 8.0
	cellPadding    = 8.0
	columnGap      = 24.0
	logoMaxHeight  = 64.0
	signatureMaxH  = 80.0
	titleSize      = 24.0
	numberSize     = 20.0
	sectionSize    = 18.0
	bodySize       = 16.0
	leftColumnFrac = 0.6
)

// Share of the table width per column.
var columnFracs = []float64{0.5, 0.15, 0.175, 0.175}

// Options controls page geometry and layers.
type Options struct {
	Page      domain.Size
	Padding   float64
	Watermark bool
}

// DefaultOptions returns A4 with 24 px padding and the watermark on.
func DefaultOptions() Options {
	return Options{Page: PageA4, Padding: 24, Watermark: true}
}

// Render lays out an invoice. The invoice is not modified.
func Render(inv domain.Invoice, opts Options) domain.LayoutDocument {
	if opts.Page.W <= 0 || opts.Page.H <= 0 {
		opts.Page = PageA4
	}
	if opts.Padding < 0 {
		opts.Padding = 0
	}

	l := &layouter{
		pad:   opts.Padding,
		width: opts.Page.W - 2*opts.Padding,
	}
	// Padding wider than the page leaves a one pixel column
	l.width = math.Max(l.width, 1)
	doc := domain.LayoutDocument{
		InvoiceID: inv.ID,
		FileName:  inv.PDFFileName(),
		Page:      opts.Page,
		Padding:   opts.Padding,
	}

	y := opts.Padding
	doc.Header, y = l.header(inv, y)
	doc.BillTo, y = l.billTo(inv, y+blockGap)
	doc.Items, y = l.items(inv, y+blockGap)
	if inv.Notes != "" || inv.Terms != "" {
		var remarks domain.RemarksBlock
		remarks, y = l.remarks(inv, y+blockGap)
		doc.Remarks = &remarks
	}
	if inv.Signature != "" {
		var sig domain.SignatureBlock
		sig, y = l.signature(inv, y+blockGap)
		doc.Signature = &sig
	}

	doc.Height = math.Max(y+opts.Padding, 2*opts.Padding+lineHeight(bodySize))
	doc.Elements = l.elements

	if opts.Watermark && strings.TrimSpace(inv.CompanyName) != "" {
		box := domain.Rect{W: doc.Page.W, H: math.Max(doc.Page.H, doc.Height)}
		wm := NewWatermark(inv.CompanyName, box)
		doc.Watermark = &wm
	}
	return doc
}

// layouter accumulates positioned elements.
type layouter struct {
	pad      float64
	width    float64
	elements []domain.Element
}

func (l *layouter) text(
	s string, x, y, w, size float64, bold bool, align domain.Align, color string,
) float64 {
	for _, line := range wrap(s, size, bold, w) {
		h := lineHeight(size)
		if line != "" {
			l.elements = append(l.elements, domain.Element{
				Kind:     domain.ElementText,
				Rect:     domain.Rect{X: x, Y: y, W: w, H: h},
				Text:     line,
				FontSize: size,
				Bold:     bold,
				Align:    align,
				Color:    color,
			})
		}
		y += h
	}
	return y
}

func (l *layouter) image(src string, x, y, maxW, maxH float64, upscale bool) float64 {
	size := fitImage(src, maxW, maxH, upscale)
	l.elements = append(l.elements, domain.Element{
		Kind: domain.ElementImage,
		Rect: domain.Rect{X: x, Y: y, W: size.W, H: size.H},
		Src:  src,
	})
	return y + size.H
}

func (l *layouter) rule(x, y, w float64) {
	l.elements = append(l.elements, domain.Element{
		Kind:  domain.ElementRule,
		Rect:  domain.Rect{X: x, Y: y, W: w, H: 1},
		Color: colorRule,
	})
}

func (l *layouter) header(inv domain.Invoice, top float64) (domain.HeaderBlock, float64) {
	leftW := l.width * leftColumnFrac
	rightX := l.pad + leftW
	rightW := l.width - leftW

	y := l.text(inv.CompanyName, l.pad, top, leftW, titleSize, true, domain.AlignLeft, colorHeading)
	if inv.CompanyLogo != "" {
		y = l.image(inv.CompanyLogo, l.pad, y+headingGap, leftW, logoMaxHeight, true)
	}
	address := splitLines(inv.CompanyAddress)
	if len(address) > 0 {
		y = l.text(strings.Join(address, "\n"), l.pad, y+headingGap, leftW, bodySize, false, domain.AlignLeft, colorMuted)
	}

	issue := formatIssueDate(inv.IssueDate)
	ry := l.text(inv.InvoiceNumber, rightX, top, rightW, numberSize, true, domain.AlignRight, colorHeading)
	ry = l.text(LabelIssueDate+issue, rightX, ry, rightW, bodySize, false, domain.AlignRight, colorMuted)

	bottom := math.Max(y, ry)
	return domain.HeaderBlock{
		Rect:          domain.Rect{X: l.pad, Y: top, W: l.width, H: bottom - top},
		CompanyName:   inv.CompanyName,
		Logo:          inv.CompanyLogo,
		AddressLines:  address,
		InvoiceNumber: inv.InvoiceNumber,
		IssueDate:     issue,
	}, bottom
}

func (l *layouter) billTo(inv domain.Invoice, top float64) (domain.BillToBlock, float64) {
	y := l.text(HeadingBillTo, l.pad, top, l.width, sectionSize, true, domain.AlignLeft, colorHeading)
	y = l.text(inv.CustomerName, l.pad, y+headingGap, l.width, bodySize, true, domain.AlignLeft, colorBody)
	y = l.text(inv.Email, l.pad, y, l.width, bodySize, false, domain.AlignLeft, colorMuted)
	return domain.BillToBlock{
		Rect:         domain.Rect{X: l.pad, Y: top, W: l.width, H: y - top},
		Heading:      HeadingBillTo,
		CustomerName: inv.CustomerName,
		Email:        inv.Email,
	}, y
}

func (l *layouter) items(inv domain.Invoice, top float64) (domain.ItemsTable, float64) {
	xs := make([]float64, len(columnFracs))
	ws := make([]float64, len(columnFracs))
	x := l.pad
	for i, frac := range columnFracs {
		xs[i], ws[i] = x, l.width*frac
		x += ws[i]
	}

	row := func(cells []string, y float64, bold bool, color string) float64 {
		bottom := y
		for i, cell := range cells {
			align := domain.AlignRight
			if i == 0 {
				align = domain.AlignLeft
			}
			inner := math.Max(ws[i]-cellPadding, 1)
			cx := xs[i]
			if align == domain.AlignRight {
				cx += cellPadding
			}
			end := l.text(cell, cx, y+cellPadding, inner, bodySize, bold, align, color)
			bottom = math.Max(bottom, end)
		}
		return bottom + cellPadding
	}

	y := row(Columns, top, true, colorMuted)
	l.rule(l.pad, y, l.width)

	table := domain.ItemsTable{
		Columns:    append([]string(nil), Columns...),
		Rows:       make([]domain.ItemRow, 0, len(inv.Items)),
		TotalLabel: LabelTotal,
		Total:      FormatMoney(inv.Total),
	}
	for _, item := range inv.Items {
		r := domain.ItemRow{
			Description: item.Description,
			Quantity:    strconv.Itoa(item.Quantity),
			UnitPrice:   FormatMoney(item.Price),
			LineTotal:   FormatMoney(item.LineTotal()),
		}
		table.Rows = append(table.Rows, r)
		y = row([]string{r.Description, r.Quantity, r.UnitPrice, r.LineTotal}, y, false, colorBody)
		l.rule(l.pad, y, l.width)
	}

	labelW := ws[0] + ws[1] + ws[2] - cellPadding
	end := l.text(LabelTotal, l.pad, y+cellPadding, labelW, bodySize, true, domain.AlignRight, colorHeading)
	end = math.Max(end, l.text(table.Total, xs[3]+cellPadding, y+cellPadding, ws[3]-cellPadding,
		bodySize, true, domain.AlignRight, colorAccent))
	y = end + cellPadding

	table.Rect = domain.Rect{X: l.pad, Y: top, W: l.width, H: y - top}
	return table, y
}

func (l *layouter) remarks(inv domain.Invoice, top float64) (domain.RemarksBlock, float64) {
	colW := (l.width - columnGap) / 2
	x := l.pad
	bottom := top
	for _, part := range []struct{ heading, body string }{
		{HeadingNotes, inv.Notes},
		{HeadingTerms, inv.Terms},
	} {
		if part.body == "" {
			continue
		}
		y := l.text(part.heading, x, top, colW, sectionSize, true, domain.AlignLeft, colorHeading)
		y = l.text(part.body, x, y+headingGap, colW, bodySize, false, domain.AlignLeft, colorMuted)
		bottom = math.Max(bottom, y)
		x += colW + columnGap
	}
	return domain.RemarksBlock{
		Rect:  domain.Rect{X: l.pad, Y: top, W: l.width, H: bottom - top},
		Notes: inv.Notes,
		Terms: inv.Terms,
	}, bottom
}

func (l *layouter) signature(inv domain.Invoice, top float64) (domain.SignatureBlock, float64) {
	y := l.text(HeadingSignature, l.pad, top, l.width, sectionSize, true, domain.AlignLeft, colorHeading)
	y = l.image(inv.Signature, l.pad, y+headingGap, l.width, signatureMaxH, false)
	return domain.SignatureBlock{
		Rect:    domain.Rect{X: l.pad, Y: top, W: l.width, H: y - top},
		Heading: HeadingSignature,
		Image:   inv.Signature,
	}, y
}

// fitImage scales the image's natural size to fit within the box,
// keeping the aspect ratio. Small images are only enlarged when upscale
// is set. Undecodable images get a square box.
func fitImage(src string, maxW, maxH float64, upscale bool) domain.Size {
	side := math.Min(maxW, maxH)
	data, _, err := datauri.Decode(src)
	if err != nil {
		return domain.Size{W: side, H: side}
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width == 0 || cfg.Height == 0 {
		return domain.Size{W: side, H: side}
	}
	w, h := float64(cfg.Width), float64(cfg.Height)
	scale := math.Min(maxW/w, maxH/h)
	if !upscale {
		scale = math.Min(scale, 1)
	}
	return domain.Size{W: w * scale, H: h * scale}
}

// formatIssueDate renders a stored timestamp for display, falling back to
// the raw value when it cannot be parsed.
func formatIssueDate(s string) string {
	t, err := identity.Parse(s)
	if err != nil {
		return s
	}
	return t.Format(IssueDateLayout)
}

func splitLines(s string) []string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
