package raster

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docket/internal/core/domain"
	"github.com/custodia-labs/docket/internal/datauri"
	"github.com/custodia-labs/docket/internal/render"
)

func solidPNG(t *testing.T, w, h int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return datauri.Encode("image/png", buf.Bytes())
}

func newRasterizer(t *testing.T) *Rasterizer {
	t.Helper()
	r, err := New()
	require.NoError(t, err)
	return r
}

func blankLayout() domain.LayoutDocument {
	return domain.LayoutDocument{Page: domain.Size{W: 200, H: 300}, Height: 100}
}

func rgba(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func inked(img image.Image, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if rgba(img, x, y) != (color.RGBA{255, 255, 255, 255}) {
				n++
			}
		}
	}
	return n
}

func TestRasterize_SizeFollowsScale(t *testing.T) {
	r := newRasterizer(t)

	img, err := r.Rasterize(context.Background(), blankLayout(), 2)

	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 400, 200), img.Bounds())
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, rgba(img, 10, 10))
}

func TestRasterize_ZeroHeightUsesPage(t *testing.T) {
	r := newRasterizer(t)
	layout := blankLayout()
	layout.Height = 0

	img, err := r.Rasterize(context.Background(), layout, 1)

	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestRasterize_InvalidScale(t *testing.T) {
	r := newRasterizer(t)

	for _, scale := range []float64{0, -1} {
		_, err := r.Rasterize(context.Background(), blankLayout(), scale)
		assert.ErrorIs(t, err, ErrInvalidScale)
	}
}

func TestRasterize_Text(t *testing.T) {
	r := newRasterizer(t)
	layout := blankLayout()
	layout.Elements = []domain.Element{{
		Kind:     domain.ElementText,
		Rect:     domain.Rect{X: 10, Y: 10, W: 180, H: 24},
		Text:     "Acme Corp",
		FontSize: 16,
		Bold:     true,
		Align:    domain.AlignLeft,
		Color:    "#111827",
	}}

	img, err := r.Rasterize(context.Background(), layout, 2)
	require.NoError(t, err)

	assert.Positive(t, inked(img, image.Rect(20, 20, 380, 68)))
	assert.Zero(t, inked(img, image.Rect(0, 80, 400, 200)))
}

func TestRasterize_RightAlignedText(t *testing.T) {
	r := newRasterizer(t)
	layout := blankLayout()
	layout.Elements = []domain.Element{{
		Kind:     domain.ElementText,
		Rect:     domain.Rect{X: 0, Y: 0, W: 200, H: 24},
		Text:     "$69.98",
		FontSize: 16,
		Align:    domain.AlignRight,
		Color:    "#000",
	}}

	img, err := r.Rasterize(context.Background(), layout, 1)
	require.NoError(t, err)

	assert.Zero(t, inked(img, image.Rect(0, 0, 100, 24)))
	assert.Positive(t, inked(img, image.Rect(100, 0, 200, 24)))
}

func TestRasterize_ImageIsScaledIntoRect(t *testing.T) {
	r := newRasterizer(t)
	layout := blankLayout()
	layout.Elements = []domain.Element{{
		Kind: domain.ElementImage,
		Rect: domain.Rect{X: 20, Y: 20, W: 40, H: 20},
		Src:  solidPNG(t, 8, 4, color.RGBA{255, 0, 0, 255}),
	}}

	img, err := r.Rasterize(context.Background(), layout, 2)
	require.NoError(t, err)

	assert.Equal(t, color.RGBA{255, 0, 0, 255}, rgba(img, 80, 60))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, rgba(img, 150, 60))
}

func TestRasterize_Rule(t *testing.T) {
	r := newRasterizer(t)
	layout := blankLayout()
	layout.Elements = []domain.Element{{
		Kind:  domain.ElementRule,
		Rect:  domain.Rect{X: 0, Y: 50, W: 200, H: 1},
		Color: "#e5e7eb",
	}}

	img, err := r.Rasterize(context.Background(), layout, 1)
	require.NoError(t, err)

	assert.Equal(t, color.RGBA{0xe5, 0xe7, 0xeb, 255}, rgba(img, 100, 50))
}

func TestRasterize_UnsupportedImage(t *testing.T) {
	r := newRasterizer(t)
	layout := blankLayout()
	layout.Elements = []domain.Element{{
		Kind: domain.ElementImage,
		Rect: domain.Rect{X: 0, Y: 0, W: 10, H: 10},
		Src:  datauri.Encode("image/svg+xml", []byte("<svg xmlns='http://www.w3.org/2000/svg'/>")),
	}}

	_, err := r.Rasterize(context.Background(), layout, 1)

	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestRasterize_UnknownElementKind(t *testing.T) {
	r := newRasterizer(t)
	layout := blankLayout()
	layout.Elements = []domain.Element{{Kind: "circle"}}

	_, err := r.Rasterize(context.Background(), layout, 1)

	assert.Error(t, err)
}

func TestRasterize_Watermark(t *testing.T) {
	r := newRasterizer(t)
	layout := blankLayout()
	layout.Height = 300
	wm := render.NewWatermark("Acme Corp", domain.Rect{W: 200, H: 300})
	layout.Watermark = &wm

	img, err := r.Rasterize(context.Background(), layout, 1)
	require.NoError(t, err)

	// The first tile is centred at (200, 200); the text runs through it.
	ink := inked(img, img.Bounds())
	assert.Positive(t, ink)

	// Faded text never reaches full fill intensity.
	darkest := uint8(255)
	for y := 0; y < img.Bounds().Dy(); y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			darkest = min(darkest, rgba(img, x, y).R)
		}
	}
	assert.Greater(t, darkest, uint8(150))
}

func TestRasterize_CancelledContext(t *testing.T) {
	r := newRasterizer(t)
	layout := render.Render(sampleInvoice(), render.DefaultOptions())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Rasterize(ctx, layout, 2)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRasterize_RenderedInvoice(t *testing.T) {
	r := newRasterizer(t)
	inv := sampleInvoice()
	inv.CompanyLogo = solidPNG(t, 128, 64, color.RGBA{0, 0, 255, 255})
	inv.Signature = solidPNG(t, 300, 60, color.RGBA{0, 0, 0, 255})
	layout := render.Render(inv, render.DefaultOptions())

	img, err := r.Rasterize(context.Background(), layout, 2)
	require.NoError(t, err)

	assert.Equal(t, 1588, img.Bounds().Dx())
	assert.Positive(t, inked(img, img.Bounds()))
}

func sampleInvoice() domain.Invoice {
	items := []domain.LineItem{
		{Description: "Widget", Quantity: 2, Price: 9.99},
		{Description: "Service", Quantity: 1, Price: 50.00},
	}
	return domain.Invoice{
		ID:             "inv-1",
		CompanyName:    "Acme Corp",
		CompanyAddress: "1 Main St",
		CustomerName:   "Jane Doe",
		Email:          "jane@example.com",
		InvoiceNumber:  "INV-1",
		IssueDate:      "2024-01-15T10:00:00.000Z",
		Items:          items,
		Total:          domain.SumItems(items),
	}
}

func TestParseColor(t *testing.T) {
	tests := map[string]color.NRGBA{
		"#fff":    {255, 255, 255, 255},
		"#2563eb": {0x25, 0x63, 0xeb, 255},
		"gray":    {128, 128, 128, 255},
		" Black ": {0, 0, 0, 255},
	}
	for in, want := range tests {
		got, err := parseColor(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "red", "#12", "#gggggg"} {
		_, err := parseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestWithOpacity(t *testing.T) {
	c := color.NRGBA{128, 128, 128, 255}

	assert.Equal(t, uint8(51), withOpacity(c, 0.2).A)
	assert.Equal(t, uint8(0), withOpacity(c, -1).A)
	assert.Equal(t, uint8(255), withOpacity(c, 2).A)
}
