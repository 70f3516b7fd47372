package driven

import (
	"context"
	"image"

	"github.com/custodia-labs/docket/internal/core/domain"
)

// Rasterizer paints a layout into a raster image.
type Rasterizer interface {
	// Rasterize renders the layout at scale device pixels per layout pixel.
	// Unsupported embedded images are reported as errors.
	Rasterize(ctx context.Context, layout domain.LayoutDocument, scale float64) (image.Image, error)
}

// PDFPlacement describes how a raster is laid onto PDF pages.
type PDFPlacement struct {
	// PageWidth and PageHeight are the page size in millimetres.
	PageWidth  float64
	PageHeight float64

	// ImageWidth and ImageHeight are the placed raster size in millimetres.
	ImageWidth  float64
	ImageHeight float64

	// Pages is the number of pages to emit.
	Pages int
}

// PDFEncoder turns a raster image into a PDF document.
type PDFEncoder interface {
	// Encode returns the complete PDF bytes; nothing is written on error.
	Encode(ctx context.Context, img image.Image, placement PDFPlacement) ([]byte, error)
}

// ArtifactStore places exported files.
type ArtifactStore interface {
	// Save stores data under name atomically and returns its location.
	Save(ctx context.Context, name string, data []byte) (string, error)
}

// PrintDocument is a standalone printable document.
type PrintDocument struct {
	Title string
	HTML  []byte
}

// PrintSurface is an open rendering context used for printing.
type PrintSurface interface {
	// Print triggers the platform print dialog.
	Print(ctx context.Context) error

	// Close tears the surface down.
	Close() error
}

// PrintSink opens print surfaces.
type PrintSink interface {
	Open(ctx context.Context, doc PrintDocument) (PrintSurface, error)
}
