// Package pdf lays a raster image onto PDF pages with gofpdf.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/jung-kurt/gofpdf"

	"github.com/custodia-labs/docket/internal/core/ports/driven"
)

// ErrInvalidPlacement is returned when a placement cannot produce a page.
var ErrInvalidPlacement = errors.New("invalid pdf placement")

const imageName = "invoice"

// Encoder implements driven.PDFEncoder.
type Encoder struct{}

var _ driven.PDFEncoder = Encoder{}

// NewEncoder returns a PDF encoder.
func NewEncoder() Encoder {
	return Encoder{}
}

// Encode places img at the top-left of every page, shifted up by one page
// height per page, so each page shows the next slice of the raster.
func (Encoder) Encode(ctx context.Context, img image.Image, placement driven.PDFPlacement) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: no image", ErrInvalidPlacement)
	}
	if placement.Pages < 1 || placement.PageWidth <= 0 || placement.PageHeight <= 0 ||
		placement.ImageWidth <= 0 || placement.ImageHeight <= 0 {
		return nil, fmt.Errorf("%w: %+v", ErrInvalidPlacement, placement)
	}

	var raster bytes.Buffer
	if err := png.Encode(&raster, img); err != nil {
		return nil, fmt.Errorf("encoding raster: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: placement.PageWidth, Ht: placement.PageHeight},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader(imageName, opts, &raster)

	for i := 0; i < placement.Pages; i++ {
		doc.AddPage()
		y := -placement.PageHeight * float64(i)
		doc.ImageOptions(imageName, 0, y, placement.ImageWidth, placement.ImageHeight, false, opts, 0, "")
	}
	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("building pdf: %w", err)
	}

	var out bytes.Buffer
	if err := doc.Output(&out); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return out.Bytes(), nil
}
