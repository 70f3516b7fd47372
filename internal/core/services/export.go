package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/custodia-labs/docket/internal/core/domain"
	"github.com/custodia-labs/docket/internal/core/ports/driven"
	"github.com/custodia-labs/docket/internal/core/ports/driving"
	"github.com/custodia-labs/docket/internal/logger"
	"github.com/custodia-labs/docket/internal/render"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// A4 portrait in millimetres.
const (
	PageWidthMM  = 210.0
	PageHeightMM = 297.0
)

// pageTolerancePx is the raster overflow a page absorbs before another is added.
const pageTolerancePx = 1.0

// ErrNoPrintSink is returned when printing without a print sink.
var ErrNoPrintSink = errors.New("no print sink configured")

// ExportService renders invoices and exports them as PDF or print.
// Each call gets its own ExportRun; runs share no mutable state.
type ExportService struct {
	invoiceStore driven.InvoiceStore
	rasterizer   driven.Rasterizer
	encoder      driven.PDFEncoder
	artifacts    driven.ArtifactStore
	printSink    driven.PrintSink
	notifier     driven.Notifier
	settings     domain.Settings
	opts         options
}

// NewExportService creates a new export service.
// The print sink and notifier may be nil.
func NewExportService(
	invoiceStore driven.InvoiceStore,
	rasterizer driven.Rasterizer,
	encoder driven.PDFEncoder,
	artifacts driven.ArtifactStore,
	printSink driven.PrintSink,
	notifier driven.Notifier,
	settings domain.Settings,
	opts ...Option,
) *ExportService {
	if settings.Export.Scale < domain.MinRasterScale {
		settings.Export.Scale = domain.MinRasterScale
	}
	if !settings.Export.Pagination.IsValid() {
		settings.Export.Pagination = domain.PaginateMulti
	}
	return &ExportService{
		invoiceStore: invoiceStore,
		rasterizer:   rasterizer,
		encoder:      encoder,
		artifacts:    artifacts,
		printSink:    printSink,
		notifier:     notifier,
		settings:     settings,
		opts:         newOptions(opts),
	}
}

func (s *ExportService) renderOptions() render.Options {
	opts := render.DefaultOptions()
	opts.Watermark = s.settings.WatermarkEnabled
	return opts
}

// Layout renders an invoice without exporting it.
func (s *ExportService) Layout(ctx context.Context, invoiceID string) (*domain.LayoutDocument, error) {
	inv, err := s.invoiceStore.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	layout := render.Render(*inv, s.renderOptions())
	return &layout, nil
}

// ExportPDF rasterizes the invoice and stores it as a PDF artifact.
func (s *ExportService) ExportPDF(ctx context.Context, invoiceID string) (*domain.ExportRun, error) {
	run := domain.NewExportRun(s.opts.newID(), invoiceID, domain.ExportPDF)

	if err := s.advance(run, domain.ExportRendering); err != nil {
		return run, s.fail(run, err)
	}
	inv, err := s.invoiceStore.Get(ctx, invoiceID)
	if err != nil {
		return run, s.fail(run, fmt.Errorf("load invoice: %w", err))
	}
	layout := render.Render(*inv, s.renderOptions())

	if err := s.advance(run, domain.ExportRasterizing); err != nil {
		return run, s.fail(run, err)
	}
	img, err := s.rasterizer.Rasterize(ctx, layout, s.settings.Export.Scale)
	if err != nil {
		return run, s.fail(run, fmt.Errorf("rasterize: %w", err))
	}
	b := img.Bounds()
	placement, err := PlacePDF(b.Dx(), b.Dy(), s.settings.Export.Pagination)
	if err != nil {
		return run, s.fail(run, err)
	}
	data, err := s.encoder.Encode(ctx, img, placement)
	if err != nil {
		return run, s.fail(run, fmt.Errorf("encode pdf: %w", err))
	}
	location, err := s.artifacts.Save(ctx, layout.FileName, data)
	if err != nil {
		return run, s.fail(run, fmt.Errorf("save %s: %w", layout.FileName, err))
	}

	artifact := &domain.ExportArtifact{
		FileName:    layout.FileName,
		Location:    location,
		PageWidth:   placement.PageWidth,
		PageHeight:  placement.PageHeight,
		ImageHeight: placement.ImageHeight,
		Pages:       placement.Pages,
		Size:        len(data),
	}
	if err := run.Complete(artifact, s.opts.now()); err != nil {
		return run, s.fail(run, err)
	}
	logger.Info("exported %s (%d page(s), %d bytes)", location, placement.Pages, len(data))
	notify(s.notifier, domain.Success(fmt.Sprintf("Invoice saved to %s", location)))
	return run, nil
}

// Print opens the printable invoice on the print sink, triggers the
// dialog and tears the surface down after the configured delay, whatever
// the dialog outcome.
func (s *ExportService) Print(ctx context.Context, invoiceID string) (*domain.ExportRun, error) {
	run := domain.NewExportRun(s.opts.newID(), invoiceID, domain.ExportPrint)

	if err := s.advance(run, domain.ExportRendering); err != nil {
		return run, s.fail(run, err)
	}
	if s.printSink == nil {
		return run, s.fail(run, ErrNoPrintSink)
	}
	inv, err := s.invoiceStore.Get(ctx, invoiceID)
	if err != nil {
		return run, s.fail(run, fmt.Errorf("load invoice: %w", err))
	}
	layout := render.Render(*inv, s.renderOptions())
	html, err := render.PrintHTML(layout)
	if err != nil {
		return run, s.fail(run, err)
	}

	surface, err := s.printSink.Open(ctx, driven.PrintDocument{
		Title: "Invoice " + inv.InvoiceNumber,
		HTML:  html,
	})
	if err != nil {
		return run, s.fail(run, fmt.Errorf("open print surface: %w", err))
	}
	defer func() {
		if err := surface.Close(); err != nil {
			logger.Warn("closing print surface for %s: %v", invoiceID, err)
		}
	}()

	if err := s.advance(run, domain.ExportAwaitingPrintDialog); err != nil {
		return run, s.fail(run, err)
	}
	if err := surface.Print(ctx); err != nil {
		return run, s.fail(run, fmt.Errorf("trigger print dialog: %w", err))
	}
	wait(ctx, s.settings.Print.TeardownDelay)

	if err := run.Complete(nil, s.opts.now()); err != nil {
		return run, s.fail(run, err)
	}
	logger.Info("print dialog opened for invoice %s", inv.InvoiceNumber)
	return run, nil
}

func (s *ExportService) advance(run *domain.ExportRun, to domain.ExportState) error {
	from := run.State()
	if err := run.Advance(to, s.opts.now()); err != nil {
		return fmt.Errorf("%s -> %s: %w", from, to, err)
	}
	logger.Debug("export %s [%s]: %s -> %s", run.ID, run.Kind, from, to)
	return nil
}

func (s *ExportService) fail(run *domain.ExportRun, cause error) error {
	failure := run.Fail(cause, s.opts.now())
	logger.Error("%v", failure)
	msg := "Failed to export invoice"
	if run.Kind == domain.ExportPrint {
		msg = "Failed to print invoice"
	}
	notify(s.notifier, domain.Failure(msg, failure))
	return failure
}

// wait blocks for d or until ctx ends.
func wait(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// PlacePDF lays a raster of w×h pixels onto A4 portrait pages at full
// page width. With PaginateSingle everything goes on one page and
// content past the page bottom is clipped; with PaginateMulti each page
// shows the next page-height slice.
func PlacePDF(w, h int, policy domain.PaginationPolicy) (driven.PDFPlacement, error) {
	if w <= 0 || h <= 0 {
		return driven.PDFPlacement{}, fmt.Errorf("empty raster %dx%d", w, h)
	}
	imageH := float64(h) * PageWidthMM / float64(w)
	pages := 1
	if policy == domain.PaginateMulti {
		// Overflow of up to one raster pixel adds no page. The 96 dpi
		// page is not exactly A4 proportioned.
		pagePx := float64(w) * PageHeightMM / PageWidthMM
		pages = max(1, int(math.Ceil((float64(h)-pageTolerancePx)/pagePx)))
	}
	return driven.PDFPlacement{
		PageWidth:   PageWidthMM,
		PageHeight:  PageHeightMM,
		ImageWidth:  PageWidthMM,
		ImageHeight: imageH,
		Pages:       pages,
	}, nil
}
