package printer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/custodia-labs/docket/internal/core/ports/driven"
	"github.com/custodia-labs/docket/internal/logger"
)

// ErrSurfaceClosed is returned when printing on a closed surface.
var ErrSurfaceClosed = errors.New("print surface closed")

// autoPrint opens the print dialog once the document has loaded.
const autoPrint = `<script>window.addEventListener("load", function () { window.print(); });</script>`

// BrowserSink opens printable documents in the default browser.
type BrowserSink struct {
	dir  string
	open Opener
}

var _ driven.PrintSink = (*BrowserSink)(nil)

// NewBrowserSink writes documents into dir, or the system temp directory
// when dir is empty. A nil opener uses OpenDefault.
func NewBrowserSink(dir string, open Opener) *BrowserSink {
	if open == nil {
		open = OpenDefault
	}
	return &BrowserSink{dir: dir, open: open}
}

// Open writes the document to a temporary file.
func (s *BrowserSink) Open(ctx context.Context, doc driven.PrintDocument) (driven.PrintSurface, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.CreateTemp(s.dir, "docket-print-*.html")
	if err != nil {
		return nil, fmt.Errorf("creating print file: %w", err)
	}
	if _, err := f.Write(injectAutoPrint(doc.HTML)); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("writing print file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("writing print file: %w", err)
	}
	logger.Debug("print surface for %q at %s", doc.Title, f.Name())
	return &fileSurface{path: f.Name(), open: s.open}, nil
}

// fileSurface is a printable document on disk.
type fileSurface struct {
	mu     sync.Mutex
	path   string
	open   Opener
	closed bool
}

// Print hands the file to the opener.
func (f *fileSurface) Print(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrSurfaceClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := f.open(f.path); err != nil {
		return fmt.Errorf("opening %s: %w", f.path, err)
	}
	return nil
}

// Close removes the file. Closing twice is a no-op.
func (f *fileSurface) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// injectAutoPrint places the print script before the closing body tag,
// or appends it when there is none.
func injectAutoPrint(html []byte) []byte {
	i := bytes.LastIndex(html, []byte("</body>"))
	if i < 0 {
		return append(append([]byte{}, html...), autoPrint...)
	}
	out := make([]byte, 0, len(html)+len(autoPrint))
	out = append(out, html[:i]...)
	out = append(out, autoPrint...)
	return append(out, html[i:]...)
}
