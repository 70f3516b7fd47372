// Package signature provides signature pads backed by image files.
package signature

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/custodia-labs/docket/internal/core/ports/driven"
	"github.com/custodia-labs/docket/internal/datauri"
)

// FilePad reads a signature drawn elsewhere from an image file.
// After Clear the pad is empty until Load is called again.
type FilePad struct {
	mu   sync.Mutex
	path string
}

var _ driven.SignaturePad = (*FilePad)(nil)

// NewFilePad returns a pad holding path. An empty path is an empty pad.
func NewFilePad(path string) *FilePad {
	return &FilePad{path: path}
}

// Load points the pad at a new image file.
func (p *FilePad) Load(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.path = path
}

// Image returns the signature as a data URI, or "" when the pad is empty.
func (p *FilePad) Image() (string, error) {
	p.mu.Lock()
	path := p.path
	p.mu.Unlock()

	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading signature: %w", err)
	}
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("signature %s is not an image (%s)", path, mimeType)
	}
	return datauri.Encode(mimeType, data), nil
}

// Clear empties the pad.
func (p *FilePad) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.path = ""
}
