package cli

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docket/internal/core/ports/driven"
	"github.com/custodia-labs/docket/internal/datauri"
)

// sniffLen is how many bytes content type detection looks at.
const sniffLen = 512

// pathFile is a driven.FileHandle over a file on disk.
type pathFile struct {
	path     string
	size     int64
	mimeType string
}

var _ driven.FileHandle = (*pathFile)(nil)

// openPath stats path and determines its MIME type from the extension,
// falling back to content sniffing.
func openPath(path string) (*pathFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	mimeType, err := detectType(path)
	if err != nil {
		return nil, err
	}
	return &pathFile{path: path, size: info.Size(), mimeType: mimeType}, nil
}

func (f *pathFile) Name() string { return filepath.Base(f.path) }
func (f *pathFile) Size() int64  { return f.size }
func (f *pathFile) Type() string { return f.mimeType }

func (f *pathFile) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}

func detectType(path string) (string, error) {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		mediaType, _, err := mime.ParseMediaType(t)
		if err == nil {
			return mediaType, nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	mediaType, _, _ := strings.Cut(http.DetectContentType(buf[:n]), ";")
	return mediaType, nil
}

// imageDataURI reads an image file for use as a logo.
func imageDataURI(path string) (string, error) {
	mimeType, err := detectType(path)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("%s is not an image (%s)", path, mimeType)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return datauri.Encode(mimeType, data), nil
}
