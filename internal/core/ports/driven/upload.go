package driven

import "io"

// FileHandle is a file offered for upload by a picker or watcher.
type FileHandle interface {
	Name() string
	Size() int64
	Type() string

	// Open returns a reader over the file bytes.
	Open() (io.ReadCloser, error)
}

// SignaturePad captures a signature image.
type SignaturePad interface {
	// Image returns the signature as a data URI, or "" when the pad is empty.
	Image() (string, error)

	// Clear empties the pad.
	Clear()
}
