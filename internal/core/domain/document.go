package domain

import (
	"math"
	"strings"
)

// DefaultDisplayNameLength is the longest base name shown before truncation.
const DefaultDisplayNameLength = 50

// Accepted MIME type prefixes for uploads.
const (
	MimePrefixImage       = "image/"
	MimePrefixApplication = "application/"
)

// Document represents an uploaded file.
// Documents are never mutated after creation.
type Document struct {
	// ID is the unique identifier for the document.
	ID string `json:"id"`

	// Name is the original file name, extension included.
	Name string `json:"name"`

	// Size is the byte count of the uploaded content.
	Size int64 `json:"size"`

	// Type is the MIME type reported for the file.
	Type string `json:"type"`

	// UploadDate is the ISO-8601 timestamp stamped at creation.
	UploadDate string `json:"uploadDate"`

	// Content is the full file content encoded as a data URI.
	Content string `json:"content"`
}

// IsImage reports whether the document holds an image.
func (d Document) IsImage() bool {
	return strings.HasPrefix(d.Type, MimePrefixImage)
}

// Extension returns the substring after the last dot of the name, or "".
func (d Document) Extension() string {
	i := strings.LastIndex(d.Name, ".")
	if i < 0 {
		return ""
	}
	return d.Name[i+1:]
}

// SizeKB returns the size in kilobytes, rounded to the nearest integer.
func (d Document) SizeKB() int64 {
	return int64(math.Round(float64(d.Size) / 1024))
}

// DisplayName returns the name truncated for display.
func (d Document) DisplayName() string {
	return TruncateFileName(d.Name, DefaultDisplayNameLength)
}

// IsAcceptedType reports whether a MIME type may be uploaded.
func IsAcceptedType(mimeType string) bool {
	return strings.HasPrefix(mimeType, MimePrefixImage) ||
		strings.HasPrefix(mimeType, MimePrefixApplication)
}

// TruncateFileName shortens the part of name before its final extension to
// max characters, appending "..." and keeping the extension intact.
// Names whose base fits are returned unchanged.
func TruncateFileName(name string, max int) string {
	base, ext := name, ""
	if i := strings.LastIndex(name, "."); i >= 0 {
		base, ext = name[:i], name[i:]
	}

	runes := []rune(base)
	if len(runes) <= max {
		return name
	}
	return string(runes[:max]) + "..." + ext
}
