package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAcceptedType(t *testing.T) {
	tests := []struct {
		mime string
		want bool
	}{
		{"image/png", true},
		{"image/svg+xml", true},
		{"application/pdf", true},
		{"application/octet-stream", true},
		{"text/plain", false},
		{"video/mp4", false},
		{"", false},
		{"IMAGE/PNG", false},
		{"xapplication/pdf", false},
	}

	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAcceptedType(tt.mime))
		})
	}
}

func TestDocument_Extension(t *testing.T) {
	assert.Equal(t, "pdf", Document{Name: "a.b.report.pdf"}.Extension())
	assert.Equal(t, "", Document{Name: "README"}.Extension())
	assert.Equal(t, "bashrc", Document{Name: ".bashrc"}.Extension())
}

func TestDocument_SizeKB(t *testing.T) {
	assert.Equal(t, int64(0), Document{Size: 0}.SizeKB())
	assert.Equal(t, int64(1), Document{Size: 1024}.SizeKB())
	assert.Equal(t, int64(2), Document{Size: 1536}.SizeKB())
	assert.Equal(t, int64(1), Document{Size: 1535}.SizeKB())
}

func TestDocument_IsImage(t *testing.T) {
	assert.True(t, Document{Type: "image/jpeg"}.IsImage())
	assert.False(t, Document{Type: "application/pdf"}.IsImage())
}

func TestTruncateFileName_ShortNameUnchanged(t *testing.T) {
	assert.Equal(t, "a.b.report.pdf", TruncateFileName("a.b.report.pdf", 50))
	assert.Equal(t, "noext", TruncateFileName("noext", 50))
}

func TestTruncateFileName_PreservesFinalExtension(t *testing.T) {
	base := strings.Repeat("x", 60)
	got := TruncateFileName(base+".tar.gz", 50)

	assert.Equal(t, strings.Repeat("x", 50)+"...", got[:53])
	assert.True(t, strings.HasSuffix(got, ".gz"))
}

func TestTruncateFileName_ExactlyMax(t *testing.T) {
	name := strings.Repeat("y", 50) + ".pdf"
	assert.Equal(t, name, TruncateFileName(name, 50))
}

func TestTruncateFileName_NoExtension(t *testing.T) {
	name := strings.Repeat("z", 55)
	assert.Equal(t, strings.Repeat("z", 50)+"...", TruncateFileName(name, 50))
}

func TestDocument_DisplayName(t *testing.T) {
	doc := Document{Name: strings.Repeat("q", 51) + ".png"}
	assert.Equal(t, strings.Repeat("q", 50)+"....png", doc.DisplayName())
}
