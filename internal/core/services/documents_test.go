package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docket/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docket/internal/core/domain"
	"github.com/custodia-labs/docket/internal/core/ports/driven"
)

type fakeFile struct {
	name    string
	mime    string
	data    []byte
	openErr error
	delay   time.Duration
}

func (f fakeFile) Name() string { return f.name }
func (f fakeFile) Size() int64  { return int64(len(f.data)) }
func (f fakeFile) Type() string { return f.mime }

func (f fakeFile) Open() (io.ReadCloser, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	time.Sleep(f.delay)
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

func TestNewDocumentService(t *testing.T) {
	svc := NewDocumentService(memory.NewDocumentStore(), nil, nil)
	require.NotNil(t, svc)
}

func TestDocumentService_Add(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	doc, err := env.documents.Add(ctx, domain.Upload{
		Name: "a.b.report.pdf",
		Type: "application/pdf",
		Data: []byte("%PDF-1.4"),
	})

	require.NoError(t, err)
	assert.Equal(t, "doc-1", doc.ID)
	assert.Equal(t, "a.b.report.pdf", doc.Name)
	assert.Equal(t, "pdf", doc.Extension())
	assert.Equal(t, int64(8), doc.Size)
	assert.Equal(t, "application/pdf", doc.Type)
	assert.Equal(t, "2024-01-15T10:30:00.000Z", doc.UploadDate)
	assert.True(t, strings.HasPrefix(doc.Content, "data:application/pdf;base64,"))

	last, ok := env.notifier.Last()
	require.True(t, ok)
	assert.Equal(t, domain.Success("a.b.report.pdf uploaded successfully!"), last)
}

func TestDocumentService_AddLongNameKeepsExtensionWhenTruncated(t *testing.T) {
	env := newTestEnv()
	name := strings.Repeat("quarterly.", 8) + "report.pdf"

	doc, err := env.documents.Add(context.Background(), domain.Upload{Name: name, Type: "application/pdf"})

	require.NoError(t, err)
	assert.Equal(t, name, doc.Name)
	assert.True(t, strings.HasSuffix(doc.DisplayName(), "....pdf"))
}

func TestDocumentService_AddRejectsUnsupportedType(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	for _, mime := range []string{"text/plain", "video/mp4", ""} {
		doc, err := env.documents.Add(ctx, domain.Upload{Name: "notes.txt", Type: mime, Data: []byte("x")})

		assert.Nil(t, doc)
		assert.ErrorIs(t, err, domain.ErrUnsupportedType)
		var typeErr *domain.UnsupportedTypeError
		require.True(t, errors.As(err, &typeErr))
		assert.Equal(t, mime, typeErr.Type)
	}

	docs, _ := env.documents.List(ctx)
	assert.Empty(t, docs)
	assert.Equal(t, 0, env.slot.Writes())

	last, _ := env.notifier.Last()
	assert.Equal(t, domain.NotificationError, last.Level)
	assert.Equal(t, "Unsupported file type. Only images and document are allowed", last.Message)
}

func TestDocumentService_Upload(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	files := []driven.FileHandle{
		fakeFile{name: "slow.png", mime: "image/png", data: []byte("slow"), delay: 20 * time.Millisecond},
		fakeFile{name: "broken.pdf", mime: "application/pdf", openErr: errors.New("permission denied")},
		fakeFile{name: "notes.txt", mime: "text/plain", data: []byte("hi")},
		fakeFile{name: "fast.pdf", mime: "application/pdf", data: []byte("fast")},
	}

	results := env.documents.Upload(ctx, files)

	require.Len(t, results, 4)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.ErrorIs(t, results[2].Err, domain.ErrUnsupportedType)
	assert.NoError(t, results[3].Err)
	for i, f := range files {
		assert.Equal(t, f.Name(), results[i].Name)
	}

	docs, err := env.documents.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "slow.png", docs[0].Name)
	assert.Equal(t, "fast.pdf", docs[1].Name)
	assert.Equal(t, int64(4), docs[0].Size)
}

func TestDocumentService_Remove(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	a, _ := env.documents.Add(ctx, domain.Upload{Name: "a.png", Type: "image/png"})
	b, _ := env.documents.Add(ctx, domain.Upload{Name: "b.png", Type: "image/png"})

	require.NoError(t, env.documents.Remove(ctx, a.ID))

	docs, _ := env.documents.List(ctx)
	require.Len(t, docs, 1)
	assert.Equal(t, *b, docs[0])
	last, _ := env.notifier.Last()
	assert.Equal(t, "Document deleted successfully!", last.Message)
}

func TestDocumentService_RemoveUnknownIsNoop(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	_, _ = env.documents.Add(ctx, domain.Upload{Name: "a.png", Type: "image/png"})
	before, _ := env.documents.List(ctx)
	events := len(env.notifier.Events())

	require.NoError(t, env.documents.Remove(ctx, "missing"))

	after, _ := env.documents.List(ctx)
	assert.Equal(t, before, after)
	assert.Len(t, env.notifier.Events(), events)
}

func TestDocumentService_Content(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	doc, err := env.documents.Add(ctx, domain.Upload{Name: "a.png", Type: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}})
	require.NoError(t, err)

	data, mime, err := env.documents.Content(ctx, doc.ID)

	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data)
	assert.Equal(t, "image/png", mime)

	_, _, err = env.documents.Content(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentService_WithoutPersistence(t *testing.T) {
	store := memory.NewDocumentStore()
	svc := NewDocumentService(store, nil, nil)
	ctx := context.Background()

	doc, err := svc.Add(ctx, domain.Upload{Name: "a.png", Type: "image/png"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
	assert.NotEmpty(t, doc.ID)
}
