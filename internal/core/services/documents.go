package services

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/custodia-labs/docket/internal/core/domain"
	"github.com/custodia-labs/docket/internal/core/identity"
	"github.com/custodia-labs/docket/internal/core/ports/driven"
	"github.com/custodia-labs/docket/internal/core/ports/driving"
	"github.com/custodia-labs/docket/internal/datauri"
	"github.com/custodia-labs/docket/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// Notification messages for document operations.
const (
	msgUnsupportedType = "Unsupported file type. Only images and document are allowed"
	msgDocumentDeleted = "Document deleted successfully!"
)

// DocumentService manages uploaded documents.
type DocumentService struct {
	docStore    driven.DocumentStore
	persistence *Persistence
	notifier    driven.Notifier
	opts        options
}

// NewDocumentService creates a new document service.
// Persistence and notifier may be nil.
func NewDocumentService(
	docStore driven.DocumentStore,
	persistence *Persistence,
	notifier driven.Notifier,
	opts ...Option,
) *DocumentService {
	return &DocumentService{
		docStore:    docStore,
		persistence: persistence,
		notifier:    notifier,
		opts:        newOptions(opts),
	}
}

// Add stores one upload as a new document.
func (s *DocumentService) Add(ctx context.Context, upload domain.Upload) (*domain.Document, error) {
	if !domain.IsAcceptedType(upload.Type) {
		err := &domain.UnsupportedTypeError{Name: upload.Name, Type: upload.Type}
		logger.Warn("rejected upload %s: %v", upload.Name, err)
		notify(s.notifier, domain.Failure(msgUnsupportedType, err))
		return nil, err
	}

	doc := domain.Document{
		ID:         s.opts.newID(),
		Name:       upload.Name,
		Size:       int64(len(upload.Data)),
		Type:       upload.Type,
		UploadDate: identity.Format(s.opts.now()),
		Content:    datauri.Encode(upload.Type, upload.Data),
	}

	err := commit(ctx, s.persistence, func(ctx context.Context) error {
		return s.docStore.Append(ctx, doc)
	})
	if err != nil {
		err = fmt.Errorf("store document %s: %w", upload.Name, err)
		notify(s.notifier, domain.Failure(fmt.Sprintf("Failed to upload %s", upload.Name), err))
		return nil, err
	}

	logger.Debug("stored document %s (%s, %d bytes)", doc.ID, doc.Type, doc.Size)
	notify(s.notifier, domain.Success(fmt.Sprintf("%s uploaded successfully!", doc.Name)))
	return &doc, nil
}

// Upload reads every file concurrently and stores the accepted ones.
// A failed read only affects its own file. Documents are appended in
// submission order regardless of which read finished first.
func (s *DocumentService) Upload(ctx context.Context, files []driven.FileHandle) []domain.UploadResult {
	uploads := make([]domain.Upload, len(files))
	readErrs := make([]error, len(files))

	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, file driven.FileHandle) {
			defer wg.Done()
			uploads[i], readErrs[i] = readUpload(file)
		}(i, file)
	}
	wg.Wait()

	results := make([]domain.UploadResult, len(files))
	for i, file := range files {
		results[i].Name = file.Name()
		if readErrs[i] != nil {
			logger.Warn("reading %s: %v", file.Name(), readErrs[i])
			notify(s.notifier, domain.Failure(fmt.Sprintf("Failed to read %s", file.Name()), readErrs[i]))
			results[i].Err = readErrs[i]
			continue
		}
		results[i].Document, results[i].Err = s.Add(ctx, uploads[i])
	}
	return results
}

// readUpload reads a file handle fully.
// Unsupported types are not read at all.
func readUpload(file driven.FileHandle) (domain.Upload, error) {
	upload := domain.Upload{Name: file.Name(), Type: file.Type()}
	if !domain.IsAcceptedType(upload.Type) {
		return upload, nil
	}

	rc, err := file.Open()
	if err != nil {
		return upload, fmt.Errorf("open %s: %w", file.Name(), err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return upload, fmt.Errorf("read %s: %w", file.Name(), err)
	}
	upload.Data = data
	return upload, nil
}

// Remove deletes a document by ID. Unknown IDs are ignored.
func (s *DocumentService) Remove(ctx context.Context, id string) error {
	var removed bool
	err := commit(ctx, s.persistence, func(ctx context.Context) error {
		var err error
		removed, err = s.docStore.Delete(ctx, id)
		return err
	})
	if err != nil {
		return fmt.Errorf("remove document %s: %w", id, err)
	}
	if removed {
		notify(s.notifier, domain.Success(msgDocumentDeleted))
	}
	return nil
}

// List returns all documents in upload order.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	return s.docStore.List(ctx)
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	return s.docStore.Get(ctx, id)
}

// Content returns the decoded bytes and MIME type of a document.
func (s *DocumentService) Content(ctx context.Context, id string) ([]byte, string, error) {
	doc, err := s.docStore.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	data, mimeType, err := datauri.Decode(doc.Content)
	if err != nil {
		return nil, "", fmt.Errorf("decode document %s: %w", id, err)
	}
	return data, mimeType, nil
}
