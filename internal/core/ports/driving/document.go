package driving

import (
	"context"

	"github.com/custodia-labs/docket/internal/core/domain"
	"github.com/custodia-labs/docket/internal/core/ports/driven"
)

// DocumentService manages uploaded documents.
type DocumentService interface {
	// Add stores one upload. Rejected types return *domain.UnsupportedTypeError.
	Add(ctx context.Context, upload domain.Upload) (*domain.Document, error)

	// Upload reads and stores each file independently, keeping submission order.
	Upload(ctx context.Context, files []driven.FileHandle) []domain.UploadResult

	// Remove deletes a document; unknown IDs are ignored.
	Remove(ctx context.Context, id string) error

	// List returns all documents in upload order.
	List(ctx context.Context) ([]domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// Content decodes the stored bytes and MIME type of a document.
	Content(ctx context.Context, id string) ([]byte, string, error)
}
