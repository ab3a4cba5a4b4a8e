package document

import (
	"context"

	"github.com/google/uuid"
)

// Repository provides access to persisted documents.
type Repository interface {
	// FindByID loads a document with its lines.
	FindByID(ctx context.Context, id uuid.UUID) (*Document, error)
	// Save persists a new document with its lines.
	Save(ctx context.Context, doc *Document) error
	// Update persists a changed document under optimistic locking;
	// returns shared.ErrConcurrencyConflict when the stored version moved.
	Update(ctx context.Context, doc *Document) error
	// Delete removes a document and its lines.
	Delete(ctx context.Context, id uuid.UUID) error
	// NextNumber reserves the next document number for the type,
	// formatted TYPE-YYYY-NNNNN.
	NextNumber(ctx context.Context, docType Type, year int) (string, error)
}
