package costing

import (
	"context"

	"github.com/google/uuid"
)

// ApplicationRepository persists landed-cost applications with their
// adjustments.
type ApplicationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Application, error)
	FindByInvoice(ctx context.Context, invoiceDocumentID uuid.UUID) ([]*Application, error)
	Save(ctx context.Context, application *Application) error
	Delete(ctx context.Context, id uuid.UUID) error
}
