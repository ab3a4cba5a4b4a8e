package posting

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/document"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared"
)

// allowedConversions restricts which document type pairs convert into
// each other. Conversions always produce a fresh draft; nothing posts.
var allowedConversions = map[document.Type][]document.Type{
	document.TypeQuote:      {document.TypeSalesOrder},
	document.TypeSalesOrder: {document.TypeDispatch},
	document.TypeDispatch:   {document.TypeSalesInvoice},
}

// ConversionService turns one document into the next step of its flow,
// e.g. a sales order into a dispatch note.
type ConversionService struct {
	scope TransactionScope
}

// NewConversionService creates a ConversionService.
func NewConversionService(scope TransactionScope) *ConversionService {
	return &ConversionService{scope: scope}
}

// Convert creates a new draft of the target type pre-populated from the
// source document's header and lines. The source must not be cancelled
// and the pair must be a known flow step.
func (s *ConversionService) Convert(ctx context.Context, sourceID uuid.UUID, target document.Type, date time.Time) (*DocumentResponse, error) {
	if !target.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unknown target document type")
	}
	if date.IsZero() {
		date = time.Now()
	}

	var resp *DocumentResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		source, err := repos.Documents().FindByID(ctx, sourceID)
		if err != nil {
			return err
		}
		if source.Status == document.StatusCancelled {
			return shared.NewDomainError("INVALID_STATE", "Cannot convert a cancelled document")
		}
		if !conversionAllowed(source.Type, target) {
			return shared.NewDomainError("VALIDATION_ERROR", "Unsupported document conversion")
		}

		draft, err := source.ConvertTo(target, date)
		if err != nil {
			return err
		}
		number, err := repos.Documents().NextNumber(ctx, target, date.Year())
		if err != nil {
			return err
		}
		draft.WithNumber(number)
		if err := repos.Documents().Save(ctx, draft); err != nil {
			return err
		}
		resp = ToDocumentResponse(draft)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func conversionAllowed(source, target document.Type) bool {
	for _, t := range allowedConversions[source] {
		if t == target {
			return true
		}
	}
	return false
}
