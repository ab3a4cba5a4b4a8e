package inventory

import (
	"github.com/google/uuid"

	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared"
)

// Lot identifies a tracked batch of an item. Lots are created either
// through master data maintenance or on the fly by a posting line that
// carries a new-lot request.
type Lot struct {
	shared.BaseEntity
	ItemID uuid.UUID
	Number string
}

// NewLot creates a lot record for an item.
func NewLot(itemID uuid.UUID, number string) (*Lot, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Lot item cannot be empty")
	}
	if number == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Lot number cannot be empty")
	}
	return &Lot{
		BaseEntity: shared.NewBaseEntity(),
		ItemID:     itemID,
		Number:     number,
	}, nil
}
