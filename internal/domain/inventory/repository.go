package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockMoveRepository is append-only storage for stock moves. Moves
// are never deleted; landed-cost allocation may restate UnitCost on
// inbound moves through UpdateUnitCost.
type StockMoveRepository interface {
	Save(ctx context.Context, move *StockMove) error
	FindByDocument(ctx context.Context, documentID uuid.UUID) ([]*StockMove, error)
	// OnHand sums signed quantities for the item, optionally scoped to
	// a single location.
	OnHand(ctx context.Context, itemID uuid.UUID, locationID *uuid.UUID) (decimal.Decimal, error)
	UpdateUnitCost(ctx context.Context, moveID uuid.UUID, unitCost decimal.Decimal) error
}

// LotRepository provides access to lot records.
type LotRepository interface {
	Save(ctx context.Context, lot *Lot) error
	FindByID(ctx context.Context, id uuid.UUID) (*Lot, error)
	FindByNumber(ctx context.Context, itemID uuid.UUID, number string) (*Lot, error)
}

// ItemRepository provides the item facts posting needs.
type ItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	Save(ctx context.Context, item *Item) error
}
