package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared"
)

// StockMove is an immutable record of a signed inventory movement in
// base units. Once created, moves cannot be modified - corrections are
// made with new compensating moves. The single exception is UnitCost,
// which landed-cost allocation may restate on inbound moves.
type StockMove struct {
	shared.BaseEntity
	ItemID         uuid.UUID
	Quantity       decimal.Decimal // signed, base unit, rounded at persistence
	UnitCost       decimal.Decimal // per base unit in TRY
	SourceLocation *uuid.UUID      // set for outgoing moves
	DestLocation   *uuid.UUID      // set for incoming moves
	LotID          *uuid.UUID
	VariantID      *uuid.UUID
	DocumentID     uuid.UUID
	DocumentLineID uuid.UUID
	MoveDate       time.Time
}

// NewStockMove creates a stock move. Quantity must be non-zero; its
// sign carries the direction. Quantity and cost are rounded to their
// persistence precisions here, once.
func NewStockMove(
	itemID uuid.UUID,
	quantity decimal.Decimal,
	unitCost decimal.Decimal,
	documentID uuid.UUID,
	documentLineID uuid.UUID,
	moveDate time.Time,
) (*StockMove, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Stock move item cannot be empty")
	}
	if quantity.IsZero() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Stock move quantity cannot be zero")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Stock move unit cost cannot be negative")
	}
	if documentID == uuid.Nil || documentLineID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Stock move requires an originating document line")
	}

	return &StockMove{
		BaseEntity:     shared.NewBaseEntity(),
		ItemID:         itemID,
		Quantity:       shared.RoundQuantity(quantity),
		UnitCost:       shared.RoundCost(unitCost),
		DocumentID:     documentID,
		DocumentLineID: documentLineID,
		MoveDate:       moveDate,
	}, nil
}

// WithSourceLocation sets the location stock leaves from.
func (m *StockMove) WithSourceLocation(locationID uuid.UUID) *StockMove {
	m.SourceLocation = &locationID
	return m
}

// WithDestLocation sets the location stock arrives at.
func (m *StockMove) WithDestLocation(locationID uuid.UUID) *StockMove {
	m.DestLocation = &locationID
	return m
}

// WithLot references the lot the moved stock belongs to.
func (m *StockMove) WithLot(lotID uuid.UUID) *StockMove {
	m.LotID = &lotID
	return m
}

// WithVariant references the product variant moved.
func (m *StockMove) WithVariant(variantID uuid.UUID) *StockMove {
	m.VariantID = &variantID
	return m
}

// IsInbound returns true if the move increases stock.
func (m *StockMove) IsInbound() bool {
	return m.Quantity.IsPositive()
}

// Location returns the location whose on-hand this move changes:
// destination for inbound, source for outbound.
func (m *StockMove) Location() *uuid.UUID {
	if m.IsInbound() {
		return m.DestLocation
	}
	return m.SourceLocation
}

// Value returns quantity x unit cost (signed).
func (m *StockMove) Value() decimal.Decimal {
	return m.Quantity.Mul(m.UnitCost)
}

// EnsureStockNotNegative is the non-negative stock guard: it fails
// with INSUFFICIENT_STOCK iff onHand + delta < 0.
func EnsureStockNotNegative(onHand, delta decimal.Decimal) error {
	if onHand.Add(delta).IsNegative() {
		return shared.ErrInsufficientStock
	}
	return nil
}
