package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared"
)

// Item is the master record of a stocked product. Stock quantities are
// tracked in the item's base unit; document lines in other units
// convert through their coefficient.
type Item struct {
	shared.BaseAggregateRoot
	Code         string
	Name         string
	BaseUnitCode string
	UnitCost     decimal.Decimal // current per-base-unit cost in TRY
	Active       bool
}

// NewItem creates an item master record.
func NewItem(code, name, baseUnitCode string) (*Item, error) {
	if code == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Item code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Item name cannot be empty")
	}
	if baseUnitCode == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Item base unit cannot be empty")
	}
	return &Item{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		BaseUnitCode:      baseUnitCode,
		UnitCost:          decimal.Zero,
		Active:            true,
	}, nil
}

// SetUnitCost restates the item's current unit cost (rounded once).
func (i *Item) SetUnitCost(cost decimal.Decimal) error {
	if cost.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Item unit cost cannot be negative")
	}
	i.UnitCost = shared.RoundCost(cost)
	i.IncrementVersion()
	return nil
}
