package document

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared/valueobject"
)

// Line is a child entity of Document. Lines are freely mutable while
// the document is a draft and frozen together with it on posting.
type Line struct {
	shared.BaseEntity
	DocumentID      uuid.UUID
	ItemID          uuid.UUID
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	VatRate         decimal.Decimal // percent, e.g. 20 for 20%
	UnitCode        string
	UnitCoefficient decimal.Decimal // 1 line unit = coefficient base units
	LotID           *uuid.UUID      // existing lot reference
	NewLotNumber    string          // request to create a lot during posting
	VariantID       *uuid.UUID
	SourceLocation  *uuid.UUID
	DestLocation    *uuid.UUID
	Description     string
}

// NewLine creates a document line with the mandatory fields. Optional
// references (lot, variant, locations) are set through the With helpers.
func NewLine(itemID uuid.UUID, quantity, unitPrice, vatRate decimal.Decimal, unitCode string, unitCoefficient decimal.Decimal) (*Line, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Line item cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Line quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Line unit price cannot be negative")
	}
	if vatRate.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Line VAT rate cannot be negative")
	}
	unit, err := valueobject.NewUnit(unitCode, unitCode, unitCoefficient)
	if err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Line unit invalid: "+err.Error())
	}

	return &Line{
		BaseEntity:      shared.NewBaseEntity(),
		ItemID:          itemID,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		VatRate:         vatRate,
		UnitCode:        unit.Code(),
		UnitCoefficient: unit.Coefficient(),
	}, nil
}

// NewServiceLine creates a non-stock line carrying a charge such as
// freight or customs. Service lines have no item and produce no stock
// moves; landed-cost allocation reads them off purchase invoices.
func NewServiceLine(description string, amount, vatRate decimal.Decimal) (*Line, error) {
	if description == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Service line description cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Service line amount must be positive")
	}
	if vatRate.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Line VAT rate cannot be negative")
	}
	return &Line{
		BaseEntity:      shared.NewBaseEntity(),
		Quantity:        decimal.NewFromInt(1),
		UnitPrice:       amount,
		VatRate:         vatRate,
		UnitCode:        ServiceUnitCode,
		UnitCoefficient: decimal.NewFromInt(1),
		Description:     description,
	}, nil
}

// ServiceUnitCode is the unit carried by non-stock service lines.
const ServiceUnitCode = "SVC"

// IsService returns true for non-stock charge lines.
func (l *Line) IsService() bool {
	return l.ItemID == uuid.Nil
}

// WithLot references an existing lot.
func (l *Line) WithLot(lotID uuid.UUID) *Line {
	l.LotID = &lotID
	return l
}

// WithNewLot requests creation of a new lot during posting.
func (l *Line) WithNewLot(lotNumber string) *Line {
	l.NewLotNumber = lotNumber
	return l
}

// WithVariant references a product variant.
func (l *Line) WithVariant(variantID uuid.UUID) *Line {
	l.VariantID = &variantID
	return l
}

// WithLocations sets the source and/or destination location.
func (l *Line) WithLocations(source, dest *uuid.UUID) *Line {
	l.SourceLocation = source
	l.DestLocation = dest
	return l
}

// WithDescription sets the free-text description.
func (l *Line) WithDescription(desc string) *Line {
	l.Description = desc
	return l
}

// Unit returns the line's unit of measure. Line construction goes
// through the same value object, so the stored code and coefficient
// are always valid.
func (l *Line) Unit() valueobject.Unit {
	return valueobject.MustNewUnit(l.UnitCode, l.UnitCode, l.UnitCoefficient)
}

// BaseQuantity returns the quantity expressed in the item's base unit.
func (l *Line) BaseQuantity() decimal.Decimal {
	return l.Unit().ConvertToBase(l.Quantity)
}

// NetAmount returns quantity x unit price in document currency,
// before VAT. Unrounded; rounding happens at persistence.
func (l *Line) NetAmount() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// GrossAmount returns the VAT-inclusive line amount in document
// currency. Unrounded; rounding happens at persistence.
func (l *Line) GrossAmount() decimal.Decimal {
	vat := decimal.NewFromInt(1).Add(l.VatRate.Div(decimal.NewFromInt(100)))
	return l.NetAmount().Mul(vat)
}

// Validate checks the line against the requirements of the document
// type it belongs to. Violations are validation errors raised before
// any posting transaction starts.
func (l *Line) Validate(docType Type) error {
	traits := docType.Traits()

	if l.IsService() {
		if traits.IsTransfer || traits.RequiresVariant {
			return shared.NewDomainError("VALIDATION_ERROR", "Service lines are not allowed on stock-only document types")
		}
		if l.LotID != nil || l.NewLotNumber != "" || l.VariantID != nil {
			return shared.NewDomainError("VALIDATION_ERROR", "Service lines cannot carry stock references")
		}
		return nil
	}

	if l.LotID != nil && l.NewLotNumber != "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Line may reference an existing lot or request a new one, not both")
	}

	if traits.IsTransfer {
		if l.SourceLocation == nil || l.DestLocation == nil {
			return shared.NewDomainError("VALIDATION_ERROR", "Transfer line requires both source and destination locations")
		}
		if *l.SourceLocation == *l.DestLocation {
			return shared.NewDomainError("VALIDATION_ERROR", "Transfer source and destination locations must differ")
		}
	}

	if traits.RequiresVariant && l.VariantID == nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Production line requires a product variant")
	}

	return nil
}
