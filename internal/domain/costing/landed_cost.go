package costing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/inventory"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared"
)

// Adjustment records one stock move's unit cost restatement, keeping
// the prior cost so the application can be reversed exactly.
type Adjustment struct {
	shared.BaseEntity
	ApplicationID    uuid.UUID
	StockMoveID      uuid.UUID
	PreviousUnitCost decimal.Decimal
	NewUnitCost      decimal.Decimal
}

// Application is the record of one landed-cost distribution: which
// invoice's extra costs were spread over which receipts' moves. Its
// existence blocks a second application for the same invoice until it
// is reversed.
type Application struct {
	shared.BaseEntity
	InvoiceDocumentID  uuid.UUID
	ReceiptDocumentIDs []uuid.UUID
	ExtraCost          decimal.Decimal // TRY total distributed
	AppliedAt          time.Time
	Adjustments        []Adjustment
}

// NewApplication creates a landed-cost application record.
func NewApplication(invoiceID uuid.UUID, receiptIDs []uuid.UUID, extraCost decimal.Decimal) (*Application, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Landed cost invoice cannot be empty")
	}
	if len(receiptIDs) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Landed cost requires at least one goods receipt")
	}
	if extraCost.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Landed cost amount must be positive")
	}
	return &Application{
		BaseEntity:         shared.NewBaseEntity(),
		InvoiceDocumentID:  invoiceID,
		ReceiptDocumentIDs: receiptIDs,
		ExtraCost:          shared.RoundMoney(extraCost),
		AppliedAt:          time.Now(),
	}, nil
}

// Distribute spreads extraCost across the inbound moves proportionally
// by received value (quantity × unit cost) and returns the resulting
// unit-cost adjustments. The last move with positive value absorbs the
// rounding remainder so the full amount is always distributed. Moves
// with zero value get no share; a receipt set with zero total value is
// a validation error.
func (a *Application) Distribute(moves []*inventory.StockMove) error {
	if len(moves) == 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "No inbound stock moves to distribute landed cost over")
	}

	totalValue := decimal.Zero
	for _, m := range moves {
		totalValue = totalValue.Add(m.Value())
	}
	if totalValue.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("VALIDATION_ERROR", "Received value is zero; landed cost cannot be distributed")
	}

	lastValued := 0
	for i, m := range moves {
		if m.Value().IsPositive() {
			lastValued = i
		}
	}

	a.Adjustments = make([]Adjustment, 0, len(moves))
	remaining := a.ExtraCost
	for i, m := range moves {
		var share decimal.Decimal
		switch {
		case i == lastValued:
			share = remaining
		case m.Value().IsPositive():
			share = a.ExtraCost.Mul(m.Value()).Div(totalValue)
			remaining = remaining.Sub(share)
		default:
			share = decimal.Zero
		}
		perUnit := decimal.Zero
		if share.IsPositive() {
			perUnit = share.Div(m.Quantity)
		}
		newCost := shared.RoundCost(m.UnitCost.Add(perUnit))
		a.Adjustments = append(a.Adjustments, Adjustment{
			BaseEntity:       shared.NewBaseEntity(),
			ApplicationID:    a.ID,
			StockMoveID:      m.ID,
			PreviousUnitCost: m.UnitCost,
			NewUnitCost:      newCost,
		})
	}
	return nil
}
