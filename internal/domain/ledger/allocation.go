package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared"
)

// PaymentAllocation links a payment-side ledger entry to an
// invoice-side entry for part or all of its amount. Allocations are
// immutable; correcting one means deleting it and creating another.
type PaymentAllocation struct {
	shared.BaseEntity
	PartnerID      uuid.UUID
	InvoiceEntryID uuid.UUID
	PaymentEntryID uuid.UUID
	Amount         decimal.Decimal // TRY
	AllocatedAt    time.Time
}

// NewPaymentAllocation creates an allocation of the given positive
// amount. Cap checks against the open amount of either side belong to
// the allocation service, which sees both entries.
func NewPaymentAllocation(
	partnerID uuid.UUID,
	invoiceEntryID, paymentEntryID uuid.UUID,
	amount decimal.Decimal,
) (*PaymentAllocation, error) {
	if partnerID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Allocation partner cannot be empty")
	}
	if invoiceEntryID == uuid.Nil || paymentEntryID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Allocation must reference both an invoice and a payment entry")
	}
	if invoiceEntryID == paymentEntryID {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Allocation cannot match an entry against itself")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Allocation amount must be positive")
	}

	return &PaymentAllocation{
		BaseEntity:     shared.NewBaseEntity(),
		PartnerID:      partnerID,
		InvoiceEntryID: invoiceEntryID,
		PaymentEntryID: paymentEntryID,
		Amount:         shared.RoundMoney(amount),
		AllocatedAt:    time.Now(),
	}, nil
}
