package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared"
)

// EntryStatus tracks whether a partner ledger entry is still open for
// allocation. Entries flip to Closed only through the allocation
// service, once fully matched.
type EntryStatus string

const (
	EntryStatusOpen   EntryStatus = "OPEN"
	EntryStatusClosed EntryStatus = "CLOSED"
)

// IsValid returns true if the status is part of the closed set.
func (s EntryStatus) IsValid() bool {
	return s == EntryStatusOpen || s == EntryStatusClosed
}

// PartnerLedgerEntry is an immutable debit/credit record against a
// partner's sub-ledger. Debit and Credit are in document currency;
// AmountTry is the reporting-currency magnitude all aging, credit and
// allocation math runs on. Only Status may change after creation.
type PartnerLedgerEntry struct {
	shared.BaseEntity
	PartnerID  uuid.UUID
	DocumentID uuid.UUID
	EntryDate  time.Time
	DueDate    *time.Time
	Debit      decimal.Decimal
	Credit     decimal.Decimal
	AmountTry  decimal.Decimal // abs reporting-currency amount, rounded at creation
	Status     EntryStatus
}

// NewPartnerLedgerEntry creates an open entry. Exactly one of debit or
// credit must be positive; amountTry is the reporting-currency value
// of that side and is rounded here, once.
func NewPartnerLedgerEntry(
	partnerID uuid.UUID,
	documentID uuid.UUID,
	entryDate time.Time,
	debit, credit decimal.Decimal,
	amountTry decimal.Decimal,
) (*PartnerLedgerEntry, error) {
	if partnerID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Ledger entry partner cannot be empty")
	}
	if documentID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Ledger entry document cannot be empty")
	}
	if debit.IsNegative() || credit.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Debit and credit cannot be negative")
	}
	if debit.IsPositive() == credit.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Exactly one of debit or credit must be positive")
	}
	if amountTry.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Reporting-currency amount must be positive")
	}

	return &PartnerLedgerEntry{
		BaseEntity: shared.NewBaseEntity(),
		PartnerID:  partnerID,
		DocumentID: documentID,
		EntryDate:  entryDate,
		Debit:      shared.RoundMoney(debit),
		Credit:     shared.RoundMoney(credit),
		AmountTry:  shared.RoundMoney(amountTry),
		Status:     EntryStatusOpen,
	}, nil
}

// WithDueDate sets the payment due date.
func (e *PartnerLedgerEntry) WithDueDate(due time.Time) *PartnerLedgerEntry {
	e.DueDate = &due
	return e
}

// IsDebit returns true for debit-bearing (invoice-side) entries.
func (e *PartnerLedgerEntry) IsDebit() bool {
	return e.Debit.IsPositive()
}

// IsOpen returns true while the entry can still receive allocations.
func (e *PartnerLedgerEntry) IsOpen() bool {
	return e.Status == EntryStatusOpen
}

// Close marks the entry fully allocated.
func (e *PartnerLedgerEntry) Close() error {
	if e.Status == EntryStatusClosed {
		return shared.NewDomainError("INVALID_STATE", "Ledger entry is already closed")
	}
	e.Status = EntryStatusClosed
	e.UpdatedAt = time.Now()
	return nil
}

// Outstanding returns the unallocated portion of the entry given the
// amount already allocated against it.
func (e *PartnerLedgerEntry) Outstanding(allocated decimal.Decimal) decimal.Decimal {
	return e.AmountTry.Sub(allocated)
}
