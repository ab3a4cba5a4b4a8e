package ledger

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared"
)

// CashLedgerEntry is an immutable movement on a cash or bank account.
// Amounts are in the reporting currency. Balance is a derived snapshot
// filled in by ComputeRunningBalances; it is never an input.
type CashLedgerEntry struct {
	shared.BaseEntity
	AccountID    uuid.UUID
	DocumentID   uuid.UUID
	DocumentType string
	EntryDate    time.Time
	Debit        decimal.Decimal // money in
	Credit       decimal.Decimal // money out
	Balance      decimal.Decimal
}

// NewCashLedgerEntry creates an entry carrying exactly one of debit
// (inflow) or credit (outflow).
func NewCashLedgerEntry(
	accountID uuid.UUID,
	documentID uuid.UUID,
	documentType string,
	entryDate time.Time,
	debit, credit decimal.Decimal,
) (*CashLedgerEntry, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Cash entry account cannot be empty")
	}
	if debit.IsNegative() || credit.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Debit and credit cannot be negative")
	}
	if debit.IsPositive() == credit.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Exactly one of debit or credit must be positive")
	}

	return &CashLedgerEntry{
		BaseEntity:   shared.NewBaseEntity(),
		AccountID:    accountID,
		DocumentID:   documentID,
		DocumentType: documentType,
		EntryDate:    entryDate,
		Debit:        shared.RoundMoney(debit),
		Credit:       shared.RoundMoney(credit),
	}, nil
}

// Signed returns the entry's effect on the account balance.
func (e *CashLedgerEntry) Signed() decimal.Decimal {
	return e.Debit.Sub(e.Credit)
}

// sortCashEntries orders entries by entry date, breaking ties by entry
// id so the ordering is total and independent of insertion order.
func sortCashEntries(entries []*CashLedgerEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].EntryDate.Equal(entries[j].EntryDate) {
			return entries[i].ID.String() < entries[j].ID.String()
		}
		return entries[i].EntryDate.Before(entries[j].EntryDate)
	})
}

// ComputeRunningBalances sorts the entries by (date, id) and fills the
// Balance snapshot on each. The resulting balances depend only on the
// entries themselves, not on the order they were recorded in.
func ComputeRunningBalances(entries []*CashLedgerEntry) {
	sortCashEntries(entries)
	balance := decimal.Zero
	for _, e := range entries {
		balance = balance.Add(e.Signed())
		e.Balance = balance
	}
}

// BalanceAsOf returns the account balance including all entries dated
// on or before asOf.
func BalanceAsOf(entries []*CashLedgerEntry, asOf time.Time) decimal.Decimal {
	balance := decimal.Zero
	for _, e := range entries {
		if e.EntryDate.After(asOf) {
			continue
		}
		balance = balance.Add(e.Signed())
	}
	return balance
}
