package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartnerRepository persists partner masters.
type PartnerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Partner, error)
	FindByCode(ctx context.Context, code string) (*Partner, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*Partner, error)
	Save(ctx context.Context, partner *Partner) error
	Update(ctx context.Context, partner *Partner) error
}

// CashAccountRepository persists cash/bank account masters.
type CashAccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CashAccount, error)
	FindByCode(ctx context.Context, code string) (*CashAccount, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*CashAccount, error)
	Save(ctx context.Context, account *CashAccount) error
	Update(ctx context.Context, account *CashAccount) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PartnerLedgerRepository persists partner ledger entries and their
// payment allocations.
type PartnerLedgerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PartnerLedgerEntry, error)
	FindByPartner(ctx context.Context, partnerID uuid.UUID) ([]*PartnerLedgerEntry, error)
	FindOpenByPartner(ctx context.Context, partnerID uuid.UUID) ([]*PartnerLedgerEntry, error)
	FindByDocument(ctx context.Context, documentID uuid.UUID) ([]*PartnerLedgerEntry, error)
	Save(ctx context.Context, entry *PartnerLedgerEntry) error
	Update(ctx context.Context, entry *PartnerLedgerEntry) error

	// OpenDebitTotal sums the outstanding debit exposure of a partner:
	// open debit entries minus allocations already applied to them.
	OpenDebitTotal(ctx context.Context, partnerID uuid.UUID) (decimal.Decimal, error)

	SaveAllocation(ctx context.Context, allocation *PaymentAllocation) error
	FindAllocationsByEntry(ctx context.Context, entryID uuid.UUID) ([]*PaymentAllocation, error)
	AllocatedAmount(ctx context.Context, entryID uuid.UUID) (decimal.Decimal, error)
}

// CashLedgerRepository persists cash ledger entries.
type CashLedgerRepository interface {
	FindByAccount(ctx context.Context, accountID uuid.UUID) ([]*CashLedgerEntry, error)
	FindByAccountUntil(ctx context.Context, accountID uuid.UUID, asOf time.Time) ([]*CashLedgerEntry, error)
	FindByDocument(ctx context.Context, documentID uuid.UUID) ([]*CashLedgerEntry, error)
	Save(ctx context.Context, entry *CashLedgerEntry) error
	CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)
}
