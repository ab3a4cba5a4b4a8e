package ledger

import (
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared/valueobject"
)

// CashAccount is the master record of a cash or bank account.
type CashAccount struct {
	shared.BaseAggregateRoot
	Code     string
	Name     string
	Currency valueobject.Currency
	Active   bool
}

// NewCashAccount creates a cash account master record.
func NewCashAccount(code, name string, currency valueobject.Currency) (*CashAccount, error) {
	if code == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Cash account code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Cash account name cannot be empty")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	return &CashAccount{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Currency:          currency,
		Active:            true,
	}, nil
}

// Deactivate closes the account for new postings. Existing entries
// are untouched.
func (a *CashAccount) Deactivate() {
	a.Active = false
	a.IncrementVersion()
}
