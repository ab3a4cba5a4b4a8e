package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared/valueobject"
)

// Partner is the master record of a customer or supplier. A partner
// with a configured credit limit is subject to the credit policy check
// on every debt-creating posting.
type Partner struct {
	shared.BaseAggregateRoot
	Code           string
	Name           string
	Currency       valueobject.Currency
	CreditLimitTry *decimal.Decimal // nil means no limit
	Active         bool
}

// NewPartner creates a partner master record.
func NewPartner(code, name string, currency valueobject.Currency) (*Partner, error) {
	if code == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Partner code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Partner name cannot be empty")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	return &Partner{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Currency:          currency,
		Active:            true,
	}, nil
}

// SetCreditLimit configures the credit limit in reporting currency.
func (p *Partner) SetCreditLimit(limit decimal.Decimal) error {
	if limit.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Credit limit cannot be negative")
	}
	rounded := shared.RoundMoney(limit)
	p.CreditLimitTry = &rounded
	p.IncrementVersion()
	return nil
}

// ClearCreditLimit removes the credit limit.
func (p *Partner) ClearCreditLimit() {
	p.CreditLimitTry = nil
	p.IncrementVersion()
}

// HasCreditLimit returns true when a limit is configured.
func (p *Partner) HasCreditLimit() bool {
	return p.CreditLimitTry != nil
}
