package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared"
)

// EnsureCreditAvailable checks whether a partner can take on more debt.
// A partner without a limit always passes. Otherwise the current open
// exposure plus the incoming amount must not exceed the limit; equality
// is allowed.
func EnsureCreditAvailable(partner *Partner, exposure, incoming decimal.Decimal) error {
	if !partner.HasCreditLimit() {
		return nil
	}
	projected := exposure.Add(incoming)
	if projected.GreaterThan(*partner.CreditLimitTry) {
		return shared.NewDomainError("CREDIT_LIMIT_EXCEEDED", fmt.Sprintf(
			"Partner %s credit limit %s exceeded: open %s + incoming %s",
			partner.Code, partner.CreditLimitTry.String(), exposure.String(), incoming.String()))
	}
	return nil
}
