package shared

import "github.com/shopspring/decimal"

// Canonical persistence precisions. Values are rounded exactly once, at
// the moment they are written, so recomputing from persisted values is
// idempotent.
const (
	MoneyPlaces    int32 = 2
	QuantityPlaces int32 = 3
	CostPlaces     int32 = 6
	RatePlaces     int32 = 6
)

// RoundMoney rounds a monetary amount to 2 decimal places (half up).
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// RoundQuantity rounds a base-unit quantity to 3 decimal places (half up).
func RoundQuantity(d decimal.Decimal) decimal.Decimal {
	return d.Round(QuantityPlaces)
}

// RoundCost rounds a per-unit cost to 6 decimal places (half up).
func RoundCost(d decimal.Decimal) decimal.Decimal {
	return d.Round(CostPlaces)
}

// RoundRate rounds an FX rate to 6 decimal places (half up).
func RoundRate(d decimal.Decimal) decimal.Decimal {
	return d.Round(RatePlaces)
}
