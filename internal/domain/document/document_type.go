package document

// Type represents the business type of a document.
// The set is closed: behavior during posting is derived from the
// traits table below, never from string comparisons elsewhere.
type Type string

const (
	TypeSalesInvoice    Type = "SALES_INVOICE"
	TypePurchaseInvoice Type = "PURCHASE_INVOICE"
	TypeAdjustmentIn    Type = "ADJUSTMENT_IN"
	TypeAdjustmentOut   Type = "ADJUSTMENT_OUT"
	TypeTransfer        Type = "TRANSFER"
	TypeProduction      Type = "PRODUCTION"
	TypeQuote           Type = "QUOTE"
	TypeSalesOrder      Type = "SALES_ORDER"
	TypeDispatch        Type = "DISPATCH"
	TypeCashReceipt     Type = "CASH_RECEIPT"
	TypeCashPayment     Type = "CASH_PAYMENT"

	// TypeProductionConsumption books the components consumed by a
	// production run; TypeProduction books the finished output.
	TypeProductionConsumption Type = "PRODUCTION_CONSUMPTION"
)

// String returns the string representation of Type
func (t Type) String() string {
	return string(t)
}

// StockDirection is the sign a document type applies to stock
// quantities: +1 incoming, -1 outgoing, 0 no stock effect.
// Transfers are special-cased: each line produces an outgoing move at
// the source location and an incoming move at the destination.
type StockDirection int

const (
	DirectionNone StockDirection = 0
	DirectionIn   StockDirection = 1
	DirectionOut  StockDirection = -1
)

// Traits describes how a document type behaves when posted.
type Traits struct {
	AffectsStock         bool
	Direction            StockDirection
	IsTransfer           bool
	AffectsPartnerLedger bool
	AffectsCashLedger    bool
	RequiresPartner      bool
	RequiresCashAccount  bool
	CreatesPartnerDebt   bool
	RequiresLocations    bool
	RequiresVariant      bool
}

var typeTraits = map[Type]Traits{
	TypeSalesInvoice: {
		AffectsStock:         true,
		Direction:            DirectionOut,
		AffectsPartnerLedger: true,
		RequiresPartner:      true,
		CreatesPartnerDebt:   true,
	},
	TypePurchaseInvoice: {
		AffectsStock:         true,
		Direction:            DirectionIn,
		AffectsPartnerLedger: true,
		RequiresPartner:      true,
	},
	TypeAdjustmentIn: {
		AffectsStock: true,
		Direction:    DirectionIn,
	},
	TypeAdjustmentOut: {
		AffectsStock: true,
		Direction:    DirectionOut,
	},
	TypeTransfer: {
		AffectsStock:      true,
		IsTransfer:        true,
		RequiresLocations: true,
	},
	TypeProduction: {
		AffectsStock:    true,
		Direction:       DirectionIn,
		RequiresVariant: true,
	},
	TypeProductionConsumption: {
		AffectsStock: true,
		Direction:    DirectionOut,
	},
	TypeQuote:      {},
	TypeSalesOrder: {RequiresPartner: true},
	TypeDispatch: {
		AffectsStock:    true,
		Direction:       DirectionOut,
		RequiresPartner: true,
	},
	TypeCashReceipt: {
		AffectsCashLedger:   true,
		RequiresCashAccount: true,
	},
	TypeCashPayment: {
		AffectsCashLedger:   true,
		RequiresCashAccount: true,
	},
}

// IsValid returns true if the document type is part of the closed set.
func (t Type) IsValid() bool {
	_, ok := typeTraits[t]
	return ok
}

// Traits returns the posting behavior of the document type.
// Unknown types return the zero Traits (no effects anywhere).
func (t Type) Traits() Traits {
	return typeTraits[t]
}

// AffectsStock returns true if posting this type writes stock moves.
func (t Type) AffectsStock() bool {
	return typeTraits[t].AffectsStock
}

// AffectsPartnerLedger returns true if posting writes partner entries.
func (t Type) AffectsPartnerLedger() bool {
	return typeTraits[t].AffectsPartnerLedger
}

// AffectsCashLedger returns true if posting writes cash entries.
func (t Type) AffectsCashLedger() bool {
	return typeTraits[t].AffectsCashLedger
}

// CreatesPartnerDebt returns true if posting increases the partner's
// open exposure, which makes the credit check mandatory.
func (t Type) CreatesPartnerDebt() bool {
	return typeTraits[t].CreatesPartnerDebt
}
