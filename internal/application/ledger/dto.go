package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/ledger"
)

// AgingLineResponse is one open entry in an aging report.
type AgingLineResponse struct {
	EntryID     uuid.UUID       `json:"entry_id"`
	DocumentID  uuid.UUID       `json:"document_id"`
	EntryDate   time.Time       `json:"entry_date"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Bucket      string          `json:"bucket"`
}

// AgingReportResponse is a partner's bucketed open exposure.
type AgingReportResponse struct {
	PartnerID uuid.UUID                  `json:"partner_id"`
	AsOf      time.Time                  `json:"as_of"`
	Buckets   map[string]decimal.Decimal `json:"buckets"`
	Total     decimal.Decimal            `json:"total"`
	Lines     []AgingLineResponse        `json:"lines"`
}

// ToAgingReportResponse converts a domain aging report.
func ToAgingReportResponse(partnerID uuid.UUID, report *ledger.AgingReport) *AgingReportResponse {
	resp := &AgingReportResponse{
		PartnerID: partnerID,
		AsOf:      report.AsOf,
		Buckets:   make(map[string]decimal.Decimal, len(report.Buckets)),
		Total:     report.Total,
		Lines:     make([]AgingLineResponse, 0, len(report.Lines)),
	}
	for bucket, amount := range report.Buckets {
		resp.Buckets[string(bucket)] = amount
	}
	for _, line := range report.Lines {
		resp.Lines = append(resp.Lines, AgingLineResponse{
			EntryID:     line.Entry.ID,
			DocumentID:  line.Entry.DocumentID,
			EntryDate:   line.Entry.EntryDate,
			DueDate:     line.Entry.DueDate,
			Outstanding: line.Outstanding,
			Bucket:      string(line.Bucket),
		})
	}
	return resp
}

// CreditCheckRequest asks whether a partner can absorb more debt.
type CreditCheckRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// CreditCheckResponse reports the outcome of a credit check.
type CreditCheckResponse struct {
	PartnerID   uuid.UUID        `json:"partner_id"`
	Exposure    decimal.Decimal  `json:"exposure"`
	Incoming    decimal.Decimal  `json:"incoming"`
	CreditLimit *decimal.Decimal `json:"credit_limit,omitempty"`
	Allowed     bool             `json:"allowed"`
}

// AllocateRequest matches a payment entry against an invoice entry.
type AllocateRequest struct {
	InvoiceEntryID uuid.UUID       `json:"invoice_entry_id" binding:"required"`
	PaymentEntryID uuid.UUID       `json:"payment_entry_id" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
}

// AllocationResponse is the persisted allocation.
type AllocationResponse struct {
	ID             uuid.UUID       `json:"id"`
	PartnerID      uuid.UUID       `json:"partner_id"`
	InvoiceEntryID uuid.UUID       `json:"invoice_entry_id"`
	PaymentEntryID uuid.UUID       `json:"payment_entry_id"`
	Amount         decimal.Decimal `json:"amount"`
	InvoiceClosed  bool            `json:"invoice_closed"`
	PaymentClosed  bool            `json:"payment_closed"`
	AllocatedAt    time.Time       `json:"allocated_at"`
}

// CreateCashAccountRequest creates a cash/bank account master record.
type CreateCashAccountRequest struct {
	Code     string `json:"code" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Currency string `json:"currency" binding:"required,len=3"`
}

// CashAccountResponse represents a cash account in API responses.
type CashAccountResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// ToCashAccountResponse converts a cash account master record.
func ToCashAccountResponse(account *ledger.CashAccount) *CashAccountResponse {
	return &CashAccountResponse{
		ID:        account.ID,
		Code:      account.Code,
		Name:      account.Name,
		Currency:  string(account.Currency),
		Active:    account.Active,
		CreatedAt: account.CreatedAt,
	}
}

// CashMovementRequest is a direct receipt or payment against an
// account. Amount is in the request currency; FxRate converts it to
// the reporting currency (zero defaults to 1).
type CashMovementRequest struct {
	Date        time.Time       `json:"date" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Currency    string          `json:"currency" binding:"required,len=3"`
	FxRate      decimal.Decimal `json:"fx_rate"`
	Description string          `json:"description" binding:"required"`
}

// CashMovementResponse identifies the ledger entry and the backing
// document a direct receipt or payment produced.
type CashMovementResponse struct {
	LedgerEntryID uuid.UUID       `json:"ledger_entry_id"`
	DocumentID    uuid.UUID       `json:"document_id"`
	Number        string          `json:"number"`
	EntryDate     time.Time       `json:"entry_date"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}

// CashEntryResponse is one statement line with its running balance.
type CashEntryResponse struct {
	ID           uuid.UUID       `json:"id"`
	DocumentID   uuid.UUID       `json:"document_id"`
	DocumentType string          `json:"document_type"`
	EntryDate    time.Time       `json:"entry_date"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	Balance      decimal.Decimal `json:"balance"`
}

// BalanceResponse is an account balance as of a date.
type BalanceResponse struct {
	AccountID uuid.UUID       `json:"account_id"`
	AsOf      time.Time       `json:"as_of"`
	Balance   decimal.Decimal `json:"balance"`
}

// CreatePartnerRequest creates a partner master record.
type CreatePartnerRequest struct {
	Code        string           `json:"code" binding:"required"`
	Name        string           `json:"name" binding:"required"`
	Currency    string           `json:"currency" binding:"required,len=3"`
	CreditLimit *decimal.Decimal `json:"credit_limit,omitempty"`
}

// PartnerResponse represents a partner in API responses.
type PartnerResponse struct {
	ID          uuid.UUID        `json:"id"`
	Code        string           `json:"code"`
	Name        string           `json:"name"`
	Currency    string           `json:"currency"`
	CreditLimit *decimal.Decimal `json:"credit_limit,omitempty"`
	Active      bool             `json:"active"`
	CreatedAt   time.Time        `json:"created_at"`
}

// ToPartnerResponse converts a partner master record.
func ToPartnerResponse(partner *ledger.Partner) *PartnerResponse {
	return &PartnerResponse{
		ID:          partner.ID,
		Code:        partner.Code,
		Name:        partner.Name,
		Currency:    string(partner.Currency),
		CreditLimit: partner.CreditLimitTry,
		Active:      partner.Active,
		CreatedAt:   partner.CreatedAt,
	}
}
