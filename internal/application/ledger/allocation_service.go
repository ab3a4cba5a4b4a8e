package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mertekinci24/FemmeERP-sub000/internal/application/posting"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/ledger"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared"
)

// AllocationService matches payments against invoices on a partner's
// ledger. Allocation and the status flips of fully-matched entries
// commit together or not at all.
type AllocationService struct {
	scope posting.TransactionScope
}

// NewAllocationService creates an AllocationService.
func NewAllocationService(scope posting.TransactionScope) *AllocationService {
	return &AllocationService{scope: scope}
}

// Allocate applies the amount of a payment entry against an invoice
// entry. Both entries must be open, belong to the same partner, and
// sit on opposite sides; the cumulative allocations on either side
// never exceed that side's amount. Over-allocation rejects with
// nothing written.
func (s *AllocationService) Allocate(ctx context.Context, req *AllocateRequest) (*AllocationResponse, error) {
	var resp *AllocationResponse
	err := s.scope.Execute(ctx, func(repos posting.TransactionalRepositories) error {
		invoice, err := repos.PartnerLedger().FindByID(ctx, req.InvoiceEntryID)
		if err != nil {
			return err
		}
		payment, err := repos.PartnerLedger().FindByID(ctx, req.PaymentEntryID)
		if err != nil {
			return err
		}

		if invoice.PartnerID != payment.PartnerID {
			return shared.NewDomainError("VALIDATION_ERROR", "Entries belong to different partners")
		}
		if !invoice.IsOpen() || !payment.IsOpen() {
			return shared.NewDomainError("INVALID_STATE", "Both entries must be open for allocation")
		}
		if !invoice.IsDebit() || payment.IsDebit() {
			return shared.NewDomainError("VALIDATION_ERROR", "Allocation requires a debit invoice entry and a credit payment entry")
		}

		invoiceAllocated, err := repos.PartnerLedger().AllocatedAmount(ctx, invoice.ID)
		if err != nil {
			return err
		}
		paymentAllocated, err := repos.PartnerLedger().AllocatedAmount(ctx, payment.ID)
		if err != nil {
			return err
		}
		if req.Amount.GreaterThan(invoice.Outstanding(invoiceAllocated)) {
			return shared.NewDomainError("VALIDATION_ERROR", "Allocation exceeds the invoice's open amount")
		}
		if req.Amount.GreaterThan(payment.Outstanding(paymentAllocated)) {
			return shared.NewDomainError("VALIDATION_ERROR", "Allocation exceeds the payment's open amount")
		}

		allocation, err := ledger.NewPaymentAllocation(invoice.PartnerID, invoice.ID, payment.ID, req.Amount)
		if err != nil {
			return err
		}
		if err := repos.PartnerLedger().SaveAllocation(ctx, allocation); err != nil {
			return err
		}

		invoiceClosed, err := s.closeIfExhausted(ctx, repos, invoice, invoiceAllocated.Add(allocation.Amount))
		if err != nil {
			return err
		}
		paymentClosed, err := s.closeIfExhausted(ctx, repos, payment, paymentAllocated.Add(allocation.Amount))
		if err != nil {
			return err
		}

		resp = &AllocationResponse{
			ID:             allocation.ID,
			PartnerID:      allocation.PartnerID,
			InvoiceEntryID: allocation.InvoiceEntryID,
			PaymentEntryID: allocation.PaymentEntryID,
			Amount:         allocation.Amount,
			InvoiceClosed:  invoiceClosed,
			PaymentClosed:  paymentClosed,
			AllocatedAt:    allocation.AllocatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// closeIfExhausted flips an entry to Closed once allocations cover its
// full amount.
func (s *AllocationService) closeIfExhausted(ctx context.Context, repos posting.TransactionalRepositories, entry *ledger.PartnerLedgerEntry, allocated decimal.Decimal) (bool, error) {
	if allocated.LessThan(entry.AmountTry) {
		return false, nil
	}
	if err := entry.Close(); err != nil {
		return false, err
	}
	if err := repos.PartnerLedger().Update(ctx, entry); err != nil {
		return false, err
	}
	return true, nil
}
