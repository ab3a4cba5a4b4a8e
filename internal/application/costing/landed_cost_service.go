package costing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mertekinci24/FemmeERP-sub000/internal/application/posting"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/costing"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/document"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/inventory"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared"
)

// ApplyRequest distributes a purchase invoice's extra-cost lines over
// the inbound moves of the listed goods receipts.
type ApplyRequest struct {
	InvoiceDocumentID  uuid.UUID   `json:"invoice_document_id" binding:"required"`
	ReceiptDocumentIDs []uuid.UUID `json:"receipt_document_ids" binding:"required,min=1"`
}

// AdjustmentResponse is one restated move cost.
type AdjustmentResponse struct {
	StockMoveID      uuid.UUID       `json:"stock_move_id"`
	PreviousUnitCost decimal.Decimal `json:"previous_unit_cost"`
	NewUnitCost      decimal.Decimal `json:"new_unit_cost"`
}

// ApplicationResponse is a persisted landed-cost application.
type ApplicationResponse struct {
	ID                 uuid.UUID            `json:"id"`
	InvoiceDocumentID  uuid.UUID            `json:"invoice_document_id"`
	ReceiptDocumentIDs []uuid.UUID          `json:"receipt_document_ids"`
	ExtraCost          decimal.Decimal      `json:"extra_cost"`
	AppliedAt          time.Time            `json:"applied_at"`
	Adjustments        []AdjustmentResponse `json:"adjustments"`
}

// LandedCostService spreads freight, customs and similar extra costs
// from a purchase invoice over received stock, restating the unit cost
// of the inbound moves. One application per invoice may be live at a
// time; applying again requires reversing first.
type LandedCostService struct {
	scope posting.TransactionScope
}

// NewLandedCostService creates a LandedCostService.
func NewLandedCostService(scope posting.TransactionScope) *LandedCostService {
	return &LandedCostService{scope: scope}
}

// Apply distributes the invoice's extra-cost lines (lines without an
// item reference carry no stock; their gross TRY value is the landed
// cost) across the inbound moves of the listed receipts, by received
// value.
func (s *LandedCostService) Apply(ctx context.Context, req *ApplyRequest) (*ApplicationResponse, error) {
	var resp *ApplicationResponse
	err := s.scope.Execute(ctx, func(repos posting.TransactionalRepositories) error {
		invoice, err := repos.Documents().FindByID(ctx, req.InvoiceDocumentID)
		if err != nil {
			return err
		}
		if invoice.Type != document.TypePurchaseInvoice {
			return shared.NewDomainError("VALIDATION_ERROR", "Landed cost source must be a purchase invoice")
		}
		if invoice.Status != document.StatusPosted {
			return shared.NewDomainError("INVALID_STATE", "Landed cost source invoice must be posted")
		}

		existing, err := repos.LandedCosts().FindByInvoice(ctx, invoice.ID)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return shared.NewDomainError("VALIDATION_ERROR", "Invoice already has a landed-cost application; reverse it first")
		}

		extraCost := extraCostTotal(invoice)
		if extraCost.LessThanOrEqual(decimal.Zero) {
			return shared.NewDomainError("VALIDATION_ERROR", "Invoice has no extra-cost lines to distribute")
		}

		moves, err := s.inboundMoves(ctx, repos, req.ReceiptDocumentIDs)
		if err != nil {
			return err
		}

		application, err := costing.NewApplication(invoice.ID, req.ReceiptDocumentIDs, extraCost)
		if err != nil {
			return err
		}
		if err := application.Distribute(moves); err != nil {
			return err
		}

		for _, adj := range application.Adjustments {
			if err := repos.StockMoves().UpdateUnitCost(ctx, adj.StockMoveID, adj.NewUnitCost); err != nil {
				return err
			}
		}
		if err := repos.LandedCosts().Save(ctx, application); err != nil {
			return err
		}
		resp = toApplicationResponse(application)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Reverse restores the unit costs recorded before an application and
// deletes the application record, making the invoice eligible for a
// fresh application.
func (s *LandedCostService) Reverse(ctx context.Context, applicationID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos posting.TransactionalRepositories) error {
		application, err := repos.LandedCosts().FindByID(ctx, applicationID)
		if err != nil {
			return err
		}
		for _, adj := range application.Adjustments {
			if err := repos.StockMoves().UpdateUnitCost(ctx, adj.StockMoveID, adj.PreviousUnitCost); err != nil {
				return err
			}
		}
		return repos.LandedCosts().Delete(ctx, application.ID)
	})
}

// inboundMoves collects the positive-quantity moves of the given
// posted receipt documents.
func (s *LandedCostService) inboundMoves(ctx context.Context, repos posting.TransactionalRepositories, receiptIDs []uuid.UUID) ([]*inventory.StockMove, error) {
	var moves []*inventory.StockMove
	for _, receiptID := range receiptIDs {
		receipt, err := repos.Documents().FindByID(ctx, receiptID)
		if err != nil {
			return nil, err
		}
		if receipt.Status != document.StatusPosted {
			return nil, shared.NewDomainError("INVALID_STATE", "Goods receipt must be posted before landed cost applies")
		}
		docMoves, err := repos.StockMoves().FindByDocument(ctx, receipt.ID)
		if err != nil {
			return nil, err
		}
		for _, m := range docMoves {
			if m.Quantity.IsPositive() {
				moves = append(moves, m)
			}
		}
	}
	return moves, nil
}

// extraCostTotal sums the gross TRY value of the invoice's service
// lines (freight, customs, insurance); those carry no item reference
// and never touch stock.
func extraCostTotal(invoice *document.Document) decimal.Decimal {
	total := decimal.Zero
	for i := range invoice.Lines {
		line := &invoice.Lines[i]
		if line.IsService() {
			total = total.Add(line.GrossAmount())
		}
	}
	return shared.RoundMoney(total.Mul(invoice.FxRate))
}

func toApplicationResponse(application *costing.Application) *ApplicationResponse {
	adjustments := make([]AdjustmentResponse, 0, len(application.Adjustments))
	for _, adj := range application.Adjustments {
		adjustments = append(adjustments, AdjustmentResponse{
			StockMoveID:      adj.StockMoveID,
			PreviousUnitCost: adj.PreviousUnitCost,
			NewUnitCost:      adj.NewUnitCost,
		})
	}
	return &ApplicationResponse{
		ID:                 application.ID,
		InvoiceDocumentID:  application.InvoiceDocumentID,
		ReceiptDocumentIDs: application.ReceiptDocumentIDs,
		ExtraCost:          application.ExtraCost,
		AppliedAt:          application.AppliedAt,
		Adjustments:        adjustments,
	}
}
