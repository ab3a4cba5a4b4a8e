package posting

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/document"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/inventory"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/ledger"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared"
)

func seedItem(t *testing.T, f *fixture, cost string) *inventory.Item {
	t.Helper()
	item, err := inventory.NewItem("ITM-"+uuid.NewString()[:8], "Test Item", "PCS")
	require.NoError(t, err)
	require.NoError(t, item.SetUnitCost(decimal.RequireFromString(cost)))
	require.NoError(t, f.items.Save(context.Background(), item))
	return item
}

func seedPartner(t *testing.T, f *fixture) *ledger.Partner {
	t.Helper()
	partner, err := ledger.NewPartner("CUST-"+uuid.NewString()[:8], "Test Partner", "TRY")
	require.NoError(t, err)
	require.NoError(t, f.partners.Save(context.Background(), partner))
	return partner
}

func seedCashAccount(t *testing.T, f *fixture) *ledger.CashAccount {
	t.Helper()
	account, err := ledger.NewCashAccount("CASH-"+uuid.NewString()[:8], "Main Till", "TRY")
	require.NoError(t, err)
	require.NoError(t, f.cashAccounts.Save(context.Background(), account))
	return account
}

func seedStock(t *testing.T, f *fixture, itemID uuid.UUID, qty, cost string) {
	t.Helper()
	move, err := inventory.NewStockMove(itemID,
		decimal.RequireFromString(qty), decimal.RequireFromString(cost),
		uuid.New(), uuid.New(), time.Now())
	require.NoError(t, err)
	require.NoError(t, f.stockMoves.Save(context.Background(), move))
}

func salesInvoiceRequest(partnerID, itemID uuid.UUID, qty string) *CreateDocumentRequest {
	return &CreateDocumentRequest{
		Type:      string(document.TypeSalesInvoice),
		Date:      time.Now(),
		Currency:  "TRY",
		FxRate:    decimal.NewFromInt(1),
		PartnerID: &partnerID,
		Lines: []LineRequest{{
			ItemID:          itemID,
			Quantity:        decimal.RequireFromString(qty),
			UnitPrice:       decimal.NewFromInt(100),
			VatRate:         decimal.NewFromInt(20),
			UnitCode:        "PCS",
			UnitCoefficient: decimal.NewFromInt(1),
		}},
	}
}

func TestCreateDraft(t *testing.T) {
	f := newFixture()
	svc := NewPostingService(f.scope)
	ctx := context.Background()

	t.Run("should create numbered draft", func(t *testing.T) {
		partner := seedPartner(t, f)
		item := seedItem(t, f, "40")

		resp, err := svc.CreateDraft(ctx, salesInvoiceRequest(partner.ID, item.ID, "2"))
		require.NoError(t, err)
		assert.Equal(t, "DRAFT", resp.Status)
		assert.Equal(t, fmt.Sprintf("SALES_INVOICE-%d-00001", time.Now().Year()), resp.Number)
		assert.Equal(t, "240", resp.GrossTotal.String())
	})

	t.Run("should number sequentially per type and year", func(t *testing.T) {
		partner := seedPartner(t, f)
		item := seedItem(t, f, "40")

		resp, err := svc.CreateDraft(ctx, salesInvoiceRequest(partner.ID, item.ID, "1"))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("SALES_INVOICE-%d-00002", time.Now().Year()), resp.Number)
	})

	t.Run("should reject unknown type", func(t *testing.T) {
		_, err := svc.CreateDraft(ctx, &CreateDocumentRequest{
			Type: "RETURN_INVOICE", Date: time.Now(), Currency: "TRY", FxRate: decimal.NewFromInt(1),
		})
		assert.True(t, shared.IsDomainError(err, "VALIDATION_ERROR"))
	})

	t.Run("should default fx rate to one", func(t *testing.T) {
		partner := seedPartner(t, f)
		item := seedItem(t, f, "40")
		req := salesInvoiceRequest(partner.ID, item.ID, "1")
		req.FxRate = decimal.Decimal{}

		resp, err := svc.CreateDraft(ctx, req)
		require.NoError(t, err)
		assert.True(t, resp.FxRate.Equal(decimal.NewFromInt(1)))
	})
}

func TestUpdateAndDeleteDraft(t *testing.T) {
	ctx := context.Background()

	t.Run("should replace draft lines", func(t *testing.T) {
		f := newFixture()
		svc := NewPostingService(f.scope)
		partner := seedPartner(t, f)
		item := seedItem(t, f, "40")

		created, err := svc.CreateDraft(ctx, salesInvoiceRequest(partner.ID, item.ID, "2"))
		require.NoError(t, err)

		updated, err := svc.UpdateDraft(ctx, created.ID, &UpdateDraftRequest{
			Date:      time.Now(),
			Currency:  "TRY",
			FxRate:    decimal.NewFromInt(1),
			PartnerID: &partner.ID,
			Lines: []LineRequest{{
				ItemID:          item.ID,
				Quantity:        decimal.NewFromInt(5),
				UnitPrice:       decimal.NewFromInt(10),
				UnitCode:        "PCS",
				UnitCoefficient: decimal.NewFromInt(1),
			}},
		})
		require.NoError(t, err)
		require.Len(t, updated.Lines, 1)
		assert.Equal(t, "50", updated.NetTotal.String())
	})

	t.Run("should refuse updating posted document", func(t *testing.T) {
		f := newFixture()
		svc := NewPostingService(f.scope)
		partner := seedPartner(t, f)
		item := seedItem(t, f, "40")
		seedStock(t, f, item.ID, "10", "40")

		created, err := svc.CreateDraft(ctx, salesInvoiceRequest(partner.ID, item.ID, "2"))
		require.NoError(t, err)
		_, err = svc.Post(ctx, created.ID)
		require.NoError(t, err)

		_, err = svc.UpdateDraft(ctx, created.ID, &UpdateDraftRequest{
			Date: time.Now(), Currency: "TRY", FxRate: decimal.NewFromInt(1), PartnerID: &partner.ID,
		})
		assert.True(t, shared.IsDomainError(err, "NOT_DRAFT"))

		err = svc.DeleteDraft(ctx, created.ID)
		assert.True(t, shared.IsDomainError(err, "NOT_DRAFT"))
	})

	t.Run("should delete draft", func(t *testing.T) {
		f := newFixture()
		svc := NewPostingService(f.scope)
		partner := seedPartner(t, f)
		item := seedItem(t, f, "40")

		created, err := svc.CreateDraft(ctx, salesInvoiceRequest(partner.ID, item.ID, "2"))
		require.NoError(t, err)
		require.NoError(t, svc.DeleteDraft(ctx, created.ID))

		_, err = svc.GetDocument(ctx, created.ID)
		assert.True(t, shared.IsDomainError(err, "NOT_FOUND"))
	})
}

func TestPostSalesInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("should write stock move and partner debit", func(t *testing.T) {
		f := newFixture()
		svc := NewPostingService(f.scope)
		partner := seedPartner(t, f)
		item := seedItem(t, f, "40")
		seedStock(t, f, item.ID, "10", "40")

		created, err := svc.CreateDraft(ctx, salesInvoiceRequest(partner.ID, item.ID, "2"))
		require.NoError(t, err)

		posted, err := svc.Post(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "POSTED", posted.Status)
		require.NotNil(t, posted.PostedAt)

		moves, err := f.stockMoves.FindByDocument(ctx, created.ID)
		require.NoError(t, err)
		require.Len(t, moves, 1)
		assert.Equal(t, "-2", moves[0].Quantity.String())
		assert.Equal(t, "40", moves[0].UnitCost.String())

		entries, err := f.partnerLedger.FindByDocument(ctx, created.ID)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.True(t, entries[0].IsDebit())
		assert.Equal(t, "240", entries[0].AmountTry.String())
		assert.True(t, entries[0].IsOpen())
	})

	t.Run("should reject posting twice", func(t *testing.T) {
		f := newFixture()
		svc := NewPostingService(f.scope)
		partner := seedPartner(t, f)
		item := seedItem(t, f, "40")
		seedStock(t, f, item.ID, "10", "40")

		created, err := svc.CreateDraft(ctx, salesInvoiceRequest(partner.ID, item.ID, "2"))
		require.NoError(t, err)
		_, err = svc.Post(ctx, created.ID)
		require.NoError(t, err)

		_, err = svc.Post(ctx, created.ID)
		assert.True(t, shared.IsDomainError(err, "INVALID_STATE"))
	})

	t.Run("should fail on insufficient stock without writes", func(t *testing.T) {
		f := newFixture()
		svc := NewPostingService(f.scope)
		partner := seedPartner(t, f)
		item := seedItem(t, f, "40")
		seedStock(t, f, item.ID, "1", "40")

		created, err := svc.CreateDraft(ctx, salesInvoiceRequest(partner.ID, item.ID, "2"))
		require.NoError(t, err)

		_, err = svc.Post(ctx, created.ID)
		assert.True(t, shared.IsDomainError(err, "INSUFFICIENT_STOCK"))

		moves, _ := f.stockMoves.FindByDocument(ctx, created.ID)
		assert.Empty(t, moves)
		entries, _ := f.partnerLedger.FindByDocument(ctx, created.ID)
		assert.Empty(t, entries)

		doc, err := f.documents.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, doc.Status.CanPost())
	})

	t.Run("should allow negative stock when flagged", func(t *testing.T) {
		f := newFixture()
		svc := NewPostingService(f.scope)
		partner := seedPartner(t, f)
		item := seedItem(t, f, "40")

		req := salesInvoiceRequest(partner.ID, item.ID, "2")
		req.AllowNegativeStock = true
		created, err := svc.CreateDraft(ctx, req)
		require.NoError(t, err)

		_, err = svc.Post(ctx, created.ID)
		require.NoError(t, err)

		onHand, err := f.stockMoves.OnHand(ctx, item.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, "-2", onHand.String())
	})

	t.Run("should enforce credit limit before any write", func(t *testing.T) {
		f := newFixture()
		svc := NewPostingService(f.scope)
		partner := seedPartner(t, f)
		require.NoError(t, partner.SetCreditLimit(decimal.NewFromInt(100)))
		item := seedItem(t, f, "40")
		seedStock(t, f, item.ID, "10", "40")

		created, err := svc.CreateDraft(ctx, salesInvoiceRequest(partner.ID, item.ID, "2")) // gross 240
		require.NoError(t, err)

		_, err = svc.Post(ctx, created.ID)
		assert.True(t, shared.IsDomainError(err, "CREDIT_LIMIT_EXCEEDED"))

		moves, _ := f.stockMoves.FindByDocument(ctx, created.ID)
		assert.Empty(t, moves)
	})

	t.Run("should allow posting exactly at the limit", func(t *testing.T) {
		f := newFixture()
		svc := NewPostingService(f.scope)
		partner := seedPartner(t, f)
		require.NoError(t, partner.SetCreditLimit(decimal.NewFromInt(240)))
		item := seedItem(t, f, "40")
		seedStock(t, f, item.ID, "10", "40")

		created, err := svc.CreateDraft(ctx, salesInvoiceRequest(partner.ID, item.ID, "2"))
		require.NoError(t, err)

		_, err = svc.Post(ctx, created.ID)
		assert.NoError(t, err)
	})

	t.Run("should reject inactive partner", func(t *testing.T) {
		f := newFixture()
		svc := NewPostingService(f.scope)
		partner := seedPartner(t, f)
		partner.Active = false
		item := seedItem(t, f, "40")
		seedStock(t, f, item.ID, "10", "40")

		created, err := svc.CreateDraft(ctx, salesInvoiceRequest(partner.ID, item.ID, "2"))
		require.NoError(t, err)

		_, err = svc.Post(ctx, created.ID)
		assert.True(t, shared.IsDomainError(err, "VALIDATION_ERROR"))
	})
}

func TestPostPurchaseInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("should write inbound move and partner credit including service lines", func(t *testing.T) {
		f := newFixture()
		svc := NewPostingService(f.scope)
		partner := seedPartner(t, f)
		item := seedItem(t, f, "0")

		created, err := svc.CreateDraft(ctx, &CreateDocumentRequest{
			Type:      string(document.TypePurchaseInvoice),
			Date:      time.Now(),
			Currency:  "TRY",
			FxRate:    decimal.NewFromInt(1),
			PartnerID: &partner.ID,
			Lines: []LineRequest{
				{
					ItemID:          item.ID,
					Quantity:        decimal.NewFromInt(10),
					UnitPrice:       decimal.NewFromInt(24),
					UnitCode:        "BOX",
					UnitCoefficient: decimal.NewFromInt(24),
				},
				{
					// Freight: no item, pure charge.
					UnitPrice:   decimal.NewFromInt(120),
					Description: "Freight",
				},
			},
		})
		require.NoError(t, err)

		_, err = svc.Post(ctx, created.ID)
		require.NoError(t, err)

		moves, err := f.stockMoves.FindByDocument(ctx, created.ID)
		require.NoError(t, err)
		require.Len(t, moves, 1, "service line must not produce a move")
		assert.Equal(t, "240", moves[0].Quantity.String())
		assert.Equal(t, "1", moves[0].UnitCost.String())

		entries, err := f.partnerLedger.FindByDocument(ctx, created.ID)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.False(t, entries[0].IsDebit())
		assert.Equal(t, "360", entries[0].AmountTry.String())
	})
}

func TestPostTransfer(t *testing.T) {
	ctx := context.Background()

	t.Run("should write two moves per line", func(t *testing.T) {
		f := newFixture()
		svc := NewPostingService(f.scope)
		item := seedItem(t, f, "5")
		source := uuid.New()
		dest := uuid.New()

		// Opening stock at the source location.
		opening, err := inventory.NewStockMove(item.ID, decimal.NewFromInt(10), decimal.NewFromInt(5), uuid.New(), uuid.New(), time.Now())
		require.NoError(t, err)
		opening.WithDestLocation(source)
		require.NoError(t, f.stockMoves.Save(ctx, opening))

		created, err := svc.CreateDraft(ctx, &CreateDocumentRequest{
			Type:     string(document.TypeTransfer),
			Date:     time.Now(),
			Currency: "TRY",
			FxRate:   decimal.NewFromInt(1),
			Lines: []LineRequest{{
				ItemID:           item.ID,
				Quantity:         decimal.NewFromInt(4),
				UnitCode:         "PCS",
				UnitCoefficient:  decimal.NewFromInt(1),
				SourceLocationID: &source,
				DestLocationID:   &dest,
			}},
		})
		require.NoError(t, err)

		_, err = svc.Post(ctx, created.ID)
		require.NoError(t, err)

		moves, err := f.stockMoves.FindByDocument(ctx, created.ID)
		require.NoError(t, err)
		require.Len(t, moves, 2)

		sourceOnHand, err := f.stockMoves.OnHand(ctx, item.ID, &source)
		require.NoError(t, err)
		assert.Equal(t, "6", sourceOnHand.String())
		destOnHand, err := f.stockMoves.OnHand(ctx, item.ID, &dest)
		require.NoError(t, err)
		assert.Equal(t, "4", destOnHand.String())
	})

	t.Run("should reject equal locations before any move", func(t *testing.T) {
		f := newFixture()
		svc := NewPostingService(f.scope)
		item := seedItem(t, f, "5")
		loc := uuid.New()

		created, err := svc.CreateDraft(ctx, &CreateDocumentRequest{
			Type:     string(document.TypeTransfer),
			Date:     time.Now(),
			Currency: "TRY",
			FxRate:   decimal.NewFromInt(1),
			Lines: []LineRequest{{
				ItemID:           item.ID,
				Quantity:         decimal.NewFromInt(4),
				UnitCode:         "PCS",
				UnitCoefficient:  decimal.NewFromInt(1),
				SourceLocationID: &loc,
				DestLocationID:   &loc,
			}},
		})
		require.NoError(t, err)

		_, err = svc.Post(ctx, created.ID)
		assert.True(t, shared.IsDomainError(err, "VALIDATION_ERROR"))
		moves, _ := f.stockMoves.FindByDocument(ctx, created.ID)
		assert.Empty(t, moves)
	})
}

func TestPostCashDocuments(t *testing.T) {
	ctx := context.Background()

	cashRequest := func(docType document.Type, accountID uuid.UUID, amount int64) *CreateDocumentRequest {
		return &CreateDocumentRequest{
			Type:          string(docType),
			Date:          time.Now(),
			Currency:      "TRY",
			FxRate:        decimal.NewFromInt(1),
			CashAccountID: &accountID,
			Lines: []LineRequest{{
				UnitPrice:   decimal.NewFromInt(amount),
				Description: "Cash movement",
			}},
		}
	}

	t.Run("receipt debits and payment credits the account", func(t *testing.T) {
		f := newFixture()
		svc := NewPostingService(f.scope)
		account := seedCashAccount(t, f)

		receipt, err := svc.CreateDraft(ctx, cashRequest(document.TypeCashReceipt, account.ID, 100))
		require.NoError(t, err)
		_, err = svc.Post(ctx, receipt.ID)
		require.NoError(t, err)

		payment, err := svc.CreateDraft(ctx, cashRequest(document.TypeCashPayment, account.ID, 40))
		require.NoError(t, err)
		_, err = svc.Post(ctx, payment.ID)
		require.NoError(t, err)

		entries, err := f.cashLedger.FindByAccount(ctx, account.ID)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		balance := ledger.BalanceAsOf(entries, time.Now().Add(time.Hour))
		assert.Equal(t, "60", balance.String())
	})

	t.Run("should reject missing account", func(t *testing.T) {
		f := newFixture()
		svc := NewPostingService(f.scope)

		receipt, err := svc.CreateDraft(ctx, cashRequest(document.TypeCashReceipt, uuid.New(), 100))
		require.NoError(t, err)
		_, err = svc.Post(ctx, receipt.ID)
		assert.True(t, shared.IsDomainError(err, "ACCOUNT_NOT_FOUND"))
	})

	t.Run("should reject inactive account", func(t *testing.T) {
		f := newFixture()
		svc := NewPostingService(f.scope)
		account := seedCashAccount(t, f)
		account.Deactivate()

		receipt, err := svc.CreateDraft(ctx, cashRequest(document.TypeCashReceipt, account.ID, 100))
		require.NoError(t, err)
		_, err = svc.Post(ctx, receipt.ID)
		assert.True(t, shared.IsDomainError(err, "ACCOUNT_NOT_FOUND"))
	})
}

func TestApproveAndCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("approve then post", func(t *testing.T) {
		f := newFixture()
		svc := NewPostingService(f.scope)
		partner := seedPartner(t, f)
		item := seedItem(t, f, "40")
		seedStock(t, f, item.ID, "10", "40")

		created, err := svc.CreateDraft(ctx, salesInvoiceRequest(partner.ID, item.ID, "2"))
		require.NoError(t, err)

		approved, err := svc.Approve(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "APPROVED", approved.Status)

		posted, err := svc.Post(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "POSTED", posted.Status)
	})

	t.Run("cancel draft and refuse cancelling posted", func(t *testing.T) {
		f := newFixture()
		svc := NewPostingService(f.scope)
		partner := seedPartner(t, f)
		item := seedItem(t, f, "40")
		seedStock(t, f, item.ID, "10", "40")

		draft, err := svc.CreateDraft(ctx, salesInvoiceRequest(partner.ID, item.ID, "1"))
		require.NoError(t, err)
		cancelled, err := svc.Cancel(ctx, draft.ID, "customer withdrew")
		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", cancelled.Status)
		assert.Equal(t, "customer withdrew", cancelled.CancelReason)

		posted, err := svc.CreateDraft(ctx, salesInvoiceRequest(partner.ID, item.ID, "1"))
		require.NoError(t, err)
		_, err = svc.Post(ctx, posted.ID)
		require.NoError(t, err)
		_, err = svc.Cancel(ctx, posted.ID, "too late")
		assert.True(t, shared.IsDomainError(err, "INVALID_STATE"))
	})
}

func TestConversionService(t *testing.T) {
	ctx := context.Background()

	t.Run("sales order converts to dispatch", func(t *testing.T) {
		f := newFixture()
		postSvc := NewPostingService(f.scope)
		convSvc := NewConversionService(f.scope)
		partner := seedPartner(t, f)
		item := seedItem(t, f, "40")

		order, err := postSvc.CreateDraft(ctx, &CreateDocumentRequest{
			Type:      string(document.TypeSalesOrder),
			Date:      time.Now(),
			Currency:  "TRY",
			FxRate:    decimal.NewFromInt(1),
			PartnerID: &partner.ID,
			Lines: []LineRequest{{
				ItemID:          item.ID,
				Quantity:        decimal.NewFromInt(3),
				UnitPrice:       decimal.NewFromInt(50),
				UnitCode:        "PCS",
				UnitCoefficient: decimal.NewFromInt(1),
			}},
		})
		require.NoError(t, err)

		dispatch, err := convSvc.Convert(ctx, order.ID, document.TypeDispatch, time.Now())
		require.NoError(t, err)
		assert.Equal(t, "DISPATCH", dispatch.Type)
		assert.Equal(t, "DRAFT", dispatch.Status)
		require.NotNil(t, dispatch.SourceDocumentID)
		assert.Equal(t, order.ID, *dispatch.SourceDocumentID)
		require.Len(t, dispatch.Lines, 1)
		assert.Equal(t, "3", dispatch.Lines[0].Quantity.String())
		assert.NotEqual(t, order.Lines[0].ID, dispatch.Lines[0].ID)
	})

	t.Run("unsupported pair rejected", func(t *testing.T) {
		f := newFixture()
		postSvc := NewPostingService(f.scope)
		convSvc := NewConversionService(f.scope)
		partner := seedPartner(t, f)
		item := seedItem(t, f, "40")

		order, err := postSvc.CreateDraft(ctx, salesInvoiceRequest(partner.ID, item.ID, "1"))
		require.NoError(t, err)

		_, err = convSvc.Convert(ctx, order.ID, document.TypeTransfer, time.Now())
		assert.True(t, shared.IsDomainError(err, "VALIDATION_ERROR"))
	})

	t.Run("cancelled source rejected", func(t *testing.T) {
		f := newFixture()
		postSvc := NewPostingService(f.scope)
		convSvc := NewConversionService(f.scope)
		partner := seedPartner(t, f)
		item := seedItem(t, f, "40")

		order, err := postSvc.CreateDraft(ctx, &CreateDocumentRequest{
			Type:      string(document.TypeSalesOrder),
			Date:      time.Now(),
			Currency:  "TRY",
			FxRate:    decimal.NewFromInt(1),
			PartnerID: &partner.ID,
			Lines: []LineRequest{{
				ItemID:          item.ID,
				Quantity:        decimal.NewFromInt(3),
				UnitPrice:       decimal.NewFromInt(50),
				UnitCode:        "PCS",
				UnitCoefficient: decimal.NewFromInt(1),
			}},
		})
		require.NoError(t, err)
		_, err = postSvc.Cancel(ctx, order.ID, "mistake")
		require.NoError(t, err)

		_, err = convSvc.Convert(ctx, order.ID, document.TypeDispatch, time.Now())
		assert.True(t, shared.IsDomainError(err, "INVALID_STATE"))
	})
}
