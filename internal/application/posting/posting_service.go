package posting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/document"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/inventory"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/ledger"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared/valueobject"
)

// PostingService drives the document lifecycle: draft editing,
// approval, and the atomic posting transaction that turns a document
// into stock moves and ledger entries.
type PostingService struct {
	scope TransactionScope
}

// NewPostingService creates a PostingService over the given scope.
func NewPostingService(scope TransactionScope) *PostingService {
	return &PostingService{scope: scope}
}

// CreateDraft creates a new draft document with its lines and reserves
// a document number.
func (s *PostingService) CreateDraft(ctx context.Context, req *CreateDocumentRequest) (*DocumentResponse, error) {
	docType := document.Type(req.Type)
	fxRate := req.FxRate
	if fxRate.IsZero() {
		fxRate = decimal.NewFromInt(1)
	}

	doc, err := document.New(docType, req.Date, valueobject.Currency(req.Currency), fxRate)
	if err != nil {
		return nil, err
	}
	applyHeader(doc, req.PartnerID, req.CashAccountID, req.DueDate, req.AllowNegativeStock, req.Remark)

	lines, err := buildLines(req.Lines)
	if err != nil {
		return nil, err
	}
	if err := doc.ReplaceLines(lines); err != nil {
		return nil, err
	}

	var resp *DocumentResponse
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		number, err := repos.Documents().NextNumber(ctx, docType, req.Date.Year())
		if err != nil {
			return err
		}
		doc.WithNumber(number)
		if err := repos.Documents().Save(ctx, doc); err != nil {
			return err
		}
		resp = ToDocumentResponse(doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetDocument loads a document with its lines.
func (s *PostingService) GetDocument(ctx context.Context, id uuid.UUID) (*DocumentResponse, error) {
	var resp *DocumentResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		doc, err := repos.Documents().FindByID(ctx, id)
		if err != nil {
			return err
		}
		resp = ToDocumentResponse(doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// UpdateDraft rewrites a draft's header and replaces its full line set.
// Non-draft documents are rejected with NOT_DRAFT.
func (s *PostingService) UpdateDraft(ctx context.Context, id uuid.UUID, req *UpdateDraftRequest) (*DocumentResponse, error) {
	var resp *DocumentResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		doc, err := repos.Documents().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !doc.IsDraft() {
			return shared.ErrNotDraft
		}

		fxRate := req.FxRate
		if fxRate.IsZero() {
			fxRate = decimal.NewFromInt(1)
		}
		if fxRate.LessThanOrEqual(decimal.Zero) {
			return shared.NewDomainError("VALIDATION_ERROR", "Document FX rate must be positive")
		}
		doc.Date = req.Date
		doc.Currency = valueobject.Currency(req.Currency)
		doc.FxRate = fxRate
		applyHeader(doc, req.PartnerID, req.CashAccountID, req.DueDate, req.AllowNegativeStock, req.Remark)

		lines, err := buildLines(req.Lines)
		if err != nil {
			return err
		}
		if err := doc.ReplaceLines(lines); err != nil {
			return err
		}
		if err := repos.Documents().Update(ctx, doc); err != nil {
			return err
		}
		resp = ToDocumentResponse(doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// DeleteDraft removes a draft document. Anything past draft is kept.
func (s *PostingService) DeleteDraft(ctx context.Context, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		doc, err := repos.Documents().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !doc.IsDraft() {
			return shared.ErrNotDraft
		}
		return repos.Documents().Delete(ctx, doc.ID)
	})
}

// Approve validates a draft and moves it to Approved without posting.
func (s *PostingService) Approve(ctx context.Context, id uuid.UUID) (*DocumentResponse, error) {
	var resp *DocumentResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		doc, err := repos.Documents().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := doc.Approve(); err != nil {
			return err
		}
		if err := repos.Documents().Update(ctx, doc); err != nil {
			return err
		}
		resp = ToDocumentResponse(doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Cancel terminates a draft or approved document.
func (s *PostingService) Cancel(ctx context.Context, id uuid.UUID, reason string) (*DocumentResponse, error) {
	var resp *DocumentResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		doc, err := repos.Documents().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := doc.Cancel(reason); err != nil {
			return err
		}
		if err := repos.Documents().Update(ctx, doc); err != nil {
			return err
		}
		resp = ToDocumentResponse(doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Post runs the full posting pipeline atomically: validate, credit
// check, stock moves, partner and cash entries, status flip. Any
// failure rolls back everything; the document stays postable.
func (s *PostingService) Post(ctx context.Context, id uuid.UUID) (*DocumentResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var resp *DocumentResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		doc, err := repos.Documents().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !doc.Status.CanPost() {
			return shared.NewDomainError("INVALID_STATE", "Only draft or approved documents can be posted")
		}
		if err := doc.Validate(); err != nil {
			return err
		}

		partner, err := s.resolvePartner(ctx, repos, doc)
		if err != nil {
			return err
		}
		account, err := s.resolveCashAccount(ctx, repos, doc)
		if err != nil {
			return err
		}

		if doc.Type.CreatesPartnerDebt() && partner.HasCreditLimit() {
			exposure, err := repos.PartnerLedger().OpenDebitTotal(ctx, partner.ID)
			if err != nil {
				return err
			}
			if err := ledger.EnsureCreditAvailable(partner, exposure, doc.GrossTotalTRY()); err != nil {
				return err
			}
		}

		if doc.Type.AffectsStock() {
			if err := s.postStock(ctx, repos, doc); err != nil {
				return err
			}
		}
		if doc.Type.AffectsPartnerLedger() {
			if err := s.postPartnerLedger(ctx, repos, doc, partner); err != nil {
				return err
			}
		}
		if doc.Type.AffectsCashLedger() {
			if err := s.postCashLedger(ctx, repos, doc, account); err != nil {
				return err
			}
		}

		if err := doc.MarkPosted(time.Now()); err != nil {
			return err
		}
		if err := repos.Documents().Update(ctx, doc); err != nil {
			return err
		}
		resp = ToDocumentResponse(doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// resolvePartner loads and checks the partner when the type requires
// one. Postings to concurrent ledgers serialize on the partner row:
// the version bump makes two postings against the same partner
// conflict instead of double-spending the credit limit.
func (s *PostingService) resolvePartner(ctx context.Context, repos TransactionalRepositories, doc *document.Document) (*ledger.Partner, error) {
	if !doc.Type.Traits().RequiresPartner {
		return nil, nil
	}
	partner, err := repos.Partners().FindByID(ctx, *doc.PartnerID)
	if err != nil {
		return nil, err
	}
	if !partner.Active {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Partner is inactive")
	}
	if doc.Type.AffectsPartnerLedger() {
		partner.IncrementVersion()
		if err := repos.Partners().Update(ctx, partner); err != nil {
			return nil, err
		}
	}
	return partner, nil
}

// resolveCashAccount loads and checks the cash account when the type
// requires one. Missing or inactive accounts fail with
// ACCOUNT_NOT_FOUND; the version bump serializes same-account postings.
func (s *PostingService) resolveCashAccount(ctx context.Context, repos TransactionalRepositories, doc *document.Document) (*ledger.CashAccount, error) {
	if !doc.Type.Traits().RequiresCashAccount {
		return nil, nil
	}
	account, err := repos.CashAccounts().FindByID(ctx, *doc.CashAccountID)
	if err != nil {
		if shared.IsDomainError(err, "NOT_FOUND") {
			return nil, shared.ErrAccountNotFound
		}
		return nil, err
	}
	if !account.Active {
		return nil, shared.ErrAccountNotFound
	}
	account.IncrementVersion()
	if err := repos.CashAccounts().Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// postStock generates and persists the document's stock moves, creating
// requested lots first.
func (s *PostingService) postStock(ctx context.Context, repos TransactionalRepositories, doc *document.Document) error {
	generator := inventory.NewMovementGenerator(&repoStockInfo{repos: repos})
	result, err := generator.Generate(ctx, doc)
	if err != nil {
		return err
	}
	for _, lot := range result.NewLots {
		if err := repos.Lots().Save(ctx, lot); err != nil {
			return err
		}
	}
	for _, move := range result.Moves {
		if err := repos.StockMoves().Save(ctx, move); err != nil {
			return err
		}
	}
	return nil
}

// postPartnerLedger writes the document's partner ledger entry. Debt-
// creating types debit the partner; the rest credit it. Amounts are the
// document's gross total, with the TRY magnitude fixed at posting time.
func (s *PostingService) postPartnerLedger(ctx context.Context, repos TransactionalRepositories, doc *document.Document, partner *ledger.Partner) error {
	gross := doc.GrossTotal().Round(2).Amount()
	debit, credit := decimal.Zero, gross
	if doc.Type.CreatesPartnerDebt() {
		debit, credit = gross, decimal.Zero
	}
	entry, err := ledger.NewPartnerLedgerEntry(partner.ID, doc.ID, doc.Date, debit, credit, doc.GrossTotalTRY())
	if err != nil {
		return err
	}
	if doc.DueDate != nil {
		entry.WithDueDate(*doc.DueDate)
	}
	return repos.PartnerLedger().Save(ctx, entry)
}

// postCashLedger writes the document's cash ledger entry: receipts
// debit the account, payments credit it.
func (s *PostingService) postCashLedger(ctx context.Context, repos TransactionalRepositories, doc *document.Document, account *ledger.CashAccount) error {
	amount := doc.GrossTotalTRY()
	debit, credit := amount, decimal.Zero
	if doc.Type == document.TypeCashPayment {
		debit, credit = decimal.Zero, amount
	}
	entry, err := ledger.NewCashLedgerEntry(account.ID, doc.ID, doc.Type.String(), doc.Date, debit, credit)
	if err != nil {
		return err
	}
	return repos.CashLedger().Save(ctx, entry)
}

// repoStockInfo adapts the transactional repositories to the movement
// generator's read interface.
type repoStockInfo struct {
	repos TransactionalRepositories
}

func (p *repoStockInfo) OnHand(ctx context.Context, itemID uuid.UUID, locationID *uuid.UUID) (decimal.Decimal, error) {
	return p.repos.StockMoves().OnHand(ctx, itemID, locationID)
}

func (p *repoStockInfo) CurrentUnitCost(ctx context.Context, itemID uuid.UUID) (decimal.Decimal, error) {
	item, err := p.repos.Items().FindByID(ctx, itemID)
	if err != nil {
		return decimal.Zero, err
	}
	return item.UnitCost, nil
}

func applyHeader(doc *document.Document, partnerID, cashAccountID *uuid.UUID, dueDate *time.Time, allowNegative bool, remark string) {
	doc.PartnerID = partnerID
	doc.CashAccountID = cashAccountID
	doc.DueDate = dueDate
	doc.AllowNegativeStock = allowNegative
	doc.Remark = remark
}

func buildLines(reqs []LineRequest) ([]document.Line, error) {
	lines := make([]document.Line, 0, len(reqs))
	for _, lr := range reqs {
		if lr.ItemID == uuid.Nil {
			line, err := document.NewServiceLine(lr.Description, lr.UnitPrice, lr.VatRate)
			if err != nil {
				return nil, err
			}
			lines = append(lines, *line)
			continue
		}
		line, err := document.NewLine(lr.ItemID, lr.Quantity, lr.UnitPrice, lr.VatRate, lr.UnitCode, lr.UnitCoefficient)
		if err != nil {
			return nil, err
		}
		if lr.LotID != nil {
			line.WithLot(*lr.LotID)
		}
		if lr.NewLotNumber != "" {
			line.WithNewLot(lr.NewLotNumber)
		}
		if lr.VariantID != nil {
			line.WithVariant(*lr.VariantID)
		}
		line.WithLocations(lr.SourceLocationID, lr.DestLocationID)
		line.WithDescription(lr.Description)
		lines = append(lines, *line)
	}
	return lines, nil
}
