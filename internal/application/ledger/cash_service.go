package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mertekinci24/FemmeERP-sub000/internal/application/posting"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/document"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/ledger"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared/valueobject"
)

// CashService manages cash account masters and answers balance and
// statement queries. Receipts and payments are documents underneath:
// CreateReceipt and CreatePayment build a one-line cash document and
// run it through the posting pipeline in a single call.
type CashService struct {
	scope   posting.TransactionScope
	posting *posting.PostingService
}

// NewCashService creates a CashService.
func NewCashService(scope posting.TransactionScope, postingService *posting.PostingService) *CashService {
	return &CashService{scope: scope, posting: postingService}
}

// CreateAccount creates a cash account master record.
func (s *CashService) CreateAccount(ctx context.Context, req *CreateCashAccountRequest) (*CashAccountResponse, error) {
	account, err := ledger.NewCashAccount(req.Code, req.Name, valueobject.Currency(req.Currency))
	if err != nil {
		return nil, err
	}

	var resp *CashAccountResponse
	err = s.scope.Execute(ctx, func(repos posting.TransactionalRepositories) error {
		if existing, err := repos.CashAccounts().FindByCode(ctx, account.Code); err == nil && existing != nil {
			return shared.ErrAlreadyExists
		}
		if err := repos.CashAccounts().Save(ctx, account); err != nil {
			return err
		}
		resp = ToCashAccountResponse(account)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetAccount loads a cash account master record.
func (s *CashService) GetAccount(ctx context.Context, id uuid.UUID) (*CashAccountResponse, error) {
	var resp *CashAccountResponse
	err := s.scope.Execute(ctx, func(repos posting.TransactionalRepositories) error {
		account, err := repos.CashAccounts().FindByID(ctx, id)
		if err != nil {
			return err
		}
		resp = ToCashAccountResponse(account)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ListAccounts returns cash account masters.
func (s *CashService) ListAccounts(ctx context.Context, activeOnly bool) ([]*CashAccountResponse, error) {
	var resp []*CashAccountResponse
	err := s.scope.Execute(ctx, func(repos posting.TransactionalRepositories) error {
		accounts, err := repos.CashAccounts().FindAll(ctx, activeOnly)
		if err != nil {
			return err
		}
		resp = make([]*CashAccountResponse, 0, len(accounts))
		for _, account := range accounts {
			resp = append(resp, ToCashAccountResponse(account))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// DeleteAccount removes a cash account that has no ledger entries.
// Accounts with history fail with ACCOUNT_HAS_ENTRIES; deactivate them
// instead.
func (s *CashService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos posting.TransactionalRepositories) error {
		account, err := repos.CashAccounts().FindByID(ctx, id)
		if err != nil {
			return err
		}
		count, err := repos.CashLedger().CountByAccount(ctx, account.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return shared.ErrAccountHasEntries
		}
		return repos.CashAccounts().Delete(ctx, account.ID)
	})
}

// DeactivateAccount stops an account from accepting new postings while
// keeping its history.
func (s *CashService) DeactivateAccount(ctx context.Context, id uuid.UUID) (*CashAccountResponse, error) {
	var resp *CashAccountResponse
	err := s.scope.Execute(ctx, func(repos posting.TransactionalRepositories) error {
		account, err := repos.CashAccounts().FindByID(ctx, id)
		if err != nil {
			return err
		}
		account.Deactivate()
		if err := repos.CashAccounts().Update(ctx, account); err != nil {
			return err
		}
		resp = ToCashAccountResponse(account)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetStatement returns the account's entries in (date, id) order with
// running balances.
func (s *CashService) GetStatement(ctx context.Context, accountID uuid.UUID) ([]CashEntryResponse, error) {
	var resp []CashEntryResponse
	err := s.scope.Execute(ctx, func(repos posting.TransactionalRepositories) error {
		if _, err := repos.CashAccounts().FindByID(ctx, accountID); err != nil {
			return err
		}
		entries, err := repos.CashLedger().FindByAccount(ctx, accountID)
		if err != nil {
			return err
		}
		ledger.ComputeRunningBalances(entries)
		resp = make([]CashEntryResponse, 0, len(entries))
		for _, e := range entries {
			resp = append(resp, CashEntryResponse{
				ID:           e.ID,
				DocumentID:   e.DocumentID,
				DocumentType: e.DocumentType,
				EntryDate:    e.EntryDate,
				Debit:        e.Debit,
				Credit:       e.Credit,
				Balance:      e.Balance,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetBalance returns the account balance as of a date. A zero asOf
// means now.
func (s *CashService) GetBalance(ctx context.Context, accountID uuid.UUID, asOf time.Time) (*BalanceResponse, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	var resp *BalanceResponse
	err := s.scope.Execute(ctx, func(repos posting.TransactionalRepositories) error {
		if _, err := repos.CashAccounts().FindByID(ctx, accountID); err != nil {
			return err
		}
		entries, err := repos.CashLedger().FindByAccountUntil(ctx, accountID, asOf)
		if err != nil {
			return err
		}
		resp = &BalanceResponse{
			AccountID: accountID,
			AsOf:      asOf,
			Balance:   ledger.BalanceAsOf(entries, asOf),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// CreateReceipt books money into the account: a one-line CASH_RECEIPT
// document is created and posted, and the resulting ledger entry is
// returned.
func (s *CashService) CreateReceipt(ctx context.Context, accountID uuid.UUID, req *CashMovementRequest) (*CashMovementResponse, error) {
	return s.postCashMovement(ctx, accountID, document.TypeCashReceipt, req)
}

// CreatePayment books money out of the account through a CASH_PAYMENT
// document.
func (s *CashService) CreatePayment(ctx context.Context, accountID uuid.UUID, req *CashMovementRequest) (*CashMovementResponse, error) {
	return s.postCashMovement(ctx, accountID, document.TypeCashPayment, req)
}

func (s *CashService) postCashMovement(ctx context.Context, accountID uuid.UUID, docType document.Type, req *CashMovementRequest) (*CashMovementResponse, error) {
	draft, err := s.posting.CreateDraft(ctx, &posting.CreateDocumentRequest{
		Type:          docType.String(),
		Date:          req.Date,
		Currency:      req.Currency,
		FxRate:        req.FxRate,
		CashAccountID: &accountID,
		Remark:        req.Description,
		Lines: []posting.LineRequest{{
			UnitPrice:   req.Amount,
			Description: req.Description,
		}},
	})
	if err != nil {
		return nil, err
	}
	posted, err := s.posting.Post(ctx, draft.ID)
	if err != nil {
		return nil, err
	}

	var resp *CashMovementResponse
	err = s.scope.Execute(ctx, func(repos posting.TransactionalRepositories) error {
		entries, err := repos.CashLedger().FindByDocument(ctx, posted.ID)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return shared.NewDomainError("NOT_FOUND", "No cash entry recorded for posted document")
		}
		e := entries[0]
		resp = &CashMovementResponse{
			LedgerEntryID: e.ID,
			DocumentID:    posted.ID,
			Number:        posted.Number,
			EntryDate:     e.EntryDate,
			Debit:         e.Debit,
			Credit:        e.Credit,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
