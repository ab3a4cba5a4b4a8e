package posting

import (
	"context"

	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/costing"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/document"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/inventory"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/ledger"
)

// TransactionScope provides transactional access to the repositories a
// posting touches. When a function is executed within a scope, all
// repository operations are part of the same database transaction and
// commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to every repository the
// posting engine writes, all sharing the same underlying transaction.
// A posting may touch the document, its stock moves and lots, and the
// partner and cash ledgers; the scope guarantees none of those survive
// a failed posting.
type TransactionalRepositories interface {
	Documents() document.Repository
	StockMoves() inventory.StockMoveRepository
	Lots() inventory.LotRepository
	Items() inventory.ItemRepository
	Partners() ledger.PartnerRepository
	CashAccounts() ledger.CashAccountRepository
	PartnerLedger() ledger.PartnerLedgerRepository
	CashLedger() ledger.CashLedgerRepository
	LandedCosts() costing.ApplicationRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing with in-memory repositories.
type NoOpTransactionScope struct {
	documents     document.Repository
	stockMoves    inventory.StockMoveRepository
	lots          inventory.LotRepository
	items         inventory.ItemRepository
	partners      ledger.PartnerRepository
	cashAccounts  ledger.CashAccountRepository
	partnerLedger ledger.PartnerLedgerRepository
	cashLedger    ledger.CashLedgerRepository
	landedCosts   costing.ApplicationRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given
// repositories.
func NewNoOpTransactionScope(
	documents document.Repository,
	stockMoves inventory.StockMoveRepository,
	lots inventory.LotRepository,
	items inventory.ItemRepository,
	partners ledger.PartnerRepository,
	cashAccounts ledger.CashAccountRepository,
	partnerLedger ledger.PartnerLedgerRepository,
	cashLedger ledger.CashLedgerRepository,
	landedCosts costing.ApplicationRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		documents:     documents,
		stockMoves:    stockMoves,
		lots:          lots,
		items:         items,
		partners:      partners,
		cashAccounts:  cashAccounts,
		partnerLedger: partnerLedger,
		cashLedger:    cashLedger,
		landedCosts:   landedCosts,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) Documents() document.Repository             { return s.documents }
func (s *NoOpTransactionScope) StockMoves() inventory.StockMoveRepository  { return s.stockMoves }
func (s *NoOpTransactionScope) Lots() inventory.LotRepository              { return s.lots }
func (s *NoOpTransactionScope) Items() inventory.ItemRepository            { return s.items }
func (s *NoOpTransactionScope) Partners() ledger.PartnerRepository         { return s.partners }
func (s *NoOpTransactionScope) CashAccounts() ledger.CashAccountRepository { return s.cashAccounts }
func (s *NoOpTransactionScope) PartnerLedger() ledger.PartnerLedgerRepository {
	return s.partnerLedger
}
func (s *NoOpTransactionScope) CashLedger() ledger.CashLedgerRepository { return s.cashLedger }
func (s *NoOpTransactionScope) LandedCosts() costing.ApplicationRepository {
	return s.landedCosts
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
