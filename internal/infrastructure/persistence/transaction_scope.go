package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/mertekinci24/FemmeERP-sub000/internal/application/posting"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/costing"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/document"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/inventory"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/ledger"
)

// GormTransactionScope implements posting.TransactionScope backed by a
// database transaction. Every repository handed to the callback runs
// on the same transaction; an error from the callback rolls everything
// back.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn inside a database transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos posting.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories hands out repositories bound to one
// transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) Documents() document.Repository {
	return NewGormDocumentRepository(r.tx)
}

func (r *gormTransactionalRepositories) StockMoves() inventory.StockMoveRepository {
	return NewGormStockMoveRepository(r.tx)
}

func (r *gormTransactionalRepositories) Lots() inventory.LotRepository {
	return NewGormLotRepository(r.tx)
}

func (r *gormTransactionalRepositories) Items() inventory.ItemRepository {
	return NewGormItemRepository(r.tx)
}

func (r *gormTransactionalRepositories) Partners() ledger.PartnerRepository {
	return NewGormPartnerRepository(r.tx)
}

func (r *gormTransactionalRepositories) CashAccounts() ledger.CashAccountRepository {
	return NewGormCashAccountRepository(r.tx)
}

func (r *gormTransactionalRepositories) PartnerLedger() ledger.PartnerLedgerRepository {
	return NewGormPartnerLedgerRepository(r.tx)
}

func (r *gormTransactionalRepositories) CashLedger() ledger.CashLedgerRepository {
	return NewGormCashLedgerRepository(r.tx)
}

func (r *gormTransactionalRepositories) LandedCosts() costing.ApplicationRepository {
	return NewGormLandedCostRepository(r.tx)
}

var _ posting.TransactionScope = (*GormTransactionScope)(nil)
var _ posting.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
