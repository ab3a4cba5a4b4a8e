package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/ledger"
	"github.com/mertekinci24/FemmeERP-sub000/internal/infrastructure/persistence/models"
)

// GormCashLedgerRepository implements ledger.CashLedgerRepository using GORM
type GormCashLedgerRepository struct {
	db *gorm.DB
}

// NewGormCashLedgerRepository creates a new GormCashLedgerRepository
func NewGormCashLedgerRepository(db *gorm.DB) *GormCashLedgerRepository {
	return &GormCashLedgerRepository{db: db}
}

// FindByAccount returns all entries of an account
func (r *GormCashLedgerRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) ([]*ledger.CashLedgerEntry, error) {
	return r.findEntries(ctx, r.db.WithContext(ctx).Where("account_id = ?", accountID))
}

// FindByAccountUntil returns the entries of an account dated on or
// before asOf
func (r *GormCashLedgerRepository) FindByAccountUntil(ctx context.Context, accountID uuid.UUID, asOf time.Time) ([]*ledger.CashLedgerEntry, error) {
	return r.findEntries(ctx, r.db.WithContext(ctx).
		Where("account_id = ? AND entry_date <= ?", accountID, asOf))
}

// FindByDocument returns the entries produced by a document
func (r *GormCashLedgerRepository) FindByDocument(ctx context.Context, documentID uuid.UUID) ([]*ledger.CashLedgerEntry, error) {
	return r.findEntries(ctx, r.db.WithContext(ctx).Where("document_id = ?", documentID))
}

func (r *GormCashLedgerRepository) findEntries(ctx context.Context, query *gorm.DB) ([]*ledger.CashLedgerEntry, error) {
	var entryModels []models.CashLedgerEntryModel
	if err := query.Order("entry_date, id").Find(&entryModels).Error; err != nil {
		return nil, err
	}
	entries := make([]*ledger.CashLedgerEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = entryModels[i].ToDomain()
	}
	return entries, nil
}

// Save persists a cash ledger entry
func (r *GormCashLedgerRepository) Save(ctx context.Context, entry *ledger.CashLedgerEntry) error {
	model := models.CashLedgerEntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Create(model).Error
}

// CountByAccount counts the entries of an account
func (r *GormCashLedgerRepository) CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CashLedgerEntryModel{}).
		Where("account_id = ?", accountID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
