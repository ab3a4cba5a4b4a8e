package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/ledger"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared"
	"github.com/mertekinci24/FemmeERP-sub000/internal/infrastructure/persistence/models"
)

// GormPartnerLedgerRepository implements ledger.PartnerLedgerRepository using GORM
type GormPartnerLedgerRepository struct {
	db *gorm.DB
}

// NewGormPartnerLedgerRepository creates a new GormPartnerLedgerRepository
func NewGormPartnerLedgerRepository(db *gorm.DB) *GormPartnerLedgerRepository {
	return &GormPartnerLedgerRepository{db: db}
}

// FindByID finds a ledger entry by ID
func (r *GormPartnerLedgerRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.PartnerLedgerEntry, error) {
	var model models.PartnerLedgerEntryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPartner returns all entries of a partner, oldest first
func (r *GormPartnerLedgerRepository) FindByPartner(ctx context.Context, partnerID uuid.UUID) ([]*ledger.PartnerLedgerEntry, error) {
	return r.findEntries(ctx, r.db.WithContext(ctx).Where("partner_id = ?", partnerID))
}

// FindOpenByPartner returns the open entries of a partner, oldest first
func (r *GormPartnerLedgerRepository) FindOpenByPartner(ctx context.Context, partnerID uuid.UUID) ([]*ledger.PartnerLedgerEntry, error) {
	return r.findEntries(ctx, r.db.WithContext(ctx).
		Where("partner_id = ? AND status = ?", partnerID, string(ledger.EntryStatusOpen)))
}

// FindByDocument returns the entries produced by a document
func (r *GormPartnerLedgerRepository) FindByDocument(ctx context.Context, documentID uuid.UUID) ([]*ledger.PartnerLedgerEntry, error) {
	return r.findEntries(ctx, r.db.WithContext(ctx).Where("document_id = ?", documentID))
}

func (r *GormPartnerLedgerRepository) findEntries(ctx context.Context, query *gorm.DB) ([]*ledger.PartnerLedgerEntry, error) {
	var entryModels []models.PartnerLedgerEntryModel
	if err := query.Order("entry_date, id").Find(&entryModels).Error; err != nil {
		return nil, err
	}
	entries := make([]*ledger.PartnerLedgerEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = entryModels[i].ToDomain()
	}
	return entries, nil
}

// Save persists a new ledger entry
func (r *GormPartnerLedgerRepository) Save(ctx context.Context, entry *ledger.PartnerLedgerEntry) error {
	model := models.PartnerLedgerEntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists a changed ledger entry. Only the status may change
// after creation.
func (r *GormPartnerLedgerRepository) Update(ctx context.Context, entry *ledger.PartnerLedgerEntry) error {
	model := models.PartnerLedgerEntryModelFromDomain(entry)
	result := r.db.WithContext(ctx).
		Model(&models.PartnerLedgerEntryModel{}).
		Where("id = ?", entry.ID).
		Updates(map[string]interface{}{
			"status":     model.Status,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// OpenDebitTotal sums the outstanding debit exposure of a partner:
// open debit entries minus allocations already applied to them.
func (r *GormPartnerLedgerRepository) OpenDebitTotal(ctx context.Context, partnerID uuid.UUID) (decimal.Decimal, error) {
	var debitTotal decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&models.PartnerLedgerEntryModel{}).
		Where("partner_id = ? AND status = ? AND debit > 0", partnerID, string(ledger.EntryStatusOpen)).
		Select("SUM(amount_try)").
		Scan(&debitTotal).Error; err != nil {
		return decimal.Zero, err
	}
	if !debitTotal.Valid {
		return decimal.Zero, nil
	}

	var allocated decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&models.PaymentAllocationModel{}).
		Joins("JOIN partner_ledger_entries e ON e.id = payment_allocations.invoice_entry_id").
		Where("e.partner_id = ? AND e.status = ? AND e.debit > 0", partnerID, string(ledger.EntryStatusOpen)).
		Select("SUM(payment_allocations.amount)").
		Scan(&allocated).Error; err != nil {
		return decimal.Zero, err
	}
	if !allocated.Valid {
		return debitTotal.Decimal, nil
	}
	return debitTotal.Decimal.Sub(allocated.Decimal), nil
}

// SaveAllocation persists a payment allocation
func (r *GormPartnerLedgerRepository) SaveAllocation(ctx context.Context, allocation *ledger.PaymentAllocation) error {
	model := models.PaymentAllocationModelFromDomain(allocation)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindAllocationsByEntry returns allocations touching the entry on
// either side
func (r *GormPartnerLedgerRepository) FindAllocationsByEntry(ctx context.Context, entryID uuid.UUID) ([]*ledger.PaymentAllocation, error) {
	var allocationModels []models.PaymentAllocationModel
	if err := r.db.WithContext(ctx).
		Where("invoice_entry_id = ? OR payment_entry_id = ?", entryID, entryID).
		Order("allocated_at").
		Find(&allocationModels).Error; err != nil {
		return nil, err
	}
	allocations := make([]*ledger.PaymentAllocation, len(allocationModels))
	for i := range allocationModels {
		allocations[i] = allocationModels[i].ToDomain()
	}
	return allocations, nil
}

// AllocatedAmount sums the allocations applied to an entry on either side
func (r *GormPartnerLedgerRepository) AllocatedAmount(ctx context.Context, entryID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&models.PaymentAllocationModel{}).
		Where("invoice_entry_id = ? OR payment_entry_id = ?", entryID, entryID).
		Select("SUM(amount)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
