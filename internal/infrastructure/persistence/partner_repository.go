package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/ledger"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared"
	"github.com/mertekinci24/FemmeERP-sub000/internal/infrastructure/persistence/models"
)

// GormPartnerRepository implements ledger.PartnerRepository using GORM
type GormPartnerRepository struct {
	db *gorm.DB
}

// NewGormPartnerRepository creates a new GormPartnerRepository
func NewGormPartnerRepository(db *gorm.DB) *GormPartnerRepository {
	return &GormPartnerRepository{db: db}
}

// FindByID finds a partner by ID
func (r *GormPartnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Partner, error) {
	var model models.PartnerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a partner by code
func (r *GormPartnerRepository) FindByCode(ctx context.Context, code string) (*ledger.Partner, error) {
	var model models.PartnerModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all partners, optionally only active ones
func (r *GormPartnerRepository) FindAll(ctx context.Context, activeOnly bool) ([]*ledger.Partner, error) {
	query := r.db.WithContext(ctx).Model(&models.PartnerModel{}).Order("code")
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var partnerModels []models.PartnerModel
	if err := query.Find(&partnerModels).Error; err != nil {
		return nil, err
	}
	partners := make([]*ledger.Partner, len(partnerModels))
	for i := range partnerModels {
		partners[i] = partnerModels[i].ToDomain()
	}
	return partners, nil
}

// Save persists a new partner
func (r *GormPartnerRepository) Save(ctx context.Context, partner *ledger.Partner) error {
	model := models.PartnerModelFromDomain(partner)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists a changed partner under optimistic locking
func (r *GormPartnerRepository) Update(ctx context.Context, partner *ledger.Partner) error {
	model := models.PartnerModelFromDomain(partner)
	result := r.db.WithContext(ctx).
		Model(&models.PartnerModel{}).
		Where("id = ? AND version = ?", partner.ID, partner.Version-1).
		Updates(map[string]interface{}{
			"code":             model.Code,
			"name":             model.Name,
			"currency":         model.Currency,
			"credit_limit_try": model.CreditLimitTry,
			"active":           model.Active,
			"version":          model.Version,
			"updated_at":       model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// GormCashAccountRepository implements ledger.CashAccountRepository using GORM
type GormCashAccountRepository struct {
	db *gorm.DB
}

// NewGormCashAccountRepository creates a new GormCashAccountRepository
func NewGormCashAccountRepository(db *gorm.DB) *GormCashAccountRepository {
	return &GormCashAccountRepository{db: db}
}

// FindByID finds a cash account by ID
func (r *GormCashAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.CashAccount, error) {
	var model models.CashAccountModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a cash account by code
func (r *GormCashAccountRepository) FindByCode(ctx context.Context, code string) (*ledger.CashAccount, error) {
	var model models.CashAccountModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all cash accounts, optionally only active ones
func (r *GormCashAccountRepository) FindAll(ctx context.Context, activeOnly bool) ([]*ledger.CashAccount, error) {
	query := r.db.WithContext(ctx).Model(&models.CashAccountModel{}).Order("code")
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var accountModels []models.CashAccountModel
	if err := query.Find(&accountModels).Error; err != nil {
		return nil, err
	}
	accounts := make([]*ledger.CashAccount, len(accountModels))
	for i := range accountModels {
		accounts[i] = accountModels[i].ToDomain()
	}
	return accounts, nil
}

// Save persists a new cash account
func (r *GormCashAccountRepository) Save(ctx context.Context, account *ledger.CashAccount) error {
	model := models.CashAccountModelFromDomain(account)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists a changed cash account under optimistic locking
func (r *GormCashAccountRepository) Update(ctx context.Context, account *ledger.CashAccount) error {
	model := models.CashAccountModelFromDomain(account)
	result := r.db.WithContext(ctx).
		Model(&models.CashAccountModel{}).
		Where("id = ? AND version = ?", account.ID, account.Version-1).
		Updates(map[string]interface{}{
			"code":       model.Code,
			"name":       model.Name,
			"currency":   model.Currency,
			"active":     model.Active,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete removes a cash account
func (r *GormCashAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CashAccountModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
