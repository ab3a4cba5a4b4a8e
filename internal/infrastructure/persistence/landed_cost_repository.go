package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/costing"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared"
	"github.com/mertekinci24/FemmeERP-sub000/internal/infrastructure/persistence/models"
)

// GormLandedCostRepository implements costing.ApplicationRepository using GORM
type GormLandedCostRepository struct {
	db *gorm.DB
}

// NewGormLandedCostRepository creates a new GormLandedCostRepository
func NewGormLandedCostRepository(db *gorm.DB) *GormLandedCostRepository {
	return &GormLandedCostRepository{db: db}
}

// FindByID loads an application with its receipts and adjustments
func (r *GormLandedCostRepository) FindByID(ctx context.Context, id uuid.UUID) (*costing.Application, error) {
	var model models.LandedCostApplicationModel
	if err := r.db.WithContext(ctx).
		Preload("Receipts").
		Preload("Adjustments").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByInvoice returns the applications recorded against an invoice
func (r *GormLandedCostRepository) FindByInvoice(ctx context.Context, invoiceDocumentID uuid.UUID) ([]*costing.Application, error) {
	var appModels []models.LandedCostApplicationModel
	if err := r.db.WithContext(ctx).
		Preload("Receipts").
		Preload("Adjustments").
		Where("invoice_document_id = ?", invoiceDocumentID).
		Find(&appModels).Error; err != nil {
		return nil, err
	}
	apps := make([]*costing.Application, len(appModels))
	for i := range appModels {
		apps[i] = appModels[i].ToDomain()
	}
	return apps, nil
}

// Save persists an application with its receipts and adjustments
func (r *GormLandedCostRepository) Save(ctx context.Context, application *costing.Application) error {
	model := models.LandedCostApplicationModelFromDomain(application)
	return r.db.WithContext(ctx).Create(model).Error
}

// Delete removes an application with its receipts and adjustments
func (r *GormLandedCostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Delete(&models.LandedCostReceiptModel{}, "application_id = ?", id).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).
		Delete(&models.LandedCostAdjustmentModel{}, "application_id = ?", id).Error; err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&models.LandedCostApplicationModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
