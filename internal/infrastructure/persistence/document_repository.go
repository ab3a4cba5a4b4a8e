package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/document"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared"
	"github.com/mertekinci24/FemmeERP-sub000/internal/infrastructure/persistence/models"
)

// GormDocumentRepository implements document.Repository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// FindByID loads a document with its lines
func (r *GormDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	var model models.DocumentModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save persists a new document with its lines
func (r *GormDocumentRepository) Save(ctx context.Context, doc *document.Document) error {
	model := models.DocumentModelFromDomain(doc)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists a changed document under optimistic locking. The
// header row is rewritten only if its stored version matches the one
// the aggregate was loaded at; lines are replaced wholesale.
func (r *GormDocumentRepository) Update(ctx context.Context, doc *document.Document) error {
	model := models.DocumentModelFromDomain(doc)

	result := r.db.WithContext(ctx).
		Model(&models.DocumentModel{}).
		Where("id = ? AND version = ?", doc.ID, doc.Version-1).
		Updates(map[string]interface{}{
			"number":               model.Number,
			"type":                 model.Type,
			"status":               model.Status,
			"date":                 model.Date,
			"currency":             model.Currency,
			"fx_rate":              model.FxRate,
			"partner_id":           model.PartnerID,
			"cash_account_id":      model.CashAccountID,
			"due_date":             model.DueDate,
			"allow_negative_stock": model.AllowNegativeStock,
			"remark":               model.Remark,
			"posted_at":            model.PostedAt,
			"cancelled_at":         model.CancelledAt,
			"cancel_reason":        model.CancelReason,
			"source_document_id":   model.SourceDocumentID,
			"version":              model.Version,
			"updated_at":           model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}

	if err := r.db.WithContext(ctx).
		Delete(&models.DocumentLineModel{}, "document_id = ?", doc.ID).Error; err != nil {
		return err
	}
	if len(model.Lines) > 0 {
		if err := r.db.WithContext(ctx).Create(&model.Lines).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a document and its lines
func (r *GormDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Delete(&models.DocumentLineModel{}, "document_id = ?", id).Error; err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&models.DocumentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// NextNumber reserves the next document number for the type and year.
// The counter row is advanced with an atomic increment; inside a
// posting transaction the row lock taken by the UPDATE serializes
// concurrent reservations.
func (r *GormDocumentRepository) NextNumber(ctx context.Context, docType document.Type, year int) (string, error) {
	db := r.db.WithContext(ctx)

	result := db.Model(&models.NumberSequenceModel{}).
		Where("document_type = ? AND year = ?", docType.String(), year).
		Update("counter", gorm.Expr("counter + 1"))
	if result.Error != nil {
		return "", result.Error
	}
	if result.RowsAffected == 0 {
		seq := models.NumberSequenceModel{
			DocumentType: docType.String(),
			Year:         year,
			Counter:      1,
		}
		if err := db.Create(&seq).Error; err != nil {
			// Another transaction created the row first; retry the increment.
			retry := db.Model(&models.NumberSequenceModel{}).
				Where("document_type = ? AND year = ?", docType.String(), year).
				Update("counter", gorm.Expr("counter + 1"))
			if retry.Error != nil {
				return "", retry.Error
			}
		}
	}

	var seq models.NumberSequenceModel
	if err := db.
		Where("document_type = ? AND year = ?", docType.String(), year).
		First(&seq).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d-%05d", docType.String(), year, seq.Counter), nil
}
