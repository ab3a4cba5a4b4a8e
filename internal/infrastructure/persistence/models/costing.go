package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/costing"
)

// LandedCostApplicationModel is the persistence model for the
// landed-cost Application aggregate.
type LandedCostApplicationModel struct {
	BaseModel
	InvoiceDocumentID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ExtraCost         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	AppliedAt         time.Time       `gorm:"not null"`
	// Associations
	Receipts    []LandedCostReceiptModel    `gorm:"foreignKey:ApplicationID;references:ID;constraint:OnDelete:CASCADE"`
	Adjustments []LandedCostAdjustmentModel `gorm:"foreignKey:ApplicationID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (LandedCostApplicationModel) TableName() string {
	return "landed_cost_applications"
}

// ToDomain converts the persistence model to a domain Application.
func (m *LandedCostApplicationModel) ToDomain() *costing.Application {
	app := &costing.Application{
		BaseEntity:         m.BaseModel.ToDomain(),
		InvoiceDocumentID:  m.InvoiceDocumentID,
		ExtraCost:          m.ExtraCost,
		AppliedAt:          m.AppliedAt,
		ReceiptDocumentIDs: make([]uuid.UUID, len(m.Receipts)),
		Adjustments:        make([]costing.Adjustment, len(m.Adjustments)),
	}
	for i, r := range m.Receipts {
		app.ReceiptDocumentIDs[i] = r.ReceiptDocumentID
	}
	for i := range m.Adjustments {
		app.Adjustments[i] = *m.Adjustments[i].ToDomain()
	}
	return app
}

// FromDomain populates the persistence model from a domain Application.
func (m *LandedCostApplicationModel) FromDomain(a *costing.Application) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.InvoiceDocumentID = a.InvoiceDocumentID
	m.ExtraCost = a.ExtraCost
	m.AppliedAt = a.AppliedAt
	m.Receipts = make([]LandedCostReceiptModel, len(a.ReceiptDocumentIDs))
	for i, id := range a.ReceiptDocumentIDs {
		m.Receipts[i] = LandedCostReceiptModel{
			ApplicationID:     a.ID,
			ReceiptDocumentID: id,
		}
	}
	m.Adjustments = make([]LandedCostAdjustmentModel, len(a.Adjustments))
	for i := range a.Adjustments {
		m.Adjustments[i] = *LandedCostAdjustmentModelFromDomain(&a.Adjustments[i])
	}
}

// LandedCostApplicationModelFromDomain creates a new model from a domain Application.
func LandedCostApplicationModelFromDomain(a *costing.Application) *LandedCostApplicationModel {
	m := &LandedCostApplicationModel{}
	m.FromDomain(a)
	return m
}

// LandedCostReceiptModel links an application to one receipt document.
type LandedCostReceiptModel struct {
	ApplicationID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReceiptDocumentID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName returns the table name for GORM
func (LandedCostReceiptModel) TableName() string {
	return "landed_cost_receipts"
}

// LandedCostAdjustmentModel is the persistence model for one per-move
// cost restatement.
type LandedCostAdjustmentModel struct {
	BaseModel
	ApplicationID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	StockMoveID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	PreviousUnitCost decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	NewUnitCost      decimal.Decimal `gorm:"type:decimal(18,6);not null"`
}

// TableName returns the table name for GORM
func (LandedCostAdjustmentModel) TableName() string {
	return "landed_cost_adjustments"
}

// ToDomain converts the persistence model to a domain Adjustment.
func (m *LandedCostAdjustmentModel) ToDomain() *costing.Adjustment {
	return &costing.Adjustment{
		BaseEntity:       m.BaseModel.ToDomain(),
		ApplicationID:    m.ApplicationID,
		StockMoveID:      m.StockMoveID,
		PreviousUnitCost: m.PreviousUnitCost,
		NewUnitCost:      m.NewUnitCost,
	}
}

// FromDomain populates the persistence model from a domain Adjustment.
func (m *LandedCostAdjustmentModel) FromDomain(a *costing.Adjustment) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.ApplicationID = a.ApplicationID
	m.StockMoveID = a.StockMoveID
	m.PreviousUnitCost = a.PreviousUnitCost
	m.NewUnitCost = a.NewUnitCost
}

// LandedCostAdjustmentModelFromDomain creates a new model from a domain Adjustment.
func LandedCostAdjustmentModelFromDomain(a *costing.Adjustment) *LandedCostAdjustmentModel {
	m := &LandedCostAdjustmentModel{}
	m.FromDomain(a)
	return m
}
