package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/document"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared/valueobject"
)

// DocumentModel is the persistence model for the Document aggregate root.
type DocumentModel struct {
	AggregateModel
	Number             string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	Type               string          `gorm:"type:varchar(30);not null;index"`
	Status             string          `gorm:"type:varchar(15);not null;index"`
	Date               time.Time       `gorm:"type:date;not null;index"`
	Currency           string          `gorm:"type:varchar(3);not null"`
	FxRate             decimal.Decimal `gorm:"type:decimal(18,6);not null;default:1"`
	PartnerID          *uuid.UUID      `gorm:"type:uuid;index"`
	CashAccountID      *uuid.UUID      `gorm:"type:uuid;index"`
	DueDate            *time.Time      `gorm:"type:date"`
	AllowNegativeStock bool            `gorm:"not null;default:false"`
	Remark             string          `gorm:"type:text"`
	PostedAt           *time.Time
	CancelledAt        *time.Time
	CancelReason       string     `gorm:"type:text"`
	SourceDocumentID   *uuid.UUID `gorm:"type:uuid;index"`
	// Associations
	Lines []DocumentLineModel `gorm:"foreignKey:DocumentID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (DocumentModel) TableName() string {
	return "documents"
}

// ToDomain converts the persistence model to a domain Document aggregate.
func (m *DocumentModel) ToDomain() *document.Document {
	doc := &document.Document{
		Number:             m.Number,
		Type:               document.Type(m.Type),
		Status:             document.Status(m.Status),
		Date:               m.Date,
		Currency:           valueobject.Currency(m.Currency),
		FxRate:             m.FxRate,
		PartnerID:          m.PartnerID,
		CashAccountID:      m.CashAccountID,
		DueDate:            m.DueDate,
		AllowNegativeStock: m.AllowNegativeStock,
		Remark:             m.Remark,
		PostedAt:           m.PostedAt,
		CancelledAt:        m.CancelledAt,
		CancelReason:       m.CancelReason,
		SourceDocumentID:   m.SourceDocumentID,
		Lines:              make([]document.Line, len(m.Lines)),
	}
	m.PopulateAggregateRoot(&doc.BaseAggregateRoot)
	for i := range m.Lines {
		doc.Lines[i] = *m.Lines[i].ToDomain()
	}
	return doc
}

// FromDomain populates the persistence model from a domain Document aggregate.
func (m *DocumentModel) FromDomain(d *document.Document) {
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.Number = d.Number
	m.Type = d.Type.String()
	m.Status = d.Status.String()
	m.Date = d.Date
	m.Currency = string(d.Currency)
	m.FxRate = d.FxRate
	m.PartnerID = d.PartnerID
	m.CashAccountID = d.CashAccountID
	m.DueDate = d.DueDate
	m.AllowNegativeStock = d.AllowNegativeStock
	m.Remark = d.Remark
	m.PostedAt = d.PostedAt
	m.CancelledAt = d.CancelledAt
	m.CancelReason = d.CancelReason
	m.SourceDocumentID = d.SourceDocumentID
	m.Lines = make([]DocumentLineModel, len(d.Lines))
	for i := range d.Lines {
		m.Lines[i] = *DocumentLineModelFromDomain(&d.Lines[i])
	}
}

// DocumentModelFromDomain creates a new persistence model from a domain Document.
func DocumentModelFromDomain(d *document.Document) *DocumentModel {
	m := &DocumentModel{}
	m.FromDomain(d)
	return m
}

// DocumentLineModel is the persistence model for the Line entity.
type DocumentLineModel struct {
	BaseModel
	DocumentID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID          uuid.UUID       `gorm:"type:uuid;index"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	VatRate         decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"`
	UnitCode        string          `gorm:"type:varchar(10);not null"`
	UnitCoefficient decimal.Decimal `gorm:"type:decimal(18,6);not null;default:1"`
	LotID           *uuid.UUID      `gorm:"type:uuid"`
	NewLotNumber    string          `gorm:"type:varchar(50)"`
	VariantID       *uuid.UUID      `gorm:"type:uuid"`
	SourceLocation  *uuid.UUID      `gorm:"type:uuid"`
	DestLocation    *uuid.UUID      `gorm:"type:uuid"`
	Description     string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (DocumentLineModel) TableName() string {
	return "document_lines"
}

// ToDomain converts the persistence model to a domain Line entity.
func (m *DocumentLineModel) ToDomain() *document.Line {
	return &document.Line{
		BaseEntity:      m.BaseModel.ToDomain(),
		DocumentID:      m.DocumentID,
		ItemID:          m.ItemID,
		Quantity:        m.Quantity,
		UnitPrice:       m.UnitPrice,
		VatRate:         m.VatRate,
		UnitCode:        m.UnitCode,
		UnitCoefficient: m.UnitCoefficient,
		LotID:           m.LotID,
		NewLotNumber:    m.NewLotNumber,
		VariantID:       m.VariantID,
		SourceLocation:  m.SourceLocation,
		DestLocation:    m.DestLocation,
		Description:     m.Description,
	}
}

// FromDomain populates the persistence model from a domain Line entity.
func (m *DocumentLineModel) FromDomain(l *document.Line) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.DocumentID = l.DocumentID
	m.ItemID = l.ItemID
	m.Quantity = l.Quantity
	m.UnitPrice = l.UnitPrice
	m.VatRate = l.VatRate
	m.UnitCode = l.UnitCode
	m.UnitCoefficient = l.UnitCoefficient
	m.LotID = l.LotID
	m.NewLotNumber = l.NewLotNumber
	m.VariantID = l.VariantID
	m.SourceLocation = l.SourceLocation
	m.DestLocation = l.DestLocation
	m.Description = l.Description
}

// DocumentLineModelFromDomain creates a new persistence model from a domain Line.
func DocumentLineModelFromDomain(l *document.Line) *DocumentLineModel {
	m := &DocumentLineModel{}
	m.FromDomain(l)
	return m
}

// NumberSequenceModel backs document number reservation. One row per
// document type and year; the counter advances under a row lock.
type NumberSequenceModel struct {
	DocumentType string `gorm:"type:varchar(30);primaryKey"`
	Year         int    `gorm:"primaryKey"`
	Counter      int64  `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (NumberSequenceModel) TableName() string {
	return "number_sequences"
}
