package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/inventory"
)

// ItemModel is the persistence model for the Item aggregate root.
type ItemModel struct {
	AggregateModel
	Code         string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name         string          `gorm:"type:varchar(200);not null"`
	BaseUnitCode string          `gorm:"type:varchar(10);not null"`
	UnitCost     decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0"`
	Active       bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ItemModel) TableName() string {
	return "items"
}

// ToDomain converts the persistence model to a domain Item aggregate.
func (m *ItemModel) ToDomain() *inventory.Item {
	item := &inventory.Item{
		Code:         m.Code,
		Name:         m.Name,
		BaseUnitCode: m.BaseUnitCode,
		UnitCost:     m.UnitCost,
		Active:       m.Active,
	}
	m.PopulateAggregateRoot(&item.BaseAggregateRoot)
	return item
}

// FromDomain populates the persistence model from a domain Item aggregate.
func (m *ItemModel) FromDomain(i *inventory.Item) {
	m.FromDomainAggregateRoot(i.BaseAggregateRoot)
	m.Code = i.Code
	m.Name = i.Name
	m.BaseUnitCode = i.BaseUnitCode
	m.UnitCost = i.UnitCost
	m.Active = i.Active
}

// ItemModelFromDomain creates a new persistence model from a domain Item.
func ItemModelFromDomain(i *inventory.Item) *ItemModel {
	m := &ItemModel{}
	m.FromDomain(i)
	return m
}

// StockMoveModel is the persistence model for the StockMove entity.
type StockMoveModel struct {
	BaseModel
	ItemID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity       decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	UnitCost       decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	SourceLocation *uuid.UUID      `gorm:"type:uuid;index"`
	DestLocation   *uuid.UUID      `gorm:"type:uuid;index"`
	LotID          *uuid.UUID      `gorm:"type:uuid;index"`
	VariantID      *uuid.UUID      `gorm:"type:uuid;index"`
	DocumentID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	DocumentLineID uuid.UUID       `gorm:"type:uuid;not null"`
	MoveDate       time.Time       `gorm:"type:date;not null;index"`
}

// TableName returns the table name for GORM
func (StockMoveModel) TableName() string {
	return "stock_moves"
}

// ToDomain converts the persistence model to a domain StockMove entity.
func (m *StockMoveModel) ToDomain() *inventory.StockMove {
	return &inventory.StockMove{
		BaseEntity:     m.BaseModel.ToDomain(),
		ItemID:         m.ItemID,
		Quantity:       m.Quantity,
		UnitCost:       m.UnitCost,
		SourceLocation: m.SourceLocation,
		DestLocation:   m.DestLocation,
		LotID:          m.LotID,
		VariantID:      m.VariantID,
		DocumentID:     m.DocumentID,
		DocumentLineID: m.DocumentLineID,
		MoveDate:       m.MoveDate,
	}
}

// FromDomain populates the persistence model from a domain StockMove entity.
func (m *StockMoveModel) FromDomain(s *inventory.StockMove) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.ItemID = s.ItemID
	m.Quantity = s.Quantity
	m.UnitCost = s.UnitCost
	m.SourceLocation = s.SourceLocation
	m.DestLocation = s.DestLocation
	m.LotID = s.LotID
	m.VariantID = s.VariantID
	m.DocumentID = s.DocumentID
	m.DocumentLineID = s.DocumentLineID
	m.MoveDate = s.MoveDate
}

// StockMoveModelFromDomain creates a new persistence model from a domain StockMove.
func StockMoveModelFromDomain(s *inventory.StockMove) *StockMoveModel {
	m := &StockMoveModel{}
	m.FromDomain(s)
	return m
}

// LotModel is the persistence model for the Lot entity.
type LotModel struct {
	BaseModel
	ItemID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_lot_item_number,priority:1"`
	Number string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_lot_item_number,priority:2"`
}

// TableName returns the table name for GORM
func (LotModel) TableName() string {
	return "lots"
}

// ToDomain converts the persistence model to a domain Lot entity.
func (m *LotModel) ToDomain() *inventory.Lot {
	return &inventory.Lot{
		BaseEntity: m.BaseModel.ToDomain(),
		ItemID:     m.ItemID,
		Number:     m.Number,
	}
}

// FromDomain populates the persistence model from a domain Lot entity.
func (m *LotModel) FromDomain(l *inventory.Lot) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.ItemID = l.ItemID
	m.Number = l.Number
}

// LotModelFromDomain creates a new persistence model from a domain Lot.
func LotModelFromDomain(l *inventory.Lot) *LotModel {
	m := &LotModel{}
	m.FromDomain(l)
	return m
}
