package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/ledger"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared/valueobject"
)

// PartnerModel is the persistence model for the Partner aggregate root.
type PartnerModel struct {
	AggregateModel
	Code           string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name           string           `gorm:"type:varchar(200);not null"`
	Currency       string           `gorm:"type:varchar(3);not null"`
	CreditLimitTry *decimal.Decimal `gorm:"type:decimal(18,2)"`
	Active         bool             `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (PartnerModel) TableName() string {
	return "partners"
}

// ToDomain converts the persistence model to a domain Partner aggregate.
func (m *PartnerModel) ToDomain() *ledger.Partner {
	p := &ledger.Partner{
		Code:           m.Code,
		Name:           m.Name,
		Currency:       valueobject.Currency(m.Currency),
		CreditLimitTry: m.CreditLimitTry,
		Active:         m.Active,
	}
	m.PopulateAggregateRoot(&p.BaseAggregateRoot)
	return p
}

// FromDomain populates the persistence model from a domain Partner aggregate.
func (m *PartnerModel) FromDomain(p *ledger.Partner) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Code = p.Code
	m.Name = p.Name
	m.Currency = string(p.Currency)
	m.CreditLimitTry = p.CreditLimitTry
	m.Active = p.Active
}

// PartnerModelFromDomain creates a new persistence model from a domain Partner.
func PartnerModelFromDomain(p *ledger.Partner) *PartnerModel {
	m := &PartnerModel{}
	m.FromDomain(p)
	return m
}

// CashAccountModel is the persistence model for the CashAccount aggregate root.
type CashAccountModel struct {
	AggregateModel
	Code     string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name     string `gorm:"type:varchar(200);not null"`
	Currency string `gorm:"type:varchar(3);not null"`
	Active   bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CashAccountModel) TableName() string {
	return "cash_accounts"
}

// ToDomain converts the persistence model to a domain CashAccount aggregate.
func (m *CashAccountModel) ToDomain() *ledger.CashAccount {
	a := &ledger.CashAccount{
		Code:     m.Code,
		Name:     m.Name,
		Currency: valueobject.Currency(m.Currency),
		Active:   m.Active,
	}
	m.PopulateAggregateRoot(&a.BaseAggregateRoot)
	return a
}

// FromDomain populates the persistence model from a domain CashAccount aggregate.
func (m *CashAccountModel) FromDomain(a *ledger.CashAccount) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.Code = a.Code
	m.Name = a.Name
	m.Currency = string(a.Currency)
	m.Active = a.Active
}

// CashAccountModelFromDomain creates a new persistence model from a domain CashAccount.
func CashAccountModelFromDomain(a *ledger.CashAccount) *CashAccountModel {
	m := &CashAccountModel{}
	m.FromDomain(a)
	return m
}

// PartnerLedgerEntryModel is the persistence model for PartnerLedgerEntry.
type PartnerLedgerEntryModel struct {
	BaseModel
	PartnerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	DocumentID uuid.UUID       `gorm:"type:uuid;not null;index"`
	EntryDate  time.Time       `gorm:"type:date;not null;index"`
	DueDate    *time.Time      `gorm:"type:date"`
	Debit      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Credit     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	AmountTry  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status     string          `gorm:"type:varchar(10);not null;index"`
}

// TableName returns the table name for GORM
func (PartnerLedgerEntryModel) TableName() string {
	return "partner_ledger_entries"
}

// ToDomain converts the persistence model to a domain PartnerLedgerEntry.
func (m *PartnerLedgerEntryModel) ToDomain() *ledger.PartnerLedgerEntry {
	return &ledger.PartnerLedgerEntry{
		BaseEntity: m.BaseModel.ToDomain(),
		PartnerID:  m.PartnerID,
		DocumentID: m.DocumentID,
		EntryDate:  m.EntryDate,
		DueDate:    m.DueDate,
		Debit:      m.Debit,
		Credit:     m.Credit,
		AmountTry:  m.AmountTry,
		Status:     ledger.EntryStatus(m.Status),
	}
}

// FromDomain populates the persistence model from a domain PartnerLedgerEntry.
func (m *PartnerLedgerEntryModel) FromDomain(e *ledger.PartnerLedgerEntry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.PartnerID = e.PartnerID
	m.DocumentID = e.DocumentID
	m.EntryDate = e.EntryDate
	m.DueDate = e.DueDate
	m.Debit = e.Debit
	m.Credit = e.Credit
	m.AmountTry = e.AmountTry
	m.Status = string(e.Status)
}

// PartnerLedgerEntryModelFromDomain creates a new model from a domain entry.
func PartnerLedgerEntryModelFromDomain(e *ledger.PartnerLedgerEntry) *PartnerLedgerEntryModel {
	m := &PartnerLedgerEntryModel{}
	m.FromDomain(e)
	return m
}

// PaymentAllocationModel is the persistence model for PaymentAllocation.
type PaymentAllocationModel struct {
	BaseModel
	PartnerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvoiceEntryID uuid.UUID       `gorm:"type:uuid;not null;index"`
	PaymentEntryID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	AllocatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentAllocationModel) TableName() string {
	return "payment_allocations"
}

// ToDomain converts the persistence model to a domain PaymentAllocation.
func (m *PaymentAllocationModel) ToDomain() *ledger.PaymentAllocation {
	return &ledger.PaymentAllocation{
		BaseEntity:     m.BaseModel.ToDomain(),
		PartnerID:      m.PartnerID,
		InvoiceEntryID: m.InvoiceEntryID,
		PaymentEntryID: m.PaymentEntryID,
		Amount:         m.Amount,
		AllocatedAt:    m.AllocatedAt,
	}
}

// FromDomain populates the persistence model from a domain PaymentAllocation.
func (m *PaymentAllocationModel) FromDomain(a *ledger.PaymentAllocation) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.PartnerID = a.PartnerID
	m.InvoiceEntryID = a.InvoiceEntryID
	m.PaymentEntryID = a.PaymentEntryID
	m.Amount = a.Amount
	m.AllocatedAt = a.AllocatedAt
}

// PaymentAllocationModelFromDomain creates a new model from a domain allocation.
func PaymentAllocationModelFromDomain(a *ledger.PaymentAllocation) *PaymentAllocationModel {
	m := &PaymentAllocationModel{}
	m.FromDomain(a)
	return m
}

// CashLedgerEntryModel is the persistence model for CashLedgerEntry.
// Balance is derived at read time and never stored.
type CashLedgerEntryModel struct {
	BaseModel
	AccountID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	DocumentID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	DocumentType string          `gorm:"type:varchar(30);not null"`
	EntryDate    time.Time       `gorm:"type:date;not null;index"`
	Debit        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Credit       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (CashLedgerEntryModel) TableName() string {
	return "cash_ledger_entries"
}

// ToDomain converts the persistence model to a domain CashLedgerEntry.
func (m *CashLedgerEntryModel) ToDomain() *ledger.CashLedgerEntry {
	return &ledger.CashLedgerEntry{
		BaseEntity:   m.BaseModel.ToDomain(),
		AccountID:    m.AccountID,
		DocumentID:   m.DocumentID,
		DocumentType: m.DocumentType,
		EntryDate:    m.EntryDate,
		Debit:        m.Debit,
		Credit:       m.Credit,
	}
}

// FromDomain populates the persistence model from a domain CashLedgerEntry.
func (m *CashLedgerEntryModel) FromDomain(e *ledger.CashLedgerEntry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.AccountID = e.AccountID
	m.DocumentID = e.DocumentID
	m.DocumentType = e.DocumentType
	m.EntryDate = e.EntryDate
	m.Debit = e.Debit
	m.Credit = e.Credit
}

// CashLedgerEntryModelFromDomain creates a new model from a domain entry.
func CashLedgerEntryModelFromDomain(e *ledger.CashLedgerEntry) *CashLedgerEntryModel {
	m := &CashLedgerEntryModel{}
	m.FromDomain(e)
	return m
}
