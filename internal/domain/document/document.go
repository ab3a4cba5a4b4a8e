package document

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared/valueobject"
)

// Status represents the lifecycle state of a document.
// Draft is the only mutable state. Posted and Cancelled are terminal.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusApproved  Status = "APPROVED"
	StatusPosted    Status = "POSTED"
	StatusCancelled Status = "CANCELLED"
)

// IsValid returns true if the status is part of the closed set.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusApproved, StatusPosted, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true for states no transition leaves.
func (s Status) IsTerminal() bool {
	return s == StatusPosted || s == StatusCancelled
}

// CanPost returns true if the document may still be posted.
func (s Status) CanPost() bool {
	return s == StatusDraft || s == StatusApproved
}

// Document is the aggregate root of the posting engine. A draft owns
// its lines and may be freely rewritten; once posted, the document and
// everything derived from it (stock moves, ledger entries) is immutable.
type Document struct {
	shared.BaseAggregateRoot
	Number             string
	Type               Type
	Status             Status
	Date               time.Time
	Currency           valueobject.Currency
	FxRate             decimal.Decimal // 1 document currency = FxRate TRY
	PartnerID          *uuid.UUID
	CashAccountID      *uuid.UUID
	DueDate            *time.Time
	AllowNegativeStock bool
	Lines              []Line
	Remark             string
	PostedAt           *time.Time
	CancelledAt        *time.Time
	CancelReason       string
	SourceDocumentID   *uuid.UUID // set on documents created by conversion
}

// New creates a draft document. Header-level requirements of the type
// (partner, cash account) are enforced here; line-level requirements
// are enforced per line by Validate.
func New(docType Type, date time.Time, currency valueobject.Currency, fxRate decimal.Decimal) (*Document, error) {
	if !docType.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("Unknown document type: %s", docType))
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Document date cannot be empty")
	}
	if currency == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Document currency cannot be empty")
	}
	if fxRate.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Document FX rate must be positive")
	}

	return &Document{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Type:              docType,
		Status:            StatusDraft,
		Date:              date,
		Currency:          currency,
		FxRate:            fxRate,
		Lines:             []Line{},
	}, nil
}

// WithPartner sets the partner reference.
func (d *Document) WithPartner(partnerID uuid.UUID) *Document {
	d.PartnerID = &partnerID
	return d
}

// WithCashAccount sets the cash account reference.
func (d *Document) WithCashAccount(accountID uuid.UUID) *Document {
	d.CashAccountID = &accountID
	return d
}

// WithDueDate sets the payment due date.
func (d *Document) WithDueDate(dueDate time.Time) *Document {
	d.DueDate = &dueDate
	return d
}

// WithNumber sets the document number.
func (d *Document) WithNumber(number string) *Document {
	d.Number = number
	return d
}

// WithRemark sets the free-text remark.
func (d *Document) WithRemark(remark string) *Document {
	d.Remark = remark
	return d
}

// IsDraft returns true while the document is still editable.
func (d *Document) IsDraft() bool {
	return d.Status == StatusDraft
}

// ReplaceLines swaps the full line set. Only drafts may be rewritten.
func (d *Document) ReplaceLines(lines []Line) error {
	if !d.IsDraft() {
		return shared.ErrNotDraft
	}
	for i := range lines {
		lines[i].DocumentID = d.ID
	}
	d.Lines = lines
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
	return nil
}

// AddLine appends a line to a draft.
func (d *Document) AddLine(line Line) error {
	if !d.IsDraft() {
		return shared.ErrNotDraft
	}
	line.DocumentID = d.ID
	d.Lines = append(d.Lines, line)
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
	return nil
}

// Validate checks the whole document against its type's requirements.
// It runs before any posting transaction starts, so a failure here
// never leaves partial effects.
func (d *Document) Validate() error {
	traits := d.Type.Traits()

	if traits.RequiresPartner && d.PartnerID == nil {
		return shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("%s requires a partner", d.Type))
	}
	if traits.RequiresCashAccount && d.CashAccountID == nil {
		return shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("%s requires a cash account", d.Type))
	}
	if traits.AffectsStock && len(d.Lines) == 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Stock-affecting document requires at least one line")
	}
	for i := range d.Lines {
		if err := d.Lines[i].Validate(d.Type); err != nil {
			return err
		}
	}
	return nil
}

// Approve moves a draft to Approved. Approval has no stock or ledger
// effects; it only freezes the lines until posting or cancellation.
func (d *Document) Approve() error {
	if d.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve document in %s status", d.Status))
	}
	if err := d.Validate(); err != nil {
		return err
	}
	d.Status = StatusApproved
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
	return nil
}

// MarkPosted flips the document to its terminal Posted state. Called
// by the posting service as the final step of the atomic posting
// transaction, after all stock moves and ledger entries are written.
func (d *Document) MarkPosted(at time.Time) error {
	if !d.Status.CanPost() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot post document in %s status", d.Status))
	}
	d.Status = StatusPosted
	d.PostedAt = &at
	d.UpdatedAt = at
	d.IncrementVersion()
	return nil
}

// Cancel terminates a document that has not produced any effects yet.
// A posted document cannot be cancelled; reversing it requires a
// compensating document.
func (d *Document) Cancel(reason string) error {
	if d.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel document in %s status", d.Status))
	}
	now := time.Now()
	d.Status = StatusCancelled
	d.CancelledAt = &now
	d.CancelReason = reason
	d.UpdatedAt = now
	d.IncrementVersion()
	return nil
}

// NetTotal returns the pre-VAT total as money in document currency.
func (d *Document) NetTotal() valueobject.Money {
	total := valueobject.Zero(d.Currency)
	for i := range d.Lines {
		line, _ := valueobject.NewMoney(d.Lines[i].NetAmount(), d.Currency)
		total = total.MustAdd(line)
	}
	return total
}

// GrossTotal returns the VAT-inclusive total as money in document
// currency.
func (d *Document) GrossTotal() valueobject.Money {
	total := valueobject.Zero(d.Currency)
	for i := range d.Lines {
		line, _ := valueobject.NewMoney(d.Lines[i].GrossAmount(), d.Currency)
		total = total.MustAdd(line)
	}
	return total
}

// GrossTotalTRY returns the VAT-inclusive total converted to the
// reporting currency at the document FX rate, rounded for persistence.
// The FX rate is validated positive on creation and update.
func (d *Document) GrossTotalTRY() decimal.Decimal {
	try, err := d.GrossTotal().ConvertTo(valueobject.TRY, d.FxRate)
	if err != nil {
		return decimal.Zero
	}
	return shared.RoundMoney(try.Amount())
}

// ConvertTo creates a new draft of the target type carrying copies of
// this document's lines. The source document is left untouched; the
// conversion is recorded through SourceDocumentID on the new draft.
func (d *Document) ConvertTo(target Type, date time.Time) (*Document, error) {
	doc, err := New(target, date, d.Currency, d.FxRate)
	if err != nil {
		return nil, err
	}
	if d.PartnerID != nil {
		doc.WithPartner(*d.PartnerID)
	}
	if d.DueDate != nil {
		doc.WithDueDate(*d.DueDate)
	}
	doc.SourceDocumentID = &d.ID

	lines := make([]Line, 0, len(d.Lines))
	for i := range d.Lines {
		src := d.Lines[i]
		line := Line{
			BaseEntity:      shared.NewBaseEntity(),
			ItemID:          src.ItemID,
			Quantity:        src.Quantity,
			UnitPrice:       src.UnitPrice,
			VatRate:         src.VatRate,
			UnitCode:        src.UnitCode,
			UnitCoefficient: src.UnitCoefficient,
			LotID:           src.LotID,
			VariantID:       src.VariantID,
			SourceLocation:  src.SourceLocation,
			DestLocation:    src.DestLocation,
			Description:     src.Description,
		}
		lines = append(lines, line)
	}
	if err := doc.ReplaceLines(lines); err != nil {
		return nil, err
	}
	return doc, nil
}
