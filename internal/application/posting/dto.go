package posting

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/document"
)

// LineRequest represents one document line in create/update requests.
// A zero ItemID makes the line a non-stock service line: quantity,
// unit and stock references are ignored, only UnitPrice (the charge),
// VatRate and Description apply.
type LineRequest struct {
	ItemID           uuid.UUID       `json:"item_id"`
	Quantity         decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	VatRate          decimal.Decimal `json:"vat_rate"`
	UnitCode         string          `json:"unit_code" binding:"required"`
	UnitCoefficient  decimal.Decimal `json:"unit_coefficient" binding:"required"`
	LotID            *uuid.UUID      `json:"lot_id"`
	NewLotNumber     string          `json:"new_lot_number"`
	VariantID        *uuid.UUID      `json:"variant_id"`
	SourceLocationID *uuid.UUID      `json:"source_location_id"`
	DestLocationID   *uuid.UUID      `json:"dest_location_id"`
	Description      string          `json:"description"`
}

// CreateDocumentRequest represents a request to create a draft document.
type CreateDocumentRequest struct {
	Type               string          `json:"type" binding:"required,doctype"`
	Date               time.Time       `json:"date" binding:"required"`
	Currency           string          `json:"currency" binding:"required,len=3"`
	FxRate             decimal.Decimal `json:"fx_rate"`
	PartnerID          *uuid.UUID      `json:"partner_id"`
	CashAccountID      *uuid.UUID      `json:"cash_account_id"`
	DueDate            *time.Time      `json:"due_date"`
	AllowNegativeStock bool            `json:"allow_negative_stock"`
	Remark             string          `json:"remark"`
	Lines              []LineRequest   `json:"lines"`
}

// UpdateDraftRequest replaces a draft's header fields and full line set.
type UpdateDraftRequest struct {
	Date               time.Time       `json:"date" binding:"required"`
	Currency           string          `json:"currency" binding:"required,len=3"`
	FxRate             decimal.Decimal `json:"fx_rate"`
	PartnerID          *uuid.UUID      `json:"partner_id"`
	CashAccountID      *uuid.UUID      `json:"cash_account_id"`
	DueDate            *time.Time      `json:"due_date"`
	AllowNegativeStock bool            `json:"allow_negative_stock"`
	Remark             string          `json:"remark"`
	Lines              []LineRequest   `json:"lines"`
}

// CancelDocumentRequest carries the cancellation reason.
type CancelDocumentRequest struct {
	Reason string `json:"reason"`
}

// LineResponse represents a document line in API responses.
type LineResponse struct {
	ID               uuid.UUID       `json:"id"`
	ItemID           uuid.UUID       `json:"item_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	VatRate          decimal.Decimal `json:"vat_rate"`
	UnitCode         string          `json:"unit_code"`
	UnitCoefficient  decimal.Decimal `json:"unit_coefficient"`
	BaseQuantity     decimal.Decimal `json:"base_quantity"`
	NetAmount        decimal.Decimal `json:"net_amount"`
	GrossAmount      decimal.Decimal `json:"gross_amount"`
	LotID            *uuid.UUID      `json:"lot_id,omitempty"`
	NewLotNumber     string          `json:"new_lot_number,omitempty"`
	VariantID        *uuid.UUID      `json:"variant_id,omitempty"`
	SourceLocationID *uuid.UUID      `json:"source_location_id,omitempty"`
	DestLocationID   *uuid.UUID      `json:"dest_location_id,omitempty"`
	Description      string          `json:"description,omitempty"`
}

// DocumentResponse represents a document in API responses.
type DocumentResponse struct {
	ID                 uuid.UUID       `json:"id"`
	Number             string          `json:"number"`
	Type               string          `json:"type"`
	Status             string          `json:"status"`
	Date               time.Time       `json:"date"`
	Currency           string          `json:"currency"`
	FxRate             decimal.Decimal `json:"fx_rate"`
	PartnerID          *uuid.UUID      `json:"partner_id,omitempty"`
	CashAccountID      *uuid.UUID      `json:"cash_account_id,omitempty"`
	DueDate            *time.Time      `json:"due_date,omitempty"`
	AllowNegativeStock bool            `json:"allow_negative_stock"`
	Remark             string          `json:"remark,omitempty"`
	NetTotal           decimal.Decimal `json:"net_total"`
	GrossTotal         decimal.Decimal `json:"gross_total"`
	GrossTotalTry      decimal.Decimal `json:"gross_total_try"`
	PostedAt           *time.Time      `json:"posted_at,omitempty"`
	CancelledAt        *time.Time      `json:"cancelled_at,omitempty"`
	CancelReason       string          `json:"cancel_reason,omitempty"`
	SourceDocumentID   *uuid.UUID      `json:"source_document_id,omitempty"`
	Lines              []LineResponse  `json:"lines"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	Version            int             `json:"version"`
}

// ToDocumentResponse converts a document aggregate to its response form.
func ToDocumentResponse(doc *document.Document) *DocumentResponse {
	lines := make([]LineResponse, 0, len(doc.Lines))
	for i := range doc.Lines {
		line := &doc.Lines[i]
		lines = append(lines, LineResponse{
			ID:               line.ID,
			ItemID:           line.ItemID,
			Quantity:         line.Quantity,
			UnitPrice:        line.UnitPrice,
			VatRate:          line.VatRate,
			UnitCode:         line.UnitCode,
			UnitCoefficient:  line.UnitCoefficient,
			BaseQuantity:     line.BaseQuantity(),
			NetAmount:        line.NetAmount(),
			GrossAmount:      line.GrossAmount(),
			LotID:            line.LotID,
			NewLotNumber:     line.NewLotNumber,
			VariantID:        line.VariantID,
			SourceLocationID: line.SourceLocation,
			DestLocationID:   line.DestLocation,
			Description:      line.Description,
		})
	}
	return &DocumentResponse{
		ID:                 doc.ID,
		Number:             doc.Number,
		Type:               doc.Type.String(),
		Status:             doc.Status.String(),
		Date:               doc.Date,
		Currency:           string(doc.Currency),
		FxRate:             doc.FxRate,
		PartnerID:          doc.PartnerID,
		CashAccountID:      doc.CashAccountID,
		DueDate:            doc.DueDate,
		AllowNegativeStock: doc.AllowNegativeStock,
		Remark:             doc.Remark,
		NetTotal:           doc.NetTotal().Amount(),
		GrossTotal:         doc.GrossTotal().Amount(),
		GrossTotalTry:      doc.GrossTotalTRY(),
		PostedAt:           doc.PostedAt,
		CancelledAt:        doc.CancelledAt,
		CancelReason:       doc.CancelReason,
		SourceDocumentID:   doc.SourceDocumentID,
		Lines:              lines,
		CreatedAt:          doc.CreatedAt,
		UpdatedAt:          doc.UpdatedAt,
		Version:            doc.Version,
	}
}
