package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	ledgerapp "github.com/mertekinci24/FemmeERP-sub000/internal/application/ledger"
)

// PartnerHandler handles partner master and partner ledger endpoints
type PartnerHandler struct {
	BaseHandler
	partnerService    *ledgerapp.PartnerService
	agingService      *ledgerapp.AgingService
	creditService     *ledgerapp.CreditService
	allocationService *ledgerapp.AllocationService
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(
	partnerService *ledgerapp.PartnerService,
	agingService *ledgerapp.AgingService,
	creditService *ledgerapp.CreditService,
	allocationService *ledgerapp.AllocationService,
) *PartnerHandler {
	return &PartnerHandler{
		partnerService:    partnerService,
		agingService:      agingService,
		creditService:     creditService,
		allocationService: allocationService,
	}
}

// SetCreditLimitRequest sets or clears a partner's credit limit
type SetCreditLimitRequest struct {
	CreditLimit *decimal.Decimal `json:"credit_limit"`
}

// Create creates a partner master record
func (h *PartnerHandler) Create(c *gin.Context) {
	var req ledgerapp.CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	partner, err := h.partnerService.CreatePartner(c.Request.Context(), &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, partner)
}

// Get returns a partner by ID
func (h *PartnerHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid partner ID")
		return
	}

	partner, err := h.partnerService.GetPartner(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, partner)
}

// List returns all partners; ?active=true restricts to active ones
func (h *PartnerHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	partners, err := h.partnerService.ListPartners(c.Request.Context(), activeOnly)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, partners)
}

// SetCreditLimit sets or clears a partner's credit limit
func (h *PartnerHandler) SetCreditLimit(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid partner ID")
		return
	}

	var req SetCreditLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	partner, err := h.partnerService.SetCreditLimit(c.Request.Context(), id, req.CreditLimit)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, partner)
}

// Aging returns the aging report of a partner's open receivables.
// ?as_of=2026-01-31 moves the reference date; default is today.
func (h *PartnerHandler) Aging(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid partner ID")
		return
	}

	asOf := time.Now()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "Invalid as_of date, expected YYYY-MM-DD")
			return
		}
		asOf = parsed
	}

	report, err := h.agingService.GetPartnerAging(c.Request.Context(), id, asOf)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, report)
}

// CreditCheck reports whether an incoming amount would fit under the
// partner's credit limit
func (h *PartnerHandler) CreditCheck(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid partner ID")
		return
	}

	var req ledgerapp.CreditCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.creditService.CheckCredit(c.Request.Context(), id, req.Amount)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// Allocate matches a payment ledger entry against an invoice entry
func (h *PartnerHandler) Allocate(c *gin.Context) {
	var req ledgerapp.AllocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	allocation, err := h.allocationService.Allocate(c.Request.Context(), &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, allocation)
}
