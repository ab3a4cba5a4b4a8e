package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ledgerapp "github.com/mertekinci24/FemmeERP-sub000/internal/application/ledger"
)

// CashAccountHandler handles cash account and cash ledger endpoints
type CashAccountHandler struct {
	BaseHandler
	cashService *ledgerapp.CashService
}

// NewCashAccountHandler creates a new CashAccountHandler
func NewCashAccountHandler(cashService *ledgerapp.CashService) *CashAccountHandler {
	return &CashAccountHandler{cashService: cashService}
}

// Create creates a cash account
func (h *CashAccountHandler) Create(c *gin.Context) {
	var req ledgerapp.CreateCashAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	account, err := h.cashService.CreateAccount(c.Request.Context(), &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, account)
}

// Get returns a cash account by ID
func (h *CashAccountHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	account, err := h.cashService.GetAccount(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, account)
}

// List returns all cash accounts; ?active=true restricts to active ones
func (h *CashAccountHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	accounts, err := h.cashService.ListAccounts(c.Request.Context(), activeOnly)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, accounts)
}

// Delete removes a cash account without ledger entries
func (h *CashAccountHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	if err := h.cashService.DeleteAccount(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Deactivate takes a cash account out of use, keeping its history
func (h *CashAccountHandler) Deactivate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	account, err := h.cashService.DeactivateAccount(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, account)
}

// Statement returns the account's entries with running balances
func (h *CashAccountHandler) Statement(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	entries, err := h.cashService.GetStatement(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, entries)
}

// Balance returns the account balance as of a date; default is now
func (h *CashAccountHandler) Balance(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	var asOf time.Time
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "Invalid as_of date, expected YYYY-MM-DD")
			return
		}
		asOf = parsed
	}

	balance, err := h.cashService.GetBalance(c.Request.Context(), id, asOf)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, balance)
}

// CreateReceipt posts an incoming cash movement against the account
func (h *CashAccountHandler) CreateReceipt(c *gin.Context) {
	h.createMovement(c, h.cashService.CreateReceipt)
}

// CreatePayment posts an outgoing cash movement against the account
func (h *CashAccountHandler) CreatePayment(c *gin.Context) {
	h.createMovement(c, h.cashService.CreatePayment)
}

func (h *CashAccountHandler) createMovement(c *gin.Context, post func(ctx context.Context, accountID uuid.UUID, req *ledgerapp.CashMovementRequest) (*ledgerapp.CashMovementResponse, error)) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	var req ledgerapp.CashMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	movement, err := post(c.Request.Context(), id, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, movement)
}
