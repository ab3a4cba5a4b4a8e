package handler

import (
	"github.com/gin-gonic/gin"

	costingapp "github.com/mertekinci24/FemmeERP-sub000/internal/application/costing"
)

// LandedCostHandler handles landed cost allocation endpoints
type LandedCostHandler struct {
	BaseHandler
	landedCostService *costingapp.LandedCostService
}

// NewLandedCostHandler creates a new LandedCostHandler
func NewLandedCostHandler(landedCostService *costingapp.LandedCostService) *LandedCostHandler {
	return &LandedCostHandler{landedCostService: landedCostService}
}

// Apply distributes a purchase invoice's extra costs over receipts
func (h *LandedCostHandler) Apply(c *gin.Context) {
	var req costingapp.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	application, err := h.landedCostService.Apply(c.Request.Context(), &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, application)
}

// Reverse rolls back a landed cost application
func (h *LandedCostHandler) Reverse(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid application ID")
		return
	}

	if err := h.landedCostService.Reverse(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
