package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mertekinci24/FemmeERP-sub000/internal/application/posting"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/document"
)

// DocumentHandler handles document lifecycle endpoints
type DocumentHandler struct {
	BaseHandler
	postingService    *posting.PostingService
	conversionService *posting.ConversionService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(postingService *posting.PostingService, conversionService *posting.ConversionService) *DocumentHandler {
	return &DocumentHandler{
		postingService:    postingService,
		conversionService: conversionService,
	}
}

// ConvertDocumentRequest requests conversion of a document into a
// follow-up type
type ConvertDocumentRequest struct {
	TargetType string     `json:"target_type" binding:"required,doctype"`
	Date       *time.Time `json:"date"`
}

// Create creates a draft document
func (h *DocumentHandler) Create(c *gin.Context) {
	var req posting.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	doc, err := h.postingService.CreateDraft(c.Request.Context(), &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, doc)
}

// Get returns a document with its lines
func (h *DocumentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	doc, err := h.postingService.GetDocument(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, doc)
}

// Update rewrites a draft document
func (h *DocumentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	var req posting.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	doc, err := h.postingService.UpdateDraft(c.Request.Context(), id, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, doc)
}

// Delete removes a draft document
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	if err := h.postingService.DeleteDraft(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Approve moves a draft to approved
func (h *DocumentHandler) Approve(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	doc, err := h.postingService.Approve(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, doc)
}

// Post runs the atomic posting pipeline on a document
func (h *DocumentHandler) Post(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	doc, err := h.postingService.Post(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, doc)
}

// Cancel terminates a document that has produced no effects
func (h *DocumentHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	var req posting.CancelDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	doc, err := h.postingService.Cancel(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, doc)
}

// Convert creates a follow-up draft from a source document
func (h *DocumentHandler) Convert(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	var req ConvertDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	doc, err := h.conversionService.Convert(c.Request.Context(), id, document.Type(req.TargetType), date)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, doc)
}
