package router

import (
	"github.com/gin-gonic/gin"

	"github.com/mertekinci24/FemmeERP-sub000/internal/interfaces/http/handler"
)

// Handlers bundles the HTTP handlers registered by Setup
type Handlers struct {
	Document    *handler.DocumentHandler
	Partner     *handler.PartnerHandler
	CashAccount *handler.CashAccountHandler
	LandedCost  *handler.LandedCostHandler
}

// Setup registers all API routes under /api/v1
func Setup(engine *gin.Engine, h Handlers) {
	api := engine.Group("/api/v1")

	documents := api.Group("/documents")
	documents.POST("", h.Document.Create)
	documents.GET("/:id", h.Document.Get)
	documents.PUT("/:id", h.Document.Update)
	documents.DELETE("/:id", h.Document.Delete)
	documents.POST("/:id/approve", h.Document.Approve)
	documents.POST("/:id/post", h.Document.Post)
	documents.POST("/:id/cancel", h.Document.Cancel)
	documents.POST("/:id/convert", h.Document.Convert)

	partners := api.Group("/partners")
	partners.POST("", h.Partner.Create)
	partners.GET("", h.Partner.List)
	partners.GET("/:id", h.Partner.Get)
	partners.PUT("/:id/credit-limit", h.Partner.SetCreditLimit)
	partners.GET("/:id/aging", h.Partner.Aging)
	partners.POST("/:id/credit-check", h.Partner.CreditCheck)

	api.POST("/allocations", h.Partner.Allocate)

	cashAccounts := api.Group("/cash-accounts")
	cashAccounts.POST("", h.CashAccount.Create)
	cashAccounts.GET("", h.CashAccount.List)
	cashAccounts.GET("/:id", h.CashAccount.Get)
	cashAccounts.DELETE("/:id", h.CashAccount.Delete)
	cashAccounts.POST("/:id/deactivate", h.CashAccount.Deactivate)
	cashAccounts.POST("/:id/receipts", h.CashAccount.CreateReceipt)
	cashAccounts.POST("/:id/payments", h.CashAccount.CreatePayment)
	cashAccounts.GET("/:id/statement", h.CashAccount.Statement)
	cashAccounts.GET("/:id/balance", h.CashAccount.Balance)

	landedCosts := api.Group("/landed-costs")
	landedCosts.POST("", h.LandedCost.Apply)
	landedCosts.POST("/:id/reverse", h.LandedCost.Reverse)
}
