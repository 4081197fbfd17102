package routes

import (
	"github.com/gin-gonic/gin"

	"talentika/internal/interfaces/http/handlers"
	"talentika/internal/interfaces/http/middleware"
)

type PaymentRouteConfig struct {
	PaymentHandler *handlers.PaymentHandler
	WebhookHandler *handlers.WebhookHandler
	AuthMiddleware *middleware.AuthMiddleware
	// InvoiceRateLimit is nil when rate limiting is disabled. It should reject with
	// handlers.RejectInvoice.
	InvoiceRateLimit gin.HandlerFunc
}

func SetupPaymentRoutes(api *gin.RouterGroup, cfg *PaymentRouteConfig) {
	payments := api.Group("/payments")
	{
		// Authenticated by the callback token inside the use case.
		payments.POST("/webhook", cfg.WebhookHandler.HandleInvoiceCallback)

		// The invoice endpoint answers every failure in its own flat shape.
		invoice := []gin.HandlerFunc{cfg.AuthMiddleware.RequireAuthWith(handlers.RejectInvoice)}
		if cfg.InvoiceRateLimit != nil {
			invoice = append(invoice, cfg.InvoiceRateLimit)
		}
		invoice = append(invoice, cfg.PaymentHandler.CreateInvoice)
		payments.POST("/invoices", invoice...)

		protected := payments.Group("")
		protected.Use(cfg.AuthMiddleware.RequireAuth())
		{
			protected.GET("/transactions/:id", cfg.PaymentHandler.GetTransaction)
		}
	}
}
