package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/globaltours/invoice-api/internal/application/analytics"
	"github.com/globaltours/invoice-api/internal/application/auth"
	"github.com/globaltours/invoice-api/internal/application/invoicing"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	InvoiceUC *invoicing.InvoiceUseCase
	DraftUC   *invoicing.DraftUseCase
	PDFUC     *invoicing.PDFUseCase
	ShareUC   *invoicing.ShareUseCase
	SummaryUC *analytics.SummaryUseCase
	JWTSecret string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Everything else requires a Bearer token.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC, deps.ShareUC)
	draftHandler := NewDraftHandler(deps.DraftUC)

	// Fixed paths before :id so "draft" and "next-number" never match as ids.
	invoices.Get("/next-number", invoiceHandler.NextNumber)
	invoices.Get("/draft", draftHandler.Get)
	invoices.Put("/draft", draftHandler.Put)
	invoices.Delete("/draft", draftHandler.Delete)

	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Post("/:id/share", invoiceHandler.Share)

	analyticsGroup := protected.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.SummaryUC)
	analyticsGroup.Get("/summary", analyticsHandler.Summary)
}
