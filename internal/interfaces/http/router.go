package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	appanalytics "github.com/jhoicas/solar-epc-api/internal/application/analytics"
	"github.com/jhoicas/solar-epc-api/internal/application/auth"
	"github.com/jhoicas/solar-epc-api/internal/application/billing"
	"github.com/jhoicas/solar-epc-api/internal/application/inventory"
	"github.com/jhoicas/solar-epc-api/internal/application/project"
	"github.com/jhoicas/solar-epc-api/internal/application/usecase"
	"github.com/jhoicas/solar-epc-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC       *usecase.CompanyUseCase
	UserUC          *usecase.UserUseCase
	ItemUC          *usecase.ItemUseCase
	LedgerUC        *inventory.LedgerUseCase
	ReplenishmentUC *inventory.ReplenishmentUseCase
	CustomerUC      *billing.CustomerUseCase
	QuotationUC     *billing.QuotationUseCase
	InvoiceUC       *billing.InvoiceUseCase
	PaymentUC       *billing.PaymentUseCase
	DocumentUC      *billing.DocumentUseCase
	ProjectUC       *project.UseCase
	DashboardUC     *appanalytics.DashboardUseCase
	AuthUC          *auth.AuthUseCase
	Tokens          TokenVerifier
	// MetricsHandler se monta en /metrics cuando no es nil.
	MetricsHandler http.Handler
}

// Router registra las rutas de la API.
//
// Roles: admin todo; sales cotizaciones, facturas, cobros, clientes y proyectos;
// store artículos e inventario. Las consultas de lectura quedan abiertas a todos los
// roles autenticados.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHandler))
	}

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Alta de empresa (público: es el primer paso antes de registrar usuarios)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.Tokens))
	sales := RequireRole(jwt.RoleSales)
	store := RequireRole(jwt.RoleStore)
	admin := RequireRole()

	protected.Get("/company", companyHandler.Current)
	protected.Put("/company", admin, companyHandler.Update)

	users := protected.Group("/users")
	users.Get("/me", authHandler.Me)
	users.Get("/", admin, authHandler.ListUsers)

	// Clientes
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Post("/", sales, customerHandler.Create)
	customers.Put("/:id", sales, customerHandler.Update)
	customers.Delete("/:id", admin, customerHandler.Delete)

	// Artículos
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Post("/", store, itemHandler.Create)
	items.Put("/:id", store, itemHandler.Update)
	items.Delete("/:id", admin, itemHandler.Delete)

	// Inventario
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.ReplenishmentUC)
	invGroup.Post("/transactions", store, inventoryHandler.RecordTransaction)
	invGroup.Get("/ledger", inventoryHandler.GetLedger)
	invGroup.Get("/low-stock", inventoryHandler.GetLowStock)

	// Cotizaciones
	quotations := protected.Group("/quotations")
	quotationHandler := NewQuotationHandler(deps.QuotationUC, deps.DocumentUC)
	quotations.Post("/preview", quotationHandler.Preview)
	quotations.Get("/", quotationHandler.List)
	quotations.Get("/:id", quotationHandler.GetByID)
	quotations.Get("/:id/pdf", quotationHandler.GetPDF)
	quotations.Post("/", sales, quotationHandler.Create)
	quotations.Patch("/:id/status", sales, quotationHandler.UpdateStatus)

	// Facturas
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.DocumentUC, deps.PaymentUC)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.GetPDF)
	invoices.Get("/:id/tally", invoiceHandler.GetTally)
	invoices.Get("/:id/payments", invoiceHandler.ListPayments)
	invoices.Post("/", sales, invoiceHandler.Create)

	// Cobros
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	protected.Post("/payments", sales, paymentHandler.Record)

	// Proyectos
	projects := protected.Group("/projects")
	projectHandler := NewProjectHandler(deps.ProjectUC, deps.PaymentUC)
	projects.Get("/", projectHandler.List)
	projects.Get("/:id", projectHandler.GetByID)
	projects.Get("/:id/payments", projectHandler.ListPayments)
	projects.Post("/", sales, projectHandler.Create)
	projects.Patch("/:id/status", sales, projectHandler.UpdateStatus)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
}
