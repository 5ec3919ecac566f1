package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/costeo-pro/internal/application/auth"
	"github.com/tu-usuario/costeo-pro/internal/application/importexport"
	"github.com/tu-usuario/costeo-pro/internal/application/usecase"
	"github.com/tu-usuario/costeo-pro/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC    *usecase.CatalogUseCase
	ProductionUC *usecase.ProductionUseCase
	ReportUC     *usecase.ReportUseCase
	ImportExport *importexport.UseCase
	AuthUC       *auth.AuthUseCase
	PDFGen       *pdf.MarotoReportGenerator
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	protected.Get("/dataset", catalogHandler.Dataset)

	// Crear y reemplazar comparten el upsert normalizador, de ahí POST y PUT
	// sobre el mismo handler.
	ingredients := protected.Group("/ingredients")
	ingredients.Get("/", catalogHandler.ListIngredients)
	ingredients.Post("/", catalogHandler.SaveIngredient)
	ingredients.Put("/", catalogHandler.SaveIngredient)
	ingredients.Delete("/:id", catalogHandler.DeleteIngredient)

	recipes := protected.Group("/recipes")
	recipes.Get("/", catalogHandler.ListRecipes)
	recipes.Post("/", catalogHandler.SaveRecipe)
	recipes.Put("/", catalogHandler.SaveRecipe)
	recipes.Delete("/:id", catalogHandler.DeleteRecipe)

	products := protected.Group("/products")
	products.Get("/", catalogHandler.ListProducts)
	products.Post("/", catalogHandler.SaveProduct)
	products.Put("/", catalogHandler.SaveProduct)
	products.Delete("/:id", catalogHandler.DeleteProduct)
	products.Get("/metrics", catalogHandler.CatalogMetrics)
	products.Get("/:id/metrics", catalogHandler.Metrics)

	orders := protected.Group("/orders")
	orders.Get("/", catalogHandler.ListOrders)
	orders.Post("/", catalogHandler.SaveOrder)
	orders.Put("/", catalogHandler.SaveOrder)

	protected.Put("/settings", catalogHandler.UpdateSettings)
	protected.Post("/purchases", catalogHandler.RecordPurchase)

	productionHandler := NewProductionHandler(deps.ProductionUC)
	production := protected.Group("/production")
	production.Post("/", productionHandler.Record)
	production.Delete("/:id", productionHandler.Delete)

	reportHandler := NewReportHandler(deps.ReportUC, deps.CatalogUC, deps.PDFGen)
	reports := protected.Group("/reports")
	reports.Get("/:month", reportHandler.View)
	reports.Put("/:month", reportHandler.Save)
	reports.Post("/:month/freeze", reportHandler.Freeze)
	reports.Post("/:month/unfreeze", reportHandler.Unfreeze)
	reports.Post("/:month/lines", reportHandler.AppendSaleLine)
	reports.Get("/:month/pdf", reportHandler.PDF)

	ieHandler := NewImportExportHandler(deps.ImportExport)
	protected.Get("/export", ieHandler.Export)
	protected.Post("/import", ieHandler.Import)
}
