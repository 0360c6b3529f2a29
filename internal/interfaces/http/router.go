package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventory-api/internal/application/analytics"
	"github.com/jhoicas/Ventory-api/internal/application/auth"
	"github.com/jhoicas/Ventory-api/internal/application/reports"
	"github.com/jhoicas/Ventory-api/internal/application/usecase"
	"github.com/jhoicas/Ventory-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.UseCase
	ProductUC       *usecase.ProductUseCase
	CategoryUC      *usecase.CategoryUseCase
	CustomerUC      *usecase.CustomerUseCase
	SupplierUC      *usecase.SupplierUseCase
	WarehouseUC     *usecase.WarehouseUseCase
	SalesOrderUC    *usecase.SalesOrderUseCase
	PurchaseOrderUC *usecase.PurchaseOrderUseCase
	SalesAnalytics  *analytics.SalesAnalyticsUseCase
	InventoryAnal   *analytics.InventoryAnalyticsUseCase
	ReportRegistry  *reports.Registry
	ReportEngine    *reports.Engine
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Escritura restringida a admin y manager; operator solo consulta
	// y opera sobre órdenes.
	managers := RequireRole(entity.RoleAdmin, entity.RoleManager)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", managers, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", managers, productHandler.Update)
	products.Post("/:id/stock", productHandler.AdjustStock)
	products.Delete("/:id", managers, productHandler.Delete)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", managers, categoryHandler.Create)
	categories.Get("/tree", categoryHandler.Tree)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", managers, categoryHandler.Update)
	categories.Delete("/:id", managers, categoryHandler.Delete)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", managers, customerHandler.Delete)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", managers, supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", managers, supplierHandler.Update)
	suppliers.Delete("/:id", managers, supplierHandler.Delete)

	// Warehouses (protegido; solo admin administra bodegas)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", RequireRole(entity.RoleAdmin), warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", RequireRole(entity.RoleAdmin), warehouseHandler.Update)
	warehouses.Post("/:id/default", RequireRole(entity.RoleAdmin), warehouseHandler.SetDefault)
	warehouses.Delete("/:id", RequireRole(entity.RoleAdmin), warehouseHandler.Delete)

	// Sales orders (protegido)
	salesOrders := protected.Group("/sales-orders")
	salesOrderHandler := NewSalesOrderHandler(deps.SalesOrderUC)
	salesOrders.Post("/", salesOrderHandler.Create)
	salesOrders.Get("/", salesOrderHandler.List)
	salesOrders.Get("/:id", salesOrderHandler.GetByID)
	salesOrders.Post("/:id/transition", salesOrderHandler.Transition)

	// Purchase orders (protegido)
	purchaseOrders := protected.Group("/purchase-orders")
	purchaseOrderHandler := NewPurchaseOrderHandler(deps.PurchaseOrderUC)
	purchaseOrders.Post("/", purchaseOrderHandler.Create)
	purchaseOrders.Get("/", purchaseOrderHandler.List)
	purchaseOrders.Get("/:id", purchaseOrderHandler.GetByID)
	purchaseOrders.Post("/:id/transition", purchaseOrderHandler.Transition)
	purchaseOrders.Post("/:id/receive", purchaseOrderHandler.Receive)

	// Analytics (protegido)
	analyticsGroup := protected.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.SalesAnalytics, deps.InventoryAnal)
	analyticsGroup.Get("/sales", analyticsHandler.SalesDashboard)
	analyticsGroup.Get("/inventory", analyticsHandler.InventoryDashboard)

	// Reports (protegido)
	reportsGroup := protected.Group("/reports")
	reportsHandler := NewReportsHandler(deps.ReportRegistry, deps.ReportEngine)
	reportsGroup.Get("/", reportsHandler.List)
	reportsGroup.Get("/categories", reportsHandler.Categories)
	reportsGroup.Get("/:id", reportsHandler.Describe)
	reportsGroup.Get("/:id/run", reportsHandler.Run)
	reportsGroup.Get("/:id/export", reportsHandler.Export)
}
