package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Ventory-api/internal/application/analytics"
	"github.com/jhoicas/Ventory-api/internal/application/auth"
	"github.com/jhoicas/Ventory-api/internal/application/reports"
	"github.com/jhoicas/Ventory-api/internal/application/usecase"
	"github.com/jhoicas/Ventory-api/internal/infrastructure/export"
	"github.com/jhoicas/Ventory-api/internal/infrastructure/mongodb"
	httpRouter "github.com/jhoicas/Ventory-api/internal/interfaces/http"
	"github.com/jhoicas/Ventory-api/pkg/config"
	"github.com/jhoicas/Ventory-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	db, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a MongoDB")
	}
	defer func() {
		if err := mongodb.Disconnect(context.Background(), db); err != nil {
			log.Error().Err(err).Msg("desconexión de MongoDB")
		}
	}()

	productRepo := mongodb.NewProductRepo(db)
	categoryRepo := mongodb.NewCategoryRepo(db)
	customerRepo := mongodb.NewCustomerRepo(db)
	supplierRepo := mongodb.NewSupplierRepo(db)
	warehouseRepo := mongodb.NewWarehouseRepo(db)
	salesOrderRepo := mongodb.NewSalesOrderRepo(db)
	purchaseOrderRepo := mongodb.NewPurchaseOrderRepo(db)
	userRepo := mongodb.NewUserRepo(db)
	executor := mongodb.NewExecutor(db)

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, productRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	salesOrderUC := usecase.NewSalesOrderUseCase(salesOrderRepo, productRepo, customerRepo)
	purchaseOrderUC := usecase.NewPurchaseOrderUseCase(purchaseOrderRepo, productRepo, supplierRepo)

	salesAnalyticsUC := analytics.NewSalesAnalyticsUseCase(executor)
	inventoryAnalyticsUC := analytics.NewInventoryAnalyticsUseCase(executor, warehouseRepo)

	reportRegistry := reports.NewRegistry()
	reportEngine := reports.NewEngine(reportRegistry, executor, map[string]reports.TableExporter{
		"xlsx": export.NewXLSXExporter(),
		"csv":  export.NewCSVExporter(),
		"pdf":  export.NewPDFExporter(),
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ventory API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		ProductUC:       productUC,
		CategoryUC:      categoryUC,
		CustomerUC:      customerUC,
		SupplierUC:      supplierUC,
		WarehouseUC:     warehouseUC,
		SalesOrderUC:    salesOrderUC,
		PurchaseOrderUC: purchaseOrderUC,
		SalesAnalytics:  salesAnalyticsUC,
		InventoryAnal:   inventoryAnalyticsUC,
		ReportRegistry:  reportRegistry,
		ReportEngine:    reportEngine,
		JWTSecret:       cfg.JWT.Secret,
	})

	httpLog := log.Component("http")
	go func() {
		httpLog.Info().Str("addr", cfg.HTTP.Addr()).Msg("escuchando")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			httpLog.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("servidor detenido")
}
