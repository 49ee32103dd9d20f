package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/vlxsoft/materials-api/internal/application/service"
	"github.com/vlxsoft/materials-api/internal/config"
	"github.com/vlxsoft/materials-api/internal/domain/enum"
	"github.com/vlxsoft/materials-api/internal/infrastructure/database"
	"github.com/vlxsoft/materials-api/internal/infrastructure/repository"
	"github.com/vlxsoft/materials-api/internal/presentation/http/handler"
	"github.com/vlxsoft/materials-api/internal/presentation/http/routes"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logrus.SetFormatter(&logrus.JSONFormatter{})
	if cfg.App.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		logrus.Warnf("Failed to seed default data: %v", err)
	}

	// Initialize repositories
	materialRepo := repository.NewMaterialRepository(db)
	densityRepo := repository.NewDensityHistoryRepository(db)
	categoryRepo := repository.NewMaterialCategoryRepository(db)
	unitRepo := repository.NewUnitRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	transportRepo := repository.NewTransportRecordRepository(db)
	warehouseRepo := repository.NewWarehouseRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	materialService := service.NewMaterialService(materialRepo, densityRepo, categoryRepo)
	catalogService := service.NewCatalogService(categoryRepo, unitRepo)
	receiptService := service.NewReceiptService(
		receiptRepo, transportRepo, materialRepo,
		warehouseRepo, projectRepo, customerRepo, vehicleRepo,
		materialService,
	)
	partnerService := service.NewPartnerService(warehouseRepo, projectRepo, customerRepo, vehicleRepo)
	inventoryService := service.NewInventoryService(analyticsRepo)
	reportService := service.NewReportService(analyticsRepo, receiptRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Material:  handler.NewMaterialHandler(materialService),
		Catalog:   handler.NewCatalogHandler(catalogService),
		Purchase:  handler.NewReceiptHandler(receiptService, enum.ReceiptTypePurchase),
		Export:    handler.NewReceiptHandler(receiptService, enum.ReceiptTypeExport),
		Transport: handler.NewTransportHandler(receiptService),
		Partner:   handler.NewPartnerHandler(partnerService),
		Inventory: handler.NewInventoryHandler(inventoryService),
		Report:    handler.NewReportHandler(reportService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	logrus.Infof("Starting %s server on port %s (env: %s)", cfg.App.Name, port, cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
