package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vlxsoft/materials-api/internal/config"
	domainRepo "github.com/vlxsoft/materials-api/internal/domain/repository"
	"github.com/vlxsoft/materials-api/internal/presentation/http/handler"
	"github.com/vlxsoft/materials-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Material  *handler.MaterialHandler
	Catalog   *handler.CatalogHandler
	Purchase  *handler.ReceiptHandler
	Export    *handler.ReceiptHandler
	Transport *handler.TransportHandler
	Partner   *handler.PartnerHandler
	Inventory *handler.InventoryHandler
	Report    *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(rateLimiter.Middleware())
	{
		registerMaterialRoutes(v1, h)
		registerCatalogRoutes(v1, h)
		registerReceiptRoutes(v1, h, deps)
		registerPartnerRoutes(v1, h)
		registerInventoryRoutes(v1, h)
		registerReportRoutes(v1, h)
	}

	return router
}

func registerMaterialRoutes(v1 *gin.RouterGroup, h *Handlers) {
	materials := v1.Group("/materials")
	{
		materials.GET("", h.Material.List)
		materials.POST("", h.Material.Create)
		materials.GET("/:id", h.Material.Get)
		materials.PUT("/:id", h.Material.Update)
		materials.DELETE("/:id", h.Material.Delete)
		materials.PUT("/:id/density", h.Material.UpdateDensity)
		materials.GET("/:id/density-history", h.Material.DensityHistory)
		materials.GET("/:id/density-at", h.Material.DensityAt)
		materials.GET("/:id/stock", h.Inventory.GetMaterialStock)
	}
}

func registerCatalogRoutes(v1 *gin.RouterGroup, h *Handlers) {
	categories := v1.Group("/categories")
	{
		categories.GET("", h.Catalog.ListCategories)
		categories.POST("", h.Catalog.CreateCategory)
		categories.GET("/:id", h.Catalog.GetCategory)
		categories.PUT("/:id", h.Catalog.UpdateCategory)
		categories.DELETE("/:id", h.Catalog.DeleteCategory)
	}

	units := v1.Group("/units")
	{
		units.GET("", h.Catalog.ListUnits)
		units.POST("", h.Catalog.CreateUnit)
		units.PUT("/:id", h.Catalog.UpdateUnit)
		units.DELETE("/:id", h.Catalog.DeleteUnit)
	}
}

func registerReceiptRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	})

	// Purchase receipts (PN) and export receipts (PX) share the handler
	// implementation; each route group is bound to one receipt type.
	for path, rh := range map[string]*handler.ReceiptHandler{
		"/purchases": h.Purchase,
		"/exports":   h.Export,
	} {
		group := v1.Group(path)
		{
			group.GET("", rh.List)
			group.POST("", idempotency, rh.Create)
			group.GET("/number/:number", rh.GetByNumber)
			group.GET("/:id", rh.Get)
			group.PUT("/:id", rh.Update)
			group.DELETE("/:id", rh.Delete)
			group.POST("/:id/transport", rh.AddTransport)
			group.GET("/:id/transport", rh.GetTransport)
			group.PUT("/:id/transport", rh.UpdateTransport)
			group.DELETE("/:id/transport", rh.DeleteTransport)
		}
	}

	v1.GET("/transport", h.Transport.List)
}

func registerPartnerRoutes(v1 *gin.RouterGroup, h *Handlers) {
	warehouses := v1.Group("/warehouses")
	{
		warehouses.GET("", h.Partner.ListWarehouses)
		warehouses.POST("", h.Partner.CreateWarehouse)
		warehouses.GET("/:id", h.Partner.GetWarehouse)
		warehouses.PUT("/:id", h.Partner.UpdateWarehouse)
		warehouses.DELETE("/:id", h.Partner.DeleteWarehouse)
	}

	projects := v1.Group("/projects")
	{
		projects.GET("", h.Partner.ListProjects)
		projects.POST("", h.Partner.CreateProject)
		projects.GET("/:id", h.Partner.GetProject)
		projects.PUT("/:id", h.Partner.UpdateProject)
		projects.DELETE("/:id", h.Partner.DeleteProject)
	}

	customers := v1.Group("/customers")
	{
		customers.GET("", h.Partner.ListCustomers)
		customers.POST("", h.Partner.CreateCustomer)
		customers.GET("/:id", h.Partner.GetCustomer)
		customers.PUT("/:id", h.Partner.UpdateCustomer)
		customers.DELETE("/:id", h.Partner.DeleteCustomer)
	}

	vehicles := v1.Group("/vehicles")
	{
		vehicles.GET("", h.Partner.ListVehicles)
		vehicles.POST("", h.Partner.CreateVehicle)
		vehicles.GET("/:id", h.Partner.GetVehicle)
		vehicles.PUT("/:id", h.Partner.UpdateVehicle)
		vehicles.DELETE("/:id", h.Partner.DeleteVehicle)
	}
}

func registerInventoryRoutes(v1 *gin.RouterGroup, h *Handlers) {
	v1.GET("/stock", h.Inventory.GetStock)
}

func registerReportRoutes(v1 *gin.RouterGroup, h *Handlers) {
	reports := v1.Group("/reports")
	{
		reports.GET("/daily", h.Report.Daily)
		reports.GET("/projects", h.Report.ProjectProfit)
	}

	v1.GET("/dashboard", h.Report.Dashboard)
}
