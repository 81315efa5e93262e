package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pregao-api/internal/application/auth"
	"github.com/jhoicas/pregao-api/internal/application/cart"
	"github.com/jhoicas/pregao-api/internal/application/inventory"
	"github.com/jhoicas/pregao-api/internal/application/usecase"
	"github.com/jhoicas/pregao-api/internal/application/visibility"
	"github.com/jhoicas/pregao-api/internal/domain/entity"
	"github.com/jhoicas/pregao-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CompanyUC   *usecase.CompanyUseCase
	WarehouseUC *usecase.WarehouseUseCase
	ProductUC   *usecase.ProductUseCase
	CartSvc     *cart.Service
	TransferUC  *inventory.TransferUseCase
	StockUC     *inventory.StockUseCase
	ReportUC    *inventory.StockReportUseCase
	Resolver    *visibility.Resolver
	UserRepo    repository.UserRepository
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público; registro requiere admin)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register",
		AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin),
		authHandler.Register,
	)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Companies (protegido; alta solo admin/gestor_grupo)
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Get("/tree", companyHandler.Tree)
	companies.Post("/", RequireRole(entity.RoleAdmin, entity.RoleGestorGrupo), companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", RequireRole(entity.RoleAdmin, entity.RoleGerente, entity.RoleGestorGrupo), warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleGerente, entity.RoleGestorGrupo), warehouseHandler.Update)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequireRole(entity.RoleAdmin, entity.RoleGerente, entity.RoleSupervisor), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleGerente, entity.RoleSupervisor), productHandler.Update)

	// Cart (protegido; el carrito pertenece a la sesión del token)
	cartGroup := protected.Group("/cart")
	cartHandler := NewCartHandler(deps.CartSvc)
	cartGroup.Get("/", cartHandler.Get)
	cartGroup.Delete("/", cartHandler.Clear)
	cartGroup.Post("/lines", cartHandler.AddLine)
	cartGroup.Put("/lines/:key", cartHandler.UpdateLine)
	cartGroup.Delete("/lines/:key", cartHandler.RemoveLine)

	// Inventory (protegido; mutaciones restringidas a roles de gestión)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.TransferUC, deps.StockUC, deps.ReportUC)
	manage := RequireRole(entity.RoleAdmin, entity.RoleGerente, entity.RoleSupervisor, entity.RoleGestorGrupo)
	invGroup.Post("/transfers", manage, inventoryHandler.Transfer)
	invGroup.Put("/products/:id/stock", manage, inventoryHandler.Adjust)
	invGroup.Get("/stock/:sku", inventoryHandler.StockBySKU)
	invGroup.Get("/stock/:sku/report", inventoryHandler.Report)
	invGroup.Get("/movements/:sku", inventoryHandler.Movements)

	// Visibility (protegido)
	visGroup := protected.Group("/visibility")
	visibilityHandler := NewVisibilityHandler(deps.Resolver, deps.UserRepo)
	visGroup.Get("/warehouses", visibilityHandler.Warehouses)
	visGroup.Get("/products", visibilityHandler.Products)
}
