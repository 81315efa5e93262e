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

	"github.com/jhoicas/pregao-api/internal/application/auth"
	"github.com/jhoicas/pregao-api/internal/application/cart"
	"github.com/jhoicas/pregao-api/internal/application/inventory"
	"github.com/jhoicas/pregao-api/internal/application/usecase"
	"github.com/jhoicas/pregao-api/internal/application/visibility"
	"github.com/jhoicas/pregao-api/internal/domain/repository"
	"github.com/jhoicas/pregao-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/pregao-api/internal/infrastructure/pdf"
	"github.com/jhoicas/pregao-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pregao-api/internal/interfaces/http"
	"github.com/jhoicas/pregao-api/pkg/config"
	"github.com/jhoicas/pregao-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Core.Storage).
		Msg("iniciando aplicación")

	var (
		companyRepo   repository.CompanyRepository
		warehouseRepo repository.WarehouseRepository
		productRepo   repository.ProductRepository
		stockRepo     repository.StockRepository
		userRepo      repository.UserRepository
		movementRepo  repository.StockMovementRepository
	)
	switch cfg.Core.Storage {
	case "postgres":
		ctx := context.Background()
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		companyRepo = postgres.NewCompanyRepository(pool)
		warehouseRepo = postgres.NewWarehouseRepository(pool)
		productRepo = postgres.NewProductRepository(pool)
		stockRepo = postgres.NewStockRepository(pool)
		userRepo = postgres.NewUserRepository(pool)
		movementRepo = postgres.NewStockMovementRepository(pool)
	default:
		repos := memory.NewRepositories()
		if err := repos.Seed(); err != nil {
			log.Fatal().Err(err).Msg("sembrar datos de demostración")
		}
		log.Info().Msg("almacenamiento en memoria con datos de demostración")
		companyRepo = repos.Companies
		warehouseRepo = repos.Warehouses
		productRepo = repos.Products
		stockRepo = repos.Stocks
		userRepo = repos.Users
		movementRepo = repos.Movements
	}

	locker := inventory.NewStockLocker(cfg.Core.LockTimeout)
	cartSvc := cart.NewService(productRepo, stockRepo, locker)
	transferUC := inventory.NewTransferUseCase(productRepo, stockRepo, movementRepo, locker)
	stockUC := inventory.NewStockUseCase(productRepo, stockRepo, warehouseRepo, movementRepo, locker)
	reportUC := inventory.NewStockReportUseCase(productRepo, stockRepo, warehouseRepo, infrapdf.NewMarotoStockReportGenerator())
	resolver := visibility.NewResolver(companyRepo, warehouseRepo, productRepo)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	productUC := usecase.NewProductUseCase(productRepo, stockRepo)
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "PREGÃO API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CompanyUC:   companyUC,
		WarehouseUC: warehouseUC,
		ProductUC:   productUC,
		CartSvc:     cartSvc,
		TransferUC:  transferUC,
		StockUC:     stockUC,
		ReportUC:    reportUC,
		Resolver:    resolver,
		UserRepo:    userRepo,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
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

	log.Info().Msg("aplicación detenida")
}
