package memory

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pregao-api/internal/domain/entity"
)

// Repositories agrupa los adaptadores en memoria para armarlos y sembrarlos juntos.
type Repositories struct {
	Companies  *CompanyRepo
	Warehouses *WarehouseRepo
	Products   *ProductRepo
	Stocks     *StockRepo
	Users      *UserRepo
	Movements  *StockMovementRepo
}

// NewRepositories construye todos los repositorios en memoria, vacíos.
func NewRepositories() *Repositories {
	return &Repositories{
		Companies:  NewCompanyRepository(),
		Warehouses: NewWarehouseRepository(),
		Products:   NewProductRepository(),
		Stocks:     NewStockRepository(),
		Users:      NewUserRepository(),
		Movements:  NewStockMovementRepository(),
	}
}

// Seed carga el dataset de demostración: grupo de dos empresas, dos bodegas,
// catálogo mixto de bienes y servicios, niveles de stock con lote y vencimiento,
// y un usuario por rol (contraseña "pregao123" para todos).
func (r *Repositories) Seed() error {
	now := time.Now()
	hash, err := bcrypt.GenerateFromPassword([]byte("pregao123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	parentID := "c1"
	companies := []*entity.Company{
		{ID: "c1", Name: "Grupo PREGÃO", CreatedAt: now, UpdatedAt: now},
		{ID: "c2", Name: "PREGÃO Benguela", ParentID: &parentID, CreatedAt: now, UpdatedAt: now},
	}
	for _, c := range companies {
		if err := r.Companies.Create(c); err != nil {
			return err
		}
	}

	warehouses := []*entity.Warehouse{
		{ID: "wh1", CompanyID: "c1", Name: "Armazém Principal", Location: "Luanda", Type: entity.WarehouseTypeGeneral, CreatedAt: now, UpdatedAt: now},
		{ID: "wh2", CompanyID: "c2", Name: "Filial Benguela", Location: "Benguela", Type: entity.WarehouseTypeStore, CreatedAt: now, UpdatedAt: now},
	}
	for _, w := range warehouses {
		if err := r.Warehouses.Create(w); err != nil {
			return err
		}
	}

	expiry := func(year int, month time.Month, day int) *time.Time {
		t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		return &t
	}
	products := []*entity.Product{
		{
			ID: "p1", CompanyID: "c1", WarehouseID: "wh1", SKU: "PROD001",
			Name: "Arroz Tio Lucas 25kg", Description: "Arroz agulha de alta qualidade.",
			Price: decimal.NewFromInt(15000), Kind: entity.KindGood, TrackStock: true, Unit: "UN",
			Packaging: []entity.Packaging{
				{ID: "pkg1", Name: "Fardo", Unit: "FAR", ConversionFactor: 4, Price: decimal.NewFromInt(58000)},
			},
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "p2", CompanyID: "c1", WarehouseID: "wh1", SKU: "PROD002",
			Name: "Óleo Fula 1L", Description: "Óleo vegetal para cozinha.",
			Price: decimal.NewFromInt(1200), Kind: entity.KindGood, TrackStock: true, Unit: "UN",
			Packaging: []entity.Packaging{
				{ID: "pkg2", Name: "Caixa", Unit: "CX", ConversionFactor: 12, Price: decimal.NewFromInt(14000)},
			},
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "p3", CompanyID: "c1", WarehouseID: "wh1", SKU: "SERV001",
			Name: "Serviço de Instalação", Description: "Instalação de equipamento standard (2 horas).",
			Price: decimal.NewFromInt(25000), Kind: entity.KindService, TrackStock: false, Unit: "HR",
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "p4", CompanyID: "c2", WarehouseID: "wh2", SKU: "PROD003",
			Name: "Sumo Compal 1L", Description: "Sumo de Laranja natural.",
			Price: decimal.NewFromInt(900), Kind: entity.KindGood, TrackStock: true, Unit: "UN",
			Packaging: []entity.Packaging{
				{ID: "pkg3", Name: "Grade", Unit: "GRD", ConversionFactor: 6, Price: decimal.NewFromInt(5200)},
			},
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "p5", CompanyID: "c2", WarehouseID: "wh2", SKU: "PROD004",
			Name: "Cimento Portland 50kg", Description: "Cimento para construção civil.",
			Price: decimal.NewFromInt(4500), Kind: entity.KindGood, TrackStock: true, Unit: "UN",
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "p6", CompanyID: "c1", WarehouseID: "wh1", SKU: "SERV002",
			Name: "Consultoria de Negócios", Description: "Sessão de consultoria estratégica (1 hora).",
			Price: decimal.NewFromInt(50000), Kind: entity.KindService, TrackStock: false, Unit: "HR",
			CreatedAt: now, UpdatedAt: now,
		},
	}
	for _, p := range products {
		if err := r.Products.Create(p); err != nil {
			return err
		}
	}

	stocks := []*entity.StockRecord{
		{ProductID: "p1", WarehouseID: "wh1", SKU: "PROD001", Quantity: 120, Lot: "LOTE2024A", ExpiryDate: expiry(2025, time.December, 31), UpdatedAt: now},
		{ProductID: "p2", WarehouseID: "wh1", SKU: "PROD002", Quantity: 300, Lot: "LOTE2024B", ExpiryDate: expiry(2026, time.June, 30), UpdatedAt: now},
		{ProductID: "p4", WarehouseID: "wh2", SKU: "PROD003", Quantity: 250, Lot: "LOTE2024C", ExpiryDate: expiry(2025, time.March, 1), UpdatedAt: now},
		{ProductID: "p5", WarehouseID: "wh2", SKU: "PROD004", Quantity: 500, UpdatedAt: now},
	}
	if err := r.Stocks.UpsertMany(stocks...); err != nil {
		return err
	}

	users := []*entity.User{
		{ID: "u1", CompanyID: "c1", Email: "admin@pregao.com", Name: "Admin User", Role: entity.RoleAdmin},
		{ID: "u2", CompanyID: "c1", Email: "seller1@pregao.com", Name: "Seller One", Role: entity.RoleVendedor},
		{ID: "u3", CompanyID: "c1", Email: "buyer1@pregao.com", Name: "Buyer One", Role: entity.RoleComprador},
		{ID: "u4", CompanyID: "c1", Email: "driver1@pregao.com", Name: "Marco Silva", Role: entity.RoleConductor},
		{ID: "u5", CompanyID: "c2", Email: "driver2@pregao.com", Name: "Ana Pereira", Role: entity.RoleConductor},
		{ID: "u6", CompanyID: "c2", Email: "manager@pregao.com", Name: "Gerente Loja", Role: entity.RoleGerente},
		{ID: "u7", CompanyID: "c1", Email: "supervisor@pregao.com", Name: "Supervisor Logistica", Role: entity.RoleSupervisor},
		{ID: "u8", CompanyID: "c1", Email: "gestor@pregao.com", Name: "Gestor do Grupo", Role: entity.RoleGestorGrupo},
	}
	for _, u := range users {
		u.PasswordHash = string(hash)
		u.Status = "active"
		u.CreatedAt = now
		u.UpdatedAt = now
		if err := r.Users.Create(u); err != nil {
			return err
		}
	}
	return nil
}
