package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pregao-api/internal/application/dto"
	"github.com/jhoicas/pregao-api/internal/domain"
	"github.com/jhoicas/pregao-api/internal/domain/entity"
	"github.com/jhoicas/pregao-api/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo de productos.
type ProductUseCase struct {
	repo   repository.ProductRepository
	stocks repository.StockRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, stocks repository.StockRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, stocks: stocks}
}

// Create publica un producto en una bodega. Para bienes con seguimiento de
// stock crea también su registro de inventario con el nivel inicial.
func (uc *ProductUseCase) Create(companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.SKU == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	kind := in.Kind
	if kind == "" {
		kind = entity.KindGood
	}
	if kind != entity.KindGood && kind != entity.KindService {
		return nil, domain.ErrInvalidInput
	}
	if existing, _ := uc.repo.GetBySKUAndWarehouse(in.SKU, in.WarehouseID); existing != nil {
		return nil, domain.ErrDuplicate
	}
	packaging := make([]entity.Packaging, 0, len(in.Packaging))
	for _, p := range in.Packaging {
		if p.ConversionFactor <= 0 {
			return nil, domain.ErrInvalidInput
		}
		id := p.ID
		if id == "" {
			id = uuid.New().String()
		}
		packaging = append(packaging, entity.Packaging{
			ID:               id,
			Name:             p.Name,
			Unit:             p.Unit,
			ConversionFactor: p.ConversionFactor,
			Barcode:          p.Barcode,
			Price:            p.Price,
		})
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		WarehouseID: in.WarehouseID,
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Kind:        kind,
		TrackStock:  in.TrackStock && kind == entity.KindGood,
		Unit:        in.Unit,
		Packaging:   packaging,
		ImageURL:    in.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}

	if product.TrackStock {
		level := int64(0)
		if in.StockLevel != nil {
			if *in.StockLevel < 0 {
				return nil, domain.ErrInvalidQuantity
			}
			level = *in.StockLevel
		}
		record := &entity.StockRecord{
			ProductID:   product.ID,
			WarehouseID: product.WarehouseID,
			SKU:         product.SKU,
			Quantity:    level,
			Lot:         in.Lot,
			ExpiryDate:  in.ExpiryDate,
			UpdatedAt:   now,
		}
		if err := uc.stocks.Upsert(record); err != nil {
			return nil, err
		}
	}
	return uc.toResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return uc.toResponse(product), nil
}

// Update edita un producto existente (datos de catálogo; el stock se toca solo
// vía ajustes y transferencias).
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	if in.Packaging != nil {
		packaging := make([]entity.Packaging, 0, len(in.Packaging))
		for _, p := range in.Packaging {
			if p.ConversionFactor <= 0 {
				return nil, domain.ErrInvalidInput
			}
			id := p.ID
			if id == "" {
				id = uuid.New().String()
			}
			packaging = append(packaging, entity.Packaging{
				ID:               id,
				Name:             p.Name,
				Unit:             p.Unit,
				ConversionFactor: p.ConversionFactor,
				Barcode:          p.Barcode,
				Price:            p.Price,
			})
		}
		product.Packaging = packaging
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return uc.toResponse(product), nil
}

// List lista productos con filtros (búsqueda insensible a tildes, tipo, bodega),
// ordenamiento y paginación.
func (uc *ProductUseCase) List(in dto.ProductFiltersRequest, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	filter := repository.ProductFilter{
		Query:       in.Query,
		Kind:        in.Kind,
		WarehouseID: in.WarehouseID,
		SortBy:      in.SortBy,
	}
	list, total, err := uc.repo.List(filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *uc.toResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func (uc *ProductUseCase) toResponse(p *entity.Product) *dto.ProductResponse {
	packaging := make([]dto.PackagingPayload, 0, len(p.Packaging))
	for _, pk := range p.Packaging {
		packaging = append(packaging, dto.PackagingPayload{
			ID:               pk.ID,
			Name:             pk.Name,
			Unit:             pk.Unit,
			ConversionFactor: pk.ConversionFactor,
			Barcode:          pk.Barcode,
			Price:            pk.Price,
		})
	}
	out := &dto.ProductResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		WarehouseID: p.WarehouseID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Kind:        p.Kind,
		TrackStock:  p.TrackStock,
		Unit:        p.Unit,
		Packaging:   packaging,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.TrackStock {
		if record, err := uc.stocks.Get(p.ID, p.WarehouseID); err == nil && record != nil {
			level := record.Quantity
			out.StockLevel = &level
			out.Lot = record.Lot
			out.ExpiryDate = record.ExpiryDate
		}
	}
	return out
}
