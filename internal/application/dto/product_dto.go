package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PackagingPayload variante de embalaje en requests y responses.
type PackagingPayload struct {
	ID               string          `json:"id,omitempty"`
	Name             string          `json:"name"`
	Unit             string          `json:"unit"`
	ConversionFactor int64           `json:"conversion_factor"`
	Barcode          string          `json:"barcode,omitempty"`
	Price            decimal.Decimal `json:"price"`
}

// CreateProductRequest alta de producto en una bodega.
type CreateProductRequest struct {
	WarehouseID string             `json:"warehouse_id"`
	SKU         string             `json:"sku"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Price       decimal.Decimal    `json:"price"`
	Kind        string             `json:"kind"`
	TrackStock  bool               `json:"track_stock"`
	Unit        string             `json:"unit"`
	Packaging   []PackagingPayload `json:"packaging,omitempty"`
	ImageURL    string             `json:"image_url,omitempty"`
	// StockLevel nivel inicial en unidades base (solo bienes con TrackStock).
	StockLevel *int64     `json:"stock_level,omitempty"`
	Lot        string     `json:"lot,omitempty"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
}

// UpdateProductRequest edición parcial de producto.
type UpdateProductRequest struct {
	Name        *string            `json:"name,omitempty"`
	Description *string            `json:"description,omitempty"`
	Price       *decimal.Decimal   `json:"price,omitempty"`
	Unit        *string            `json:"unit,omitempty"`
	Packaging   []PackagingPayload `json:"packaging,omitempty"`
	ImageURL    *string            `json:"image_url,omitempty"`
}

// ProductFiltersRequest filtros del listado.
type ProductFiltersRequest struct {
	Query       string `query:"query"`
	Kind        string `query:"kind"`
	WarehouseID string `query:"warehouse_id"`
	SortBy      string `query:"sort_by"`
}

// ProductResponse un producto con su nivel de stock actual (si aplica).
type ProductResponse struct {
	ID          string             `json:"id"`
	CompanyID   string             `json:"company_id"`
	WarehouseID string             `json:"warehouse_id"`
	SKU         string             `json:"sku"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Price       decimal.Decimal    `json:"price"`
	Kind        string             `json:"kind"`
	TrackStock  bool               `json:"track_stock"`
	Unit        string             `json:"unit"`
	Packaging   []PackagingPayload `json:"packaging,omitempty"`
	ImageURL    string             `json:"image_url,omitempty"`
	StockLevel  *int64             `json:"stock_level,omitempty"`
	Lot         string             `json:"lot,omitempty"`
	ExpiryDate  *time.Time         `json:"expiry_date,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// ProductListResponse página de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
