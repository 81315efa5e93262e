package dto

import "github.com/shopspring/decimal"

// AddLineRequest agregar una línea al carrito. PackagingID vacío = unidad base.
type AddLineRequest struct {
	ProductID   string `json:"product_id"`
	Quantity    int64  `json:"quantity"`
	PackagingID string `json:"packaging_id,omitempty"`
}

// UpdateLineRequest fijar la cantidad de una línea (≤ 0 equivale a eliminarla).
type UpdateLineRequest struct {
	Quantity int64 `json:"quantity"`
}

// CartLineResponse una línea del carrito.
type CartLineResponse struct {
	Key              string          `json:"key"`
	ProductID        string          `json:"product_id"`
	WarehouseID      string          `json:"warehouse_id"`
	PackagingID      string          `json:"packaging_id"`
	SKU              string          `json:"sku"`
	ProductName      string          `json:"product_name"`
	UnitLabel        string          `json:"unit_label"`
	Price            decimal.Decimal `json:"price"`
	ConversionFactor int64           `json:"conversion_factor"`
	Quantity         int64           `json:"quantity"`
	BaseUnits        int64           `json:"base_units"`
	Subtotal         decimal.Decimal `json:"subtotal"`
}

// CartResponse el carrito con sus proyecciones derivadas, siempre consistentes
// con la colección de líneas.
type CartResponse struct {
	Lines     []CartLineResponse `json:"lines"`
	ItemCount int64              `json:"item_count"`
	Total     decimal.Decimal    `json:"total"`
}
