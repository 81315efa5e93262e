package dto

import "time"

// TransferStockRequest mover stock del registro de un producto a otra bodega.
type TransferStockRequest struct {
	SourceProductID string `json:"source_product_id"`
	ToWarehouseID   string `json:"to_warehouse_id"`
	Quantity        int64  `json:"quantity"`
}

// AdjustStockRequest corrección directa del nivel de stock.
type AdjustStockRequest struct {
	NewLevel int64 `json:"new_level"`
}

// StockRecordResponse un registro de stock, con el nombre de la bodega para
// mostrar la distribución entre ubicaciones.
type StockRecordResponse struct {
	ProductID     string     `json:"product_id"`
	WarehouseID   string     `json:"warehouse_id"`
	WarehouseName string     `json:"warehouse_name,omitempty"`
	SKU           string     `json:"sku"`
	Quantity      int64      `json:"quantity"`
	Lot           string     `json:"lot,omitempty"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// StockBySKUResponse distribución de una SKU entre bodegas.
type StockBySKUResponse struct {
	SKU     string                `json:"sku"`
	Total   int64                 `json:"total"`
	Records []StockRecordResponse `json:"records"`
}

// MovementResponse una fila del libro de movimientos.
type MovementResponse struct {
	ID            string    `json:"id"`
	TransactionID string    `json:"transaction_id"`
	ProductID     string    `json:"product_id"`
	WarehouseID   string    `json:"warehouse_id"`
	Type          string    `json:"type"`
	Quantity      int64     `json:"quantity"`
	Reference     string    `json:"reference,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	CreatedBy     string    `json:"created_by,omitempty"`
}
