package entity

import "time"

// Tipos de bodega.
const (
	WarehouseTypeStore   = "store"   // armazém de loja
	WarehouseTypeGeneral = "general" // armazém geral
)

// Warehouse representa una bodega o sucursal donde se almacena inventario (multi-bodega).
type Warehouse struct {
	ID        string
	CompanyID string
	Name      string
	Location  string
	Type      string // WarehouseTypeStore | WarehouseTypeGeneral
	CreatedAt time.Time
	UpdatedAt time.Time
}
