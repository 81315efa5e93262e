package entity

import "time"

// StockRecord es la fuente autoritativa de capacidad: el nivel de stock actual
// de un producto en una bodega, en unidades base. Existe exactamente un registro
// por par (producto, bodega). SKU se desnormaliza para poder localizar el
// registro equivalente en otra bodega (transferencias, distribución por SKU).
type StockRecord struct {
	ProductID   string
	WarehouseID string
	SKU         string
	Quantity    int64 // unidades base, nunca negativo
	Lot         string
	ExpiryDate  *time.Time
	UpdatedAt   time.Time
}
