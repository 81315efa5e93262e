package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BasePackagingID identidad de línea cuando se vende la unidad base, sin embalaje.
const BasePackagingID = "unit"

// LineKey deriva la clave de una línea de carrito: mismo producto, misma bodega y
// mismo embalaje = misma línea. La identidad es por embalaje, pero la capacidad
// es por registro de stock: líneas hermanas (mismo producto+bodega, distinto
// embalaje) comparten el mismo pool de capacidad.
func LineKey(productID, warehouseID, packagingID string) string {
	if packagingID == "" {
		packagingID = BasePackagingID
	}
	return productID + "-" + warehouseID + "-" + packagingID
}

// CartLine una entrada reservable del carrito. Congela al momento de agregar el
// factor de conversión y el precio, de modo que la línea se renderiza y totaliza
// sin volver a consultar el catálogo.
type CartLine struct {
	Key              string
	ProductID        string
	WarehouseID      string
	PackagingID      string // BasePackagingID si es la unidad base
	SKU              string
	ProductName      string
	Unit             string // unidad base del producto
	UnitLabel        string // unidad mostrada: la del embalaje, o la base
	Price            decimal.Decimal
	ConversionFactor int64
	Quantity         int64 // en unidades del embalaje, siempre > 0
	TrackStock       bool
	AddedAt          time.Time
}

// BaseUnits consumo en unidades base de la línea.
func (l *CartLine) BaseUnits() int64 { return l.Quantity * l.ConversionFactor }

// Subtotal precio × cantidad de la línea.
func (l *CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(l.Quantity))
}

// Cart colección ordenada de líneas; el orden de inserción se preserva y no hay
// dos líneas con la misma clave (se fusionan). ItemCount y Total se recalculan
// sobre las líneas en cada lectura: nunca se cachean aparte.
type Cart struct {
	ID        string
	Lines     []*CartLine
	UpdatedAt time.Time
}

// Find devuelve la línea con esa clave, o nil.
func (c *Cart) Find(key string) *CartLine {
	for _, l := range c.Lines {
		if l.Key == key {
			return l
		}
	}
	return nil
}

// Remove elimina la línea con esa clave. Idempotente: clave inexistente es no-op.
func (c *Cart) Remove(key string) {
	for i, l := range c.Lines {
		if l.Key == key {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// ReservedBaseUnits suma el consumo en unidades base de las líneas que mapean al
// mismo registro de stock (producto+bodega), sin importar el embalaje,
// excluyendo la línea excludeKey (vacío = no excluir ninguna).
func (c *Cart) ReservedBaseUnits(productID, warehouseID, excludeKey string) int64 {
	var total int64
	for _, l := range c.Lines {
		if l.ProductID == productID && l.WarehouseID == warehouseID && l.Key != excludeKey {
			total += l.BaseUnits()
		}
	}
	return total
}

// ItemCount suma de cantidades de todas las líneas.
func (c *Cart) ItemCount() int64 {
	var n int64
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Total suma de subtotales de todas las líneas.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
