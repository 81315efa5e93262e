package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto.
const (
	KindGood    = "good"    // bien físico con stock
	KindService = "service" // servicio, exento de control de stock
)

// Packaging variante de embalaje de un producto: agrupación vendible alternativa
// (ej. caja de 12) con su propio precio y un factor de conversión entero a
// unidades base.
type Packaging struct {
	ID               string
	Name             string // ej. Caixa, Fardo, Grade
	Unit             string // ej. CX, FAR, GRD
	ConversionFactor int64  // unidades base por unidad del embalaje (> 0)
	Barcode          string
	Price            decimal.Decimal
}

// Product representa un producto publicado en una bodega concreta (multi-bodega).
// La misma SKU en otra bodega es otra fila de producto; el nivel de stock vive
// en StockRecord. Si TrackStock es false (servicios) el producto queda exento
// de toda verificación de capacidad.
type Product struct {
	ID          string
	CompanyID   string
	WarehouseID string
	SKU         string
	Name        string
	Description string
	Price       decimal.Decimal // precio por unidad base
	Kind        string          // KindGood | KindService
	TrackStock  bool
	Unit        string // unidad base: UN, KG, L, HR
	Packaging   []Packaging
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FindPackaging devuelve la variante de embalaje con ese ID, o nil si no existe.
func (p *Product) FindPackaging(id string) *Packaging {
	for i := range p.Packaging {
		if p.Packaging[i].ID == id {
			return &p.Packaging[i]
		}
	}
	return nil
}
