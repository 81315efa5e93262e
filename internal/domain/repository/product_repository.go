package repository

import "github.com/jhoicas/pregao-api/internal/domain/entity"

// Ordenamientos soportados por el listado de productos.
const (
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNameAsc   = "name-asc"
	SortNameDesc  = "name-desc"
)

// ProductFilter filtros del listado de productos. WarehouseIDs no vacío
// restringe a ese conjunto de bodegas (lo usa el resolver de visibilidad).
type ProductFilter struct {
	Query        string // búsqueda por nombre o SKU, insensible a mayúsculas y tildes
	Kind         string // KindGood | KindService | "" = todos
	WarehouseID  string
	WarehouseIDs []string
	SortBy       string // ver constantes Sort*
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// La implementación vive en infrastructure.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKUAndWarehouse(sku, warehouseID string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(filter ProductFilter, limit, offset int) ([]*entity.Product, int, error)
	Delete(id string) error
}
