package repository

import "github.com/jhoicas/pregao-api/internal/domain/entity"

// StockRepository define el puerto del almacén de inventario: un registro por
// (producto, bodega) con el nivel en unidades base. Es el único recurso mutable
// compartido entre el carrito y las transferencias; toda sección crítica sobre
// él se serializa con StockLocker antes de llamar a estos métodos.
type StockRepository interface {
	Get(productID, warehouseID string) (*entity.StockRecord, error)
	// GetByProduct localiza el registro del producto en su bodega de publicación.
	GetByProduct(productID string) (*entity.StockRecord, error)
	// ListBySKU devuelve los registros de esa SKU en todas las bodegas
	// (distribución entre ubicaciones).
	ListBySKU(sku string) ([]*entity.StockRecord, error)
	GetBySKUAndWarehouse(sku, warehouseID string) (*entity.StockRecord, error)
	ListByWarehouse(warehouseID string) ([]*entity.StockRecord, error)
	Upsert(record *entity.StockRecord) error
	// UpsertMany aplica varios registros como una unidad: un lector nunca
	// observa unos aplicados y otros no (débito y crédito de una transferencia).
	UpsertMany(records ...*entity.StockRecord) error
	// Adjust fija el nivel a newLevel y devuelve el registro resultante.
	Adjust(productID, warehouseID string, newLevel int64) (*entity.StockRecord, error)
	Debit(productID, warehouseID string, amount int64) error
	Credit(productID, warehouseID string, amount int64) error
}
